package catalog

import "strconv"

// FromRow assembles a Product from one raw CSV/DB row keyed by source column
// name. pos is the 1-based row position and supplies the default id when the
// "number" column is blank. Returns ok=false for non-product rows (type,
// model and size all empty), which the loader silently skips.
func FromRow(row map[string]string, pos int) (Product, bool) {
	number := NormalizeWhitespace(row["number"])
	if number == "" {
		number = strconv.Itoa(pos)
	}

	typ := NormalizeWhitespace(row["type"])
	model := NormalizeWhitespace(row["model"])
	size := NormalizeWhitespace(row["size"])

	if typ == "" && model == "" && size == "" {
		return Product{}, false
	}

	return Product{
		ID:         number,
		Number:     number,
		Type:       typ,
		Model:      model,
		Size:       size,
		Diameter:   ParseNumber(row["diameter"]),
		Airflow:    ParseRange(row["efficiency"]),
		Pressure:   ParseRange(row["pressure"]),
		Power:      ParseNumber(row["power"]),
		NoiseLevel: ParseNumber(row["noise_level"]),
		Price:      ParseNumber(row["price"]),
		Raw: RawFields{
			Diameter:   NormalizeWhitespace(row["diameter"]),
			Efficiency: NormalizeWhitespace(row["efficiency"]),
			Pressure:   NormalizeWhitespace(row["pressure"]),
			Power:      NormalizeWhitespace(row["power"]),
			NoiseLevel: NormalizeWhitespace(row["noise_level"]),
			Price:      NormalizeWhitespace(row["price"]),
		},
		Meta: Meta{ModelSlug: Slugify(model)},
	}, true
}
