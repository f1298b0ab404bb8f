package catalog

import (
	"sort"
	"strings"
)

// Sort selects the listing order. Entries without a price always come after
// priced ones, in model order, regardless of direction.
type Sort string

const (
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

// ParseSort maps a request parameter onto a Sort, defaulting to price_asc.
func ParseSort(s string) Sort {
	if NormalizeWhitespace(s) == string(SortPriceDesc) {
		return SortPriceDesc
	}
	return SortPriceAsc
}

// Filter is the set of optional listing predicates. All set fields must hold
// (logical AND). Nil scalar bounds are unset. For the scalar bounds (price,
// power, noise, diameter) an entry whose value is absent is excluded whenever
// the bound is set; the airflow/pressure bounds instead run the interval
// overlap test, where absent sides count as unbounded.
type Filter struct {
	Query    string
	Type     string
	Diameter *float64

	MinPrice, MaxPrice       *float64
	MinPower, MaxPower       *float64
	MinNoise, MaxNoise       *float64
	MinDiameter, MaxDiameter *float64

	MinAirflow, MaxAirflow   *float64
	MinPressure, MaxPressure *float64
}

// Matches reports whether p satisfies every set predicate.
func (f Filter) Matches(p Product) bool {
	if q := strings.ToLower(NormalizeWhitespace(f.Query)); q != "" {
		hay := strings.ToLower(p.Model + " " + p.Size + " " + p.Type)
		if !strings.Contains(hay, q) {
			return false
		}
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	if f.Diameter != nil && (p.Diameter == nil || *p.Diameter != *f.Diameter) {
		return false
	}

	if !scalarInBounds(p.Price, f.MinPrice, f.MaxPrice) {
		return false
	}
	if !scalarInBounds(p.Power, f.MinPower, f.MaxPower) {
		return false
	}
	if !scalarInBounds(p.NoiseLevel, f.MinNoise, f.MaxNoise) {
		return false
	}
	if !scalarInBounds(p.Diameter, f.MinDiameter, f.MaxDiameter) {
		return false
	}

	if f.MinAirflow != nil || f.MaxAirflow != nil {
		if !p.Airflow.Overlaps(Range{Min: f.MinAirflow, Max: f.MaxAirflow}) {
			return false
		}
	}
	if f.MinPressure != nil || f.MaxPressure != nil {
		if !p.Pressure.Overlaps(Range{Min: f.MinPressure, Max: f.MaxPressure}) {
			return false
		}
	}
	return true
}

// scalarInBounds applies min/max bounds to an optional scalar. An absent
// value fails as soon as either bound is set (absent is not a wildcard here).
func scalarInBounds(v, min, max *float64) bool {
	if min != nil && (v == nil || *v < *min) {
		return false
	}
	if max != nil && (v == nil || *v > *max) {
		return false
	}
	return true
}

// Apply filters and sorts products, returning a new slice. The order is the
// total composite key (hasNoPrice, signedPrice, model): unpriced entries sink
// to the end in model order whatever the direction. Pure; the input slice is
// not modified.
func Apply(products []Product, f Filter, s Sort) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return lessByPrice(out[i], out[j], s)
	})
	return out
}

func lessByPrice(a, b Product, s Sort) bool {
	switch {
	case a.Price == nil && b.Price != nil:
		return false
	case a.Price != nil && b.Price == nil:
		return true
	case a.Price != nil && b.Price != nil && *a.Price != *b.Price:
		if s == SortPriceDesc {
			return *a.Price > *b.Price
		}
		return *a.Price < *b.Price
	}
	return a.Model < b.Model
}
