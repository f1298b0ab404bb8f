// Package catalog contains the normalization and query logic for the fan
// catalog: loose numeric parsing, range handling, slugs, the in-memory index
// and the filter/sort engine. Everything here is pure; persistence and HTTP
// live elsewhere.
package catalog

import "math"

// Range is an interval parsed from a single text field. A nil bound is open
// (treated as -Inf / +Inf for overlap checks). Raw keeps the whitespace-
// normalized source text for display. Min > Max can occur in messy source
// data and is tolerated.
type Range struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
	Raw string   `json:"raw"`
}

// Overlaps reports whether the two intervals share at least one point,
// treating nil bounds as unbounded. Symmetric by construction.
func (r Range) Overlaps(other Range) bool {
	return effMin(r.Min) <= effMax(other.Max) && effMin(other.Min) <= effMax(r.Max)
}

func effMin(v *float64) float64 {
	if v == nil {
		return math.Inf(-1)
	}
	return *v
}

func effMax(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}
	return *v
}

// RawFields preserves the "as entered" text of the numeric and range source
// columns, post whitespace normalization only.
type RawFields struct {
	Diameter   string `json:"diameter"`
	Efficiency string `json:"efficiency"`
	Pressure   string `json:"pressure"`
	Power      string `json:"power"`
	NoiseLevel string `json:"noise_level"`
	Price      string `json:"price"`
}

// Meta holds derived identifiers.
type Meta struct {
	ModelSlug string `json:"model_slug"`
}

// Product is one normalized catalog entry. Scalar fields are nil when the
// source text was empty or unparseable; JSON output renders those as null,
// matching the public API payloads.
type Product struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	Type       string    `json:"type"`
	Model      string    `json:"model"`
	Size       string    `json:"size"`
	Diameter   *float64  `json:"diameter"`
	Airflow    Range     `json:"airflow"`
	Pressure   Range     `json:"pressure"`
	Power      *float64  `json:"power"`
	NoiseLevel *float64  `json:"noise_level"`
	Price      *float64  `json:"price"`
	Raw        RawFields `json:"_raw"`
	Meta       Meta      `json:"_meta"`
}
