package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	nonSlugRunes = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
	dashRuns     = regexp.MustCompile(`-{2,}`)
)

// NormalizeWhitespace collapses every run of Unicode whitespace (including
// non-breaking spaces) into a single ASCII space and trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseNumber parses loosely formatted numeric text: thousands separated by
// spaces ("18 500"), decimal commas ("12,5"), NBSP padding. Returns nil when
// the cleaned text is empty or does not parse to a finite float. Never
// validates bounds; negative and absurd values pass through as-is.
func ParseNumber(s string) *float64 {
	cleaned := strings.ReplaceAll(NormalizeWhitespace(s), " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return nil
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

// ParseRange parses text like "900 - 3600", "30-170" or a bare "180" into a
// Range. A single segment becomes a degenerate point range. With multiple
// segments the first is the lower bound and the rest, rejoined with "-", the
// upper bound; the rejoin keeps a negative upper bound intact ("10--5" means
// 10 down to -5). Either side may fail to parse without affecting the other.
func ParseRange(s string) Range {
	raw := NormalizeWhitespace(s)
	if raw == "" {
		return Range{Raw: ""}
	}
	parts := strings.Split(raw, "-")
	if len(parts) == 1 {
		n := ParseNumber(parts[0])
		return Range{Min: n, Max: n, Raw: raw}
	}
	return Range{
		Min: ParseNumber(parts[0]),
		Max: ParseNumber(strings.Join(parts[1:], "-")),
		Raw: raw,
	}
}

// Slugify derives a URL-safe identifier from display text: lowercase, runs of
// anything that is not a Unicode letter, digit or underscore become a single
// "-", repeated dashes collapse and the ends are trimmed. Idempotent; distinct
// inputs may collide (resolved last-write-wins in the index).
func Slugify(s string) string {
	slug := strings.ToLower(NormalizeWhitespace(s))
	slug = nonSlugRunes.ReplaceAllString(slug, "-")
	slug = dashRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
