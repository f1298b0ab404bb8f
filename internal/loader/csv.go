package loader

import (
	"encoding/csv"
	"io"
)

// newCSVReader builds a csv.Reader tolerant of the ragged rows spreadsheet
// exports produce: variable field counts and stray quotes must not abort the
// load, messy cells are the normalizer's problem.
func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = false
	return cr
}
