// Package loader reads the semi-structured fans CSV into normalized catalog
// entries. The source files come from spreadsheet exports and use either ";"
// or "," as delimiter, so the delimiter is sniffed from the header line.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ventmash/fancatalog/internal/catalog"
)

// DetectDelimiter picks the delimiter by counting candidates in the header
// line. Semicolon wins ties: the canonical export uses it.
func DetectDelimiter(headerLine string) rune {
	if strings.Count(headerLine, ",") > strings.Count(headerLine, ";") {
		return ','
	}
	return ';'
}

// ReadRows reads header-keyed rows from r. Rows shorter than the header get
// empty strings for the missing columns; extra cells are dropped. Row order
// is preserved so positions stay meaningful for default id assignment.
func ReadRows(r io.Reader) ([]map[string]string, error) {
	br := bufio.NewReader(r)
	headerLine, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	cr := newCSVReader(io.MultiReader(strings.NewReader(headerLine), br), DetectDelimiter(headerLine))

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, name := range header {
			name = strings.TrimSpace(name)
			if i < len(rec) {
				row[name] = rec[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Load reads a CSV file and normalizes it into catalog entries, dropping
// non-product rows (no type, model or size). The second result is the number
// of rows dropped.
func Load(path string) ([]catalog.Product, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening catalog csv: %w", err)
	}
	defer f.Close()

	return Normalize(f)
}

// Normalize reads rows from r and runs each through the record normalizer.
func Normalize(r io.Reader) ([]catalog.Product, int, error) {
	rows, err := ReadRows(r)
	if err != nil {
		return nil, 0, err
	}

	products := make([]catalog.Product, 0, len(rows))
	skipped := 0
	for i, row := range rows {
		p, ok := catalog.FromRow(row, i+1)
		if !ok {
			skipped++
			continue
		}
		products = append(products, p)
	}
	return products, skipped, nil
}
