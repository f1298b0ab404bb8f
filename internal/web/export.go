package web

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ventmash/fancatalog/internal/catalog"
	"github.com/ventmash/fancatalog/internal/logging"
)

var exportHeader = []string{
	"id", "number", "type", "model", "size",
	"diameter", "airflow", "pressure", "power", "noise_level", "price",
	"model_slug",
}

// exportRow renders one product for export. Range fields use the preserved
// source text so exports read the way the data was entered.
func exportRow(p catalog.Product) []string {
	return []string{
		p.ID, p.Number, p.Type, p.Model, p.Size,
		formatScalar(p.Diameter),
		p.Airflow.Raw,
		p.Pressure.Raw,
		formatScalar(p.Power),
		formatScalar(p.NoiseLevel),
		formatScalar(p.Price),
		p.Meta.ModelSlug,
	}
}

func formatScalar(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// handleExportCSV serves GET /api/products/export.csv with the same filter
// and sort parameters as the listing.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	filter, sortOrder := filterFromQuery(r.URL.Query())

	products, err := s.store.List(r.Context(), filter, sortOrder)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)

	cw := csv.NewWriter(w)
	cw.Write(exportHeader)
	for _, p := range products {
		cw.Write(exportRow(p))
	}
	cw.Flush()
}

// handleExportXLSX serves GET /api/products/export.xlsx, the same export as
// a spreadsheet.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	filter, sortOrder := filterFromQuery(r.URL.Query())

	products, err := s.store.List(r.Context(), filter, sortOrder)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Products"
	f.SetSheetName("Sheet1", sheet)

	header := make([]any, len(exportHeader))
	for i, name := range exportHeader {
		header[i] = name
	}
	f.SetSheetRow(sheet, "A1", &header)

	for i, p := range products {
		row := make([]any, 0, len(exportHeader))
		row = append(row, p.ID, p.Number, p.Type, p.Model, p.Size)
		row = append(row, scalarCell(p.Diameter), p.Airflow.Raw, p.Pressure.Raw)
		row = append(row, scalarCell(p.Power), scalarCell(p.NoiseLevel), scalarCell(p.Price))
		row = append(row, p.Meta.ModelSlug)

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			s.respondError(w, r, fmt.Errorf("building sheet row: %w", err), http.StatusInternalServerError)
			return
		}
		f.SetSheetRow(sheet, cell, &row)
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="products.xlsx"`)

	if err := f.Write(w); err != nil {
		// Headers are already sent at this point.
		logging.FromContext(r.Context()).Error("writing xlsx export failed", "error", err)
	}
}

// scalarCell keeps numbers numeric in the spreadsheet and absent values as
// empty cells.
func scalarCell(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
