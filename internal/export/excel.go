package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FormPanel/internal/model"
)

// Workbook sheet names.
const (
	sheetLayout      = "Layout"
	sheetPanelStats  = "Panel Stats"
	sheetReuse       = "Reuse"
	sheetProcurement = "Procurement"
)

// BuildWorkbook lays the result out over four sheets: per-side layout,
// run-wide panel statistics, per-casting reuse and the purchase list.
// The caller closes the returned file.
func BuildWorkbook(res model.Result) (*excelize.File, error) {
	r := res.Results
	if len(r.Castings) == 0 {
		return nil, fmt.Errorf("no castings to export")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), sheetLayout); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{sheetPanelStats, sheetReuse, sheetProcurement} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	w := &sheetWriter{f: f, header: header}
	w.layout(r)
	w.panelStats(r)
	w.reuse(r)
	w.procurement(model.CalculateProcurement(r))
	if w.err != nil {
		f.Close()
		return nil, w.err
	}
	return f, nil
}

// WriteExcel writes the workbook as .xlsx to w.
func WriteExcel(w io.Writer, res model.Result) error {
	f, err := BuildWorkbook(res)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// ExportExcel saves the workbook to path.
func ExportExcel(path string, res model.Result) error {
	f, err := BuildWorkbook(res)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// sheetWriter appends rows to sheets and keeps the first error.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) row(sheet string, n int, values ...interface{}) {
	if w.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetSheetRow(sheet, cell, &values); err != nil {
		w.err = fmt.Errorf("failed to write %s row %d: %w", sheet, n, err)
	}
}

func (w *sheetWriter) headerRow(sheet string, titles ...interface{}) {
	w.row(sheet, 1, titles...)
	if w.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(titles), 1)
	if err != nil {
		w.err = err
		return
	}
	if err := w.f.SetCellStyle(sheet, "A1", last, w.header); err != nil {
		w.err = err
		return
	}
	col, _ := excelize.ColumnNumberToName(len(titles))
	if err := w.f.SetColWidth(sheet, "A", col, 16); err != nil {
		w.err = err
	}
}

func (w *sheetWriter) layout(r model.RunResults) {
	w.headerRow(sheetLayout, "Casting", "Role", "Shape", "Side", "Length (mm)", "Panels", "Panel Count")
	n := 2
	for _, cl := range r.Castings {
		for _, sh := range cl.Shapes {
			for _, side := range sh.Sides {
				w.row(sheetLayout, n, cl.Name, string(cl.Type), sh.Name, side.Number, side.Length,
					strings.Trim(formatPanels(side.Panels), "[]"), len(side.Panels))
				n++
			}
		}
	}
}

func (w *sheetWriter) panelStats(r model.RunResults) {
	w.headerRow(sheetPanelStats, "Width (mm)", "Type", "Count")
	n := 2
	for _, size := range model.SortedWidths(r.PanelStats.Standard) {
		w.row(sheetPanelStats, n, size, string(model.PanelStandard), r.PanelStats.Standard[size])
		n++
	}
	for _, size := range model.SortedWidths(r.PanelStats.Custom) {
		w.row(sheetPanelStats, n, size, string(model.PanelCustom), r.PanelStats.Custom[size])
		n++
	}
	n++
	t := r.PanelStats.Totals
	w.row(sheetPanelStats, n, "Total types", t.TotalTypes)
	w.row(sheetPanelStats, n+1, "Standard types", t.StandardTypes)
	w.row(sheetPanelStats, n+2, "Custom types", t.CustomTypes)
}

func (w *sheetWriter) reuse(r model.RunResults) {
	w.headerRow(sheetReuse, "Casting", "Width (mm)", "Type", "Required", "Reused", "New")
	n := 2
	for _, cl := range r.Castings {
		for _, a := range cl.Allocation {
			w.row(sheetReuse, n, cl.Name, a.Size, string(a.Type), a.Required, a.Reused, a.New)
			n++
		}
	}
	n++
	ra := r.ReuseAnalysis
	w.row(sheetReuse, n, "New panels", ra.Totals.TotalNew)
	w.row(sheetReuse, n+1, "Standard new", ra.Totals.StandardNew)
	w.row(sheetReuse, n+2, "Custom new", ra.Totals.CustomNew)
	w.row(sheetReuse, n+3, "Reuse efficiency (%)", ra.Efficiency.Percentage)
}

func (w *sheetWriter) procurement(p model.Procurement) {
	w.headerRow(sheetProcurement, "Width (mm)", "Type", "Primary", "Secondary", "Total", "Linear (mm)")
	n := 2
	for _, l := range p.Lines {
		w.row(sheetProcurement, n, l.Size, string(l.Type), l.Baseline, l.Secondary, l.Total, l.LinearMM)
		n++
	}
	w.row(sheetProcurement, n, "Total", "", "", "", p.TotalPanels, p.TotalLinearMM)
}
