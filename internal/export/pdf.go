// Package export writes optimization results as text, CSV, Excel, PDF,
// QR-coded side labels and HTML charts.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/FormPanel/internal/model"
)

// panelColor represents an RGB fill for one standard panel width.
type panelColor struct {
	R, G, B int
}

// panelColors are assigned to standard widths in ascending order.
var panelColors = []panelColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
	{R: 96, G: 125, B: 139}, // blue grey
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 8.0
	sideLabelW   = 70.0
	stripHeight  = 6.0
	rowHeight    = 9.0
)

// ExportPDF writes the PDF report to path.
func ExportPDF(path string, res model.Result) error {
	pdf, err := buildPDF(res)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF writes the PDF report to w: a summary page, the side layouts of
// every casting drawn as panel strips, and the reuse breakdown.
func WritePDF(w io.Writer, res model.Result) error {
	pdf, err := buildPDF(res)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildPDF(res model.Result) (*fpdf.Fpdf, error) {
	r := res.Results
	if len(r.Castings) == 0 {
		return nil, fmt.Errorf("no castings to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(fmt.Sprintf("Panel layout (primary: %s)", r.PrimaryCasting), true)

	pdf.AddPage()
	renderSummaryPage(pdf, r)

	colors := widthColors(r.PanelStats)
	scale := stripScale(r)
	for _, cl := range r.Castings {
		pdf.AddPage()
		renderCastingPages(pdf, cl, r.PanelStats, colors, scale)
	}

	if len(r.Castings) > 1 {
		pdf.AddPage()
		renderReusePage(pdf, r)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf, nil
}

// widthColors maps every standard width to a fill colour.
func widthColors(stats model.PanelStats) map[int]panelColor {
	colors := make(map[int]panelColor)
	for i, w := range model.SortedWidths(stats.Standard) {
		colors[w] = panelColors[i%len(panelColors)]
	}
	return colors
}

// stripScale is mm of paper per mm of side, fitting the longest side.
func stripScale(r model.RunResults) float64 {
	longest := 1
	for _, cl := range r.Castings {
		for _, sh := range cl.Shapes {
			for _, side := range sh.Sides {
				if side.Length > longest {
					longest = side.Length
				}
			}
		}
	}
	return (pageWidth - marginLeft - marginRight - sideLabelW) / float64(longest)
}

func renderHeader(pdf *fpdf.Fpdf, title, subtitle string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	if subtitle != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(marginLeft, marginTop+headerHeight)
		pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, subtitle, "", 0, "L", false, 0, "")
	}
}

// renderCastingPages draws one strip per side, continuing on new pages as
// needed.
func renderCastingPages(pdf *fpdf.Fpdf, cl model.CastingLayout, stats model.PanelStats, colors map[int]panelColor, scale float64) {
	sides := 0
	for _, sh := range cl.Shapes {
		sides += len(sh.Sides)
	}
	title := fmt.Sprintf("%s (%s)", cl.Name, cl.Type)
	subtitle := fmt.Sprintf("Shapes: %d | Sides: %d | Panels: %d", len(cl.Shapes), sides, cl.PanelCount())
	renderHeader(pdf, title, subtitle)

	y := drawAreaTop
	for _, sh := range cl.Shapes {
		for _, side := range sh.Sides {
			if y+rowHeight > pageHeight-marginBottom {
				pdf.AddPage()
				renderHeader(pdf, title+" (continued)", "")
				y = drawAreaTop
			}
			drawSideStrip(pdf, sh.Name, side, stats, colors, scale, y)
			y += rowHeight
		}
	}
}

// drawSideStrip renders one side as a row of panel rectangles.
func drawSideStrip(pdf *fpdf.Fpdf, shape string, side model.SideLayout, stats model.PanelStats, colors map[int]panelColor, scale, y float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	label := fmt.Sprintf("%s / side %d (%d mm)", shape, side.Number, side.Length)
	pdf.CellFormat(sideLabelW-2, stripHeight, label, "", 0, "L", false, 0, "")

	x := marginLeft + sideLabelW
	for _, w := range side.Panels {
		pw := float64(w) * scale
		if stats.TypeOf(w) == model.PanelCustom {
			pdf.SetFillColor(255, 200, 200)
			pdf.SetDrawColor(200, 0, 0)
			pdf.SetLineWidth(0.3)
			pdf.Rect(x, y, pw, stripHeight, "FD")
			drawHatchPattern(pdf, x, y, pw, stripHeight)
		} else {
			col := colors[w]
			pdf.SetFillColor(col.R, col.G, col.B)
			pdf.SetDrawColor(30, 30, 30)
			pdf.SetLineWidth(0.3)
			pdf.Rect(x, y, pw, stripHeight, "FD")
		}

		text := fmt.Sprint(w)
		pdf.SetFont("Helvetica", "", 6)
		if tw := pdf.GetStringWidth(text); tw < pw-1 {
			pdf.SetXY(x+(pw-tw)/2, y+1)
			pdf.CellFormat(tw, stripHeight-2, text, "", 0, "C", false, 0, "")
		}
		x += pw
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark custom panels.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 2.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawTable renders a header row and body rows with alternating fill and
// returns the y below the table.
func drawTable(pdf *fpdf.Fpdf, y float64, colWidths []float64, headers []string, rows [][]string) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		if y+6 > pageHeight-marginBottom {
			pdf.AddPage()
			y = marginTop
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}
	return y
}

func sectionTitle(pdf *fpdf.Fpdf, y float64, title string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	return y + 9
}

// renderSummaryPage draws the overall statistics and the purchase list.
func renderSummaryPage(pdf *fpdf.Fpdf, r model.RunResults) {
	renderHeader(pdf, "Formwork Panel Layout", fmt.Sprintf("Primary casting: %s", r.PrimaryCasting))

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight+6, pageWidth-marginRight, marginTop+headerHeight+6)

	y := sectionTitle(pdf, drawAreaTop, "Overall Statistics")

	proc := model.CalculateProcurement(r)
	e := r.ReuseAnalysis.Efficiency
	summaryItems := []struct {
		label string
		value string
	}{
		{"Castings", fmt.Sprintf("%d", len(r.Castings))},
		{"Panel types used", fmt.Sprintf("%d (%d standard, %d custom)",
			r.PanelStats.Totals.TotalTypes, r.PanelStats.Totals.StandardTypes, r.PanelStats.Totals.CustomTypes)},
		{"Panels to buy", fmt.Sprintf("%d (%d standard, %d custom)", proc.TotalPanels, proc.StandardCount, proc.CustomCount)},
		{"New panels for secondaries", fmt.Sprintf("%d", r.ReuseAnalysis.Totals.TotalNew)},
		{"Reuse efficiency", fmt.Sprintf("%.1f%% (%d of %d)", e.Percentage, e.ReusedPanels, e.TotalPanels)},
	}

	for _, item := range summaryItems {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		y += 7
	}

	y = sectionTitle(pdf, y+5, "Procurement")
	rows := make([][]string, 0, len(proc.Lines))
	for _, l := range proc.Lines {
		rows = append(rows, []string{
			fmt.Sprintf("%d mm", l.Size),
			string(l.Type),
			fmt.Sprintf("%d", l.Baseline),
			fmt.Sprintf("%d", l.Secondary),
			fmt.Sprintf("%d", l.Total),
			fmt.Sprintf("%.1f m", float64(l.LinearMM)/1000),
		})
	}
	y = drawTable(pdf, y, []float64{35, 35, 35, 35, 35, 40},
		[]string{"Width", "Type", "Primary", "Secondary", "Total", "Linear"}, rows)

	if len(r.Warnings) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "Warnings", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, w := range r.Warnings {
			if y+5 > pageHeight-marginBottom {
				break
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(250, 5, "- "+w, "", 0, "L", false, 0, "")
			y += 5
		}
	}
}

// renderReusePage lists each secondary casting's reuse per width.
func renderReusePage(pdf *fpdf.Fpdf, r model.RunResults) {
	ra := r.ReuseAnalysis
	renderHeader(pdf, "Panel Reuse", fmt.Sprintf("Efficiency: %.1f%% (%d of %d panels reused) | New panels: %d",
		ra.Efficiency.Percentage, ra.Efficiency.ReusedPanels, ra.Efficiency.TotalPanels, ra.Totals.TotalNew))

	var rows [][]string
	for _, cl := range r.Castings {
		for _, a := range cl.Allocation {
			rows = append(rows, []string{
				cl.Name,
				fmt.Sprintf("%d mm", a.Size),
				string(a.Type),
				fmt.Sprintf("%d", a.Required),
				fmt.Sprintf("%d", a.Reused),
				fmt.Sprintf("%d", a.New),
			})
		}
	}
	drawTable(pdf, drawAreaTop, []float64{70, 35, 35, 35, 35, 35},
		[]string{"Casting", "Width", "Type", "Required", "Reused", "New"}, rows)
}
