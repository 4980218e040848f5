package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/FormPanel/internal/model"
)

// SideLabel holds the data encoded into each side label's QR code, so crews
// can scan a formwork bundle and see which side it closes.
type SideLabel struct {
	Casting string     `json:"casting"`
	Role    model.Role `json:"role"`
	Shape   string     `json:"shape"`
	Side    int        `json:"side"`
	Length  int        `json:"length_mm"`
	Panels  []int      `json:"panels_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// CollectSideLabels returns one label per side in result order.
func CollectSideLabels(res model.Result) []SideLabel {
	var labels []SideLabel
	for _, cl := range res.Results.Castings {
		for _, sh := range cl.Shapes {
			for _, side := range sh.Sides {
				labels = append(labels, SideLabel{
					Casting: cl.Name,
					Role:    cl.Type,
					Shape:   sh.Name,
					Side:    side.Number,
					Length:  side.Length,
					Panels:  append([]int(nil), side.Panels...),
				})
			}
		}
	}
	return labels
}

// ExportLabels writes the label sheet PDF to path.
func ExportLabels(path string, res model.Result) error {
	pdf, err := buildLabels(res)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WriteLabels writes a PDF of QR-coded labels, one per side, laid out on a
// standard label sheet (Avery 5160 / 3 columns x 10 rows on US Letter).
func WriteLabels(w io.Writer, res model.Result) error {
	pdf, err := buildLabels(res)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildLabels(res model.Result) (*fpdf.Fpdf, error) {
	labels := CollectSideLabels(res)
	if len(labels) == 0 {
		return nil, fmt.Errorf("no sides to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return nil, fmt.Errorf("failed to render label for %s/%s/%d: %w", label.Casting, label.Shape, label.Side, err)
		}
	}
	return pdf, nil
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, idx int, info SideLabel) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", idx)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, info.Casting, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, truncate(pdf, fmt.Sprintf("%s side %d", info.Shape, info.Side), textW), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d mm", info.Length), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+13)
	pdf.CellFormat(textW, 3, truncate(pdf, formatPanels(info.Panels), textW), "", 1, "L", false, 0, "")

	if info.Role == model.RolePrimary {
		pdf.SetXY(textX, y+labelPadding+16.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Primary", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// truncate shortens s with an ellipsis to fit width in the current font.
func truncate(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}
