package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/FormPanel/internal/model"
)

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")
	if err := ExportPDF(path, buildTestResult(t)); err != nil {
		t.Fatalf("ExportPDF failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("PDF file not created: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("file does not start with a PDF header")
	}
}

func TestBuildPDF_PageCount(t *testing.T) {
	pdf, err := buildPDF(buildTestResult(t))
	if err != nil {
		t.Fatalf("buildPDF failed: %v", err)
	}
	// Summary, one page per casting, reuse.
	if got := pdf.PageCount(); got != 4 {
		t.Errorf("expected 4 pages, got %d", got)
	}
}

func TestBuildPDF_SingleCastingHasNoReusePage(t *testing.T) {
	res := buildTestResult(t)
	res.Results.Castings = res.Results.Castings[:1]

	pdf, err := buildPDF(res)
	if err != nil {
		t.Fatalf("buildPDF failed: %v", err)
	}
	if got := pdf.PageCount(); got != 2 {
		t.Errorf("expected 2 pages, got %d", got)
	}
}

func TestBuildPDF_ContinuationPages(t *testing.T) {
	res := buildManySidesResult(t)
	pdf, err := buildPDF(res)
	if err != nil {
		t.Fatalf("buildPDF failed: %v", err)
	}
	// 32 sides per casting do not fit on one page.
	if got := pdf.PageCount(); got <= 2+len(res.Results.Castings) {
		t.Errorf("expected continuation pages, got %d pages", got)
	}
}

func TestWritePDF_WithWarnings(t *testing.T) {
	res := buildTestResult(t)
	res.Results.Warnings = []string{"Level 1 / Core side 2: custom panel 50 mm is narrower than 60 mm"}

	var buf bytes.Buffer
	if err := WritePDF(&buf, res); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("PDF output is empty")
	}
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportPDF(path, model.Result{}); err == nil {
		t.Error("expected error for empty result")
	}
}

func TestStripScale_FitsLongestSide(t *testing.T) {
	r := buildTestResult(t).Results
	scale := stripScale(r)
	if got := 700 * scale; got > pageWidth-marginLeft-marginRight-sideLabelW+1e-9 {
		t.Errorf("longest side drawn %.1f mm wide, exceeds drawing area", got)
	}
}

func TestWidthColors_StandardOnly(t *testing.T) {
	stats := buildTestResult(t).Results.PanelStats
	colors := widthColors(stats)
	if _, ok := colors[50]; ok {
		t.Error("custom width should not get a catalog colour")
	}
	for _, w := range []int{100, 600} {
		if _, ok := colors[w]; !ok {
			t.Errorf("standard width %d has no colour", w)
		}
	}
}
