package export

import (
	"bytes"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FormPanel/internal/model"
)

func TestBuildWorkbook_Sheets(t *testing.T) {
	f, err := BuildWorkbook(buildTestResult(t))
	if err != nil {
		t.Fatalf("BuildWorkbook failed: %v", err)
	}
	defer f.Close()

	want := []string{sheetLayout, sheetPanelStats, sheetReuse, sheetProcurement}
	if diff := cmp.Diff(want, f.GetSheetList()); diff != "" {
		t.Errorf("sheet list mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteExcel_Contents(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExcel(&buf, buildTestResult(t)); err != nil {
		t.Fatalf("WriteExcel failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	layout, err := f.GetRows(sheetLayout)
	if err != nil {
		t.Fatalf("GetRows(%s) failed: %v", sheetLayout, err)
	}
	if len(layout) != 5 {
		t.Fatalf("expected header + 4 side rows, got %d", len(layout))
	}
	wantRow := []string{"Level 2", "SECONDARY", "Core", "2", "150", "100, 50", "2"}
	if diff := cmp.Diff(wantRow, layout[4]); diff != "" {
		t.Errorf("layout row mismatch (-want +got):\n%s", diff)
	}

	reuse, err := f.GetRows(sheetReuse)
	if err != nil {
		t.Fatalf("GetRows(%s) failed: %v", sheetReuse, err)
	}
	found := false
	for _, row := range reuse {
		if len(row) == 6 && row[0] == "Level 2" && row[1] == "100" {
			found = true
			if row[3] != "2" || row[4] != "1" || row[5] != "1" {
				t.Errorf("100 mm reuse row = %v, want required 2, reused 1, new 1", row)
			}
		}
	}
	if !found {
		t.Errorf("no reuse row for Level 2 / 100 mm in %v", reuse)
	}

	eff, err := f.GetCellValue(sheetReuse, "B"+strconv.Itoa(len(reuse)))
	if err != nil {
		t.Fatalf("GetCellValue failed: %v", err)
	}
	if eff != "75" {
		t.Errorf("efficiency cell = %q, want 75", eff)
	}

	proc, err := f.GetRows(sheetProcurement)
	if err != nil {
		t.Fatalf("GetRows(%s) failed: %v", sheetProcurement, err)
	}
	last := proc[len(proc)-1]
	if last[0] != "Total" || last[4] != "5" {
		t.Errorf("procurement total row = %v, want 5 panels", last)
	}
}

func TestExportExcel_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.xlsx")
	if err := ExportExcel(path, buildTestResult(t)); err != nil {
		t.Fatalf("ExportExcel failed: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot open saved workbook: %v", err)
	}
	f.Close()
}

func TestBuildWorkbook_EmptyResult(t *testing.T) {
	if _, err := BuildWorkbook(model.Result{}); err == nil {
		t.Error("expected error for empty result")
	}
}
