package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/piwi3910/FormPanel/internal/model"
)

func TestCollectSideLabels(t *testing.T) {
	labels := CollectSideLabels(buildTestResult(t))
	if len(labels) != 4 {
		t.Fatalf("expected 4 labels, got %d", len(labels))
	}

	want := SideLabel{
		Casting: "Level 2",
		Role:    model.RoleSecondary,
		Shape:   "Core",
		Side:    2,
		Length:  150,
		Panels:  []int{100, 50},
	}
	if diff := cmp.Diff(want, labels[3]); diff != "" {
		t.Errorf("label mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectSideLabels_CopiesPanels(t *testing.T) {
	res := buildTestResult(t)
	labels := CollectSideLabels(res)
	labels[0].Panels[0] = 1

	if res.Results.Castings[0].Shapes[0].Sides[0].Panels[0] != 600 {
		t.Error("label panels alias the result")
	}
}

func TestSideLabel_JSONFields(t *testing.T) {
	data, err := json.Marshal(SideLabel{Casting: "L1", Role: model.RolePrimary, Shape: "Core", Side: 1, Length: 700, Panels: []int{600, 100}})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"casting":"L1","role":"PRIMARY","shape":"Core","side":1,"length_mm":700,"panels_mm":[600,100]}`
	if string(data) != want {
		t.Errorf("got %s\nwant %s", data, want)
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := ExportLabels(path, buildTestResult(t)); err != nil {
		t.Fatalf("ExportLabels failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("labels file not created: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("file does not start with a PDF header")
	}
}

func TestBuildLabels_Pages(t *testing.T) {
	res := buildManySidesResult(t)
	n := len(CollectSideLabels(res))

	pdf, err := buildLabels(res)
	if err != nil {
		t.Fatalf("buildLabels failed: %v", err)
	}
	want := (n + labelsPerPage - 1) / labelsPerPage
	if got := pdf.PageCount(); got != want {
		t.Errorf("expected %d pages for %d labels, got %d", want, n, got)
	}
}

func TestWriteLabels_NoSides(t *testing.T) {
	res := model.Result{Results: model.RunResults{
		Castings: []model.CastingLayout{{Name: "Empty", Type: model.RolePrimary}},
	}}
	var buf bytes.Buffer
	if err := WriteLabels(&buf, res); err == nil {
		t.Error("expected error when there are no sides")
	}
}
