package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestShapeAndCastingTotals(t *testing.T) {
	c := NewCasting("C1",
		NewShape("Wall", 700, 650),
		NewShape("Column", 300, 300, 300, 300),
	)
	if c.SideCount() != 6 {
		t.Errorf("expected 6 sides, got %d", c.SideCount())
	}
	if c.TotalLength() != 700+650+1200 {
		t.Errorf("unexpected total length %d", c.TotalLength())
	}

	c.AddShape(NewShape("Beam", 100))
	if len(c.Shapes) != 3 {
		t.Errorf("expected 3 shapes after AddShape, got %d", len(c.Shapes))
	}
}

func TestNewShapeCopiesSides(t *testing.T) {
	sides := []int{100, 200}
	s := NewShape("S", sides...)
	sides[0] = 999
	if s.Sides[0] != 100 {
		t.Error("NewShape should copy the side lengths")
	}
}

func TestAlgorithmValid(t *testing.T) {
	if !AlgorithmGreedy.Valid() || !AlgorithmMinimal.Valid() {
		t.Error("built-in algorithms should be valid")
	}
	if Algorithm("genetic").Valid() {
		t.Error("unknown algorithm should be invalid")
	}
}

func TestRunResultsPrimary(t *testing.T) {
	r := buildTestRun()
	p := r.Primary()
	if p == nil || p.Name != "C1" {
		t.Fatalf("expected primary C1, got %v", p)
	}
	if p.PanelCount() != 4 {
		t.Errorf("expected 4 primary panels, got %d", p.PanelCount())
	}
	if (RunResults{}).Primary() != nil {
		t.Error("expected nil primary for empty results")
	}
}

func TestResultJSONShape(t *testing.T) {
	res := Result{
		Steps:   []string{"Optimizing panel layouts..."},
		Results: buildTestRun(),
	}
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	out := string(data)

	for _, key := range []string{
		`"steps"`, `"primary_casting":"C1"`, `"type":"PRIMARY"`, `"type":"SECONDARY"`,
		`"panel_stats"`, `"standard":{"100":1,"600":5}`, `"reuse_analysis"`, `"new_panels"`,
		`"number":1`, `"panels":[600,100]`,
	} {
		if !strings.Contains(out, key) {
			t.Errorf("expected %s in %s", key, out)
		}
	}
	if strings.Contains(out, `"warnings"`) {
		t.Error("empty warnings should be omitted")
	}
}

func TestNewProject(t *testing.T) {
	p := NewProject("Tower")
	if p.Name != "Tower" || len(p.ID) != 8 {
		t.Errorf("unexpected project %+v", p)
	}
	if p.Castings == nil {
		t.Error("Castings should not be nil")
	}
	if p.Settings.Algorithm != AlgorithmGreedy {
		t.Errorf("expected greedy default, got %s", p.Settings.Algorithm)
	}
}
