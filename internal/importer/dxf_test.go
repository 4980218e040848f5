package importer

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"
)

func saveDrawing(t *testing.T, name string, build func(d *drawing.Drawing) error) string {
	t.Helper()
	d := dxf.NewDrawing()
	if err := build(d); err != nil {
		t.Fatalf("failed to build drawing: %v", err)
	}
	path := filepath.Join(t.TempDir(), name)
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF: %v", err)
	}
	return path
}

func TestOutlineSides(t *testing.T) {
	rect := []point{{0, 0}, {700, 0}, {700, 650}, {0, 650}}
	sides, dropped := outlineSides(rect)
	if dropped != 0 {
		t.Errorf("expected no dropped edges, got %d", dropped)
	}
	if !reflect.DeepEqual(sides, []int{700, 650, 700, 650}) {
		t.Errorf("unexpected sides %v", sides)
	}

	// 3-4-5 triangle scaled by 100, plus a near-duplicate vertex
	tri := []point{{0, 0}, {300, 0}, {300.2, 0}, {300, 400}}
	sides, dropped = outlineSides(tri)
	if dropped != 1 {
		t.Errorf("expected 1 dropped edge, got %d", dropped)
	}
	if !reflect.DeepEqual(sides, []int{300, 400, 500}) {
		t.Errorf("unexpected sides %v", sides)
	}
}

func TestChainSegments(t *testing.T) {
	segs := []segment{
		{point{0, 0}, point{100, 0}},
		{point{100, 100}, point{100, 0}}, // reversed
		{point{0, 100}, point{100, 100.2}},
		{point{0, 100}, point{0, 0}},
		// open L, discarded
		{point{500, 500}, point{600, 500}},
		{point{600, 500}, point{600, 600}},
	}
	outlines := chainSegments(segs, chainTolerance)
	if len(outlines) != 1 {
		t.Fatalf("expected 1 closed outline, got %d", len(outlines))
	}
	if len(outlines[0]) != 4 {
		t.Errorf("expected 4 vertices, got %d", len(outlines[0]))
	}
	if area := outlineArea(outlines[0]); area < 9900 || area > 10100 {
		t.Errorf("unexpected area %f", area)
	}
}

func TestChainSegments_LargestFirst(t *testing.T) {
	square := func(x, size float64) []segment {
		return []segment{
			{point{x, 0}, point{x + size, 0}},
			{point{x + size, 0}, point{x + size, size}},
			{point{x + size, size}, point{x, size}},
			{point{x, size}, point{x, 0}},
		}
	}
	segs := append(square(0, 100), square(1000, 300)...)
	outlines := chainSegments(segs, chainTolerance)
	if len(outlines) != 2 {
		t.Fatalf("expected 2 outlines, got %d", len(outlines))
	}
	if outlineArea(outlines[0]) < outlineArea(outlines[1]) {
		t.Error("expected outlines sorted largest first")
	}
}

func TestImportDXF_LinesBecomeShape(t *testing.T) {
	path := saveDrawing(t, "wall.dxf", func(d *drawing.Drawing) error {
		pts := [][2]float64{{0, 0}, {1200, 0}, {1200, 650}, {0, 650}}
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
				return err
			}
		}
		_, err := d.Circle(5000, 5000, 0, 200)
		return err
	})

	result := ImportDXF(path, "")
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Castings) != 1 {
		t.Fatalf("expected 1 casting, got %d", len(result.Castings))
	}
	c := result.Castings[0]
	if c.Name != "wall" {
		t.Errorf("expected casting named after the file, got %q", c.Name)
	}
	if len(c.Shapes) != 1 || c.Shapes[0].Name != "Shape 1" {
		t.Fatalf("unexpected shapes %+v", c.Shapes)
	}
	if c.Shapes[0].TotalLength() != 2*(1200+650) {
		t.Errorf("unexpected perimeter %d", c.Shapes[0].TotalLength())
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "arc/circle") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a skipped-circle warning, got %v", result.Warnings)
	}
}

func TestImportDXF_Polyline(t *testing.T) {
	path := saveDrawing(t, "column.dxf", func(d *drawing.Drawing) error {
		_, err := d.LwPolyline(true,
			[]float64{0, 0},
			[]float64{400, 0},
			[]float64{400, 400},
			[]float64{0, 400},
		)
		return err
	})

	result := ImportDXF(path, "Columns")
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	c := result.Castings[0]
	if c.Name != "Columns" {
		t.Errorf("expected casting 'Columns', got %q", c.Name)
	}
	if !reflect.DeepEqual(c.Shapes[0].Sides, []int{400, 400, 400, 400}) {
		t.Errorf("unexpected sides %v", c.Shapes[0].Sides)
	}
}

func TestImportDXF_OpenPolylineSkipped(t *testing.T) {
	path := saveDrawing(t, "mixed.dxf", func(d *drawing.Drawing) error {
		// three sides of a square, left open
		if _, err := d.LwPolyline(false,
			[]float64{0, 0},
			[]float64{400, 0},
			[]float64{400, 400},
			[]float64{0, 400},
		); err != nil {
			return err
		}
		// open flag, but the last vertex returns to the first
		_, err := d.LwPolyline(false,
			[]float64{1000, 0},
			[]float64{1300, 0},
			[]float64{1300, 300},
			[]float64{1000, 0},
		)
		return err
	})

	result := ImportDXF(path, "Walls")
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	c := result.Castings[0]
	if len(c.Shapes) != 1 {
		t.Fatalf("expected only the returning polyline as a shape, got %+v", c.Shapes)
	}
	if !reflect.DeepEqual(c.Shapes[0].Sides, []int{300, 300, 424}) {
		t.Errorf("unexpected sides %v", c.Shapes[0].Sides)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "open LWPOLYLINE") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected an open polyline warning, got %v", result.Warnings)
	}
}

func TestLwPolylineToOutline_Closed(t *testing.T) {
	lw := entity.NewLwPolyline(3)
	lw.Vertices = [][]float64{{0, 0}, {100, 0}, {100, 100}}
	if _, closed := lwPolylineToOutline(lw); closed {
		t.Error("expected an open polyline")
	}
	lw.Closed = true
	outline, closed := lwPolylineToOutline(lw)
	if !closed || len(outline) != 3 {
		t.Errorf("expected a closed ring of 3, got %v closed=%v", outline, closed)
	}
}

func TestImportDXF_NoClosedShapes(t *testing.T) {
	path := saveDrawing(t, "open.dxf", func(d *drawing.Drawing) error {
		_, err := d.Line(0, 0, 0, 100, 0, 0)
		return err
	})
	result := ImportDXF(path, "X")
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "No closed shapes") {
		t.Errorf("expected no closed shapes error, got %v", result.Errors)
	}
}

func TestImportDXF_FileNotFound(t *testing.T) {
	result := ImportDXF("/nonexistent/plan.dxf", "X")
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}
