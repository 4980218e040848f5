package importer

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/FormPanel/internal/model"
)

// point is a 2D drawing coordinate in millimetres.
type point struct {
	X, Y float64
}

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start point
	end   point
}

// chainTolerance is the maximum endpoint gap, in mm, for two LINEs to join.
const chainTolerance = 0.5

// ImportDXF imports one casting from a plan drawing. Each closed LWPOLYLINE
// or closed chain of LINEs becomes a shape whose sides are its edge lengths
// rounded to whole millimetres. Curved geometry cannot be formed with flat
// panels and is skipped with a warning. An empty castingName uses the file
// name.
func ImportDXF(path, castingName string) ImportResult {
	result := ImportResult{}

	if castingName == "" {
		castingName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]point
	var segments []segment
	curved := 0

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			if hasBulge(e) {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with arc segments")
				continue
			}
			outline, closed := lwPolylineToOutline(e)
			if !closed {
				result.Warnings = append(result.Warnings,
					"Skipped open LWPOLYLINE")
				continue
			}
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})

		case *entity.Circle, *entity.Arc:
			curved++

		default:
			// Unsupported entity types are silently skipped
		}
	}
	if curved > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d arc/circle entities", curved))
	}

	outlines = append(outlines, chainSegments(segments, chainTolerance)...)

	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	casting := model.NewCasting(castingName)
	for _, outline := range outlines {
		name := fmt.Sprintf("Shape %d", len(casting.Shapes)+1)
		sides, dropped := outlineSides(outline)
		if dropped > 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: dropped %d edges shorter than 1 mm", name, dropped))
		}
		if len(sides) < 3 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape with %d usable edges", len(sides)))
			continue
		}
		casting.AddShape(model.NewShape(name, sides...))
	}

	if len(casting.Shapes) == 0 {
		result.Errors = append(result.Errors, "No usable shapes found in DXF file")
		return result
	}
	result.Castings = []model.Casting{casting}
	return result
}

func hasBulge(lw *entity.LwPolyline) bool {
	for _, b := range lw.Bulges {
		if math.Abs(b) > 1e-9 {
			return true
		}
	}
	return false
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to its vertex ring,
// dropping a repeated closing vertex. A polyline counts as closed when its
// closed flag is set or its last vertex returns to the first.
func lwPolylineToOutline(lw *entity.LwPolyline) ([]point, bool) {
	outline := make([]point, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		outline = append(outline, point{X: v[0], Y: v[1]})
	}
	closed := lw.Closed
	if n := len(outline); n > 1 && pointsClose(outline[0], outline[n-1], chainTolerance) {
		outline = outline[:n-1]
		closed = true
	}
	return outline, closed
}

// outlineSides returns the closed ring's edge lengths in drawing order,
// starting with the edge from the first vertex. Edges that round to zero are
// dropped and counted.
func outlineSides(o []point) ([]int, int) {
	sides := make([]int, 0, len(o))
	dropped := 0
	for i := range o {
		a, b := o[i], o[(i+1)%len(o)]
		l := int(math.Round(math.Hypot(b.X-a.X, b.Y-a.Y)))
		if l <= 0 {
			dropped++
			continue
		}
		sides = append(sides, l)
	}
	return sides, dropped
}

// chainSegments connects individual segments into closed outlines.
// tolerance is the maximum distance between endpoints to consider them connected.
// Open chains are discarded.
func chainSegments(segs []segment, tolerance float64) [][]point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	// Largest first for consistent ordering
	sort.SliceStable(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o []point) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}
