package engine

import (
	"github.com/piwi3910/FormPanel/internal/model"
)

// Tally counts panel instances by width.
type Tally map[int]int

// Add merges other into t.
func (t Tally) Add(other Tally) {
	for w, n := range other {
		t[w] += n
	}
}

// Total returns the number of panel instances.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// CastingTally pairs a casting name with its panel tally.
type CastingTally struct {
	Name  string
	Tally Tally
}

// ProcessCasting decomposes every side of every shape in declared order.
// Sides are numbered from 1 within their shape. The tally counts each panel
// instance, so a side using the same width twice counts twice.
func ProcessCasting(c model.Casting, d Decomposer) (model.CastingLayout, Tally) {
	layout := model.CastingLayout{
		Name:   c.Name,
		Type:   c.Role,
		Shapes: make([]model.ShapeLayout, 0, len(c.Shapes)),
	}
	tally := make(Tally)

	for _, shape := range c.Shapes {
		sl := model.ShapeLayout{
			Name:  shape.Name,
			Sides: make([]model.SideLayout, 0, len(shape.Sides)),
		}
		for i, length := range shape.Sides {
			panels := d.Decompose(length)
			for _, w := range panels {
				tally[w]++
			}
			sl.Sides = append(sl.Sides, model.SideLayout{
				Number: i + 1,
				Length: length,
				Panels: panels,
			})
		}
		layout.Shapes = append(layout.Shapes, sl)
	}

	return layout, tally
}
