package model

import "github.com/google/uuid"

// Role marks a casting as the primary (baseline) pour or a later secondary one.
type Role string

const (
	RolePrimary   Role = "PRIMARY"
	RoleSecondary Role = "SECONDARY"
)

func (r Role) String() string {
	return string(r)
}

// PanelType classifies a panel width against the standard catalog.
type PanelType string

const (
	PanelStandard PanelType = "standard"
	PanelCustom   PanelType = "custom"
)

// Shape is a named element of a casting defined only by its side lengths.
type Shape struct {
	Name  string `json:"name"`
	Sides []int  `json:"sides"` // mm, in declared order
}

// NewShape creates a shape, copying the side lengths.
func NewShape(name string, sides ...int) Shape {
	return Shape{
		Name:  name,
		Sides: append([]int(nil), sides...),
	}
}

// TotalLength returns the sum of all side lengths in mm.
func (s Shape) TotalLength() int {
	total := 0
	for _, l := range s.Sides {
		total += l
	}
	return total
}

// Casting is one concrete pour unit made of named shapes.
type Casting struct {
	Name   string  `json:"name"`
	Role   Role    `json:"role,omitempty"` // Assigned by the optimizer from the primary selection
	Shapes []Shape `json:"shapes"`
}

func NewCasting(name string, shapes ...Shape) Casting {
	return Casting{
		Name:   name,
		Shapes: append([]Shape(nil), shapes...),
	}
}

// AddShape appends a shape to the casting.
func (c *Casting) AddShape(s Shape) {
	c.Shapes = append(c.Shapes, s)
}

// SideCount returns the number of sides across all shapes.
func (c Casting) SideCount() int {
	n := 0
	for _, s := range c.Shapes {
		n += len(s.Sides)
	}
	return n
}

// TotalLength returns the sum of all side lengths across all shapes.
func (c Casting) TotalLength() int {
	total := 0
	for _, s := range c.Shapes {
		total += s.TotalLength()
	}
	return total
}

// Algorithm selects the side decomposition strategy.
type Algorithm string

const (
	AlgorithmGreedy  Algorithm = "greedy"  // Largest standard width first, custom remainder last (fast, default)
	AlgorithmMinimal Algorithm = "minimal" // Dynamic programming for the fewest panels per side
)

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	return a == AlgorithmGreedy || a == AlgorithmMinimal
}

// Settings holds the resolved engine configuration for one optimizer.
type Settings struct {
	StandardWidths []int     `json:"standard_widths"`  // Catalog of standard panel widths in mm
	MinCustomWidth int       `json:"min_custom_width"` // Custom panels narrower than this are flagged, 0 = no policy
	Algorithm      Algorithm `json:"algorithm"`
}

// DefaultSettings returns settings with the greedy algorithm and no catalog.
// The catalog must come from configuration.
func DefaultSettings() Settings {
	return Settings{
		Algorithm: AlgorithmGreedy,
	}
}

// SideLayout is one side with its resolved panel widths.
type SideLayout struct {
	Number int   `json:"number"` // 1-based, in declared order
	Length int   `json:"length"` // mm
	Panels []int `json:"panels"` // widths in mm, sum == Length
}

// PanelTotal returns the sum of the panel widths.
func (s SideLayout) PanelTotal() int {
	total := 0
	for _, p := range s.Panels {
		total += p
	}
	return total
}

// ShapeLayout is one shape with all of its decomposed sides.
type ShapeLayout struct {
	Name  string       `json:"name"`
	Sides []SideLayout `json:"sides"`
}

// WidthAllocation records how one required width of a secondary casting
// was satisfied from the shared panel pool.
type WidthAllocation struct {
	Size     int       `json:"size"`
	Type     PanelType `json:"type"`
	Required int       `json:"required"`
	Reused   int       `json:"reused"`
	New      int       `json:"new"`
}

// CastingLayout is the per-casting output of an optimization run.
type CastingLayout struct {
	Name       string            `json:"name"`
	Type       Role              `json:"type"`
	Shapes     []ShapeLayout     `json:"shapes"`
	Allocation []WidthAllocation `json:"allocation,omitempty"` // Secondary castings only
}

// PanelCount returns the number of panel instances used by the casting.
func (cl CastingLayout) PanelCount() int {
	n := 0
	for _, sh := range cl.Shapes {
		for _, side := range sh.Sides {
			n += len(side.Panels)
		}
	}
	return n
}

// PanelTotals holds the distinct-width counts of PanelStats.
type PanelTotals struct {
	TotalTypes    int `json:"total_types"`
	StandardTypes int `json:"standard_types"`
	CustomTypes   int `json:"custom_types"`
}

// PanelStats holds run-wide panel instance counts by width.
type PanelStats struct {
	Standard map[int]int `json:"standard"`
	Custom   map[int]int `json:"custom"`
	Totals   PanelTotals `json:"totals"`
}

// NewPanel is one line of the secondary castings' procurement requirement.
type NewPanel struct {
	Casting string    `json:"casting"`
	Size    int       `json:"size"`
	Type    PanelType `json:"type"`
	Count   int       `json:"count"`
}

// ReuseTotals sums the new panels required by secondary castings.
type ReuseTotals struct {
	TotalNew    int `json:"total_new"`
	StandardNew int `json:"standard_new"`
	CustomNew   int `json:"custom_new"`
}

// Efficiency is the share of secondary panel requirements met by reuse.
type Efficiency struct {
	Percentage   float64 `json:"percentage"` // one decimal place
	ReusedPanels int     `json:"reused_panels"`
	TotalPanels  int     `json:"total_panels"`
}

// ReuseAnalysis summarizes reuse across all secondary castings.
type ReuseAnalysis struct {
	NewPanels  []NewPanel  `json:"new_panels"`
	Totals     ReuseTotals `json:"totals"`
	Efficiency Efficiency  `json:"efficiency"`
}

// RunResults is the body of a completed optimization.
type RunResults struct {
	PrimaryCasting string          `json:"primary_casting"`
	Castings       []CastingLayout `json:"castings"`
	PanelStats     PanelStats      `json:"panel_stats"`
	ReuseAnalysis  ReuseAnalysis   `json:"reuse_analysis"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// Primary returns the layout of the primary casting, or nil.
func (r RunResults) Primary() *CastingLayout {
	for i := range r.Castings {
		if r.Castings[i].Type == RolePrimary {
			return &r.Castings[i]
		}
	}
	return nil
}

// Result is the full optimizer output: the step log and the results.
type Result struct {
	Steps   []string   `json:"steps"`
	Results RunResults `json:"results"`
}

// Project ties castings, the primary selection and the last result together
// for save/load.
type Project struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Castings       []Casting `json:"castings"`
	PrimaryCasting string    `json:"primary_casting"`
	Settings       Settings  `json:"settings"`
	Result         *Result   `json:"result,omitempty"`
}

func NewProject(name string) Project {
	return Project{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Castings: []Casting{},
		Settings: DefaultSettings(),
	}
}
