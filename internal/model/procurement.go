package model

import "sort"

// ProcurementLine is one panel width to buy for the whole run.
type ProcurementLine struct {
	Size      int       `json:"size"`
	Type      PanelType `json:"type"`
	Baseline  int       `json:"baseline"`  // Bought for the primary casting
	Secondary int       `json:"secondary"` // Bought because reuse could not cover a secondary casting
	Total     int       `json:"total"`     // Baseline + Secondary
	LinearMM  int       `json:"linear_mm"` // Size * Total
}

// Procurement holds the complete purchase list of a run.
type Procurement struct {
	Lines         []ProcurementLine `json:"lines"`
	TotalPanels   int               `json:"total_panels"`
	StandardCount int               `json:"standard_count"`
	CustomCount   int               `json:"custom_count"`
	TotalLinearMM int               `json:"total_linear_mm"`
}

// CalculateProcurement computes how many panels of each width have to be
// bought: every panel of the primary casting plus the new panels reported
// for secondary castings. Lines are sorted standard first, then by width.
func CalculateProcurement(r RunResults) Procurement {
	lines := make(map[int]*ProcurementLine)
	line := func(size int, typ PanelType) *ProcurementLine {
		l, ok := lines[size]
		if !ok {
			l = &ProcurementLine{Size: size, Type: typ}
			lines[size] = l
		}
		return l
	}

	if primary := r.Primary(); primary != nil {
		for _, sh := range primary.Shapes {
			for _, side := range sh.Sides {
				for _, w := range side.Panels {
					line(w, r.PanelStats.TypeOf(w)).Baseline++
				}
			}
		}
	}
	for _, np := range r.ReuseAnalysis.NewPanels {
		line(np.Size, np.Type).Secondary += np.Count
	}

	var p Procurement
	for _, l := range lines {
		l.Total = l.Baseline + l.Secondary
		l.LinearMM = l.Size * l.Total
		p.Lines = append(p.Lines, *l)
		p.TotalPanels += l.Total
		p.TotalLinearMM += l.LinearMM
		if l.Type == PanelCustom {
			p.CustomCount += l.Total
		} else {
			p.StandardCount += l.Total
		}
	}

	sort.Slice(p.Lines, func(i, j int) bool {
		if p.Lines[i].Type != p.Lines[j].Type {
			return p.Lines[i].Type == PanelStandard
		}
		return p.Lines[i].Size < p.Lines[j].Size
	})

	return p
}

// TypeOf classifies a width by the maps it was counted in. Widths that never
// appear in the custom map are treated as standard.
func (ps PanelStats) TypeOf(width int) PanelType {
	if _, ok := ps.Custom[width]; ok {
		return PanelCustom
	}
	return PanelStandard
}

// SortedWidths returns the widths of m in ascending order.
func SortedWidths(m map[int]int) []int {
	widths := make([]int, 0, len(m))
	for w := range m {
		widths = append(widths, w)
	}
	sort.Ints(widths)
	return widths
}
