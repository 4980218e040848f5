package engine

import (
	"math"

	"github.com/piwi3910/FormPanel/internal/model"
)

// AggregateStats sums every casting's tally into run-wide standard and
// custom counts.
func AggregateStats(tallies []Tally, catalog *Catalog) model.PanelStats {
	stats := model.PanelStats{
		Standard: make(map[int]int),
		Custom:   make(map[int]int),
	}
	for _, t := range tallies {
		for w, n := range t {
			if catalog.IsStandard(w) {
				stats.Standard[w] += n
			} else {
				stats.Custom[w] += n
			}
		}
	}
	stats.Totals = model.PanelTotals{
		TotalTypes:    len(stats.Standard) + len(stats.Custom),
		StandardTypes: len(stats.Standard),
		CustomTypes:   len(stats.Custom),
	}
	return stats
}

// Efficiency computes the reuse ratio, rounded to one decimal place.
// It is zero when nothing was required.
func Efficiency(reused, total int) model.Efficiency {
	e := model.Efficiency{ReusedPanels: reused, TotalPanels: total}
	if total > 0 {
		e.Percentage = roundTo(float64(reused)/float64(total)*100, 1)
	}
	return e
}

// BuildReuseAnalysis flattens an allocation into the reported new-panel
// lines, ordered by casting then width.
func BuildReuseAnalysis(alloc Allocation) model.ReuseAnalysis {
	ra := model.ReuseAnalysis{
		NewPanels:  []model.NewPanel{},
		Efficiency: Efficiency(alloc.Reused, alloc.Total),
	}
	for _, ca := range alloc.Castings {
		for _, l := range ca.Lines {
			if l.New == 0 {
				continue
			}
			ra.NewPanels = append(ra.NewPanels, model.NewPanel{
				Casting: ca.Casting,
				Size:    l.Size,
				Type:    l.Type,
				Count:   l.New,
			})
			if l.Type == model.PanelCustom {
				ra.Totals.CustomNew += l.New
			} else {
				ra.Totals.StandardNew += l.New
			}
		}
	}
	ra.Totals.TotalNew = ra.Totals.StandardNew + ra.Totals.CustomNew
	return ra
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
