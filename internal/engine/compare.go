package engine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/piwi3910/FormPanel/internal/model"
)

// ComparisonResult holds the outcome of running the optimizer with one
// candidate primary casting.
type ComparisonResult struct {
	Primary        string       `json:"primary"`
	Result         model.Result `json:"-"`
	TotalPanels    int          `json:"total_panels"` // panels bought for the whole run
	NewPanels      int          `json:"new_panels"`   // bought for secondary castings
	ReusedPanels   int          `json:"reused_panels"`
	EfficiencyPct  float64      `json:"efficiency_percentage"`
	CustomPanels   int          `json:"custom_panels"` // custom panel instances across all castings
	DistinctWidths int          `json:"distinct_widths"`
}

// ComparePrimaries runs the optimizer once per casting, each time with that
// casting as primary, and returns the results in casting order. Runs execute
// concurrently with at most workers in flight (workers <= 0 means one per
// casting). The first failing run cancels the rest.
func ComparePrimaries(ctx context.Context, opt *Optimizer, castings []model.Casting, workers int) ([]ComparisonResult, error) {
	if err := ValidateCastings(castings); err != nil {
		return nil, err
	}

	results := make([]ComparisonResult, len(castings))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, c := range castings {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := opt.Run(castings, c.Name)
			if err != nil {
				return err
			}
			results[i] = summarize(c.Name, res)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func summarize(primary string, res model.Result) ComparisonResult {
	r := res.Results
	proc := model.CalculateProcurement(r)
	custom := 0
	for _, n := range r.PanelStats.Custom {
		custom += n
	}
	return ComparisonResult{
		Primary:        primary,
		Result:         res,
		TotalPanels:    proc.TotalPanels,
		NewPanels:      r.ReuseAnalysis.Totals.TotalNew,
		ReusedPanels:   r.ReuseAnalysis.Efficiency.ReusedPanels,
		EfficiencyPct:  r.ReuseAnalysis.Efficiency.Percentage,
		CustomPanels:   custom,
		DistinctWidths: r.PanelStats.Totals.TotalTypes,
	}
}

// BestPrimary picks the comparison with the fewest panels to buy, then the
// highest reuse efficiency, then the earliest in input order.
// It returns -1 for an empty slice.
func BestPrimary(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if best < 0 {
			best = i
			continue
		}
		b := results[best]
		switch {
		case r.TotalPanels < b.TotalPanels:
			best = i
		case r.TotalPanels == b.TotalPanels && r.EfficiencyPct > b.EfficiencyPct:
			best = i
		}
	}
	return best
}
