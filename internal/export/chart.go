package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/piwi3910/FormPanel/internal/model"
)

// WriteChart renders an HTML page with two bar charts: panel instances per
// width stacked by casting, and reused versus new panels per secondary
// casting.
func WriteChart(w io.Writer, res model.Result) error {
	r := res.Results
	if len(r.Castings) == 0 {
		return fmt.Errorf("no castings to export")
	}

	page := components.NewPage()
	page.AddCharts(usageChart(r), reuseChart(r))
	return page.Render(w)
}

// ExportChart writes the chart page to path.
func ExportChart(path string, res model.Result) error {
	return writeFile(path, func(w io.Writer) error { return WriteChart(w, res) })
}

// chartWidths lists standard widths then custom widths, ascending within each.
func chartWidths(stats model.PanelStats) ([]int, []string) {
	var widths []int
	var labels []string
	for _, w := range model.SortedWidths(stats.Standard) {
		widths = append(widths, w)
		labels = append(labels, fmt.Sprintf("%d", w))
	}
	for _, w := range model.SortedWidths(stats.Custom) {
		widths = append(widths, w)
		labels = append(labels, fmt.Sprintf("%d (custom)", w))
	}
	return widths, labels
}

func usageChart(r model.RunResults) *charts.Bar {
	widths, labels := chartWidths(r.PanelStats)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Panel layout"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Panels by width",
			Subtitle: fmt.Sprintf("Primary casting: %s", r.PrimaryCasting),
		}),
	)
	bar.SetXAxis(labels)

	for _, cl := range r.Castings {
		counts := make(map[int]int)
		for _, sh := range cl.Shapes {
			for _, side := range sh.Sides {
				for _, p := range side.Panels {
					counts[p]++
				}
			}
		}
		items := make([]opts.BarData, len(widths))
		for i, w := range widths {
			items[i] = opts.BarData{Value: counts[w]}
		}
		bar.AddSeries(cl.Name, items)
	}
	bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "castings"}))
	return bar
}

func reuseChart(r model.RunResults) *charts.Bar {
	var names []string
	var reused, fresh []opts.BarData
	for _, cl := range r.Castings {
		if cl.Type == model.RolePrimary {
			continue
		}
		var ru, nw int
		for _, a := range cl.Allocation {
			ru += a.Reused
			nw += a.New
		}
		names = append(names, cl.Name)
		reused = append(reused, opts.BarData{Value: ru})
		fresh = append(fresh, opts.BarData{Value: nw})
	}

	e := r.ReuseAnalysis.Efficiency
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Reuse per secondary casting",
			Subtitle: fmt.Sprintf("Efficiency %.1f%% (%d of %d panels reused)", e.Percentage, e.ReusedPanels, e.TotalPanels),
		}),
	)
	bar.SetXAxis(names).
		AddSeries("Reused", reused).
		AddSeries("New", fresh)
	bar.SetSeriesOptions(charts.WithBarChartOpts(opts.BarChart{Stack: "panels"}))
	return bar
}
