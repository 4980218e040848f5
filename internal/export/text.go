package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/piwi3910/FormPanel/internal/model"
)

// WriteText writes the plain-text layout report: every casting's sides with
// their panels, the panel usage summary and the secondary requirements.
func WriteText(w io.Writer, res model.Result) error {
	r := res.Results
	if len(r.Castings) == 0 {
		return fmt.Errorf("no castings to export")
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Results (Primary Casting: %s)\n\n", r.PrimaryCasting)

	stars := strings.Repeat("*", 20)
	for _, cl := range r.Castings {
		fmt.Fprintf(bw, "%s %s %s\n", stars, cl.Name, stars)
		fmt.Fprintln(bw, cl.Type)
		for _, sh := range cl.Shapes {
			fmt.Fprintf(bw, "\n  Shape: %s\n", sh.Name)
			for _, side := range sh.Sides {
				fmt.Fprintf(bw, "    Side %d (Length: %d): %s\n", side.Number, side.Length, formatPanels(side.Panels))
			}
		}
		fmt.Fprintln(bw)
	}

	rule := strings.Repeat("=", 50)
	stats := r.PanelStats
	fmt.Fprintf(bw, "%s\nPANEL USAGE SUMMARY\n%s\n", rule, rule)
	fmt.Fprintf(bw, "Total panel types used: %d\n", stats.Totals.TotalTypes)
	fmt.Fprintf(bw, "Standard panel types: %d\n", stats.Totals.StandardTypes)
	fmt.Fprintf(bw, "Custom panel types: %d\n", stats.Totals.CustomTypes)

	fmt.Fprintln(bw, "\nStandard panels:")
	for _, size := range model.SortedWidths(stats.Standard) {
		fmt.Fprintf(bw, "  Size %dmm: %d panels\n", size, stats.Standard[size])
	}
	fmt.Fprintln(bw, "\nCustom panels:")
	for _, size := range model.SortedWidths(stats.Custom) {
		fmt.Fprintf(bw, "  Size %dmm: %d panels\n", size, stats.Custom[size])
	}

	ra := r.ReuseAnalysis
	fmt.Fprintf(bw, "\n%s\nSECONDARY CASTING PANEL REQUIREMENTS\n%s\n", rule, rule)
	if ra.Totals.TotalNew > 0 {
		fmt.Fprintln(bw, "New panels needed for secondary castings:")
		for _, np := range ra.NewPanels {
			fmt.Fprintf(bw, "  %s: Size %dmm (%s): %d new panels\n", np.Casting, np.Size, np.Type, np.Count)
		}
		fmt.Fprintf(bw, "\nTotal new panels needed: %d\n", ra.Totals.TotalNew)
		fmt.Fprintf(bw, "  Standard panels: %d\n", ra.Totals.StandardNew)
		fmt.Fprintf(bw, "  Custom panels: %d\n", ra.Totals.CustomNew)
	} else {
		fmt.Fprintln(bw, "No additional panels needed - all secondary panels can be reused from primary casting!")
	}

	if e := ra.Efficiency; e.TotalPanels > 0 {
		fmt.Fprintf(bw, "\nPanel reuse efficiency: %.1f%% (%d of %d panels reused)\n",
			e.Percentage, e.ReusedPanels, e.TotalPanels)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(bw, "\nWarnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(bw, "  - %s\n", warn)
		}
	}

	return bw.Flush()
}

// ExportText writes the text report to path.
func ExportText(path string, res model.Result) error {
	return writeFile(path, func(w io.Writer) error { return WriteText(w, res) })
}

// formatPanels renders widths as "[600, 100]".
func formatPanels(panels []int) string {
	parts := make([]string, len(panels))
	for i, p := range panels {
		parts[i] = fmt.Sprint(p)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// writeFile creates path and streams fn's output into it.
func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
