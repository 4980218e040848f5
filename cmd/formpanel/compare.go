package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/FormPanel/internal/engine"
)

var compareCmd = &cobra.Command{
	Use:   "compare FILE...",
	Short: "Try every casting as primary and recommend one",
	Long: `Runs the optimization once per casting with that casting as primary and
prints panels to buy, new panels and reuse efficiency side by side. The
recommended primary needs the fewest panels overall, then has the highest
reuse efficiency.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompare,
}

var compareFormat string

func init() {
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", "text", "Output format: text or json")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	opt, err := newOptimizer()
	if err != nil {
		return err
	}
	castings, _, err := loadCastings(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	results, err := engine.ComparePrimaries(ctx, opt, castings, appConfig.CompareWorkers)
	if err != nil {
		return fmt.Errorf("failed to compare primaries: %w", err)
	}
	best := engine.BestPrimary(results)

	out := cmd.OutOrStdout()
	if compareFormat == "json" {
		resp := struct {
			Results []engine.ComparisonResult `json:"results"`
			Best    string                    `json:"best"`
		}{Results: results}
		if best >= 0 {
			resp.Best = results[best].Primary
		}
		return encodeJSON(out, resp)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRIMARY\tPANELS TO BUY\tNEW\tREUSED\tEFFICIENCY\tCUSTOM\tWIDTHS\t")
	for i, r := range results {
		mark := ""
		if i == best {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s%s\t%d\t%d\t%d\t%.1f%%\t%d\t%d\t\n",
			r.Primary, mark, r.TotalPanels, r.NewPanels, r.ReusedPanels, r.EfficiencyPct, r.CustomPanels, r.DistinctWidths)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if best >= 0 {
		fmt.Fprintf(out, "\nRecommended primary: %s\n", results[best].Primary)
	}
	return nil
}
