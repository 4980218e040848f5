// Command formpanel lays out formwork panels for concrete castings and
// reports which panels of the primary casting can be reused by later ones.
//
// Build:
//
//	go build -o formpanel ./cmd/formpanel
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/FormPanel/internal/model"
	"github.com/piwi3910/FormPanel/internal/project"
)

var (
	// Global flags
	configPath     string
	envPath        string
	verbose        bool
	widthsFlag     string
	minCustomWidth int
	algorithmFlag  string
	presetFlag     string

	// Resolved in PersistentPreRunE
	appConfig model.AppConfig
	logger    = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "formpanel",
	Short: "Formwork panel layout and reuse planner",
	Long: `formpanel splits every side of every shape of a set of concrete castings
into standard formwork panels, with at most one custom panel per side, and
works out how many panels of the primary casting later castings can reuse.

The panel catalog comes from configuration: ~/.formpanel/config.json (or
.yaml), a .env file, FORMPANEL_* environment variables or --widths.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := project.LoadEffectiveConfig(configPath, envPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := applyFlags(cmd, &cfg); err != nil {
			return err
		}
		appConfig = cfg

		l, err := buildLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", project.DefaultConfigPath(), "Config file (.json, .yaml or .yml)")
	pf.StringVar(&envPath, "env-file", ".env", "Environment file loaded before FORMPANEL_* variables are read")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&widthsFlag, "widths", "", "Standard panel widths in mm, e.g. 100,200,300")
	pf.IntVar(&minCustomWidth, "min-custom-width", 0, "Warn about custom panels narrower than this (mm)")
	pf.StringVar(&algorithmFlag, "algorithm", "", "Decomposition algorithm: greedy or minimal")
	pf.StringVar(&presetFlag, "preset", "", "Catalog preset to use instead of configured widths")
}

// applyFlags overrides cfg with the flags the user actually set.
func applyFlags(cmd *cobra.Command, cfg *model.AppConfig) error {
	flags := cmd.Flags()
	if flags.Changed("widths") {
		widths, err := project.ParseWidths(widthsFlag)
		if err != nil {
			return fmt.Errorf("--widths: %w", err)
		}
		cfg.StandardWidths = widths
	}
	if flags.Changed("min-custom-width") {
		cfg.MinCustomWidth = minCustomWidth
	}
	if flags.Changed("algorithm") {
		a := model.Algorithm(algorithmFlag)
		if !a.Valid() {
			return fmt.Errorf("--algorithm: unknown algorithm %q", algorithmFlag)
		}
		cfg.Algorithm = a
	}
	if flags.Changed("preset") {
		cfg.CatalogPreset = presetFlag
		// an explicit preset replaces configured widths unless --widths is also given
		if !flags.Changed("widths") {
			cfg.StandardWidths = nil
		}
	}
	return nil
}

func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("unknown log level %q", level)
		}
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
