package main

import (
	"fmt"
	"log/slog"

	"github.com/aluiziolira/go-scrape-recipes/config"
	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagVerbose bool

	// cfg is resolved once per invocation: defaults, then the config file,
	// then the environment. Subcommands apply their own flags on top.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "scraper",
	Short: "Extract structured recipes from recipe web pages",
	Long: `scraper fetches recipe pages and extracts a normalized recipe from each one,
trying a site-pattern library, JSON-LD, microdata and finally HTML heuristics.

Usage:
  scraper scrape <url> [flags]
  scraper batch --input urls.txt [flags]
  scraper parse "2 1/2 tazas de harina (tamizada)"`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose logging")
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	cfg = config.DefaultConfig()
	if flagConfig != "" {
		if err := cfg.LoadFile(flagConfig); err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = flagVerbose
	}

	logger, level := newLogger(cfg.Verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())
	return nil
}

// validateConfig checks cfg after subcommand flags were applied.
func validateConfig() error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
