package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opscart/hardware-cost-compare/pkg/config"
	"github.com/opscart/hardware-cost-compare/pkg/logging"
	"github.com/opscart/hardware-cost-compare/pkg/pricing"
)

var (
	// Global flags
	verbose      bool
	logFormat    string
	envFile      string
	rateCardPath string
	outputFormat string

	cfg    *config.Config
	logger zerolog.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tco-compare",
		Short: "Three-year hardware cost comparison: Azure vs AWS vs on-prem",
		Long: `Estimate what a server of a given size costs over three years when rented
from Azure or AWS, or bought refurbished and run on-premises, and report
which is cheapest.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: initialize,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: console, json (default from LOG_FORMAT)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading configuration")
	rootCmd.PersistentFlags().StringVar(&rateCardPath, "rate-card", "", "YAML rate card overriding built-in prices (default from TCO_RATE_CARD)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: text, json, yaml (default from TCO_OUTPUT_FORMAT)")

	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newTiersCmd())
	rootCmd.AddCommand(newSizeCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// initialize loads .env and the environment, then applies global flags over it
func initialize(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv(envFile); err != nil {
		return err
	}

	cfg = config.NewConfig()
	if rateCardPath != "" {
		cfg.RateCardPath = rateCardPath
	}
	if outputFormat != "" {
		cfg.OutputFormat = outputFormat
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	return nil
}

// loadRateCard returns the configured rate card, or the built-in one
func loadRateCard() (*pricing.RateCard, error) {
	if cfg.RateCardPath == "" {
		return pricing.DefaultRateCard(), nil
	}
	card, err := pricing.LoadRateCard(cfg.RateCardPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("path", cfg.RateCardPath).Int("horizon_months", card.HorizonMonths).Msg("Loaded rate card")
	return card, nil
}
