package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opscart/hardware-cost-compare/pkg/models"
	"github.com/opscart/hardware-cost-compare/pkg/output"
	"github.com/opscart/hardware-cost-compare/pkg/pricing"
	"github.com/opscart/hardware-cost-compare/pkg/reporter"
	"github.com/opscart/hardware-cost-compare/pkg/session"
	"github.com/opscart/hardware-cost-compare/pkg/sizing"
)

var (
	// Compare flags
	cpuCores     int
	memoryGB     int
	storageGB    int
	fieldEdits   []string
	reportFormat string
	reportOutput string
)

func newCompareCmd() *cobra.Command {
	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare three-year costs for a hardware specification",
		Example: `  tco-compare compare --cpu 8 --memory 32 --storage 1000
  tco-compare compare --set cpu=-3 -o json
  tco-compare compare --report-format html --report-output tco.html`,
		Args: cobra.NoArgs,
		RunE: runCompare,
	}

	compareCmd.Flags().IntVar(&cpuCores, "cpu", 0, "CPU cores (default from TCO_DEFAULT_CPU)")
	compareCmd.Flags().IntVar(&memoryGB, "memory", 0, "Memory in GB (default from TCO_DEFAULT_MEMORY)")
	compareCmd.Flags().IntVar(&storageGB, "storage", 0, "Storage in GB (default from TCO_DEFAULT_STORAGE)")
	compareCmd.Flags().StringArrayVar(&fieldEdits, "set", nil, "Raw field edit as field=value, applied like form input (repeatable)")
	addReportFlags(compareCmd)

	return compareCmd
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&reportFormat, "report-format", "", "Also write a report: html, markdown, csv, text")
	cmd.Flags().StringVar(&reportOutput, "report-output", "", "Report file (default reports/tco-report-<timestamp>.<ext>)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	card, err := loadRateCard()
	if err != nil {
		return err
	}

	spec := cfg.DefaultSpec
	if cmd.Flags().Changed("cpu") {
		spec.CPUCores = cpuCores
	}
	if cmd.Flags().Changed("memory") {
		spec.MemoryGB = memoryGB
	}
	if cmd.Flags().Changed("storage") {
		spec.StorageGB = storageGB
	}

	sess := session.NewWithSpec(pricing.NewSet(card), spec, logger)
	for _, edit := range fieldEdits {
		name, raw, ok := strings.Cut(edit, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q: expected field=value", edit)
		}
		field, err := models.ParseField(name)
		if err != nil {
			return err
		}
		sess.UpdateField(field, raw)
	}

	current := sess.Specification()
	for _, field := range current.OutOfBounds() {
		b := models.Bounds[field]
		logger.Warn().
			Str("field", string(field)).
			Int("value", current.Get(field)).
			Int("min", b.Min).
			Int("max", b.Max).
			Msg("Value outside the usual input range; estimating anyway")
	}

	return display(cmd, card, sess.Snapshot(), nil)
}

// display prints a snapshot in the chosen format and writes the report if asked
func display(cmd *cobra.Command, card *pricing.RateCard, snap session.Snapshot, sized *sizing.Result) error {
	handler, err := output.NewHandler(cfg.OutputFormat, cmd.OutOrStdout(), card)
	if err != nil {
		return err
	}

	result := &output.Result{
		Specification: snap.Specification,
		Estimates:     snap.Estimates,
		Comparison:    snap.Comparison,
		Currency:      models.Currency,
		Sizing:        sized,
		Timestamp:     time.Now(),
	}
	if err := handler.DisplayComparison(cmd.Context(), result); err != nil {
		return err
	}

	if reportFormat != "" {
		if err := writeReport(cmd, card, snap); err != nil {
			return fmt.Errorf("failed to generate report: %w", err)
		}
	}
	return nil
}

func writeReport(cmd *cobra.Command, card *pricing.RateCard, snap session.Snapshot) error {
	format, err := reporter.ParseFormat(reportFormat)
	if err != nil {
		return err
	}

	rep := reporter.New(format).WithRateCard(card)
	report, err := rep.Generate(snap.Specification, snap.Estimates, snap.Comparison)
	if err != nil {
		return err
	}

	outputFile := reportOutput
	if outputFile == "" {
		timestamp := report.GeneratedAt.Format("20060102-150405")
		outputFile = filepath.Join("reports", "tco-report-"+timestamp+format.Extension())
	}
	if dir := filepath.Dir(outputFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create reports directory: %w", err)
		}
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := rep.Write(report, file); err != nil {
		return err
	}

	logger.Info().Str("report_id", report.ID).Str("format", string(format)).Str("path", outputFile).Msg("Report generated")
	if cfg.OutputFormat == "text" {
		fmt.Fprintf(cmd.OutOrStdout(), "\n[INFO] %s report generated: %s\n", strings.ToUpper(string(format)), outputFile)
	}
	return nil
}
