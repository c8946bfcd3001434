package output

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/opscart/hardware-cost-compare/pkg/pricing"
	"github.com/opscart/hardware-cost-compare/pkg/reporter"
)

// TextHandler prints the terminal report
type TextHandler struct {
	w    io.Writer
	card *pricing.RateCard
}

func (h *TextHandler) Format() string {
	return "text"
}

func (h *TextHandler) DisplayComparison(ctx context.Context, result *Result) error {
	if s := result.Sizing; s != nil {
		fmt.Fprintf(h.w, "[INFO] Sized %s from %s (%s)", s.Target, s.Source, s.Mode)
		if s.HostingProvider != "" {
			fmt.Fprintf(h.w, ", currently on %s", s.HostingProvider)
			if s.Region != "" {
				fmt.Fprintf(h.w, " in %s", s.Region)
			}
		}
		fmt.Fprintln(h.w)
		fmt.Fprintln(h.w)
	}

	rep := reporter.New(reporter.FormatText).WithRateCard(h.card)
	report, err := rep.Generate(result.Specification, result.Estimates, result.Comparison)
	if err != nil {
		return err
	}
	return rep.Write(report, h.w)
}

func (h *TextHandler) DisplayTiers(ctx context.Context, card *pricing.RateCard) error {
	tw := tabwriter.NewWriter(h.w, 0, 0, 2, ' ', 0)

	for _, cloud := range []struct {
		name  string
		rates pricing.CloudRates
	}{
		{"Azure", card.Azure},
		{"AWS", card.AWS},
	} {
		fmt.Fprintf(tw, "%s (storage £%.2f/GB/month)\n", cloud.name, cloud.rates.StorageRatePerGB)
		fmt.Fprintln(tw, "  TIER\tMAX CPU\tMAX MEMORY (GB)\tMONTHLY (£)\t")
		for _, tier := range cloud.rates.Tiers {
			fmt.Fprintf(tw, "  %s\t%d\t%d\t%.2f\t\n", tier.Name, tier.MaxCPU, tier.MaxMemoryGB, tier.MonthlyRate)
		}
		fmt.Fprintf(tw, "  %s\t-\t-\t%.2f\t\n\n", cloud.rates.Fallback.Name, cloud.rates.Fallback.MonthlyRate)
	}

	onPrem := card.OnPrem
	fmt.Fprintf(tw, "On-Prem (%dGB SSD at £%.2f, £%.2f/kWh, cooling x%.2f)\n",
		onPrem.DriveCapacityGB, onPrem.DriveCost, onPrem.PowerRatePerKWh, onPrem.CoolingMultiplier)
	fmt.Fprintln(tw, "  SERVER\tMAX CPU\tMAX MEMORY (GB)\tHARDWARE (£)\tWATTS\t")
	for _, class := range onPrem.Classes {
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%.2f\t%.0f\t\n", class.Label, class.MaxCPU, class.MaxMemoryGB, class.HardwareCost, class.PowerWatts)
	}
	fmt.Fprintf(tw, "  %s\t-\t-\t%.2f\t%.0f\t\n", onPrem.Fallback.Label, onPrem.Fallback.HardwareCost, onPrem.Fallback.PowerWatts)

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write tiers: %w", err)
	}
	return nil
}

// DisplayNodes prints one sizing target per line
func (h *TextHandler) DisplayNodes(ctx context.Context, nodes []string) error {
	if len(nodes) == 0 {
		_, err := fmt.Fprintln(h.w, "No Ready nodes found")
		return err
	}
	for _, node := range nodes {
		if _, err := fmt.Fprintln(h.w, node); err != nil {
			return fmt.Errorf("failed to write nodes: %w", err)
		}
	}
	return nil
}
