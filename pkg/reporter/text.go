package reporter

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// GenerateText writes a plain terminal report
func GenerateText(report *Report, writer io.Writer) error {
	var b strings.Builder
	spec := report.Specification
	est := report.Estimates

	fmt.Fprintf(&b, "Hardware Cost Comparison (%s TCO)\n", strings.ToLower(report.HorizonLabel()))
	fmt.Fprintf(&b, "Specification: %d vCPU, %d GB RAM, %d GB storage\n\n", spec.CPUCores, spec.MemoryGB, spec.StorageGB)

	fmt.Fprintf(&b, "%s  %s\n", est.Azure.Provider, est.Azure.InstanceTier)
	fmt.Fprintf(&b, "  Monthly: %s\n", money(est.Azure.MonthlyRate))
	fmt.Fprintf(&b, "  Total:   %s\n", money(est.Azure.TotalCost))
	fmt.Fprintf(&b, "%s  %s\n", est.AWS.Provider, est.AWS.InstanceTier)
	fmt.Fprintf(&b, "  Monthly: %s\n", money(est.AWS.MonthlyRate))
	fmt.Fprintf(&b, "  Total:   %s\n", money(est.AWS.TotalCost))
	fmt.Fprintf(&b, "On-Premises  %s\n", est.OnPrem.Description)
	fmt.Fprintf(&b, "  Hardware:        %s\n", money(est.OnPrem.HardwareCost))
	fmt.Fprintf(&b, "  Power & cooling: %s\n", money(est.OnPrem.PowerCost))
	fmt.Fprintf(&b, "  Total:           %s\n\n", money(est.OnPrem.TotalCost))

	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "Platform\tMonthly Cost\t%s Total\tvs Cheapest\t\n", report.HorizonLabel())
	for _, row := range report.Comparison.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", row.Label, money(row.MonthlyCost), money(row.TotalCost), delta(row))
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to format table: %w", err)
	}

	fmt.Fprintf(&b, "\nCheapest: %s at %s\n\n", report.Comparison.CheapestLabel, money(report.Comparison.CheapestTotal))
	for _, note := range report.Notes {
		fmt.Fprintf(&b, "* %s\n", note)
	}

	if _, err := io.WriteString(writer, b.String()); err != nil {
		return fmt.Errorf("failed to write text report: %w", err)
	}
	return nil
}
