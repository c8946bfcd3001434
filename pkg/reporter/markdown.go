package reporter

import (
	"fmt"
	"io"
	"strings"
)

// GenerateMarkdown creates a Markdown report
func GenerateMarkdown(report *Report, writer io.Writer) error {
	var b strings.Builder
	spec := report.Specification
	est := report.Estimates

	fmt.Fprintf(&b, "# Hardware Cost Comparison\n\n")
	fmt.Fprintf(&b, "**Report:** `%s`  \n", report.ID)
	fmt.Fprintf(&b, "**Generated:** %s\n\n", report.GeneratedAt.Format("January 2, 2006 15:04:05 MST"))

	b.WriteString("## Specification\n\n")
	fmt.Fprintf(&b, "- CPU: %d cores\n- Memory: %d GB\n- Storage: %d GB\n\n", spec.CPUCores, spec.MemoryGB, spec.StorageGB)

	b.WriteString("## Estimates\n\n")
	fmt.Fprintf(&b, "| Platform | Configuration | Monthly | %s Total |\n", report.HorizonLabel())
	b.WriteString("|---|---|---:|---:|\n")
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", est.Azure.Provider, est.Azure.InstanceTier, money(est.Azure.MonthlyRate), money(est.Azure.TotalCost))
	fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", est.AWS.Provider, est.AWS.InstanceTier, money(est.AWS.MonthlyRate), money(est.AWS.TotalCost))
	fmt.Fprintf(&b, "| On-Premises | %s | - | %s |\n\n", escapePipes(est.OnPrem.Description), money(est.OnPrem.TotalCost))
	fmt.Fprintf(&b, "On-premises breakdown: hardware %s, power & cooling %s.\n\n", money(est.OnPrem.HardwareCost), money(est.OnPrem.PowerCost))

	b.WriteString("## Cost Breakdown Comparison\n\n")
	fmt.Fprintf(&b, "| Platform | Monthly Cost | %s Total | vs Cheapest |\n", report.HorizonLabel())
	b.WriteString("|---|---:|---:|---:|\n")
	for _, row := range report.Comparison.Rows {
		vs := delta(row)
		if row.Best {
			vs = "**Best**"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", row.Label, money(row.MonthlyCost), money(row.TotalCost), vs)
	}

	fmt.Fprintf(&b, "\n**Cheapest:** %s at %s\n\n", report.Comparison.CheapestLabel, money(report.Comparison.CheapestTotal))

	b.WriteString("---\n\n")
	for _, note := range report.Notes {
		fmt.Fprintf(&b, "* %s\n", note)
	}

	if _, err := io.WriteString(writer, b.String()); err != nil {
		return fmt.Errorf("failed to write Markdown report: %w", err)
	}
	return nil
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
