package reporter

import (
	"encoding/csv"
	"fmt"
	"io"
)

// GenerateCSV creates a CSV report
func GenerateCSV(report *Report, writer io.Writer) error {
	w := csv.NewWriter(writer)

	header := []string{
		"Platform",
		"Configuration",
		fmt.Sprintf("Monthly Cost (%s)", report.Currency),
		fmt.Sprintf("%s Total (%s)", report.HorizonLabel(), report.Currency),
		"vs Cheapest",
		"Best",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range report.Comparison.Rows {
		record := []string{
			row.Label,
			configuration(report, row.Label),
			fmt.Sprintf("%.2f", row.MonthlyCost),
			fmt.Sprintf("%.2f", row.TotalCost),
			fmt.Sprintf("%.2f", row.Delta),
			fmt.Sprintf("%t", row.Best),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	spec := report.Specification
	summary := [][]string{
		{},
		{"SUMMARY"},
		{"Report ID", report.ID},
		{"CPU Cores", fmt.Sprintf("%d", spec.CPUCores)},
		{"Memory (GB)", fmt.Sprintf("%d", spec.MemoryGB)},
		{"Storage (GB)", fmt.Sprintf("%d", spec.StorageGB)},
		{"Cheapest", report.Comparison.CheapestLabel},
		{"Cheapest Total", fmt.Sprintf("%.2f", report.Comparison.CheapestTotal)},
		{"On-Prem Hardware", fmt.Sprintf("%.2f", report.Estimates.OnPrem.HardwareCost)},
		{"On-Prem Power & Cooling", fmt.Sprintf("%.2f", report.Estimates.OnPrem.PowerCost)},
		{},
		{"NOTES"},
	}
	for _, note := range report.Notes {
		summary = append(summary, []string{note})
	}
	if err := w.WriteAll(summary); err != nil {
		return fmt.Errorf("failed to write CSV summary: %w", err)
	}

	return nil
}

// configuration names what was priced for a provider row
func configuration(report *Report, label string) string {
	switch label {
	case report.Estimates.Azure.Provider:
		return report.Estimates.Azure.InstanceTier
	case report.Estimates.AWS.Provider:
		return report.Estimates.AWS.InstanceTier
	default:
		return report.Estimates.OnPrem.Description
	}
}
