package reporter

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/opscart/hardware-cost-compare/pkg/models"
	"github.com/opscart/hardware-cost-compare/pkg/pricing"
)

// ReportFormat represents the output format
type ReportFormat string

const (
	FormatText     ReportFormat = "text"
	FormatHTML     ReportFormat = "html"
	FormatMarkdown ReportFormat = "markdown"
	FormatCSV      ReportFormat = "csv"
)

// ParseFormat accepts the format names the CLI takes, including "md"
func ParseFormat(s string) (ReportFormat, error) {
	switch s {
	case "text", "txt":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", s)
	}
}

// Extension is the file suffix for the format
func (f ReportFormat) Extension() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatMarkdown:
		return ".md"
	case FormatCSV:
		return ".csv"
	default:
		return ".txt"
	}
}

// Report contains all data for generating reports
type Report struct {
	ID            string
	GeneratedAt   time.Time
	Currency      string
	HorizonMonths int
	HorizonYears  float64
	Specification models.HardwareSpec
	Estimates     models.Estimates
	Comparison    models.Comparison
	Notes         []string
}

// HorizonLabel names the horizon in headings: "3-Year" for whole years,
// "18-Month" otherwise
func (r *Report) HorizonLabel() string {
	if years := r.HorizonYears; years >= 1 && years == math.Trunc(years) {
		return fmt.Sprintf("%d-Year", int(years))
	}
	return fmt.Sprintf("%d-Month", r.HorizonMonths)
}

// Reporter generates cost comparison reports
type Reporter struct {
	format ReportFormat
	card   *pricing.RateCard
}

// New creates a new reporter priced against the built-in rate card
func New(format ReportFormat) *Reporter {
	return &Reporter{
		format: format,
		card:   pricing.DefaultRateCard(),
	}
}

// WithRateCard makes the report notes describe a custom rate card
func (r *Reporter) WithRateCard(card *pricing.RateCard) *Reporter {
	if card != nil {
		r.card = card
	}
	return r
}

func (r *Reporter) Format() ReportFormat {
	return r.format
}

// Generate builds a report for one specification
func (r *Reporter) Generate(spec models.HardwareSpec, estimates models.Estimates, comparison models.Comparison) (*Report, error) {
	if len(comparison.Rows) == 0 {
		return nil, fmt.Errorf("comparison has no rows")
	}

	return &Report{
		ID:            uuid.NewString(),
		GeneratedAt:   time.Now(),
		Currency:      models.Currency,
		HorizonMonths: r.card.HorizonMonths,
		HorizonYears:  r.card.HorizonYears(),
		Specification: spec,
		Estimates:     estimates,
		Comparison:    comparison,
		Notes:         Notes(r.card),
	}, nil
}

// Write renders the report in the reporter's format
func (r *Reporter) Write(report *Report, w io.Writer) error {
	switch r.format {
	case FormatText:
		return GenerateText(report, w)
	case FormatHTML:
		return GenerateHTML(report, w)
	case FormatMarkdown:
		return GenerateMarkdown(report, w)
	case FormatCSV:
		return GenerateCSV(report, w)
	default:
		return fmt.Errorf("unsupported report format: %s", r.format)
	}
}

// Notes lists the pricing assumptions printed under every report
func Notes(card *pricing.RateCard) []string {
	cooling := (card.OnPrem.CoolingMultiplier - 1) * 100
	return []string{
		"Prices are estimates based on standard pricing as of 2024",
		"On-premises hardware pricing based on 3-year-old enterprise equipment from bargain hardware suppliers",
		fmt.Sprintf("Power costs calculated at £%.2f/kWh including %.0f%% cooling overhead", card.OnPrem.PowerRatePerKWh, cooling),
		"Storage pricing based on enterprise SSD requirements, not just allocated space",
		fmt.Sprintf("On-Prem monthly figure is power only (total power / %d months); hardware is included in the total", card.HorizonMonths),
	}
}
