package output

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/opscart/hardware-cost-compare/pkg/models"
	"github.com/opscart/hardware-cost-compare/pkg/pricing"
	"github.com/opscart/hardware-cost-compare/pkg/sizing"
)

// Result is everything printed for one comparison
type Result struct {
	Specification models.HardwareSpec `json:"specification" yaml:"specification"`
	Estimates     models.Estimates    `json:"estimates" yaml:"estimates"`
	Comparison    models.Comparison   `json:"comparison" yaml:"comparison"`
	Currency      string              `json:"currency" yaml:"currency"`
	// Sizing is set when the specification was derived from telemetry
	Sizing    *sizing.Result `json:"sizing,omitempty" yaml:"sizing,omitempty"`
	Timestamp time.Time      `json:"timestamp" yaml:"timestamp"`
}

// Handler defines the interface for output formatting
type Handler interface {
	DisplayComparison(ctx context.Context, result *Result) error
	DisplayTiers(ctx context.Context, card *pricing.RateCard) error
	DisplayNodes(ctx context.Context, nodes []string) error
	Format() string
}

// NewHandler returns the handler for text, json or yaml
func NewHandler(format string, w io.Writer, card *pricing.RateCard) (Handler, error) {
	if card == nil {
		card = pricing.DefaultRateCard()
	}
	switch format {
	case "", "text":
		return &TextHandler{w: w, card: card}, nil
	case "json":
		return &JSONHandler{w: w}, nil
	case "yaml", "yml":
		return &YAMLHandler{w: w}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
