package output

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/opscart/hardware-cost-compare/pkg/pricing"
)

type nodeList struct {
	Nodes []string `json:"nodes" yaml:"nodes"`
}

// JSONHandler writes indented JSON
type JSONHandler struct {
	w io.Writer
}

func (h *JSONHandler) Format() string {
	return "json"
}

func (h *JSONHandler) DisplayComparison(ctx context.Context, result *Result) error {
	return h.encode(result)
}

func (h *JSONHandler) DisplayTiers(ctx context.Context, card *pricing.RateCard) error {
	return h.encode(card)
}

func (h *JSONHandler) DisplayNodes(ctx context.Context, nodes []string) error {
	return h.encode(nodeList{Nodes: nodes})
}

func (h *JSONHandler) encode(v interface{}) error {
	encoder := json.NewEncoder(h.w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// YAMLHandler writes YAML; tiers come out in rate card file form
type YAMLHandler struct {
	w io.Writer
}

func (h *YAMLHandler) Format() string {
	return "yaml"
}

func (h *YAMLHandler) DisplayComparison(ctx context.Context, result *Result) error {
	return h.encode(result)
}

func (h *YAMLHandler) DisplayTiers(ctx context.Context, card *pricing.RateCard) error {
	return h.encode(card)
}

func (h *YAMLHandler) DisplayNodes(ctx context.Context, nodes []string) error {
	return h.encode(nodeList{Nodes: nodes})
}

func (h *YAMLHandler) encode(v interface{}) error {
	encoder := yaml.NewEncoder(h.w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return nil
}
