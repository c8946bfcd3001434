// Package sizing derives a hardware specification from a machine that already
// exists, either a Kubernetes node or a host scraped by Prometheus
// node-exporter. The result feeds the same estimators as a hand-entered spec.
package sizing

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/opscart/hardware-cost-compare/pkg/models"
)

// Mode selects what is measured
type Mode string

const (
	// ModeCapacity sizes from what the machine has installed
	ModeCapacity Mode = "capacity"
	// ModeUsage sizes from observed usage plus headroom
	ModeUsage Mode = "usage"
)

// ParseMode resolves a mode name; empty means capacity
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeCapacity:
		return ModeCapacity, nil
	case ModeUsage:
		return ModeUsage, nil
	default:
		return "", fmt.Errorf("unknown sizing mode %q: must be capacity or usage", s)
	}
}

// Source produces a specification for a named target
type Source interface {
	Name() string
	Specification(ctx context.Context, target string, mode Mode) (*Result, error)
}

// NodeLister offers the targets a Source can size
type NodeLister interface {
	ListNodes(ctx context.Context) ([]string, error)
}

// Result is a derived specification and where it came from
type Result struct {
	Target        string              `json:"target" yaml:"target"`
	Source        string              `json:"source" yaml:"source"`
	Mode          Mode                `json:"mode" yaml:"mode"`
	Specification models.HardwareSpec `json:"specification" yaml:"specification"`
	// HostingProvider is where the target runs today, when it can be told
	HostingProvider string    `json:"hosting_provider,omitempty" yaml:"hosting_provider,omitempty"`
	Region          string    `json:"region,omitempty" yaml:"region,omitempty"`
	// Usage is set by sources that size from a usage history
	Usage       *UsageProfile `json:"usage,omitempty" yaml:"usage,omitempty"`
	CollectedAt time.Time     `json:"collected_at" yaml:"collected_at"`
}

const bytesPerGiB = 1024 * 1024 * 1024

// measurement is raw telemetry before conversion: cores, memory bytes, storage bytes
type measurement struct {
	cores        float64
	memoryBytes  float64
	storageBytes float64
}

// toSpec rounds up to whole cores and GiB. headroom scales CPU and memory
// only; storage is sized from what is provisioned.
func (m measurement) toSpec(headroom float64) models.HardwareSpec {
	if headroom < 1 {
		headroom = 1
	}
	spec := models.HardwareSpec{
		CPUCores:  roundUp(m.cores * headroom),
		MemoryGB:  roundUp(m.memoryBytes / bytesPerGiB * headroom),
		StorageGB: roundUp(m.storageBytes / bytesPerGiB),
	}
	return spec.Clamped()
}

func roundUp(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	// drop float noise such as 4.0000000001 before rounding up
	return int(math.Ceil(v - 1e-9))
}
