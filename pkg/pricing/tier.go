package pricing

import "github.com/opscart/hardware-cost-compare/pkg/models"

// Tier is a named cloud pricing bracket. A spec fits the tier when both its
// CPU and memory are within the limits.
type Tier struct {
	Name        string  `yaml:"name" json:"name"`
	MaxCPU      int     `yaml:"max_cpu,omitempty" json:"max_cpu,omitempty"`
	MaxMemoryGB int     `yaml:"max_memory_gb,omitempty" json:"max_memory_gb,omitempty"`
	MonthlyRate float64 `yaml:"monthly_rate" json:"monthly_rate"`
}

func (t Tier) limits() (int, int) { return t.MaxCPU, t.MaxMemoryGB }

// ServerClass is an on-prem server bracket
type ServerClass struct {
	Label        string  `yaml:"label" json:"label"`
	MaxCPU       int     `yaml:"max_cpu,omitempty" json:"max_cpu,omitempty"`
	MaxMemoryGB  int     `yaml:"max_memory_gb,omitempty" json:"max_memory_gb,omitempty"`
	HardwareCost float64 `yaml:"hardware_cost" json:"hardware_cost"`
	PowerWatts   float64 `yaml:"power_watts" json:"power_watts"`
}

func (c ServerClass) limits() (int, int) { return c.MaxCPU, c.MaxMemoryGB }

type bracket interface {
	limits() (maxCPU, maxMemoryGB int)
}

// selectBracket returns the first bracket, in table order, whose limits hold
// the spec; fallback when none do.
func selectBracket[T bracket](table []T, fallback T, spec models.HardwareSpec) T {
	for _, b := range table {
		maxCPU, maxMem := b.limits()
		if spec.CPUCores <= maxCPU && spec.MemoryGB <= maxMem {
			return b
		}
	}
	return fallback
}
