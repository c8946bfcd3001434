package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RateCard holds every constant the estimators price with
type RateCard struct {
	HorizonMonths int         `yaml:"horizon_months" json:"horizon_months"`
	Azure         CloudRates  `yaml:"azure" json:"azure"`
	AWS           CloudRates  `yaml:"aws" json:"aws"`
	OnPrem        OnPremRates `yaml:"on_prem" json:"on_prem"`
}

// CloudRates is one cloud's ordered tier table plus its storage surcharge
type CloudRates struct {
	Tiers            []Tier  `yaml:"tiers" json:"tiers"`
	Fallback         Tier    `yaml:"fallback" json:"fallback"`
	StorageRatePerGB float64 `yaml:"storage_rate_per_gb" json:"storage_rate_per_gb"`
}

// OnPremRates prices buying and running a server
type OnPremRates struct {
	Classes           []ServerClass `yaml:"classes" json:"classes"`
	Fallback          ServerClass   `yaml:"fallback" json:"fallback"`
	DriveCapacityGB   int           `yaml:"drive_capacity_gb" json:"drive_capacity_gb"`
	DriveCost         float64       `yaml:"drive_cost" json:"drive_cost"`
	HoursPerYear      float64       `yaml:"hours_per_year" json:"hours_per_year"`
	PowerRatePerKWh   float64       `yaml:"power_rate_per_kwh" json:"power_rate_per_kwh"`
	CoolingMultiplier float64       `yaml:"cooling_multiplier" json:"cooling_multiplier"`
}

// DefaultRateCard returns the built-in 2024 price points
func DefaultRateCard() *RateCard {
	return &RateCard{
		HorizonMonths: 36,
		Azure:         DefaultAzureRates(),
		AWS:           DefaultAWSRates(),
		OnPrem:        DefaultOnPremRates(),
	}
}

// HorizonYears is the comparison horizon in whole or fractional years
func (c *RateCard) HorizonYears() float64 {
	return float64(c.HorizonMonths) / 12.0
}

// LoadRateCard reads a YAML rate card. Sections missing from the file keep
// their built-in values.
func LoadRateCard(path string) (*RateCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate card: %w", err)
	}
	return ParseRateCard(data)
}

// ParseRateCard decodes YAML over the default rate card and validates the result
func ParseRateCard(data []byte) (*RateCard, error) {
	card := DefaultRateCard()
	if err := yaml.Unmarshal(data, card); err != nil {
		return nil, fmt.Errorf("failed to parse rate card: %w", err)
	}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rate card: %w", err)
	}
	return card, nil
}

// Validate checks the rate card can price any spec >= 1
func (c *RateCard) Validate() error {
	if c.HorizonMonths < 1 {
		return fmt.Errorf("horizon_months must be at least 1")
	}
	if err := c.Azure.validate("azure"); err != nil {
		return err
	}
	if err := c.AWS.validate("aws"); err != nil {
		return err
	}
	return c.OnPrem.validate()
}

func (r CloudRates) validate(name string) error {
	if r.StorageRatePerGB < 0 {
		return fmt.Errorf("%s: storage_rate_per_gb must be >= 0", name)
	}
	if r.Fallback.Name == "" {
		return fmt.Errorf("%s: fallback tier needs a name", name)
	}
	prev := Tier{}
	for i, tier := range r.Tiers {
		if tier.Name == "" {
			return fmt.Errorf("%s: tier %d needs a name", name, i)
		}
		if tier.MonthlyRate < 0 {
			return fmt.Errorf("%s: tier %s has a negative rate", name, tier.Name)
		}
		if tier.MaxCPU < 1 || tier.MaxMemoryGB < 1 {
			return fmt.Errorf("%s: tier %s needs positive max_cpu and max_memory_gb", name, tier.Name)
		}
		if i > 0 && (tier.MaxCPU < prev.MaxCPU || tier.MaxMemoryGB < prev.MaxMemoryGB || tier.MonthlyRate < prev.MonthlyRate) {
			return fmt.Errorf("%s: tier %s must not be smaller or cheaper than %s", name, tier.Name, prev.Name)
		}
		prev = tier
	}
	if len(r.Tiers) > 0 && r.Fallback.MonthlyRate < prev.MonthlyRate {
		return fmt.Errorf("%s: fallback tier must not be cheaper than %s", name, prev.Name)
	}
	return nil
}

func (r OnPremRates) validate() error {
	if r.DriveCapacityGB < 1 {
		return fmt.Errorf("on_prem: drive_capacity_gb must be at least 1")
	}
	if r.DriveCost < 0 || r.PowerRatePerKWh < 0 || r.HoursPerYear < 0 {
		return fmt.Errorf("on_prem: costs and hours must be >= 0")
	}
	if r.CoolingMultiplier < 1.0 {
		return fmt.Errorf("on_prem: cooling_multiplier must be >= 1.0")
	}
	if r.Fallback.Label == "" {
		return fmt.Errorf("on_prem: fallback class needs a label")
	}
	prev := ServerClass{}
	for i, class := range r.Classes {
		if class.Label == "" {
			return fmt.Errorf("on_prem: class %d needs a label", i)
		}
		if class.MaxCPU < 1 || class.MaxMemoryGB < 1 {
			return fmt.Errorf("on_prem: class %s needs positive max_cpu and max_memory_gb", class.Label)
		}
		if class.HardwareCost < 0 || class.PowerWatts < 0 {
			return fmt.Errorf("on_prem: class %s has negative cost or power", class.Label)
		}
		if i > 0 && (class.MaxCPU < prev.MaxCPU || class.MaxMemoryGB < prev.MaxMemoryGB) {
			return fmt.Errorf("on_prem: class %s must not be smaller than %s", class.Label, prev.Label)
		}
		prev = class
	}
	return nil
}
