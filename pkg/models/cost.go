package models

// Currency is the single fixed unit every figure is expressed in
const Currency = "GBP"

// Provider labels, in comparison order
const (
	ProviderAzure  = "Azure"
	ProviderAWS    = "AWS"
	ProviderOnPrem = "On-Prem"
)

// CloudEstimate is the three-year cost of renting a cloud instance tier
type CloudEstimate struct {
	Provider     string  `json:"provider" yaml:"provider"`
	InstanceTier string  `json:"instance_tier" yaml:"instance_tier"`
	MonthlyRate  float64 `json:"monthly_rate" yaml:"monthly_rate"`
	TotalCost    float64 `json:"total_cost" yaml:"total_cost"`
}

// OnPremEstimate is the three-year cost of buying and powering a server
type OnPremEstimate struct {
	ServerClass  string  `json:"server_class" yaml:"server_class"`
	DriveCount   int     `json:"drive_count" yaml:"drive_count"`
	HardwareCost float64 `json:"hardware_cost" yaml:"hardware_cost"`
	PowerCost    float64 `json:"power_cost" yaml:"power_cost"`
	TotalCost    float64 `json:"total_cost" yaml:"total_cost"`
	Description  string  `json:"description" yaml:"description"`
}

// Estimates is one estimate per provider for the same specification
type Estimates struct {
	Azure  CloudEstimate  `json:"azure" yaml:"azure"`
	AWS    CloudEstimate  `json:"aws" yaml:"aws"`
	OnPrem OnPremEstimate `json:"on_prem" yaml:"on_prem"`
}
