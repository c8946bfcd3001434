package models

// Comparison names the cheapest provider over the horizon
type Comparison struct {
	CheapestLabel string          `json:"cheapest_label" yaml:"cheapest_label"`
	CheapestTotal float64         `json:"cheapest_total" yaml:"cheapest_total"`
	Rows          []ComparisonRow `json:"rows" yaml:"rows"`
}

// ComparisonRow is one provider's line in the breakdown table
type ComparisonRow struct {
	Label string `json:"label" yaml:"label"`
	// MonthlyCost is the per-month figure shown for the provider. For on-prem
	// it is the power cost over 36 months, hardware excluded.
	MonthlyCost float64 `json:"monthly_cost" yaml:"monthly_cost"`
	TotalCost   float64 `json:"total_cost" yaml:"total_cost"`
	// Delta is TotalCost minus the cheapest total
	Delta float64 `json:"delta" yaml:"delta"`
	Best  bool    `json:"best" yaml:"best"`
}
