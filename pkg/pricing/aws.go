package pricing

import "github.com/opscart/hardware-cost-compare/pkg/models"

// DefaultAWSRates approximates on-demand EC2 prices with gp3 EBS storage
func DefaultAWSRates() CloudRates {
	return CloudRates{
		Tiers: []Tier{
			{Name: "t3.large", MaxCPU: 2, MaxMemoryGB: 8, MonthlyRate: 67},
			{Name: "m5.xlarge", MaxCPU: 4, MaxMemoryGB: 16, MonthlyRate: 175},
			{Name: "m5.2xlarge", MaxCPU: 8, MaxMemoryGB: 32, MonthlyRate: 350},
			{Name: "m5.4xlarge", MaxCPU: 16, MaxMemoryGB: 64, MonthlyRate: 700},
		},
		Fallback:         Tier{Name: "m5.8xlarge", MonthlyRate: 1400},
		StorageRatePerGB: 0.08,
	}
}

// NewAWSProvider prices specs against the rate card's AWS table
func NewAWSProvider(card *RateCard) *CloudEstimator {
	return NewCloudEstimator(models.ProviderAWS, card.AWS, card.HorizonMonths)
}
