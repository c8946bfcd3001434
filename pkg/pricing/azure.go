package pricing

import "github.com/opscart/hardware-cost-compare/pkg/models"

// DefaultAzureRates approximates pay-as-you-go VM prices with Premium SSD storage
func DefaultAzureRates() CloudRates {
	return CloudRates{
		Tiers: []Tier{
			{Name: "Standard_B2s", MaxCPU: 2, MaxMemoryGB: 8, MonthlyRate: 35},
			{Name: "Standard_D4s_v3", MaxCPU: 4, MaxMemoryGB: 16, MonthlyRate: 140},
			{Name: "Standard_D8s_v3", MaxCPU: 8, MaxMemoryGB: 32, MonthlyRate: 280},
			{Name: "Standard_D16s_v3", MaxCPU: 16, MaxMemoryGB: 64, MonthlyRate: 560},
		},
		Fallback:         Tier{Name: "Standard_D32s_v3", MonthlyRate: 1120},
		StorageRatePerGB: 0.15,
	}
}

// NewAzureProvider prices specs against the rate card's Azure table
func NewAzureProvider(card *RateCard) *CloudEstimator {
	return NewCloudEstimator(models.ProviderAzure, card.Azure, card.HorizonMonths)
}
