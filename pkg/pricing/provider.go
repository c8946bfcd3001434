package pricing

import "github.com/opscart/hardware-cost-compare/pkg/models"

// CloudProvider prices a spec as a rented cloud instance
type CloudProvider interface {
	Name() string
	Estimate(spec models.HardwareSpec) models.CloudEstimate
}

// CloudEstimator implements CloudProvider over a tier table.
// Azure and AWS are both instances of it with different rates.
type CloudEstimator struct {
	name          string
	rates         CloudRates
	horizonMonths int
}

// NewCloudEstimator builds an estimator for the named provider
func NewCloudEstimator(name string, rates CloudRates, horizonMonths int) *CloudEstimator {
	return &CloudEstimator{
		name:          name,
		rates:         rates,
		horizonMonths: horizonMonths,
	}
}

func (c *CloudEstimator) Name() string {
	return c.name
}

// Estimate selects the first tier holding the spec, adds the per-GB storage
// surcharge and extends the monthly rate over the horizon.
func (c *CloudEstimator) Estimate(spec models.HardwareSpec) models.CloudEstimate {
	tier := selectBracket(c.rates.Tiers, c.rates.Fallback, spec)
	monthlyRate := tier.MonthlyRate + float64(spec.StorageGB)*c.rates.StorageRatePerGB

	return models.CloudEstimate{
		Provider:     c.name,
		InstanceTier: tier.Name,
		MonthlyRate:  monthlyRate,
		TotalCost:    monthlyRate * float64(c.horizonMonths),
	}
}
