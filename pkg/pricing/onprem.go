package pricing

import (
	"fmt"

	"github.com/opscart/hardware-cost-compare/pkg/models"
)

// DefaultOnPremRates prices refurbished enterprise servers and SSDs from
// bargain hardware suppliers, powered at 0.25/kWh with 40% cooling overhead.
func DefaultOnPremRates() OnPremRates {
	return OnPremRates{
		Classes: []ServerClass{
			{Label: "Dell R730 (2x E5-2620 v4, 64GB RAM)", MaxCPU: 8, MaxMemoryGB: 64, HardwareCost: 800, PowerWatts: 200},
			{Label: "Dell R740 (2x Silver 4114, 128GB RAM)", MaxCPU: 16, MaxMemoryGB: 128, HardwareCost: 1200, PowerWatts: 250},
		},
		Fallback:          ServerClass{Label: "Dell R740 (2x Gold 6134, 256GB RAM)", HardwareCost: 2000, PowerWatts: 300},
		DriveCapacityGB:   960,
		DriveCost:         120,
		HoursPerYear:      8760,
		PowerRatePerKWh:   0.25,
		CoolingMultiplier: 1.4,
	}
}

// OnPremEstimator prices buying a server outright and powering it for the horizon
type OnPremEstimator struct {
	rates         OnPremRates
	horizonMonths int
}

// NewOnPremProvider prices specs against the rate card's on-prem classes
func NewOnPremProvider(card *RateCard) *OnPremEstimator {
	return &OnPremEstimator{
		rates:         card.OnPrem,
		horizonMonths: card.HorizonMonths,
	}
}

func (o *OnPremEstimator) Name() string {
	return models.ProviderOnPrem
}

// Estimate picks a server class, buys enough whole drives for the storage and
// adds cooled power for the horizon.
func (o *OnPremEstimator) Estimate(spec models.HardwareSpec) models.OnPremEstimate {
	class := selectBracket(o.rates.Classes, o.rates.Fallback, spec)

	drives := o.DriveCount(spec.StorageGB)
	hardwareCost := class.HardwareCost + float64(drives)*o.rates.DriveCost

	annualPower := (class.PowerWatts / 1000) * o.rates.HoursPerYear * o.rates.PowerRatePerKWh * o.rates.CoolingMultiplier
	powerCost := annualPower * (float64(o.horizonMonths) / 12)

	return models.OnPremEstimate{
		ServerClass:  class.Label,
		DriveCount:   drives,
		HardwareCost: hardwareCost,
		PowerCost:    powerCost,
		TotalCost:    hardwareCost + powerCost,
		Description:  fmt.Sprintf("%s, %dx %dGB SSD", class.Label, drives, o.rates.DriveCapacityGB),
	}
}

// DriveCount is the number of whole drives needed to hold storageGB
func (o *OnPremEstimator) DriveCount(storageGB int) int {
	capacity := o.rates.DriveCapacityGB
	if storageGB <= 0 {
		return 0
	}
	drives := storageGB / capacity
	if storageGB%capacity != 0 {
		drives++
	}
	return drives
}
