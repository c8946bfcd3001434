package pricing

import "github.com/opscart/hardware-cost-compare/pkg/models"

// Set holds one estimator per provider, all built from the same rate card
type Set struct {
	Azure  CloudProvider
	AWS    CloudProvider
	OnPrem *OnPremEstimator

	card *RateCard
}

// NewSet builds the three estimators. A nil card means DefaultRateCard.
func NewSet(card *RateCard) *Set {
	if card == nil {
		card = DefaultRateCard()
	}
	return &Set{
		Azure:  NewAzureProvider(card),
		AWS:    NewAWSProvider(card),
		OnPrem: NewOnPremProvider(card),
		card:   card,
	}
}

// RateCard returns the card the set was built from
func (s *Set) RateCard() *RateCard {
	return s.card
}

// EstimateAll runs every estimator against the same spec
func (s *Set) EstimateAll(spec models.HardwareSpec) models.Estimates {
	return models.Estimates{
		Azure:  s.Azure.Estimate(spec),
		AWS:    s.AWS.Estimate(spec),
		OnPrem: s.OnPrem.Estimate(spec),
	}
}

// Compare ranks a set of estimates using the card's horizon for the
// on-prem monthly figure
func (s *Set) Compare(estimates models.Estimates) models.Comparison {
	return compareCandidates(estimates.Azure, estimates.AWS, estimates.OnPrem, s.card.HorizonMonths)
}
