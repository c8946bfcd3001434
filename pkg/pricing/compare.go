package pricing

import "github.com/opscart/hardware-cost-compare/pkg/models"

type candidate struct {
	label   string
	monthly float64
	total   float64
}

// Compare ranks the three estimates by three-year total. Candidates are taken
// in the fixed order Azure, AWS, On-Prem and only a strictly lower total
// replaces the current pick, so the earlier provider wins an exact tie.
func Compare(azure, aws models.CloudEstimate, onPrem models.OnPremEstimate) models.Comparison {
	return compareCandidates(azure, aws, onPrem, 36)
}

func compareCandidates(azure, aws models.CloudEstimate, onPrem models.OnPremEstimate, horizonMonths int) models.Comparison {
	candidates := []candidate{
		{label: models.ProviderAzure, monthly: azure.MonthlyRate, total: azure.TotalCost},
		{label: models.ProviderAWS, monthly: aws.MonthlyRate, total: aws.TotalCost},
		// Power only: hardware is a one-off purchase and is not amortised here.
		{label: models.ProviderOnPrem, monthly: onPrem.PowerCost / float64(horizonMonths), total: onPrem.TotalCost},
	}

	cheapest := candidates[0]
	for _, c := range candidates[1:] {
		if c.total < cheapest.total {
			cheapest = c
		}
	}

	rows := make([]models.ComparisonRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, models.ComparisonRow{
			Label:       c.label,
			MonthlyCost: c.monthly,
			TotalCost:   c.total,
			Delta:       c.total - cheapest.total,
			Best:        c.total == cheapest.total,
		})
	}

	return models.Comparison{
		CheapestLabel: cheapest.label,
		CheapestTotal: cheapest.total,
		Rows:          rows,
	}
}
