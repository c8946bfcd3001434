package sizing

import (
	"fmt"
	"math"
	"sort"
)

// Percentiles summarises a usage series
type Percentiles struct {
	Average float64 `json:"average" yaml:"average"`
	P50     float64 `json:"p50" yaml:"p50"`
	P90     float64 `json:"p90" yaml:"p90"`
	P95     float64 `json:"p95" yaml:"p95"`
	P99     float64 `json:"p99" yaml:"p99"`
	Peak    float64 `json:"peak" yaml:"peak"`
	Min     float64 `json:"min" yaml:"min"`
}

// UsagePattern classifies how bursty a series is
type UsagePattern struct {
	Type      string  `json:"type" yaml:"type"` // steady, moderate, spiky, highly-variable, unknown
	Variation float64 `json:"variation" yaml:"variation"`
}

// UsageProfile is what usage-mode sizing saw over its lookback window
type UsageProfile struct {
	Percentile  float64      `json:"percentile" yaml:"percentile"`
	SampleCount int          `json:"sample_count" yaml:"sample_count"`
	CPU         Percentiles  `json:"cpu_cores" yaml:"cpu_cores"`
	MemoryBytes Percentiles  `json:"memory_bytes" yaml:"memory_bytes"`
	Pattern     UsagePattern `json:"pattern" yaml:"pattern"`
}

// calculatePercentiles sorts a copy of values and summarises it
func calculatePercentiles(values []float64) (Percentiles, error) {
	if len(values) == 0 {
		return Percentiles{}, fmt.Errorf("no samples provided")
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	return Percentiles{
		Average: average(sorted),
		P50:     percentile(sorted, 50),
		P90:     percentile(sorted, 90),
		P95:     percentile(sorted, 95),
		P99:     percentile(sorted, 99),
		Peak:    sorted[len(sorted)-1],
		Min:     sorted[0],
	}, nil
}

// percentile interpolates linearly between closest ranks; sortedValues must be ascending
func percentile(sortedValues []float64, p float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if len(sortedValues) == 1 {
		return sortedValues[0]
	}

	rank := (p / 100.0) * float64(len(sortedValues)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sortedValues[lower]
	}

	fraction := rank - float64(lower)
	return sortedValues[lower] + (sortedValues[upper]-sortedValues[lower])*fraction
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// coefficientOfVariation is the population stddev over the mean. classifyUsage
// calls below 0.15 steady, below 0.35 moderate, below 0.70 spiky and anything
// higher highly-variable.
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := average(values)
	if mean == 0 {
		return 0
	}

	sumSquaredDiff := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquaredDiff += diff * diff
	}
	return math.Sqrt(sumSquaredDiff/float64(len(values))) / mean
}

// classifyUsage needs at least 10 samples to say anything
func classifyUsage(values []float64) UsagePattern {
	if len(values) < 10 {
		return UsagePattern{Type: "unknown"}
	}

	cv := coefficientOfVariation(values)
	var patternType string
	switch {
	case cv < 0.15:
		patternType = "steady"
	case cv < 0.35:
		patternType = "moderate"
	case cv < 0.70:
		patternType = "spiky"
	default:
		patternType = "highly-variable"
	}

	return UsagePattern{Type: patternType, Variation: cv}
}
