package sizing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/api"
	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
	"github.com/rs/zerolog"
)

const (
	capacityCPUQuery     = `count(node_cpu_seconds_total{mode="idle",instance="%s"})`
	capacityMemoryQuery  = `node_memory_MemTotal_bytes{instance="%s"}`
	capacityStorageQuery = `sum(node_filesystem_size_bytes{instance="%s",fstype!~"tmpfs|overlay|squashfs"})`

	usageCPUQuery    = `sum(rate(node_cpu_seconds_total{mode!="idle",instance="%s"}[5m]))`
	usageMemoryQuery = `sum(node_memory_MemTotal_bytes{instance="%s"} - node_memory_MemAvailable_bytes{instance="%s"})`

	defaultPercentile = 95
	minStep           = 5 * time.Minute
	maxPoints         = 10000
)

// PrometheusSource sizes a host from node-exporter series
type PrometheusSource struct {
	client     v1.API
	url        string
	lookback   time.Duration
	headroom   float64
	percentile float64
	logger     zerolog.Logger
	now        func() time.Time
}

func NewPrometheusSource(url string, lookback time.Duration, headroom float64, logger zerolog.Logger) (*PrometheusSource, error) {
	client, err := api.NewClient(api.Config{
		Address: url,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus client: %w", err)
	}

	if lookback <= 0 {
		lookback = 7 * 24 * time.Hour
	}

	return &PrometheusSource{
		client:     v1.NewAPI(client),
		url:        url,
		lookback:   lookback,
		headroom:   headroom,
		percentile: defaultPercentile,
		logger:     logger.With().Str("source", "prometheus").Logger(),
		now:        time.Now,
	}, nil
}

// WithPercentile sizes usage mode from the given percentile instead of P95.
// 100 sizes from the observed peak.
func (p *PrometheusSource) WithPercentile(percentile float64) *PrometheusSource {
	if percentile > 0 && percentile <= 100 {
		p.percentile = percentile
	}
	return p
}

func (p *PrometheusSource) Name() string {
	return "prometheus"
}

// Specification sizes the node-exporter instance, e.g. "10.0.0.5:9100"
func (p *PrometheusSource) Specification(ctx context.Context, instance string, mode Mode) (*Result, error) {
	var m measurement
	var err error

	// storage is always what is provisioned
	m.storageBytes, err = p.querySingle(ctx, fmt.Sprintf(capacityStorageQuery, instance))
	if err != nil {
		return nil, fmt.Errorf("storage query failed: %w", err)
	}

	headroom := 1.0
	var usage *UsageProfile
	switch mode {
	case ModeUsage:
		usage, m.cores, m.memoryBytes, err = p.usageProfile(ctx, instance)
		if err != nil {
			return nil, err
		}
		headroom = p.headroom
	default:
		m.cores, err = p.querySingle(ctx, fmt.Sprintf(capacityCPUQuery, instance))
		if err != nil {
			return nil, fmt.Errorf("CPU query failed: %w", err)
		}
		m.memoryBytes, err = p.querySingle(ctx, fmt.Sprintf(capacityMemoryQuery, instance))
		if err != nil {
			return nil, fmt.Errorf("memory query failed: %w", err)
		}
	}

	p.logger.Debug().
		Str("instance", instance).
		Str("mode", string(mode)).
		Float64("cores", m.cores).
		Float64("memory_bytes", m.memoryBytes).
		Float64("storage_bytes", m.storageBytes).
		Msg("Sized instance")

	return &Result{
		Target:        instance,
		Source:        p.Name(),
		Mode:          mode,
		Specification: m.toSpec(headroom),
		Usage:         usage,
		CollectedAt:   p.now(),
	}, nil
}

// usageProfile pulls CPU and memory series over the lookback window and
// returns them at the configured percentile
func (p *PrometheusSource) usageProfile(ctx context.Context, instance string) (*UsageProfile, float64, float64, error) {
	cpu, err := p.queryRange(ctx, fmt.Sprintf(usageCPUQuery, instance))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("CPU query failed: %w", err)
	}
	memory, err := p.queryRange(ctx, fmt.Sprintf(usageMemoryQuery, instance, instance))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("memory query failed: %w", err)
	}

	profile := &UsageProfile{
		Percentile:  p.percentile,
		SampleCount: len(cpu),
		Pattern:     classifyUsage(cpu),
	}
	if profile.CPU, err = calculatePercentiles(cpu); err != nil {
		return nil, 0, 0, err
	}
	if profile.MemoryBytes, err = calculatePercentiles(memory); err != nil {
		return nil, 0, 0, err
	}

	sort.Float64s(cpu)
	sort.Float64s(memory)
	return profile, percentile(cpu, p.percentile), percentile(memory, p.percentile), nil
}

func (p *PrometheusSource) step() time.Duration {
	step := p.lookback / maxPoints
	if step < minStep {
		step = minStep
	}
	return step
}

func (p *PrometheusSource) queryRange(ctx context.Context, query string) ([]float64, error) {
	end := p.now()
	r := v1.Range{
		Start: end.Add(-p.lookback),
		End:   end,
		Step:  p.step(),
	}

	result, warnings, err := p.client.QueryRange(ctx, query, r)
	if err != nil {
		return nil, fmt.Errorf("range query failed: %w", err)
	}
	if len(warnings) > 0 {
		p.logger.Warn().Strs("warnings", warnings).Str("query", query).Msg("Prometheus returned warnings")
	}

	matrix, ok := result.(model.Matrix)
	if !ok || len(matrix) == 0 {
		return nil, fmt.Errorf("no data for query: %s", query)
	}

	var values []float64
	for _, stream := range matrix {
		for _, pair := range stream.Values {
			values = append(values, float64(pair.Value))
		}
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("no data for query: %s", query)
	}
	return values, nil
}

func (p *PrometheusSource) querySingle(ctx context.Context, query string) (float64, error) {
	result, warnings, err := p.client.Query(ctx, query, p.now())
	if err != nil {
		return 0, fmt.Errorf("query failed: %w", err)
	}

	if len(warnings) > 0 {
		p.logger.Warn().Strs("warnings", warnings).Str("query", query).Msg("Prometheus returned warnings")
	}

	vector, ok := result.(model.Vector)
	if !ok || len(vector) == 0 {
		return 0, fmt.Errorf("no data for query: %s", query)
	}

	sum := 0.0
	for _, sample := range vector {
		sum += float64(sample.Value)
	}

	return sum, nil
}
