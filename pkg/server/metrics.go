package server

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/opscart/hardware-cost-compare/pkg/models"
)

// Metrics are the comparison and HTTP series. It implements session.Observer
// so every recomputation updates the gauges.
type Metrics struct {
	recomputations    prometheus.Counter
	estimateTotalCost *prometheus.GaugeVec
	cheapest          *prometheus.CounterVec
	httpRequests      *prometheus.CounterVec
}

// NewMetrics registers the series on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		recomputations: factory.NewCounter(prometheus.CounterOpts{
			Name: "tco_recomputations_total",
			Help: "Number of times the estimates were recomputed after a specification change.",
		}),
		estimateTotalCost: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tco_estimate_total_cost",
			Help: "Latest three-year total cost per provider, in GBP.",
		}, []string{"provider"}),
		cheapest: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tco_cheapest_selections_total",
			Help: "Number of recomputations where the provider was cheapest.",
		}, []string{"provider"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tco_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "path", "status"}),
	}
}

func (m *Metrics) Recomputed(spec models.HardwareSpec, estimates models.Estimates, comparison models.Comparison) {
	m.recomputations.Inc()
	m.estimateTotalCost.WithLabelValues(models.ProviderAzure).Set(estimates.Azure.TotalCost)
	m.estimateTotalCost.WithLabelValues(models.ProviderAWS).Set(estimates.AWS.TotalCost)
	m.estimateTotalCost.WithLabelValues(models.ProviderOnPrem).Set(estimates.OnPrem.TotalCost)
	m.cheapest.WithLabelValues(comparison.CheapestLabel).Inc()
}

func (m *Metrics) observeRequest(method, path string, status int) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}
