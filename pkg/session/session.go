// Package session owns the current hardware specification and the estimates
// derived from it. Every change recomputes all three estimates synchronously.
package session

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/opscart/hardware-cost-compare/pkg/models"
	"github.com/opscart/hardware-cost-compare/pkg/pricing"
)

// Observer is told about every recomputation
type Observer interface {
	Recomputed(spec models.HardwareSpec, estimates models.Estimates, comparison models.Comparison)
}

// Snapshot is a consistent view of the session at one point in time
type Snapshot struct {
	Specification models.HardwareSpec `json:"specification" yaml:"specification"`
	Estimates     models.Estimates    `json:"estimates" yaml:"estimates"`
	Comparison    models.Comparison   `json:"comparison" yaml:"comparison"`
}

// Session is safe for concurrent use
type Session struct {
	estimators *pricing.Set
	logger     zerolog.Logger
	observers  []Observer

	mu         sync.RWMutex
	spec       models.HardwareSpec
	estimates  models.Estimates
	comparison models.Comparison
}

// New starts a session at models.DefaultSpec
func New(estimators *pricing.Set, logger zerolog.Logger, observers ...Observer) *Session {
	return NewWithSpec(estimators, models.DefaultSpec(), logger, observers...)
}

// NewWithSpec starts a session at the given spec. Fields below 1 are clamped.
func NewWithSpec(estimators *pricing.Set, spec models.HardwareSpec, logger zerolog.Logger, observers ...Observer) *Session {
	if estimators == nil {
		estimators = pricing.NewSet(nil)
	}
	s := &Session{
		estimators: estimators,
		logger:     logger.With().Str("component", "session").Logger(),
		observers:  observers,
	}
	s.mu.Lock()
	s.recompute(spec.Clamped())
	s.mu.Unlock()
	return s
}

// SetSpecification replaces the spec and recomputes. Fields below 1 are clamped.
func (s *Session) SetSpecification(spec models.HardwareSpec) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recompute(spec.Clamped())
	return s.snapshot()
}

// UpdateField applies a raw form edit to one field and recomputes
func (s *Session) UpdateField(field models.Field, raw string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recompute(models.UpdateField(s.spec, field, raw))
	return s.snapshot()
}

// Specification returns the current spec
func (s *Session) Specification() models.HardwareSpec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.spec
}

// CurrentEstimates returns the latest computed triple
func (s *Session) CurrentEstimates() models.Estimates {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.estimates
}

// Comparison returns the current cheapest-provider summary
func (s *Session) Comparison() models.Comparison {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot().Comparison
}

// Snapshot returns spec, estimates and comparison together
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// caller holds s.mu
func (s *Session) snapshot() Snapshot {
	comparison := s.comparison
	comparison.Rows = append([]models.ComparisonRow(nil), s.comparison.Rows...)
	return Snapshot{
		Specification: s.spec,
		Estimates:     s.estimates,
		Comparison:    comparison,
	}
}

// caller holds s.mu for writing
func (s *Session) recompute(spec models.HardwareSpec) {
	s.spec = spec
	s.estimates = s.estimators.EstimateAll(spec)
	s.comparison = s.estimators.Compare(s.estimates)

	s.logger.Debug().
		Int("cpu", spec.CPUCores).
		Int("memory_gb", spec.MemoryGB).
		Int("storage_gb", spec.StorageGB).
		Str("cheapest", s.comparison.CheapestLabel).
		Float64("cheapest_total", s.comparison.CheapestTotal).
		Msg("Recomputed estimates")

	for _, o := range s.observers {
		o.Recomputed(spec, s.estimates, s.comparison)
	}
}
