package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/opscart/hardware-cost-compare/pkg/models"
	"github.com/opscart/hardware-cost-compare/pkg/pricing"
	"github.com/opscart/hardware-cost-compare/pkg/session"
	"github.com/opscart/hardware-cost-compare/pkg/sizing"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// FieldUpdate carries the raw text typed into a field
type FieldUpdate struct {
	Value string `json:"value"`
}

// CompareResponse is a comparison for a spec that is not the session's
type CompareResponse struct {
	Specification models.HardwareSpec `json:"specification"`
	Estimates     models.Estimates    `json:"estimates"`
	Comparison    models.Comparison   `json:"comparison"`
	Sizing        *sizing.Result      `json:"sizing,omitempty"`
}

// NodeList is the body of GET /api/v1/sizing/nodes
type NodeList struct {
	Nodes []string `json:"nodes"`
}

// Handler serves the comparison session and the sizing sources
type Handler struct {
	session        *session.Session
	estimators     *pricing.Set
	nodeSource     sizing.Source
	nodeLister     sizing.NodeLister
	instanceSource sizing.Source
	sizingTimeout  time.Duration
	logger         zerolog.Logger
}

// NewHandler creates a handler over a session. A nil set means the default rate card.
func NewHandler(sess *session.Session, estimators *pricing.Set, logger zerolog.Logger) *Handler {
	if estimators == nil {
		estimators = pricing.NewSet(nil)
	}
	return &Handler{
		session:       sess,
		estimators:    estimators,
		sizingTimeout: 30 * time.Second,
		logger:        logger,
	}
}

// WithNodeSource enables /api/v1/sizing/node
func (h *Handler) WithNodeSource(source sizing.Source) *Handler {
	h.nodeSource = source
	return h
}

// WithPrometheusSource enables /api/v1/sizing/prometheus
func (h *Handler) WithPrometheusSource(source sizing.Source) *Handler {
	h.instanceSource = source
	return h
}

// WithNodeLister enables /api/v1/sizing/nodes
func (h *Handler) WithNodeLister(lister sizing.NodeLister) *Handler {
	h.nodeLister = lister
	return h
}

// WithSizingTimeout bounds each sizing request. Zero keeps the default.
func (h *Handler) WithSizingTimeout(timeout time.Duration) *Handler {
	if timeout > 0 {
		h.sizingTimeout = timeout
	}
	return h
}

// Health reports liveness and which sizing sources are configured
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"sizing": map[string]bool{
			"kubernetes": h.nodeSource != nil,
			"prometheus": h.instanceSource != nil,
		},
	})
}

// GetSpecification returns the session's current spec
func (h *Handler) GetSpecification(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.session.Specification())
}

// SetSpecification replaces the session spec with a validated JSON body
func (h *Handler) SetSpecification(w http.ResponseWriter, r *http.Request) {
	spec, ok := decodeSpec(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, h.session.SetSpecification(spec))
}

// UpdateField applies raw text to one field the way form input is applied
func (h *Handler) UpdateField(w http.ResponseWriter, r *http.Request) {
	field, err := models.ParseField(r.PathValue("field"))
	if err != nil {
		writeError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	var update FieldUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, r, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, r, http.StatusOK, h.session.UpdateField(field, update.Value))
}

// GetEstimates returns the session's per-provider estimates
func (h *Handler) GetEstimates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.session.CurrentEstimates())
}

// GetComparison returns the session's ranked comparison
func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.session.Comparison())
}

// Compare prices a spec without touching the session
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	spec, ok := decodeSpec(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, h.compare(spec, nil))
}

// GetTiers returns the rate card in use
func (h *Handler) GetTiers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.estimators.RateCard())
}

// SizeNode sizes a Kubernetes node by name
func (h *Handler) SizeNode(w http.ResponseWriter, r *http.Request) {
	h.size(w, r, h.nodeSource, r.PathValue("name"))
}

// SizePrometheus sizes a node-exporter instance
func (h *Handler) SizePrometheus(w http.ResponseWriter, r *http.Request) {
	h.size(w, r, h.instanceSource, r.PathValue("instance"))
}

// ListNodes returns the Ready nodes the node source can size
func (h *Handler) ListNodes(w http.ResponseWriter, r *http.Request) {
	if h.nodeLister == nil {
		writeError(w, r, "node listing not configured", http.StatusServiceUnavailable)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.sizingTimeout)
	defer cancel()

	nodes, err := h.nodeLister.ListNodes(ctx)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Listing nodes failed")
		code := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			code = http.StatusGatewayTimeout
		}
		writeError(w, r, err.Error(), code)
		return
	}
	if nodes == nil {
		nodes = []string{}
	}
	writeJSON(w, r, http.StatusOK, NodeList{Nodes: nodes})
}

// ClearSizingCache drops cached sizing results from every source that caches
func (h *Handler) ClearSizingCache(w http.ResponseWriter, r *http.Request) {
	cleared := 0
	for _, source := range []sizing.Source{h.nodeSource, h.instanceSource} {
		if c, ok := source.(cacheClearer); ok {
			c.Clear()
			cleared++
		}
	}
	zerolog.Ctx(r.Context()).Info().Int("sources", cleared).Msg("Cleared sizing cache")
	w.WriteHeader(http.StatusNoContent)
}

type cacheClearer interface {
	Clear()
}

// size derives a spec from telemetry. With ?apply=true the session adopts it.
func (h *Handler) size(w http.ResponseWriter, r *http.Request, source sizing.Source, target string) {
	if source == nil {
		writeError(w, r, "sizing source not configured", http.StatusServiceUnavailable)
		return
	}

	mode, err := sizing.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		writeError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	apply := false
	if raw := r.URL.Query().Get("apply"); raw != "" {
		apply, err = strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, "apply must be true or false", http.StatusBadRequest)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.sizingTimeout)
	defer cancel()

	result, err := source.Specification(ctx, target, mode)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Str("source", source.Name()).Str("target", target).Msg("Sizing failed")
		code := http.StatusBadGateway
		if errors.Is(err, context.DeadlineExceeded) {
			code = http.StatusGatewayTimeout
		}
		writeError(w, r, err.Error(), code)
		return
	}

	if apply {
		snap := h.session.SetSpecification(result.Specification)
		writeJSON(w, r, http.StatusOK, CompareResponse{
			Specification: snap.Specification,
			Estimates:     snap.Estimates,
			Comparison:    snap.Comparison,
			Sizing:        result,
		})
		return
	}

	writeJSON(w, r, http.StatusOK, h.compare(result.Specification, result))
}

func (h *Handler) compare(spec models.HardwareSpec, result *sizing.Result) CompareResponse {
	estimates := h.estimators.EstimateAll(spec)
	return CompareResponse{
		Specification: spec,
		Estimates:     estimates,
		Comparison:    h.estimators.Compare(estimates),
		Sizing:        result,
	}
}

// decodeSpec reads a HardwareSpec body. Fields below 1 are rejected here
// rather than clamped, since a JSON client sent them deliberately.
func decodeSpec(w http.ResponseWriter, r *http.Request) (models.HardwareSpec, bool) {
	var spec models.HardwareSpec
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&spec); err != nil {
		writeError(w, r, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return spec, false
	}
	if err := spec.Validate(); err != nil {
		writeError(w, r, err.Error(), http.StatusBadRequest)
		return spec, false
	}
	return spec, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, message string, code int) {
	writeJSON(w, r, code, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
