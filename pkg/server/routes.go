package server

import "net/http"

// Route defines an API endpoint with its HTTP method and handler
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Routes returns all API routes for registration
func (h *Handler) Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Session
		{Method: http.MethodGet, Path: "/api/v1/specification", Handler: h.GetSpecification},
		{Method: http.MethodPut, Path: "/api/v1/specification", Handler: h.SetSpecification},
		{Method: http.MethodPatch, Path: "/api/v1/specification/{field}", Handler: h.UpdateField},
		{Method: http.MethodGet, Path: "/api/v1/estimates", Handler: h.GetEstimates},
		{Method: http.MethodGet, Path: "/api/v1/comparison", Handler: h.GetComparison},

		// Stateless
		{Method: http.MethodPost, Path: "/api/v1/compare", Handler: h.Compare},
		{Method: http.MethodGet, Path: "/api/v1/tiers", Handler: h.GetTiers},

		// Sizing
		{Method: http.MethodGet, Path: "/api/v1/sizing/nodes", Handler: h.ListNodes},
		{Method: http.MethodGet, Path: "/api/v1/sizing/node/{name}", Handler: h.SizeNode},
		{Method: http.MethodGet, Path: "/api/v1/sizing/prometheus/{instance}", Handler: h.SizePrometheus},
		{Method: http.MethodDelete, Path: "/api/v1/sizing/cache", Handler: h.ClearSizingCache},
	}
}
