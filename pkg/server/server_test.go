package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opscart/hardware-cost-compare/pkg/models"
	"github.com/opscart/hardware-cost-compare/pkg/pricing"
	"github.com/opscart/hardware-cost-compare/pkg/session"
	"github.com/opscart/hardware-cost-compare/pkg/sizing"
)

type stubSource struct {
	result *sizing.Result
	err    error
	mode   sizing.Mode
	calls  int
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Specification(_ context.Context, target string, mode sizing.Mode) (*sizing.Result, error) {
	s.mode = mode
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	result := *s.result
	result.Target = target
	result.Mode = mode
	return &result, nil
}

type testEnv struct {
	server  *httptest.Server
	session *session.Session
	nodes   *stubSource
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)
	set := pricing.NewSet(nil)
	sess := session.New(set, zerolog.Nop(), metrics)

	nodes := &stubSource{result: &sizing.Result{
		Source:          "stub",
		Specification:   models.HardwareSpec{CPUCores: 16, MemoryGB: 64, StorageGB: 1000},
		HostingProvider: "aws",
	}}
	handler := NewHandler(sess, set, zerolog.Nop()).WithNodeSource(nodes)

	srv := httptest.NewServer(New(handler, registry, metrics, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, session: sess, nodes: nodes}
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp, body := env.do(t, http.MethodGet, "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
	assert.Contains(t, string(body), `"status":"ok"`)
	assert.Contains(t, string(body), `"kubernetes":true`)
	assert.Contains(t, string(body), `"prometheus":false`)
}

func TestGetDefaults(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/v1/specification", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var spec models.HardwareSpec
	require.NoError(t, json.Unmarshal(body, &spec))
	assert.Equal(t, models.DefaultSpec(), spec)

	_, body = env.do(t, http.MethodGet, "/api/v1/estimates", "")
	var estimates models.Estimates
	require.NoError(t, json.Unmarshal(body, &estimates))
	assert.Equal(t, 7740.0, estimates.Azure.TotalCost)
	assert.Equal(t, "m5.xlarge", estimates.AWS.InstanceTier)

	_, body = env.do(t, http.MethodGet, "/api/v1/comparison", "")
	var comparison models.Comparison
	require.NoError(t, json.Unmarshal(body, &comparison))
	assert.Equal(t, models.ProviderOnPrem, comparison.CheapestLabel)
	assert.Len(t, comparison.Rows, 3)
}

func TestSetSpecification(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPut, "/api/v1/specification", `{"cpu":2,"memory":8,"storage":100}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Equal(t, "Standard_B2s", snap.Estimates.Azure.InstanceTier)
	assert.Equal(t, models.HardwareSpec{CPUCores: 2, MemoryGB: 8, StorageGB: 100}, env.session.Specification())
}

func TestSetSpecificationRejectsInvalid(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body string
	}{
		{"zero cpu", `{"cpu":0,"memory":8,"storage":100}`},
		{"missing field", `{"cpu":2,"memory":8}`},
		{"unknown field", `{"cpu":2,"memory":8,"storage":100,"gpu":1}`},
		{"not json", `cpu=2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.do(t, http.MethodPut, "/api/v1/specification", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, string(body), `"error"`)
		})
	}

	assert.Equal(t, models.DefaultSpec(), env.session.Specification())
}

func TestUpdateFieldClamps(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPatch, "/api/v1/specification/cpu", `{"value":"-3"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(body, &snap))
	assert.Equal(t, 1, snap.Specification.CPUCores)
	assert.Equal(t, 16, snap.Specification.MemoryGB)

	resp, _ = env.do(t, http.MethodPatch, "/api/v1/specification/gpu", `{"value":"2"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompareIsStateless(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/v1/compare", `{"cpu":32,"memory":256,"storage":2000}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result CompareResponse
	require.NoError(t, json.Unmarshal(body, &result))
	assert.Equal(t, "Standard_D32s_v3", result.Estimates.Azure.InstanceTier)
	assert.Equal(t, 3, result.Estimates.OnPrem.DriveCount)
	assert.Equal(t, models.DefaultSpec(), env.session.Specification())
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, http.MethodDelete, "/api/v1/specification", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestSizeNode(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodGet, "/api/v1/sizing/node/ip-10-0-0-1?mode=usage", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result CompareResponse
	require.NoError(t, json.Unmarshal(body, &result))
	require.NotNil(t, result.Sizing)
	assert.Equal(t, "ip-10-0-0-1", result.Sizing.Target)
	assert.Equal(t, sizing.ModeUsage, env.nodes.mode)
	assert.Equal(t, "Standard_D16s_v3", result.Estimates.Azure.InstanceTier)
	assert.Equal(t, models.DefaultSpec(), env.session.Specification(), "sizing without apply leaves the session alone")

	resp, _ = env.do(t, http.MethodGet, "/api/v1/sizing/node/ip-10-0-0-1?apply=true", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 16, env.session.Specification().CPUCores)
}

func TestSizeErrors(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/api/v1/sizing/prometheus/host:9100", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/v1/sizing/node/a?mode=peak", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/v1/sizing/node/a?apply=maybe", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	env.nodes.err = errors.New("nodes \"a\" not found")
	resp, body := env.do(t, http.MethodGet, "/api/v1/sizing/node/a", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, string(body), "not found")
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodPatch, "/api/v1/specification/memory", `{"value":"64"}`)
	env.do(t, http.MethodGet, "/api/v1/comparison", "")

	resp, body := env.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := string(body)
	// one recompute at construction, one for the patch
	assert.Contains(t, out, "tco_recomputations_total 2")
	assert.Contains(t, out, `tco_estimate_total_cost{provider="Azure"}`)
	assert.Contains(t, out, `tco_cheapest_selections_total{provider="On-Prem"}`)
	assert.Contains(t, out, `tco_http_requests_total{method="PATCH",path="/api/v1/specification/{field}",status="200"} 1`)
	assert.Contains(t, out, `tco_http_requests_total{method="GET",path="/api/v1/comparison",status="200"} 1`)
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next(w, r)
			}
		}
	}

	h := Chain(func(w http.ResponseWriter, r *http.Request) { order = append(order, "handler") }, mw("outer"), mw("inner"))
	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
}

type stubLister struct {
	nodes []string
	err   error
}

func (s stubLister) ListNodes(context.Context) ([]string, error) {
	return s.nodes, s.err
}

func serve(t *testing.T, handler *Handler) *testEnv {
	t.Helper()
	registry := prometheus.NewRegistry()
	srv := httptest.NewServer(New(handler, registry, NewMetrics(registry), zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	return &testEnv{server: srv}
}

func TestListNodes(t *testing.T) {
	env := newTestEnv(t)
	resp, _ := env.do(t, http.MethodGet, "/api/v1/sizing/nodes", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	sess := session.New(nil, zerolog.Nop())
	listed := serve(t, NewHandler(sess, nil, zerolog.Nop()).WithNodeLister(stubLister{nodes: []string{"worker-1", "worker-2"}}))
	resp, body := listed.do(t, http.MethodGet, "/api/v1/sizing/nodes", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list NodeList
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, []string{"worker-1", "worker-2"}, list.Nodes)

	empty := serve(t, NewHandler(sess, nil, zerolog.Nop()).WithNodeLister(stubLister{}))
	_, body = empty.do(t, http.MethodGet, "/api/v1/sizing/nodes", "")
	assert.JSONEq(t, `{"nodes":[]}`, string(body))

	failing := serve(t, NewHandler(sess, nil, zerolog.Nop()).WithNodeLister(stubLister{err: errors.New("forbidden")}))
	resp, _ = failing.do(t, http.MethodGet, "/api/v1/sizing/nodes", "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestClearSizingCache(t *testing.T) {
	stub := &stubSource{result: &sizing.Result{Specification: models.DefaultSpec()}}
	sess := session.New(nil, zerolog.Nop())
	env := serve(t, NewHandler(sess, nil, zerolog.Nop()).WithNodeSource(sizing.NewCachedSource(stub, time.Hour)))

	for i := 0; i < 2; i++ {
		resp, _ := env.do(t, http.MethodGet, "/api/v1/sizing/node/worker-1", "")
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, 1, stub.calls)

	resp, _ := env.do(t, http.MethodDelete, "/api/v1/sizing/cache", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = env.do(t, http.MethodGet, "/api/v1/sizing/node/worker-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, stub.calls)
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.WithContext(req.Context()))
	rec := httptest.NewRecorder()

	writeJSON(rec, req, http.StatusOK, map[string]interface{}{"ch": make(chan int)})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, logs.String(), "Failed to encode response")
}
