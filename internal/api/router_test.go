package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"route-optimizer-service/internal/adapters/cache"
	"route-optimizer-service/internal/adapters/loader"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/api/dto"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/metrics"
	"route-optimizer-service/internal/services"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T, initial *domain.Network) *httptest.Server {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := zap.NewNop()
	repo := repositories.NewMemoryNetworkRepository(initial)
	optimizer := services.NewOptimizer(
		services.WithDepot(domain.DefaultDepotID),
		services.WithWorkers(2),
		services.WithLogger(logger),
	)
	plans := services.NewPlanService(repo, cache.NewRedisPlanCache(client, time.Minute, logger), optimizer, logger)

	srv := httptest.NewServer(NewRouter(Deps{
		Repo:           repo,
		Plans:          plans,
		Depot:          domain.DefaultDepotID,
		DefaultDrivers: 3,
		MaxDrivers:     20,
		Logger:         logger,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func seedNetwork(t *testing.T) *domain.Network {
	t.Helper()
	n, err := loader.LoadFile("../../data/seeds/network.yaml")
	require.NoError(t, err)
	return &n
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest(method, url, bytes.NewBufferString(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	resp, _ = do(t, http.MethodPost, srv.URL+"/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestNetworkLifecycle(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, body := do(t, http.MethodGet, srv.URL+"/network", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "no network stored", body["error"])

	payload, err := json.Marshal(dto.NetworkFromDomain(*seedNetwork(t)))
	require.NoError(t, err)

	resp, _ = do(t, http.MethodPut, srv.URL+"/network", string(payload))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/network", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["points"], 8)
	assert.Len(t, body["edges"], 10)
	assert.Len(t, body["orders"], 6)
}

func TestPutNetworkRejectsInvalidPayloads(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"missing id", `{"points":[{"x":1,"y":2}]}`, "points[0].id is required"},
		{"no points", `{"points":[]}`, "points must have at least 1 entries"},
		{"negative weight", `{"points":[{"id":"depot"}],"edges":[{"from":"depot","to":"depot","weight":-1}]}`, "edges[0].weight must be greater than or equal to 0"},
		{"unknown edge endpoint", `{"points":[{"id":"depot"}],"edges":[{"from":"depot","to":"X","weight":1}]}`, `unknown point "X"`},
		{"missing depot", `{"points":[{"id":"A"}]}`, `depot id references unknown point "depot"`},
		{"unknown field", `{"points":[{"id":"depot"}],"extra":1}`, "invalid json body"},
		{"two objects", `{"points":[{"id":"depot"}]} {}`, "only one JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPut, srv.URL+"/network", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, body["error"], tt.wantErr)
		})
	}
}

func TestPlanUsesStoredNetworkAndCache(t *testing.T) {
	srv := newTestServer(t, seedNetwork(t))

	resp, body := do(t, http.MethodPost, srv.URL+"/plans", `{"drivers":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, 416.0, body["total_cost"])
	assert.Equal(t, false, body["cached"])
	assert.Equal(t, "depot", body["depot"])

	routes := body["routes"].([]any)
	require.Len(t, routes, 3)

	first := routes[0].(map[string]any)
	assert.Equal(t, 1.0, first["driver"])
	assert.Equal(t, "#A855F7", first["color"])
	assert.Equal(t, []any{"depot", "Cliente A", "depot"}, first["sequence"])
	assert.Equal(t, 70.0, first["total_cost"])
	assert.Equal(t, true, first["complete"])
	assert.Equal(t, []any{}, first["unreached"])

	second := routes[1].(map[string]any)
	assert.Equal(t, []any{"Cliente B", "Cliente G"}, second["orders"])
	assert.Equal(t, []any{"depot", "Cliente B", "Cliente G", "Cliente B", "depot"}, second["sequence"])

	third := routes[2].(map[string]any)
	assert.Equal(t, 230.0, third["total_cost"])

	resp, again := do(t, http.MethodPost, srv.URL+"/plans", `{"drivers":3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, again["cached"])
	assert.Equal(t, body["plan_id"], again["plan_id"])
}

func TestPlanDefaultsDriverCount(t *testing.T) {
	srv := newTestServer(t, seedNetwork(t))

	resp, body := do(t, http.MethodPost, srv.URL+"/plans", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 3.0, body["drivers"])
	assert.Len(t, body["routes"], 3)
}

func TestPlanWithInlineNetwork(t *testing.T) {
	srv := newTestServer(t, nil)

	body := `{
		"drivers": 1,
		"depot": "hub",
		"network": {
			"points": [{"id":"hub","x":0,"y":0},{"id":"A","x":1,"y":0},{"id":"Z","x":9,"y":9}],
			"edges": [{"from":"hub","to":"A","weight":2},{"from":"A","to":"hub","weight":3}],
			"orders": [{"destination":"A"},{"destination":"Z"}]
		}
	}`
	resp, out := do(t, http.MethodPost, srv.URL+"/plans", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	routes := out["routes"].([]any)
	require.Len(t, routes, 1)
	route := routes[0].(map[string]any)
	assert.Equal(t, []any{"hub", "A", "hub"}, route["sequence"])
	assert.Equal(t, 5.0, route["total_cost"])
	assert.Equal(t, false, route["complete"])
	assert.Equal(t, []any{"Z"}, route["unreached"])
}

func TestPlanErrors(t *testing.T) {
	empty := newTestServer(t, nil)
	resp, body := do(t, http.MethodPost, empty.URL+"/plans", `{"drivers":2}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "no network stored", body["error"])

	srv := newTestServer(t, seedNetwork(t))

	tests := []struct {
		name    string
		body    string
		status  int
		wantErr string
	}{
		{"too many drivers", `{"drivers":21}`, http.StatusBadRequest, "drivers must be between 1 and 20"},
		{"negative drivers", `{"drivers":-1}`, http.StatusBadRequest, "drivers must be greater than or equal to 0"},
		{"bad json", `{"drivers":`, http.StatusBadRequest, "invalid json body"},
		{"empty body", ``, http.StatusBadRequest, "request body is empty"},
		{"unknown depot", `{"drivers":1,"network":{"points":[{"id":"A"}],"orders":[{"destination":"A"}]}}`, http.StatusBadRequest, "unknown point"},
		{"no orders", `{"drivers":1,"network":{"points":[{"id":"depot"}]}}`, http.StatusBadRequest, services.ErrEmptyInput.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := do(t, http.MethodPost, srv.URL+"/plans", tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Contains(t, body["error"], tt.wantErr)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	metrics.RegisterDefault()
	srv := newTestServer(t, nil)

	_, _ = do(t, http.MethodGet, srv.URL+"/health", "")

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `http_requests_total{method="GET",route="/health",status="200"}`)
}
