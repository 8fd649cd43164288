package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/charlesng35/codeshelf/internal/app"
	testutil "github.com/charlesng35/codeshelf/internal/database/testutil"
	"github.com/charlesng35/codeshelf/internal/monitoring"
)

func testConfig() *app.Config {
	cfg := &app.Config{}
	cfg.Server.CORS.AllowedOrigins = []string{"*"}
	cfg.Monitoring.Prometheus.Enabled = true
	cfg.Monitoring.Prometheus.Endpoint = "/metrics"
	cfg.Monitoring.Health.Enabled = true
	return cfg
}

func serve(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestNewRouterRequiresDependencies(t *testing.T) {
	_, err := NewRouter(nil, testConfig())
	require.Error(t, err)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	_, err = NewRouter(db, nil)
	require.Error(t, err)
}

func TestRouter_MountsRoutesAtRootAndAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithSeedData())
	router, err := NewRouter(db, testConfig())
	require.NoError(t, err)

	for _, prefix := range []string{"", "/api"} {
		for _, path := range []string{"/snippets", "/tags", "/categories", "/health", "/health/live", "/health/ready"} {
			w := serve(router, http.MethodGet, prefix+path)
			require.Equal(t, http.StatusOK, w.Code, "GET %s%s: %s", prefix, path, w.Body.String())
			require.NotEmpty(t, w.Header().Get("X-Request-ID"))
		}
	}

	w := serve(router, http.MethodGet, "/nope")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "ROUTE_NOT_FOUND")
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	router, err := NewRouter(db, testConfig())
	require.NoError(t, err)

	serve(router, http.MethodGet, "/snippets")

	w := serve(router, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.Contains(w.Body.String(), "codeshelf_api_latency_seconds"))

	cfg := testConfig()
	cfg.Monitoring.Prometheus.Enabled = false
	router, err = NewRouter(db, cfg)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/metrics").Code)
}

func TestRouter_HealthReflectsReadinessChecks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	failing := monitoring.NewCheck("maintenance", func(context.Context) monitoring.ProbeResult {
		return monitoring.ProbeResult{Status: monitoring.StatusDown, Details: "stuck"}
	})

	router, err := NewRouter(db, testConfig(), WithReadinessCheck(failing))
	require.NoError(t, err)

	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health/live").Code)

	w := serve(router, http.MethodGet, "/health/ready")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, w.Body.String(), "stuck")
	require.Contains(t, w.Body.String(), `"component":"database"`)

	require.Equal(t, http.StatusServiceUnavailable, serve(router, http.MethodGet, "/api/health").Code)
}

func TestRouter_HealthDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	cfg := testConfig()
	cfg.Monitoring.Health.Enabled = false

	router, err := NewRouter(db, cfg)
	require.NoError(t, err)

	w := serve(router, http.MethodGet, "/health")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, w.Body.String(), "disabled")
}

func TestRouter_RejectsUnsupportedMethod(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	router, err := NewRouter(db, testConfig())
	require.NoError(t, err)

	w := serve(router, http.MethodPut, "/api/snippets")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Contains(t, w.Body.String(), "METHOD_NOT_ALLOWED")

	w = serve(router, http.MethodOptions, "/api/snippets")
	require.Equal(t, http.StatusNoContent, w.Code)
}
