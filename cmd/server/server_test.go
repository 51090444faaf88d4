package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbenitez/repo-code-empathizer/internal/adapters"
	"github.com/rbenitez/repo-code-empathizer/internal/empathy"
	"github.com/rbenitez/repo-code-empathizer/internal/monitoring"
	"github.com/rbenitez/repo-code-empathizer/internal/types"
)

func newTestRouter() (*gin.Engine, *monitoring.Metrics) {
	gin.SetMode(gin.TestMode)

	appMetrics := monitoring.NewMetrics()
	appLogger := monitoring.NewLogger()
	githubAdapter := adapters.NewGitHubAdapter("")

	return newRouter(githubAdapter, appMetrics, appLogger), appMetrics
}

func sampleReport(value float64) *empathy.MetricReport {
	categories := make(map[string]map[string]float64)
	for _, name := range []string{
		"nombres", "documentacion", "modularidad", "complejidad",
		"manejo_errores", "pruebas", "seguridad", "consistencia_estilo",
	} {
		categories[name] = map[string]float64{
			"descriptividad": value,
			"cobertura":      value,
		}
	}

	return &empathy.MetricReport{
		Metadata: empathy.Metadata{
			AnalyzedLanguages: []string{"Python", "JavaScript"},
			AnalyzedFiles:     80,
		},
		Categories: categories,
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var health types.HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, serviceVersion, health.Version)
	assert.NotEmpty(t, health.Uptime)

	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Contains(t, stats, "total_requests")
	assert.Contains(t, stats, "comparisons")
	assert.Contains(t, stats, "avg_empathy_score")
}

func TestEmpathyEndpoint(t *testing.T) {
	router, appMetrics := newTestRouter()

	payload := types.CompareRequest{
		Empresa:   sampleReport(0.9),
		Candidato: sampleReport(0.9),
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/empathy", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp types.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)

	assert.GreaterOrEqual(t, resp.Result.EmpathyScore, 0.0)
	assert.LessOrEqual(t, resp.Result.EmpathyScore, 100.0)
	assert.NotEmpty(t, resp.Result.Interpretation.Level)
	assert.Equal(t, "3.0.0", resp.Result.AlgorithmVersion)
	assert.NotEmpty(t, resp.RequestID)

	stats := appMetrics.GetStats()
	assert.EqualValues(t, 1, stats["comparisons"])
}

func TestEmpathyEndpointValidation(t *testing.T) {
	router, _ := newTestRouter()

	tests := []struct {
		name        string
		body        string
		contentType string
		wantCode    int
	}{
		{
			name:        "missing candidato",
			body:        `{"empresa":{"metadata":{"lenguajes_analizados":[],"archivos_analizados":0},"categorias":{}}}`,
			contentType: "application/json",
			wantCode:    http.StatusBadRequest,
		},
		{
			name:        "malformed JSON",
			body:        `{broken`,
			contentType: "application/json",
			wantCode:    http.StatusBadRequest,
		},
		{
			name:        "unsupported content type",
			body:        `ignored`,
			contentType: "text/plain",
			wantCode:    http.StatusUnsupportedMediaType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/empathy", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestProfileEndpointRejectsBadRefs(t *testing.T) {
	router, _ := newTestRouter()

	for _, path := range []string{
		"/repos/.hidden/repo/profile",
		"/repos/bad..owner/repo/profile",
		"/repos/owner/bad--repo/profile",
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", path, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	router, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set("X-Request-ID", "test-id-123")
	router.ServeHTTP(w, req)

	assert.Equal(t, "test-id-123", w.Header().Get("X-Request-ID"))
}

func TestConcurrentComparisons(t *testing.T) {
	router, appMetrics := newTestRouter()

	payload := types.CompareRequest{
		Empresa:   sampleReport(0.8),
		Candidato: sampleReport(0.6),
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	var wg sync.WaitGroup
	const workers = 10

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/empathy", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}()
	}

	wg.Wait()

	stats := appMetrics.GetStats()
	assert.EqualValues(t, workers, stats["comparisons"])
}
