package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Middleware(t *testing.T) {
	c := NewCollector()

	r := chi.NewRouter()
	r.Use(c.Middleware)
	r.Post("/api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	r.Get("/api/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for range 2 {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/auth/login", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("/api/auth/login", http.MethodPost, "401")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("/api/health", http.MethodGet, "200")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector()
	c.requests.WithLabelValues("/api/health", http.MethodGet, "200").Inc()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "mayukh_http_requests_total")
}
