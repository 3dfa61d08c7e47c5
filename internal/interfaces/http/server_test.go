package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/biztime/internal/errs"
)

func TestHealthCheck(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	decode(t, w, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, fixedNow.Format(time.RFC3339), resp.Timestamp)

	require.NoError(t, api.db.Close())

	w = api.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, "unhealthy", resp.Status)
}

func TestStoreFailureIsInternal(t *testing.T) {
	api := newTestAPI(t)
	require.NoError(t, api.db.Close())

	tests := []struct {
		method string
		path   string
		body   interface{}
	}{
		{method: http.MethodGet, path: "/companies"},
		{method: http.MethodGet, path: "/companies/test"},
		{method: http.MethodPost, path: "/companies", body: map[string]string{"code": "a", "name": "A", "description": ""}},
		{method: http.MethodGet, path: "/invoices"},
		{method: http.MethodDelete, path: "/invoices/1"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := api.do(t, tt.method, tt.path, tt.body)
			requireError(t, w, http.StatusInternalServerError, errs.InternalMessage)
			assert.NotContains(t, w.Body.String(), "closed")
		})
	}
}

func TestNoRoute(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		method  string
		path    string
		message string
	}{
		{method: http.MethodPut, path: "/invoices", message: "PUT /invoices not found"},
		{method: http.MethodGet, path: "/nope", message: "GET /nope not found"},
		{method: http.MethodPost, path: "/companies/test", message: "POST /companies/test not found"},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			w := api.do(t, tt.method, tt.path, nil)
			requireError(t, w, http.StatusNotFound, tt.message)
		})
	}
}

func TestPanicIsInternal(t *testing.T) {
	api := newTestAPI(t)
	api.server.Router().GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	w := api.do(t, http.MethodGet, "/boom", nil)
	requireError(t, w, http.StatusInternalServerError, errs.InternalMessage)
}

func TestCORS(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/companies", nil)
	req.Header.Set("Origin", "http://client.example")
	w := httptest.NewRecorder()
	api.server.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSConfig(t *testing.T) {
	tests := []struct {
		name     string
		origins  []string
		allowAll bool
	}{
		{name: "empty", origins: nil, allowAll: true},
		{name: "wildcard", origins: []string{"http://a.example", "*"}, allowAll: true},
		{name: "explicit", origins: []string{"http://a.example"}, allowAll: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := corsConfig(tt.origins)
			assert.Equal(t, tt.allowAll, cfg.AllowAllOrigins)
			if !tt.allowAll {
				assert.Equal(t, tt.origins, cfg.AllowOrigins)
			}
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestServerAddress(t *testing.T) {
	cfg := DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 4321

	server := NewServer(cfg, nil, nil, nil, zap.NewNop())
	assert.Equal(t, "127.0.0.1:4321", server.Address())
	assert.NoError(t, server.Stop())
}
