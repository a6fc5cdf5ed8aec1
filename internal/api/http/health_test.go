package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readyFlag bool

func (r readyFlag) IsReady() bool { return bool(r) }

func healthCheck(t *testing.T, h *HealthHandler) HealthResponse {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func TestHealthCheck(t *testing.T) {
	resp := healthCheck(t, NewHealthHandler("test-service", "1.0.0"))

	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "test-service", resp.Service)
	assert.Equal(t, "1.0.0", resp.Version)
	assert.Equal(t, "disabled", resp.DB)
	assert.Equal(t, "disabled", resp.Redis)
	assert.Equal(t, "disabled", resp.Routes)
}

func TestHealthCheckDependencies(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	resp := healthCheck(t, NewHealthHandler("svc", "v", WithRedis(client), WithRoutes(readyFlag(false))))
	assert.Equal(t, "up", resp.Redis)
	assert.Equal(t, "loading", resp.Routes)

	resp = healthCheck(t, NewHealthHandler("svc", "v", WithRoutes(readyFlag(true))))
	assert.Equal(t, "ready", resp.Routes)

	mr.Close()
	resp = healthCheck(t, NewHealthHandler("svc", "v", WithRedis(client)))
	assert.Equal(t, "down", resp.Redis)
}

func TestHealthzAlias(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	NewHealthHandler("svc", "v").RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
