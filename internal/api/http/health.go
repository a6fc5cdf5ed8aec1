package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db,omitempty"`
	Redis     string    `json:"redis,omitempty"`
	Routes    string    `json:"routes,omitempty"`
}

// ReadyChecker reports whether the route tables have finished loading.
type ReadyChecker interface {
	IsReady() bool
}

type HealthHandler struct {
	serviceName string
	version     string
	db          *pgxpool.Pool
	redis       *redis.Client
	routes      ReadyChecker
}

type HealthOption func(*HealthHandler)

func WithDB(db *pgxpool.Pool) HealthOption {
	return func(h *HealthHandler) { h.db = db }
}

func WithRedis(c *redis.Client) HealthOption {
	return func(h *HealthHandler) { h.redis = c }
}

func WithRoutes(r ReadyChecker) HealthOption {
	return func(h *HealthHandler) { h.routes = r }
}

func NewHealthHandler(serviceName, version string, opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{
		serviceName: serviceName,
		version:     version,
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
	defer cancel()

	dbStatus := "disabled"
	if h.db != nil {
		if err := h.db.Ping(pingCtx); err != nil {
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	redisStatus := "disabled"
	if h.redis != nil {
		if err := h.redis.Ping(pingCtx).Err(); err != nil {
			redisStatus = "down"
		} else {
			redisStatus = "up"
		}
	}

	routesStatus := "disabled"
	if h.routes != nil {
		routesStatus = "loading"
		if h.routes.IsReady() {
			routesStatus = "ready"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
		Redis:     redisStatus,
		Routes:    routesStatus,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
