package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	httpapi "github.com/netroute-lab/routeview/internal/api/http"
	"github.com/netroute-lab/routeview/internal/api/http/middleware"
	canvasdomain "github.com/netroute-lab/routeview/internal/canvas/domain"
	canvashttp "github.com/netroute-lab/routeview/internal/canvas/http"
	canvasservice "github.com/netroute-lab/routeview/internal/canvas/service"
	inventoryhttp "github.com/netroute-lab/routeview/internal/network_inventory/http"
	inventoryservice "github.com/netroute-lab/routeview/internal/network_inventory/service"
	routehttp "github.com/netroute-lab/routeview/internal/route_aggregation/http"
	routeservice "github.com/netroute-lab/routeview/internal/route_aggregation/service"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string

	DB    *pgxpool.Pool
	Redis *redis.Client

	Routes    *routeservice.Registry
	Inventory *inventoryservice.Inventory
	Canvas    *canvasservice.CanvasService
	Presets   canvashttp.PresetStore

	// RecomputeLimiter throttles canvas route recomputes; nil disables it.
	RecomputeLimiter *rate.Limiter
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())

	if len(dep.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	opts := []httpapi.HealthOption{}
	if dep.DB != nil {
		opts = append(opts, httpapi.WithDB(dep.DB))
	}
	if dep.Redis != nil {
		opts = append(opts, httpapi.WithRedis(dep.Redis))
	}
	if dep.Routes != nil {
		opts = append(opts, httpapi.WithRoutes(dep.Routes))
	}
	httpapi.NewHealthHandler(dep.ServiceName, dep.Version, opts...).RegisterRoutes(r)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	if dep.Routes != nil {
		routehttp.New(dep.Routes, canvasdomain.DefaultNodeRefs()).Register(api)
	}
	if dep.Inventory != nil {
		inventoryhttp.New(dep.Inventory).Register(api.Group("/inventory"))
	}
	if dep.Canvas != nil {
		canvashttp.New(dep.Canvas, dep.Presets).Register(api, middleware.RateLimit(dep.RecomputeLimiter))
	}

	return r
}
