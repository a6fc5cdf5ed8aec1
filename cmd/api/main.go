package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/time/rate"

	"github.com/netroute-lab/routeview/config"
	"github.com/netroute-lab/routeview/internal/bootstrap"
	canvashttp "github.com/netroute-lab/routeview/internal/canvas/http"
	canvasrepo "github.com/netroute-lab/routeview/internal/canvas/repository"
	canvasservice "github.com/netroute-lab/routeview/internal/canvas/service"
	inventoryservice "github.com/netroute-lab/routeview/internal/network_inventory/service"
	cronjob "github.com/netroute-lab/routeview/internal/route_aggregation/cron"
	"github.com/netroute-lab/routeview/internal/route_aggregation/domain"
	routeservice "github.com/netroute-lab/routeview/internal/route_aggregation/service"
	"github.com/netroute-lab/routeview/internal/route_aggregation/source"
	"github.com/netroute-lab/routeview/internal/storage/postgres"
)

const serviceName = "routeview"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	defer redisClient.Close()

	var pool *pgxpool.Pool
	if cfg.Database.DSN != "" {
		pool, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.Database.DSN})
		if err != nil {
			log.Fatalf("db: %v", err)
		}
		defer pool.Close()
	} else {
		log.Println("[info] DB_DSN not set, canvas versions disabled")
	}

	var presetDB *sql.DB
	if cfg.Database.Host != "" {
		presetDB, err = postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			log.Fatalf("preset db: %v", err)
		}
		defer presetDB.Close()
		if err := postgres.EnsureSchema(ctx, presetDB); err != nil {
			log.Fatalf("preset db: %v", err)
		}
	} else {
		log.Println("[info] DB_HOST not set, route presets disabled")
	}

	fetcher := source.NewClient(source.Options{
		Timeout:   cfg.Sources.Timeout,
		AWSRegion: cfg.Sources.AWSRegion,
	})

	routes := routeservice.NewRegistry(fetcher, routeservice.Sources{
		domain.CategoryBlue: cfg.Sources.BlueRoutes,
		domain.CategoryRed:  cfg.Sources.RedRoutes,
	})
	inventory := inventoryservice.NewInventory(fetcher, inventoryservice.Sources{
		Models:    cfg.Sources.Models,
		Relations: cfg.Sources.Relations,
		Errors:    cfg.Sources.ErrorList,
	})

	// Documents load in the background; handlers wait on the ready signal.
	go func() {
		if err := routes.Load(ctx); err != nil {
			log.Printf("[error] operation=load_routes error=%v", err)
		}
	}()
	go func() {
		if err := inventory.Load(ctx); err != nil {
			log.Printf("[error] operation=load_inventory error=%v", err)
		}
	}()

	scheduler := cronjob.NewScheduler(cfg.Sources.RefreshCron, 2*cfg.Sources.Timeout, routes, inventory)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}
	defer scheduler.Stop()

	var versions canvasservice.VersionStore
	if pool != nil {
		versions = canvasrepo.NewVersionRepository(pool)
	}
	var presets canvashttp.PresetStore
	if presetDB != nil {
		presets = canvasrepo.NewPresetRepository(presetDB)
	}

	var limiter *rate.Limiter
	if cfg.Recompute.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Recompute.Rate), cfg.Recompute.Burst)
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:      serviceName,
		Version:          cfg.App.Version,
		CORSOrigins:      cfg.Server.CORSOrigins,
		DB:               pool,
		Redis:            redisClient,
		Routes:           routes,
		Inventory:        inventory,
		Canvas:           canvasservice.NewCanvasService(canvasrepo.NewSessionRepository(redisClient), versions, routes),
		Presets:          presets,
		RecomputeLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[error] operation=shutdown error=%v", err)
	}
}
