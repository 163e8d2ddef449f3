package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"landgate/internal/geo"
	geohandler "landgate/internal/geo/handler"
	"landgate/internal/platform/config"
	"landgate/internal/platform/httpserver"
	"landgate/internal/platform/logger"
	"landgate/internal/platform/middleware"
	platformredis "landgate/internal/platform/redis"
	"landgate/internal/registry"
	"landgate/internal/report"
	reporthandler "landgate/internal/report/handler"
	reportmetrics "landgate/internal/report/metrics"
	riskhandler "landgate/internal/risk/handler"
	"landgate/internal/road"
	roadhandler "landgate/internal/road/handler"
	roadmetrics "landgate/internal/road/metrics"
	"landgate/internal/search"
	searchhandler "landgate/internal/search/handler"
	"landgate/internal/tile"
	tilehandler "landgate/internal/tile/handler"
	tilemetrics "landgate/internal/tile/metrics"
)

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	indicators, err := config.LoadMarketIndicators(cfg.MarketDataPath)
	if err != nil {
		log.Error("market indicators load failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}

	var tileCache tile.Cache = tile.NewMemoryCache()
	if redisClient != nil {
		tileCache = tile.NewRedisCache(redisClient)
		defer redisClient.Close()
	}

	geoClient := geo.NewClient(cfg, log)
	registryClient := registry.NewClient(cfg, registry.DefaultEndpoints(), log)
	searchClient := search.NewClient(cfg, log)

	reportService := report.New(registryClient, log, reportmetrics.New())
	analyzer := road.New(geoClient, log, roadmetrics.New())
	tileProxy := tile.NewProxy(cfg, tileCache, tilemetrics.New(), log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	geohandler.New(geoClient, log).Register(r)
	roadhandler.New(analyzer, log).Register(r)
	reporthandler.New(reportService, log).Register(r)
	riskhandler.New(reportService, indicators, log).Register(r)
	searchhandler.New(searchClient, log).Register(r)
	tilehandler.New(tileProxy, log).Register(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(req.Context()); err != nil {
				http.Error(w, "redis unhealthy", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	srv := httpserver.New(cfg.Addr, r)

	go func() {
		log.Info("landgate listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
