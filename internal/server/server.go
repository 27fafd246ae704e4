// Package server boots every subsystem and runs the HTTP server until
// the process is told to stop.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shashiranjanraj/bhandar/app/models"
	"github.com/shashiranjanraj/bhandar/app/routes"
	"github.com/shashiranjanraj/bhandar/config"
	"github.com/shashiranjanraj/bhandar/pkg/cache"
	"github.com/shashiranjanraj/bhandar/pkg/database"
	"github.com/shashiranjanraj/bhandar/pkg/event"
	"github.com/shashiranjanraj/bhandar/pkg/logger"
	"github.com/shashiranjanraj/bhandar/pkg/metrics"
	"github.com/shashiranjanraj/bhandar/pkg/middleware"
	"github.com/shashiranjanraj/bhandar/pkg/migration"
	"github.com/shashiranjanraj/bhandar/pkg/reqid"
	"github.com/shashiranjanraj/bhandar/pkg/router"
	"github.com/shashiranjanraj/bhandar/pkg/schedule"
	"github.com/shashiranjanraj/bhandar/pkg/session"
	"github.com/shashiranjanraj/bhandar/pkg/storage"
	"github.com/shashiranjanraj/bhandar/pkg/workerpool"
)

const importPoolSize = 4

// Start boots the application and blocks until shutdown.
func Start() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("server: load config: %w", err)
	}

	if uri := config.LogMongoURI(); uri != "" {
		sink, err := logger.EnableMongoSink(uri, config.MongoDB(), "logs")
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			defer sink.Close()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Connect(); err != nil {
		return err
	}
	if err := migration.New(database.DB).Run(); err != nil {
		return err
	}
	if err := database.ConnectMongo(ctx); err != nil {
		return err
	}
	defer database.DisconnectMongo(context.Background())

	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, cache and sessions degrade", "error", err)
	}
	storage.Connect()

	pool := workerpool.New(importPoolSize)
	defer pool.Shutdown()

	svc, err := routes.BuildServices(pool)
	if err != nil {
		return fmt.Errorf("server: build services: %w", err)
	}

	go routes.InventoryHub.Run()
	bridgeEvents()
	registerSweep(svc)
	schedule.Start()
	defer schedule.Stop()

	r := router.New()
	r.Use(
		metrics.Middleware(),
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(300, time.Minute),
		session.Middleware(session.DefaultOptions()),
	)
	if err := routes.RegisterAPI(r, svc); err != nil {
		return fmt.Errorf("server: register routes: %w", err)
	}

	timeout := config.HTTPTimeout()
	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           r.Handler(),
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * timeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// bridgeEvents forwards domain events to the WebSocket hub as JSON
// frames so open dashboards refresh without polling.
func bridgeEvents() {
	push := func(kind string, payload interface{}) {
		frame, err := json.Marshal(map[string]interface{}{
			"event": kind,
			"data":  payload,
		})
		if err != nil {
			return
		}
		routes.InventoryHub.Broadcast <- frame
	}

	event.Listen(event.ProductCreated, func(p models.Product) {
		push(event.ProductCreated, p)
	})
	event.Listen(event.ProductsImported, func(count int) {
		push(event.ProductsImported, map[string]int{"count": count})
	})
	event.Listen(event.StockLow, func(p models.Product) {
		push(event.StockLow, p)
	})
}

// registerSweep schedules the nightly inventory recount. It refreshes
// the Prometheus gauges and fires stock.low for anything at or below
// the threshold.
func registerSweep(svc *routes.Services) {
	err := schedule.Register("inventory-sweep", config.SweepCron(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), config.HTTPTimeout())
		defer cancel()

		svc.Inventory.InvalidateSummary()
		summary, err := svc.Inventory.Summarize(ctx)
		if err != nil {
			logger.Error("inventory sweep failed", "error", err)
			return
		}
		logger.Info("inventory sweep",
			"total", summary.Total,
			"lowStock", summary.LowStock,
			"outOfStock", summary.OutOfStock,
			"expiringSoon", summary.ExpiringSoon)

		low, err := svc.Inventory.ListLowStock(ctx)
		if err != nil {
			return
		}
		for _, p := range low {
			event.FireAsync(event.StockLow, p)
		}
	})
	if err != nil {
		logger.Error("could not schedule inventory sweep", "error", err)
	}
}
