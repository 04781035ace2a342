package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/food-storefront/internal/audit"
	"github.com/BruksfildServices01/food-storefront/internal/cache"
	"github.com/BruksfildServices01/food-storefront/internal/config"
	dbpkg "github.com/BruksfildServices01/food-storefront/internal/db"
	"github.com/BruksfildServices01/food-storefront/internal/events"
	"github.com/BruksfildServices01/food-storefront/internal/logger"
	"github.com/BruksfildServices01/food-storefront/internal/routes"
	ucCatalog "github.com/BruksfildServices01/food-storefront/internal/usecase/catalog"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	gw := dbpkg.NewGateway(db, log)

	// ======================================================
	// OPTIONAL BACKENDS
	// ======================================================
	var catalogCache ucCatalog.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		rdb, err := cache.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
		if err != nil {
			log.Warn("catalog cache disabled", zap.Error(err))
		} else {
			defer func() { _ = rdb.Close() }()
			catalogCache = cache.NewCatalogCache(rdb, cfg.CacheTTL, log)
		}
	}

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic)
		log.Info("order events enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.KafkaOrdersTopic),
		)
	}

	dispatcher := audit.NewDispatcher(audit.New(gw), publisher, log)

	// ======================================================
	// HTTP
	// ======================================================
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		Config:  cfg,
		Gateway: gw,
		Log:     log,
		Cache:   catalogCache,
		Audit:   dispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(ctx); err != nil {
		log.Warn("audit queue not drained", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		log.Warn("event publisher close", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
