package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillahandlers "github.com/gorilla/handlers"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-maintenance/internal/cache"
	"github.com/ukydev/fleet-maintenance/internal/config"
	"github.com/ukydev/fleet-maintenance/internal/db"
	"github.com/ukydev/fleet-maintenance/internal/handlers"
	"github.com/ukydev/fleet-maintenance/internal/ingest"
	"github.com/ukydev/fleet-maintenance/internal/maintenance"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
)

func setupLogging(level string) {
	log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339})
	log.SetOutput(os.Stdout)
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("Unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func apiOptions(cfg *config.Config) handlers.Options {
	return handlers.Options{
		Policy: maintenance.Policy{
			WarningDays:     cfg.WarningDays,
			WarningDistance: cfg.WarningDistanceKm,
		},
		DefaultIntervalKm:     cfg.DefaultIntervalKm,
		DefaultIntervalMonths: cfg.DefaultIntervalMonths,
	}
}

// buildHandler wraps the API router with the middleware chain. Recover is
// outermost so panics in any later layer still produce a response.
func buildHandler(api *handlers.API, cfg *config.Config) http.Handler {
	limiter := middleware.NewRateLimitMiddleware()

	var h http.Handler = handlers.NewRouter(api)
	h = limiter.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindowSeconds)(h)
	h = gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins([]string{"*"}),
		gorillahandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillahandlers.AllowedHeaders([]string{"Content-Type"}),
	)(h)
	h = middleware.RequestLogger(h)
	return middleware.Recover(h)
}

func connectCache(ctx context.Context, cfg *config.Config) cache.StatusCache {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, status cache disabled")
		return cache.NopStatusCache{}
	}
	redisCache, err := cache.NewRedisStatusCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.StatusCacheTTL)
	if err != nil {
		log.WithError(err).Warn("Redis unavailable, status cache disabled")
		return cache.NopStatusCache{}
	}
	log.WithField("addr", cfg.RedisAddr).Info("Connected to Redis status cache")
	return redisCache
}

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := db.ConnectMongo(ctx, cfg.MongoURI)
	if err != nil {
		cancel()
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	store := db.NewStore(client.Database(cfg.MongoDB))
	if err := store.EnsureIndexes(ctx); err != nil {
		cancel()
		log.WithError(err).Fatal("Failed to create indexes")
	}
	statusCache := connectCache(ctx, cfg)
	cancel()
	log.WithField("database", cfg.MongoDB).Info("Connected to MongoDB")

	api := handlers.NewAPI(store.Clients, store.Trucks, store.Services, statusCache, apiOptions(cfg))

	var subscriber *ingest.Subscriber
	if cfg.MQTTBroker != "" {
		subscriber = ingest.NewSubscriber(cfg.MQTTBroker, cfg.MQTTClientID, cfg.MQTTTopic, ingest.NewHandler(store.Trucks, statusCache))
		if err := subscriber.Start(); err != nil {
			log.WithError(err).Error("Odometer feed disabled")
			subscriber = nil
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           buildHandler(api, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP shutdown failed")
	}
	if subscriber != nil {
		subscriber.Stop()
	}
	if closer, ok := statusCache.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		log.WithError(err).Error("MongoDB disconnect failed")
	}
}
