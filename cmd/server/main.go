package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rently/internal/application"
	applicationhandler "rently/internal/application/handler"
	"rently/internal/audit"
	audithandler "rently/internal/audit/handler"
	"rently/internal/jwtauth"
	"rently/internal/listing"
	listinghandler "rently/internal/listing/handler"
	"rently/internal/platform/config"
	"rently/internal/platform/httpserver"
	"rently/internal/platform/logger"
	"rently/internal/platform/metrics"
	"rently/internal/platform/postgres"
	platformredis "rently/internal/platform/redis"
	"rently/internal/screening"
	"rently/internal/screening/identity"
	screeningmetrics "rently/internal/screening/metrics"
	"rently/internal/screening/provider"
	"rently/internal/screening/session"
	"rently/internal/screening/store"
	httptransport "rently/internal/transport/http"
)

const auditInboxSize = 256

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.PostgresURL)
	if err != nil {
		log.Error("postgres connection failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	appMetrics := metrics.New()
	screenMetrics := screeningmetrics.New()

	var reportStore store.ReportStore
	var listingStore listing.Store
	var applicationStore application.Store
	switch {
	case pool != nil:
		reportStore = store.NewPostgres(pool)
		listingStore = listing.NewPostgresStore(pool)
		applicationStore = application.NewPostgresStore(pool)
		log.Info("using postgres storage")
	case redisClient != nil:
		reportStore = store.NewRedis(redisClient.Client, config.ReportCacheTTL)
		listingStore = listing.NewInMemoryStore()
		applicationStore = application.NewInMemoryStore()
		log.Info("using redis report cache with in-memory domain storage")
	default:
		reportStore = store.NewInMemory()
		listingStore = listing.NewInMemoryStore()
		applicationStore = application.NewInMemoryStore()
		log.Info("using in-memory storage")
	}

	auditBacking := audit.NewInMemoryStore()
	auditQueue := audit.NewAsyncStore(auditBacking, auditInboxSize)
	auditWorker := audit.NewWorker(auditBacking, auditQueue.Inbox())
	go func() {
		if err := auditWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()
	publisher := audit.NewPublisher(auditQueue)

	providerClient := provider.NewHTTPClient(cfg.Screening)
	sess := session.New(providerClient.Login, cfg.Screening.LoginMargin, log)
	adapters := provider.NewAdapters(providerClient, identity.NewRotation(), log, screenMetrics)
	orchestrator := screening.NewOrchestrator(cfg.Screening, sess, adapters, log, screenMetrics)

	screeningService, err := screening.NewService(reportStore, orchestrator, publisher, log, screenMetrics)
	if err != nil {
		log.Error("screening service init failed", "error", err)
		os.Exit(1)
	}
	listingService, err := listing.NewService(listingStore, appMetrics)
	if err != nil {
		log.Error("listing service init failed", "error", err)
		os.Exit(1)
	}
	applicationService, err := application.NewService(applicationStore, listingService, screeningService, publisher, log, appMetrics)
	if err != nil {
		log.Error("application service init failed", "error", err)
		os.Exit(1)
	}

	jwtService := jwtauth.NewJWTService(cfg.JWTSigningKey, "rently", "rently-api")

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:       log,
		JWTValidator: jwtService,
		Listings:     listinghandler.New(listingService, log),
		Applications: applicationhandler.New(applicationService, log),
		Audit:        audithandler.New(publisher, log),
		Health: func() map[string]string {
			status := map[string]string{}
			if pool != nil {
				if err := pool.Ping(ctx); err != nil {
					status["postgres"] = "unreachable"
				} else {
					status["postgres"] = "ok"
				}
			}
			if redisClient != nil {
				if err := redisClient.Health(ctx); err != nil {
					status["redis"] = "unreachable"
				} else {
					status["redis"] = "ok"
				}
			}
			if !cfg.Screening.Configured() {
				status["screening"] = "synthetic"
			}
			return status
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
