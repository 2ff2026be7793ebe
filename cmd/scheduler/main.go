package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"offerte-engine-backend/internal/adapters"
	"offerte-engine-backend/internal/email"
	"offerte-engine-backend/internal/events"
	"offerte-engine-backend/internal/offertes/engine"
	offertesrepo "offerte-engine-backend/internal/offertes/repository"
	offertessvc "offerte-engine-backend/internal/offertes/service"
	"offerte-engine-backend/internal/scheduler"
	"offerte-engine-backend/internal/storage"
	tarievenrepo "offerte-engine-backend/internal/tarieven/repository"
	tarievensvc "offerte-engine-backend/internal/tarieven/service"
	"offerte-engine-backend/platform/config"
	"offerte-engine-backend/platform/db"
	"offerte-engine-backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	var store storage.ArchiveStore
	if cfg.IsMinIOEnabled() {
		minioStore, err := storage.NewMinIOStore(cfg)
		if err != nil {
			log.Error("failed to initialize storage", "error", err)
			panic("failed to initialize storage: " + err.Error())
		}
		bucket := cfg.GetMinioBucketOfferteExports()
		if err := withRetry(ctx, log, "ensure archive bucket", 5, 2*time.Second, func() error {
			return minioStore.EnsureBucketExists(ctx, bucket)
		}); err != nil {
			log.Error("failed to ensure archive bucket exists", "error", err, "bucket", bucket)
			panic("failed to ensure archive bucket exists: " + err.Error())
		}
		store = minioStore
		log.Info("archive storage initialized", "bucket", bucket)
	} else {
		log.Warn("MinIO not configured; archive tasks will be skipped")
	}

	// The sweeper reuses the quote service so expiry publishes the same
	// events as the HTTP path.
	rates := adapters.NewRatesSourceAdapter(tarievensvc.New(tarievenrepo.New(pool), eventBus, log))
	quoteSvc := offertessvc.New(offertesrepo.New(pool), rates, engine.New(engine.DefaultConfig()), log)
	quoteSvc.SetEventBus(eventBus)

	sweepInterval := getDurationEnv("OFFERTE_VERLOOP_SWEEP_INTERVAL", time.Hour)
	sweeper := scheduler.NewVerloopSweeper(quoteSvc, log, sweepInterval)
	go sweeper.Run(ctx)

	worker, err := scheduler.NewWorker(cfg, pool, sender, store, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}

	return parsed
}
