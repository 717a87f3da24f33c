package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salonpos/internal/config"
	"salonpos/internal/infra"
	"salonpos/internal/realtime"
	"salonpos/internal/router"
	"salonpos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const devJWTSecret = "salonpos-dev-secret-change-me-please!"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger: dev: pretty, prod: JSON
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if len(cfg.JWTSecret) < 32 {
		if cfg.IsProduction() {
			log.Fatal().Msg("JWT_SECRET must be at least 32 characters in production")
		}
		log.Warn().Msg("JWT_SECRET unset or short, using the development secret")
		cfg.JWTSecret = devJWTSecret
	}

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to open database")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	if rdb == nil {
		log.Info().Msg("REDIS_URL empty: jobs run inline and the daily report cron is off")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	app := router.New(router.Deps{Config: cfg, DB: db, Redis: rdb, Mailer: mailer})

	if cfg.SeedOnStart {
		seeded, err := app.Seed.Seed(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
		if seeded {
			log.Info().Msg("seed: default users, catalog and recipes created")
		}
	}

	go app.Hub.Run(ctx)

	// Worker handlers are wired here (composition root) so that the pool
	// reaches the same services the HTTP layer uses.
	if rdb != nil {
		realtime.StartRedisBridge(ctx, rdb, app.Hub)
		worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, worker.Handlers{
			worker.JobDescontarInsumos: worker.NewInventarioWorker(app.Inventario),
			worker.JobReporteEmail:     worker.NewReporteEmailWorker(app.Reportes, mailer),
		})
		worker.StartReporteCron(ctx, worker.ReporteCronConfig{
			RDB:        rdb,
			Dispatcher: app.Dispatcher,
			Hour:       cfg.ReportHour,
			Recipient:  cfg.ReportRecipient,
		})
	}

	if cfg.MDNSEnabled {
		mdns, err := infra.AnnounceLAN(cfg.Port, cfg.PublicURL)
		if err != nil {
			log.Warn().Err(err).Msg("mdns announcement failed; tablets need the URL or QR")
		} else {
			defer mdns.Shutdown()
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      app.Engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("SalonPOS listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	log.Info().Msg("server exited")
}
