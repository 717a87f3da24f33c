package worker

// reporte_cron.go
// Enqueues the previous day's report email once a day at the configured hour.
// Several server processes can share one redis: SETNX on a per-day key makes
// sure only one of them enqueues.

import (
	"context"
	"time"

	"salonpos/internal/analytics"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	cronTickInterval = 10 * time.Minute
	cronKeyPrefix    = "reporte:diario:"
)

type ReporteCronConfig struct {
	RDB        *redis.Client
	Dispatcher *Dispatcher
	Hour       int
	Recipient  string
	Now        func() time.Time
}

// StartReporteCron launches the daily report goroutine. It is a no-op when no
// recipient is configured.
func StartReporteCron(ctx context.Context, cfg ReporteCronConfig) {
	if cfg.Recipient == "" {
		log.Info().Msg("reporte_cron: REPORT_RECIPIENT empty, daily report disabled")
		return
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	go func() {
		ticker := time.NewTicker(cronTickInterval)
		defer ticker.Stop()

		log.Info().Int("hour", cfg.Hour).Msg("reporte_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reporte_cron: shutting down")
				return
			case <-ticker.C:
				if _, err := tickReporte(ctx, cfg); err != nil {
					log.Error().Err(err).Msg("reporte_cron: tick failed")
				}
			}
		}
	}()
}

// reporteDelDia returns the payload due at now, or false when it is not the
// configured hour.
func reporteDelDia(now time.Time, hour int, recipient string) (ReporteEmailPayload, string, bool) {
	if now.Hour() != hour {
		return ReporteEmailPayload{}, "", false
	}
	ayer := now.AddDate(0, 0, -1).Format(time.DateOnly)
	return ReporteEmailPayload{
		Filter:       analytics.Filter{DateFrom: ayer, DateTo: ayer, PaymentMethod: analytics.PaymentAll},
		Destinatario: recipient,
		Asunto:       "Reporte diario " + ayer,
	}, cronKeyPrefix + ayer, true
}

func tickReporte(ctx context.Context, cfg ReporteCronConfig) (bool, error) {
	payload, key, due := reporteDelDia(cfg.Now(), cfg.Hour, cfg.Recipient)
	if !due {
		return false, nil
	}
	claimed, err := cfg.RDB.SetNX(ctx, key, cfg.Now().Format(time.RFC3339), 48*time.Hour).Result()
	if err != nil || !claimed {
		return false, err
	}
	if err := cfg.Dispatcher.EnqueueReporteEmail(ctx, payload); err != nil {
		// release the claim so the next tick retries
		cfg.RDB.Del(ctx, key)
		return false, err
	}
	log.Info().Str("fecha", payload.Filter.DateFrom).Msg("reporte_cron: daily report enqueued")
	return true, nil
}
