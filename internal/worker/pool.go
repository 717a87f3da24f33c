package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueInventario = "jobs:inventario"
	QueueEmail      = "jobs:email"

	JobDescontarInsumos = "descontar_insumos"
	JobReporteEmail     = "reporte_email"

	// MaxAttempts is how many times a job runs before it goes to the DLQ.
	MaxAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
	Attempts int             `json:"attempts"`
}

// Handler processes one job payload. A returned error schedules a retry.
type Handler interface {
	Process(ctx context.Context, payload json.RawMessage) error
}

// Handlers maps a job type to its handler.
type Handlers map[string]Handler

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueDescuento pushes a consumable deduction for a freshly logged service.
func (d *Dispatcher) EnqueueDescuento(ctx context.Context, p DescontarInsumosPayload) error {
	return d.enqueue(ctx, QueueInventario, JobDescontarInsumos, p)
}

// EnqueueReporteEmail pushes a report PDF + email job.
func (d *Dispatcher) EnqueueReporteEmail(ctx context.Context, p ReporteEmailPayload) error {
	return d.enqueue(ctx, QueueEmail, JobReporteEmail, p)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return push(ctx, d.rdb, queue, Job{Type: jobType, Payload: data})
}

func push(ctx context.Context, rdb *redis.Client, queue string, job Job) error {
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return rdb.LPush(ctx, queue, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming both queues.
// Each goroutine blocks on BRPOP, so idle workers cost nothing.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int, handlers Handlers) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i, handlers)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int, handlers Handlers) {
	queues := []string{QueueInventario, QueueEmail}
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop: waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, queues...).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					log.Warn().Err(err).Int("worker", id).Msg("worker: BRPOP failed")
					sleepCtx(ctx, time.Second)
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, rdb, handlers, result[0], result[1])
		}
	}
}

// outcome is what the pool does with a job after one run.
type outcome int

const (
	outcomeDone outcome = iota
	outcomeRetry
	outcomeDLQ
)

// runJob executes the handler and decides what happens next. It never
// touches redis so the policy can be exercised on its own.
func runJob(ctx context.Context, handlers Handlers, job *Job) (outcome, error) {
	h, ok := handlers[job.Type]
	if !ok {
		return outcomeDLQ, fmt.Errorf("no handler for job type %q", job.Type)
	}
	job.Attempts++
	if err := safeProcess(ctx, h, job.Payload); err != nil {
		if job.Attempts >= MaxAttempts {
			return outcomeDLQ, err
		}
		return outcomeRetry, err
	}
	return outcomeDone, nil
}

func safeProcess(ctx context.Context, h Handler, payload json.RawMessage) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h.Process(ctx, payload)
}

func processJob(ctx context.Context, rdb *redis.Client, handlers Handlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("worker: failed to unmarshal job")
		SendToDLQ(ctx, rdb, queue, Job{Type: "desconocido", Payload: json.RawMessage(fmt.Sprintf("%q", raw))}, "invalid envelope")
		return
	}

	out, err := runJob(ctx, handlers, &job)
	switch out {
	case outcomeDone:
		log.Debug().Str("type", job.Type).Str("queue", queue).Int("attempt", job.Attempts).Msg("worker: job done")
	case outcomeRetry:
		log.Warn().Err(err).Str("type", job.Type).Int("attempt", job.Attempts).Msg("worker: job failed, retrying")
		sleepCtx(ctx, backoff(job.Attempts))
		// requeue with a fresh context so shutdown does not lose the job
		if perr := push(context.WithoutCancel(ctx), rdb, queue, job); perr != nil {
			log.Error().Err(perr).Str("type", job.Type).Msg("worker: requeue failed")
		}
	case outcomeDLQ:
		SendToDLQ(context.WithoutCancel(ctx), rdb, queue, job, err.Error())
	}
}

func backoff(attempt int) time.Duration {
	return time.Duration(1<<min(attempt, 5)) * time.Second
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
