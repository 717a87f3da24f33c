package service

import (
	"context"

	"salonpos/internal/worker"
)

// JobQueue is the async side of the services. A nil JobQueue means redis is
// not configured and work runs inline.
type JobQueue interface {
	EnqueueDescuento(ctx context.Context, p worker.DescontarInsumosPayload) error
	EnqueueReporteEmail(ctx context.Context, p worker.ReporteEmailPayload) error
}

var _ JobQueue = (*worker.Dispatcher)(nil)
