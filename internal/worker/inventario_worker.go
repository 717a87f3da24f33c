package worker

// inventario_worker.go
// Deducts the standard consumables for a logged service. Runs off the request
// path so a slow or failing inventory update never blocks the sale.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// DescontarInsumosPayload is the job payload on QueueInventario.
type DescontarInsumosPayload struct {
	ServicioID string `json:"servicio_id"`
}

// Descontador applies the deduction for one service.
type Descontador interface {
	DescontarPorServicio(ctx context.Context, servicioID uuid.UUID) error
}

type InventarioWorker struct {
	svc Descontador
}

func NewInventarioWorker(svc Descontador) *InventarioWorker {
	return &InventarioWorker{svc: svc}
}

func (w *InventarioWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var p DescontarInsumosPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("inventario_worker: invalid payload: %w", err)
	}
	id, err := uuid.Parse(p.ServicioID)
	if err != nil {
		return fmt.Errorf("inventario_worker: invalid servicio_id %q", p.ServicioID)
	}
	return w.svc.DescontarPorServicio(ctx, id)
}
