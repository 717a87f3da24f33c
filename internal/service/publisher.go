package service

import "context"

// Collections announced on the change feed.
const (
	ColeccionServicios = "servicios"
	ColeccionGastos    = "gastos"
	ColeccionUsuarios  = "usuarios"
	ColeccionCatalogo  = "catalogo"
	ColeccionInsumos   = "insumos"
	ColeccionRecetas   = "recetas"
)

// Publisher announces that a collection changed so live dashboards refresh.
// Publishing is best-effort and never fails the write that triggered it.
type Publisher interface {
	Publish(ctx context.Context, coleccion string)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, string) {}

func orNoop(p Publisher) Publisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
