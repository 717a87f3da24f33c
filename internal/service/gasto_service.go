package service

import (
	"context"
	"strings"
	"time"

	"salonpos/internal/analytics"
	"salonpos/internal/apierror"
	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/repository"

	"github.com/google/uuid"
)

type GastoService interface {
	Registrar(ctx context.Context, req dto.RegistrarGastoRequest) (*dto.GastoResponse, error)
	Listar(ctx context.Context, filter dto.GastoFilter) ([]dto.GastoResponse, error)
	EliminarSoft(ctx context.Context, actor Actor, id uuid.UUID) error
	EliminarDefinitivo(ctx context.Context, id uuid.UUID) error
}

type gastoService struct {
	repo     repository.GastoRepository
	usuarios repository.UsuarioRepository
	pub      Publisher
	now      func() time.Time
}

func NewGastoService(repo repository.GastoRepository, usuarios repository.UsuarioRepository, pub Publisher) GastoService {
	return &gastoService{repo: repo, usuarios: usuarios, pub: orNoop(pub), now: time.Now}
}

func (s *gastoService) Registrar(ctx context.Context, req dto.RegistrarGastoRequest) (*dto.GastoResponse, error) {
	desc := strings.TrimSpace(req.Descripcion)
	if desc == "" {
		return nil, apierror.Invalidf("La descripcion es obligatoria")
	}
	if !req.Monto.IsPositive() {
		return nil, apierror.Invalidf("El monto debe ser mayor a 0")
	}

	g := &model.Gasto{
		Fecha:       fechaOHoy(req.Fecha, s.now()),
		Descripcion: desc,
		Categoria:   strings.TrimSpace(req.Categoria),
		Monto:       req.Monto,
	}

	// Commission payouts must name an existing staff member so per-staff
	// reconciliation can attribute them.
	if analytics.IsCommissionPayout(*g) {
		if req.UsuarioID == nil || *req.UsuarioID == "" {
			return nil, apierror.Invalidf("Un pago de comisiones requiere usuario_id")
		}
	}
	if req.UsuarioID != nil && *req.UsuarioID != "" {
		id, err := parseID(*req.UsuarioID, "usuario")
		if err != nil {
			return nil, err
		}
		if _, err := s.usuarios.FindByID(ctx, id); err != nil {
			return nil, notFound(err, "usuario")
		}
		g.UsuarioID = &id
	}

	if err := s.repo.Create(ctx, g); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, ColeccionGastos)
	resp := gastoToResponse(g)
	return &resp, nil
}

func (s *gastoService) Listar(ctx context.Context, filter dto.GastoFilter) ([]dto.GastoResponse, error) {
	gastos, err := s.repo.List(ctx, repository.GastoFilter{
		DateFrom:       filter.Desde,
		DateTo:         filter.Hasta,
		Categoria:      filter.Categoria,
		IncludeDeleted: filter.IncluirEliminados,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.GastoResponse, len(gastos))
	for i := range gastos {
		out[i] = gastoToResponse(&gastos[i])
	}
	return out, nil
}

func (s *gastoService) EliminarSoft(ctx context.Context, actor Actor, id uuid.UUID) error {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "gasto")
	}
	if g.Eliminado {
		return apierror.Conflict("el gasto ya esta eliminado")
	}
	if err := s.repo.SoftDelete(ctx, id, actor.ID, s.now()); err != nil {
		return notFound(err, "gasto")
	}
	s.pub.Publish(ctx, ColeccionGastos)
	return nil
}

func (s *gastoService) EliminarDefinitivo(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "gasto")
	}
	s.pub.Publish(ctx, ColeccionGastos)
	return nil
}

func gastoToResponse(g *model.Gasto) dto.GastoResponse {
	return dto.GastoResponse{
		ID:          g.ID.String(),
		Fecha:       g.Fecha,
		Descripcion: g.Descripcion,
		Categoria:   g.Categoria,
		Monto:       g.Monto,
		UsuarioID:   ptrString(g.UsuarioID),
		Eliminado:   g.Eliminado,
		CreatedAt:   formatTime(g.CreatedAt),
	}
}
