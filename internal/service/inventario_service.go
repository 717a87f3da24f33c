package service

import (
	"context"
	"fmt"
	"strings"

	"salonpos/internal/analytics"
	"salonpos/internal/apierror"
	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InventarioService manages consumables, their stock movements and the
// automatic deduction that follows every logged service.
type InventarioService interface {
	CrearInsumo(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error)
	ActualizarInsumo(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error)
	ListarInsumos(ctx context.Context, soloActivos bool) ([]dto.InsumoResponse, error)
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.MovimientoResponse, error)
	ListarBajoStock(ctx context.Context) ([]dto.InsumoResponse, error)
	ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientosListResponse, error)
	// DescontarPorServicio runs after the service row is committed. Missing
	// consumables and failed updates are logged and skipped.
	DescontarPorServicio(ctx context.Context, servicioID uuid.UUID) error
}

type inventarioService struct {
	repo      repository.InsumoRepository
	servicios repository.ServicioRepository
	pub       Publisher
}

func NewInventarioService(repo repository.InsumoRepository, servicios repository.ServicioRepository, pub Publisher) InventarioService {
	return &inventarioService{repo: repo, servicios: servicios, pub: orNoop(pub)}
}

func (s *inventarioService) CrearInsumo(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apierror.Invalidf("El nombre es obligatorio")
	}
	if req.CostoUnitario.IsNegative() || req.Stock.IsNegative() || req.StockMinimo.IsNegative() {
		return nil, apierror.Invalidf("Los valores no pueden ser negativos")
	}
	existing, err := s.repo.FindByNombres(ctx, []string{nombre})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, apierror.Conflict(fmt.Sprintf("ya existe un insumo llamado %s", nombre))
	}

	ins := &model.Insumo{
		Nombre:        nombre,
		Unidad:        req.Unidad,
		CostoUnitario: req.CostoUnitario,
		Stock:         req.Stock,
		StockMinimo:   req.StockMinimo,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, ins); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, ColeccionInsumos)
	resp := insumoToResponse(ins)
	return &resp, nil
}

// ActualizarInsumo edits metadata only. Stock changes go through AjustarStock
// so every one of them leaves a movement row.
func (s *inventarioService) ActualizarInsumo(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error) {
	ins, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "insumo")
	}
	if req.Nombre != nil {
		ins.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Unidad != nil {
		ins.Unidad = *req.Unidad
	}
	if req.CostoUnitario != nil {
		if req.CostoUnitario.IsNegative() {
			return nil, apierror.Invalidf("El costo no puede ser negativo")
		}
		ins.CostoUnitario = *req.CostoUnitario
	}
	if req.StockMinimo != nil {
		if req.StockMinimo.IsNegative() {
			return nil, apierror.Invalidf("El stock minimo no puede ser negativo")
		}
		ins.StockMinimo = *req.StockMinimo
	}
	if req.Activo != nil {
		ins.Activo = *req.Activo
	}
	if err := s.repo.Update(ctx, ins); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, ColeccionInsumos)
	resp := insumoToResponse(ins)
	return &resp, nil
}

func (s *inventarioService) ListarInsumos(ctx context.Context, soloActivos bool) ([]dto.InsumoResponse, error) {
	items, err := s.repo.List(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	return insumosToResponse(items), nil
}

func (s *inventarioService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.MovimientoResponse, error) {
	if req.Cantidad.IsZero() {
		return nil, apierror.Invalidf("La cantidad no puede ser 0")
	}
	mov, err := s.repo.AdjustStock(ctx, repository.StockChange{
		InsumoID: id,
		Delta:    req.Cantidad,
		Tipo:     repository.MovimientoAjuste,
		Motivo:   strings.TrimSpace(req.Motivo),
	})
	if err != nil {
		return nil, notFound(err, "insumo")
	}
	s.pub.Publish(ctx, ColeccionInsumos)
	resp := movimientoToResponse(mov)
	return &resp, nil
}

func (s *inventarioService) ListarBajoStock(ctx context.Context) ([]dto.InsumoResponse, error) {
	items, err := s.repo.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	return insumosToResponse(items), nil
}

func (s *inventarioService) ListarMovimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientosListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	rf := repository.MovimientoFilter{Tipo: filter.Tipo, Page: filter.Page, Limit: filter.Limit}
	if filter.InsumoID != "" {
		id, err := parseID(filter.InsumoID, "insumo")
		if err != nil {
			return nil, err
		}
		rf.InsumoID = &id
	}
	movs, total, err := s.repo.ListMovimientos(ctx, rf)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoResponse, len(movs))
	for i := range movs {
		data[i] = movimientoToResponse(&movs[i])
	}
	return &dto.MovimientosListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Automatic deduction ──────────────────────────────────────────────────────

func (s *inventarioService) DescontarPorServicio(ctx context.Context, servicioID uuid.UUID) error {
	servicio, err := s.servicios.FindByID(ctx, servicioID)
	if err != nil {
		return fmt.Errorf("descontar insumos: %w", notFound(err, "servicio"))
	}

	plan := planDeduccion(analytics.Normalize(*servicio))
	if len(plan) == 0 {
		log.Debug().Str("servicio_id", servicioID.String()).Msg("inventario: no standard deduction for service")
		return nil
	}

	nombres := make([]string, len(plan))
	for i, d := range plan {
		nombres[i] = d.Nombre
	}
	insumos, err := s.repo.FindByNombres(ctx, nombres)
	if err != nil {
		return fmt.Errorf("descontar insumos: %w", err)
	}
	byNombre := make(map[string]model.Insumo, len(insumos))
	for _, ins := range insumos {
		byNombre[ins.Nombre] = ins
	}

	motivo := fmt.Sprintf("Servicio %s", servicio.Cliente)
	aplicados := 0
	for _, d := range plan {
		ins, ok := byNombre[d.Nombre]
		if !ok {
			log.Warn().Str("insumo", d.Nombre).Str("servicio_id", servicioID.String()).
				Msg("inventario: consumable not found, skipping deduction")
			continue
		}
		_, err := s.repo.AdjustStock(ctx, repository.StockChange{
			InsumoID:   ins.ID,
			Delta:      d.Cantidad.Neg(),
			Tipo:       repository.MovimientoDeduccion,
			Motivo:     motivo,
			ServicioID: &servicioID,
		})
		if err != nil {
			log.Error().Err(err).Str("insumo", d.Nombre).Str("servicio_id", servicioID.String()).
				Msg("inventario: deduction failed")
			continue
		}
		aplicados++
	}

	log.Info().Str("servicio_id", servicioID.String()).Int("insumos", aplicados).Msg("inventario: consumables deducted")
	if aplicados > 0 {
		s.pub.Publish(ctx, ColeccionInsumos)
	}
	return nil
}

// planDeduccion applies one standard kit per distinct category in the sale.
// Quantities of consumables shared by both kits are summed.
func planDeduccion(sale analytics.Sale) []analytics.Deduction {
	var categorias []string
	seen := make(map[string]bool)
	add := func(c string) {
		if c != "" && !seen[c] {
			seen[c] = true
			categorias = append(categorias, c)
		}
	}
	if sale.Kind == analytics.KindItemized {
		for _, l := range sale.Lines {
			add(l.Category)
		}
	}
	if len(categorias) == 0 {
		cat := sale.Category
		if cat == "" {
			cat = inferirCategoria(sale.LegacyName)
		}
		add(cat)
	}

	var plan []analytics.Deduction
	idx := make(map[string]int)
	for _, c := range categorias {
		for _, d := range analytics.StandardDeductions(c) {
			if i, ok := idx[d.Nombre]; ok {
				plan[i].Cantidad = plan[i].Cantidad.Add(d.Cantidad)
				continue
			}
			idx[d.Nombre] = len(plan)
			plan = append(plan, d)
		}
	}
	return plan
}

func insumoToResponse(i *model.Insumo) dto.InsumoResponse {
	return dto.InsumoResponse{
		ID:            i.ID.String(),
		Nombre:        i.Nombre,
		Unidad:        i.Unidad,
		CostoUnitario: i.CostoUnitario,
		Stock:         i.Stock,
		StockMinimo:   i.StockMinimo,
		BajoMinimo:    i.BajoMinimo(),
		Activo:        i.Activo,
	}
}

func insumosToResponse(items []model.Insumo) []dto.InsumoResponse {
	out := make([]dto.InsumoResponse, len(items))
	for i := range items {
		out[i] = insumoToResponse(&items[i])
	}
	return out
}

func movimientoToResponse(m *model.MovimientoInsumo) dto.MovimientoResponse {
	r := dto.MovimientoResponse{
		ID:            m.ID.String(),
		InsumoID:      m.InsumoID.String(),
		Tipo:          m.Tipo,
		Cantidad:      m.Cantidad,
		StockAnterior: m.StockAnterior,
		StockNuevo:    m.StockNuevo,
		Motivo:        m.Motivo,
		ServicioID:    ptrString(m.ServicioID),
		CreatedAt:     formatTime(m.CreatedAt),
	}
	if m.Insumo != nil {
		r.InsumoNombre = m.Insumo.Nombre
	}
	return r
}
