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
	"salonpos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServicioService interface {
	Registrar(ctx context.Context, actor Actor, req dto.RegistrarServicioRequest) (*dto.ServicioResponse, error)
	Actualizar(ctx context.Context, actor Actor, id uuid.UUID, req dto.ActualizarServicioRequest) (*dto.ServicioResponse, error)
	EliminarSoft(ctx context.Context, actor Actor, id uuid.UUID) error
	EliminarDefinitivo(ctx context.Context, actor Actor, id uuid.UUID) error
	ListarPropios(ctx context.Context, actor Actor, filter dto.MisServiciosFilter) (*dto.MisServiciosResponse, error)
}

// ServicioDeps groups the collaborators of ServicioService.
type ServicioDeps struct {
	Servicios   repository.ServicioRepository
	Usuarios    repository.UsuarioRepository
	Catalogo    repository.CatalogoRepository
	Insumos     repository.InsumoRepository
	Recetas     repository.RecetaRepository
	Descontador worker.Descontador
	Jobs        JobQueue
	Publisher   Publisher
	Costos      analytics.CostTable
}

type servicioService struct {
	ServicioDeps
	now func() time.Time
}

func NewServicioService(deps ServicioDeps) ServicioService {
	if deps.Costos == nil {
		deps.Costos = analytics.DefaultCostTable()
	}
	deps.Publisher = orNoop(deps.Publisher)
	return &servicioService{ServicioDeps: deps, now: time.Now}
}

// ── Registrar ────────────────────────────────────────────────────────────────

func (s *servicioService) Registrar(ctx context.Context, actor Actor, req dto.RegistrarServicioRequest) (*dto.ServicioResponse, error) {
	// 1. Owning staff member
	ownerID := actor.ID
	if req.UsuarioID != nil && *req.UsuarioID != "" {
		id, err := parseID(*req.UsuarioID, "usuario")
		if err != nil {
			return nil, err
		}
		if id != actor.ID && !actor.EsOwner() {
			return nil, apierror.Forbidden("solo la cuenta principal registra servicios de otra persona")
		}
		ownerID = id
	}
	user, err := s.Usuarios.FindByID(ctx, ownerID)
	if err != nil {
		return nil, notFound(err, "usuario")
	}
	if !user.Activo {
		return nil, apierror.Invalidf("El usuario %s esta inactivo", user.Nombre)
	}

	cliente := strings.TrimSpace(req.Cliente)
	if cliente == "" {
		return nil, apierror.Invalidf("El nombre de la clienta es obligatorio")
	}
	if req.MetodoPago != model.MetodoCash && req.MetodoPago != model.MetodoTransfer {
		return nil, apierror.Invalidf("Metodo de pago invalido")
	}

	servicio := &model.Servicio{
		Fecha:         fechaOHoy(req.Fecha, s.now()),
		Cliente:       cliente,
		UsuarioID:     user.ID,
		UsuarioNombre: user.Nombre,
		MetodoPago:    req.MetodoPago,
	}

	// 2. Lines or legacy name
	var catalogo []model.ServicioCatalogo
	switch {
	case len(req.Items) > 0:
		catalogo, err = s.resolverItems(ctx, req, servicio)
		if err != nil {
			return nil, err
		}
	case strings.TrimSpace(req.Servicio) != "":
		servicio.ServicioNombre = strings.TrimSpace(req.Servicio)
		if req.Costo == nil {
			return nil, apierror.Invalidf("El costo es obligatorio")
		}
		servicio.Costo = *req.Costo
		if cat := inferirCategoria(servicio.ServicioNombre); cat != "" {
			servicio.Categoria = &cat
		}
	default:
		return nil, apierror.Invalidf("Selecciona al menos un servicio")
	}
	if !servicio.Costo.IsPositive() {
		return nil, apierror.Invalidf("El costo debe ser mayor a 0")
	}

	// 3. Snapshots
	pct := analytics.ClampPercent(user.ComisionPct)
	servicio.ComisionPct = &pct
	repo, err := s.costoReposicion(ctx, servicio, catalogo)
	if err != nil {
		return nil, err
	}
	servicio.CostoReposicion = &repo

	// 4. Persist
	err = s.Servicios.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Servicios.Create(ctx, tx, servicio)
	})
	if err != nil {
		return nil, err
	}

	// 5. Side effects, best-effort
	s.Publisher.Publish(ctx, ColeccionServicios)
	s.descontar(ctx, servicio.ID)

	resp := servicioToResponse(servicio)
	return &resp, nil
}

// resolverItems prices the catalog lines and extras and sets cost, items,
// extras and category on servicio. It returns the catalog entries it used.
func (s *servicioService) resolverItems(ctx context.Context, req dto.RegistrarServicioRequest, servicio *model.Servicio) ([]model.ServicioCatalogo, error) {
	ids := make([]uuid.UUID, len(req.Items))
	for i, it := range req.Items {
		id, err := parseID(it.ServicioID, "servicio")
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	catalogo, err := s.Catalogo.FindServiciosByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.ServicioCatalogo, len(catalogo))
	for _, c := range catalogo {
		byID[c.ID] = c
	}

	total := decimal.Zero
	categorias := make(map[string]bool)
	items := make(datatypes.JSONSlice[model.ServicioItem], 0, len(req.Items))
	for i, it := range req.Items {
		c, ok := byID[ids[i]]
		if !ok {
			return nil, apierror.NotFound("servicio de catalogo")
		}
		if !c.Activo {
			return nil, apierror.Invalidf("El servicio %s no esta activo", c.Nombre)
		}
		precio := c.Precio
		if it.Precio != nil {
			precio = *it.Precio
		}
		if precio.IsNegative() {
			return nil, apierror.Invalidf("El precio de %s no puede ser negativo", c.Nombre)
		}
		items = append(items, model.ServicioItem{ServicioID: c.ID, Nombre: c.Nombre, Precio: precio, Categoria: c.Categoria})
		categorias[c.Categoria] = true
		total = total.Add(precio)
	}

	extras, err := s.resolverExtras(ctx, req.Extras, categorias)
	if err != nil {
		return nil, err
	}
	for _, e := range extras {
		total = total.Add(e.Total)
	}

	servicio.Items = items
	if len(extras) > 0 {
		servicio.Extras = extras
	}
	servicio.Costo = total
	cat := items[0].Categoria
	servicio.Categoria = &cat
	return catalogo, nil
}

func (s *servicioService) resolverExtras(ctx context.Context, reqs []dto.ServicioExtraRequest, categorias map[string]bool) (datatypes.JSONSlice[model.ServicioExtra], error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, len(reqs))
	for i, e := range reqs {
		id, err := parseID(e.ExtraID, "extra")
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	found, err := s.Catalogo.FindExtrasByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]model.ExtraCatalogo, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}

	out := make(datatypes.JSONSlice[model.ServicioExtra], 0, len(reqs))
	for i, r := range reqs {
		e, ok := byID[ids[i]]
		if !ok || !e.Activo {
			return nil, apierror.NotFound("extra")
		}
		aplica := false
		for cat := range categorias {
			if e.AplicaA(cat) {
				aplica = true
				break
			}
		}
		if !aplica {
			return nil, apierror.Invalidf("El extra %s no aplica a los servicios elegidos", e.Nombre)
		}
		if r.Unas < 1 || r.Unas > 20 {
			return nil, apierror.Invalidf("Cantidad de uñas invalida para %s", e.Nombre)
		}
		precio := e.PrecioUna
		if r.PrecioUna != nil {
			precio = *r.PrecioUna
		}
		if precio.IsNegative() {
			return nil, apierror.Invalidf("El precio de %s no puede ser negativo", e.Nombre)
		}
		out = append(out, model.ServicioExtra{
			ExtraID:   e.ID,
			Nombre:    e.Nombre,
			PrecioUna: precio,
			Unas:      r.Unas,
			Total:     precio.Mul(decimal.NewFromInt(int64(r.Unas))),
		})
	}
	return out, nil
}

// costoReposicion freezes the replenishment cost at creation time.
func (s *servicioService) costoReposicion(ctx context.Context, servicio *model.Servicio, catalogo []model.ServicioCatalogo) (decimal.Decimal, error) {
	var recetas []model.Receta
	var insumos []model.Insumo
	if len(servicio.Items) > 0 {
		var err error
		if recetas, err = s.Recetas.List(ctx); err != nil {
			return decimal.Zero, err
		}
		if insumos, err = s.Insumos.List(ctx, false); err != nil {
			return decimal.Zero, err
		}
	}
	idx := analytics.NewCostIndex(recetas, insumos, catalogo, s.Costos)
	return idx.ReplenishmentCost(analytics.Normalize(*servicio)), nil
}

func (s *servicioService) descontar(ctx context.Context, id uuid.UUID) {
	if s.Jobs != nil {
		err := s.Jobs.EnqueueDescuento(ctx, worker.DescontarInsumosPayload{ServicioID: id.String()})
		if err == nil {
			return
		}
		log.Warn().Err(err).Str("servicio_id", id.String()).Msg("servicio: enqueue failed, deducting inline")
	}
	if s.Descontador == nil {
		return
	}
	if err := s.Descontador.DescontarPorServicio(context.WithoutCancel(ctx), id); err != nil {
		log.Error().Err(err).Str("servicio_id", id.String()).Msg("servicio: consumable deduction failed")
	}
}

// inferirCategoria tags legacy flat names so they pick up the category
// replenishment constant.
func inferirCategoria(nombre string) string {
	n := strings.ToLower(nombre)
	switch {
	case strings.Contains(n, "pedi"):
		return model.CategoriaPedicura
	case strings.Contains(n, "mani"):
		return model.CategoriaManicura
	}
	return ""
}

// ── Actualizar / Eliminar ────────────────────────────────────────────────────

func (s *servicioService) cargarEditable(ctx context.Context, actor Actor, id uuid.UUID) (*model.Servicio, error) {
	servicio, err := s.Servicios.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "servicio")
	}
	if servicio.Eliminado {
		return nil, apierror.Conflict("el servicio esta eliminado")
	}
	if !actor.EsOwner() && servicio.UsuarioID != actor.ID {
		return nil, apierror.Forbidden("solo podes modificar tus propios servicios")
	}
	return servicio, nil
}

// Actualizar edits cost and/or payment method. Itemized records derive their
// cost from the lines, so only the payment method can change there.
func (s *servicioService) Actualizar(ctx context.Context, actor Actor, id uuid.UUID, req dto.ActualizarServicioRequest) (*dto.ServicioResponse, error) {
	servicio, err := s.cargarEditable(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]any, 2)
	if req.Costo != nil {
		if len(servicio.Items) > 0 {
			return nil, apierror.Invalidf("El costo de un servicio detallado sale de sus lineas")
		}
		if !req.Costo.IsPositive() {
			return nil, apierror.Invalidf("El costo debe ser mayor a 0")
		}
		fields["costo"] = *req.Costo
		servicio.Costo = *req.Costo
	}
	if req.MetodoPago != nil {
		if *req.MetodoPago != model.MetodoCash && *req.MetodoPago != model.MetodoTransfer {
			return nil, apierror.Invalidf("Metodo de pago invalido")
		}
		fields["metodo_pago"] = *req.MetodoPago
		servicio.MetodoPago = *req.MetodoPago
	}
	if len(fields) == 0 {
		return nil, apierror.Invalidf("No hay cambios")
	}

	if err := s.Servicios.UpdateFields(ctx, id, fields); err != nil {
		return nil, notFound(err, "servicio")
	}
	s.Publisher.Publish(ctx, ColeccionServicios)
	resp := servicioToResponse(servicio)
	return &resp, nil
}

func (s *servicioService) EliminarSoft(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.cargarEditable(ctx, actor, id); err != nil {
		return err
	}
	if err := s.Servicios.SoftDelete(ctx, id, actor.ID, s.now()); err != nil {
		return notFound(err, "servicio")
	}
	s.Publisher.Publish(ctx, ColeccionServicios)
	return nil
}

func (s *servicioService) EliminarDefinitivo(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.EsOwner() {
		return apierror.Forbidden("solo la cuenta principal elimina definitivamente")
	}
	if err := s.Servicios.Delete(ctx, id); err != nil {
		return notFound(err, "servicio")
	}
	s.Publisher.Publish(ctx, ColeccionServicios)
	return nil
}

// ── ListarPropios ────────────────────────────────────────────────────────────

func (s *servicioService) ListarPropios(ctx context.Context, actor Actor, filter dto.MisServiciosFilter) (*dto.MisServiciosResponse, error) {
	servicios, err := s.Servicios.List(ctx, repository.ServicioFilter{
		UsuarioID: &actor.ID,
		DateFrom:  filter.Desde,
		DateTo:    filter.Hasta,
	})
	if err != nil {
		return nil, err
	}
	user, err := s.Usuarios.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, notFound(err, "usuario")
	}
	lookup := analytics.LookupFrom([]model.Usuario{*user})

	byID := make(map[uuid.UUID]*model.Servicio, len(servicios))
	for i := range servicios {
		byID[servicios[i].ID] = &servicios[i]
	}
	sales := analytics.FilterServices(analytics.NormalizeAll(servicios), analytics.Filter{Search: filter.Buscar})

	today := hoy(s.now())
	resp := &dto.MisServiciosResponse{Servicios: make([]dto.ServicioResponse, 0, len(sales))}
	for _, sale := range sales {
		comision := analytics.CommissionAmount(sale, lookup)
		resp.Total = resp.Total.Add(sale.Cost)
		resp.Comision = resp.Comision.Add(comision)
		if sale.Date == today {
			resp.TotalHoy = resp.TotalHoy.Add(sale.Cost)
			resp.ComisionHoy = resp.ComisionHoy.Add(comision)
			resp.CantidadHoy++
		}
		r := servicioToResponse(byID[sale.ID])
		r.Comision = comision
		resp.Servicios = append(resp.Servicios, r)
	}
	return resp, nil
}

func servicioToResponse(s *model.Servicio) dto.ServicioResponse {
	sale := analytics.Normalize(*s)
	r := dto.ServicioResponse{
		ID:              s.ID.String(),
		Fecha:           s.Fecha,
		Cliente:         s.Cliente,
		Servicio:        sale.DisplayName(),
		Items:           []model.ServicioItem(s.Items),
		Extras:          []model.ServicioExtra(s.Extras),
		Costo:           s.Costo,
		UsuarioID:       s.UsuarioID.String(),
		UsuarioNombre:   s.UsuarioNombre,
		MetodoPago:      s.MetodoPago,
		ComisionPct:     s.ComisionPct,
		Categoria:       s.Categoria,
		CostoReposicion: s.CostoReposicion,
		Eliminado:       s.Eliminado,
		CreatedAt:       formatTime(s.CreatedAt),
	}
	if s.ComisionPct != nil {
		r.Comision = analytics.CommissionAmount(sale, nil)
	}
	if r.Items == nil {
		r.Items = []model.ServicioItem{}
	}
	if r.Extras == nil {
		r.Extras = []model.ServicioExtra{}
	}
	return r
}
