package service

import (
	"context"
	"fmt"

	"salonpos/internal/analytics"
	"salonpos/internal/apierror"
	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type RecetaService interface {
	Guardar(ctx context.Context, req dto.GuardarRecetaRequest) (*dto.RecetaResponse, error)
	Listar(ctx context.Context) ([]dto.RecetaResponse, error)
	Costo(ctx context.Context, catalogoID uuid.UUID) (*dto.CostoRecetaResponse, error)
	// ReconstruirEstandar drops every recipe and rebuilds the standard ones
	// from the catalog categories.
	ReconstruirEstandar(ctx context.Context) (*dto.ReconstruirRecetasResponse, error)
}

type recetaService struct {
	repo     repository.RecetaRepository
	catalogo repository.CatalogoRepository
	insumos  repository.InsumoRepository
	costos   analytics.CostTable
	pub      Publisher
}

func NewRecetaService(repo repository.RecetaRepository, catalogo repository.CatalogoRepository, insumos repository.InsumoRepository, costos analytics.CostTable, pub Publisher) RecetaService {
	if costos == nil {
		costos = analytics.DefaultCostTable()
	}
	return &recetaService{repo: repo, catalogo: catalogo, insumos: insumos, costos: costos, pub: orNoop(pub)}
}

func (s *recetaService) Guardar(ctx context.Context, req dto.GuardarRecetaRequest) (*dto.RecetaResponse, error) {
	catID, err := parseID(req.ServicioCatalogoID, "servicio de catalogo")
	if err != nil {
		return nil, err
	}
	cat, err := s.catalogo.FindServicioByID(ctx, catID)
	if err != nil {
		return nil, notFound(err, "servicio de catalogo")
	}
	if len(req.Items) == 0 {
		return nil, apierror.Invalidf("La receta necesita al menos un insumo")
	}

	insumos, err := s.insumos.List(ctx, false)
	if err != nil {
		return nil, err
	}
	byID := indexInsumos(insumos)

	rec := &model.Receta{
		ServicioCatalogoID: cat.ID,
		Tipo:               model.RecetaCustom,
		ServicioNombre:     cat.Nombre,
		Items:              make([]model.RecetaItem, 0, len(req.Items)),
	}
	seen := make(map[uuid.UUID]bool, len(req.Items))
	for _, it := range req.Items {
		id, err := parseID(it.InsumoID, "insumo")
		if err != nil {
			return nil, err
		}
		if _, ok := byID[id]; !ok {
			return nil, apierror.NotFound("insumo")
		}
		if seen[id] {
			return nil, apierror.Invalidf("El insumo %s esta repetido", byID[id].Nombre)
		}
		if !it.Cantidad.IsPositive() {
			return nil, apierror.Invalidf("La cantidad de %s debe ser mayor a 0", byID[id].Nombre)
		}
		seen[id] = true
		rec.Items = append(rec.Items, model.RecetaItem{InsumoID: id, Cantidad: it.Cantidad})
	}

	if err := s.repo.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, ColeccionRecetas)
	resp := recetaToResponse(rec, byID)
	return &resp, nil
}

func (s *recetaService) Listar(ctx context.Context) ([]dto.RecetaResponse, error) {
	recetas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	insumos, err := s.insumos.List(ctx, false)
	if err != nil {
		return nil, err
	}
	byID := indexInsumos(insumos)
	out := make([]dto.RecetaResponse, len(recetas))
	for i := range recetas {
		out[i] = recetaToResponse(&recetas[i], byID)
	}
	return out, nil
}

// Costo reports the recipe cost of a catalog service, falling back to the
// category constant when it has no recipe.
func (s *recetaService) Costo(ctx context.Context, catalogoID uuid.UUID) (*dto.CostoRecetaResponse, error) {
	cat, err := s.catalogo.FindServicioByID(ctx, catalogoID)
	if err != nil {
		return nil, notFound(err, "servicio de catalogo")
	}
	recetas, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	insumos, err := s.insumos.List(ctx, false)
	if err != nil {
		return nil, err
	}
	idx := analytics.NewCostIndex(recetas, insumos, []model.ServicioCatalogo{*cat}, s.costos)

	resp := &dto.CostoRecetaResponse{ServicioCatalogoID: cat.ID.String()}
	if costo, ok := idx.RecipeCost(cat.ID); ok {
		resp.Costo = costo
		resp.TieneReceta = true
		return resp, nil
	}
	resp.Costo = idx.LineCost(analytics.Line{CatalogID: cat.ID, Name: cat.Nombre, Category: cat.Categoria})
	return resp, nil
}

func (s *recetaService) ReconstruirEstandar(ctx context.Context) (*dto.ReconstruirRecetasResponse, error) {
	catalogo, err := s.catalogo.ListServicios(ctx, false)
	if err != nil {
		return nil, err
	}
	insumos, err := s.insumos.List(ctx, false)
	if err != nil {
		return nil, err
	}
	recetas, omitidos := recetasEstandar(catalogo, insumos)
	if err := s.repo.ReplaceAll(ctx, recetas); err != nil {
		return nil, fmt.Errorf("reconstruir recetas: %w", err)
	}
	log.Info().Int("recetas", len(recetas)).Strs("omitidos", omitidos).Msg("receta: standard recipes rebuilt")
	s.pub.Publish(ctx, ColeccionRecetas)
	return &dto.ReconstruirRecetasResponse{Creadas: len(recetas), Omitidos: omitidos}, nil
}

// recetasEstandar builds the standard recipe of every catalog service with a
// known category. Consumables are matched by name; the names that could not
// be found are returned once each.
func recetasEstandar(catalogo []model.ServicioCatalogo, insumos []model.Insumo) ([]model.Receta, []string) {
	byNombre := make(map[string]model.Insumo, len(insumos))
	for _, ins := range insumos {
		byNombre[ins.Nombre] = ins
	}

	omitidos := []string{}
	missing := make(map[string]bool)
	var recetas []model.Receta
	for _, c := range catalogo {
		tipo := tipoEstandar(c.Categoria)
		if tipo == "" {
			continue
		}
		rec := model.Receta{ServicioCatalogoID: c.ID, Tipo: tipo, ServicioNombre: c.Nombre}
		for _, d := range analytics.StandardDeductions(c.Categoria) {
			ins, ok := byNombre[d.Nombre]
			if !ok {
				if !missing[d.Nombre] {
					missing[d.Nombre] = true
					omitidos = append(omitidos, d.Nombre)
					log.Warn().Str("insumo", d.Nombre).Msg("receta: consumable missing, left out of standard recipe")
				}
				continue
			}
			rec.Items = append(rec.Items, model.RecetaItem{InsumoID: ins.ID, Cantidad: d.Cantidad})
		}
		if len(rec.Items) > 0 {
			recetas = append(recetas, rec)
		}
	}
	return recetas, omitidos
}

func tipoEstandar(categoria string) string {
	switch categoria {
	case model.CategoriaManicura:
		return model.RecetaManicuraStandard
	case model.CategoriaPedicura:
		return model.RecetaPedicuraStandard
	}
	return ""
}

func indexInsumos(items []model.Insumo) map[uuid.UUID]model.Insumo {
	m := make(map[uuid.UUID]model.Insumo, len(items))
	for _, i := range items {
		m[i.ID] = i
	}
	return m
}

func recetaToResponse(r *model.Receta, insumos map[uuid.UUID]model.Insumo) dto.RecetaResponse {
	resp := dto.RecetaResponse{
		ID:                 r.ID.String(),
		ServicioCatalogoID: r.ServicioCatalogoID.String(),
		ServicioNombre:     r.ServicioNombre,
		Tipo:               r.Tipo,
		Items:              make([]dto.RecetaItemResponse, 0, len(r.Items)),
		Costo:              decimal.Zero,
	}
	for _, it := range r.Items {
		item := dto.RecetaItemResponse{InsumoID: it.InsumoID.String(), Cantidad: it.Cantidad}
		if ins, ok := insumos[it.InsumoID]; ok {
			item.InsumoNombre = ins.Nombre
			item.CostoUnitario = ins.CostoUnitario
			item.Subtotal = it.Cantidad.Mul(ins.CostoUnitario)
		}
		resp.Costo = resp.Costo.Add(item.Subtotal)
		resp.Items = append(resp.Items, item)
	}
	return resp
}
