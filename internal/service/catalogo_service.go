package service

import (
	"context"
	"strings"

	"salonpos/internal/apierror"
	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CatalogoService interface {
	CrearServicio(ctx context.Context, req dto.CrearServicioCatalogoRequest) (*dto.ServicioCatalogoResponse, error)
	ActualizarServicio(ctx context.Context, id uuid.UUID, req dto.ActualizarServicioCatalogoRequest) (*dto.ServicioCatalogoResponse, error)
	ListarServicios(ctx context.Context, soloActivos bool) ([]dto.ServicioCatalogoResponse, error)

	CrearExtra(ctx context.Context, req dto.CrearExtraRequest) (*dto.ExtraResponse, error)
	ActualizarExtra(ctx context.Context, id uuid.UUID, req dto.ActualizarExtraRequest) (*dto.ExtraResponse, error)
	ListarExtras(ctx context.Context, soloActivos bool) ([]dto.ExtraResponse, error)
}

type catalogoService struct {
	repo repository.CatalogoRepository
	pub  Publisher
}

func NewCatalogoService(repo repository.CatalogoRepository, pub Publisher) CatalogoService {
	return &catalogoService{repo: repo, pub: orNoop(pub)}
}

func (s *catalogoService) CrearServicio(ctx context.Context, req dto.CrearServicioCatalogoRequest) (*dto.ServicioCatalogoResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apierror.Invalidf("El nombre es obligatorio")
	}
	if req.Precio.IsNegative() {
		return nil, apierror.Invalidf("El precio no puede ser negativo")
	}
	c := &model.ServicioCatalogo{Nombre: nombre, Categoria: req.Categoria, Precio: req.Precio, Activo: true}
	if err := s.repo.CreateServicio(ctx, c); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, ColeccionCatalogo)
	resp := catalogoToResponse(c)
	return &resp, nil
}

func (s *catalogoService) ActualizarServicio(ctx context.Context, id uuid.UUID, req dto.ActualizarServicioCatalogoRequest) (*dto.ServicioCatalogoResponse, error) {
	c, err := s.repo.FindServicioByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "servicio de catalogo")
	}
	if req.Nombre != nil {
		c.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Categoria != nil {
		c.Categoria = *req.Categoria
	}
	if req.Precio != nil {
		if req.Precio.IsNegative() {
			return nil, apierror.Invalidf("El precio no puede ser negativo")
		}
		c.Precio = *req.Precio
	}
	if req.Activo != nil {
		c.Activo = *req.Activo
	}
	if err := s.repo.UpdateServicio(ctx, c); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, ColeccionCatalogo)
	resp := catalogoToResponse(c)
	return &resp, nil
}

func (s *catalogoService) ListarServicios(ctx context.Context, soloActivos bool) ([]dto.ServicioCatalogoResponse, error) {
	items, err := s.repo.ListServicios(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ServicioCatalogoResponse, len(items))
	for i := range items {
		out[i] = catalogoToResponse(&items[i])
	}
	return out, nil
}

func (s *catalogoService) CrearExtra(ctx context.Context, req dto.CrearExtraRequest) (*dto.ExtraResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apierror.Invalidf("El nombre es obligatorio")
	}
	if req.PrecioUna.IsNegative() {
		return nil, apierror.Invalidf("El precio no puede ser negativo")
	}
	e := &model.ExtraCatalogo{
		Nombre:     nombre,
		PrecioUna:  req.PrecioUna,
		Categorias: datatypes.JSONSlice[string](req.Categorias),
		Activo:     true,
	}
	if err := s.repo.CreateExtra(ctx, e); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, ColeccionCatalogo)
	resp := extraToResponse(e)
	return &resp, nil
}

func (s *catalogoService) ActualizarExtra(ctx context.Context, id uuid.UUID, req dto.ActualizarExtraRequest) (*dto.ExtraResponse, error) {
	e, err := s.repo.FindExtraByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "extra")
	}
	if req.Nombre != nil {
		e.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.PrecioUna != nil {
		if req.PrecioUna.IsNegative() {
			return nil, apierror.Invalidf("El precio no puede ser negativo")
		}
		e.PrecioUna = *req.PrecioUna
	}
	if req.Categorias != nil {
		e.Categorias = datatypes.JSONSlice[string](req.Categorias)
	}
	if req.Activo != nil {
		e.Activo = *req.Activo
	}
	if err := s.repo.UpdateExtra(ctx, e); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, ColeccionCatalogo)
	resp := extraToResponse(e)
	return &resp, nil
}

func (s *catalogoService) ListarExtras(ctx context.Context, soloActivos bool) ([]dto.ExtraResponse, error) {
	items, err := s.repo.ListExtras(ctx, soloActivos)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExtraResponse, len(items))
	for i := range items {
		out[i] = extraToResponse(&items[i])
	}
	return out, nil
}

func catalogoToResponse(c *model.ServicioCatalogo) dto.ServicioCatalogoResponse {
	return dto.ServicioCatalogoResponse{
		ID:        c.ID.String(),
		Nombre:    c.Nombre,
		Categoria: c.Categoria,
		Precio:    c.Precio,
		Activo:    c.Activo,
	}
}

func extraToResponse(e *model.ExtraCatalogo) dto.ExtraResponse {
	cats := []string(e.Categorias)
	if cats == nil {
		cats = []string{}
	}
	return dto.ExtraResponse{
		ID:         e.ID.String(),
		Nombre:     e.Nombre,
		PrecioUna:  e.PrecioUna,
		Categorias: cats,
		Activo:     e.Activo,
	}
}
