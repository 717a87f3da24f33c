package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"salonpos/internal/analytics"
	"salonpos/internal/apierror"
	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var pinPattern = regexp.MustCompile(`^[0-9]{4}$`)

const colorStaffDefault = "from-pink-400 to-rose-500"

type UsuarioService interface {
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error)
	Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	ActualizarComision(ctx context.Context, id uuid.UUID, pct decimal.Decimal) (*dto.UsuarioResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type usuarioService struct {
	repo           repository.UsuarioRepository
	comisionPorDef decimal.Decimal
	pub            Publisher
}

func NewUsuarioService(repo repository.UsuarioRepository, comisionPorDefecto decimal.Decimal, pub Publisher) UsuarioService {
	return &usuarioService{repo: repo, comisionPorDef: analytics.ClampPercent(comisionPorDefecto), pub: orNoop(pub)}
}

func (s *usuarioService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error) {
	var users []model.Usuario
	var err error
	if incluirInactivos {
		users, err = s.repo.ListAll(ctx)
	} else {
		users, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *usuarioService) Crear(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, apierror.Invalidf("El nombre es obligatorio")
	}
	if err := s.checkPIN(ctx, req.PIN, uuid.Nil); err != nil {
		return nil, err
	}
	pct := s.comisionPorDef
	if req.ComisionPct != nil {
		pct = analytics.ClampPercent(*req.ComisionPct)
	}
	color := req.Color
	if color == "" {
		color = colorStaffDefault
	}

	user := &model.Usuario{
		Nombre:      nombre,
		PIN:         req.PIN,
		Rol:         model.RolStaff,
		Color:       color,
		Icono:       "user",
		ComisionPct: pct,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, ColeccionUsuarios)
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *usuarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "usuario")
	}
	if req.Nombre != nil {
		nombre := strings.TrimSpace(*req.Nombre)
		if nombre == "" {
			return nil, apierror.Invalidf("El nombre es obligatorio")
		}
		user.Nombre = nombre
	}
	if req.PIN != nil && *req.PIN != user.PIN {
		if err := s.checkPIN(ctx, *req.PIN, user.ID); err != nil {
			return nil, err
		}
		user.PIN = *req.PIN
	}
	if req.Color != nil {
		user.Color = *req.Color
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, ColeccionUsuarios)
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *usuarioService) ActualizarComision(ctx context.Context, id uuid.UUID, pct decimal.Decimal) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "usuario")
	}
	user.ComisionPct = analytics.ClampPercent(pct)
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, ColeccionUsuarios)
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *usuarioService) Desactivar(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "usuario")
	}
	if user.EsOwner() {
		return apierror.Forbidden("la cuenta principal no se puede desactivar")
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.pub.Publish(ctx, ColeccionUsuarios)
	return nil
}

func (s *usuarioService) Reactivar(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "usuario")
	}
	// a reactivated user must not share a PIN with someone active
	if err := s.checkPIN(ctx, user.PIN, user.ID); err != nil {
		return err
	}
	if err := s.repo.Reactivar(ctx, id); err != nil {
		return err
	}
	s.pub.Publish(ctx, ColeccionUsuarios)
	return nil
}

// Eliminar hard-deletes a staff member. Their services keep the denormalized
// name; commission for them resolves to the stored snapshot only.
func (s *usuarioService) Eliminar(ctx context.Context, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, "usuario")
	}
	if user.EsOwner() {
		return apierror.Forbidden("la cuenta principal no se puede eliminar")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err, "usuario")
	}
	s.pub.Publish(ctx, ColeccionUsuarios)
	return nil
}

// checkPIN enforces the 4-digit format and uniqueness among active users
// other than self.
func (s *usuarioService) checkPIN(ctx context.Context, pin string, self uuid.UUID) error {
	if !pinPattern.MatchString(pin) {
		return apierror.Invalidf("El PIN debe tener exactamente 4 digitos")
	}
	other, err := s.repo.FindActiveByPIN(ctx, pin)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return err
	case other.ID != self:
		return apierror.Conflict("el PIN ya esta en uso")
	}
	return nil
}
