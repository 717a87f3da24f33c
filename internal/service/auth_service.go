package service

import (
	"context"
	"crypto/subtle"
	"time"

	"salonpos/internal/apierror"
	"salonpos/internal/config"
	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	// Perfiles is the public roster shown on the PIN screen.
	Perfiles(ctx context.Context) ([]dto.PerfilResponse, error)
}

type authService struct {
	repo repository.UsuarioRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	id, err := uuid.Parse(req.UsuarioID)
	if err != nil {
		return nil, apierror.ErrUnauthorized
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil || !user.Activo {
		return nil, apierror.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(user.PIN), []byte(req.PIN)) != 1 {
		return nil, apierror.ErrUnauthorized
	}
	return s.issue(user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, apierror.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != TokenRefresh {
		return nil, apierror.ErrUnauthorized
	}
	userIDStr, _ := claims["user_id"].(string)
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, apierror.ErrUnauthorized
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Activo {
		return nil, apierror.ErrUnauthorized
	}
	return s.issue(user)
}

func (s *authService) Perfiles(ctx context.Context) ([]dto.PerfilResponse, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PerfilResponse, len(users))
	for i, u := range users {
		resp[i] = dto.PerfilResponse{ID: u.ID.String(), Nombre: u.Nombre, Rol: u.Rol, Color: u.Color, Icono: u.Icono}
	}
	return resp, nil
}

func (s *authService) issue(user *model.Usuario) (*dto.LoginResponse, error) {
	accessToken, err := s.generateToken(user, TokenAccess, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, TokenRefresh, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

func (s *authService) generateToken(user *model.Usuario, typ string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"nombre":  user.Nombre,
		"rol":     user.Rol,
		"typ":     typ,
		"exp":     now.Add(duration).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:          u.ID.String(),
		Nombre:      u.Nombre,
		Rol:         u.Rol,
		Color:       u.Color,
		Icono:       u.Icono,
		ComisionPct: u.ComisionPct,
		Activo:      u.Activo,
		CreatedAt:   formatTime(u.CreatedAt),
	}
}
