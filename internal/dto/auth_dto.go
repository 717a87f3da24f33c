package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	UsuarioID string `json:"usuario_id" validate:"required,uuid"`
	PIN       string `json:"pin"        validate:"required,len=4,numeric"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	Nombre      string           `json:"nombre"       validate:"required,min=1,max=100"`
	PIN         string           `json:"pin"          validate:"required,len=4,numeric"`
	Color       string           `json:"color"        validate:"omitempty,max=60"`
	ComisionPct *decimal.Decimal `json:"comision_pct"`
}

type ActualizarUsuarioRequest struct {
	Nombre *string `json:"nombre" validate:"omitempty,min=1,max=100"`
	PIN    *string `json:"pin"    validate:"omitempty,len=4,numeric"`
	Color  *string `json:"color"  validate:"omitempty,max=60"`
}

type ActualizarComisionRequest struct {
	ComisionPct decimal.Decimal `json:"comision_pct"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

// PerfilResponse is the public login roster entry; it never carries the PIN.
type PerfilResponse struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
	Rol    string `json:"rol"`
	Color  string `json:"color"`
	Icono  string `json:"icono"`
}

type UsuarioResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Rol         string          `json:"rol"`
	Color       string          `json:"color"`
	Icono       string          `json:"icono"`
	ComisionPct decimal.Decimal `json:"comision_pct"`
	Activo      bool            `json:"activo"`
	CreatedAt   string          `json:"created_at"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
}
