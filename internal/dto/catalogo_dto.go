package dto

import "github.com/shopspring/decimal"

type CrearServicioCatalogoRequest struct {
	Nombre    string          `json:"nombre"    validate:"required,min=1,max=120"`
	Categoria string          `json:"categoria" validate:"required,oneof=manicura pedicura"`
	Precio    decimal.Decimal `json:"precio"    validate:"min=0"`
}

type ActualizarServicioCatalogoRequest struct {
	Nombre    *string          `json:"nombre"    validate:"omitempty,min=1,max=120"`
	Categoria *string          `json:"categoria" validate:"omitempty,oneof=manicura pedicura"`
	Precio    *decimal.Decimal `json:"precio"`
	Activo    *bool            `json:"activo"`
}

type ServicioCatalogoResponse struct {
	ID        string          `json:"id"`
	Nombre    string          `json:"nombre"`
	Categoria string          `json:"categoria"`
	Precio    decimal.Decimal `json:"precio"`
	Activo    bool            `json:"activo"`
}

type CrearExtraRequest struct {
	Nombre     string          `json:"nombre"     validate:"required,min=1,max=120"`
	PrecioUna  decimal.Decimal `json:"precio_una" validate:"min=0"`
	Categorias []string        `json:"categorias" validate:"omitempty,dive,oneof=manicura pedicura"`
}

type ActualizarExtraRequest struct {
	Nombre     *string          `json:"nombre"     validate:"omitempty,min=1,max=120"`
	PrecioUna  *decimal.Decimal `json:"precio_una"`
	Categorias []string         `json:"categorias" validate:"omitempty,dive,oneof=manicura pedicura"`
	Activo     *bool            `json:"activo"`
}

type ExtraResponse struct {
	ID         string          `json:"id"`
	Nombre     string          `json:"nombre"`
	PrecioUna  decimal.Decimal `json:"precio_una"`
	Categorias []string        `json:"categorias"`
	Activo     bool            `json:"activo"`
}
