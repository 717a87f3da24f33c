package dto

import "github.com/shopspring/decimal"

type RegistrarGastoRequest struct {
	Fecha       string          `json:"fecha"       validate:"omitempty,datetime=2006-01-02"`
	Descripcion string          `json:"descripcion" validate:"required,min=1,max=255"`
	Categoria   string          `json:"categoria"   validate:"required,min=1,max=40"`
	Monto       decimal.Decimal `json:"monto"       validate:"required,gt=0"`
	// UsuarioID is required for the "Comisiones" category.
	UsuarioID *string `json:"usuario_id" validate:"omitempty,uuid"`
}

type GastoFilter struct {
	Desde             string `form:"desde"`
	Hasta             string `form:"hasta"`
	Categoria         string `form:"categoria"`
	IncluirEliminados bool   `form:"incluir_eliminados"`
}

type GastoResponse struct {
	ID          string          `json:"id"`
	Fecha       string          `json:"fecha"`
	Descripcion string          `json:"descripcion"`
	Categoria   string          `json:"categoria"`
	Monto       decimal.Decimal `json:"monto"`
	UsuarioID   *string         `json:"usuario_id"`
	Eliminado   bool            `json:"eliminado"`
	CreatedAt   string          `json:"created_at"`
}
