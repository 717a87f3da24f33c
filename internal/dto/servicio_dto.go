package dto

import (
	"salonpos/internal/model"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// ServicioLineaRequest picks a catalog service. Precio overrides the catalog
// price when the salon charged something different.
type ServicioLineaRequest struct {
	ServicioID string           `json:"servicio_id" validate:"required,uuid"`
	Precio     *decimal.Decimal `json:"precio"`
}

type ServicioExtraRequest struct {
	ExtraID   string           `json:"extra_id"   validate:"required,uuid"`
	Unas      int              `json:"unas"       validate:"required,min=1,max=20"`
	PrecioUna *decimal.Decimal `json:"precio_una"`
}

// RegistrarServicioRequest accepts either itemized lines (Items, optional
// Extras) or the flat Servicio name with an explicit Costo.
type RegistrarServicioRequest struct {
	Fecha      string                 `json:"fecha"       validate:"omitempty,datetime=2006-01-02"`
	Cliente    string                 `json:"cliente"     validate:"required,min=1,max=150"`
	Servicio   string                 `json:"servicio"    validate:"omitempty,max=150"`
	Items      []ServicioLineaRequest `json:"items"       validate:"omitempty,dive"`
	Extras     []ServicioExtraRequest `json:"extras"      validate:"omitempty,dive"`
	Costo      *decimal.Decimal       `json:"costo"`
	MetodoPago string                 `json:"metodo_pago" validate:"required,oneof=cash transfer"`
	// UsuarioID lets the owner log a service on behalf of a staff member.
	UsuarioID *string `json:"usuario_id" validate:"omitempty,uuid"`
}

type ActualizarServicioRequest struct {
	Costo      *decimal.Decimal `json:"costo"`
	MetodoPago *string          `json:"metodo_pago" validate:"omitempty,oneof=cash transfer"`
}

type MisServiciosFilter struct {
	Desde  string `form:"desde"`
	Hasta  string `form:"hasta"`
	Buscar string `form:"buscar"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ServicioResponse struct {
	ID              string                `json:"id"`
	Fecha           string                `json:"fecha"`
	Cliente         string                `json:"cliente"`
	Servicio        string                `json:"servicio"`
	Items           []model.ServicioItem  `json:"items"`
	Extras          []model.ServicioExtra `json:"extras"`
	Costo           decimal.Decimal       `json:"costo"`
	UsuarioID       string                `json:"usuario_id"`
	UsuarioNombre   string                `json:"usuario_nombre"`
	MetodoPago      string                `json:"metodo_pago"`
	ComisionPct     *decimal.Decimal      `json:"comision_pct"`
	Comision        decimal.Decimal       `json:"comision"`
	Categoria       *string               `json:"categoria"`
	CostoReposicion *decimal.Decimal      `json:"costo_reposicion"`
	Eliminado       bool                  `json:"eliminado"`
	CreatedAt       string                `json:"created_at"`
}

// MisServiciosResponse is the staff view: own records plus today's totals.
type MisServiciosResponse struct {
	Servicios   []ServicioResponse `json:"servicios"`
	Total       decimal.Decimal    `json:"total"`
	Comision    decimal.Decimal    `json:"comision"`
	TotalHoy    decimal.Decimal    `json:"total_hoy"`
	ComisionHoy decimal.Decimal    `json:"comision_hoy"`
	CantidadHoy int                `json:"cantidad_hoy"`
}
