package dto

import "github.com/shopspring/decimal"

type RecetaItemRequest struct {
	InsumoID string          `json:"insumo_id" validate:"required,uuid"`
	Cantidad decimal.Decimal `json:"cantidad"  validate:"gt=0"`
}

type GuardarRecetaRequest struct {
	ServicioCatalogoID string              `json:"servicio_catalogo_id" validate:"required,uuid"`
	Items              []RecetaItemRequest `json:"items"                validate:"required,min=1,dive"`
}

type RecetaItemResponse struct {
	InsumoID      string          `json:"insumo_id"`
	InsumoNombre  string          `json:"insumo_nombre"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Subtotal      decimal.Decimal `json:"subtotal"`
}

type RecetaResponse struct {
	ID                 string               `json:"id"`
	ServicioCatalogoID string               `json:"servicio_catalogo_id"`
	ServicioNombre     string               `json:"servicio_nombre"`
	Tipo               string               `json:"tipo"`
	Items              []RecetaItemResponse `json:"items"`
	Costo              decimal.Decimal      `json:"costo"`
}

type CostoRecetaResponse struct {
	ServicioCatalogoID string          `json:"servicio_catalogo_id"`
	Costo              decimal.Decimal `json:"costo"`
	// TieneReceta is false when Costo came from the category constant.
	TieneReceta bool `json:"tiene_receta"`
}

type ReconstruirRecetasResponse struct {
	Creadas  int      `json:"creadas"`
	Omitidos []string `json:"omitidos"`
}
