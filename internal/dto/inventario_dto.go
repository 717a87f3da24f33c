package dto

import "github.com/shopspring/decimal"

type CrearInsumoRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,min=1,max=120"`
	Unidad        string          `json:"unidad"         validate:"required,max=20"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"min=0"`
	Stock         decimal.Decimal `json:"stock"          validate:"min=0"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"   validate:"min=0"`
}

type ActualizarInsumoRequest struct {
	Nombre        *string          `json:"nombre"         validate:"omitempty,min=1,max=120"`
	Unidad        *string          `json:"unidad"         validate:"omitempty,max=20"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario"`
	StockMinimo   *decimal.Decimal `json:"stock_minimo"`
	Activo        *bool            `json:"activo"`
}

// AjustarStockRequest is a signed delta: positive restocks, negative corrects
// down. The result is clamped at zero.
type AjustarStockRequest struct {
	Cantidad decimal.Decimal `json:"cantidad" validate:"required"`
	Motivo   string          `json:"motivo"   validate:"required,min=1,max=255"`
}

type MovimientoFilter struct {
	InsumoID string `form:"insumo_id"`
	Tipo     string `form:"tipo"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

type InsumoResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Unidad        string          `json:"unidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Stock         decimal.Decimal `json:"stock"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"`
	BajoMinimo    bool            `json:"bajo_minimo"`
	Activo        bool            `json:"activo"`
}

type MovimientoResponse struct {
	ID            string          `json:"id"`
	InsumoID      string          `json:"insumo_id"`
	InsumoNombre  string          `json:"insumo_nombre"`
	Tipo          string          `json:"tipo"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	StockAnterior decimal.Decimal `json:"stock_anterior"`
	StockNuevo    decimal.Decimal `json:"stock_nuevo"`
	Motivo        string          `json:"motivo"`
	ServicioID    *string         `json:"servicio_id"`
	CreatedAt     string          `json:"created_at"`
}

type MovimientosListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
