package dto

import (
	"salonpos/internal/analytics"

	"github.com/shopspring/decimal"
)

type EnviarReporteRequest struct {
	Filter       analytics.Filter `json:"filter"`
	Destinatario string           `json:"destinatario" validate:"omitempty,email"`
}

type EnviarReporteResponse struct {
	Encolado     bool   `json:"encolado"`
	Destinatario string `json:"destinatario"`
}

// ServicioCSV is one exported service row.
type ServicioCSV struct {
	Fecha      string          `csv:"Fecha"`
	Cliente    string          `csv:"Cliente"`
	Servicio   string          `csv:"Servicio"`
	Personal   string          `csv:"Personal"`
	MetodoPago string          `csv:"Metodo"`
	Costo      decimal.Decimal `csv:"Costo"`
	Comision   decimal.Decimal `csv:"Comision"`
	Reposicion decimal.Decimal `csv:"Reposicion"`
	Eliminado  bool            `csv:"Eliminado"`
}

type GastoCSV struct {
	Fecha       string          `csv:"Fecha"`
	Descripcion string          `csv:"Descripcion"`
	Categoria   string          `csv:"Categoria"`
	Monto       decimal.Decimal `csv:"Monto"`
	Personal    string          `csv:"Personal"`
	Eliminado   bool            `csv:"Eliminado"`
}
