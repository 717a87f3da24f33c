package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MetodoCash     = "cash"
	MetodoTransfer = "transfer"

	CategoriaManicura = "manicura"
	CategoriaPedicura = "pedicura"
)

// Servicio is one completed sale. Older rows carry only the flat ServicioNombre;
// newer rows carry Items (and optionally Extras) and leave ServicioNombre empty.
type Servicio struct {
	ID             uuid.UUID                          `gorm:"type:uuid;primaryKey"`
	Fecha          string                             `gorm:"type:varchar(10);not null;index"` // YYYY-MM-DD
	Cliente        string                             `gorm:"type:varchar(150);not null"`
	ServicioNombre string                             `gorm:"column:servicio;type:varchar(150)"`
	Items          datatypes.JSONSlice[ServicioItem]  `gorm:"column:items"`
	Extras         datatypes.JSONSlice[ServicioExtra] `gorm:"column:extras"`
	Costo          decimal.Decimal                    `gorm:"type:decimal(12,2);not null"`
	UsuarioID      uuid.UUID                          `gorm:"type:uuid;not null;index"`
	UsuarioNombre  string                             `gorm:"type:varchar(100)"`
	MetodoPago     string                             `gorm:"type:varchar(20);not null"` // "cash" | "transfer"
	// ComisionPct is the commission snapshot taken when the service was logged.
	ComisionPct *decimal.Decimal `gorm:"type:decimal(5,2)"`
	Categoria   *string          `gorm:"type:varchar(20)"`
	// CostoReposicion is the replenishment snapshot; nil rows are costed on read.
	CostoReposicion *decimal.Decimal `gorm:"type:decimal(12,4)"`
	Eliminado       bool             `gorm:"not null;default:false;index"`
	EliminadoAt     *time.Time
	EliminadoPor    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt       time.Time  `gorm:"index"`
	UpdatedAt       time.Time
}

func (Servicio) TableName() string { return "servicios" }

func (s *Servicio) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// ServicioItem is one catalog line of an itemized service.
type ServicioItem struct {
	ServicioID uuid.UUID       `json:"serviceId"`
	Nombre     string          `json:"serviceName"`
	Precio     decimal.Decimal `json:"servicePrice"`
	Categoria  string          `json:"category,omitempty"`
}

// ServicioExtra is a per-nail add-on line.
type ServicioExtra struct {
	ExtraID   uuid.UUID       `json:"extraId"`
	Nombre    string          `json:"extraName"`
	PrecioUna decimal.Decimal `json:"pricePerNail"`
	Unas      int             `json:"nailsCount"`
	Total     decimal.Decimal `json:"totalPrice"`
}
