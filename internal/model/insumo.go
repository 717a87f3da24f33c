package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Insumo is a consumable inventory item. Stock never goes below zero.
type Insumo struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Nombre        string          `gorm:"type:varchar(120);not null;uniqueIndex"`
	Unidad        string          `gorm:"type:varchar(20);not null;default:'unidad'"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	Stock         decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	StockMinimo   decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (Insumo) TableName() string { return "insumos" }

func (i *Insumo) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

func (i *Insumo) BajoMinimo() bool { return i.Stock.LessThanOrEqual(i.StockMinimo) }

// MovimientoInsumo records every stock change on a consumable.
type MovimientoInsumo struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InsumoID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Tipo          string          `gorm:"type:varchar(30);not null"` // "deduccion_servicio" | "ajuste_manual"
	Cantidad      decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	StockAnterior decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	StockNuevo    decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Motivo        string
	ServicioID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt     time.Time

	Insumo *Insumo `gorm:"foreignKey:InsumoID"`
}

func (MovimientoInsumo) TableName() string { return "movimientos_insumo" }

func (m *MovimientoInsumo) BeforeCreate(*gorm.DB) error {
	ensureID(&m.ID)
	return nil
}
