package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CategoriaGastoComisiones = "Comisiones"
	CategoriaGastoReposicion = "Reposicion"
)

// Gasto is an expense entry. Commission payouts ("Comisiones") must name the
// staff member being paid in UsuarioID.
type Gasto struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Fecha        string          `gorm:"type:varchar(10);not null;index"`
	Descripcion  string          `gorm:"type:varchar(255);not null"`
	Categoria    string          `gorm:"type:varchar(40);not null"` // Agua | Luz | Renta | Reposicion | Comisiones | ...
	Monto        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	UsuarioID    *uuid.UUID      `gorm:"type:uuid;index"`
	Eliminado    bool            `gorm:"not null;default:false"`
	EliminadoAt  *time.Time
	EliminadoPor *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time  `gorm:"index"`
	UpdatedAt    time.Time
}

func (Gasto) TableName() string { return "gastos" }

func (g *Gasto) BeforeCreate(*gorm.DB) error {
	ensureID(&g.ID)
	return nil
}
