package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ServicioCatalogo is a sellable service offering.
type ServicioCatalogo struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Nombre    string          `gorm:"type:varchar(120);not null"`
	Categoria string          `gorm:"type:varchar(20);not null;index"` // "manicura" | "pedicura"
	Precio    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Activo    bool            `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ServicioCatalogo) TableName() string { return "servicios_catalogo" }

func (s *ServicioCatalogo) BeforeCreate(*gorm.DB) error {
	ensureID(&s.ID)
	return nil
}

// ExtraCatalogo is an add-on priced per nail (nail art, effects, ...).
type ExtraCatalogo struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Nombre     string                      `gorm:"type:varchar(120);not null"`
	PrecioUna  decimal.Decimal             `gorm:"type:decimal(12,2);not null;default:0"`
	Categorias datatypes.JSONSlice[string] `gorm:"column:categorias"`
	Activo     bool                        `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ExtraCatalogo) TableName() string { return "extras_catalogo" }

func (e *ExtraCatalogo) BeforeCreate(*gorm.DB) error {
	ensureID(&e.ID)
	return nil
}

// AplicaA reports whether the extra can be added to a service of the category.
func (e *ExtraCatalogo) AplicaA(categoria string) bool {
	if len(e.Categorias) == 0 {
		return true
	}
	for _, c := range e.Categorias {
		if c == categoria {
			return true
		}
	}
	return false
}
