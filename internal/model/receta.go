package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RecetaManicuraStandard = "MANICURA_STANDARD"
	RecetaPedicuraStandard = "PEDICURA_STANDARD"
	RecetaCustom           = "CUSTOM"
)

// Receta is the bill of materials of one catalog service.
type Receta struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primaryKey"`
	ServicioCatalogoID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex"`
	Tipo               string       `gorm:"type:varchar(40)"` // "MANICURA_STANDARD" | "PEDICURA_STANDARD" | "CUSTOM"
	ServicioNombre     string       `gorm:"type:varchar(120)"`
	Items              []RecetaItem `gorm:"foreignKey:RecetaID;constraint:OnDelete:CASCADE"`
	UpdatedAt          time.Time
}

func (Receta) TableName() string { return "recetas" }

func (r *Receta) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}

type RecetaItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RecetaID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InsumoID uuid.UUID       `gorm:"type:uuid;not null"`
	Cantidad decimal.Decimal `gorm:"type:decimal(10,3);not null"`
}

func (RecetaItem) TableName() string { return "receta_items" }

func (i *RecetaItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}
