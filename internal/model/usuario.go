package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	RolOwner = "owner"
	RolStaff = "staff"
)

// Usuario is a person who logs services. The PIN is a 4-digit string compared
// in plain text; exactly one owner is expected to exist.
type Usuario struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre string    `gorm:"type:varchar(100);not null"`
	PIN    string    `gorm:"type:varchar(4);not null;column:pin;index"`
	Rol    string    `gorm:"type:varchar(20);not null"` // "owner" | "staff"
	Color  string    `gorm:"type:varchar(60)"`
	Icono  string    `gorm:"type:varchar(20)"` // "crown" | "user"
	// ComisionPct is the live default; services freeze their own copy at creation.
	ComisionPct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Activo      bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Usuario) TableName() string { return "usuarios" }

func (u *Usuario) BeforeCreate(*gorm.DB) error {
	ensureID(&u.ID)
	return nil
}

func (u *Usuario) EsOwner() bool { return u.Rol == RolOwner }

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
