package model

import "time"

// AppMeta is a key/value row for one-off application state such as the
// first-run seeding flag.
type AppMeta struct {
	Clave     string `gorm:"primaryKey;type:varchar(40)"`
	Seeded    bool   `gorm:"not null;default:false"`
	SeededAt  *time.Time
	UpdatedAt time.Time
}

func (AppMeta) TableName() string { return "app_meta" }

const MetaApp = "app"

// All returns every model in migration order.
func All() []any {
	return []any{
		&Usuario{},
		&ServicioCatalogo{},
		&ExtraCatalogo{},
		&Insumo{},
		&MovimientoInsumo{},
		&Receta{},
		&RecetaItem{},
		&Servicio{},
		&Gasto{},
		&AppMeta{},
	}
}
