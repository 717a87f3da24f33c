package analytics_test

import (
	"testing"

	"salonpos/internal/analytics"
	"salonpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

func strPtr(s string) *string { return &s }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func newStaff(name, pct string) model.Usuario {
	return model.Usuario{
		ID:          uuid.New(),
		Nombre:      name,
		PIN:         "1111",
		Rol:         model.RolStaff,
		ComisionPct: dec(pct),
		Activo:      true,
	}
}

func legacyServicio(fecha string, u model.Usuario, costo string, nombre string) model.Servicio {
	return model.Servicio{
		ID:             uuid.New(),
		Fecha:          fecha,
		Cliente:        "Cliente " + fecha,
		ServicioNombre: nombre,
		Costo:          dec(costo),
		UsuarioID:      u.ID,
		UsuarioNombre:  u.Nombre,
		MetodoPago:     model.MetodoCash,
	}
}

func itemizedServicio(fecha string, u model.Usuario, items ...model.ServicioItem) model.Servicio {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Precio)
	}
	return model.Servicio{
		ID:            uuid.New(),
		Fecha:         fecha,
		Cliente:       "Clienta",
		Items:         datatypes.JSONSlice[model.ServicioItem](items),
		Costo:         total,
		UsuarioID:     u.ID,
		UsuarioNombre: u.Nombre,
		MetodoPago:    model.MetodoTransfer,
	}
}

func sales(servicios ...model.Servicio) []analytics.Sale {
	return analytics.NormalizeAll(servicios)
}
