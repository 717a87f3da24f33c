package analytics_test

import (
	"testing"

	"salonpos/internal/analytics"
	"salonpos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(ss []analytics.Sale) []uuid.UUID {
	out := make([]uuid.UUID, len(ss))
	for i, s := range ss {
		out[i] = s.ID
	}
	return out
}

func TestFilterServices_DateRangeExcludesSoftDeleted(t *testing.T) {
	emily := newStaff("Emily", "35")
	kept := legacyServicio("2024-01-10", emily, "20", "Manicura")
	deleted := legacyServicio("2024-01-15", emily, "30", "Pedicura")
	deleted.Eliminado = true
	before := legacyServicio("2023-12-31", emily, "25", "Manicura")
	after := legacyServicio("2024-02-01", emily, "25", "Manicura")
	edge := legacyServicio("2024-01-31", emily, "10", "Manicura")

	all := sales(kept, deleted, before, after, edge)
	f := analytics.Filter{DateFrom: "2024-01-01", DateTo: "2024-01-31"}

	got := analytics.FilterServices(all, f)
	assert.Equal(t, []uuid.UUID{kept.ID, edge.ID}, ids(got))

	f.IncludeDeleted = true
	got = analytics.FilterServices(all, f)
	assert.Equal(t, []uuid.UUID{kept.ID, deleted.ID, edge.ID}, ids(got))
}

func TestFilterServices_PaymentMethod(t *testing.T) {
	emily := newStaff("Emily", "35")
	cash := legacyServicio("2024-01-10", emily, "20", "Manicura")
	transfer := legacyServicio("2024-01-11", emily, "30", "Pedicura")
	transfer.MetodoPago = model.MetodoTransfer
	all := sales(cash, transfer)

	assert.Len(t, analytics.FilterServices(all, analytics.Filter{PaymentMethod: analytics.PaymentAll}), 2)
	assert.Len(t, analytics.FilterServices(all, analytics.Filter{}), 2)
	assert.Equal(t, []uuid.UUID{transfer.ID}, ids(analytics.FilterServices(all, analytics.Filter{PaymentMethod: model.MetodoTransfer})))
}

func TestFilterServices_SearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	emily := newStaff("Emily", "35")
	damaris := newStaff("Damaris", "35")

	byClient := legacyServicio("2024-01-10", damaris, "20", "Manicura")
	byClient.Cliente = "Lucía PÉREZ"
	byStaff := legacyServicio("2024-01-11", emily, "20", "Manicura")
	byLine := itemizedServicio("2024-01-12", damaris,
		model.ServicioItem{ServicioID: uuid.New(), Nombre: "Pedicure 1 tono", Precio: dec("25")},
		model.ServicioItem{ServicioID: uuid.New(), Nombre: "Esmaltado Gel", Precio: dec("10")},
	)
	all := sales(byClient, byStaff, byLine)

	assert.Equal(t, []uuid.UUID{byClient.ID}, ids(analytics.FilterServices(all, analytics.Filter{Search: "lucía pé"})))
	assert.Equal(t, []uuid.UUID{byStaff.ID}, ids(analytics.FilterServices(all, analytics.Filter{Search: "  EMI "})))
	assert.Equal(t, []uuid.UUID{byLine.ID}, ids(analytics.FilterServices(all, analytics.Filter{Search: "gel"})))
	assert.Len(t, analytics.FilterServices(all, analytics.Filter{Search: ""}), 3)
}

func TestFilterServices_IdempotentSubsetWithoutMutation(t *testing.T) {
	emily := newStaff("Emily", "35")
	a := legacyServicio("2024-01-12", emily, "20", "Manicura")
	b := legacyServicio("2024-01-10", emily, "20", "Pedicura")
	c := legacyServicio("2024-01-11", emily, "20", "Manicura")
	c.Eliminado = true
	all := sales(a, b, c)
	original := append([]analytics.Sale(nil), all...)

	f := analytics.Filter{DateFrom: "2024-01-10", Search: "mani"}
	once := analytics.FilterServices(all, f)
	twice := analytics.FilterServices(once, f)

	require.Equal(t, ids(once), ids(twice))
	assert.Equal(t, []uuid.UUID{a.ID}, ids(once))
	assert.Equal(t, ids(original), ids(all))
}

func TestFilterExpenses(t *testing.T) {
	luz := model.Gasto{ID: uuid.New(), Fecha: "2024-01-05", Descripcion: "Recibo de LUZ", Categoria: "Luz", Monto: dec("40")}
	agua := model.Gasto{ID: uuid.New(), Fecha: "2024-01-06", Descripcion: "Agua", Categoria: "Agua", Monto: dec("10")}
	borrado := model.Gasto{ID: uuid.New(), Fecha: "2024-01-07", Descripcion: "Luz duplicada", Categoria: "Luz", Monto: dec("40"), Eliminado: true}
	viejo := model.Gasto{ID: uuid.New(), Fecha: "2023-11-01", Descripcion: "Luz", Categoria: "Luz", Monto: dec("35")}
	all := []model.Gasto{luz, agua, borrado, viejo}

	got := analytics.FilterExpenses(all, analytics.Filter{DateFrom: "2024-01-01", Search: "luz", PaymentMethod: model.MetodoTransfer})
	require.Len(t, got, 1)
	assert.Equal(t, luz.ID, got[0].ID)

	got = analytics.FilterExpenses(all, analytics.Filter{IncludeDeleted: true, DateFrom: "2024-01-01"})
	assert.Len(t, got, 3)
}
