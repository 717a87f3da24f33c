package analytics_test

import (
	"testing"

	"salonpos/internal/analytics"
	"salonpos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServicePopularity_GroupsByDisplayName(t *testing.T) {
	emily := newStaff("Emily", "35")
	pedi := model.ServicioItem{ServicioID: uuid.New(), Nombre: "Pedicure 1 tono", Precio: dec("25")}
	gel := model.ServicioItem{ServicioID: uuid.New(), Nombre: "Gel", Precio: dec("10")}

	ss := sales(
		legacyServicio("2024-01-10", emily, "15", "Manicura"),
		itemizedServicio("2024-01-10", emily, pedi, gel),
		legacyServicio("2024-01-11", emily, "20", ""),
		itemizedServicio("2024-01-11", emily, pedi),
		legacyServicio("2024-01-12", emily, "15", "Manicura"),
	)

	entries := analytics.ServicePopularity(ss)
	require.Len(t, entries, 3)

	// Manicura and Pedicure tie on 2; Manicura was seen first
	assert.Equal(t, "Manicura", entries[0].Name)
	assert.Equal(t, 2, entries[0].Count)
	assertDec(t, "30", entries[0].Revenue)
	assertDec(t, "40", entries[0].Share)

	assert.Equal(t, "Pedicure 1 tono", entries[1].Name)
	assertDec(t, "60", entries[1].Revenue)

	assert.Equal(t, analytics.UnspecifiedName, entries[2].Name)
	assertDec(t, "20", entries[2].Share)

	top, ok := analytics.TopService(entries)
	require.True(t, ok)
	assert.Equal(t, "Manicura", top.Name)
}

func TestServicePopularity_Empty(t *testing.T) {
	assert.Empty(t, analytics.ServicePopularity(nil))
	_, ok := analytics.TopService(nil)
	assert.False(t, ok)
}
