package analytics_test

import (
	"testing"

	"salonpos/internal/analytics"
	"salonpos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplenishmentCost_CategoryFallbackWithoutRecipe(t *testing.T) {
	manicura := model.ServicioCatalogo{ID: uuid.New(), Nombre: "Manicura", Categoria: model.CategoriaManicura}
	costs := analytics.NewCostIndex(nil, nil, []model.ServicioCatalogo{manicura}, analytics.DefaultCostTable())

	s := itemizedServicio("2024-01-10", newStaff("Emily", "35"),
		model.ServicioItem{ServicioID: manicura.ID, Nombre: "Manicura", Precio: dec("15")})

	assertDec(t, "0.33", costs.ReplenishmentCost(analytics.Normalize(s)))
}

func TestReplenishmentCost_RecipeWithMissingConsumable(t *testing.T) {
	pedicure := model.ServicioCatalogo{ID: uuid.New(), Nombre: "Pedicure 1 tono", Categoria: model.CategoriaPedicura}
	cotton := model.Insumo{ID: uuid.New(), Nombre: "Algodón", CostoUnitario: dec("0.02")}
	glovesID := uuid.New() // not in the consumable set

	receta := model.Receta{
		ID:                 uuid.New(),
		ServicioCatalogoID: pedicure.ID,
		Items: []model.RecetaItem{
			{InsumoID: cotton.ID, Cantidad: dec("5")},
			{InsumoID: glovesID, Cantidad: dec("1")},
		},
	}
	costs := analytics.NewCostIndex([]model.Receta{receta}, []model.Insumo{cotton}, []model.ServicioCatalogo{pedicure}, analytics.DefaultCostTable())

	got, ok := costs.RecipeCost(pedicure.ID)
	require.True(t, ok)
	assertDec(t, "0.10", got)

	s := itemizedServicio("2024-01-10", newStaff("Emily", "35"),
		model.ServicioItem{ServicioID: pedicure.ID, Nombre: "Pedicure 1 tono", Precio: dec("25")})
	assertDec(t, "0.10", costs.ReplenishmentCost(analytics.Normalize(s)))
}

func TestReplenishmentCost_SnapshotReturnedVerbatim(t *testing.T) {
	pedicure := model.ServicioCatalogo{ID: uuid.New(), Categoria: model.CategoriaPedicura}
	cotton := model.Insumo{ID: uuid.New(), CostoUnitario: dec("9.99")}
	receta := model.Receta{ServicioCatalogoID: pedicure.ID, Items: []model.RecetaItem{{InsumoID: cotton.ID, Cantidad: dec("5")}}}
	costs := analytics.NewCostIndex([]model.Receta{receta}, []model.Insumo{cotton}, nil, analytics.DefaultCostTable())

	s := itemizedServicio("2024-01-10", newStaff("Emily", "35"),
		model.ServicioItem{ServicioID: pedicure.ID, Nombre: "Pedicure", Precio: dec("25")})
	s.CostoReposicion = decPtr("0.4210")

	assertDec(t, "0.421", costs.ReplenishmentCost(analytics.Normalize(s)))
}

func TestReplenishmentCost_ItemizedSumsEachLine(t *testing.T) {
	mani := model.ServicioCatalogo{ID: uuid.New(), Categoria: model.CategoriaManicura}
	pedi := model.ServicioCatalogo{ID: uuid.New(), Categoria: model.CategoriaPedicura}
	gel := model.ServicioCatalogo{ID: uuid.New(), Categoria: model.CategoriaManicura}
	wipes := model.Insumo{ID: uuid.New(), CostoUnitario: dec("0.05")}
	gelRecipe := model.Receta{ServicioCatalogoID: gel.ID, Items: []model.RecetaItem{{InsumoID: wipes.ID, Cantidad: dec("2")}}}

	costs := analytics.NewCostIndex(
		[]model.Receta{gelRecipe},
		[]model.Insumo{wipes},
		[]model.ServicioCatalogo{mani, pedi, gel},
		analytics.DefaultCostTable(),
	)

	s := itemizedServicio("2024-01-10", newStaff("Emily", "35"),
		model.ServicioItem{ServicioID: mani.ID, Nombre: "Manicura", Precio: dec("15")},
		model.ServicioItem{ServicioID: pedi.ID, Nombre: "Pedicura", Precio: dec("20")},
		model.ServicioItem{ServicioID: gel.ID, Nombre: "Gel", Precio: dec("10")},
	)
	// one category lookup for the whole sale would give 0.33; per line it is 0.33 + 0.50 + 0.10
	assertDec(t, "0.93", costs.ReplenishmentCost(analytics.Normalize(s)))
}

func TestReplenishmentCost_LegacyUsesCategoryTagOrZero(t *testing.T) {
	costs := analytics.NewCostIndex(nil, nil, nil, analytics.DefaultCostTable())
	emily := newStaff("Emily", "35")

	tagged := legacyServicio("2024-01-10", emily, "20", "Pedicura spa")
	tagged.Categoria = strPtr("Pedicura")
	assertDec(t, "0.50", costs.ReplenishmentCost(analytics.Normalize(tagged)))

	untagged := legacyServicio("2024-01-10", emily, "20", "Algo")
	assertDec(t, "0", costs.ReplenishmentCost(analytics.Normalize(untagged)))
}

func TestCostTable_Overridable(t *testing.T) {
	table := analytics.CostTable{model.CategoriaManicura: dec("1.25")}
	costs := analytics.NewCostIndex(nil, nil, nil, table)

	s := legacyServicio("2024-01-10", newStaff("Emily", "35"), "20", "Manicura")
	s.Categoria = strPtr(model.CategoriaManicura)
	assertDec(t, "1.25", costs.ReplenishmentCost(analytics.Normalize(s)))

	s.Categoria = strPtr(model.CategoriaPedicura)
	assertDec(t, "0", costs.ReplenishmentCost(analytics.Normalize(s)))
}

func TestStandardDeductions(t *testing.T) {
	mani := analytics.StandardDeductions("Manicura")
	assert.Len(t, mani, 9)
	for _, d := range mani {
		assertDec(t, "1", d.Cantidad, d.Nombre)
	}

	pedi := analytics.StandardDeductions(model.CategoriaPedicura)
	var algodon *analytics.Deduction
	for i := range pedi {
		if pedi[i].Nombre == "Algodón" {
			algodon = &pedi[i]
		}
	}
	require.NotNil(t, algodon)
	assertDec(t, "5", algodon.Cantidad)

	assert.Empty(t, analytics.StandardDeductions("cejas"))
}
