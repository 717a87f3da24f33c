package service_test

import (
	"context"
	"testing"

	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) recetaSvc() service.RecetaService {
	return service.NewRecetaService(f.recetas, f.catalogo, f.insumos, nil, f.pub)
}

func (f *fixture) insumoID(t *testing.T, nombre string) string {
	t.Helper()
	found, err := f.insumos.FindByNombres(context.Background(), []string{nombre})
	require.NoError(t, err)
	require.Len(t, found, 1)
	return found[0].ID.String()
}

func TestReceta_GuardarReplacesStandard(t *testing.T) {
	f := newFixture(t)
	svc := f.recetaSvc()
	ctx := context.Background()
	gel := f.catalogoID(t, "Uñas en gel")

	rec, err := svc.Guardar(ctx, dto.GuardarRecetaRequest{
		ServicioCatalogoID: gel,
		Items: []dto.RecetaItemRequest{
			{InsumoID: f.insumoID(t, "Guantes (par)"), Cantidad: dec("2")},
			{InsumoID: f.insumoID(t, "Algodón"), Cantidad: dec("3")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.RecetaCustom, rec.Tipo)
	assert.Equal(t, "Uñas en gel", rec.ServicioNombre)
	assertDecimal(t, "0.19", rec.Costo) // 2 × 0.08 + 3 × 0.01

	costo, err := svc.Costo(ctx, uuid.MustParse(gel))
	require.NoError(t, err)
	assert.True(t, costo.TieneReceta)
	assertDecimal(t, "0.19", costo.Costo)

	all, err := svc.Listar(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 6)
	assert.Equal(t, 1, f.pub.count(service.ColeccionRecetas))
}

func TestReceta_GuardarValidation(t *testing.T) {
	f := newFixture(t)
	svc := f.recetaSvc()
	ctx := context.Background()
	gel := f.catalogoID(t, "Uñas en gel")
	guantes := f.insumoID(t, "Guantes (par)")

	_, err := svc.Guardar(ctx, dto.GuardarRecetaRequest{ServicioCatalogoID: uuid.NewString(), Items: []dto.RecetaItemRequest{{InsumoID: guantes, Cantidad: dec("1")}}})
	assertStatus(t, statusNotFound, err)

	_, err = svc.Guardar(ctx, dto.GuardarRecetaRequest{ServicioCatalogoID: gel, Items: []dto.RecetaItemRequest{{InsumoID: uuid.NewString(), Cantidad: dec("1")}}})
	assertStatus(t, statusNotFound, err)

	_, err = svc.Guardar(ctx, dto.GuardarRecetaRequest{ServicioCatalogoID: gel, Items: []dto.RecetaItemRequest{
		{InsumoID: guantes, Cantidad: dec("1")},
		{InsumoID: guantes, Cantidad: dec("1")},
	}})
	assertStatus(t, statusInvalid, err)

	_, err = svc.Guardar(ctx, dto.GuardarRecetaRequest{ServicioCatalogoID: gel, Items: []dto.RecetaItemRequest{{InsumoID: guantes, Cantidad: dec("0")}}})
	assertStatus(t, statusInvalid, err)
}

func TestReceta_CostoFallsBackToCategoryConstant(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	nuevo, err := service.NewCatalogoService(f.catalogo, nil).CrearServicio(ctx, dto.CrearServicioCatalogoRequest{
		Nombre: "Pedicura medica", Categoria: model.CategoriaPedicura, Precio: dec("40"),
	})
	require.NoError(t, err)

	costo, err := f.recetaSvc().Costo(ctx, uuid.MustParse(nuevo.ID))
	require.NoError(t, err)
	assert.False(t, costo.TieneReceta)
	assertDecimal(t, "0.5", costo.Costo)
}

func TestReceta_ReconstruirEstandarSkipsMissing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.recetaSvc()

	_, err := svc.Guardar(ctx, dto.GuardarRecetaRequest{
		ServicioCatalogoID: f.catalogoID(t, "Uñas en gel"),
		Items:              []dto.RecetaItemRequest{{InsumoID: f.insumoID(t, "Gorro"), Cantidad: dec("4")}},
	})
	require.NoError(t, err)

	_, err = f.inventario.ActualizarInsumo(ctx, uuid.MustParse(f.insumoID(t, "Gorro")), dto.ActualizarInsumoRequest{Nombre: strPtr("Gorro azul")})
	require.NoError(t, err)

	resp, err := svc.ReconstruirEstandar(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Creadas)
	assert.Equal(t, []string{"Gorro"}, resp.Omitidos)

	all, err := svc.Listar(ctx)
	require.NoError(t, err)
	for _, r := range all {
		assert.NotEqual(t, model.RecetaCustom, r.Tipo)
		assert.Len(t, r.Items, 8, r.ServicioNombre)
	}
}
