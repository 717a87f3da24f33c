package service_test

import (
	"context"
	"testing"
	"time"

	"salonpos/internal/dto"
	"salonpos/internal/model"
	"salonpos/internal/repository"
	"salonpos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrar_ItemizedWithExtras(t *testing.T) {
	f := newFixture(t)
	svc := f.servicioSvc(nil)
	ctx := context.Background()

	resp, err := svc.Registrar(ctx, actor(f.emily), dto.RegistrarServicioRequest{
		Cliente: "  Lucia ",
		Items: []dto.ServicioLineaRequest{
			{ServicioID: f.catalogoID(t, "Manicura semipermanente")},
			{ServicioID: f.catalogoID(t, "Pedicura tradicional")},
		},
		Extras:     []dto.ServicioExtraRequest{{ExtraID: f.extraID(t, "Pedrería"), Unas: 10}},
		MetodoPago: model.MetodoCash,
	})
	require.NoError(t, err)

	assert.Equal(t, "Lucia", resp.Cliente)
	assert.Equal(t, time.Now().Format(time.DateOnly), resp.Fecha)
	assertDecimal(t, "35", resp.Costo) // 15 + 15 + 10 × 0.5
	require.NotNil(t, resp.ComisionPct)
	assertDecimal(t, "35", *resp.ComisionPct)
	assertDecimal(t, "12.25", resp.Comision)
	require.NotNil(t, resp.Categoria)
	assert.Equal(t, model.CategoriaManicura, *resp.Categoria)
	assert.Equal(t, "Manicura semipermanente", resp.Servicio)
	require.Len(t, resp.Extras, 1)
	assertDecimal(t, "5", resp.Extras[0].Total)

	// seeded recipes: manicura 0.33 + pedicura 0.326
	require.NotNil(t, resp.CostoReposicion)
	assertDecimal(t, "0.656", *resp.CostoReposicion)

	// inline deduction: one kit per category, shared consumables summed
	assertDecimal(t, "98", f.stock(t, "Guantes (par)"))
	assertDecimal(t, "995", f.stock(t, "Algodón"))
	assertDecimal(t, "299.2", f.stock(t, "Papel film"))
	assertDecimal(t, "499", f.stock(t, "Moldes esculpir"))

	id := uuid.MustParse(resp.ID)
	movs, total, err := f.insumos.ListMovimientos(ctx, repository.MovimientoFilter{Tipo: repository.MovimientoDeduccion, Page: 1, Limit: 50})
	require.NoError(t, err)
	assert.EqualValues(t, 11, total)
	for _, m := range movs {
		require.NotNil(t, m.ServicioID)
		assert.Equal(t, id, *m.ServicioID)
	}

	assert.Equal(t, 1, f.pub.count(service.ColeccionServicios))
	assert.Equal(t, 1, f.pub.count(service.ColeccionInsumos))
}

func TestRegistrar_PriceOverrideAndExplicitDate(t *testing.T) {
	f := newFixture(t)
	resp, err := f.servicioSvc(nil).Registrar(context.Background(), actor(f.damaris), dto.RegistrarServicioRequest{
		Fecha:      "2024-03-04",
		Cliente:    "Ana",
		Items:      []dto.ServicioLineaRequest{{ServicioID: f.catalogoID(t, "Uñas en gel"), Precio: decPtr("22.5")}},
		MetodoPago: model.MetodoTransfer,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-04", resp.Fecha)
	assertDecimal(t, "22.5", resp.Costo)
	assertDecimal(t, "22.5", resp.Items[0].Precio)
}

func TestRegistrar_LegacyNameInfersCategory(t *testing.T) {
	f := newFixture(t)
	resp, err := f.servicioSvc(nil).Registrar(context.Background(), actor(f.emily), dto.RegistrarServicioRequest{
		Cliente:    "Marta",
		Servicio:   "Pedicura express",
		Costo:      decPtr("20"),
		MetodoPago: model.MetodoCash,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Categoria)
	assert.Equal(t, model.CategoriaPedicura, *resp.Categoria)
	assert.Empty(t, resp.Items)
	require.NotNil(t, resp.CostoReposicion)
	assertDecimal(t, "0.5", *resp.CostoReposicion)
	assertDecimal(t, "995", f.stock(t, "Algodón"))
	assertDecimal(t, "500", f.stock(t, "Moldes esculpir"))
}

func TestRegistrar_EnqueuesDeductionWhenQueueConfigured(t *testing.T) {
	f := newFixture(t)
	jobs := &stubJobs{}
	resp, err := f.servicioSvc(jobs).Registrar(context.Background(), actor(f.emily), dto.RegistrarServicioRequest{
		Cliente:    "Sol",
		Items:      []dto.ServicioLineaRequest{{ServicioID: f.catalogoID(t, "Manicura tradicional")}},
		MetodoPago: model.MetodoCash,
	})
	require.NoError(t, err)
	require.Len(t, jobs.descuentos, 1)
	assert.Equal(t, resp.ID, jobs.descuentos[0].ServicioID)
	assertDecimal(t, "100", f.stock(t, "Guantes (par)"))

	// the worker path deducts the same kit later
	require.NoError(t, f.inventario.DescontarPorServicio(context.Background(), uuid.MustParse(resp.ID)))
	assertDecimal(t, "99", f.stock(t, "Guantes (par)"))
}

func TestRegistrar_Validation(t *testing.T) {
	f := newFixture(t)
	svc := f.servicioSvc(nil)
	ctx := context.Background()
	mani := f.catalogoID(t, "Manicura tradicional")
	pedi := f.catalogoID(t, "Pedicura tradicional")

	cases := []struct {
		name   string
		actor  model.Usuario
		req    dto.RegistrarServicioRequest
		status int
	}{
		{"no lines and no name", f.emily, dto.RegistrarServicioRequest{Cliente: "A", MetodoPago: model.MetodoCash}, statusInvalid},
		{"blank client", f.emily, dto.RegistrarServicioRequest{Cliente: "  ", Servicio: "Mani", Costo: decPtr("5"), MetodoPago: model.MetodoCash}, statusInvalid},
		{"legacy without cost", f.emily, dto.RegistrarServicioRequest{Cliente: "A", Servicio: "Mani", MetodoPago: model.MetodoCash}, statusInvalid},
		{"zero cost", f.emily, dto.RegistrarServicioRequest{Cliente: "A", Servicio: "Mani", Costo: decPtr("0"), MetodoPago: model.MetodoCash}, statusInvalid},
		{"bad payment method", f.emily, dto.RegistrarServicioRequest{Cliente: "A", Servicio: "Mani", Costo: decPtr("5"), MetodoPago: "card"}, statusInvalid},
		{"unknown catalog id", f.emily, dto.RegistrarServicioRequest{Cliente: "A", Items: []dto.ServicioLineaRequest{{ServicioID: uuid.NewString()}}, MetodoPago: model.MetodoCash}, statusNotFound},
		{"extra not for pedicura", f.emily, dto.RegistrarServicioRequest{
			Cliente: "A", Items: []dto.ServicioLineaRequest{{ServicioID: pedi}},
			Extras: []dto.ServicioExtraRequest{{ExtraID: f.extraID(t, "Efecto cromado"), Unas: 2}}, MetodoPago: model.MetodoCash,
		}, statusInvalid},
		{"staff logging for someone else", f.emily, dto.RegistrarServicioRequest{
			Cliente: "A", Items: []dto.ServicioLineaRequest{{ServicioID: mani}}, MetodoPago: model.MetodoCash,
			UsuarioID: strPtr(f.damaris.ID.String()),
		}, statusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Registrar(ctx, actor(tc.actor), tc.req)
			assertStatus(t, tc.status, err)
		})
	}

	all, err := f.servicios.List(ctx, repository.ServicioFilter{IncludeDeleted: true})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRegistrar_OwnerOnBehalfOfStaff(t *testing.T) {
	f := newFixture(t)
	resp, err := f.servicioSvc(nil).Registrar(context.Background(), actor(f.owner), dto.RegistrarServicioRequest{
		Cliente:    "Eva",
		Items:      []dto.ServicioLineaRequest{{ServicioID: f.catalogoID(t, "Manicura tradicional")}},
		MetodoPago: model.MetodoCash,
		UsuarioID:  strPtr(f.damaris.ID.String()),
	})
	require.NoError(t, err)
	assert.Equal(t, f.damaris.ID.String(), resp.UsuarioID)
	assert.Equal(t, "Damaris", resp.UsuarioNombre)
	assertDecimal(t, "35", *resp.ComisionPct)
}

func TestRegistrar_CommissionSnapshotSurvivesRateChange(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	resp, err := f.servicioSvc(nil).Registrar(ctx, actor(f.emily), dto.RegistrarServicioRequest{
		Cliente: "Vera", Servicio: "Manicura", Costo: decPtr("100"), MetodoPago: model.MetodoCash,
	})
	require.NoError(t, err)

	usuarios := service.NewUsuarioService(f.usuarios, dec("35"), nil)
	_, err = usuarios.ActualizarComision(ctx, f.emily.ID, dec("50"))
	require.NoError(t, err)

	stored, err := f.servicios.FindByID(ctx, uuid.MustParse(resp.ID))
	require.NoError(t, err)
	assertDecimal(t, "35", *stored.ComisionPct)
}

func TestActualizar_Rules(t *testing.T) {
	f := newFixture(t)
	svc := f.servicioSvc(nil)
	ctx := context.Background()

	legacy, err := svc.Registrar(ctx, actor(f.emily), dto.RegistrarServicioRequest{
		Cliente: "A", Servicio: "Manicura", Costo: decPtr("10"), MetodoPago: model.MetodoCash,
	})
	require.NoError(t, err)
	itemized, err := svc.Registrar(ctx, actor(f.emily), dto.RegistrarServicioRequest{
		Cliente: "B", Items: []dto.ServicioLineaRequest{{ServicioID: f.catalogoID(t, "Manicura tradicional")}}, MetodoPago: model.MetodoCash,
	})
	require.NoError(t, err)
	legacyID, itemizedID := uuid.MustParse(legacy.ID), uuid.MustParse(itemized.ID)

	got, err := svc.Actualizar(ctx, actor(f.emily), legacyID, dto.ActualizarServicioRequest{Costo: decPtr("12"), MetodoPago: strPtr(model.MetodoTransfer)})
	require.NoError(t, err)
	assertDecimal(t, "12", got.Costo)
	assert.Equal(t, model.MetodoTransfer, got.MetodoPago)

	_, err = svc.Actualizar(ctx, actor(f.damaris), legacyID, dto.ActualizarServicioRequest{Costo: decPtr("1")})
	assertStatus(t, statusForbidden, err)

	_, err = svc.Actualizar(ctx, actor(f.owner), itemizedID, dto.ActualizarServicioRequest{Costo: decPtr("1")})
	assertStatus(t, statusInvalid, err)

	_, err = svc.Actualizar(ctx, actor(f.owner), itemizedID, dto.ActualizarServicioRequest{MetodoPago: strPtr(model.MetodoTransfer)})
	require.NoError(t, err)

	_, err = svc.Actualizar(ctx, actor(f.emily), legacyID, dto.ActualizarServicioRequest{})
	assertStatus(t, statusInvalid, err)

	require.NoError(t, svc.EliminarSoft(ctx, actor(f.emily), legacyID))
	_, err = svc.Actualizar(ctx, actor(f.owner), legacyID, dto.ActualizarServicioRequest{Costo: decPtr("3")})
	assertStatus(t, statusConflict, err)

	stored, err := f.servicios.FindByID(ctx, legacyID)
	require.NoError(t, err)
	assert.True(t, stored.Eliminado)
	require.NotNil(t, stored.EliminadoPor)
	assert.Equal(t, f.emily.ID, *stored.EliminadoPor)
	assertDecimal(t, "12", stored.Costo)
}

func TestEliminar_SoftAndDefinitive(t *testing.T) {
	f := newFixture(t)
	svc := f.servicioSvc(nil)
	ctx := context.Background()

	resp, err := svc.Registrar(ctx, actor(f.emily), dto.RegistrarServicioRequest{
		Cliente: "A", Servicio: "Manicura", Costo: decPtr("10"), MetodoPago: model.MetodoCash,
	})
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	assertStatus(t, statusForbidden, svc.EliminarSoft(ctx, actor(f.damaris), id))
	assertStatus(t, statusForbidden, svc.EliminarDefinitivo(ctx, actor(f.emily), id))

	require.NoError(t, svc.EliminarDefinitivo(ctx, actor(f.owner), id))
	_, err = f.servicios.FindByID(ctx, id)
	require.Error(t, err)
	assertStatus(t, statusNotFound, svc.EliminarDefinitivo(ctx, actor(f.owner), id))
}

func TestListarPropios_TotalsAndFilters(t *testing.T) {
	f := newFixture(t)
	svc := f.servicioSvc(nil)
	ctx := context.Background()

	register := func(u model.Usuario, fecha, cliente, costo string) string {
		resp, err := svc.Registrar(ctx, actor(u), dto.RegistrarServicioRequest{
			Fecha: fecha, Cliente: cliente, Servicio: "Manicura", Costo: decPtr(costo), MetodoPago: model.MetodoCash,
		})
		require.NoError(t, err)
		return resp.ID
	}
	register(f.emily, "", "Hoy Uno", "20")
	register(f.emily, "", "Hoy Dos", "40")
	register(f.emily, "2024-01-10", "Antigua", "100")
	deleted := register(f.emily, "", "Borrada", "500")
	register(f.damaris, "", "Ajena", "70")
	require.NoError(t, svc.EliminarSoft(ctx, actor(f.emily), uuid.MustParse(deleted)))

	resp, err := svc.ListarPropios(ctx, actor(f.emily), dto.MisServiciosFilter{})
	require.NoError(t, err)
	assert.Len(t, resp.Servicios, 3)
	assertDecimal(t, "160", resp.Total)
	assertDecimal(t, "56", resp.Comision)
	assertDecimal(t, "60", resp.TotalHoy)
	assertDecimal(t, "21", resp.ComisionHoy)
	assert.Equal(t, 2, resp.CantidadHoy)

	resp, err = svc.ListarPropios(ctx, actor(f.emily), dto.MisServiciosFilter{Buscar: "antig"})
	require.NoError(t, err)
	require.Len(t, resp.Servicios, 1)
	assert.Equal(t, "Antigua", resp.Servicios[0].Cliente)
	assert.Equal(t, 0, resp.CantidadHoy)

	resp, err = svc.ListarPropios(ctx, actor(f.emily), dto.MisServiciosFilter{Desde: "2024-01-01", Hasta: "2024-12-31"})
	require.NoError(t, err)
	require.Len(t, resp.Servicios, 1)
	assertDecimal(t, "35", resp.Servicios[0].Comision)
}
