package repository_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"salonpos/internal/infra"
	"salonpos/internal/model"
	"salonpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := infra.NewDatabase(infra.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestUsuarioRepo_RosterOrderAndPIN(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewUsuarioRepository(newTestDB(t))

	emily := &model.Usuario{Nombre: "Emily", PIN: "6578", Rol: model.RolStaff, ComisionPct: dec("35"), Activo: true}
	owner := &model.Usuario{Nombre: "Principal", PIN: "2773", Rol: model.RolOwner, Activo: true}
	damaris := &model.Usuario{Nombre: "Damaris", PIN: "2831", Rol: model.RolStaff, ComisionPct: dec("35"), Activo: true}
	for _, u := range []*model.Usuario{emily, owner, damaris} {
		require.NoError(t, repo.Create(ctx, u))
		assert.NotEqual(t, uuid.Nil, u.ID)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Principal", list[0].Nombre)
	assert.Equal(t, "Damaris", list[1].Nombre)
	assertDecimal(t, "35", list[1].ComisionPct)

	found, err := repo.FindActiveByPIN(ctx, "6578")
	require.NoError(t, err)
	assert.Equal(t, emily.ID, found.ID)

	require.NoError(t, repo.SoftDelete(ctx, emily.ID))
	_, err = repo.FindActiveByPIN(ctx, "6578")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, repo.Delete(ctx, damaris.ID))
	assert.ErrorIs(t, repo.Delete(ctx, damaris.ID), gorm.ErrRecordNotFound)
}

func TestServicioRepo_ItemsRoundTripAndSoftDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewServicioRepository(db)

	pct := dec("35")
	cat := model.CategoriaPedicura
	s := &model.Servicio{
		Fecha:   "2024-01-10",
		Cliente: "Lucía",
		Items: datatypes.JSONSlice[model.ServicioItem]{
			{ServicioID: uuid.New(), Nombre: "Pedicure 1 tono", Precio: dec("25"), Categoria: cat},
		},
		Extras: datatypes.JSONSlice[model.ServicioExtra]{
			{ExtraID: uuid.New(), Nombre: "Francés", PrecioUna: dec("0.5"), Unas: 10, Total: dec("5")},
		},
		Costo:       dec("30"),
		UsuarioID:   uuid.New(),
		MetodoPago:  model.MetodoTransfer,
		ComisionPct: &pct,
		Categoria:   &cat,
	}
	require.NoError(t, repo.Create(ctx, nil, s))

	got, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Pedicure 1 tono", got.Items[0].Nombre)
	assertDecimal(t, "25", got.Items[0].Precio)
	require.Len(t, got.Extras, 1)
	assert.Equal(t, 10, got.Extras[0].Unas)
	require.NotNil(t, got.ComisionPct)
	assertDecimal(t, "35", *got.ComisionPct)
	assert.Nil(t, got.CostoReposicion)

	require.NoError(t, repo.UpdateFields(ctx, s.ID, map[string]any{"metodo_pago": model.MetodoCash}))

	por := uuid.New()
	require.NoError(t, repo.SoftDelete(ctx, s.ID, por, time.Now()))
	assert.ErrorIs(t, repo.SoftDelete(ctx, s.ID, por, time.Now()), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.UpdateFields(ctx, s.ID, map[string]any{"costo": dec("1")}), gorm.ErrRecordNotFound)

	live, err := repo.List(ctx, repository.ServicioFilter{})
	require.NoError(t, err)
	assert.Empty(t, live)

	all, err := repo.List(ctx, repository.ServicioFilter{IncludeDeleted: true})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Eliminado)
	assert.Equal(t, model.MetodoCash, all[0].MetodoPago)
	require.NotNil(t, all[0].EliminadoPor)
	assert.Equal(t, por, *all[0].EliminadoPor)
}

func TestServicioRepo_ListFiltersByUserAndDates(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewServicioRepository(newTestDB(t))
	emily, damaris := uuid.New(), uuid.New()

	for _, s := range []model.Servicio{
		{Fecha: "2024-01-09", Cliente: "A", ServicioNombre: "Manicura", Costo: dec("10"), UsuarioID: emily, MetodoPago: model.MetodoCash},
		{Fecha: "2024-01-10", Cliente: "B", ServicioNombre: "Manicura", Costo: dec("10"), UsuarioID: emily, MetodoPago: model.MetodoCash},
		{Fecha: "2024-01-10", Cliente: "C", ServicioNombre: "Pedicura", Costo: dec("20"), UsuarioID: damaris, MetodoPago: model.MetodoCash},
	} {
		require.NoError(t, repo.Create(ctx, nil, &s))
	}

	got, err := repo.List(ctx, repository.ServicioFilter{UsuarioID: &emily, DateFrom: "2024-01-10", DateTo: "2024-01-10"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Cliente)
}

func TestGastoRepo(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewGastoRepository(newTestDB(t))
	staff := uuid.New()

	luz := &model.Gasto{Fecha: "2024-01-05", Descripcion: "Luz", Categoria: "Luz", Monto: dec("15")}
	pago := &model.Gasto{Fecha: "2024-01-06", Descripcion: "Pago Emily", Categoria: model.CategoriaGastoComisiones, Monto: dec("50"), UsuarioID: &staff}
	require.NoError(t, repo.Create(ctx, luz))
	require.NoError(t, repo.Create(ctx, pago))

	comisiones, err := repo.List(ctx, repository.GastoFilter{Categoria: model.CategoriaGastoComisiones})
	require.NoError(t, err)
	require.Len(t, comisiones, 1)
	assert.Equal(t, staff, *comisiones[0].UsuarioID)

	require.NoError(t, repo.SoftDelete(ctx, luz.ID, staff, time.Now()))
	live, err := repo.List(ctx, repository.GastoFilter{})
	require.NoError(t, err)
	assert.Len(t, live, 1)

	require.NoError(t, repo.Delete(ctx, luz.ID))
	_, err = repo.FindByID(ctx, luz.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInsumoRepo_AdjustStockClampsAndRecords(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewInsumoRepository(newTestDB(t))

	algodon := &model.Insumo{Nombre: "Algodón", Unidad: "unidad", CostoUnitario: dec("0.02"), Stock: dec("3"), StockMinimo: dec("10"), Activo: true}
	guantes := &model.Insumo{Nombre: "Guantes (par)", Unidad: "par", CostoUnitario: dec("0.10"), Stock: dec("100"), StockMinimo: dec("10"), Activo: true}
	require.NoError(t, repo.Create(ctx, algodon))
	require.NoError(t, repo.Create(ctx, guantes))

	servicioID := uuid.New()
	mov, err := repo.AdjustStock(ctx, repository.StockChange{InsumoID: algodon.ID, Delta: dec("-5"), Tipo: repository.MovimientoDeduccion, ServicioID: &servicioID})
	require.NoError(t, err)
	assertDecimal(t, "3", mov.StockAnterior)
	assertDecimal(t, "0", mov.StockNuevo)

	got, err := repo.FindByID(ctx, algodon.ID)
	require.NoError(t, err)
	assert.True(t, got.Stock.IsZero())

	bajos, err := repo.ListBajoStock(ctx)
	require.NoError(t, err)
	require.Len(t, bajos, 1)
	assert.Equal(t, "Algodón", bajos[0].Nombre)

	_, err = repo.AdjustStock(ctx, repository.StockChange{InsumoID: algodon.ID, Delta: dec("50"), Tipo: repository.MovimientoAjuste, Motivo: "compra"})
	require.NoError(t, err)

	movs, total, err := repo.ListMovimientos(ctx, repository.MovimientoFilter{InsumoID: &algodon.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, movs, 2)
	require.NotNil(t, movs[0].Insumo)
	assert.Equal(t, "Algodón", movs[0].Insumo.Nombre)

	byName, err := repo.FindByNombres(ctx, []string{"Guantes (par)", "Inexistente"})
	require.NoError(t, err)
	assert.Len(t, byName, 1)

	_, err = repo.AdjustStock(ctx, repository.StockChange{InsumoID: uuid.New(), Delta: dec("1")})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRecetaRepo_UpsertReplacesItems(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewRecetaRepository(newTestDB(t))
	catID, a, b := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, repo.Upsert(ctx, &model.Receta{
		ServicioCatalogoID: catID, Tipo: "CUSTOM", ServicioNombre: "Manicura",
		Items: []model.RecetaItem{{InsumoID: a, Cantidad: dec("1")}, {InsumoID: b, Cantidad: dec("2")}},
	}))
	require.NoError(t, repo.Upsert(ctx, &model.Receta{
		ServicioCatalogoID: catID, Tipo: "CUSTOM", ServicioNombre: "Manicura",
		Items: []model.RecetaItem{{InsumoID: b, Cantidad: dec("3")}},
	}))

	got, err := repo.FindByCatalogoID(ctx, catID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assertDecimal(t, "3", got.Items[0].Cantidad)

	require.NoError(t, repo.ReplaceAll(ctx, []model.Receta{
		{ServicioCatalogoID: uuid.New(), Tipo: "MANICURA_STANDARD", Items: []model.RecetaItem{{InsumoID: a, Cantidad: dec("1")}}},
		{ServicioCatalogoID: uuid.New(), Tipo: "PEDICURA_STANDARD"},
	}))
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	_, err = repo.FindByCatalogoID(ctx, catID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMetaRepo_ClaimSeedOnce(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := repository.NewMetaRepository(db)

	seeded, err := repo.IsSeeded(ctx)
	require.NoError(t, err)
	assert.False(t, seeded)

	var wins int
	var mu sync.Mutex
	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := repo.ClaimSeed(ctx)
			assert.NoError(t, err)
			if won {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, wins)

	seeded, err = repo.IsSeeded(ctx)
	require.NoError(t, err)
	assert.True(t, seeded)
}

func TestMetaRepo_RollbackReleasesClaim(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	_ = db.Transaction(func(tx *gorm.DB) error {
		won, err := repository.NewMetaRepository(tx).ClaimSeed(ctx)
		require.NoError(t, err)
		assert.True(t, won)
		return assert.AnError
	})

	won, err := repository.NewMetaRepository(db).ClaimSeed(ctx)
	require.NoError(t, err)
	assert.True(t, won)
}

func TestRecordStore_Snapshot(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	u := &model.Usuario{Nombre: "Emily", PIN: "6578", Rol: model.RolStaff, Activo: true}
	require.NoError(t, repository.NewUsuarioRepository(db).Create(ctx, u))
	svc := repository.NewServicioRepository(db)
	s := &model.Servicio{Fecha: "2024-01-10", Cliente: "A", ServicioNombre: "Manicura", Costo: dec("10"), UsuarioID: u.ID, MetodoPago: model.MetodoCash}
	require.NoError(t, svc.Create(ctx, nil, s))
	require.NoError(t, svc.SoftDelete(ctx, s.ID, u.ID, time.Now()))
	require.NoError(t, repository.NewCatalogoRepository(db).CreateExtra(ctx, &model.ExtraCatalogo{Nombre: "Francés", PrecioUna: dec("0.5"), Categorias: []string{"manicura"}, Activo: true}))

	snap, err := repository.NewRecordStore(db).Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Usuarios, 1)
	assert.Len(t, snap.Servicios, 1, "soft-deleted rows are part of the snapshot")
	require.Len(t, snap.Extras, 1)
	assert.Equal(t, []string{"manicura"}, []string(snap.Extras[0].Categorias))
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}
