package service_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"salonpos/internal/apierror"
	"salonpos/internal/infra"
	"salonpos/internal/model"
	"salonpos/internal/repository"
	"salonpos/internal/service"
	"salonpos/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubPublisher records every announced collection.
type stubPublisher struct {
	mu   sync.Mutex
	seen []string
}

func (p *stubPublisher) Publish(_ context.Context, coleccion string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seen = append(p.seen, coleccion)
}

func (p *stubPublisher) count(coleccion string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, c := range p.seen {
		if c == coleccion {
			n++
		}
	}
	return n
}

var _ service.Publisher = (*stubPublisher)(nil)

// stubJobs captures enqueued payloads instead of talking to redis.
type stubJobs struct {
	descuentos []worker.DescontarInsumosPayload
	reportes   []worker.ReporteEmailPayload
}

func (j *stubJobs) EnqueueDescuento(_ context.Context, p worker.DescontarInsumosPayload) error {
	j.descuentos = append(j.descuentos, p)
	return nil
}

func (j *stubJobs) EnqueueReporteEmail(_ context.Context, p worker.ReporteEmailPayload) error {
	j.reportes = append(j.reportes, p)
	return nil
}

var _ service.JobQueue = (*stubJobs)(nil)

// stubMailer records sends.
type stubMailer struct {
	to, subject, pdf string
	sent             int
}

func (m *stubMailer) SendReporte(to, subject, _ string, pdfPath string) error {
	m.to, m.subject, m.pdf = to, subject, pdfPath
	m.sent++
	return nil
}

var _ worker.ReporteMailer = (*stubMailer)(nil)

// ── Fixture ──────────────────────────────────────────────────────────────────

type fixture struct {
	db  *gorm.DB
	pub *stubPublisher

	usuarios  repository.UsuarioRepository
	servicios repository.ServicioRepository
	gastos    repository.GastoRepository
	catalogo  repository.CatalogoRepository
	insumos   repository.InsumoRepository
	recetas   repository.RecetaRepository

	inventario service.InventarioService

	owner, emily, damaris model.Usuario
}

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

// newFixture opens a seeded in-memory database.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)
	seeded, err := service.NewSeedService(db).Seed(context.Background())
	require.NoError(t, err)
	require.True(t, seeded)

	f := &fixture{
		db:        db,
		pub:       &stubPublisher{},
		usuarios:  repository.NewUsuarioRepository(db),
		servicios: repository.NewServicioRepository(db),
		gastos:    repository.NewGastoRepository(db),
		catalogo:  repository.NewCatalogoRepository(db),
		insumos:   repository.NewInsumoRepository(db),
		recetas:   repository.NewRecetaRepository(db),
	}
	f.inventario = service.NewInventarioService(f.insumos, f.servicios, f.pub)

	users, err := f.usuarios.List(context.Background())
	require.NoError(t, err)
	for _, u := range users {
		switch u.Nombre {
		case "Principal":
			f.owner = u
		case "Emily":
			f.emily = u
		case "Damaris":
			f.damaris = u
		}
	}
	return f
}

func (f *fixture) servicioSvc(jobs service.JobQueue) service.ServicioService {
	return service.NewServicioService(service.ServicioDeps{
		Servicios:   f.servicios,
		Usuarios:    f.usuarios,
		Catalogo:    f.catalogo,
		Insumos:     f.insumos,
		Recetas:     f.recetas,
		Descontador: f.inventario,
		Jobs:        jobs,
		Publisher:   f.pub,
	})
}

func actor(u model.Usuario) service.Actor {
	return service.Actor{ID: u.ID, Nombre: u.Nombre, Rol: u.Rol}
}

func (f *fixture) catalogoID(t *testing.T, nombre string) string {
	t.Helper()
	items, err := f.catalogo.ListServicios(context.Background(), false)
	require.NoError(t, err)
	for _, c := range items {
		if c.Nombre == nombre {
			return c.ID.String()
		}
	}
	t.Fatalf("catalog service %q not seeded", nombre)
	return ""
}

func (f *fixture) extraID(t *testing.T, nombre string) string {
	t.Helper()
	items, err := f.catalogo.ListExtras(context.Background(), false)
	require.NoError(t, err)
	for _, e := range items {
		if e.Nombre == nombre {
			return e.ID.String()
		}
	}
	t.Fatalf("extra %q not seeded", nombre)
	return ""
}

func (f *fixture) stock(t *testing.T, nombre string) decimal.Decimal {
	t.Helper()
	found, err := f.insumos.FindByNombres(context.Background(), []string{nombre})
	require.NoError(t, err)
	require.Len(t, found, 1)
	return found[0].Stock
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func assertStatus(t *testing.T, want int, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, apierror.Status(err), "error: %v", err)
}

const (
	statusInvalid   = http.StatusUnprocessableEntity
	statusNotFound  = http.StatusNotFound
	statusForbidden = http.StatusForbidden
	statusConflict  = http.StatusConflict
)
