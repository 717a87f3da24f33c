package repository

import (
	"context"
	"fmt"

	"salonpos/internal/analytics"
	"salonpos/internal/model"

	"gorm.io/gorm"
)

// RecordStore is the read side the analytics engine consumes. Lists include
// inactive and soft-deleted rows; filtering happens downstream.
type RecordStore interface {
	ListUsers(ctx context.Context) ([]model.Usuario, error)
	ListServices(ctx context.Context) ([]model.Servicio, error)
	ListExpenses(ctx context.Context) ([]model.Gasto, error)
	ListCatalogServices(ctx context.Context) ([]model.ServicioCatalogo, error)
	ListConsumables(ctx context.Context) ([]model.Insumo, error)
	ListServiceRecipes(ctx context.Context) ([]model.Receta, error)
	ListCatalogExtras(ctx context.Context) ([]model.ExtraCatalogo, error)
	Snapshot(ctx context.Context) (analytics.Snapshot, error)
}

type gormStore struct{ db *gorm.DB }

func NewRecordStore(db *gorm.DB) RecordStore { return &gormStore{db: db} }

func (s *gormStore) ListUsers(ctx context.Context) ([]model.Usuario, error) {
	return NewUsuarioRepository(s.db).ListAll(ctx)
}

func (s *gormStore) ListServices(ctx context.Context) ([]model.Servicio, error) {
	return NewServicioRepository(s.db).List(ctx, ServicioFilter{IncludeDeleted: true})
}

func (s *gormStore) ListExpenses(ctx context.Context) ([]model.Gasto, error) {
	return NewGastoRepository(s.db).List(ctx, GastoFilter{IncludeDeleted: true})
}

func (s *gormStore) ListCatalogServices(ctx context.Context) ([]model.ServicioCatalogo, error) {
	return NewCatalogoRepository(s.db).ListServicios(ctx, false)
}

func (s *gormStore) ListConsumables(ctx context.Context) ([]model.Insumo, error) {
	return NewInsumoRepository(s.db).List(ctx, false)
}

func (s *gormStore) ListServiceRecipes(ctx context.Context) ([]model.Receta, error) {
	return NewRecetaRepository(s.db).List(ctx)
}

func (s *gormStore) ListCatalogExtras(ctx context.Context) ([]model.ExtraCatalogo, error) {
	return NewCatalogoRepository(s.db).ListExtras(ctx, false)
}

// Snapshot reads every collection inside one read transaction so the
// aggregates see a consistent view.
func (s *gormStore) Snapshot(ctx context.Context) (analytics.Snapshot, error) {
	var snap analytics.Snapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		st := &gormStore{db: tx}
		var err error
		if snap.Usuarios, err = st.ListUsers(ctx); err != nil {
			return fmt.Errorf("usuarios: %w", err)
		}
		if snap.Servicios, err = st.ListServices(ctx); err != nil {
			return fmt.Errorf("servicios: %w", err)
		}
		if snap.Gastos, err = st.ListExpenses(ctx); err != nil {
			return fmt.Errorf("gastos: %w", err)
		}
		if snap.Catalogo, err = st.ListCatalogServices(ctx); err != nil {
			return fmt.Errorf("catalogo: %w", err)
		}
		if snap.Insumos, err = st.ListConsumables(ctx); err != nil {
			return fmt.Errorf("insumos: %w", err)
		}
		if snap.Recetas, err = st.ListServiceRecipes(ctx); err != nil {
			return fmt.Errorf("recetas: %w", err)
		}
		if snap.Extras, err = st.ListCatalogExtras(ctx); err != nil {
			return fmt.Errorf("extras: %w", err)
		}
		return nil
	})
	return snap, err
}
