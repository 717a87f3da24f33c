package repository

import (
	"context"
	"time"

	"salonpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GastoFilter struct {
	DateFrom       string
	DateTo         string
	Categoria      string
	IncludeDeleted bool
}

type GastoRepository interface {
	Create(ctx context.Context, g *model.Gasto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error)
	List(ctx context.Context, filter GastoFilter) ([]model.Gasto, error)
	SoftDelete(ctx context.Context, id, por uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type gastoRepo struct{ db *gorm.DB }

func NewGastoRepository(db *gorm.DB) GastoRepository { return &gastoRepo{db: db} }

func (r *gastoRepo) Create(ctx context.Context, g *model.Gasto) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *gastoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Gasto, error) {
	var g model.Gasto
	err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error
	return &g, err
}

func (r *gastoRepo) List(ctx context.Context, filter GastoFilter) ([]model.Gasto, error) {
	q := r.db.WithContext(ctx).Model(&model.Gasto{})
	if filter.DateFrom != "" {
		q = q.Where("fecha >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("fecha <= ?", filter.DateTo)
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}
	if !filter.IncludeDeleted {
		q = q.Where("eliminado = ?", false)
	}

	var gastos []model.Gasto
	err := q.Order("created_at DESC").Find(&gastos).Error
	return gastos, err
}

func (r *gastoRepo) SoftDelete(ctx context.Context, id, por uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Gasto{}).
		Where("id = ? AND eliminado = ?", id, false).
		Updates(map[string]any{"eliminado": true, "eliminado_at": at, "eliminado_por": por})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gastoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Gasto{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
