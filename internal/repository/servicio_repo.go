package repository

import (
	"context"
	"time"

	"salonpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServicioFilter narrows a listing at the SQL level. Free-text search and
// payment method are applied by the analytics filter.
type ServicioFilter struct {
	UsuarioID      *uuid.UUID
	DateFrom       string
	DateTo         string
	IncludeDeleted bool
}

type ServicioRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Servicio) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Servicio, error)
	List(ctx context.Context, filter ServicioFilter) ([]model.Servicio, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	SoftDelete(ctx context.Context, id, por uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type servicioRepo struct{ db *gorm.DB }

func NewServicioRepository(db *gorm.DB) ServicioRepository { return &servicioRepo{db: db} }

func (r *servicioRepo) DB() *gorm.DB { return r.db }

func (r *servicioRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Servicio) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(s).Error
}

func (r *servicioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Servicio, error) {
	var s model.Servicio
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *servicioRepo) List(ctx context.Context, filter ServicioFilter) ([]model.Servicio, error) {
	q := r.db.WithContext(ctx).Model(&model.Servicio{})
	if filter.UsuarioID != nil {
		q = q.Where("usuario_id = ?", *filter.UsuarioID)
	}
	if filter.DateFrom != "" {
		q = q.Where("fecha >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("fecha <= ?", filter.DateTo)
	}
	if !filter.IncludeDeleted {
		q = q.Where("eliminado = ?", false)
	}

	var servicios []model.Servicio
	err := q.Order("created_at DESC").Find(&servicios).Error
	return servicios, err
}

func (r *servicioRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Servicio{}).
		Where("id = ? AND eliminado = ?", id, false).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *servicioRepo) SoftDelete(ctx context.Context, id, por uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Servicio{}).
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

func (r *servicioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.Servicio{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
