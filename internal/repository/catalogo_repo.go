package repository

import (
	"context"

	"salonpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogoRepository interface {
	CreateServicio(ctx context.Context, s *model.ServicioCatalogo) error
	FindServicioByID(ctx context.Context, id uuid.UUID) (*model.ServicioCatalogo, error)
	FindServiciosByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ServicioCatalogo, error)
	ListServicios(ctx context.Context, soloActivos bool) ([]model.ServicioCatalogo, error)
	UpdateServicio(ctx context.Context, s *model.ServicioCatalogo) error

	CreateExtra(ctx context.Context, e *model.ExtraCatalogo) error
	FindExtrasByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ExtraCatalogo, error)
	FindExtraByID(ctx context.Context, id uuid.UUID) (*model.ExtraCatalogo, error)
	ListExtras(ctx context.Context, soloActivos bool) ([]model.ExtraCatalogo, error)
	UpdateExtra(ctx context.Context, e *model.ExtraCatalogo) error
}

type catalogoRepo struct{ db *gorm.DB }

func NewCatalogoRepository(db *gorm.DB) CatalogoRepository { return &catalogoRepo{db: db} }

func (r *catalogoRepo) CreateServicio(ctx context.Context, s *model.ServicioCatalogo) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *catalogoRepo) FindServicioByID(ctx context.Context, id uuid.UUID) (*model.ServicioCatalogo, error) {
	var s model.ServicioCatalogo
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *catalogoRepo) FindServiciosByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ServicioCatalogo, error) {
	var out []model.ServicioCatalogo
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *catalogoRepo) ListServicios(ctx context.Context, soloActivos bool) ([]model.ServicioCatalogo, error) {
	q := r.db.WithContext(ctx).Model(&model.ServicioCatalogo{})
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var out []model.ServicioCatalogo
	err := q.Order("categoria ASC, nombre ASC").Find(&out).Error
	return out, err
}

func (r *catalogoRepo) UpdateServicio(ctx context.Context, s *model.ServicioCatalogo) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *catalogoRepo) CreateExtra(ctx context.Context, e *model.ExtraCatalogo) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *catalogoRepo) FindExtraByID(ctx context.Context, id uuid.UUID) (*model.ExtraCatalogo, error) {
	var e model.ExtraCatalogo
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *catalogoRepo) FindExtrasByIDs(ctx context.Context, ids []uuid.UUID) ([]model.ExtraCatalogo, error) {
	var out []model.ExtraCatalogo
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

func (r *catalogoRepo) ListExtras(ctx context.Context, soloActivos bool) ([]model.ExtraCatalogo, error) {
	q := r.db.WithContext(ctx).Model(&model.ExtraCatalogo{})
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var out []model.ExtraCatalogo
	err := q.Order("nombre ASC").Find(&out).Error
	return out, err
}

func (r *catalogoRepo) UpdateExtra(ctx context.Context, e *model.ExtraCatalogo) error {
	return r.db.WithContext(ctx).Save(e).Error
}
