package repository

import (
	"context"
	"time"

	"salonpos/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MetaRepository interface {
	// ClaimSeed flips app_meta.seeded from false to true and reports whether
	// this caller won. Run it inside the seeding transaction so a rollback
	// releases the claim.
	ClaimSeed(ctx context.Context) (bool, error)
	IsSeeded(ctx context.Context) (bool, error)
}

type metaRepo struct{ db *gorm.DB }

func NewMetaRepository(db *gorm.DB) MetaRepository { return &metaRepo{db: db} }

func (r *metaRepo) ClaimSeed(ctx context.Context) (bool, error) {
	db := r.db.WithContext(ctx)
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.AppMeta{Clave: model.MetaApp}).Error; err != nil {
		return false, err
	}
	now := time.Now()
	res := db.Model(&model.AppMeta{}).
		Where("clave = ? AND seeded = ?", model.MetaApp, false).
		Updates(map[string]any{"seeded": true, "seeded_at": now})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *metaRepo) IsSeeded(ctx context.Context) (bool, error) {
	var m model.AppMeta
	err := r.db.WithContext(ctx).Where("clave = ?", model.MetaApp).Limit(1).Find(&m).Error
	return m.Seeded, err
}
