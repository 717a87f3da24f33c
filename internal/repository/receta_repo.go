package repository

import (
	"context"
	"errors"

	"salonpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecetaRepository interface {
	// Upsert replaces the recipe bound to r.ServicioCatalogoID, items included.
	Upsert(ctx context.Context, r *model.Receta) error
	FindByCatalogoID(ctx context.Context, catalogoID uuid.UUID) (*model.Receta, error)
	List(ctx context.Context) ([]model.Receta, error)
	// ReplaceAll deletes every recipe and inserts recetas in one transaction.
	ReplaceAll(ctx context.Context, recetas []model.Receta) error
}

type recetaRepo struct{ db *gorm.DB }

func NewRecetaRepository(db *gorm.DB) RecetaRepository { return &recetaRepo{db: db} }

func (r *recetaRepo) Upsert(ctx context.Context, rec *model.Receta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Receta
		err := tx.Where("servicio_catalogo_id = ?", rec.ServicioCatalogoID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
		case err != nil:
			return err
		default:
			if err := tx.Where("receta_id = ?", existing.ID).Delete(&model.RecetaItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		}
		rec.ID = existing.ID
		for i := range rec.Items {
			rec.Items[i].ID = uuid.Nil
			rec.Items[i].RecetaID = uuid.Nil
		}
		return tx.Create(rec).Error
	})
}

func (r *recetaRepo) FindByCatalogoID(ctx context.Context, catalogoID uuid.UUID) (*model.Receta, error) {
	var rec model.Receta
	err := r.db.WithContext(ctx).Preload("Items").
		Where("servicio_catalogo_id = ?", catalogoID).First(&rec).Error
	return &rec, err
}

func (r *recetaRepo) List(ctx context.Context) ([]model.Receta, error) {
	var out []model.Receta
	err := r.db.WithContext(ctx).Preload("Items").Order("servicio_nombre ASC").Find(&out).Error
	return out, err
}

func (r *recetaRepo) ReplaceAll(ctx context.Context, recetas []model.Receta) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM receta_items").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM recetas").Error; err != nil {
			return err
		}
		for i := range recetas {
			if err := tx.Create(&recetas[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
