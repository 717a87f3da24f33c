package repository

import (
	"context"

	"salonpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	MovimientoDeduccion = "deduccion_servicio"
	MovimientoAjuste    = "ajuste_manual"
)

// StockChange is one signed stock adjustment. Positive Delta restocks.
type StockChange struct {
	InsumoID   uuid.UUID
	Delta      decimal.Decimal
	Tipo       string
	Motivo     string
	ServicioID *uuid.UUID
}

// MovimientoFilter defines filters for listing stock movements.
type MovimientoFilter struct {
	InsumoID *uuid.UUID
	Tipo     string
	Page     int
	Limit    int
}

type InsumoRepository interface {
	Create(ctx context.Context, i *model.Insumo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	FindByNombres(ctx context.Context, nombres []string) ([]model.Insumo, error)
	List(ctx context.Context, soloActivos bool) ([]model.Insumo, error)
	ListBajoStock(ctx context.Context) ([]model.Insumo, error)
	Update(ctx context.Context, i *model.Insumo) error
	// AdjustStock applies the change clamped at zero and records the movement
	// in the same transaction.
	AdjustStock(ctx context.Context, ch StockChange) (*model.MovimientoInsumo, error)
	ListMovimientos(ctx context.Context, filter MovimientoFilter) ([]model.MovimientoInsumo, int64, error)
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) Create(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *insumoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	return &i, err
}

func (r *insumoRepo) FindByNombres(ctx context.Context, nombres []string) ([]model.Insumo, error) {
	var out []model.Insumo
	if len(nombres) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("nombre IN ?", nombres).Find(&out).Error
	return out, err
}

func (r *insumoRepo) List(ctx context.Context, soloActivos bool) ([]model.Insumo, error) {
	q := r.db.WithContext(ctx).Model(&model.Insumo{})
	if soloActivos {
		q = q.Where("activo = ?", true)
	}
	var out []model.Insumo
	err := q.Order("nombre ASC").Find(&out).Error
	return out, err
}

func (r *insumoRepo) ListBajoStock(ctx context.Context) ([]model.Insumo, error) {
	var out []model.Insumo
	err := r.db.WithContext(ctx).
		Where("activo = ? AND stock <= stock_minimo", true).
		Order("nombre ASC").Find(&out).Error
	return out, err
}

func (r *insumoRepo) Update(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *insumoRepo) AdjustStock(ctx context.Context, ch StockChange) (*model.MovimientoInsumo, error) {
	var mov *model.MovimientoInsumo
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var ins model.Insumo
		if err := q.First(&ins, "id = ?", ch.InsumoID).Error; err != nil {
			return err
		}

		nuevo := ins.Stock.Add(ch.Delta)
		if nuevo.IsNegative() {
			nuevo = decimal.Zero
		}
		if err := tx.Model(&model.Insumo{}).Where("id = ?", ins.ID).Update("stock", nuevo).Error; err != nil {
			return err
		}

		mov = &model.MovimientoInsumo{
			InsumoID:      ins.ID,
			Tipo:          ch.Tipo,
			Cantidad:      ch.Delta,
			StockAnterior: ins.Stock,
			StockNuevo:    nuevo,
			Motivo:        ch.Motivo,
			ServicioID:    ch.ServicioID,
		}
		return tx.Create(mov).Error
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

func (r *insumoRepo) ListMovimientos(ctx context.Context, filter MovimientoFilter) ([]model.MovimientoInsumo, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.MovimientoInsumo{}).
		Preload("Insumo")
	if filter.InsumoID != nil {
		q = q.Where("insumo_id = ?", *filter.InsumoID)
	}
	if filter.Tipo != "" {
		q = q.Where("tipo = ?", filter.Tipo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 500 {
		limit = 100
	}
	offset := (page - 1) * limit

	var movimientos []model.MovimientoInsumo
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&movimientos).Error
	return movimientos, total, err
}
