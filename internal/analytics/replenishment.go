package analytics

import (
	"strings"

	"salonpos/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CostTable holds the fixed per-category replenishment constants used when a
// catalog service has no recipe on file.
type CostTable map[string]decimal.Decimal

func DefaultCostTable() CostTable {
	return CostTable{
		model.CategoriaManicura: decimal.RequireFromString("0.33"),
		model.CategoriaPedicura: decimal.RequireFromString("0.50"),
	}
}

// NewCostTable builds the table from configured per-category rates.
func NewCostTable(manicura, pedicura decimal.Decimal) CostTable {
	return CostTable{
		model.CategoriaManicura: manicura,
		model.CategoriaPedicura: pedicura,
	}
}

func (t CostTable) Lookup(category string) (decimal.Decimal, bool) {
	v, ok := t[strings.ToLower(strings.TrimSpace(category))]
	return v, ok
}

// CostIndex resolves recipes against consumable unit costs.
type CostIndex struct {
	recipes     map[uuid.UUID]model.Receta
	consumables map[uuid.UUID]model.Insumo
	catalog     map[uuid.UUID]model.ServicioCatalogo
	table       CostTable
}

func NewCostIndex(recipes []model.Receta, consumables []model.Insumo, catalog []model.ServicioCatalogo, table CostTable) *CostIndex {
	c := &CostIndex{
		recipes:     make(map[uuid.UUID]model.Receta, len(recipes)),
		consumables: make(map[uuid.UUID]model.Insumo, len(consumables)),
		catalog:     make(map[uuid.UUID]model.ServicioCatalogo, len(catalog)),
		table:       table,
	}
	for _, r := range recipes {
		c.recipes[r.ServicioCatalogoID] = r
	}
	for _, i := range consumables {
		c.consumables[i.ID] = i
	}
	for _, s := range catalog {
		c.catalog[s.ID] = s
	}
	return c
}

// RecipeCost sums quantity × unit cost over the recipe of catalogID. The bool
// is false when no recipe exists. Items pointing at missing consumables add 0.
func (c *CostIndex) RecipeCost(catalogID uuid.UUID) (decimal.Decimal, bool) {
	r, ok := c.recipes[catalogID]
	if !ok {
		return decimal.Zero, false
	}
	total := decimal.Zero
	for _, it := range r.Items {
		ins, ok := c.consumables[it.InsumoID]
		if !ok {
			log.Warn().
				Str("receta_id", r.ID.String()).
				Str("insumo_id", it.InsumoID.String()).
				Msg("analytics: recipe references a missing consumable")
			continue
		}
		total = total.Add(nonNegative(it.Cantidad).Mul(nonNegative(ins.CostoUnitario)))
	}
	return total, true
}

// LineCost costs one catalog line: recipe, then category constant, then 0.
func (c *CostIndex) LineCost(l Line) decimal.Decimal {
	return c.lineCost(l, "")
}

func (c *CostIndex) lineCost(l Line, fallbackCategory string) decimal.Decimal {
	if cost, ok := c.RecipeCost(l.CatalogID); ok {
		return cost
	}
	category := l.Category
	if category == "" {
		if cs, ok := c.catalog[l.CatalogID]; ok {
			category = cs.Categoria
		}
	}
	if category == "" {
		category = fallbackCategory
	}
	if l.CatalogID != uuid.Nil {
		log.Warn().
			Str("servicio_catalogo_id", l.CatalogID.String()).
			Str("categoria", category).
			Msg("analytics: no recipe for catalog service, using category constant")
	}
	if v, ok := c.table.Lookup(category); ok {
		return v
	}
	return decimal.Zero
}

// ReplenishmentCost returns the stored snapshot verbatim when present.
// Otherwise itemized sales are costed line by line and legacy sales fall back
// to their category constant.
func (c *CostIndex) ReplenishmentCost(s Sale) decimal.Decimal {
	if s.Replenishment != nil {
		return *s.Replenishment
	}
	if s.Kind == KindItemized {
		total := decimal.Zero
		for _, l := range s.Lines {
			total = total.Add(c.lineCost(l, s.Category))
		}
		return total
	}
	if v, ok := c.table.Lookup(s.Category); ok {
		return v
	}
	return decimal.Zero
}

// Deduction is one consumable decremented when a service is logged.
type Deduction struct {
	Nombre   string
	Cantidad decimal.Decimal
}

// StandardDeductions lists what a service of each category uses up. It also
// seeds the standard recipes, so names must match the seeded consumables.
func StandardDeductions(category string) []Deduction {
	one := decimal.NewFromInt(1)
	switch normalizeCategory(category) {
	case model.CategoriaManicura:
		return []Deduction{
			{"Guantes (par)", one},
			{"Mascarillas", one},
			{"Palillo naranja", one},
			{"Bastoncillos", one},
			{"Wipes", one},
			{"Toalla desechable", one},
			{"Gorro", one},
			{"Campo quirúrgico", one},
			{"Moldes esculpir", one},
		}
	case model.CategoriaPedicura:
		return []Deduction{
			{"Campo quirúrgico", one},
			{"Algodón", decimal.NewFromInt(5)},
			{"Papel film", decimal.RequireFromString("0.8")},
			{"Guantes (par)", one},
			{"Mascarillas", one},
			{"Palillo naranja", one},
			{"Wipes", one},
			{"Gorro", one},
			{"Bastoncillos", one},
		}
	}
	return nil
}
