// Package analytics turns snapshots of services, expenses, users and
// inventory into commission, replenishment and profit figures.
//
// Every function here is pure and synchronous: callers pass the records in,
// nothing is cached between calls, and malformed-but-typed input degrades to
// zero instead of failing.
package analytics

import (
	"strings"

	"salonpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind tells which stored shape a Sale was built from.
type Kind int

const (
	KindLegacy Kind = iota
	KindItemized
)

func (k Kind) String() string {
	if k == KindItemized {
		return "itemized"
	}
	return "legacy"
}

const UnspecifiedName = "unspecified"

// Line is one catalog service inside an itemized sale.
type Line struct {
	CatalogID uuid.UUID
	Name      string
	Price     decimal.Decimal
	Category  string
}

// Sale is the normalized form of model.Servicio that every aggregator reads.
type Sale struct {
	ID            uuid.UUID
	Date          string
	Client        string
	StaffID       uuid.UUID
	StaffName     string
	PaymentMethod string
	Cost          decimal.Decimal
	Kind          Kind
	LegacyName    string
	Lines         []Line
	Extras        []model.ServicioExtra
	CommissionPct *decimal.Decimal
	Category      string
	Replenishment *decimal.Decimal
	Deleted       bool
}

// Normalize resolves the legacy flat shape and the itemized shape into a Sale.
// Negative costs are read as 0.
func Normalize(s model.Servicio) Sale {
	sale := Sale{
		ID:            s.ID,
		Date:          strings.TrimSpace(s.Fecha),
		Client:        s.Cliente,
		StaffID:       s.UsuarioID,
		StaffName:     s.UsuarioNombre,
		PaymentMethod: s.MetodoPago,
		Cost:          nonNegative(s.Costo),
		CommissionPct: s.ComisionPct,
		Replenishment: s.CostoReposicion,
		Deleted:       s.Eliminado,
	}
	if s.Categoria != nil {
		sale.Category = normalizeCategory(*s.Categoria)
	}

	if len(s.Items) == 0 {
		sale.Kind = KindLegacy
		sale.LegacyName = strings.TrimSpace(s.ServicioNombre)
		return sale
	}

	sale.Kind = KindItemized
	sale.Lines = make([]Line, 0, len(s.Items))
	for _, it := range s.Items {
		sale.Lines = append(sale.Lines, Line{
			CatalogID: it.ServicioID,
			Name:      strings.TrimSpace(it.Nombre),
			Price:     nonNegative(it.Precio),
			Category:  normalizeCategory(it.Categoria),
		})
	}
	if len(s.Extras) > 0 {
		sale.Extras = append([]model.ServicioExtra(nil), s.Extras...)
	}
	return sale
}

// NormalizeAll keeps the input order.
func NormalizeAll(servicios []model.Servicio) []Sale {
	sales := make([]Sale, len(servicios))
	for i := range servicios {
		sales[i] = Normalize(servicios[i])
	}
	return sales
}

// DisplayName is the name used for popularity grouping.
func (s Sale) DisplayName() string {
	if len(s.Lines) > 0 && s.Lines[0].Name != "" {
		return s.Lines[0].Name
	}
	if s.LegacyName != "" {
		return s.LegacyName
	}
	return UnspecifiedName
}

// Names returns every service name the sale can be searched by.
func (s Sale) Names() []string {
	if s.Kind == KindLegacy {
		if s.LegacyName == "" {
			return nil
		}
		return []string{s.LegacyName}
	}
	names := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		names = append(names, l.Name)
	}
	return names
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
