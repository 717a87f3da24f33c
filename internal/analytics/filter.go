package analytics

import (
	"strings"

	"salonpos/internal/model"
)

// PaymentAll disables the payment-method constraint.
const PaymentAll = "all"

// Filter is the declarative selection applied before every aggregation.
// Dates are inclusive YYYY-MM-DD strings compared lexicographically; an empty
// bound is open.
type Filter struct {
	DateFrom       string `json:"dateFrom" form:"date_from"`
	DateTo         string `json:"dateTo" form:"date_to"`
	PaymentMethod  string `json:"paymentMethod" form:"payment_method"`
	IncludeDeleted bool   `json:"includeDeleted" form:"include_deleted"`
	Search         string `json:"search" form:"search"`
}

func (f Filter) inRange(date string) bool {
	if f.DateFrom != "" && date < f.DateFrom {
		return false
	}
	if f.DateTo != "" && date > f.DateTo {
		return false
	}
	return true
}

func (f Filter) needle() string {
	return strings.ToLower(strings.TrimSpace(f.Search))
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}

// FilterServices returns the matching sales in input order.
func FilterServices(sales []Sale, f Filter) []Sale {
	q := f.needle()
	out := make([]Sale, 0, len(sales))
	for _, s := range sales {
		if s.Deleted && !f.IncludeDeleted {
			continue
		}
		if !f.inRange(s.Date) {
			continue
		}
		if f.PaymentMethod != "" && f.PaymentMethod != PaymentAll && s.PaymentMethod != f.PaymentMethod {
			continue
		}
		if q != "" && !s.matches(q) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (s Sale) matches(q string) bool {
	if containsFold(s.Client, q) || containsFold(s.StaffName, q) {
		return true
	}
	for _, name := range s.Names() {
		if containsFold(name, q) {
			return true
		}
	}
	return false
}

// FilterExpenses returns the matching expenses in input order. Search looks at
// the description only and the payment method does not apply.
func FilterExpenses(gastos []model.Gasto, f Filter) []model.Gasto {
	q := f.needle()
	out := make([]model.Gasto, 0, len(gastos))
	for _, g := range gastos {
		if g.Eliminado && !f.IncludeDeleted {
			continue
		}
		if !f.inRange(strings.TrimSpace(g.Fecha)) {
			continue
		}
		if q != "" && !containsFold(g.Descripcion, q) {
			continue
		}
		out = append(out, g)
	}
	return out
}
