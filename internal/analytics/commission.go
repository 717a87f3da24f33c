package analytics

import (
	"salonpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// UserLookup resolves a staff id against the current roster.
type UserLookup func(id uuid.UUID) (model.Usuario, bool)

// LookupFrom indexes users by id.
func LookupFrom(users []model.Usuario) UserLookup {
	byID := make(map[uuid.UUID]model.Usuario, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return func(id uuid.UUID) (model.Usuario, bool) {
		u, ok := byID[id]
		return u, ok
	}
}

// ClampPercent bounds p to [0, 100].
func ClampPercent(p decimal.Decimal) decimal.Decimal {
	if p.IsNegative() {
		return decimal.Zero
	}
	if p.GreaterThan(hundred) {
		return hundred
	}
	return p
}

// CommissionPercent prefers the percentage frozen on the sale over the staff
// member's current default. Unknown staff earn 0.
func CommissionPercent(s Sale, lookup UserLookup) decimal.Decimal {
	if s.CommissionPct != nil {
		return ClampPercent(*s.CommissionPct)
	}
	if lookup == nil {
		return decimal.Zero
	}
	u, ok := lookup(s.StaffID)
	if !ok {
		return decimal.Zero
	}
	return ClampPercent(u.ComisionPct)
}

// CommissionAmount is cost × percent / 100.
func CommissionAmount(s Sale, lookup UserLookup) decimal.Decimal {
	return nonNegative(s.Cost).Mul(CommissionPercent(s, lookup)).Div(hundred)
}
