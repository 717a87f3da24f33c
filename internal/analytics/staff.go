package analytics

import (
	"slices"
	"strings"

	"salonpos/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// StaffStat is one staff member's share of a filtered record set.
// Outstanding is CommissionEarned − CommissionPaid; negative means overpaid.
type StaffStat struct {
	UserID           uuid.UUID       `json:"userId"`
	Name             string          `json:"name"`
	Role             string          `json:"role"`
	ServiceCount     int             `json:"serviceCount"`
	GrossRevenue     decimal.Decimal `json:"grossRevenue"`
	CommissionEarned decimal.Decimal `json:"commissionEarned"`
	CommissionPaid   decimal.Decimal `json:"commissionPaid"`
	SalonNet         decimal.Decimal `json:"salonNet"`
	Outstanding      decimal.Decimal `json:"outstanding"`
}

// PerStaff groups sales and commission payouts by staff member, ordered by
// gross revenue descending. Ties keep roster order (by name).
//
// Active users are always listed; inactive users only when they own one of
// the filtered sales. Payouts are credited to active users only.
func PerStaff(sales []Sale, gastos []model.Gasto, users []model.Usuario) []StaffStat {
	roster := slices.Clone(users)
	slices.SortStableFunc(roster, func(a, b model.Usuario) int {
		return strings.Compare(strings.ToLower(a.Nombre), strings.ToLower(b.Nombre))
	})
	lookup := LookupFrom(users)

	idx := make(map[uuid.UUID]int, len(roster))
	stats := make([]StaffStat, len(roster))
	for i, u := range roster {
		idx[u.ID] = i
		stats[i] = StaffStat{UserID: u.ID, Name: u.Nombre, Role: u.Rol}
	}

	for _, s := range sales {
		i, ok := idx[s.StaffID]
		if !ok {
			log.Warn().
				Str("servicio_id", s.ID.String()).
				Str("usuario_id", s.StaffID.String()).
				Msg("analytics: service references an unknown staff member")
			continue
		}
		st := &stats[i]
		st.ServiceCount++
		st.GrossRevenue = st.GrossRevenue.Add(s.Cost)
		st.CommissionEarned = st.CommissionEarned.Add(CommissionAmount(s, lookup))
	}

	for _, g := range gastos {
		if !IsCommissionPayout(g) || g.UsuarioID == nil {
			continue
		}
		i, ok := idx[*g.UsuarioID]
		if !ok || !roster[i].Activo {
			log.Warn().
				Str("gasto_id", g.ID.String()).
				Str("usuario_id", g.UsuarioID.String()).
				Msg("analytics: commission payout for unknown or inactive staff ignored")
			continue
		}
		stats[i].CommissionPaid = stats[i].CommissionPaid.Add(nonNegative(g.Monto))
	}

	out := make([]StaffStat, 0, len(stats))
	for i, st := range stats {
		if !roster[i].Activo && st.ServiceCount == 0 {
			continue
		}
		st.SalonNet = st.GrossRevenue.Sub(st.CommissionEarned)
		st.Outstanding = st.CommissionEarned.Sub(st.CommissionPaid)
		out = append(out, st)
	}
	slices.SortStableFunc(out, func(a, b StaffStat) int {
		return b.GrossRevenue.Cmp(a.GrossRevenue)
	})
	return out
}

// TopStaffByRevenue returns the first staff member with the highest revenue.
func TopStaffByRevenue(stats []StaffStat) (StaffStat, bool) {
	return firstMax(stats, func(a, b StaffStat) bool { return a.GrossRevenue.GreaterThan(b.GrossRevenue) })
}

// TopStaffByCount returns the first staff member with the most services.
func TopStaffByCount(stats []StaffStat) (StaffStat, bool) {
	return firstMax(stats, func(a, b StaffStat) bool { return a.ServiceCount > b.ServiceCount })
}

// firstMax keeps the earliest entry among equals.
func firstMax[T any](items []T, greater func(a, b T) bool) (T, bool) {
	var best T
	if len(items) == 0 {
		return best, false
	}
	best = items[0]
	for _, it := range items[1:] {
		if greater(it, best) {
			best = it
		}
	}
	return best, true
}
