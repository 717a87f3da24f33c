package analytics

import (
	"strings"

	"salonpos/internal/model"

	"github.com/shopspring/decimal"
)

// Summary is the top-line view of a filtered record set.
type Summary struct {
	GrossRevenue       decimal.Decimal `json:"grossRevenue"`
	TotalCommissions   decimal.Decimal `json:"totalCommissions"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	TotalReplenishment decimal.Decimal `json:"totalReplenishment"`
	NetProfit          decimal.Decimal `json:"netProfit"`
	CashTotal          decimal.Decimal `json:"cashTotal"`
	TransferTotal      decimal.Decimal `json:"transferTotal"`
	ServiceCount       int             `json:"serviceCount"`
	ExpenseCount       int             `json:"expenseCount"`
}

var accentFolder = strings.NewReplacer("á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u")

func foldCategory(c string) string {
	return accentFolder.Replace(strings.ToLower(strings.TrimSpace(c)))
}

// IsCommissionPayout reports whether the expense pays out earned commission.
func IsCommissionPayout(g model.Gasto) bool {
	return foldCategory(g.Categoria) == foldCategory(model.CategoriaGastoComisiones)
}

// IsReplenishmentExpense reports whether the expense is cash spent restocking.
func IsReplenishmentExpense(g model.Gasto) bool {
	return foldCategory(g.Categoria) == foldCategory(model.CategoriaGastoReposicion)
}

// Summarize folds filtered sales and expenses into a Summary.
//
// Commission payouts are left out of TotalExpenses. Restocking expenses are
// counted as expenses and also offset the derived replenishment total, which
// is floored at 0. NetProfit is never clamped.
func Summarize(sales []Sale, gastos []model.Gasto, lookup UserLookup, costs *CostIndex) Summary {
	var sum Summary
	derived := decimal.Zero
	for _, s := range sales {
		sum.GrossRevenue = sum.GrossRevenue.Add(s.Cost)
		sum.TotalCommissions = sum.TotalCommissions.Add(CommissionAmount(s, lookup))
		if costs != nil {
			derived = derived.Add(costs.ReplenishmentCost(s))
		}
		switch s.PaymentMethod {
		case model.MetodoCash:
			sum.CashTotal = sum.CashTotal.Add(s.Cost)
		case model.MetodoTransfer:
			sum.TransferTotal = sum.TransferTotal.Add(s.Cost)
		}
	}

	reimbursed := decimal.Zero
	for _, g := range gastos {
		if IsCommissionPayout(g) {
			continue
		}
		amount := nonNegative(g.Monto)
		sum.TotalExpenses = sum.TotalExpenses.Add(amount)
		if IsReplenishmentExpense(g) {
			reimbursed = reimbursed.Add(amount)
		}
	}

	sum.TotalReplenishment = nonNegative(derived.Sub(reimbursed))
	sum.NetProfit = sum.GrossRevenue.
		Sub(sum.TotalExpenses).
		Sub(sum.TotalCommissions).
		Sub(sum.TotalReplenishment)
	sum.ServiceCount = len(sales)
	sum.ExpenseCount = len(gastos)
	return sum
}
