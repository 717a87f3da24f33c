package analytics

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// PopularityEntry aggregates sales sharing a display name. Share is the
// percentage of the sale count, rounded to two decimals.
type PopularityEntry struct {
	Name    string          `json:"name"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
	Share   decimal.Decimal `json:"share"`
}

// ServicePopularity sorts by count descending; equal counts keep the order in
// which names were first seen.
func ServicePopularity(sales []Sale) []PopularityEntry {
	idx := make(map[string]int)
	entries := make([]PopularityEntry, 0)
	for _, s := range sales {
		name := s.DisplayName()
		i, ok := idx[name]
		if !ok {
			i = len(entries)
			idx[name] = i
			entries = append(entries, PopularityEntry{Name: name})
		}
		entries[i].Count++
		entries[i].Revenue = entries[i].Revenue.Add(s.Cost)
	}

	if total := int64(len(sales)); total > 0 {
		for i := range entries {
			entries[i].Share = decimal.NewFromInt(int64(entries[i].Count)).
				Mul(hundred).
				DivRound(decimal.NewFromInt(total), 2)
		}
	}

	slices.SortStableFunc(entries, func(a, b PopularityEntry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return entries
}

// TopService returns the first entry with the highest count.
func TopService(entries []PopularityEntry) (PopularityEntry, bool) {
	return firstMax(entries, func(a, b PopularityEntry) bool { return a.Count > b.Count })
}
