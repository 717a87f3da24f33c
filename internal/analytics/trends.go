package analytics

import (
	"iter"
	"maps"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// WeekdayBucket numbers days ISO-style: Monday is 1, Sunday is 7.
type WeekdayBucket struct {
	Weekday int             `json:"weekday"`
	Label   string          `json:"label"`
	Revenue decimal.Decimal `json:"revenue"`
	Count   int             `json:"count"`
}

var weekdayLabels = [7]string{"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"}

func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}

// WeekdayTrend buckets sales by day of week. Sales whose date does not parse
// are skipped.
func WeekdayTrend(sales []Sale) [7]WeekdayBucket {
	var buckets [7]WeekdayBucket
	for i := range buckets {
		buckets[i] = WeekdayBucket{Weekday: i + 1, Label: weekdayLabels[i]}
	}
	for _, s := range sales {
		t, err := time.Parse(time.DateOnly, s.Date)
		if err != nil {
			log.Warn().Str("servicio_id", s.ID.String()).Str("fecha", s.Date).Msg("analytics: unparseable service date")
			continue
		}
		b := &buckets[isoWeekday(t.Weekday())-1]
		b.Revenue = b.Revenue.Add(s.Cost)
		b.Count++
	}
	return buckets
}

type DailyPoint struct {
	Date         string          `json:"date"`
	Revenue      decimal.Decimal `json:"revenue"`
	ServiceCount int             `json:"serviceCount"`
}

// DailySeq yields one point per calendar date in ascending order. The
// grouping is redone on every range over the sequence.
func DailySeq(sales []Sale) iter.Seq[DailyPoint] {
	return func(yield func(DailyPoint) bool) {
		byDate := make(map[string]*DailyPoint)
		for _, s := range sales {
			p, ok := byDate[s.Date]
			if !ok {
				p = &DailyPoint{Date: s.Date}
				byDate[s.Date] = p
			}
			p.Revenue = p.Revenue.Add(s.Cost)
			p.ServiceCount++
		}
		for _, date := range slices.Sorted(maps.Keys(byDate)) {
			if !yield(*byDate[date]) {
				return
			}
		}
	}
}

func DailyTrend(sales []Sale) []DailyPoint {
	points := slices.Collect(DailySeq(sales))
	if points == nil {
		return []DailyPoint{}
	}
	return points
}
