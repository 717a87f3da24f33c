package analytics_test

import (
	"testing"

	"salonpos/internal/analytics"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekdayTrend_MondayFirstAndConservesRevenue(t *testing.T) {
	emily := newStaff("Emily", "35")
	ss := sales(
		legacyServicio("2024-01-01", emily, "10", "Manicura"),  // Monday
		legacyServicio("2024-01-07", emily, "20", "Manicura"),  // Sunday
		legacyServicio("2024-01-08", emily, "5.5", "Manicura"), // Monday
		legacyServicio("2024-01-03", emily, "7", "Manicura"),   // Wednesday
	)

	buckets := analytics.WeekdayTrend(ss)

	assert.Equal(t, 1, buckets[0].Weekday)
	assert.Equal(t, "Lunes", buckets[0].Label)
	assert.Equal(t, 2, buckets[0].Count)
	assertDec(t, "15.5", buckets[0].Revenue)
	assert.Equal(t, "Miércoles", buckets[2].Label)
	assertDec(t, "7", buckets[2].Revenue)
	assert.Equal(t, 7, buckets[6].Weekday)
	assertDec(t, "20", buckets[6].Revenue)

	total := decimal.Zero
	for _, b := range buckets {
		total = total.Add(b.Revenue)
	}
	gross := analytics.Summarize(ss, nil, nil, nil).GrossRevenue
	assert.True(t, total.Equal(gross))
}

func TestWeekdayTrend_SkipsUnparseableDates(t *testing.T) {
	emily := newStaff("Emily", "35")
	buckets := analytics.WeekdayTrend(sales(legacyServicio("01/02/2024", emily, "10", "Manicura")))
	for _, b := range buckets {
		assert.Zero(t, b.Count)
	}
}

func TestDailyTrend_ChronologicalAndRestartable(t *testing.T) {
	emily := newStaff("Emily", "35")
	ss := sales(
		legacyServicio("2024-01-12", emily, "10", "Manicura"),
		legacyServicio("2024-01-10", emily, "20", "Manicura"),
		legacyServicio("2024-01-12", emily, "5", "Manicura"),
	)

	points := analytics.DailyTrend(ss)
	require.Len(t, points, 2)
	assert.Equal(t, "2024-01-10", points[0].Date)
	assert.Equal(t, "2024-01-12", points[1].Date)
	assert.Equal(t, 2, points[1].ServiceCount)
	assertDec(t, "15", points[1].Revenue)

	seq := analytics.DailySeq(ss)
	var first, second []string
	for p := range seq {
		first = append(first, p.Date)
	}
	for p := range seq {
		second = append(second, p.Date)
		break
	}
	assert.Equal(t, []string{"2024-01-10", "2024-01-12"}, first)
	assert.Equal(t, []string{"2024-01-10"}, second)

	assert.NotNil(t, analytics.DailyTrend(nil))
	assert.Empty(t, analytics.DailyTrend(nil))
}

func TestDailyTrend_DeletedOnlyWhenIncluded(t *testing.T) {
	emily := newStaff("Emily", "35")
	gone := legacyServicio("2024-01-10", emily, "20", "Manicura")
	gone.Eliminado = true
	ss := sales(gone, legacyServicio("2024-01-11", emily, "10", "Manicura"))

	assert.Len(t, analytics.DailyTrend(analytics.FilterServices(ss, analytics.Filter{})), 1)
	assert.Len(t, analytics.DailyTrend(analytics.FilterServices(ss, analytics.Filter{IncludeDeleted: true})), 2)
}
