package types

import (
	"math"
	"sort"
	"time"
)

// Sale is one observed secondary-market transaction for an item id.
type Sale struct {
	UUID      string
	Title     string
	Link      string
	Price     float64
	Published time.Time // When the item was sold
}

// SalesStats holds the summary indicators shown above the sales list.
type SalesStats struct {
	Count        int
	P5           float64
	P25          float64
	P50          float64
	Average      float64 // Full precision; rounding is a display concern
	LifetimeDays int
}

// ComputeSalesStats summarizes a sales list. Empty input yields the zero value.
func ComputeSalesStats(sales []Sale) SalesStats {
	if len(sales) == 0 {
		return SalesStats{}
	}

	prices := make([]float64, len(sales))
	var sum float64
	for i, s := range sales {
		prices[i] = s.Price
		sum += s.Price
	}
	sort.Float64s(prices)

	return SalesStats{
		Count:        len(sales),
		P5:           PercentileAt(prices, 0.05),
		P25:          PercentileAt(prices, 0.25),
		P50:          PercentileAt(prices, 0.50),
		Average:      sum / float64(len(prices)),
		LifetimeDays: lifetimeDays(sales),
	}
}

// PercentileAt picks sorted[floor(fraction*len)] without interpolation.
// Indexes outside the slice select 0.
func PercentileAt(sorted []float64, fraction float64) float64 {
	idx := int(math.Floor(fraction * float64(len(sorted))))
	if idx < 0 || idx >= len(sorted) {
		return 0
	}
	return sorted[idx]
}

// lifetimeDays is the span between the earliest and latest sold dates,
// rounded to whole days. Zero timestamps are ignored.
func lifetimeDays(sales []Sale) int {
	var first, last time.Time
	for _, s := range sales {
		if s.Published.IsZero() {
			continue
		}
		if first.IsZero() || s.Published.Before(first) {
			first = s.Published
		}
		if last.IsZero() || s.Published.After(last) {
			last = s.Published
		}
	}
	if first.IsZero() || !last.After(first) {
		return 0
	}
	return int(math.Round(last.Sub(first).Hours() / 24))
}
