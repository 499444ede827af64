package idea

import (
	"sort"

	"github.com/M0ricette/lego/types"
)

// StatsViewMode controls which sales statistics view is active in the UI.
type StatsViewMode int

const (
	StatsViewSummary StatsViewMode = iota
	StatsViewDistribution
)

// ExtendedSalesStats adds spread and distribution data on top of the core
// sales summary. The embedded SalesStats is never altered.
type ExtendedSalesStats struct {
	types.SalesStats

	Min    float64
	Max    float64
	StdDev float64
	CoV    float64
	Spread string

	Histogram []HistogramBin
}

type HistogramBin struct {
	Label    string
	Count    int
	MinPrice float64
	MaxPrice float64
}

func CalculateExtendedSalesStats(sales []types.Sale) ExtendedSalesStats {
	stats := ExtendedSalesStats{
		SalesStats: types.ComputeSalesStats(sales),
		Spread:     "N/A",
	}
	if len(sales) == 0 {
		return stats
	}

	prices := make([]float64, len(sales))
	for i, sale := range sales {
		prices[i] = sale.Price
	}
	sort.Float64s(prices)

	stats.Min = prices[0]
	stats.Max = prices[len(prices)-1]
	stats.StdDev = calculateStdDev(prices, stats.Average)
	stats.CoV = calculateCoV(stats.StdDev, stats.Average)
	stats.Spread = classifySpread(stats.CoV)
	stats.Histogram = calculateHistogramBins(prices)

	return stats
}

// SalePrices returns the sale prices ordered by sold date, oldest first.
// Sales without a date keep their relative order at the front.
func SalePrices(sales []types.Sale) []float64 {
	ordered := append([]types.Sale(nil), sales...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Published.Before(ordered[j].Published)
	})
	prices := make([]float64, len(ordered))
	for i, sale := range ordered {
		prices[i] = sale.Price
	}
	return prices
}
