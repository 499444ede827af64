package idea

import (
	"fmt"
	"math"
)

const maxHistogramBins = 8

// calculateStdDev is the population standard deviation.
func calculateStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var squaredDiffSum float64
	for _, value := range values {
		diff := value - mean
		squaredDiffSum += diff * diff
	}
	return math.Sqrt(squaredDiffSum / float64(len(values)))
}

func calculateCoV(stdDev, mean float64) float64 {
	if mean <= 0 {
		return 0
	}
	return stdDev / mean
}

func classifySpread(cov float64) string {
	switch {
	case cov < 0.15:
		return "Tight"
	case cov < 0.35:
		return "Moderate"
	default:
		return "Wide"
	}
}

// calculateHistogramBins buckets ascending prices into equal-width bins.
func calculateHistogramBins(sorted []float64) []HistogramBin {
	if len(sorted) == 0 {
		return nil
	}

	low := sorted[0]
	high := sorted[len(sorted)-1]
	if low == high {
		return []HistogramBin{{
			Label:    formatHistogramLabel(low, high),
			Count:    len(sorted),
			MinPrice: low,
			MaxPrice: high,
		}}
	}

	binCount := min(sturgesBinCount(len(sorted)), len(sorted), maxHistogramBins)
	width := (high - low) / float64(binCount)

	bins := make([]HistogramBin, binCount)
	for i := range bins {
		start := low + float64(i)*width
		end := start + width
		if i == binCount-1 {
			end = high
		}
		bins[i] = HistogramBin{
			Label:    formatHistogramLabel(start, end),
			MinPrice: start,
			MaxPrice: end,
		}
	}

	for _, price := range sorted {
		idx := int((price - low) / width)
		if idx >= binCount {
			idx = binCount - 1
		}
		bins[idx].Count++
	}
	return bins
}

func sturgesBinCount(n int) int {
	if n <= 1 {
		return 1
	}
	return int(math.Ceil(1 + 3.322*math.Log10(float64(n))))
}

func formatHistogramLabel(low, high float64) string {
	left := math.Floor(low)
	right := math.Ceil(high)
	if right < left {
		right = left
	}
	return fmt.Sprintf("%.0f-%.0f€", left, right)
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f€", v)
}
