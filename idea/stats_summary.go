package idea

import "fmt"

// RenderSummaryBody renders the summary-tab lines below the tab bar.
// The average is the only value rounded here; the stats keep full precision.
func RenderSummaryBody(stats ExtendedSalesStats, sparkline string, width int) []string {
	if width < 20 {
		width = 20
	}

	countSpread := fmt.Sprintf("Sales: %d  Spread: %s", stats.Count, RenderSpreadValue(stats.Spread))
	avgLife := fmt.Sprintf("Avg: %s  Lifetime: %s", formatPrice(stats.Average), formatDays(stats.LifetimeDays))

	if width < 44 {
		return []string{
			countSpread,
			"Trend: " + sparkline,
			fmt.Sprintf("P5: %s  P25: %s", formatPrice(stats.P5), formatPrice(stats.P25)),
			fmt.Sprintf("P50: %s", formatPrice(stats.P50)),
			avgLife,
		}
	}

	return []string{
		countSpread,
		"Trend: " + sparkline,
		fmt.Sprintf("P5: %s   P25: %s   P50: %s", formatPrice(stats.P5), formatPrice(stats.P25), formatPrice(stats.P50)),
		fmt.Sprintf("Min: %s   Max: %s", formatPrice(stats.Min), formatPrice(stats.Max)),
		avgLife,
	}
}

func formatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
