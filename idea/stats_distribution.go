package idea

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// RenderDistributionBody renders histogram rows followed by a percentile band.
// Rows are clipped to width and capped at maxRows in total.
func RenderDistributionBody(stats ExtendedSalesStats, width int, maxRows int) []string {
	if width < 24 {
		width = 24
	}
	if maxRows < 2 {
		maxRows = 2
	}

	if len(stats.Histogram) == 0 {
		return []string{
			"Sale Price Distribution",
			"~ no sales ~",
		}
	}

	bins := stats.Histogram
	if len(bins) > maxRows-1 {
		bins = bins[:maxRows-1]
	}

	maxCount := 1
	for _, b := range bins {
		maxCount = max(maxCount, b.Count)
	}

	barWidth := max(6, min(22, width-20))
	lines := make([]string, 0, len(bins)+1)
	for i, bin := range bins {
		bar := renderHistogramBar(float64(bin.Count)/float64(maxCount), barWidth, i, len(bins))
		marker := " "
		if stats.P50 >= bin.MinPrice && stats.P50 <= bin.MaxPrice {
			marker = "◆"
		}
		line := fmt.Sprintf("%-12s %s %2d %s", truncate(bin.Label, 12), bar, bin.Count, marker)
		lines = append(lines, clipANSIWidth(line, width))
	}

	var band string
	if width >= 48 {
		band = fmt.Sprintf("P5:%s P25:%s P50:%s Avg:%s",
			formatPrice(stats.P5),
			formatPrice(stats.P25),
			formatPrice(stats.P50),
			formatPrice(stats.Average),
		)
	} else {
		band = fmt.Sprintf("P50:%s Avg:%s", formatPrice(stats.P50), formatPrice(stats.Average))
	}
	lines = append(lines, clipANSIWidth(band, width))

	return lines
}

func renderHistogramBar(ratio float64, width, idx, total int) string {
	ratio = math.Max(0, math.Min(1, ratio))
	filled := min(width, max(0, int(math.Round(ratio*float64(width)))))

	gradient := 0.0
	if total > 1 {
		gradient = float64(idx) / float64(total-1)
	}
	color := blendHex("#12B76A", "#D92D20", gradient)
	filledBar := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(strings.Repeat("█", filled))
	return filledBar + strings.Repeat("░", width-filled)
}

func blendHex(a, b string, t float64) string {
	t = math.Max(0, math.Min(1, t))
	start, err := colorful.Hex(a)
	if err != nil {
		return a
	}
	end, err := colorful.Hex(b)
	if err != nil {
		return b
	}
	return start.BlendLab(end, t).Clamped().Hex()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

func clipANSIWidth(line string, width int) string {
	if width <= 0 {
		return ""
	}
	if xansi.StringWidth(line) <= width {
		return line
	}
	if width <= 1 {
		return "…"
	}
	return xansi.Truncate(line, width, "…")
}
