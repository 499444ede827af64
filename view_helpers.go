package main

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func renderSparkline(prices []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(prices) == 0 {
		return strings.Repeat(" ", width)
	}

	blocks := []rune("▁▂▃▄▅▆▇█")
	bins := make([]float64, width)
	for i := range bins {
		start := i * len(prices) / width
		end := (i + 1) * len(prices) / width
		if end <= start {
			end = min(len(prices), start+1)
		}
		if start >= len(prices) {
			start = len(prices) - 1
		}
		var sum float64
		for j := start; j < end; j++ {
			sum += prices[j]
		}
		bins[i] = sum / float64(max(1, end-start))
	}

	lowest, highest := bins[0], bins[0]
	for _, value := range bins[1:] {
		lowest = math.Min(lowest, value)
		highest = math.Max(highest, value)
	}

	var b strings.Builder
	for _, value := range bins {
		ratio := 0.5
		if highest > lowest {
			ratio = (value - lowest) / (highest - lowest)
		}
		level := min(len(blocks)-1, max(0, int(math.Round(ratio*float64(len(blocks)-1)))))
		color := interpolateHexColor("#12B76A", "#D92D20", ratio)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(blocks[level])))
	}

	return b.String()
}

// renderFilterButton draws one filter toggle; the active one is filled.
func renderFilterButton(shortcut, label string, active bool) string {
	text := shortcut + " " + label
	if active {
		return filterActiveStyle.Render(text)
	}
	return filterInactiveStyle.Render(text)
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

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func padLeft(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return strings.Repeat(" ", gap) + s
	}
	return s
}

func displayID(id string) string {
	if id == "" {
		return "-"
	}
	return id
}

func formatEuro(v float64) string {
	return fmt.Sprintf("%.2f€", v)
}

func formatDiscount(pct float64) string {
	if pct <= 0 {
		return "-"
	}
	return fmt.Sprintf("-%.0f%%", pct)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02")
}
