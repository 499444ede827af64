package idea

import "github.com/charmbracelet/lipgloss"

var (
	statsTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#EA80FC"))

	statsTabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#667085"))

	spreadStyles = map[string]lipgloss.Style{
		"Tight":    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#12B76A")),
		"Moderate": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F79009")),
		"Wide":     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F97066")),
	}
)

var statsTabs = []struct {
	mode  StatsViewMode
	label string
}{
	{StatsViewSummary, "[<:Sum]"},
	{StatsViewDistribution, "[>:Dist]"},
}

func RenderStatsTabs(mode StatsViewMode) string {
	out := ""
	for i, tab := range statsTabs {
		if i > 0 {
			out += " "
		}
		if tab.mode == mode {
			out += statsTabActiveStyle.Render(tab.label)
		} else {
			out += statsTabInactiveStyle.Render(tab.label)
		}
	}
	return out
}

func RenderSpreadValue(spread string) string {
	if style, ok := spreadStyles[spread]; ok {
		return style.Render(spread)
	}
	return statsTabInactiveStyle.Render(spread)
}
