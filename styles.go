package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Brick palette. Light variants keep contrast on white terminals.
var (
	colorBrickRed    = lipgloss.AdaptiveColor{Light: "#B40000", Dark: "#E3000B"}
	colorBrickYellow = lipgloss.AdaptiveColor{Light: "#B98900", Dark: "#FFD500"}
	colorBrickBlue   = lipgloss.AdaptiveColor{Light: "#0055BF", Dark: "#3C8DDE"}
	colorBrickGreen  = lipgloss.AdaptiveColor{Light: "#237841", Dark: "#4BB96E"}
	colorBrickOrange = lipgloss.AdaptiveColor{Light: "#C25A00", Dark: "#FE8A18"}
	colorStud        = lipgloss.AdaptiveColor{Light: "#6C6E68", Dark: "#A0A5A9"}
	colorInk         = lipgloss.AdaptiveColor{Light: "#1B2A34", Dark: "#F4F4F4"}
	colorFaint       = lipgloss.AdaptiveColor{Light: "#9BA19D", Dark: "#5B6770"}
	colorBaseplate   = lipgloss.AdaptiveColor{Light: "#E4E8EA", Dark: "#2A3338"}
	colorRowAlt      = lipgloss.AdaptiveColor{Light: "#F6F7F8", Dark: "#1E262B"}
)

// Header gradient endpoints.
const (
	gradientFrom = "#E3000B"
	gradientTo   = "#FFD500"
)

// Deals table
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(colorStud).
			Bold(true).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(colorBaseplate)

	rowStyle      = lipgloss.NewStyle().Foreground(colorInk)
	rowAltStyle   = lipgloss.NewStyle().Foreground(colorInk).Background(colorRowAlt)
	selectedStyle = lipgloss.NewStyle().Foreground(colorInk).Background(colorBrickBlue)

	priceStyle    = lipgloss.NewStyle().Foreground(colorBrickGreen).Bold(true)
	discountStyle = lipgloss.NewStyle().Foreground(colorBrickOrange).Bold(true)
	favoriteStyle = lipgloss.NewStyle().Foreground(colorBrickYellow).Bold(true)

	hotStyle  = lipgloss.NewStyle().Foreground(colorBrickRed).Bold(true)
	warmStyle = lipgloss.NewStyle().Foreground(colorBrickOrange)
	coldStyle = lipgloss.NewStyle().Foreground(colorStud)

	scrollInfoStyle = lipgloss.NewStyle().Foreground(colorFaint).Italic(true)
	emptyStyle      = lipgloss.NewStyle().Foreground(colorFaint).Italic(true)
)

// Controls and help bar
var (
	filterActiveStyle = lipgloss.NewStyle().
				Foreground(colorInk).
				Background(colorBrickRed).
				Bold(true).
				Padding(0, 1)
	filterInactiveStyle = lipgloss.NewStyle().Foreground(colorFaint).Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(colorFaint)
	valueStyle = lipgloss.NewStyle().Foreground(colorInk).Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(colorInk).
			Background(colorBaseplate).
			Bold(true).
			Padding(0, 1)
	keyDescStyle   = lipgloss.NewStyle().Foreground(colorFaint)
	separatorStyle = lipgloss.NewStyle().Foreground(colorBaseplate)

	helpStyle = lipgloss.NewStyle().Foreground(colorFaint).MarginTop(1)
)

// Status text
var (
	mutedStyle   = lipgloss.NewStyle().Foreground(colorFaint)
	successStyle = lipgloss.NewStyle().Foreground(colorBrickGreen)
	warningStyle = lipgloss.NewStyle().Foreground(colorBrickOrange)
	dangerStyle  = lipgloss.NewStyle().Foreground(colorBrickRed)
	spinnerStyle = lipgloss.NewStyle().Foreground(colorBrickYellow)
)

// panelChrome is the border treatment of a panel in one focus state.
type panelChrome struct {
	box         lipgloss.Style
	title       lipgloss.Style
	icon        lipgloss.Style
	color       lipgloss.TerminalColor
	leftCorner  string
	rightCorner string
	rule        string
}

var (
	idleChrome = panelChrome{
		box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Foreground(colorInk).
			Padding(0, 1),
		title:       lipgloss.NewStyle().Foreground(colorStud).Bold(true),
		icon:        lipgloss.NewStyle().Foreground(colorStud),
		color:       colorBaseplate,
		leftCorner:  "╭─",
		rightCorner: "╮",
		rule:        "─",
	}
	focusChrome = panelChrome{
		box: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			Foreground(colorInk).
			Padding(0, 1),
		title:       lipgloss.NewStyle().Foreground(colorBrickYellow).Bold(true),
		icon:        lipgloss.NewStyle().Foreground(colorBrickRed).Bold(true),
		color:       colorBrickRed,
		leftCorner:  "┏━",
		rightCorner: "┓",
		rule:        "━",
	}
)

// temperatureStyleFor colours a deal temperature: above the hot threshold,
// positive, or cold.
func temperatureStyleFor(temperature float64) lipgloss.Style {
	switch {
	case temperature > 100:
		return hotStyle
	case temperature > 0:
		return warmStyle
	default:
		return coldStyle
	}
}

// renderGradientText colours each rune along a Lab blend from colorA to colorB.
func renderGradientText(text, colorA, colorB string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	var b strings.Builder
	last := max(1, len(runes)-1)
	for i, r := range runes {
		hex := interpolateHexColor(colorA, colorB, float64(i)/float64(last))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(string(r)))
	}
	return b.String()
}

func interpolateHexColor(colorA, colorB string, t float64) string {
	from, err := colorful.Hex(colorA)
	if err != nil {
		return colorA
	}
	to, err := colorful.Hex(colorB)
	if err != nil {
		return colorB
	}
	return from.BlendLab(to, min(1, max(0, t))).Clamped().Hex()
}

// renderPanel draws content inside a border whose top edge carries the icon
// and label. The result is width+2 columns wide.
func renderPanel(icon, label, content string, width, height int, active bool) string {
	chrome := idleChrome
	if active {
		chrome = focusChrome
	}
	width = max(4, width)
	height = max(1, height)

	title := chrome.fitTitle(strings.TrimSpace(icon), label, width-2)
	edge := lipgloss.NewStyle().Foreground(chrome.color)
	fill := strings.Repeat(chrome.rule, max(0, width-lipgloss.Width(title)-1))
	top := edge.Render(chrome.leftCorner) + title + edge.Render(fill+chrome.rightCorner)

	body := chrome.box.
		BorderForeground(chrome.color).
		BorderTop(false).
		Width(width).
		Height(height).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, top, body)
}

// fitTitle renders "icon label" within limit columns, shortening the label
// first and dropping it entirely before the icon.
func (c panelChrome) fitTitle(icon, label string, limit int) string {
	if limit < 1 {
		return ""
	}
	if icon == "" {
		return c.title.Render(truncate(label, limit))
	}

	iconWidth := lipgloss.Width(icon)
	if iconWidth >= limit {
		return c.icon.Render(truncate(icon, limit))
	}

	for room := limit - iconWidth - 1; room > 0; room-- {
		text := truncate(label, room)
		if text == "" {
			break
		}
		if lipgloss.Width(icon)+1+lipgloss.Width(text) <= limit {
			return c.icon.Render(icon) + " " + c.title.Render(text)
		}
	}
	return c.icon.Render(icon)
}
