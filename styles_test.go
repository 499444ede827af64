package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRenderGradientText(t *testing.T) {
	input := "l e g o"
	output := renderGradientText(input, gradientFrom, gradientTo)

	if output == "" {
		t.Fatal("expected gradient output to be non-empty")
	}
	if got, want := lipgloss.Width(output), lipgloss.Width(input); got != want {
		t.Fatalf("expected visual width %d, got %d", want, got)
	}
}

func TestTemperatureStyles(t *testing.T) {
	tests := []struct {
		name        string
		temperature float64
		want        lipgloss.Style
	}{
		{name: "hot", temperature: 412.5, want: hotStyle},
		{name: "threshold is warm", temperature: 100, want: warmStyle},
		{name: "warm", temperature: 12, want: warmStyle},
		{name: "zero", temperature: 0, want: coldStyle},
		{name: "negative", temperature: -40, want: coldStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := temperatureStyleFor(tt.temperature)
			if got, want := style.GetForeground(), tt.want.GetForeground(); got != want {
				t.Fatalf("expected foreground %v, got %v", want, got)
			}
			if strings.TrimSpace(style.Render("412°")) == "" {
				t.Fatal("expected rendered temperature to be non-empty")
			}
		})
	}
}

func TestRenderPanelTitleTruncationSafety(t *testing.T) {
	panelWidth := 14
	panel := renderPanel("~", "Sales · 42182 LEGO Technic NASA Apollo", "content", panelWidth, 1, false)
	lines := strings.Split(panel, "\n")
	if len(lines) == 0 {
		t.Fatal("expected rendered panel lines")
	}
	if got, want := lipgloss.Width(lines[0]), panelWidth+2; got != want {
		t.Fatalf("expected top border width %d, got %d", want, got)
	}
	if !strings.Contains(lines[0], "~") {
		t.Fatalf("expected icon to remain visible in title, got %q", lines[0])
	}
}

func TestRenderPanelActiveBorder(t *testing.T) {
	active := renderPanel("#", "Deals", "x", 20, 1, true)
	inactive := renderPanel("#", "Deals", "x", 20, 1, false)

	if !strings.Contains(active, "┏") {
		t.Fatalf("expected heavy corner on active panel, got %q", active)
	}
	if !strings.Contains(inactive, "╭") {
		t.Fatalf("expected rounded corner on inactive panel, got %q", inactive)
	}
}
