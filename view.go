package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/M0ricette/lego/types"
)

const (
	minWidth  = 72
	minHeight = 20
)

// View renders the UI (required by tea.Model interface). It reads the model
// only, so identical models render identical output.
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		return helpStyle.Render(
			fmt.Sprintf(
				"Terminal too small (%dx%d). Resize to at least %dx%d.",
				m.width,
				m.height,
				minWidth,
				minHeight,
			),
		)
	}

	contentWidth := m.width - 4
	stacked := m.width < stackedWidth
	leftWidth := contentWidth * 3 / 5
	rightWidth := contentWidth - leftWidth
	if stacked {
		leftWidth = contentWidth + 2
		rightWidth = contentWidth + 2
	}

	const controlsHeight = 2
	dealsHeight := m.dealsPanelHeight()
	itemsHeight := max(3, dealsHeight/3)
	salesHeight := max(6, dealsHeight-itemsHeight-2)
	if stacked {
		itemsHeight = 3
		salesHeight = max(6, m.height-layoutOverhead-dealsHeight-2)
	}

	header := m.renderAppHeader(m.width - 2)
	controls := m.renderControlsPanel(m.width-2, controlsHeight)
	dealsPanel := m.renderDealsPanel(leftWidth, dealsHeight)
	itemsPanel := m.renderItemsPanel(rightWidth, itemsHeight)
	salesPanel := m.renderSalesPanel(rightWidth, salesHeight)
	helpBar := m.renderHelpBar()

	rightColumn := lipgloss.JoinVertical(lipgloss.Left, itemsPanel, salesPanel)

	var mainArea string
	if stacked {
		mainArea = lipgloss.JoinVertical(lipgloss.Left, dealsPanel, rightColumn)
	} else {
		mainArea = lipgloss.JoinHorizontal(lipgloss.Top, dealsPanel, rightColumn)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		controls,
		mainArea,
		helpBar,
	)
}

// renderAppHeader shows the title plus the total item count and the page
// position reported by the API.
func (m Model) renderAppHeader(contentWidth int) string {
	title := renderGradientText("l e g o", gradientFrom, gradientTo)
	subtitle := mutedStyle.Render("Deals Browser")

	indicator := valueStyle.Render(countIndicator(m.pagination.Count)) +
		mutedStyle.Render("  ·  ") +
		valueStyle.Render(pageIndicator(m.pagination))
	if m.loading() {
		indicator = m.spinner.View() + " " + indicator
	}

	left := title + " " + subtitle
	gap := max(1, contentWidth-lipgloss.Width(left)-lipgloss.Width(indicator))
	line := left + strings.Repeat(" ", gap) + indicator

	separator := renderGradientText(strings.Repeat("━", max(8, contentWidth)), gradientFrom, gradientTo)
	return lipgloss.JoinVertical(lipgloss.Left, line, separator)
}

func countIndicator(total int) string {
	if total == 1 {
		return "1 deal"
	}
	return fmt.Sprintf("%d deals", total)
}

func pageIndicator(p types.Pagination) string {
	if p.PageCount <= 0 {
		return "page -/-"
	}
	return fmt.Sprintf("page %d/%d", max(1, p.CurrentPage), p.PageCount)
}
