package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/M0ricette/lego/idea"
	"github.com/M0ricette/lego/types"
)

const maxPageButtons = 11

var filterShortcuts = map[types.FilterKind]string{
	types.FilterDiscount:  "1",
	types.FilterCommented: "2",
	types.FilterHot:       "3",
	types.FilterFavorites: "4",
}

// renderControlsPanel shows the filter buttons, sort key, page selector and
// page size.
func (m Model) renderControlsPanel(width, height int) string {
	active := m.focusedPanel == panelPages

	buttons := make([]string, 0, len(types.FilterKinds))
	for _, kind := range types.FilterKinds {
		buttons = append(buttons, renderFilterButton(filterShortcuts[kind], kind.Label(), kind == m.filter))
	}
	filters := labelStyle.Render("Filter:") + " " + strings.Join(buttons, " ")
	sortLine := labelStyle.Render("Sort:") + " " + valueStyle.Render(m.sortKey.Label())

	pages := labelStyle.Render("Page:") + " " + m.renderPageSelector()
	size := labelStyle.Render("Size:") + " " + m.renderSizeSelector()

	lines := []string{
		filters + "   " + sortLine,
		pages + "   " + size,
	}
	return renderPanel("=", "Controls", strings.Join(lines, "\n"), width, height, active)
}

// renderPageSelector draws one button per page; the selected button is
// always the page the API reported as current.
func (m Model) renderPageSelector() string {
	options := m.pagination.PageOptions()
	if len(options) == 0 {
		return mutedStyle.Render("-")
	}

	current := m.pagination.CurrentPage
	shown := pageWindow(options, current, maxPageButtons)

	parts := make([]string, 0, len(shown)+2)
	if shown[0] > options[0] {
		parts = append(parts, mutedStyle.Render("…"))
	}
	for _, page := range shown {
		label := strconv.Itoa(page)
		if page == current {
			parts = append(parts, selectedStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, mutedStyle.Render(" "+label+" "))
		}
	}
	if shown[len(shown)-1] < options[len(options)-1] {
		parts = append(parts, mutedStyle.Render("…"))
	}
	return strings.Join(parts, "")
}

// pageWindow returns at most limit options centred on current.
func pageWindow(options []int, current, limit int) []int {
	if limit <= 0 || len(options) <= limit {
		return options
	}
	idx := 0
	for i, page := range options {
		if page == current {
			idx = i
			break
		}
	}
	start := max(0, min(idx-limit/2, len(options)-limit))
	return options[start : start+limit]
}

func (m Model) renderSizeSelector() string {
	parts := make([]string, len(pageSizes))
	for i, size := range pageSizes {
		label := strconv.Itoa(size)
		if size == m.pageSize {
			parts[i] = selectedStyle.Render("[" + label + "]")
		} else {
			parts[i] = mutedStyle.Render(" " + label + " ")
		}
	}
	return strings.Join(parts, "")
}

const (
	colCursor   = 1
	colFavorite = 1
	colID       = 6
	colPrice    = 9
	colDiscount = 5
	colComments = 4
	colTemp     = 6
	colDate     = 10
	colGaps     = 8
)

// renderDealsPanel lists the filtered and sorted deals.
func (m Model) renderDealsPanel(width, height int) string {
	active := m.focusedPanel == panelDeals
	visible := m.visibleDeals()

	if len(visible) == 0 {
		return renderPanel("#", "Deals", m.dealsEmptyState(), width, height, active)
	}

	titleWidth := max(8, width-2-(colCursor+colFavorite+colID+colPrice+colDiscount+colComments+colTemp+colDate+colGaps))
	header := fmt.Sprintf("%-*s %-*s %-*s %-*s %*s %*s %*s %*s %-*s",
		colCursor, "",
		colFavorite, "",
		colID, "ID",
		titleWidth, "Title",
		colPrice, "Price",
		colDiscount, "Disc",
		colComments, "Com",
		colTemp, "Temp",
		colDate, "Posted",
	)

	lines := []string{headerStyle.Render(header)}
	lines = append(lines, m.dealRows(visible, titleWidth, active)...)

	start, end := m.dealWindow(len(visible))
	footer := fmt.Sprintf("showing %d-%d of %d", start+1, end, len(visible))
	if m.filter != types.FilterNone {
		footer += fmt.Sprintf(" · filter: %s (%d on page)", m.filter.Label(), len(m.deals))
	}
	footer = scrollInfoStyle.Render(footer)
	if m.dealsStale() {
		footer += warningStyle.Render(" · last refresh failed")
	}
	lines = append(lines, footer)

	return renderPanel("#", "Deals", strings.Join(lines, "\n"), width, height, active)
}

// dealsStale reports whether the deals on screen predate a failed fetch.
func (m Model) dealsStale() bool {
	var fe *fetchError
	return errors.As(m.err, &fe) && fe.what == "deals"
}

// dealWindow returns the [start, end) slice of visible deals on screen.
func (m Model) dealWindow(n int) (int, int) {
	rows := m.visibleDealRows()
	start := min(max(0, m.dealsOffset), max(0, n-rows))
	return start, min(n, start+rows)
}

// dealRows renders one line per on-screen deal.
func (m Model) dealRows(visible []types.Deal, titleWidth int, active bool) []string {
	start, end := m.dealWindow(len(visible))
	rows := make([]string, 0, end-start)

	for i := start; i < end; i++ {
		d := visible[i]

		cursor := " "
		if i == m.selectedIndex {
			cursor = "▸"
		}
		fav := "☆"
		if m.favorites.IsFavorite(d.UUID) {
			fav = favoriteStyle.Render("★")
		}

		row := strings.Join([]string{
			cursor,
			fav,
			padRight(truncate(displayID(d.ID), colID), colID),
			padRight(truncate(d.Title, titleWidth), titleWidth),
			padLeft(priceStyle.Render(formatEuro(d.Price)), colPrice),
			discountStyle.Render(fmt.Sprintf("%*s", colDiscount, formatDiscount(d.Discount))),
			fmt.Sprintf("%*d", colComments, d.Comments),
			temperatureStyleFor(d.Temperature).Render(fmt.Sprintf("%*s", colTemp, fmt.Sprintf("%.0f°", d.Temperature))),
			fmt.Sprintf("%-*s", colDate, formatDate(d.Published)),
		}, " ")

		switch {
		case i == m.selectedIndex && active:
			row = selectedStyle.Render(row)
		case i%2 == 1:
			row = rowAltStyle.Render(row)
		default:
			row = rowStyle.Render(row)
		}
		rows = append(rows, row)
	}
	return rows
}

func (m Model) dealsEmptyState() string {
	switch {
	case m.loadingDeals && len(m.deals) == 0:
		return m.spinner.View() + " " + mutedStyle.Render("Loading deals...")
	case len(m.deals) == 0:
		return emptyStyle.Render("~ No deals on this page ~")
	default:
		return emptyStyle.Render(fmt.Sprintf("~ No deals match the %s filter ~", strings.ToLower(m.filter.Label()))) +
			"\n" + keyStyle.Render(filterShortcuts[m.filter]) + keyDescStyle.Render(" clear filter")
	}
}

// renderItemsPanel lists the distinct display ids of the fetched page.
func (m Model) renderItemsPanel(width, height int) string {
	active := m.focusedPanel == panelItems
	options := m.itemOptions()

	start := 0
	if m.itemCursor >= height {
		start = m.itemCursor - height + 1
	}
	end := min(len(options), start+height)

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		label := options[i]
		if label == "" {
			label = "none"
		}
		marker := "  "
		if options[i] == m.selectedItemID {
			marker = "● "
		}
		line := marker + truncate(label, max(4, width-6))
		if i == m.itemCursor && active {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}

	title := fmt.Sprintf("Item IDs (%d)", len(options)-1)
	return renderPanel("@", title, strings.Join(lines, "\n"), width, height, active)
}

// renderSalesPanel shows the sales statistics tab and the list of sales for
// the selected item id.
func (m Model) renderSalesPanel(width, height int) string {
	active := m.focusedPanel == panelSales
	title := "Sales"
	if m.selectedItemID != "" {
		title = "Sales · " + m.selectedItemID
	}

	switch {
	case m.selectedItemID == "":
		content := emptyStyle.Render("~ No sales loaded ~") + "\n" + mutedStyle.Render("pick an item id to see its sales")
		return renderPanel("~", title, content, width, height, active)
	case m.loadingSales:
		content := m.spinner.View() + " " + mutedStyle.Render("Loading sales...")
		return renderPanel("~", title, content, width, height, active)
	case len(m.sales) == 0:
		content := emptyStyle.Render("~ No sales loaded ~") + "\n" + mutedStyle.Render("no sales recorded for this item")
		return renderPanel("~", title, content, width, height, active)
	}

	bodyWidth := max(20, width-2)
	lines := []string{idea.RenderStatsTabs(m.statsViewMode)}

	var body []string
	if m.statsViewMode == idea.StatsViewDistribution {
		body = idea.RenderDistributionBody(m.salesStats, bodyWidth, 6)
	} else {
		sparkline := renderSparkline(idea.SalePrices(m.sales), max(8, min(24, bodyWidth-8)))
		body = idea.RenderSummaryBody(m.salesStats, sparkline, bodyWidth)
	}
	lines = append(lines, body...)
	lines = append(lines, separatorStyle.Render(strings.Repeat("╌", max(12, bodyWidth))))

	listRows := max(1, height-len(lines))
	start := 0
	if m.saleIndex >= listRows {
		start = m.saleIndex - listRows + 1
	}
	end := min(len(m.sales), start+listRows)
	titleWidth := max(6, bodyWidth-colDate-colPrice-4)
	for i := start; i < end; i++ {
		s := m.sales[i]
		cursor := " "
		if i == m.saleIndex {
			cursor = "▸"
		}
		row := fmt.Sprintf("%s %-*s %*s %s",
			cursor,
			colDate, formatDate(s.Published),
			colPrice, formatEuro(s.Price),
			truncate(s.Title, titleWidth),
		)
		if i == m.saleIndex && active {
			row = selectedStyle.Render(row)
		}
		lines = append(lines, row)
	}

	return renderPanel("~", title, strings.Join(lines, "\n"), width, height, active)
}

func (m Model) renderHelpBar() string {
	helpModel := m.help
	helpModel.Width = max(0, m.width-2)
	help := helpModel.View(m.keys)

	if m.status != "" {
		help = successStyle.Render(m.status) + "  " + help
	}
	if m.err != nil {
		errLine := dangerStyle.Render(fmt.Sprintf("Error: %v", m.err))
		return helpStyle.Render(errLine + "\n" + help)
	}

	return helpStyle.Render(help)
}
