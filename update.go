package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"

	"github.com/M0ricette/lego/api"
	"github.com/M0ricette/lego/idea"
	"github.com/M0ricette/lego/types"
)

// Update handles messages and updates the model (required by tea.Model interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.clampDealSelection()
		return m, nil

	case DealsLoadedMsg:
		return m.handleDealsLoaded(msg)

	case SalesLoadedMsg:
		return m.handleSalesLoaded(msg)

	case openURLResultMsg:
		if msg.Err != nil {
			m.err = msg.Err
		}
		return m, nil

	case exportResultMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.logger.Warn("export deals", tint.Err(msg.Err))
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("exported %d deals to %s", msg.Count, msg.Path)
		m.logger.Info("deals exported", slog.String("path", msg.Path), slog.Int("count", msg.Count))
		return m, nil

	case spinner.TickMsg:
		if m.loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, nil
}

// handleDealsLoaded applies a deals response. Stale responses are dropped;
// a failed fetch keeps the previous page on screen.
func (m Model) handleDealsLoaded(msg DealsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.dealsGen {
		return m, nil
	}

	m.loadingDeals = false
	m.cancelDeals()
	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return m, nil
		}
		m.err = &fetchError{what: "deals", err: msg.Err}
		m.logger.Warn("fetch deals failed, keeping previous page",
			slog.String("kind", string(api.ClassifyError(msg.Err))),
			tint.Err(msg.Err),
		)
		return m, nil
	}

	m.deals = msg.Page.Deals
	m.pagination = msg.Page.Pagination
	if slices.Contains(pageSizes, m.pagination.PageSize) {
		m.pageSize = m.pagination.PageSize
	}
	m.selectedIndex = 0
	m.dealsOffset = 0
	m.itemCursor = min(m.itemCursor, len(m.itemOptions())-1)
	m.err = nil
	m.status = ""
	return m, nil
}

// handleSalesLoaded applies a sales response. A failed fetch empties the list.
func (m Model) handleSalesLoaded(msg SalesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.salesGen || msg.ID != m.selectedItemID {
		return m, nil
	}

	m.loadingSales = false
	m.cancelSales()
	m.saleIndex = 0
	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return m, nil
		}
		m.err = &fetchError{what: "sales for " + msg.ID, err: msg.Err}
		m.logger.Warn("fetch sales failed, showing none",
			slog.String("id", msg.ID),
			slog.String("kind", string(api.ClassifyError(msg.Err))),
			tint.Err(msg.Err),
		)
		m = m.setSales(nil)
		return m, nil
	}

	m.err = nil
	m = m.setSales(msg.Sales)
	return m, nil
}

// fetchError is shown on the status line after a failed request.
type fetchError struct {
	what string
	err  error
}

func (e *fetchError) Error() string {
	return "load " + e.what + ": " + api.Describe(e.err)
}

func (e *fetchError) Unwrap() error {
	return e.err
}

func (m Model) setSales(sales []types.Sale) Model {
	m.sales = sales
	m.salesStats = idea.CalculateExtendedSalesStats(sales)
	return m
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit), key.Matches(msg, m.keys.Quit):
		m.cancelDeals()
		m.cancelSales()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Tab):
		m.focusedPanel = (m.focusedPanel + 1) % panelCount
		return m, nil

	case key.Matches(msg, m.keys.ShiftTab):
		m.focusedPanel = (m.focusedPanel + panelCount - 1) % panelCount
		return m, nil

	case key.Matches(msg, m.keys.NextPage):
		return m.changePage(m.currentPage() + 1)

	case key.Matches(msg, m.keys.PrevPage):
		return m.changePage(m.currentPage() - 1)

	case key.Matches(msg, m.keys.Reload):
		return m.requestDeals(m.currentPage(), m.pageSize)

	case key.Matches(msg, m.keys.SizeUp):
		return m.changePageSize(1)

	case key.Matches(msg, m.keys.SizeDown):
		return m.changePageSize(-1)

	case key.Matches(msg, m.keys.Discount):
		return m.toggleFilter(types.FilterDiscount), nil

	case key.Matches(msg, m.keys.Commented):
		return m.toggleFilter(types.FilterCommented), nil

	case key.Matches(msg, m.keys.Hot):
		return m.toggleFilter(types.FilterHot), nil

	case key.Matches(msg, m.keys.Favorites):
		return m.toggleFilter(types.FilterFavorites), nil

	case key.Matches(msg, m.keys.Sort):
		m.sortKey = m.sortKey.Next()
		m.selectedIndex = 0
		m.dealsOffset = 0
		return m, nil

	case key.Matches(msg, m.keys.ExportCSV):
		return m, m.exportCmd("csv")

	case key.Matches(msg, m.keys.ExportJSON):
		return m, m.exportCmd("json")
	}

	switch m.focusedPanel {
	case panelDeals:
		return m.handleDealsKeys(msg)
	case panelItems:
		return m.handleItemsKeys(msg)
	case panelSales:
		return m.handleSalesKeys(msg)
	case panelPages:
		return m.handlePagesKeys(msg)
	}

	return m, nil
}

func (m Model) handleDealsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.visibleDeals()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedIndex < len(visible)-1 {
			m.selectedIndex++
			rows := m.visibleDealRows()
			if m.selectedIndex >= m.dealsOffset+rows {
				m.dealsOffset = m.selectedIndex - rows + 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedIndex > 0 {
			m.selectedIndex--
			if m.selectedIndex < m.dealsOffset {
				m.dealsOffset = m.selectedIndex
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Favorite):
		if m.selectedIndex < len(visible) {
			m = m.toggleFavorite(visible[m.selectedIndex].UUID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Enter):
		if m.selectedIndex < len(visible) && canOpen(visible[m.selectedIndex].Link) {
			return m, openURLCmd(visible[m.selectedIndex].Link)
		}
	}

	return m, nil
}

func (m Model) handleItemsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := m.itemOptions()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.itemCursor < len(options)-1 {
			m.itemCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.itemCursor > 0 {
			m.itemCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.itemCursor < len(options) {
			return m.selectItem(options[m.itemCursor])
		}
	}

	return m, nil
}

func (m Model) handleSalesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.statsViewMode = idea.StatsViewSummary
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.statsViewMode = idea.StatsViewDistribution
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.saleIndex < len(m.sales)-1 {
			m.saleIndex++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.saleIndex > 0 {
			m.saleIndex--
		}
		return m, nil

	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Enter):
		if m.saleIndex < len(m.sales) && canOpen(m.sales[m.saleIndex].Link) {
			return m, openURLCmd(m.sales[m.saleIndex].Link)
		}
	}

	return m, nil
}

func (m Model) handlePagesKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		return m.changePage(m.currentPage() - 1)
	case key.Matches(msg, m.keys.Right):
		return m.changePage(m.currentPage() + 1)
	case key.Matches(msg, m.keys.Up):
		return m.changePageSize(1)
	case key.Matches(msg, m.keys.Down):
		return m.changePageSize(-1)
	}
	return m, nil
}

// toggleFilter activates kind, or clears it when it is already active.
// Filtering is local, nothing is refetched.
func (m Model) toggleFilter(kind types.FilterKind) Model {
	m.filter = types.ToggleFilter(m.filter, kind)
	m.selectedIndex = 0
	m.dealsOffset = 0
	return m
}

func (m Model) toggleFavorite(uuid string) Model {
	member, err := m.favorites.Toggle(context.Background(), uuid)
	switch {
	case err != nil:
		m.err = err
		m.logger.Warn("toggle favorite", slog.String("uuid", uuid), tint.Err(err))
	case member:
		m.status = "added to favorites"
	default:
		m.status = "removed from favorites"
	}
	return m.clampDealSelection()
}

func (m Model) clampDealSelection() Model {
	n := len(m.visibleDeals())
	if m.selectedIndex >= n {
		m.selectedIndex = max(0, n-1)
	}
	rows := m.visibleDealRows()
	if m.dealsOffset > 0 && m.dealsOffset+rows > n {
		m.dealsOffset = max(0, n-rows)
	}
	if m.selectedIndex < m.dealsOffset {
		m.dealsOffset = m.selectedIndex
	}
	if m.selectedIndex >= m.dealsOffset+rows {
		m.dealsOffset = m.selectedIndex - rows + 1
	}
	return m
}

func (m Model) currentPage() int {
	return max(1, m.pagination.CurrentPage)
}

// changePage requests page when it lies within the known page range.
func (m Model) changePage(page int) (tea.Model, tea.Cmd) {
	if page < 1 {
		return m, nil
	}
	if m.pagination.PageCount > 0 && page > m.pagination.PageCount {
		return m, nil
	}
	return m.requestDeals(page, m.pageSize)
}

// changePageSize moves through pageSizes and refetches the current page.
func (m Model) changePageSize(step int) (tea.Model, tea.Cmd) {
	idx := 0
	for i, size := range pageSizes {
		if size == m.pageSize {
			idx = i
			break
		}
	}
	next := idx + step
	if next < 0 || next >= len(pageSizes) {
		return m, nil
	}
	return m.requestDeals(m.currentPage(), pageSizes[next])
}

// requestDeals supersedes any in-flight deals request with a new one.
func (m Model) requestDeals(page, size int) (tea.Model, tea.Cmd) {
	m.cancelDeals()
	ctx, cancel := context.WithCancel(context.Background())
	m.dealsCancel = cancel
	m.dealsGen++
	m.loadingDeals = true
	m.pageSize = size
	m.status = ""

	return m, tea.Batch(
		m.spinner.Tick,
		fetchDealsCmd(ctx, m.client, page, size, m.dealsGen),
	)
}

// selectItem loads the sales for id, or clears the sales panel when id is empty.
func (m Model) selectItem(id string) (tea.Model, tea.Cmd) {
	m.cancelSales()
	m.salesGen++
	m.selectedItemID = id
	m.saleIndex = 0

	if id == "" {
		m.loadingSales = false
		m = m.setSales(nil)
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.salesCancel = cancel
	m.loadingSales = true

	return m, tea.Batch(
		m.spinner.Tick,
		fetchSalesCmd(ctx, m.client, id, m.salesGen),
	)
}

func (m *Model) cancelDeals() {
	if m.dealsCancel == nil {
		return
	}
	m.dealsCancel()
	m.dealsCancel = nil
}

func (m *Model) cancelSales() {
	if m.salesCancel == nil {
		return
	}
	m.salesCancel()
	m.salesCancel = nil
}

func fetchDealsCmd(ctx context.Context, client dealSource, page, size, gen int) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return DealsLoadedMsg{Err: errors.New("no API client configured"), gen: gen}
		}
		result, err := client.FetchDeals(ctx, page, size)
		return DealsLoadedMsg{Page: result, Err: err, gen: gen}
	}
}

func fetchSalesCmd(ctx context.Context, client dealSource, id string, gen int) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return SalesLoadedMsg{ID: id, Err: errors.New("no API client configured"), gen: gen}
		}
		sales, err := client.FetchSales(ctx, id)
		return SalesLoadedMsg{ID: id, Sales: sales, Err: err, gen: gen}
	}
}

func (m Model) exportCmd(format string) tea.Cmd {
	deals := m.visibleDeals()
	path := BuildExportPath(m.exportDir, m.exportLabel(), format, m.now())
	return func() tea.Msg {
		var err error
		if format == "json" {
			err = ExportJSON(path, deals)
		} else {
			err = ExportCSV(path, deals)
		}
		return exportResultMsg{Path: path, Count: len(deals), Err: err}
	}
}

func (m Model) exportLabel() string {
	label := fmt.Sprintf("page-%d", m.currentPage())
	if m.filter != types.FilterNone {
		label += "-" + string(m.filter)
	}
	return label
}

func openURLCmd(url string) tea.Cmd {
	return func() tea.Msg {
		return openURLResultMsg{Err: openURL(url)}
	}
}

func validateOpenURL(rawURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return nil, fmt.Errorf("open URL: empty URL")
	}

	parsedURL, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("open URL: invalid URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("open URL: invalid URL %q", trimmed)
	}

	scheme := strings.ToLower(parsedURL.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("open URL: unsupported URL scheme %q", parsedURL.Scheme)
	}

	return parsedURL, nil
}

// canOpen reports whether link is an absolute http(s) URL.
func canOpen(link string) bool {
	_, err := validateOpenURL(link)
	return err == nil
}

// openURL opens a URL in the default browser.
func openURL(rawURL string) error {
	parsedURL, err := validateOpenURL(rawURL)
	if err != nil {
		return err
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", parsedURL.String())
	case "linux":
		cmd = exec.Command("xdg-open", parsedURL.String())
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", parsedURL.String())
	default:
		return fmt.Errorf("open URL: unsupported platform %q", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open URL: %w", err)
	}
	return nil
}
