package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/M0ricette/lego/api"
	"github.com/M0ricette/lego/types"
)

const pageOnePayload = `{
  "success": true,
  "data": {
    "result": [
      {"uuid": "u-apollo", "id": "42182", "title": "LEGO Technic NASA Apollo Lunar Roving Vehicle",
       "link": "https://www.dealabs.com/bons-plans/1", "price": 169.99, "discount": 32,
       "comments": 18, "temperature": 412.5, "published": 1717236000},
      {"uuid": "u-rivendell", "id": "10316", "title": "LEGO Icons Rivendell",
       "link": "https://www.dealabs.com/bons-plans/2", "price": 399.99, "published": 1717322400}
    ],
    "meta": {"currentPage": 1, "pageCount": 3, "pageSize": 6, "count": 14}
  }
}`

func TestFirstPageRendersFromAPI(t *testing.T) {
	var (
		mu       sync.Mutex
		requests []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requests = append(requests, r.URL.Path+"?"+r.URL.RawQuery)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pageOnePayload))
	}))
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL,
		api.WithHTTPClient(server.Client()),
		api.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	m := newTestModel(t, client)
	m = sendMsg(t, m, findDealsMsg(t, runCmd(t, m.Init())))

	mu.Lock()
	if len(requests) != 1 || requests[0] != "/deals?page=1&size=6" {
		t.Fatalf("unexpected requests %v", requests)
	}
	mu.Unlock()
	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}

	visible := m.visibleDeals()
	if len(visible) != 2 {
		t.Fatalf("expected 2 visible deals, got %d", len(visible))
	}
	if rows := m.dealRows(visible, 40, true); len(rows) != 2 {
		t.Fatalf("expected 2 rendered rows, got %d", len(rows))
	}
	if got := len(m.pagination.PageOptions()); got != 3 {
		t.Fatalf("expected 3 page options, got %d", got)
	}

	selector := xansi.Strip(m.renderPageSelector())
	for _, want := range []string{"[1]", " 2 ", " 3 "} {
		if !strings.Contains(selector, want) {
			t.Fatalf("expected page selector to contain %q, got %q", want, selector)
		}
	}

	header := xansi.Strip(m.renderAppHeader(m.width - 2))
	for _, want := range []string{"14 deals", "page 1/3"} {
		if !strings.Contains(header, want) {
			t.Fatalf("expected header to contain %q, got %q", want, header)
		}
	}

	items := m.itemOptions()
	if len(items) != 3 || items[0] != "" || items[1] != "10316" || items[2] != "42182" {
		t.Fatalf("unexpected item options %v", items)
	}
}

func TestViewShowsSmallTerminalMessage(t *testing.T) {
	m := newTestModel(t, nil)
	m.width = 60
	m.height = 30

	if got := m.View(); !strings.Contains(got, "Terminal too small (60x30)") {
		t.Fatalf("expected small terminal message, got %q", got)
	}

	m.width = 0
	if got := m.View(); got != "Loading..." {
		t.Fatalf("expected loading placeholder before first resize, got %q", got)
	}
}

func TestViewIsStable(t *testing.T) {
	m := newLoadedModel(t, nil, makeDeals(8), 2)

	first := m.View()
	if second := m.View(); first != second {
		t.Fatal("expected repeated renders of the same model to match")
	}
}

func TestDealsEmptyStates(t *testing.T) {
	m := newTestModel(t, nil)
	if got := xansi.Strip(m.dealsEmptyState()); !strings.Contains(got, "Loading deals") {
		t.Fatalf("expected loading state, got %q", got)
	}

	m = sendMsg(t, m, DealsLoadedMsg{Page: dealsPage(nil, 1, 1), gen: m.dealsGen})
	if got := xansi.Strip(m.dealsEmptyState()); !strings.Contains(got, "No deals on this page") {
		t.Fatalf("expected empty page state, got %q", got)
	}

	m = newLoadedModel(t, nil, makeDeals(2), 1)
	m = sendKey(t, m, runeKey('1'))
	if got := xansi.Strip(m.renderDealsPanel(70, 10)); !strings.Contains(got, "No deals match the best discount filter") {
		t.Fatalf("expected filter empty state, got %q", got)
	}
}

func TestDealRowsMarkFavorites(t *testing.T) {
	m := newLoadedModel(t, nil, makeDeals(2), 1)
	m = sendKey(t, m, runeKey('*'))

	rows := m.dealRows(m.visibleDeals(), 30, true)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !strings.Contains(xansi.Strip(rows[0]), "★") {
		t.Fatalf("expected favorite marker on first row, got %q", xansi.Strip(rows[0]))
	}
	if !strings.Contains(xansi.Strip(rows[1]), "☆") {
		t.Fatalf("expected empty marker on second row, got %q", xansi.Strip(rows[1]))
	}
}

func TestDealRowsShowDashForMissingID(t *testing.T) {
	deals := makeDeals(1)
	deals[0].ID = ""
	m := newLoadedModel(t, nil, deals, 1)

	rows := m.dealRows(m.visibleDeals(), 30, false)
	if len(rows) != 1 {
		t.Fatalf("expected the deal without display id to render, got %d rows", len(rows))
	}
	if fields := strings.Fields(xansi.Strip(rows[0])); len(fields) < 3 || fields[2] != "-" {
		t.Fatalf("expected dash in id column, got %q", xansi.Strip(rows[0]))
	}
	if got := m.itemOptions(); len(got) != 1 {
		t.Fatalf("expected only the none entry in the item selector, got %v", got)
	}
}

func TestSalesPanelStates(t *testing.T) {
	m := newLoadedModel(t, nil, makeDeals(3), 1)

	if got := xansi.Strip(m.renderSalesPanel(40, 12)); !strings.Contains(got, "No sales loaded") {
		t.Fatalf("expected no sales placeholder, got %q", got)
	}

	m.focusedPanel = panelItems
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = sendKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := xansi.Strip(m.renderSalesPanel(40, 12)); !strings.Contains(got, "Loading sales") {
		t.Fatalf("expected loading placeholder, got %q", got)
	}

	m = sendMsg(t, m, SalesLoadedMsg{ID: "10001", Sales: makeSales(4), gen: m.salesGen})
	panel := xansi.Strip(m.renderSalesPanel(48, 14))
	for _, want := range []string{"Sales · 10001", "Sales: 4", "Sold set 0"} {
		if !strings.Contains(panel, want) {
			t.Fatalf("expected sales panel to contain %q, got %q", want, panel)
		}
	}
}

func TestItemsPanelListsNoneAndIDs(t *testing.T) {
	m := newLoadedModel(t, nil, makeDeals(3), 1)

	panel := xansi.Strip(m.renderItemsPanel(30, 6))
	for _, want := range []string{"Item IDs (3)", "none", "10001", "10002", "10003"} {
		if !strings.Contains(panel, want) {
			t.Fatalf("expected items panel to contain %q, got %q", want, panel)
		}
	}
}

func TestHelpBarShowsFetchError(t *testing.T) {
	m := newLoadedModel(t, nil, makeDeals(2), 1)
	m = sendKey(t, m, runeKey('r'))
	m = sendMsg(t, m, DealsLoadedMsg{Err: &api.HTTPStatusError{Endpoint: "deals", Status: 502}, gen: m.dealsGen})

	got := xansi.Strip(m.renderHelpBar())
	if !strings.Contains(got, "Error: load deals: API service error (502)") {
		t.Fatalf("expected error line, got %q", got)
	}
	if panel := xansi.Strip(m.renderDealsPanel(100, 10)); !strings.Contains(panel, "last refresh failed") {
		t.Fatalf("expected stale marker on deals footer, got %q", panel)
	}
}

func TestPageWindowCentresOnCurrent(t *testing.T) {
	options := types.Pagination{PageCount: 30}.PageOptions()

	tests := []struct {
		current int
		first   int
		last    int
	}{
		{current: 1, first: 1, last: 11},
		{current: 15, first: 10, last: 20},
		{current: 30, first: 20, last: 30},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d", tt.current), func(t *testing.T) {
			shown := pageWindow(options, tt.current, maxPageButtons)
			if len(shown) != maxPageButtons {
				t.Fatalf("expected %d buttons, got %d", maxPageButtons, len(shown))
			}
			if shown[0] != tt.first || shown[len(shown)-1] != tt.last {
				t.Fatalf("expected window %d-%d, got %d-%d", tt.first, tt.last, shown[0], shown[len(shown)-1])
			}
		})
	}
}

func TestLayoutNoOverflowAtCommonTerminalSizes(t *testing.T) {
	sizes := []struct {
		width  int
		height int
	}{
		{width: 80, height: 24},
		{width: 100, height: 30},
		{width: 160, height: 48},
	}

	for _, size := range sizes {
		t.Run(fmt.Sprintf("%dx%d", size.width, size.height), func(t *testing.T) {
			m := newLoadedModel(t, nil, makeDeals(12), 5)
			m.width = size.width
			m.height = size.height
			m.selectedItemID = "10001"
			m = m.setSales(makeSales(9))

			panels := []struct {
				name string
				out  string
			}{
				{name: "controls", out: m.renderControlsPanel(m.width-2, 2)},
				{name: "deals", out: m.renderDealsPanel(m.width/2, m.dealsPanelHeight())},
				{name: "items", out: m.renderItemsPanel(m.width/3, 4)},
				{name: "sales", out: m.renderSalesPanel(m.width/3, 12)},
			}
			for _, panel := range panels {
				t.Run(panel.name, func(t *testing.T) {
					assertNoVisualOverflow(t, panel.out)
				})
			}
		})
	}
}

func TestSparklineWidth(t *testing.T) {
	prices := []float64{10, 12, 14, 13, 15, 17, 16, 18, 20, 19}
	width := 24

	sparkline := renderSparkline(prices, width)
	if got := lipgloss.Width(sparkline); got != width {
		t.Fatalf("expected sparkline visual width %d, got %d", width, got)
	}
}

func TestFormatters(t *testing.T) {
	if got := formatEuro(12.5); got != "12.50€" {
		t.Fatalf("formatEuro: got %q", got)
	}
	if got := formatDiscount(0); got != "-" {
		t.Fatalf("formatDiscount(0): got %q", got)
	}
	if got := formatDiscount(32.4); got != "-32%" {
		t.Fatalf("formatDiscount(32.4): got %q", got)
	}
	if got := padLeft("7", 3); got != "  7" {
		t.Fatalf("padLeft: got %q", got)
	}
	if got := countIndicator(1); got != "1 deal" {
		t.Fatalf("countIndicator(1): got %q", got)
	}
	if got := pageIndicator(types.Pagination{}); got != "page -/-" {
		t.Fatalf("pageIndicator: got %q", got)
	}
}

func assertNoVisualOverflow(t *testing.T, rendered string) {
	t.Helper()
	lines := strings.Split(rendered, "\n")
	if len(lines) == 0 {
		t.Fatal("expected rendered output to have at least one line")
	}

	frameWidth := xansi.StringWidth(lines[0])
	for i, line := range lines {
		if got := xansi.StringWidth(line); got > frameWidth {
			t.Fatalf("line %d exceeds frame width (%d > %d): %q", i+1, got, frameWidth, xansi.Strip(line))
		}
	}
}
