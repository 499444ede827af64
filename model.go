package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/M0ricette/lego/api"
	"github.com/M0ricette/lego/favorites"
	"github.com/M0ricette/lego/idea"
	"github.com/M0ricette/lego/types"
)

// Panel focus states
const (
	panelDeals = iota
	panelItems
	panelSales
	panelPages
	panelCount
)

// pageSizes is the page size cycle offered by the size control.
var pageSizes = []int{6, 12, 24}

const (
	layoutOverhead = 12
	stackedWidth   = 110
)

// dealSource is the part of the API client the UI depends on.
type dealSource interface {
	FetchDeals(ctx context.Context, page, size int) (api.DealsPage, error)
	FetchSales(ctx context.Context, id string) ([]types.Sale, error)
}

// Model represents the application state.
type Model struct {
	// Terminal dimensions
	width  int
	height int

	// Shared components
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	// Focus management
	focusedPanel int

	// Deals as last fetched; the displayed list is derived on every render.
	deals      []types.Deal
	pagination types.Pagination
	pageSize   int
	filter     types.FilterKind
	sortKey    types.SortKey
	favorites  *favorites.Store

	selectedIndex int
	dealsOffset   int

	// Item id selector; index 0 is the empty selection.
	itemCursor     int
	selectedItemID string

	// Sales for selectedItemID
	sales         []types.Sale
	salesStats    idea.ExtendedSalesStats
	statsViewMode idea.StatsViewMode
	saleIndex     int

	// Fetch bookkeeping. A response is applied only when its generation
	// matches the latest issued request of the same kind.
	loadingDeals bool
	loadingSales bool
	dealsGen     int
	salesGen     int
	dealsCancel  context.CancelFunc
	salesCancel  context.CancelFunc

	err    error
	status string

	client    dealSource
	logger    *slog.Logger
	exportDir string
	now       func() time.Time
}

// NewModel creates the application model. The first deals page is requested
// by Init.
func NewModel(client dealSource, favs *favorites.Store, cfg Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = spinnerStyle

	hp := help.New()
	hp.ShortSeparator = "  "
	hp.FullSeparator = "   "
	hp.Styles.ShortKey = keyStyle
	hp.Styles.ShortDesc = keyDescStyle
	hp.Styles.ShortSeparator = separatorStyle
	hp.Styles.Ellipsis = separatorStyle
	hp.Styles.FullKey = keyStyle
	hp.Styles.FullDesc = keyDescStyle
	hp.Styles.FullSeparator = separatorStyle

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = api.DefaultPageSize
	}

	return Model{
		keys:          defaultKeyMap(),
		help:          hp,
		spinner:       sp,
		focusedPanel:  panelDeals,
		deals:         []types.Deal{},
		pageSize:      pageSize,
		filter:        types.FilterNone,
		sortKey:       types.DefaultSortKey,
		favorites:     favs,
		statsViewMode: idea.StatsViewSummary,
		loadingDeals:  true,
		dealsGen:      1,
		client:        client,
		logger:        logger,
		exportDir:     cfg.ExportDir,
		now:           time.Now,
	}
}

// Init loads the first page (required by tea.Model interface).
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetchDealsCmd(context.Background(), m.client, 1, m.pageSize, m.dealsGen),
	)
}

// visibleDeals is the filtered and sorted view of the fetched page.
func (m Model) visibleDeals() []types.Deal {
	return types.VisibleDeals(m.deals, m.filter, m.sortKey, m.favorites.IsFavorite)
}

// itemOptions lists the item selector entries: "" for none, then the
// distinct display ids of the unfiltered page.
func (m Model) itemOptions() []string {
	return append([]string{""}, types.DisplayIDs(m.deals)...)
}

// dealsPanelHeight is the content height of the deals panel.
func (m Model) dealsPanelHeight() int {
	height := max(4, m.height-layoutOverhead)
	if m.width < stackedWidth {
		height = max(4, height/2)
	}
	return height
}

// visibleDealRows returns how many deal rows fit below the table header.
func (m Model) visibleDealRows() int {
	return max(1, m.dealsPanelHeight()-3)
}

func (m Model) loading() bool {
	return m.loadingDeals || m.loadingSales
}

// DealsLoadedMsg carries the outcome of a deals page request.
type DealsLoadedMsg struct {
	Page api.DealsPage
	Err  error
	gen  int
}

// SalesLoadedMsg carries the outcome of a sales request for one item id.
type SalesLoadedMsg struct {
	ID    string
	Sales []types.Sale
	Err   error
	gen   int
}

type openURLResultMsg struct {
	Err error
}

type exportResultMsg struct {
	Path  string
	Count int
	Err   error
}
