package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lmittmann/tint"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/M0ricette/lego/types"
)

const (
	DefaultBaseURL  = "https://lego-api-blue.vercel.app"
	DefaultPageSize = 6
	DefaultTimeout  = 15 * time.Second

	dealsEndpoint = "deals"
	salesEndpoint = "sales"

	maxResponseBytes = 8 << 20
)

// DealsPage is one page of deals with its pagination metadata.
type DealsPage struct {
	Deals      []types.Deal
	Pagination types.Pagination
}

// Client queries the deals API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	limiter    *rate.Limiter
	validate   *validator.Validate
	salesCache *cache.Cache
	logger     *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. Its transport is wrapped
// with request logging.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit throttles outgoing requests. A non-positive limit disables throttling.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), max(1, burst))
	}
}

// WithSalesCacheTTL keeps successful sales responses for ttl. Zero disables caching.
func WithSalesCacheTTL(ttl time.Duration) Option {
	return func(c *Client) {
		if ttl <= 0 {
			c.salesCache = nil
			return
		}
		c.salesCache = cache.New(ttl, 2*ttl)
	}
}

// WithLogger sets the logger used for request and decode diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("parse api base URL: unsupported scheme %q", parsed.Scheme)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		validate:   validator.New(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	next := hc.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	hc.Transport = NewLoggingRoundTripper(next, c.logger)
	c.httpClient = &hc

	return c, nil
}

// FetchDeals returns one page of deals. Pages are 1-based; non-positive
// page or size fall back to 1 and DefaultPageSize.
func (c *Client) FetchDeals(ctx context.Context, page, size int) (DealsPage, error) {
	if c == nil {
		return DealsPage{}, errors.New("deals client not configured")
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("size", strconv.Itoa(size))

	var env envelope[dealsData]
	if err := c.getJSON(ctx, dealsEndpoint, params, &env); err != nil {
		return DealsPage{}, err
	}
	if !env.Success {
		return DealsPage{}, unsuccessful(dealsEndpoint, env.Message)
	}

	deals := make([]types.Deal, 0, len(env.Data.Result))
	for i, rec := range env.Data.Result {
		rec.normalize()
		if err := c.validate.Struct(rec); err != nil {
			c.logger.WarnContext(ctx, "skip invalid deal",
				slog.Int("index", i),
				slog.String("uuid", string(rec.UUID)),
				tint.Err(err),
			)
			continue
		}
		deals = append(deals, rec.toDeal())
	}

	return DealsPage{
		Deals:      deals,
		Pagination: env.Data.Meta.toPagination(page, size, len(deals)),
	}, nil
}

// FetchSales returns the recorded sales for a display id.
func (c *Client) FetchSales(ctx context.Context, id string) ([]types.Sale, error) {
	if c == nil {
		return nil, errors.New("sales client not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return []types.Sale{}, nil
	}

	if c.salesCache != nil {
		if cached, ok := c.salesCache.Get(id); ok {
			return append([]types.Sale(nil), cached.([]types.Sale)...), nil
		}
	}

	params := url.Values{}
	params.Set("id", id)

	var env envelope[salesData]
	if err := c.getJSON(ctx, salesEndpoint, params, &env); err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, unsuccessful(salesEndpoint, env.Message)
	}

	sales := make([]types.Sale, 0, len(env.Data.Result))
	for i, rec := range env.Data.Result {
		if err := c.validate.Struct(rec); err != nil {
			c.logger.WarnContext(ctx, "skip invalid sale",
				slog.String("id", id),
				slog.Int("index", i),
				tint.Err(err),
			)
			continue
		}
		sales = append(sales, rec.toSale())
	}

	if c.salesCache != nil {
		c.salesCache.SetDefault(id, append([]types.Sale(nil), sales...))
	}
	return sales, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("wait for %s rate limit: %w", endpoint, err)
		}
	}

	u := c.baseURL.JoinPath(endpoint)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &HTTPStatusError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Body:     summarizeHTTPBody(body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

func unsuccessful(endpoint, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return fmt.Errorf("%s: %w", endpoint, ErrUnsuccessful)
	}
	return fmt.Errorf("%s: %w: %s", endpoint, ErrUnsuccessful, message)
}

func summarizeHTTPBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "empty response body"
	}
	if len(trimmed) > 120 {
		return trimmed[:117] + "..."
	}
	return trimmed
}
