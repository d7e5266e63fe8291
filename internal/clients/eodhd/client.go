// Package eodhd provides a client for the EODHD API
package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// flexFloat64 handles JSON values that may be either a number or a string.
// The real-time endpoint returns "NA" for symbols with no current quote.
type flexFloat64 float64

func (f *flexFloat64) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = flexFloat64(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" || s == "NA" || s == "N/A" {
			*f = 0
			return nil
		}
		num, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat64(num)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %s into float64", string(data))
}

// Client implements the MarketDataClient interface
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new EODHD client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("EODHD API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// realTimeResponse represents the API response for real-time quotes
type realTimeResponse struct {
	Code          string      `json:"code"`
	Close         flexFloat64 `json:"close"`
	PreviousClose flexFloat64 `json:"previousClose"`
}

// searchResult represents one entry of the symbol search response
type searchResult struct {
	Code     string `json:"Code"`
	Exchange string `json:"Exchange"`
	Name     string `json:"Name"`
	Type     string `json:"Type"`
}

// GetRealTimeQuote retrieves the latest price for a symbol.
func (c *Client) GetRealTimeQuote(ctx context.Context, symbol string) (float64, error) {
	var quote realTimeResponse
	if err := c.get(ctx, fmt.Sprintf("/real-time/%s", symbol), nil, &quote); err != nil {
		return 0, err
	}

	price := float64(quote.Close)
	if price == 0 {
		price = float64(quote.PreviousClose)
	}
	if price == 0 {
		return 0, fmt.Errorf("no quote available for %s", symbol)
	}
	return price, nil
}

// SearchSymbol retrieves the instrument classification for a symbol.
// Returns the provider's raw type string ("Common Stock", "ETF", "FUND", ...).
func (c *Client) SearchSymbol(ctx context.Context, symbol string) (*models.TickerInfo, error) {
	params := url.Values{}
	params.Set("limit", "1")

	var results []searchResult
	if err := c.get(ctx, fmt.Sprintf("/search/%s", url.PathEscape(symbol)), params, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("symbol %s not found", symbol)
	}

	return &models.TickerInfo{
		Symbol: results[0].Code,
		Type:   results[0].Type,
		Name:   results[0].Name,
	}, nil
}

// Lookup retrieves the current price and classification for a symbol.
// A quote failure is an error; a classification failure only leaves Type
// empty, since the price is the part enrichment cannot do without.
func (c *Client) Lookup(ctx context.Context, symbol string) (*models.TickerInfo, error) {
	price, err := c.GetRealTimeQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	info := &models.TickerInfo{Symbol: symbol, Price: price}

	if search, err := c.SearchSymbol(ctx, symbol); err == nil {
		info.Type = search.Type
		info.Name = search.Name
	} else {
		c.logger.Debug().Err(err).Str("symbol", symbol).Msg("Symbol classification unavailable")
	}

	return info, nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
