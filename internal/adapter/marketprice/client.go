package marketprice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/aurumdent/goldbuy/internal/domain/model"
)

// ErrNoQuote indicates the feed has no published quote for today yet.
var ErrNoQuote = errors.New("no quote published")

// TooManyRequestsError represents rate limiting signal from the feed.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// Client exposes operations to query the market price feed.
type Client interface {
	Fetch(ctx context.Context) (*model.PriceTable, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors JSON payload from the market feed.
type response struct {
	Date          string `json:"date"`
	Porcelain     int64  `json:"porcelain"`
	InlaySmall    int64  `json:"inlay_small"`
	Inlay         int64  `json:"inlay"`
	CrownPlatinum int64  `json:"crown_platinum"`
	CrownStandard int64  `json:"crown_standard"`
	CrownAlloy    int64  `json:"crown_alloy"`
}

// NewHTTPClient creates HTTP feed client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("feed url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Fetch queries the feed for the current per-item quotes.
func (c *HTTPClient) Fetch(ctx context.Context) (*model.PriceTable, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/api/prices/today")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var data response
		if err := json.Unmarshal(body, &data); err != nil {
			return nil, err
		}
		table := &model.PriceTable{
			Porcelain:     data.Porcelain,
			InlaySmall:    data.InlaySmall,
			Inlay:         data.Inlay,
			CrownPlatinum: data.CrownPlatinum,
			CrownStandard: data.CrownStandard,
			CrownAlloy:    data.CrownAlloy,
		}
		if data.Date != "" {
			if day, err := time.Parse("2006-01-02", data.Date); err == nil {
				table.Date = day
			}
		}
		return table, nil
	case http.StatusNoContent:
		return nil, ErrNoQuote
	case http.StatusTooManyRequests:
		retryAfter := parseRetryAfter(resp.Header.Get("Retry-After"))
		return nil, TooManyRequestsError{RetryAfter: retryAfter}
	default:
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("feed request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(body)))
		return nil, fmt.Errorf("feed error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
