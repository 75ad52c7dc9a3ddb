package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"omdb/finder/internal/config"
	"omdb/finder/internal/domain"
	"omdb/finder/internal/metrics"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// CatalogClient talks to the catalog API. Both calls make exactly one request.
type CatalogClient interface {
	Search(ctx context.Context, query string, page int) (*domain.SearchPage, error)
	GetDetails(ctx context.Context, id string) (*domain.CatalogItemDetails, error)
}

// UpstreamError is returned when the catalog answers with Response "False".
// Message is whatever the catalog put in its Error field, possibly empty.
type UpstreamError struct {
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return "catalog returned an unsuccessful response"
	}
	return e.Message
}

// UpstreamMessage returns the catalog's own error message if err carries one.
func UpstreamMessage(err error) (string, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.Message, true
	}
	return "", false
}

type envelope struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
}

type searchResponse struct {
	envelope
	Search       []domain.CatalogItemSummary `json:"Search"`
	TotalResults string                      `json:"totalResults"`
}

type detailsResponse struct {
	envelope
	domain.CatalogItemDetails
}

type omdbClient struct {
	baseURL    string
	apiKey     string
	httpClient *resty.Client
}

func NewOMDbClient(cfg config.OMDbConfig) CatalogClient {
	client := resty.New().
		SetRetryCount(0).
		SetHeader("Accept", "application/json")

	if cfg.Timeout > 0 {
		client.SetTimeout(time.Duration(cfg.Timeout) * time.Second)
	}

	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
		log.Infof("🔗 Using proxy: %s", cfg.Proxy)
	}

	if cfg.APIKey == "" {
		log.Warn("⚠️ No catalog API key configured, requests will be rejected upstream")
	}

	return &omdbClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: client,
	}
}

func (c *omdbClient) Search(ctx context.Context, query string, page int) (*domain.SearchPage, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("s", query)
	params.Set("page", strconv.Itoa(page))

	var resp searchResponse
	if err := c.fetchJSON(ctx, "search", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to search %q page %d: %w", query, page, err)
	}

	if resp.Response != "True" {
		return nil, &UpstreamError{Message: resp.Error}
	}

	items := resp.Search
	if items == nil {
		items = []domain.CatalogItemSummary{}
	}

	total, err := strconv.Atoi(strings.TrimSpace(resp.TotalResults))
	if err != nil {
		total = 0
	}

	log.Debugf("Search %q page %d returned %d items of %d", query, page, len(items), total)
	return &domain.SearchPage{Items: items, TotalResults: total}, nil
}

func (c *omdbClient) GetDetails(ctx context.Context, id string) (*domain.CatalogItemDetails, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("i", id)
	params.Set("plot", "full")

	var resp detailsResponse
	if err := c.fetchJSON(ctx, "details", params, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch details for %s: %w", id, err)
	}

	if resp.Response != "True" {
		return nil, &UpstreamError{Message: resp.Error}
	}

	details := resp.CatalogItemDetails
	log.Debugf("Fetched details for %s (%s)", id, details.Title)
	return &details, nil
}

// fetchJSON issues one GET and decodes the body into out. The catalog sends a
// JSON envelope even on 4xx (e.g. an invalid key), so the body is decoded
// before the status is considered.
func (c *omdbClient) fetchJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	entry := log.WithFields(log.Fields{
		"request_id": uuid.NewString(),
		"endpoint":   endpoint,
	})

	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(c.baseURL + "/?" + params.Encode())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "transport_error").Inc()
		if ctx.Err() != nil {
			return fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		entry.Debugf("Request failed: %v", err)
		return fmt.Errorf("failed to fetch URL: %w", err)
	}

	if decodeErr := json.Unmarshal([]byte(resp.String()), out); decodeErr != nil {
		if resp.IsError() {
			metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "http_error").Inc()
			return fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "decode_error").Inc()
		return fmt.Errorf("failed to decode response: %w", decodeErr)
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "ok").Inc()
	entry.Debugf("Request completed with status %d in %v", resp.StatusCode(), time.Since(start).Round(time.Millisecond))
	return nil
}
