// Package index talks to the position index service: a paginated HTTP
// API listing the positions an owner holds.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"liquidityDesk/internal/model"
)

const defaultPageSize = 100

// Pagination describes one page of an index listing.
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// Page is one page of position records.
type Page struct {
	Data       []model.PositionRecord `json:"data"`
	Pagination Pagination             `json:"pagination"`
}

// Client fetches position records over HTTP.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	maxRetries   int
	retryBackoff time.Duration
	logger       *zap.Logger
}

// NewClient builds an index client. Timeouts belong to the injected
// http.Client.
func NewClient(baseURL string, httpClient *http.Client, maxRetries int, retryBackoff time.Duration, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:      baseURL,
		httpClient:   httpClient,
		maxRetries:   maxRetries,
		retryBackoff: retryBackoff,
		logger:       logger,
	}
}

// FetchPositions returns one page of an owner's positions. state filters
// by position state (e.g. "open"); empty means all.
func (c *Client) FetchPositions(ctx context.Context, owner common.Address, page, pageSize int, state string) (Page, error) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	query := url.Values{}
	query.Set("owner", owner.Hex())
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	if state != "" {
		query.Set("state", state)
	}
	endpoint := c.baseURL + "/positions?" + query.Encode()

	var result Page
	err := withRetry(ctx, c.maxRetries, c.retryBackoff, func(ctx context.Context) error {
		result = Page{}
		err := c.getJSON(ctx, endpoint, &result)
		if err != nil {
			c.logger.Warn("fetch positions failed", zap.Error(err), zap.Int("page", page))
		}
		return err
	})
	if err != nil {
		return Page{}, err
	}
	return result, nil
}

// FindPosition walks the owner's pages until it finds the position id.
func (c *Client) FindPosition(ctx context.Context, owner common.Address, id uint64) (model.PositionRecord, error) {
	for page := 1; ; page++ {
		result, err := c.FetchPositions(ctx, owner, page, defaultPageSize, "")
		if err != nil {
			return model.PositionRecord{}, err
		}
		for _, record := range result.Data {
			if record.ID == id {
				return record, nil
			}
		}
		// Servers that echo page_size 0 would keep the walk alive forever.
		pageSize := result.Pagination.PageSize
		if pageSize <= 0 {
			pageSize = len(result.Data)
		}
		if len(result.Data) == 0 || page*pageSize >= result.Pagination.Total {
			break
		}
	}
	return model.PositionRecord{}, fmt.Errorf("%w: id %d for owner %s", model.ErrPositionNotFound, id, owner.Hex())
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("index responded %d: %s", resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode index response: %w", err)
	}
	return nil
}

func withRetry(ctx context.Context, maxRetries int, baseDelay time.Duration, fn func(context.Context) error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if baseDelay <= 0 {
		baseDelay = 100 * time.Millisecond
	}

	delay := baseDelay
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if attempt >= maxRetries {
			return err
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
	}
}
