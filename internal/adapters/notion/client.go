package notion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/emiliopalmerini/runlog/internal/domain"
)

const (
	DefaultBaseURL = "https://api.notion.com"
	DefaultVersion = "2022-06-28"
)

// Config holds Notion API settings.
type Config struct {
	APIKey  string
	BaseURL string
	Version string
	Timeout time.Duration
}

// Client creates database rows through the Notion pages API.
type Client struct {
	http *resty.Client
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	version := cfg.Version
	if version == "" {
		version = DefaultVersion
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("Notion-Version", version).
		SetAuthToken(cfg.APIKey).
		SetRetryCount(0)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Client{http: client}
}

// CreateRow submits props as a new page in the database. Failures wrap
// domain.ErrUpload and are not retried.
func (c *Client) CreateRow(ctx context.Context, databaseID string, props domain.Properties) (*domain.Page, error) {
	body, err := BuildRequest(databaseID, props)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}

	var page pageResponse
	var apiErr errorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&page).
		SetError(&apiErr).
		Post("/v1/pages")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpload, err)
	}

	if resp.IsError() {
		if apiErr.Message != "" {
			return nil, fmt.Errorf("%w: %s (%d %s)", domain.ErrUpload, apiErr.Message, resp.StatusCode(), apiErr.Code)
		}
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrUpload, resp.StatusCode())
	}

	return &domain.Page{ID: page.ID, URL: page.URL}, nil
}
