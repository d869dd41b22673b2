// Package sanity reads published documents from the Sanity content API and
// verifies its webhook signatures.
package sanity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotConfigured is returned by NewClient when the project id is missing.
var ErrNotConfigured = errors.New("sanity: project id not configured")

type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	UseCDN     bool
	// Token is optional; published content is public.
	Token string
	// BaseURL overrides the API host, used by tests.
	BaseURL string
}

// Client runs GROQ queries against one dataset.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewClient builds a query client. It never returns a half-configured client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ProjectID == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Dataset == "" {
		cfg.Dataset = "production"
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "2024-01-01"
	}

	base := cfg.BaseURL
	if base == "" {
		host := "api.sanity.io"
		if cfg.UseCDN && cfg.Token == "" {
			host = "apicdn.sanity.io"
		}
		base = fmt.Sprintf("https://%s.%s", cfg.ProjectID, host)
	}

	return &Client{
		endpoint: fmt.Sprintf("%s/v%s/data/query/%s", base, cfg.APIVersion, url.PathEscape(cfg.Dataset)),
		token:    cfg.Token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

type queryResponse struct {
	Result json.RawMessage `json:"result"`
}

type errorResponse struct {
	Error struct {
		Description string `json:"description"`
	} `json:"error"`
}

// Query runs a GROQ query and decodes its result into out. Params are JSON
// encoded as the API expects ($slug → "\"tour-manager\"").
func (c *Client) Query(ctx context.Context, query string, params map[string]interface{}, out interface{}) error {
	values := url.Values{}
	values.Set("query", query)
	values.Set("perspective", "published")
	for name, v := range params {
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("sanity: encode param %s: %w", name, err)
		}
		values.Set("$"+name, string(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+values.Encode(), nil)
	if err != nil {
		return fmt.Errorf("sanity: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sanity: query failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fmt.Errorf("sanity: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		_ = json.Unmarshal(body, &apiErr)
		return fmt.Errorf("sanity: query returned %d: %s", resp.StatusCode, apiErr.Error.Description)
	}

	var qr queryResponse
	if err := json.Unmarshal(body, &qr); err != nil {
		return fmt.Errorf("sanity: decode response: %w", err)
	}
	if len(qr.Result) == 0 || string(qr.Result) == "null" {
		return ErrNoResult
	}
	if err := json.Unmarshal(qr.Result, out); err != nil {
		return fmt.Errorf("sanity: decode result: %w", err)
	}
	return nil
}

// ErrNoResult is returned by Query when the result is null.
var ErrNoResult = errors.New("sanity: query returned no result")
