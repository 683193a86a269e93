package reed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultBaseURL = "https://www.reed.co.uk/api/1.0"
	userAgent      = "Hirely/1.0"
)

// ErrNotConfigured is returned when no API key was supplied.
var ErrNotConfigured = fmt.Errorf("reed: api key is required")

// NewClient instantiates a Reed API client
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

// Search queries /search and decodes the result set.
func (c *Client) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	body, err := c.SearchRaw(ctx, params)
	if err != nil {
		return nil, err
	}

	var out SearchResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("reed: decode search response: %w", err)
	}
	return &out, nil
}

// SearchRaw queries /search and returns the upstream body untouched.
func (c *Client) SearchRaw(ctx context.Context, params SearchParams) ([]byte, error) {
	return c.get(ctx, "/search", searchValues(params))
}

// GetJob fetches /jobs/{id} and returns the upstream body untouched.
func (c *Client) GetJob(ctx context.Context, jobID string) ([]byte, error) {
	if jobID == "" {
		return nil, fmt.Errorf("reed: job id is required")
	}
	return c.get(ctx, "/jobs/"+url.PathEscape(jobID), nil)
}

// GetJobDetail fetches /jobs/{id} and decodes it.
func (c *Client) GetJobDetail(ctx context.Context, jobID string) (*JobDetail, error) {
	body, err := c.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	var out JobDetail
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("reed: decode job response: %w", err)
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, values url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(values) > 0 {
		u += "?" + values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("reed: build request: %w", err)
	}
	// Reed authenticates with the key as the basic-auth user and an empty password.
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reed: request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reed: read body: %w", err)
	}
	return body, nil
}

func searchValues(p SearchParams) url.Values {
	values := url.Values{}
	if p.Keywords != "" {
		values.Set("keywords", p.Keywords)
	}
	if p.Location != "" {
		values.Set("locationName", p.Location)
	}
	if p.Category != "" {
		values.Set("categoryName", p.Category)
	}
	if p.EmployerID != "" {
		values.Set("employerId", p.EmployerID)
	}
	if p.DistanceMile > 0 {
		values.Set("distanceFromLocation", strconv.Itoa(p.DistanceMile))
	}
	values.Set("resultsToTake", strconv.Itoa(p.Take))
	values.Set("resultsToSkip", strconv.Itoa(p.Skip))
	return values
}
