// Package client talks to the company-prep HTTP API and drives the lookup flow
// used by the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/company-prep/internal/types"
)

// DefaultTimeout bounds a single API call. Research can take a while.
const DefaultTimeout = 120 * time.Second

// ErrNotFound is returned when the API has no matching company
var ErrNotFound = errors.New("company not found")

// APIError is a non-success response from the API
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s: %s", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client is a typed client for the company-prep API
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *QueryCache
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache enables caching of search results and recent searches
func WithCache(qc *QueryCache) Option {
	return func(c *Client) { c.cache = qc }
}

// New creates a client for the API at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q", baseURL)
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Search looks a company up by free-text query. It always reaches the server, which
// records every search; the result refreshes the cache entry Get reads.
func (c *Client) Search(ctx context.Context, query string) (*types.Company, error) {
	var company types.Company
	status, err := c.do(ctx, http.MethodGet, "/api/companies/search?q="+url.QueryEscape(query), nil, &company)
	if status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.SetCompany(query, &company)
	}
	return &company, nil
}

// Research asks the server to research name. created reports whether a new record was stored.
func (c *Client) Research(ctx context.Context, name string) (company *types.Company, created bool, err error) {
	var out types.Company
	status, err := c.do(ctx, http.MethodPost, "/api/companies/research", types.ResearchRequest{Name: name}, &out)
	if err != nil {
		return nil, false, err
	}

	if c.cache != nil {
		c.cache.InvalidateSearch(name)
		c.cache.InvalidateRecent()
	}
	return &out, status == http.StatusCreated, nil
}

// Get fetches a company by name without recording a search. A cached result for the
// same text is returned without a request.
func (c *Client) Get(ctx context.Context, name string) (*types.Company, error) {
	if c.cache != nil {
		if company, ok := c.cache.Company(name); ok {
			return company, nil
		}
	}

	var company types.Company
	status, err := c.do(ctx, http.MethodGet, "/api/companies/"+url.PathEscape(name), nil, &company)
	if status == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.SetCompany(name, &company)
	}
	return &company, nil
}

// List returns the most recently updated companies
func (c *Client) List(ctx context.Context, limit int) ([]types.Company, error) {
	var out types.CompanyList
	if _, err := c.do(ctx, http.MethodGet, "/api/companies?limit="+strconv.Itoa(limit), nil, &out); err != nil {
		return nil, err
	}
	return out.Companies, nil
}

// RecentSearches returns up to limit distinct recent queries, newest first
func (c *Client) RecentSearches(ctx context.Context, limit int) ([]string, error) {
	if c.cache != nil {
		if searches, ok := c.cache.Recent(limit); ok {
			return searches, nil
		}
	}

	var out types.RecentSearches
	if _, err := c.do(ctx, http.MethodGet, "/api/searches/recent?limit="+strconv.Itoa(limit), nil, &out); err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.cache.SetRecent(limit, out.Searches)
	}
	return out.Searches, nil
}

// Health checks that the server and its database are reachable
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil, nil)
	return err
}

// do sends a request and decodes a 2xx body into out. The status is returned
// whenever a response arrived, even alongside an error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, decodeAPIError(resp)
	}
	if out == nil {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp.StatusCode, nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Message != "" {
		apiErr.Message = body.Message
		apiErr.Detail = body.Error
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
