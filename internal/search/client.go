// Package search provides the HTTP client for the remote employee search
// backend. The client issues a single POST per query and maps failures onto
// the pipeline error taxonomy; retry and fallback policy belong to the
// pipeline, not here.
package search

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	jsoniter "github.com/json-iterator/go"

	"github.com/anandv/hrms-dashboard/internal/errkind"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// DefaultTimeout is the search stage budget.
	DefaultTimeout = 15 * time.Second
	// maxDiagnosticBytes bounds how much of an error body is kept.
	maxDiagnosticBytes = 4096
)

// Client talks to the search backend.
type Client struct {
	http       *http.Client
	baseURL    string
	searchPath string
	rankPath   string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithPaths overrides the search and ranked-search paths.
func WithPaths(searchPath, rankPath string) Option {
	return func(c *Client) {
		c.searchPath = searchPath
		c.rankPath = rankPath
	}
}

// New creates a search client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: DefaultTimeout},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		searchPath: "/search",
		rankPath:   "/search-rank",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchRequest struct {
	Query string `json:"query"`
}

// Search posts the query to the search endpoint and returns the decoded body.
func (c *Client) Search(ctx context.Context, query string) (map[string]any, error) {
	return c.post(ctx, c.baseURL+c.searchPath, query)
}

// SearchRank posts the query to the ranked-search endpoint.
func (c *Client) SearchRank(ctx context.Context, query string) (map[string]any, error) {
	return c.post(ctx, c.baseURL+c.rankPath, query)
}

func (c *Client) post(ctx context.Context, url, query string) (map[string]any, error) {
	payload, err := json.Marshal(searchRequest{Query: query})
	if err != nil {
		return nil, errkind.Parse("search", "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errkind.Transport("search", "failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, errkind.Timeout("search", "search exceeded budget", err)
		}
		return nil, errkind.Transport("search", "search request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		diag := extractDiagnostic(resp)
		return nil, errkind.Backend("search",
			fmt.Sprintf("unexpected status %s: %s", resp.Status, diag), nil)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errkind.Parse("search", "response body is not JSON", err)
	}
	return body, nil
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}

// extractDiagnostic pulls readable text from an error response body.
// Backends behind proxies often return HTML error pages; those are reduced
// to their visible text so log lines stay useful.
func extractDiagnostic(resp *http.Response) string {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxDiagnosticBytes))
	if err != nil || len(raw) == 0 {
		return "(no body)"
	}

	body := string(raw)
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") ||
		strings.HasPrefix(strings.TrimSpace(body), "<") {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(body)); err == nil {
			if text := strings.TrimSpace(doc.Text()); text != "" {
				body = text
			}
		}
	}
	return strings.Join(strings.Fields(body), " ")
}
