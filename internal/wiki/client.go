// Package wiki talks to the Wikipedia search and summary APIs. The first
// search hit is taken as the canonical article; there is no disambiguation.
package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/ppiankov/veriwiki/internal/model"
	"github.com/ppiankov/veriwiki/internal/util"
)

const maxBodyBytes = 4_000_000

// Client resolves free-text queries to article summaries
type Client struct {
	httpClient *http.Client
	apiURL     string
	restURL    string
	userAgent  string
	throttle   *rate.Limiter
	robots     *util.RobotsChecker // nil when robots checking is disabled
}

// NewClient creates a Wikipedia client from configuration
func NewClient(cfg model.WikipediaConfig, httpCfg model.HTTPConfig) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	var robots *util.RobotsChecker
	if cfg.CheckRobots {
		robots = util.NewRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   httpCfg.Timeout,
			Transport: util.NewTransport(httpCfg.HTTPProxy, httpCfg.HTTPSProxy),
		},
		apiURL:    cfg.APIURL,
		restURL:   cfg.RESTURL,
		userAgent: httpCfg.UserAgent,
		throttle:  rate.NewLimiter(rate.Limit(rps), 1),
		robots:    robots,
	}
}

type searchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

type summaryResponse struct {
	Title       string `json:"title"`
	Extract     string `json:"extract"`
	ExtractHTML string `json:"extract_html"`
}

// Search resolves a query to the first-ranked article title.
// The second return value is false when the search yields no results.
func (c *Client) Search(ctx context.Context, query string) (string, bool, error) {
	u := fmt.Sprintf("%s?action=query&list=search&srsearch=%s&format=json&origin=*",
		c.apiURL, url.QueryEscape(query))

	body, err := c.get(ctx, u)
	if err != nil {
		return "", false, fmt.Errorf("search: %w", err)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", false, fmt.Errorf("decode search response: %w", err)
	}

	if len(result.Query.Search) == 0 {
		return "", false, nil
	}

	return result.Query.Search[0].Title, true, nil
}

// Summary fetches the plain-text extract for an article title. When the
// REST API returns only HTML, the extract is derived by stripping tags.
func (c *Client) Summary(ctx context.Context, title string) (*model.ArticleSummary, error) {
	u := fmt.Sprintf("%s/page/summary/%s", c.restURL, url.PathEscape(title))

	if c.robots != nil && !c.robots.IsAllowed(ctx, u) {
		return nil, fmt.Errorf("summary fetch disallowed by robots.txt: %s", u)
	}

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}

	var result summaryResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode summary response: %w", err)
	}

	extract := result.Extract
	if extract == "" && result.ExtractHTML != "" {
		extract = VisibleText(result.ExtractHTML)
	}

	resolved := result.Title
	if resolved == "" {
		resolved = title
	}

	return &model.ArticleSummary{Title: resolved, Extract: extract}, nil
}

// get performs a throttled GET with one retry on transport errors.
// HTTP-level failures (non-2xx) are never retried.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.throttle.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := c.getOnce(ctx, rawURL)
	if err == nil {
		return body, nil
	}
	if _, ok := err.(*statusError); ok {
		return nil, err
	}

	if waitErr := c.throttle.Wait(ctx); waitErr != nil {
		return nil, waitErr
	}
	return c.getOnce(ctx, rawURL)
}

func (c *Client) getOnce(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode, status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return body, nil
}

type statusError struct {
	code   int
	status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status: %s", e.status)
}
