package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/citecheck/citecheck/internal/cache"
	"github.com/citecheck/citecheck/internal/model"
	"github.com/citecheck/citecheck/internal/util"
	"github.com/citecheck/citecheck/internal/worker"
)

// Candidate is one case record returned by the search endpoint
type Candidate struct {
	CaseName     string   `json:"caseName"`
	Citations    []string `json:"citation"`
	Court        string   `json:"court"`
	DateFiled    string   `json:"dateFiled"`
	DocketNumber string   `json:"docketNumber"`
	AbsoluteURL  string   `json:"absolute_url"`
}

// SearchResult is the decoded body of a search response
type SearchResult struct {
	Count   int         `json:"count"`
	Results []Candidate `json:"results"`
}

// Searcher is the query surface the verification engine depends on
type Searcher interface {
	SearchCitation(ctx context.Context, citation, caseName string) (*SearchResult, error)
	SearchFreeText(ctx context.Context, query string) (*SearchResult, error)
}

// Client queries the case-law search API. All requests go through the
// shared limiter first, and successful response bodies are cached by
// request URL so repeated lookups of the same citation stay local.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	limiter    *worker.Limiter
	store      cache.Cache
	cacheTTL   time.Duration
}

// NewClient creates a search client from configuration
func NewClient(cfg *model.Config, limiter *worker.Limiter, store cache.Cache) *Client {
	proxyFunc := util.NewProxyFunc(cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.HTTP.Timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc,
			},
		},
		baseURL:   strings.TrimRight(cfg.API.BaseURL, "/"),
		token:     cfg.API.Token,
		userAgent: cfg.HTTP.UserAgent,
		limiter:   limiter,
		store:     store,
		cacheTTL:  cfg.Cache.TTL,
	}
}

// SearchCitation runs a structured lookup for a volume-reporter-page
// citation, optionally narrowed by a case name term.
func (c *Client) SearchCitation(ctx context.Context, citation, caseName string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("type", "o")
	params.Set("citation", citation)
	if caseName != "" {
		params.Set("case_name", caseName)
	}
	return c.search(ctx, params)
}

// SearchFreeText runs a general full-text query
func (c *Client) SearchFreeText(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("type", "o")
	params.Set("q", query)
	return c.search(ctx, params)
}

func (c *Client) search(ctx context.Context, params url.Values) (*SearchResult, error) {
	requestURL := c.baseURL + "/search/?" + params.Encode()

	body, err := c.fetch(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return &result, nil
}

// fetch returns the response body for requestURL, consulting the cache
// before touching the network. Only 2xx bodies are cached.
func (c *Client) fetch(ctx context.Context, requestURL string) ([]byte, error) {
	var cacheKey string
	if c.store != nil {
		cacheKey = cache.Key(requestURL)
		if body, found := c.store.Get(cacheKey); found {
			return body, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	if c.store != nil {
		_ = c.store.Set(cacheKey, body, c.cacheTTL)
	}

	return body, nil
}
