package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NavyNewsWatch/internal/search"
)

const (
	defaultEndpoint    = "https://serpapi.com/search.json"
	defaultEngine      = "google"
	defaultDomain      = "google.com"
	defaultCountry     = "ma"
	defaultRecency     = "qdr:d"
	defaultResultLimit = 100
)

// Config carries the fixed request parameters of the search API.
type Config struct {
	Endpoint     string
	APIKey       string
	Engine       string
	SearchDomain string
	Country      string
	Recency      string
	ResultLimit  int
}

// Client issues news searches against a SerpAPI-compatible endpoint.
type Client struct {
	cfg    Config
	client *http.Client
}

var _ search.Searcher = (*Client)(nil)

// NewClient applies defaults for every unset fixed parameter.
func NewClient(cfg Config, client *http.Client) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Engine == "" {
		cfg.Engine = defaultEngine
	}
	if cfg.SearchDomain == "" {
		cfg.SearchDomain = defaultDomain
	}
	if cfg.Country == "" {
		cfg.Country = defaultCountry
	}
	if cfg.Recency == "" {
		cfg.Recency = defaultRecency
	}
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = defaultResultLimit
	}
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{cfg: cfg, client: client}
}

// Search runs one news query restricted to the last 24 hours, biased to the
// configured country and the query's locale.
func (c *Client) Search(ctx context.Context, q search.Query) ([]search.RawResult, error) {
	params := url.Values{}
	params.Set("api_key", c.cfg.APIKey)
	params.Set("q", q.Keyword)
	params.Set("engine", c.cfg.Engine)
	params.Set("google_domain", c.cfg.SearchDomain)
	params.Set("gl", c.cfg.Country)
	params.Set("hl", q.Locale)
	params.Set("tbm", "nws")
	params.Set("tbs", c.cfg.Recency)
	params.Set("num", strconv.Itoa(c.cfg.ResultLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "NavyNewsWatch/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("search API returned %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var payload struct {
		NewsResults []search.RawResult `json:"news_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	return payload.NewsResults, nil
}
