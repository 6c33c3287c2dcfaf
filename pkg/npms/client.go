package npms

import (
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

	"github.com/danielhocevar/DissectingNPM/pkg/cache"
	"github.com/danielhocevar/DissectingNPM/pkg/httputil"
)

const (
	// DefaultBaseURL is the public npms.io API root.
	DefaultBaseURL = "https://api.npms.io/v2"

	// DefaultInterval is the minimum spacing between outbound requests.
	DefaultInterval = 250 * time.Millisecond

	// DefaultCacheTTL is how long cached responses stay fresh.
	DefaultCacheTTL = 24 * time.Hour

	httpTimeout = 10 * time.Second

	// Body excerpts in error messages are capped so a failing HTML error
	// page doesn't flood the log.
	maxErrBody = 512
)

var (
	// ErrNotFound is returned when the registry has no analysis for a package.
	ErrNotFound = errors.New("package not found")

	// ErrNetwork is returned for transport failures and non-200 responses.
	ErrNetwork = errors.New("network error")
)

// Config configures a Client. Zero values select the defaults above; a nil
// Cache disables caching.
type Config struct {
	BaseURL  string
	Cache    cache.Cache
	CacheTTL time.Duration
	Interval time.Duration
}

// Client fetches package documents and search pages from npms.io.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *httputil.Limiter

	docs    cache.Cache
	search  cache.Cache
	ttl     time.Duration
	refresh bool
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.Interval == 0 {
		cfg.Interval = DefaultInterval
	}
	return &Client{
		http:    &http.Client{Timeout: httpTimeout},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		limiter: httputil.NewLimiter(cfg.Interval),
		docs:    cache.Scoped(cfg.Cache, "package:"),
		search:  cache.Scoped(cfg.Cache, "search:"),
		ttl:     cfg.CacheTTL,
	}
}

// SetRefresh makes subsequent fetches bypass the cache (responses are still
// stored for later runs).
func (c *Client) SetRefresh(refresh bool) { c.refresh = refresh }

// FetchPackage retrieves the analysis document for one package. The name is
// percent-encoded, so scoped packages ("@babel/core") work unchanged.
func (c *Client) FetchPackage(ctx context.Context, name string) (*Document, error) {
	name = strings.TrimSpace(name)

	var doc Document
	u := c.baseURL + "/package/" + url.PathEscape(name)
	err := c.cached(ctx, c.docs, name, &doc, func() error {
		return c.get(ctx, u, &doc)
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s (GET %s)", ErrNotFound, name, u)
		}
		return nil, err
	}
	return &doc, nil
}

// Search retrieves one page of search results for query, starting at offset
// from with up to size entries.
func (c *Client) Search(ctx context.Context, query string, from, size int) (*SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("from", strconv.Itoa(from))
	q.Set("size", strconv.Itoa(size))
	u := c.baseURL + "/search?" + q.Encode()

	var res SearchResult
	key := fmt.Sprintf("%s:%d:%d", query, from, size)
	if err := c.cached(ctx, c.search, key, &res, func() error {
		return c.get(ctx, u, &res)
	}); err != nil {
		return nil, err
	}
	return &res, nil
}

// cached serves v from the given cache when possible, otherwise runs fetch
// (with retry) and stores the result.
func (c *Client) cached(ctx context.Context, store cache.Cache, key string, v any, fetch func() error) error {
	if !c.refresh {
		if data, ok, _ := store.Get(ctx, key); ok {
			if err := json.Unmarshal(data, v); err == nil {
				return nil
			}
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = store.Set(ctx, key, data, c.ttl)
	}
	return nil
}

// get performs one paced GET and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, url string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, url); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// checkStatus maps a non-200 response to an error carrying the request URL
// and a body excerpt, mirroring what the failure log needs to show.
func checkStatus(resp *http.Response, url string) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		return httputil.Retryable(fmt.Errorf("%w: GET %s: status %d: %s",
			ErrNetwork, url, resp.StatusCode, bodyExcerpt(resp.Body)))
	default:
		return fmt.Errorf("%w: GET %s: status %d: %s",
			ErrNetwork, url, resp.StatusCode, bodyExcerpt(resp.Body))
	}
}

func bodyExcerpt(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrBody))
	return strings.TrimSpace(string(data))
}
