// Package scloud talks to the upstream file-hosting site over plain HTTP.
//
// All requests share one cookie jar for the lifetime of the process. The
// token request uses a second http.Client on the same jar and transport that
// does not follow redirects, because the token is carried by the redirect
// target itself.
package scloud

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"

	"github.com/m-mizutani/scout/pkg/domain/model"
	"github.com/m-mizutani/scout/pkg/domain/types"
	"github.com/m-mizutani/scout/pkg/utils/logging"
)

const (
	DefaultBaseURL   = "https://new4.scloud.ninja"
	DefaultDLBaseURL = "https://new3.scloud.ninja"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	DefaultTimeout   = 30 * time.Second

	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	// maxBodySize caps how much of a single page is read into memory
	maxBodySize = 16 << 20
)

var tokenPattern = regexp.MustCompile(`token=([a-f0-9-]+)`)

// config holds internal client configuration
type config struct {
	baseURL   string
	dlBaseURL string
	userAgent string
	timeout   time.Duration
	rps       float64
	burst     int
	transport http.RoundTripper
}

// Option is a functional option for Client configuration
type Option func(*config)

// WithBaseURL sets the host serving search, token and detail pages
func WithBaseURL(baseURL string) Option {
	return func(c *config) {
		c.baseURL = baseURL
	}
}

// WithDownloadBaseURL sets the host of the "dl" link form
func WithDownloadBaseURL(baseURL string) Option {
	return func(c *config) {
		c.dlBaseURL = baseURL
	}
}

// WithUserAgent sets the User-Agent header of every outbound request
func WithUserAgent(ua string) Option {
	return func(c *config) {
		c.userAgent = ua
	}
}

// WithTimeout bounds every single outbound call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithRateLimit throttles outbound calls. rps <= 0 disables throttling.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *config) {
		c.rps = rps
		c.burst = burst
	}
}

// WithTransport replaces the underlying round tripper
func WithTransport(t http.RoundTripper) Option {
	return func(c *config) {
		c.transport = t
	}
}

// Client fetches pages from the upstream site. It is safe for concurrent use.
type Client struct {
	baseURL   string
	dlBaseURL string
	userAgent string

	httpClient  *http.Client
	tokenClient *http.Client
	limiter     *rate.Limiter
}

// New creates a new upstream client
func New(opts ...Option) (*Client, error) {
	cfg := &config{
		baseURL:   DefaultBaseURL,
		dlBaseURL: DefaultDLBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	for _, u := range []string{cfg.baseURL, cfg.dlBaseURL} {
		parsed, err := url.Parse(u)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			return nil, goerr.New("invalid upstream base URL", goerr.V("url", u))
		}
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create cookie jar")
	}

	client := &Client{
		baseURL:   strings.TrimRight(cfg.baseURL, "/"),
		dlBaseURL: strings.TrimRight(cfg.dlBaseURL, "/"),
		userAgent: cfg.userAgent,
		httpClient: &http.Client{
			Jar:       jar,
			Timeout:   cfg.timeout,
			Transport: cfg.transport,
		},
		tokenClient: &http.Client{
			Jar:       jar,
			Timeout:   cfg.timeout,
			Transport: cfg.transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}

	if cfg.rps > 0 {
		burst := cfg.burst
		if burst < 1 {
			burst = 1
		}
		client.limiter = rate.NewLimiter(rate.Limit(cfg.rps), burst)
	}

	return client, nil
}

// BaseURL returns the host serving search, token and detail pages
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FileURL builds the canonical detail page URL for a link fragment
func (c *Client) FileURL(linkID string) string {
	return c.baseURL + "/file/" + linkID
}

// DownloadURL builds the "dl" form of the URL for a link fragment
func (c *Client) DownloadURL(linkID string) string {
	return c.dlBaseURL + "/dl/" + linkID
}

// SearchResultsHTML obtains a search token for query and returns the
// token-gated results page. Two outbound calls per invocation; the token is
// never reused.
func (c *Client) SearchResultsHTML(ctx context.Context, query string) (string, error) {
	token, err := c.requestToken(ctx, query)
	if err != nil {
		return "", err
	}

	logging.From(ctx).Debug("Obtained search token", "query", query, "token", token)

	html, err := c.get(ctx, c.baseURL+"/?token="+url.QueryEscape(token.Value), true)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch search results", goerr.V("query", query))
	}
	return html, nil
}

// QuerySearchHTML fetches the "/s?q=" search page
func (c *Client) QuerySearchHTML(ctx context.Context, query string) (string, error) {
	return c.get(ctx, c.baseURL+"/s?q="+url.QueryEscape(query), true)
}

// RootSearchHTML fetches the "/?q=" search page
func (c *Client) RootSearchHTML(ctx context.Context, query string) (string, error) {
	return c.get(ctx, c.baseURL+"/?q="+url.QueryEscape(query), false)
}

// PageHTML fetches an arbitrary page, typically a file detail page
func (c *Client) PageHTML(ctx context.Context, pageURL string) (string, error) {
	return c.get(ctx, pageURL, true)
}

func (c *Client) requestToken(ctx context.Context, query string) (model.SearchToken, error) {
	endpoint := c.baseURL + "/get-search-token"
	form := url.Values{"search_query": {query}}

	if err := c.wait(ctx); err != nil {
		return model.SearchToken{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return model.SearchToken{}, goerr.Wrap(err, "failed to create token request", goerr.V("url", endpoint))
	}
	req.Header.Set("Accept", acceptHTML)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", c.baseURL)
	req.Header.Set("Referer", c.baseURL+"/")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Sec-Fetch-Site", "same-origin")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Dest", "document")

	resp, err := c.tokenClient.Do(req)
	if err != nil {
		return model.SearchToken{}, goerr.Wrap(err, "token request failed",
			goerr.V("url", endpoint),
			goerr.T(types.ErrTagUpstream),
		)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	location := resp.Header.Get("Location")
	if location == "" {
		return model.SearchToken{}, goerr.New("token not found in response",
			goerr.V("url", endpoint),
			goerr.V("status", resp.StatusCode),
			goerr.T(types.ErrTagUpstream),
		)
	}

	token, ok := ExtractToken(location)
	if !ok {
		return model.SearchToken{}, goerr.New("failed to extract token",
			goerr.V("url", endpoint),
			goerr.V("status", resp.StatusCode),
			goerr.T(types.ErrTagUpstream),
		)
	}

	return token, nil
}

// ExtractToken pulls the search token out of a redirect target
func ExtractToken(location string) (model.SearchToken, bool) {
	m := tokenPattern.FindStringSubmatch(location)
	if len(m) < 2 {
		return model.SearchToken{}, false
	}
	return model.SearchToken{Value: m[1]}, true
}

func (c *Client) get(ctx context.Context, pageURL string, withReferer bool) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create request", goerr.V("url", pageURL))
	}
	req.Header.Set("Accept", acceptHTML)
	req.Header.Set("User-Agent", c.userAgent)
	if withReferer {
		req.Header.Set("Referer", c.baseURL+"/")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "request to upstream failed",
			goerr.V("url", pageURL),
			goerr.T(types.ErrTagUpstream),
		)
	}
	defer resp.Body.Close()

	logger := logging.From(ctx)
	logger.Debug("Upstream response",
		"url", pageURL,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	// error pages are still HTML; callers decide from their content
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("Upstream returned non-2xx status", "url", pageURL, "status", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", goerr.Wrap(err, "failed to read upstream response",
			goerr.V("url", pageURL),
			goerr.T(types.ErrTagUpstream),
		)
	}

	return string(body), nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return goerr.Wrap(err, "rate limiter wait aborted", goerr.T(types.ErrTagUpstream))
	}
	return nil
}
