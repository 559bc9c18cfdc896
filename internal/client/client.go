// Package client fetches the events listing and turns it into types.Event
// values.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"aoctui/internal/config"
	"aoctui/internal/errors"
	"aoctui/internal/log"
	"aoctui/pkg/types"

	"github.com/gobwas/glob"
)

// EventsPath is appended to the base URL to reach the listing.
const EventsPath = "/events"

const maxBodySize = 5 * 1024 * 1024

// Fetcher loads the events listing. A nil token sends no session cookie.
type Fetcher interface {
	FetchEvents(ctx context.Context, token *string) ([]types.Event, error)
}

// Client is the HTTP Fetcher for the events site.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	patterns   []string
	filter     []glob.Glob
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout bounds each request. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithFilter keeps only events whose label matches one of the globs.
func WithFilter(patterns ...string) Option {
	return func(c *Client) { c.patterns = append(c.patterns, patterns...) }
}

// New creates a Client for the site at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.NewConfigError("invalid base url", baseURL, errors.InvalidConfig, err)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		userAgent:  "aoctui",
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, p := range c.patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewConfigError("invalid filter", p, errors.InvalidConfig, err)
		}
		c.filter = append(c.filter, g)
	}

	return c, nil
}

// NewFromConfig builds a Client from the site and display settings.
func NewFromConfig(cfg *config.Config) (*Client, error) {
	return New(cfg.Site.BaseURL,
		WithUserAgent(cfg.Site.UserAgent),
		WithTimeout(time.Duration(cfg.Site.RequestTimeout)*time.Second),
		WithFilter(cfg.Display.Filter...),
	)
}

// EventsURL returns the absolute URL of the listing.
func (c *Client) EventsURL() string {
	return c.baseURL.JoinPath(EventsPath).String()
}

// FetchEvents performs one GET of the listing and parses it.
func (c *Client) FetchEvents(ctx context.Context, token *string) ([]types.Event, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.EventsURL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.NewFetchError(target, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if token != nil {
		req.Header.Set("Cookie", fmt.Sprintf("session=%s;", *token))
	}

	log.Debugf("GET %s (session cookie: %t)", target, token != nil)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewFetchError(target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewStatusError(target, resp.StatusCode)
	}

	events, err := ParseEvents(io.LimitReader(resp.Body, maxBodySize), c.baseURL)
	if err != nil {
		return nil, err
	}
	return c.apply(events), nil
}

func (c *Client) apply(events []types.Event) []types.Event {
	if len(c.filter) == 0 {
		return events
	}
	kept := make([]types.Event, 0, len(events))
	for _, e := range events {
		for _, g := range c.filter {
			if g.Match(e.Label) {
				kept = append(kept, e)
				break
			}
		}
	}
	return kept
}
