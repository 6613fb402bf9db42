package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghtimeline/timeline/pkg/logger"
)

const (
	tracerName = "github.com/ghtimeline/timeline/svc/timeline"
	// defaultRetryHint applies when a throttled reply names no reset time.
	defaultRetryHint = time.Minute
)

// Fetcher returns the most recent public events, newest first.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Event, error)
}

// Client reads the public events feed through the GitHub REST API.
type Client struct {
	cfg     Config
	baseURL *url.URL
	http    *http.Client
	gh      *github.Client
	loc     *time.Location
	log     *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
	now     func() time.Time
}

type Option func(*Client)

// WithHTTPClient replaces the default client. Its timeout is left as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// NewClient validates cfg and returns a feed client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: api url %q", ErrInvalidConfig, cfg.APIURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if cfg.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrInvalidConfig)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "GitHub-Timeline-App"
	}
	loc := time.UTC
	if cfg.Timezone != "" {
		if loc, err = time.LoadLocation(cfg.Timezone); err != nil {
			return nil, fmt.Errorf("%w: timezone: %w", ErrInvalidConfig, err)
		}
	}

	c := &Client{
		cfg:     cfg,
		baseURL: u,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		loc:    loc,
		log:    slog.Default(),
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	gh := github.NewClient(c.http)
	if cfg.Token != "" {
		gh = gh.WithAuthToken(cfg.Token)
	}
	gh.BaseURL = c.baseURL
	gh.UserAgent = cfg.UserAgent
	c.gh = gh

	c.log = c.log.With(logger.Component("timeline"))
	return c, nil
}

// Fetch performs one request and returns at most Limit normalized events.
func (c *Client) Fetch(ctx context.Context) (events []Event, err error) {
	ctx, span := c.tracer.Start(ctx, "timeline.Fetch", trace.WithSpanKind(trace.SpanKindClient))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "feed fetch failed")
		}
		span.End()
	}()

	start := c.now()
	raws, resp, err := c.gh.Activity.ListEvents(ctx, &github.ListOptions{PerPage: c.cfg.Limit})
	if resp != nil {
		span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
	}
	if err != nil {
		fe := c.feedError(resp, err)
		c.log.WarnContext(ctx, "public event feed unavailable", logger.Error(fe))
		return nil, fe
	}

	if len(raws) > c.cfg.Limit {
		raws = raws[:c.cfg.Limit]
	}
	events = make([]Event, 0, len(raws))
	for _, r := range raws {
		if r == nil {
			continue
		}
		events = append(events, normalize(r, c.loc))
	}

	elapsed := c.now().Sub(start)
	c.metrics.observeFetch(elapsed.Seconds(), len(events))
	span.SetAttributes(attribute.Int("timeline.events", len(events)))
	c.log.DebugContext(ctx, "public events fetched",
		logger.Count("events", len(events)),
		logger.Duration(elapsed),
	)
	return events, nil
}

// feedError maps go-github failures onto FeedError. Primary and secondary
// rate limits carry the reset time GitHub reported.
func (c *Client) feedError(resp *github.Response, err error) *FeedError {
	var (
		rateErr  *github.RateLimitError
		abuseErr *github.AbuseRateLimitError
		apiErr   *github.ErrorResponse
	)

	switch {
	case errors.As(err, &rateErr):
		c.metrics.observeError("rate_limited")
		hint := defaultRetryHint
		if reset := rateErr.Rate.Reset.Time; !reset.IsZero() {
			hint = max(reset.Sub(c.now()), 0)
		}
		return &FeedError{
			Status:     statusOf(rateErr.Response, http.StatusForbidden),
			RetryAfter: hint,
			Err:        err,
		}
	case errors.As(err, &abuseErr):
		c.metrics.observeError("rate_limited")
		hint := defaultRetryHint
		if d := abuseErr.RetryAfter; d != nil && *d > 0 {
			hint = *d
		}
		return &FeedError{
			Status:     statusOf(abuseErr.Response, http.StatusForbidden),
			RetryAfter: hint,
			Err:        err,
		}
	case errors.As(err, &apiErr):
		fe := &FeedError{Status: statusOf(apiErr.Response, 0), Err: err}
		if fe.RateLimited() {
			fe.RetryAfter = defaultRetryHint
			c.metrics.observeError("rate_limited")
		} else {
			c.metrics.observeError("status")
		}
		return fe
	case resp != nil && resp.StatusCode >= 200 && resp.StatusCode < 300:
		c.metrics.observeError("decode")
		return &FeedError{Status: resp.StatusCode, Err: fmt.Errorf("decode events: %w", err)}
	default:
		c.metrics.observeError("transport")
		return &FeedError{Err: err}
	}
}

func statusOf(resp *http.Response, fallback int) int {
	if resp == nil {
		return fallback
	}
	return resp.StatusCode
}
