// Package api is the typed client of the folio backend. Every call takes a
// context; authenticated calls read the bearer token from a TokenSource at
// call time and fail with ErrNoToken without touching the network when it
// is empty. The client keeps no cache and never retries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"folio/internal/core"
	"folio/internal/events"
	"folio/internal/log"
)

// DefaultTimeout bounds a whole call, body included.
const DefaultTimeout = 15 * time.Second

// maxBodySize caps how much of a response is read.
const maxBodySize = 4 << 20

// TokenSource supplies the bearer token. *session.Store satisfies it.
type TokenSource interface {
	Token() string
}

// identified is implemented by token sources that also know the decoded
// user; it is used to attribute events.
type identified interface {
	User() *core.User
}

type authMode int

const (
	authNone authMode = iota
	authOptional
	authRequired
)

type Client struct {
	baseURL   *url.URL
	http      *http.Client
	tokens    TokenSource
	metrics   *Metrics
	publisher events.Publisher
	logger    *log.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client, timeout included.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the overall per-call timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// WithPublisher makes successful mutations emit events.
func WithPublisher(p events.Publisher) Option {
	return func(c *Client) { c.publisher = p }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l.WithComponent(log.ComponentAPI) }
}

// New returns a client for the backend at baseURL with no token source.
// Use For to bind one.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse API base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("API base URL %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: DefaultTimeout},
		publisher: events.Nop{},
		logger:    log.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// For returns a shallow copy of c that authenticates with tokens. The copy
// shares the transport, metrics and publisher.
func (c *Client) For(tokens TokenSource) *Client {
	cp := *c
	cp.tokens = tokens
	return &cp
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *Client) userID() string {
	if id, ok := c.tokens.(identified); ok {
		if u := id.User(); u != nil {
			return u.ID
		}
	}
	return ""
}

// call describes one backend request. Endpoint is the low-cardinality
// metrics label; path may contain ids.
type call struct {
	endpoint string
	method   string
	path     string
	query    url.Values
	body     any
	auth     authMode
	fallback string
	// fixedMessage ignores the error body entirely, as the login form does.
	fixedMessage bool
}

// do performs the call and returns the raw 2xx body.
func (c *Client) do(ctx context.Context, req call) ([]byte, error) {
	token := c.token()
	if req.auth == authRequired && token == "" {
		return nil, ErrNoToken
	}

	u := *c.baseURL
	u.Path = u.Path + req.path
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		raw, err := json.Marshal(req.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", req.endpoint, err)
		}
		body = bytes.NewReader(raw)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", req.endpoint, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if token != "" && req.auth != authNone {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.metrics.observe(req.endpoint, req.method, 0, time.Since(start))
		c.logger.WarnContext(ctx, "Backend call failed",
			log.NewFields().WithAPICall(req.method, req.endpoint, 0).WithError(err).ToSlice()...)
		return nil, fmt.Errorf("%s %s: %w", req.method, req.endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	c.metrics.observe(req.endpoint, req.method, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", req.endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		fallback := req.fallback
		if fallback == "" {
			fallback = MsgGeneric
		}
		msg := fallback
		if !req.fixedMessage {
			msg = errorMessage(raw, fallback)
		}
		c.logger.DebugContext(ctx, "Backend call rejected",
			log.NewFields().WithAPICall(req.method, req.endpoint, resp.StatusCode).ToSlice()...)
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}

	c.logger.DebugContext(ctx, "Backend call completed",
		log.NewFields().WithAPICall(req.method, req.endpoint, resp.StatusCode).ToSlice()...)
	return raw, nil
}

// publish emits an event for a confirmed mutation. Delivery failures are
// logged only; the backend write already happened.
func (c *Client) publish(ctx context.Context, kind events.Kind, subjectID int64, summary string) {
	e := events.New(kind, subjectID, c.userID(), summary)
	if err := c.publisher.Publish(context.WithoutCancel(ctx), e); err != nil {
		c.logger.WarnContext(ctx, "Event publish failed", log.FieldEvent, string(kind), log.FieldError, err)
	}
}
