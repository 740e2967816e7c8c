package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const defaultTimeout = 10 * time.Second

// TokenSource supplies the bearer token for outgoing calls. An empty token
// means the call is sent unauthenticated.
type TokenSource interface {
	Token() string
}

// Call describes one completed invocation, for observers.
type Call struct {
	Endpoint string
	Method   string
	Duration time.Duration
	Outcome  Outcome
}

// Observer is notified after every invocation. It runs on the calling
// goroutine and must not block.
type Observer func(Call)

// Client makes RPC calls to the MuSheet backend.
type Client struct {
	baseURL  string
	tokens   TokenSource
	client   *http.Client
	logger   *zap.Logger
	observer Observer
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers a hook called after each invocation.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// NewClient creates a client targeting baseURL (e.g. "http://127.0.0.1:8080").
// tokens may be nil for unauthenticated use.
func NewClient(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		client:  &http.Client{Timeout: defaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend address the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Invoke performs one call of method on endpoint. It never panics and never
// returns a Go error: every failure is folded into a Failed outcome.
func (c *Client) Invoke(ctx context.Context, endpoint, method string, params map[string]any) Outcome {
	start := time.Now()
	out := c.invoke(ctx, endpoint, method, params)

	call := Call{Endpoint: endpoint, Method: method, Duration: time.Since(start), Outcome: out}
	if out.OK() {
		c.logger.Debug("rpc call",
			zap.String("endpoint", endpoint),
			zap.String("method", method),
			zap.Duration("took", call.Duration))
	} else {
		c.logger.Warn("rpc call failed",
			zap.String("endpoint", endpoint),
			zap.String("method", method),
			zap.Duration("took", call.Duration),
			zap.String("error", out.Message()))
	}
	if c.observer != nil {
		c.observer(call)
	}
	return out
}

func (c *Client) invoke(ctx context.Context, endpoint, method string, params map[string]any) Outcome {
	env, err := NewEnvelope(method, params)
	if err != nil {
		return Failed(KindRequest, err.Error())
	}
	data, err := json.Marshal(env)
	if err != nil {
		return Failed(KindRequest, fmt.Sprintf("encoding request: %v", err))
	}

	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return Failed(KindRequest, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	c.setAuth(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return Failed(KindTransport, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failed(KindTransport, fmt.Sprintf("reading response: %v", err))
	}
	return Interpret(body)
}

func (c *Client) setAuth(req *http.Request) {
	if c.tokens == nil {
		return
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
}
