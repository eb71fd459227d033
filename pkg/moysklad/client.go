// Copyright 2025 Tom Barlow
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package moysklad

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tombee/moysklad/internal/log"
	skladerrors "github.com/tombee/moysklad/pkg/errors"
	"github.com/tombee/moysklad/pkg/transport"
)

// DefaultBaseURL is the API root including the version segment.
const DefaultBaseURL = "https://online.moysklad.ru/api/remap/1.1/"

// Client is a MoySklad API client. It is safe for concurrent use: each call
// carries its own retry budget.
type Client struct {
	baseURL    string
	authHeader string
	transport  transport.Transport
	httpConfig transport.HTTPConfig
	planner    *Planner
	registry   *Registry
	codec      Codec
	logger     *slog.Logger
	now        func() time.Time

	requestDelay time.Duration
	maxRetries   int
	limiter      transport.RateLimiter
	onRetry      func(retry int, err *transport.Error)
}

// Option configures a Client.
type Option func(*Client) error

// New creates a client authenticating with HTTP basic auth.
func New(login, password string, opts ...Option) (*Client, error) {
	if login == "" {
		return nil, &skladerrors.ConfigError{Key: "login", Reason: "login is required"}
	}
	if password == "" {
		return nil, &skladerrors.ConfigError{Key: "password", Reason: "password is required"}
	}

	c := &Client{
		baseURL:      DefaultBaseURL,
		authHeader:   basicAuth(login, password),
		httpConfig:   transport.DefaultHTTPConfig(),
		codec:        JSONCodec{},
		now:          time.Now,
		requestDelay: transport.DefaultRequestDelay,
		maxRetries:   transport.DefaultMaxRetries,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.logger == nil {
		c.logger = log.Discard()
	}
	if c.planner == nil {
		c.planner = NewPlanner(c.registry)
	}

	if c.transport == nil {
		cfg := c.httpConfig
		if cfg.Logger == nil {
			cfg.Logger = c.logger
		}
		httpTransport, err := transport.NewHTTPTransport(cfg)
		if err != nil {
			return nil, &skladerrors.ConfigError{Key: "http", Reason: err.Error(), Cause: err}
		}
		c.transport = transport.NewLoggingTransport(httpTransport, c.logger)
	}

	return c, nil
}

// WithBaseURL overrides the API root. A trailing '/' is added when missing.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if baseURL == "" {
			return &skladerrors.ConfigError{Key: "base_url", Reason: "base url can not be empty"}
		}
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.baseURL = baseURL
		return nil
	}
}

// WithTransport replaces the HTTP transport. The given transport receives
// one call per attempt.
func WithTransport(t transport.Transport) Option {
	return func(c *Client) error {
		c.transport = t
		return nil
	}
}

// WithHTTPConfig configures the default HTTP transport. It has no effect
// together with WithTransport.
func WithHTTPConfig(cfg transport.HTTPConfig) Option {
	return func(c *Client) error {
		if err := cfg.Validate(); err != nil {
			return &skladerrors.ConfigError{Key: "http", Reason: err.Error(), Cause: err}
		}
		c.httpConfig = cfg
		return nil
	}
}

// WithRegistry replaces the entity type registry.
func WithRegistry(r *Registry) Option {
	return func(c *Client) error {
		c.registry = r
		return nil
	}
}

// WithCodec replaces the JSON codec.
func WithCodec(codec Codec) Option {
	return func(c *Client) error {
		c.codec = codec
		return nil
	}
}

// WithLogger sets the logger. Without it the client logs nothing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithRequestDelay sets the pause before every attempt. Zero disables it.
func WithRequestDelay(d time.Duration) Option {
	return func(c *Client) error {
		if d < 0 {
			return &skladerrors.ConfigError{Key: "request_delay", Reason: fmt.Sprintf("must be >= 0, got %v", d)}
		}
		c.requestDelay = d
		return nil
	}
}

// WithMaxRetries sets the number of retries after transient failures.
func WithMaxRetries(n int) Option {
	return func(c *Client) error {
		if n < 0 {
			return &skladerrors.ConfigError{Key: "max_retries", Reason: fmt.Sprintf("must be >= 0, got %d", n)}
		}
		c.maxRetries = n
		return nil
	}
}

// WithRateLimiter adds a limiter waited on after the request delay.
func WithRateLimiter(l transport.RateLimiter) Option {
	return func(c *Client) error {
		c.limiter = l
		return nil
	}
}

// WithRetryHook registers a callback invoked before every retry.
func WithRetryHook(fn func(retry int, err *transport.Error)) Option {
	return func(c *Client) error {
		c.onRetry = fn
		return nil
	}
}

// WithClock sets the time source for error message timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) error {
		c.now = now
		return nil
	}
}

// Registry returns the entity type registry in use.
func (c *Client) Registry() *Registry {
	return c.planner.Registry()
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Read issues a GET for one to four path segments.
func (c *Client) Read(ctx context.Context, segments []string, params Params) (*Response, error) {
	plan, err := c.planner.PlanRead(segments, params)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, log.WithEntity(c.logger, segments[0]), plan, nil)
}

// Create issues a POST to the entity collection, or to a single entity when
// id is not empty.
func (c *Client) Create(ctx context.Context, entityType, id string, payload any) (*Response, error) {
	plan, err := c.planner.PlanCreate(entityType, id)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, log.WithEntity(c.logger, entityType), plan, payload)
}

// Update issues a PUT to a single entity.
func (c *Client) Update(ctx context.Context, entityType, id string, payload any) (*Response, error) {
	plan, err := c.planner.PlanUpdate(entityType, id)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, log.WithEntity(c.logger, entityType), plan, payload)
}

// Delete issues a DELETE of a single entity.
func (c *Client) Delete(ctx context.Context, entityType, id string) (*Response, error) {
	plan, err := c.planner.PlanDelete(entityType, id)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, log.WithEntity(c.logger, entityType), plan, nil)
}

// Execute sends a planned request through the retry policy.
//
// Validation and payload size errors are returned before the transport is
// called. Transient transport failures are retried; everything else is
// surfaced as *errors.APIError, *errors.TransportError or
// *errors.JSONDecodeError.
func (c *Client) Execute(ctx context.Context, plan *Plan, payload any) (*Response, error) {
	return c.execute(ctx, c.logger, plan, payload)
}

func (c *Client) execute(ctx context.Context, logger *slog.Logger, plan *Plan, payload any) (*Response, error) {
	req, err := c.buildRequest(plan, payload)
	if err != nil {
		return nil, err
	}

	policy := c.retryPolicy(logger)
	resp, err := policy.Execute(ctx, func(ctx context.Context) (*transport.Response, error) {
		resp, err := c.transport.Send(ctx, req.Clone())
		if err != nil {
			return nil, transport.NewError(err)
		}
		if resp.StatusCode >= 400 {
			return nil, newAPIError(resp.StatusCode, resp.Body, c.now(), c.codec)
		}
		return resp, nil
	})
	if err != nil {
		return nil, surface(err)
	}

	return newResponse(resp.StatusCode, resp.Headers, resp.Body, c.codec)
}

func (c *Client) buildRequest(plan *Plan, payload any) (*transport.Request, error) {
	if plan == nil {
		return nil, &skladerrors.ValidationError{Kind: skladerrors.KindEmpty, Field: "plan", Message: "request plan is required"}
	}
	if err := checkMethod(plan.Method); err != nil {
		return nil, err
	}

	req := &transport.Request{
		Method: plan.Method,
		URL:    plan.URL(c.baseURL),
		Headers: map[string]string{
			"Authorization": c.authHeader,
			"Accept":        "application/json",
		},
	}

	if plan.Method == transport.MethodPost || plan.Method == transport.MethodPut {
		body, err := encodeBody(c.codec, payload)
		if err != nil {
			return nil, err
		}
		if body != nil {
			req.Body = body
			req.Headers["Content-Type"] = "application/json"
		}
	}
	if plan.Method == transport.MethodDelete {
		req.Headers["Content-Type"] = "application/json"
	}
	return req, nil
}

func (c *Client) retryPolicy(logger *slog.Logger) *transport.RetryPolicy {
	var limiters []transport.RateLimiter
	if c.requestDelay > 0 {
		limiters = append(limiters, transport.FixedDelay(c.requestDelay))
	}
	if c.limiter != nil {
		limiters = append(limiters, c.limiter)
	}
	return &transport.RetryPolicy{
		MaxRetries: c.maxRetries,
		Limiter:    transport.Chain(limiters...),
		Logger:     logger,
		OnRetry:    c.onRetry,
	}
}

// surface converts low-level transport errors into the public taxonomy.
func surface(err error) error {
	var tErr *transport.Error
	if errors.As(err, &tErr) {
		return &skladerrors.TransportError{
			Code:    int(tErr.Code),
			Message: tErr.Message,
			Retries: tErr.Retries,
			Cause:   tErr,
		}
	}
	return err
}
