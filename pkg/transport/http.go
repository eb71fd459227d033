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

package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Default timeouts for the HTTP transport.
const (
	DefaultTimeout        = 60 * time.Second
	DefaultConnectTimeout = 60 * time.Second
	DefaultUserAgent      = "moysklad-go/1.0"
)

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	// Timeout is the total per-attempt request timeout (default: 60s)
	Timeout time.Duration

	// ConnectTimeout bounds TCP connect and TLS handshake (default: 60s)
	ConnectTimeout time.Duration

	// InsecureSkipVerify disables TLS certificate and host name verification.
	// WARNING: this exposes credentials to interception. Default: false.
	InsecureSkipVerify bool

	// UserAgent is the User-Agent header value
	UserAgent string

	// Logger receives resty's internal warnings; nil uses slog.Default()
	Logger *slog.Logger
}

// DefaultHTTPConfig returns an HTTPConfig with the API's documented timeouts
// and certificate verification enabled.
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Timeout:        DefaultTimeout,
		ConnectTimeout: DefaultConnectTimeout,
		UserAgent:      DefaultUserAgent,
	}
}

// Validate checks if the configuration is valid.
func (c *HTTPConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %v", c.Timeout)
	}
	if c.ConnectTimeout <= 0 {
		return fmt.Errorf("connect_timeout must be > 0, got %v", c.ConnectTimeout)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required and must be non-empty")
	}
	return nil
}

// HTTPTransport implements Transport on top of a resty client. Resty's own
// retry support is disabled; retries belong to RetryPolicy.
type HTTPTransport struct {
	client *resty.Client
}

// NewHTTPTransport creates an HTTP transport with the given configuration.
func NewHTTPTransport(cfg HTTPConfig) (*HTTPTransport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.InsecureSkipVerify {
		logger.Warn("TLS certificate verification is disabled for the MoySklad transport")
	}

	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: cfg.InsecureSkipVerify, //nolint:gosec // opt-in legacy mode
		},
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	client := resty.New().
		SetTransport(base).
		SetTimeout(cfg.Timeout).
		SetRetryCount(0).
		SetLogger(&restyLogger{logger: logger}).
		SetHeader("User-Agent", cfg.UserAgent)

	return &HTTPTransport{client: client}, nil
}

// Send implements Transport.
func (t *HTTPTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Method == "" || req.URL == "" {
		return nil, &Error{Code: CodeURLMalformat, Message: "request method and url are required"}
	}

	r := t.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	if len(req.Body) > 0 {
		r.SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.URL)
	if err != nil {
		return nil, NewError(err)
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Headers:    resp.Header(),
		Body:       resp.Body(),
	}, nil
}

// restyLogger routes resty's printf-style logging to slog.
type restyLogger struct {
	logger *slog.Logger
}

func (l *restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (l *restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (l *restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
