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

// Package transport provides the single-attempt HTTP capability used by the
// MoySklad client, together with the retry policy and request pacing that
// wrap it.
//
// A Transport issues exactly one request and reports either a Response (any
// HTTP status, including >= 400) or an *Error carrying a low-level ErrorCode.
// Interpreting the status code is the caller's concern; deciding whether a
// failure is transient is encoded in the ErrorCode.
package transport

import (
	"context"
	"net/http"
)

// Transport executes a single request with no retries.
type Transport interface {
	// Send issues one request and returns the raw response.
	// Network-level failures are returned as *Error.
	Send(ctx context.Context, req *Request) (*Response, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, req *Request) (*Response, error)

// Send implements Transport.
func (f TransportFunc) Send(ctx context.Context, req *Request) (*Response, error) {
	return f(ctx, req)
}

// Request represents one outgoing HTTP request.
type Request struct {
	// Method is the HTTP method (GET, POST, PUT, DELETE)
	Method string

	// URL is the full request URL including the query string
	URL string

	// Headers are request headers, including Authorization
	Headers map[string]string

	// Body is the serialized request body; nil for GET and DELETE
	Body []byte
}

// Clone returns a copy of the request that shares no mutable state with r.
func (r *Request) Clone() *Request {
	c := &Request{
		Method: r.Method,
		URL:    r.URL,
	}
	if r.Headers != nil {
		c.Headers = make(map[string]string, len(r.Headers))
		for k, v := range r.Headers {
			c.Headers[k] = v
		}
	}
	if r.Body != nil {
		c.Body = append([]byte(nil), r.Body...)
	}
	return c
}

// Response represents the raw outcome of a request that reached the server.
type Response struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Headers contains response headers
	Headers http.Header

	// Body is the response body
	Body []byte
}

// Standard HTTP methods accepted by the API.
const (
	MethodGet    = http.MethodGet
	MethodPost   = http.MethodPost
	MethodPut    = http.MethodPut
	MethodDelete = http.MethodDelete
)

// AllowedMethods lists the methods the remote API accepts, in display order.
var AllowedMethods = []string{MethodGet, MethodPost, MethodPut, MethodDelete}

// IsAllowedMethod reports whether method is one of AllowedMethods.
func IsAllowedMethod(method string) bool {
	for _, m := range AllowedMethods {
		if m == method {
			return true
		}
	}
	return false
}
