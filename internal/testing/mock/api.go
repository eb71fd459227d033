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

// Package mock provides a scripted transport that stands in for the
// MoySklad API.
package mock

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/tombee/moysklad/internal/testing/fixture"
	"github.com/tombee/moysklad/pkg/transport"
)

// API serves fixture routes and records every request it receives.
type API struct {
	mu       sync.Mutex
	routes   []*route
	requests []*transport.Request
}

type route struct {
	fixture.Route
	hits int
}

var _ transport.Transport = (*API)(nil)

// NewAPI creates a mock API over routes. Routes are tried in order.
func NewAPI(routes ...fixture.Route) *API {
	a := &API{}
	for _, r := range routes {
		a.routes = append(a.routes, &route{Route: r})
	}
	return a
}

// Send implements transport.Transport.
func (a *API) Send(ctx context.Context, req *transport.Request) (*transport.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.requests = append(a.requests, req.Clone())

	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, &transport.Error{Code: transport.CodeURLMalformat, Message: err.Error(), Cause: err}
	}

	r := a.match(req.Method, u)
	if r == nil {
		body := fmt.Sprintf(`{"errors":[{"error":"no fixture for %s %s"}]}`, req.Method, u.Path)
		return &transport.Response{StatusCode: http.StatusNotFound, Headers: http.Header{}, Body: []byte(body)}, nil
	}
	r.hits++

	if r.Fail != 0 {
		code := transport.ErrorCode(r.Fail)
		return nil, &transport.Error{Code: code, Message: code.String()}
	}

	headers := http.Header{}
	for k, v := range r.Headers {
		headers.Set(k, v)
	}
	return &transport.Response{StatusCode: r.Status, Headers: headers, Body: []byte(r.Body)}, nil
}

func (a *API) match(method string, u *url.URL) *route {
	path := strings.TrimSuffix(u.Path, "/")
	for _, r := range a.routes {
		if r.Method != method {
			continue
		}
		if r.Times > 0 && r.hits >= r.Times {
			continue
		}
		if !strings.HasSuffix(path, "/"+strings.Trim(r.Path, "/")) {
			continue
		}
		if r.Query != "" && u.RawQuery != r.Query {
			continue
		}
		return r
	}
	return nil
}

// Requests returns a copy of the recorded requests.
func (a *API) Requests() []*transport.Request {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]*transport.Request, len(a.requests))
	copy(out, a.requests)
	return out
}

// LastRequest returns the most recent request, or nil.
func (a *API) LastRequest() *transport.Request {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.requests) == 0 {
		return nil
	}
	return a.requests[len(a.requests)-1]
}
