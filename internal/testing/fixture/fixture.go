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

// Package fixture loads canned API exchanges from YAML.
//
// A fixture file lists routes matched in order:
//
//	routes:
//	  - method: GET
//	    path: entity/product
//	    body: '{"meta":{"size":0},"rows":[]}'
//	  - method: POST
//	    path: entity/product
//	    fail: 7
//	    times: 1
package fixture

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tombee/moysklad/pkg/transport"
)

// Route is one canned exchange.
type Route struct {
	// Method is the HTTP method to match
	Method string `yaml:"method"`

	// Path is matched against the end of the request path, e.g. "entity/product"
	Path string `yaml:"path"`

	// Query, when set, must equal the raw request query
	Query string `yaml:"query,omitempty"`

	// Status is the response status (default: 200)
	Status int `yaml:"status,omitempty"`

	// Headers are response headers
	Headers map[string]string `yaml:"headers,omitempty"`

	// Body is the raw response body
	Body string `yaml:"body,omitempty"`

	// Fail returns a transport error with this code instead of a response
	Fail int `yaml:"fail,omitempty"`

	// Times limits how often the route matches; 0 means always
	Times int `yaml:"times,omitempty"`
}

// File is the on-disk fixture layout.
type File struct {
	Routes []Route `yaml:"routes"`
}

// Load reads routes from a YAML file.
func Load(path string) ([]Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	routes, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return routes, nil
}

// Parse decodes and validates routes from YAML.
func Parse(data []byte) ([]Route, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}

	for i := range f.Routes {
		r := &f.Routes[i]
		r.Method = strings.ToUpper(r.Method)
		if !transport.IsAllowedMethod(r.Method) {
			return nil, fmt.Errorf("route %d: unsupported method %q", i, r.Method)
		}
		if strings.Trim(r.Path, "/") == "" {
			return nil, fmt.Errorf("route %d: path is required", i)
		}
		if r.Status == 0 && r.Fail == 0 {
			r.Status = 200
		}
		if r.Times < 0 {
			return nil, fmt.Errorf("route %d: times must not be negative", i)
		}
	}
	return f.Routes, nil
}
