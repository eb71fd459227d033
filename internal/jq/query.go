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

// Package jq applies jq expressions to decoded API responses.
package jq

import (
	"context"
	"fmt"
	"time"

	"github.com/itchyny/gojq"
)

// DefaultTimeout bounds a single evaluation.
const DefaultTimeout = 5 * time.Second

// Query is a compiled jq expression.
type Query struct {
	expression string
	code       *gojq.Code
	timeout    time.Duration
}

// Compile parses and compiles expression. The error names the expression.
func Compile(expression string) (*Query, error) {
	parsed, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression %q: %w", expression, err)
	}
	code, err := gojq.Compile(parsed)
	if err != nil {
		return nil, fmt.Errorf("jq compilation failed for %q: %w", expression, err)
	}
	return &Query{expression: expression, code: code, timeout: DefaultTimeout}, nil
}

// WithTimeout returns a copy of q using timeout; zero keeps the default.
func (q *Query) WithTimeout(timeout time.Duration) *Query {
	c := *q
	if timeout > 0 {
		c.timeout = timeout
	}
	return &c
}

// String returns the source expression.
func (q *Query) String() string {
	return q.expression
}

// Run evaluates the query against data and collects every emitted value.
// data must hold JSON-shaped values (maps, slices, strings, numbers,
// booleans and nil), as produced by encoding/json.
func (q *Query) Run(ctx context.Context, data any) ([]any, error) {
	ctx, cancel := context.WithTimeout(ctx, q.timeout)
	defer cancel()

	var results []any
	iter := q.code.RunWithContext(ctx, data)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("jq execution timeout after %v", q.timeout)
			}
			return nil, fmt.Errorf("jq %q: %w", q.expression, err)
		}
		results = append(results, v)
	}
	return results, nil
}

// Apply compiles and runs expression in one step. An empty expression
// returns data unchanged as the single result.
func Apply(ctx context.Context, expression string, data any) ([]any, error) {
	if expression == "" {
		return []any{data}, nil
	}
	q, err := Compile(expression)
	if err != nil {
		return nil, err
	}
	return q.Run(ctx, data)
}
