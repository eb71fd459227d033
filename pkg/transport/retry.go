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
	"errors"
	"fmt"
	"log/slog"
)

// DefaultMaxRetries is the retry ceiling for transient failures.
const DefaultMaxRetries = 3

// RetryPolicy re-issues a request after transient transport failures.
//
// The retry counter lives in Execute, so every logical call starts with a
// fresh budget and concurrent calls never share one. There is no backoff: the
// Limiter is waited on before every attempt, the first one included.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt (default: 3)
	MaxRetries int

	// Limiter paces attempts; nil means no pacing
	Limiter RateLimiter

	// Logger receives a warning per retry; nil uses slog.Default()
	Logger *slog.Logger

	// OnRetry, when set, is called before each retry with the 1-based retry
	// number and the failure that triggered it.
	OnRetry func(retry int, err *Error)
}

// DefaultRetryPolicy returns the policy used by the MoySklad client:
// three retries and a fixed 250ms delay before each attempt.
func DefaultRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxRetries: DefaultMaxRetries,
		Limiter:    FixedDelay(DefaultRequestDelay),
	}
}

// Validate checks if the retry configuration is valid.
func (p *RetryPolicy) Validate() error {
	if p.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0, got %d", p.MaxRetries)
	}
	return nil
}

// ExecuteFunc executes a single request attempt.
// Returning an *Error with a transient code makes the attempt eligible for
// retry; any other error is surfaced unchanged.
type ExecuteFunc func(ctx context.Context) (*Response, error)

// Execute runs fn until it succeeds, fails with a non-transient error, or the
// retry budget is spent. Attempts are strictly sequential. When the budget
// runs out the last transient *Error is returned with Retries set.
func (p *RetryPolicy) Execute(ctx context.Context, fn ExecuteFunc) (*Response, error) {
	if p == nil {
		p = DefaultRetryPolicy()
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	retries := 0
	for {
		if p.Limiter != nil {
			if err := p.Limiter.Wait(ctx); err != nil {
				return nil, &Error{
					Code:    CodeAborted,
					Message: "request cancelled while waiting to send",
					Retries: retries,
					Cause:   err,
				}
			}
		}

		resp, err := fn(ctx)
		if err == nil {
			return resp, nil
		}

		var tErr *Error
		if !errors.As(err, &tErr) || !tErr.Transient() {
			return nil, err
		}

		if retries >= p.MaxRetries {
			tErr.Retries = retries
			return nil, tErr
		}

		retries++
		logger.Warn("retrying request after transient transport error",
			"retry", retries,
			"max_retries", p.MaxRetries,
			"code", int(tErr.Code),
			"error", tErr.Message,
		)
		if p.OnRetry != nil {
			p.OnRetry(retries, tErr)
		}
	}
}
