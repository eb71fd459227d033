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
	"time"

	"golang.org/x/time/rate"
)

// DefaultRequestDelay is the pause applied before every request, retries
// included, as a courtesy to the remote service.
const DefaultRequestDelay = 250 * time.Millisecond

// RateLimiter paces outgoing requests.
// Implementations should block until a request is allowed.
type RateLimiter interface {
	// Wait blocks until a request is allowed.
	// Returns an error if the context is cancelled first.
	Wait(ctx context.Context) error
}

// FixedDelay sleeps for a constant duration before each request.
type FixedDelay time.Duration

// Wait implements RateLimiter.
func (d FixedDelay) Wait(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NewTokenBucket returns a token-bucket limiter allowing rps requests per
// second with a burst of one. A non-positive rps returns nil.
func NewTokenBucket(rps float64) RateLimiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// chainLimiter waits on each limiter in order.
type chainLimiter []RateLimiter

func (c chainLimiter) Wait(ctx context.Context) error {
	for _, l := range c {
		if err := l.Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Chain combines limiters so that each is waited on in order. Nil limiters
// are skipped; Chain returns nil when none remain.
func Chain(limiters ...RateLimiter) RateLimiter {
	var c chainLimiter
	for _, l := range limiters {
		if l != nil {
			c = append(c, l)
		}
	}
	switch len(c) {
	case 0:
		return nil
	case 1:
		return c[0]
	default:
		return c
	}
}
