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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingLimiter records how many times Wait was called.
type countingLimiter struct {
	waits int
}

func (l *countingLimiter) Wait(ctx context.Context) error {
	l.waits++
	return ctx.Err()
}

// scripted returns an ExecuteFunc that fails with the given codes in order
// and then succeeds.
func scripted(attempts *int, codes ...ErrorCode) ExecuteFunc {
	return func(ctx context.Context) (*Response, error) {
		*attempts++
		if *attempts <= len(codes) {
			return nil, &Error{Code: codes[*attempts-1], Message: "scripted failure"}
		}
		return &Response{StatusCode: 200}, nil
	}
}

func TestRetryPolicy_SuccessOnFirstAttempt(t *testing.T) {
	limiter := &countingLimiter{}
	policy := &RetryPolicy{MaxRetries: 3, Limiter: limiter}

	var attempts int
	resp, err := policy.Execute(context.Background(), scripted(&attempts))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, limiter.waits, "delay applies before the first request too")
}

func TestRetryPolicy_ReturnsRetriedResult(t *testing.T) {
	limiter := &countingLimiter{}
	policy := &RetryPolicy{MaxRetries: 3, Limiter: limiter}

	var attempts int
	resp, err := policy.Execute(context.Background(),
		scripted(&attempts, CodeCouldntConnect, CodeOperationTimedOut, CodeCouldntResolveHost))
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 4, attempts)
	assert.Equal(t, 4, limiter.waits)
}

func TestRetryPolicy_CeilingIsThree(t *testing.T) {
	policy := &RetryPolicy{MaxRetries: 3}

	// Success would only come on a fifth attempt, which must never happen.
	var attempts int
	resp, err := policy.Execute(context.Background(),
		scripted(&attempts, CodeCouldntConnect, CodeCouldntConnect, CodeCouldntConnect, CodeCouldntConnect))
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Equal(t, 4, attempts)

	var tErr *Error
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, CodeCouldntConnect, tErr.Code)
	assert.Equal(t, 3, tErr.Retries)
}

func TestRetryPolicy_FatalCodeNotRetried(t *testing.T) {
	policy := &RetryPolicy{MaxRetries: 3}

	var attempts int
	_, err := policy.Execute(context.Background(), scripted(&attempts, CodeURLMalformat))
	require.Error(t, err)
	assert.Equal(t, 1, attempts)

	var tErr *Error
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, 0, tErr.Retries)
}

func TestRetryPolicy_NonTransportErrorSurfacesImmediately(t *testing.T) {
	policy := &RetryPolicy{MaxRetries: 3}
	apiErr := errors.New("api error [HTTP 500]")

	var attempts int
	_, err := policy.Execute(context.Background(), func(ctx context.Context) (*Response, error) {
		attempts++
		return nil, apiErr
	})
	assert.ErrorIs(t, err, apiErr)
	assert.Equal(t, 1, attempts)
}

func TestRetryPolicy_CounterIsPerCall(t *testing.T) {
	policy := &RetryPolicy{MaxRetries: 3}

	// First call spends the whole budget.
	var first int
	_, err := policy.Execute(context.Background(),
		scripted(&first, CodeOperationTimedOut, CodeOperationTimedOut, CodeOperationTimedOut, CodeOperationTimedOut))
	require.Error(t, err)
	assert.Equal(t, 4, first)

	// An unrelated call still gets three retries.
	var second int
	resp, err := policy.Execute(context.Background(),
		scripted(&second, CodeSSLConnectError, CodeHTTPPostError, CodeCouldntConnect))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, 4, second)
}

func TestRetryPolicy_OnRetryHook(t *testing.T) {
	var seen []int
	policy := &RetryPolicy{
		MaxRetries: 3,
		OnRetry: func(retry int, err *Error) {
			seen = append(seen, retry)
		},
	}

	var attempts int
	_, err := policy.Execute(context.Background(), scripted(&attempts, CodeCouldntConnect, CodeCouldntConnect))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, seen)
}

func TestRetryPolicy_CancelledWhileWaiting(t *testing.T) {
	policy := &RetryPolicy{MaxRetries: 3, Limiter: FixedDelay(time.Second)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var attempts int
	_, err := policy.Execute(ctx, scripted(&attempts))
	require.Error(t, err)
	assert.Equal(t, 0, attempts)
	assert.Equal(t, CodeAborted, Classify(err))
}

func TestRetryPolicy_Validate(t *testing.T) {
	assert.NoError(t, DefaultRetryPolicy().Validate())
	assert.Error(t, (&RetryPolicy{MaxRetries: -1}).Validate())
}

func TestDefaultRetryPolicy(t *testing.T) {
	policy := DefaultRetryPolicy()
	assert.Equal(t, 3, policy.MaxRetries)
	assert.Equal(t, FixedDelay(250*time.Millisecond), policy.Limiter)
}
