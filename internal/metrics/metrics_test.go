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

package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tombee/moysklad/pkg/transport"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		resp *transport.Response
		err  error
		want string
	}{
		{"ok", &transport.Response{StatusCode: 200}, nil, "2xx"},
		{"created", &transport.Response{StatusCode: 201}, nil, "2xx"},
		{"client error", &transport.Response{StatusCode: 412}, nil, "4xx"},
		{"server error", &transport.Response{StatusCode: 503}, nil, "5xx"},
		{"transport", nil, errors.New("refused"), "transport_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Outcome(tt.resp, tt.err); got != tt.want {
				t.Errorf("Outcome() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollector_Transport(t *testing.T) {
	c := NewCollector()

	calls := 0
	base := transport.TransportFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		calls++
		if calls == 1 {
			return nil, &transport.Error{Code: transport.CodeCouldntConnect}
		}
		return &transport.Response{StatusCode: 200}, nil
	})
	wrapped := c.Transport(base)

	req := &transport.Request{Method: "GET", URL: "https://example.test/entity/product"}
	_, _ = wrapped.Send(context.Background(), req)
	_, _ = wrapped.Send(context.Background(), req)

	failed := testutil.ToFloat64(c.attempts.With(prometheus.Labels{"method": "GET", "outcome": "transport_error"}))
	if failed != 1 {
		t.Errorf("expected 1 failed attempt, got %f", failed)
	}
	succeeded := testutil.ToFloat64(c.attempts.With(prometheus.Labels{"method": "GET", "outcome": "2xx"}))
	if succeeded != 1 {
		t.Errorf("expected 1 successful attempt, got %f", succeeded)
	}
	if n := testutil.CollectAndCount(c.duration); n != 1 {
		t.Errorf("expected one duration series, got %d", n)
	}
}

func TestCollector_RecordRetry(t *testing.T) {
	c := NewCollector()

	c.RecordRetry(1, &transport.Error{Code: transport.CodeOperationTimedOut})
	c.RecordRetry(2, &transport.Error{Code: transport.CodeOperationTimedOut})
	c.RecordRetry(1, nil)

	if got := testutil.ToFloat64(c.retries.WithLabelValues("28")); got != 2 {
		t.Errorf("expected 2 timeout retries, got %f", got)
	}
	if got := testutil.ToFloat64(c.retries.WithLabelValues("unknown")); got != 1 {
		t.Errorf("expected 1 unknown retry, got %f", got)
	}
}

func TestCollectors_AreIndependent(t *testing.T) {
	a, b := NewCollector(), NewCollector()
	a.RecordAttempt("POST", "2xx", time.Millisecond)

	if got := testutil.ToFloat64(b.attempts.WithLabelValues("POST", "2xx")); got != 0 {
		t.Errorf("collectors share state: %f", got)
	}
}

func TestCollector_WriteTextFile(t *testing.T) {
	c := NewCollector()
	c.RecordAttempt("DELETE", "4xx", 10*time.Millisecond)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	if err := c.WriteTextFile(path); err != nil {
		t.Fatalf("WriteTextFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want := `moysklad_http_attempts_total{method="DELETE",outcome="4xx"} 1`
	if !strings.Contains(string(data), want) {
		t.Errorf("metrics file missing %q:\n%s", want, data)
	}
}
