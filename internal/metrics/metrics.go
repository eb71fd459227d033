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

// Package metrics records Prometheus metrics for MoySklad API traffic.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tombee/moysklad/pkg/transport"
)

// Collector owns a private registry so that several clients (and tests) can
// record independently.
type Collector struct {
	registry *prometheus.Registry

	attempts *prometheus.CounterVec
	duration *prometheus.HistogramVec
	retries  *prometheus.CounterVec
}

// NewCollector creates a collector with its metrics registered.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		attempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moysklad_http_attempts_total",
				Help: "Total number of HTTP attempts by method and outcome",
			},
			[]string{"method", "outcome"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "moysklad_http_attempt_duration_seconds",
				Help:    "Duration of single HTTP attempts",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		retries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moysklad_retries_total",
				Help: "Total number of retries by transport error code",
			},
			[]string{"code"},
		),
	}
}

// Registry returns the gatherer holding the collector's metrics.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordAttempt counts one attempt. outcome is the status class ("2xx",
// "4xx", "5xx") or "transport_error".
func (c *Collector) RecordAttempt(method, outcome string, d time.Duration) {
	c.attempts.WithLabelValues(method, outcome).Inc()
	c.duration.WithLabelValues(method).Observe(d.Seconds())
}

// RecordRetry is shaped to be passed to moysklad.WithRetryHook.
func (c *Collector) RecordRetry(_ int, err *transport.Error) {
	code := "unknown"
	if err != nil {
		code = strconv.Itoa(int(err.Code))
	}
	c.retries.WithLabelValues(code).Inc()
}

// WriteTextFile dumps all metrics in the Prometheus text format.
func (c *Collector) WriteTextFile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// Transport wraps base so every attempt is recorded.
func (c *Collector) Transport(base transport.Transport) transport.Transport {
	return transport.TransportFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		start := time.Now()
		resp, err := base.Send(ctx, req)
		c.RecordAttempt(req.Method, Outcome(resp, err), time.Since(start))
		return resp, err
	})
}

// Outcome classifies an attempt result for the outcome label.
func Outcome(resp *transport.Response, err error) string {
	if err != nil || resp == nil {
		return "transport_error"
	}
	return strconv.Itoa(resp.StatusCode/100) + "xx"
}
