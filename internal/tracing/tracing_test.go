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

package tracing

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/tombee/moysklad/pkg/transport"
)

func newTestTracer(t *testing.T) (*tracetest.InMemoryExporter, *Provider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	p, err := NewProvider("test", sdktrace.WithSyncer(exporter))
	if err != nil {
		t.Fatalf("NewProvider() error = %v", err)
	}
	t.Cleanup(func() {
		if err := p.Shutdown(context.Background()); err != nil {
			t.Errorf("failed to shutdown tracer provider: %v", err)
		}
	})
	return exporter, p
}

func attrs(span tracetest.SpanStub) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(span.Attributes))
	for _, kv := range span.Attributes {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestWrapTransport_Success(t *testing.T) {
	exporter, p := newTestTracer(t)

	base := transport.TransportFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		if !trace.SpanContextFromContext(ctx).IsValid() {
			t.Error("expected span in context")
		}
		return &transport.Response{StatusCode: 200}, nil
	})

	_, err := WrapTransport(base, p.Tracer()).Send(context.Background(), &transport.Request{
		Method: "GET",
		URL:    "https://online.moysklad.ru/api/remap/1.1/entity/product?access_token=abc",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name != "moysklad GET" {
		t.Errorf("span name = %q", span.Name)
	}
	if span.SpanKind != trace.SpanKindClient {
		t.Errorf("span kind = %v", span.SpanKind)
	}
	a := attrs(span)
	if got := a[AttrStatusCode].AsInt64(); got != 200 {
		t.Errorf("status attribute = %d", got)
	}
	if url := a[AttrURL].AsString(); strings.Contains(url, "abc") {
		t.Errorf("url attribute not sanitized: %q", url)
	}
	if span.Status.Code == codes.Error {
		t.Error("successful attempt marked as error")
	}
}

func TestWrapTransport_HTTPError(t *testing.T) {
	exporter, p := newTestTracer(t)

	base := transport.TransportFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		return &transport.Response{StatusCode: 412}, nil
	})

	_, _ = WrapTransport(base, p.Tracer()).Send(context.Background(), &transport.Request{Method: "POST", URL: "https://x/entity/product"})

	span := exporter.GetSpans()[0]
	if span.Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", span.Status.Code)
	}
	if got := attrs(span)[AttrErrorType].AsString(); got != "412" {
		t.Errorf("error.type = %q", got)
	}
}

func TestWrapTransport_TransportError(t *testing.T) {
	exporter, p := newTestTracer(t)

	base := transport.TransportFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		return nil, &transport.Error{Code: transport.CodeOperationTimedOut, Message: "timeout"}
	})

	_, err := WrapTransport(base, p.Tracer()).Send(context.Background(), &transport.Request{Method: "GET", URL: "https://x/"})
	if err == nil {
		t.Fatal("expected error")
	}

	span := exporter.GetSpans()[0]
	if span.Status.Code != codes.Error {
		t.Errorf("expected error status, got %v", span.Status.Code)
	}
	if got := attrs(span)[AttrErrorCode].AsInt64(); got != 28 {
		t.Errorf("transport code attribute = %d", got)
	}
	if len(span.Events) == 0 {
		t.Error("expected recorded error event")
	}
}

func TestNewConsoleProvider(t *testing.T) {
	var buf bytes.Buffer
	p, err := NewConsoleProvider(ConsoleConfig{Writer: &buf, ServiceVersion: "test"})
	if err != nil {
		t.Fatalf("NewConsoleProvider() error = %v", err)
	}

	_, span := p.Tracer().Start(context.Background(), "probe")
	span.End()
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	if !strings.Contains(buf.String(), `"Name":"probe"`) {
		t.Errorf("span not written: %s", buf.String())
	}
}
