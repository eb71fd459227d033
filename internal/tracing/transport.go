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
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tombee/moysklad/pkg/transport"
)

// Span attribute keys.
const (
	AttrMethod     = attribute.Key("http.request.method")
	AttrURL        = attribute.Key("url.full")
	AttrStatusCode = attribute.Key("http.response.status_code")
	AttrErrorType  = attribute.Key("error.type")
	AttrErrorCode  = attribute.Key("moysklad.transport.code")
)

// WrapTransport starts a client span around every attempt sent through base.
// URLs are recorded sanitized.
func WrapTransport(base transport.Transport, tracer trace.Tracer) transport.Transport {
	return transport.TransportFunc(func(ctx context.Context, req *transport.Request) (*transport.Response, error) {
		ctx, span := tracer.Start(ctx, "moysklad "+req.Method,
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				AttrMethod.String(req.Method),
				AttrURL.String(transport.SanitizeURL(req.URL)),
			),
		)
		defer span.End()

		resp, err := base.Send(ctx, req)
		if err != nil {
			code := transport.Classify(err)
			span.RecordError(err)
			span.SetAttributes(
				AttrErrorType.String(code.String()),
				AttrErrorCode.Int(int(code)),
			)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}

		span.SetAttributes(AttrStatusCode.Int(resp.StatusCode))
		if resp.StatusCode >= 400 {
			span.SetAttributes(AttrErrorType.String(strconv.Itoa(resp.StatusCode)))
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
		}
		return resp, nil
	})
}
