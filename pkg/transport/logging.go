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
	"log/slog"
	"time"

	"github.com/tombee/moysklad/internal/log"
)

// maxLoggedBody caps the bytes of a body written at trace level.
const maxLoggedBody = 4096

// LoggingTransport wraps a Transport and logs every attempt with method,
// sanitized URL, status or error code, and duration. Request and response
// bodies are logged at trace level.
type LoggingTransport struct {
	base   Transport
	logger *slog.Logger
}

// NewLoggingTransport creates a logging decorator around base.
func NewLoggingTransport(base Transport, logger *slog.Logger) *LoggingTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingTransport{base: base, logger: logger}
}

// Send implements Transport.
func (t *LoggingTransport) Send(ctx context.Context, req *Request) (*Response, error) {
	logURL := SanitizeURL(req.URL)
	if len(req.Body) > 0 {
		log.Trace(ctx, t.logger, "http request body",
			slog.String(log.MethodKey, req.Method),
			slog.String("url", logURL),
			slog.String("body", truncateBody(req.Body)),
		)
	}

	start := time.Now()
	resp, err := t.base.Send(ctx, req)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		t.logger.LogAttrs(ctx, slog.LevelWarn, "http request failed",
			slog.String(log.MethodKey, req.Method),
			slog.String("url", logURL),
			slog.Int("code", int(Classify(err))),
			slog.Int64(log.DurationKey, duration),
			log.Error(err),
		)
		return nil, err
	}

	level := slog.LevelDebug
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	t.logger.LogAttrs(ctx, level, "http request",
		slog.String(log.MethodKey, req.Method),
		slog.String("url", logURL),
		slog.Int(log.StatusKey, resp.StatusCode),
		slog.Int64(log.DurationKey, duration),
	)
	if len(resp.Body) > 0 {
		log.Trace(ctx, t.logger, "http response body",
			slog.Int(log.StatusKey, resp.StatusCode),
			slog.String("body", truncateBody(resp.Body)),
		)
	}
	return resp, nil
}

func truncateBody(body []byte) string {
	if len(body) <= maxLoggedBody {
		return string(body)
	}
	return string(body[:maxLoggedBody]) + "...(truncated)"
}
