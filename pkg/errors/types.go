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

package errors

import (
	"fmt"
	"strings"
)

// ValidationKind classifies why a request was rejected before any I/O.
type ValidationKind string

const (
	// KindEmpty is reported for a missing or empty identifier.
	KindEmpty ValidationKind = "empty"

	// KindWrongAttribute is reported for a bare alphanumeric token where a UUID
	// or a whitelisted attribute was expected.
	KindWrongAttribute ValidationKind = "wrong_attribute"

	// KindInvalidFormat is reported for identifiers that are neither UUIDs nor
	// bare tokens.
	KindInvalidFormat ValidationKind = "invalid_format"

	// KindUnknownEntity is reported when an entity type has no category prefix.
	KindUnknownEntity ValidationKind = "unknown_entity"

	// KindDisallowedKey is reported for query parameters outside the whitelist.
	KindDisallowedKey ValidationKind = "disallowed_key"

	// KindUnknownSubResource is reported for sub-resources outside the whitelist.
	KindUnknownSubResource ValidationKind = "unknown_subresource"

	// KindSegmentCount is reported when a read path has no segments or too many.
	KindSegmentCount ValidationKind = "segment_count"

	// KindUnsupportedMethod is reported for HTTP methods the API does not accept.
	KindUnsupportedMethod ValidationKind = "unsupported_method"

	// KindInvalidValue is reported for malformed caller input that fits no
	// other kind (bad filter expression, wrong parameter type).
	KindInvalidValue ValidationKind = "invalid_value"
)

// ValidationError represents user input validation failures.
// Use this for invalid identifiers, paths, filters and query keys. Validation
// errors are raised before any network call and are never retried.
type ValidationError struct {
	// Kind classifies the failure
	Kind ValidationKind

	// Field identifies which input failed validation (e.g. "uuid", "query")
	Field string

	// Value is the offending value as supplied by the caller
	Value string

	// Message is the human-readable error description
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// ErrorType implements ErrorClassifier.
func (e *ValidationError) ErrorType() string { return "validation" }

// IsRetryable implements ErrorClassifier.
func (e *ValidationError) IsRetryable() bool { return false }

// PayloadTooLargeError is returned when a serialized request body exceeds the
// API ceiling. It is raised before the request reaches the transport.
type PayloadTooLargeError struct {
	// Size is the serialized body size in bytes
	Size int

	// Limit is the maximum allowed size in bytes
	Limit int
}

// Error implements the error interface.
func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("request body of %d bytes exceeds the limit of %d bytes", e.Size, e.Limit)
}

// ErrorType implements ErrorClassifier.
func (e *PayloadTooLargeError) ErrorType() string { return "payload_too_large" }

// IsRetryable implements ErrorClassifier.
func (e *PayloadTooLargeError) IsRetryable() bool { return false }

// TransportError is a surfaced low-level network failure. It is either fatal
// on the first attempt or the last transient failure after the retry budget
// ran out.
type TransportError struct {
	// Code is the low-level transport error code
	Code int

	// Message describes the failure
	Message string

	// Retries is how many retries were performed before giving up
	Retries int

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	msg := fmt.Sprintf("transport error (code %d): %s", e.Code, e.Message)
	if e.Retries > 0 {
		msg = fmt.Sprintf("%s (after %d retries)", msg, e.Retries)
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ErrorType implements ErrorClassifier.
func (e *TransportError) ErrorType() string { return "transport" }

// IsRetryable implements ErrorClassifier. A surfaced transport error has
// already been through the retry policy.
func (e *TransportError) IsRetryable() bool { return false }

// APIErrorEntry is a single element of the remote error list.
type APIErrorEntry struct {
	Parameter string `json:"parameter,omitempty"`
	Error     string `json:"error"`
	Code      int    `json:"code,omitempty"`
	MoreInfo  string `json:"moreInfo,omitempty"`
}

// APIError represents a response with status >= 400.
type APIError struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Message is the formatted, possibly multi-line message built from Entries
	Message string

	// Entries is the decoded remote error list (may be empty)
	Entries []APIErrorEntry
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error [HTTP %d]: %s", e.StatusCode, strings.TrimRight(e.Message, "\n"))
}

// ErrorType implements ErrorClassifier.
func (e *APIError) ErrorType() string { return "api" }

// IsRetryable implements ErrorClassifier.
func (e *APIError) IsRetryable() bool { return false }

// JSONDecodeError is returned when a success-path response body is not valid JSON.
type JSONDecodeError struct {
	// Offset is the byte offset reported by the parser, when available
	Offset int64

	// Cause is the parser error
	Cause error
}

// Error implements the error interface.
func (e *JSONDecodeError) Error() string {
	if e.Offset > 0 {
		return fmt.Sprintf("invalid JSON in the API response body at offset %d: %v", e.Offset, e.Cause)
	}
	return fmt.Sprintf("invalid JSON in the API response body: %v", e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *JSONDecodeError) Unwrap() error {
	return e.Cause
}

// ErrorType implements ErrorClassifier.
func (e *JSONDecodeError) ErrorType() string { return "json" }

// IsRetryable implements ErrorClassifier.
func (e *JSONDecodeError) IsRetryable() bool { return false }

// NotFoundError represents a resource not found error.
// Use this when a requested resource or field does not exist.
type NotFoundError struct {
	// Resource is the type of resource (e.g., "field", "entity type")
	Resource string

	// ID is the identifier that was not found
	ID string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NotAllowedError is returned for operations a read-only value refuses.
type NotAllowedError struct {
	// Operation is the refused operation (e.g., "set", "remove")
	Operation string
}

// Error implements the error interface.
func (e *NotAllowedError) Error() string {
	return fmt.Sprintf("%s is not allowed", e.Operation)
}

// ConfigError represents configuration problems.
// Use this for configuration file errors, missing settings, or invalid config values.
type ConfigError struct {
	// Key is the configuration key that has the problem (e.g., "login", "base_url")
	Key string

	// Reason explains what's wrong with the configuration
	Reason string

	// Cause is the underlying error (e.g., file read error, parse error)
	Cause error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config error at %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("config error: %s", e.Reason)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}
