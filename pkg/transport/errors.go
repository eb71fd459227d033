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
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"
	"syscall"
)

// ErrorCode is a low-level transport error code. Values follow libcurl's
// numbering so that logs stay comparable with other MoySklad integrations.
type ErrorCode int

const (
	// CodeOK means no transport error occurred.
	CodeOK ErrorCode = 0

	// CodeUnsupportedProtocol is returned for URL schemes other than http(s).
	CodeUnsupportedProtocol ErrorCode = 1

	// CodeURLMalformat is returned when the request URL cannot be parsed.
	CodeURLMalformat ErrorCode = 3

	// CodeCouldntResolveHost is returned for DNS failures.
	CodeCouldntResolveHost ErrorCode = 6

	// CodeCouldntConnect is returned when the TCP connection is refused or fails.
	CodeCouldntConnect ErrorCode = 7

	// CodeOperationTimedOut is returned when the connect or request timeout expires.
	CodeOperationTimedOut ErrorCode = 28

	// CodeHTTPPostError is returned when the connection drops while the
	// request is being written or before the response arrives.
	CodeHTTPPostError ErrorCode = 34

	// CodeSSLConnectError is returned for TLS handshake and verification failures.
	CodeSSLConnectError ErrorCode = 35

	// CodeAborted is returned when the caller's context is cancelled.
	CodeAborted ErrorCode = 42

	// CodeRecvError is returned for any other failure.
	CodeRecvError ErrorCode = 56
)

// Transient reports whether the code belongs to the set of network failures
// that are safe to retry.
func (c ErrorCode) Transient() bool {
	switch c {
	case CodeCouldntResolveHost, CodeCouldntConnect, CodeOperationTimedOut,
		CodeHTTPPostError, CodeSSLConnectError:
		return true
	default:
		return false
	}
}

// String returns a short description of the code.
func (c ErrorCode) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeUnsupportedProtocol:
		return "unsupported protocol"
	case CodeURLMalformat:
		return "url malformed"
	case CodeCouldntResolveHost:
		return "couldn't resolve host"
	case CodeCouldntConnect:
		return "couldn't connect"
	case CodeOperationTimedOut:
		return "operation timed out"
	case CodeHTTPPostError:
		return "request send failed"
	case CodeSSLConnectError:
		return "ssl connect error"
	case CodeAborted:
		return "aborted"
	case CodeRecvError:
		return "receive failure"
	default:
		return fmt.Sprintf("code %d", int(c))
	}
}

// Error is a classified transport failure.
type Error struct {
	// Code classifies the failure
	Code ErrorCode

	// Message is the failure description with credentials removed
	Message string

	// Retries is the number of retries performed before this error surfaced.
	// Set by RetryPolicy.
	Retries int

	// Cause is the underlying error
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s (code %d): %s", e.Code, int(e.Code), e.Message)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Transient reports whether the failure may be retried.
func (e *Error) Transient() bool {
	return e.Code.Transient()
}

// NewError classifies err and wraps it as *Error. It returns nil for a nil err
// and err itself when it is already an *Error.
func NewError(err error) *Error {
	if err == nil {
		return nil
	}
	var tErr *Error
	if errors.As(err, &tErr) {
		return tErr
	}
	return &Error{
		Code:    Classify(err),
		Message: describe(err),
		Cause:   err,
	}
}

// Classify maps a Go network error onto an ErrorCode.
func Classify(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}

	var tErr *Error
	if errors.As(err, &tErr) {
		return tErr.Code
	}

	if errors.Is(err, context.Canceled) {
		return CodeAborted
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CodeOperationTimedOut
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return CodeCouldntResolveHost
	}

	if isTLSError(err) {
		return CodeSSLConnectError
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CodeOperationTimedOut
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return CodeCouldntConnect
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return CodeCouldntConnect
	}

	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return CodeHTTPPostError
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Op == "parse" {
		return CodeURLMalformat
	}
	if strings.Contains(err.Error(), "unsupported protocol scheme") {
		return CodeUnsupportedProtocol
	}

	return CodeRecvError
}

func isTLSError(err error) bool {
	var certErr *tls.CertificateVerificationError
	var unknownAuth x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	var invalidErr x509.CertificateInvalidError
	var headerErr tls.RecordHeaderError
	var alertErr tls.AlertError

	switch {
	case errors.As(err, &certErr),
		errors.As(err, &unknownAuth),
		errors.As(err, &hostErr),
		errors.As(err, &invalidErr),
		errors.As(err, &headerErr),
		errors.As(err, &alertErr):
		return true
	}
	return strings.Contains(err.Error(), "tls: ")
}

// describe strips the URL from url.Error messages so that credentials or
// query values never reach logs through the error text.
func describe(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return fmt.Sprintf("%s: %v", urlErr.Op, urlErr.Err)
	}
	return err.Error()
}
