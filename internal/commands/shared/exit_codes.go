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

package shared

import (
	"fmt"
	"io"
	"os"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

// Exit codes
const (
	ExitSuccess    = 0
	ExitFailure    = 1
	ExitValidation = 2
	ExitAPI        = 3
	ExitTransport  = 4
	ExitConfig     = 5
)

// ExitError is an error that carries an exit code
type ExitError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ExitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Cause
}

// NewConfigError creates an exit error for configuration problems
func NewConfigError(msg string, cause error) *ExitError {
	return &ExitError{Code: ExitConfig, Message: msg, Cause: cause}
}

// ExitCodeFor maps an error to the process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if skladerrors.As(err, &exitErr) {
		return exitErr.Code
	}
	var cfgErr *skladerrors.ConfigError
	if skladerrors.As(err, &cfgErr) {
		return ExitConfig
	}

	switch skladerrors.Classify(err) {
	case "validation", "payload_too_large":
		return ExitValidation
	case "api", "json":
		return ExitAPI
	case "transport":
		return ExitTransport
	default:
		return ExitFailure
	}
}

// ReportError prints err to w and returns the exit code to use.
func ReportError(w io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(w, "Error:", err.Error())
	if hint := hintFor(err); hint != "" {
		fmt.Fprintln(w, "Hint:", hint)
	}
	return ExitCodeFor(err)
}

func hintFor(err error) string {
	switch skladerrors.KindOf(err) {
	case skladerrors.KindUnknownEntity:
		return "run 'moysklad entities' to list the known entity types"
	case skladerrors.KindDisallowedKey:
		return "run 'moysklad get --help' to see the accepted query parameters"
	}

	switch skladerrors.StatusCode(err) {
	case 401:
		return "the credentials were rejected; run 'moysklad login' or check MOYSKLAD_LOGIN and MOYSKLAD_PASSWORD"
	case 403:
		return "the account has no access to this resource"
	case 429:
		return "too many requests; raise retry.request_delay or set retry.rate_limit"
	default:
		return ""
	}
}

// HandleExitError prints err to stderr and exits with the matching code
func HandleExitError(err error) {
	if err == nil {
		return
	}
	os.Exit(ReportError(os.Stderr, err))
}
