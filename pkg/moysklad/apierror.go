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

package moysklad

import (
	"strings"
	"time"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

// timestampLayout is the prefix format of every error line.
const timestampLayout = "2006-01-02 15:04:05"

type errorBody struct {
	Errors []skladerrors.APIErrorEntry `json:"errors"`
}

// newAPIError builds the error for a response with status >= 400.
//
// Each remote error entry becomes one line:
//
//	[2024-01-02 03:04:05] Error <parameter>: <error>
//	[2024-01-02 03:04:05] Error: <error>
//
// A body without entries yields a single "Internal server error" line.
func newAPIError(status int, body []byte, now time.Time, codec Codec) *skladerrors.APIError {
	var decoded errorBody
	if len(body) > 0 {
		// Undecodable bodies fall through to the generic message.
		_ = codec.Unmarshal(body, &decoded)
	}

	return &skladerrors.APIError{
		StatusCode: status,
		Message:    formatAPIErrors(decoded.Errors, now),
		Entries:    decoded.Errors,
	}
}

func formatAPIErrors(entries []skladerrors.APIErrorEntry, now time.Time) string {
	stamp := "[" + now.Format(timestampLayout) + "]"
	if len(entries) == 0 {
		return stamp + " Internal server error"
	}

	var b strings.Builder
	for _, e := range entries {
		b.WriteString(stamp)
		if e.Parameter != "" {
			b.WriteString(" Error ")
			b.WriteString(e.Parameter)
			b.WriteString(": ")
		} else {
			b.WriteString(" Error: ")
		}
		b.WriteString(e.Error)
		b.WriteString("\n")
	}
	return b.String()
}
