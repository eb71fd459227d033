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
	"net/url"
	"strings"

	"github.com/tombee/moysklad/internal/log"
)

// sensitiveParams contains query parameter names that should be redacted from logs.
// These are matched case-insensitively as substrings.
var sensitiveParams = []string{
	"password",
	"token",
	"secret",
	"auth",
}

// SanitizeURL removes user info and redacts sensitive query parameters so the
// URL can be logged. Unparseable input is replaced entirely.
func SanitizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "[UNPARSEABLE URL]"
	}

	safe := *u
	safe.User = nil

	if safe.RawQuery != "" {
		parts := strings.Split(safe.RawQuery, "&")
		for i, part := range parts {
			name, value, found := strings.Cut(part, "=")
			if found && isSensitiveParam(name) {
				parts[i] = name + "=" + log.SanitizeSecret(value)
			}
		}
		safe.RawQuery = strings.Join(parts, "&")
	}

	return safe.String()
}

func isSensitiveParam(param string) bool {
	lower := strings.ToLower(param)
	for _, sensitive := range sensitiveParams {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}
