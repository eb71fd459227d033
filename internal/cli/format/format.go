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

// Package format colors command output for terminals.
package format

import (
	"bytes"
	"regexp"

	"github.com/alecthomas/chroma/v2/quick"
)

// Lexers understood by Highlight.
const (
	LexerJSON = "json"
	LexerYAML = "yaml"
)

// maxHighlightSize is the largest output that gets colored; bigger documents
// are printed plain.
const maxHighlightSize = 2 * 1024 * 1024

// ansiEscapeRegex matches ANSI escape sequences for sanitization.
var ansiEscapeRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// SanitizeANSI removes ANSI escape sequences from a string.
func SanitizeANSI(s string) string {
	return ansiEscapeRegex.ReplaceAllString(s, "")
}

// Highlight returns content with terminal syntax highlighting when color is
// set. Escape sequences already present in content are removed first so that
// API data cannot drive the terminal.
func Highlight(content, lexer string, color bool) string {
	if !color || len(content) > maxHighlightSize {
		return content
	}

	clean := SanitizeANSI(content)
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, clean, lexer, "terminal256", "monokai"); err != nil {
		return clean
	}
	return buf.String()
}
