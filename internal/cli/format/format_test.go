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

package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestSanitizeANSI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"color", "\x1b[31mred\x1b[0m", "red"},
		{"cursor", "a\x1b[2Jb", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeANSI(tt.input); got != tt.want {
				t.Errorf("SanitizeANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHighlight_NoColor(t *testing.T) {
	content := "{\n  \"name\": \"\x1b[31mWidget\"\n}\n"
	if got := Highlight(content, LexerJSON, false); got != content {
		t.Errorf("expected content unchanged without color, got %q", got)
	}
}

func TestHighlight_Color(t *testing.T) {
	got := Highlight("{\"name\": \"Widget\"}\n", LexerJSON, true)

	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI color codes, got %q", got)
	}
	if SanitizeANSI(got) != "{\"name\": \"Widget\"}\n" {
		t.Errorf("highlighting changed the text: %q", SanitizeANSI(got))
	}
}

func TestHighlight_TooLarge(t *testing.T) {
	content := strings.Repeat("a", maxHighlightSize+1)
	if got := Highlight(content, LexerYAML, true); got != content {
		t.Error("expected oversized content to be returned unchanged")
	}
}

func TestIsTTY(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("NO_COLOR", "")

	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is not a terminal")
	}

	t.Setenv("NO_COLOR", "1")
	if IsTTY(&bytes.Buffer{}) {
		t.Error("NO_COLOR must disable terminal formatting")
	}
}
