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
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
	"github.com/tombee/moysklad/pkg/moysklad"
)

// ParseParams turns repeated --param key=value and --filter flags into
// request parameters. A repeated key keeps its last value.
func ParseParams(pairs, filters []string) (moysklad.Params, error) {
	params := moysklad.Params{}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, &skladerrors.ValidationError{
				Kind:    skladerrors.KindInvalidValue,
				Field:   "param",
				Value:   pair,
				Message: fmt.Sprintf("expected key=value, got %q", pair),
			}
		}
		params[key] = value
	}

	if len(filters) > 0 {
		var fs moysklad.Filters
		for _, expr := range filters {
			clauses, err := moysklad.ParseFilters(expr)
			if err != nil {
				return nil, err
			}
			fs = append(fs, clauses...)
		}
		params[moysklad.FiltersKey] = fs
	}
	return params, nil
}

// ReadPayload reads a JSON document from path, or from stdin when path is
// "-". An empty path means no payload.
func ReadPayload(path string, stdin io.Reader) (json.RawMessage, error) {
	if path == "" {
		return nil, nil
	}

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payload: %w", err)
	}

	if !json.Valid(data) {
		return nil, &skladerrors.ValidationError{
			Kind:    skladerrors.KindInvalidValue,
			Field:   "data",
			Value:   path,
			Message: "payload is not valid JSON",
		}
	}
	return json.RawMessage(data), nil
}

// ReadSecret reads one line from r without the trailing newline.
func ReadSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// IsInteractive reports whether r is a terminal.
func IsInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
