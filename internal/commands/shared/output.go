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
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	clifmt "github.com/tombee/moysklad/internal/cli/format"
	"github.com/tombee/moysklad/internal/jq"
	skladerrors "github.com/tombee/moysklad/pkg/errors"
	"github.com/tombee/moysklad/pkg/moysklad"
)

// Output formats
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// OutputOptions controls how responses are printed.
type OutputOptions struct {
	Format string
	JQ     string
}

// AddOutputFlags registers --output and --jq on cmd.
func AddOutputFlags(cmd *cobra.Command, opts *OutputOptions) {
	cmd.Flags().StringVarP(&opts.Format, "output", "o", OutputJSON, "Output format: json or yaml")
	cmd.Flags().StringVar(&opts.JQ, "jq", "", "jq expression applied to the response before printing")
}

// Validate checks the output options before any request is made.
func (o OutputOptions) Validate() error {
	if o.Format != OutputJSON && o.Format != OutputYAML {
		return &skladerrors.ValidationError{
			Kind:    skladerrors.KindInvalidValue,
			Field:   "output",
			Value:   o.Format,
			Message: fmt.Sprintf("unknown output format %q (want json or yaml)", o.Format),
		}
	}
	if o.JQ != "" {
		if _, err := jq.Compile(o.JQ); err != nil {
			return &skladerrors.ValidationError{
				Kind:    skladerrors.KindInvalidValue,
				Field:   "jq",
				Value:   o.JQ,
				Message: err.Error(),
			}
		}
	}
	return nil
}

// WriteResponse prints the decoded response body.
func WriteResponse(ctx context.Context, w io.Writer, resp *moysklad.Response, opts OutputOptions) error {
	return WriteValue(ctx, w, resp.Value(), opts)
}

// WriteValue prints value, or each jq result in turn when --jq is set.
func WriteValue(ctx context.Context, w io.Writer, value any, opts OutputOptions) error {
	results := []any{value}
	if opts.JQ != "" {
		var err error
		results, err = jq.Apply(ctx, opts.JQ, value)
		if err != nil {
			return err
		}
	}

	for _, v := range results {
		if err := encode(w, v, opts.Format); err != nil {
			return err
		}
	}
	return nil
}

func encode(w io.Writer, v any, format string) error {
	var buf bytes.Buffer
	lexer := clifmt.LexerJSON

	switch format {
	case OutputYAML:
		lexer = clifmt.LexerYAML
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	}

	_, err := io.WriteString(w, clifmt.Highlight(buf.String(), lexer, clifmt.IsTTY(w)))
	return err
}
