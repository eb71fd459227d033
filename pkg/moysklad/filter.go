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
	"fmt"
	"strings"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

// Operand is a comparison operator accepted in a filter expression.
type Operand string

const (
	OpEqual          Operand = "="
	OpNotEqual       Operand = "!="
	OpGreater        Operand = ">"
	OpLess           Operand = "<"
	OpGreaterOrEqual Operand = ">="
	OpLessOrEqual    Operand = "<="
)

// Operands lists every accepted operand, two-character forms first.
var Operands = []Operand{OpGreaterOrEqual, OpLessOrEqual, OpNotEqual, OpEqual, OpGreater, OpLess}

// Valid reports whether o is one of Operands.
func (o Operand) Valid() bool {
	for _, op := range Operands {
		if op == o {
			return true
		}
	}
	return false
}

// Filter is a single field/operand/value clause.
type Filter struct {
	Field   string
	Operand Operand
	Value   string
}

// Valid reports whether the clause can be rendered. Only the operand is
// checked.
func (f Filter) Valid() bool {
	return f.Operand.Valid()
}

// String renders the clause as field, operand and value concatenated.
func (f Filter) String() string {
	return f.Field + string(f.Operand) + f.Value
}

// Filters is an ordered set of clauses joined with ';' on the wire.
type Filters []Filter

// Expression joins the valid clauses with ';'. Invalid clauses are dropped
// silently and never produce a trailing separator.
func (fs Filters) Expression() string {
	parts := make([]string, 0, len(fs))
	for _, f := range fs {
		if !f.Valid() {
			continue
		}
		parts = append(parts, f.String())
	}
	return strings.Join(parts, ";")
}

// String renders the set as the query fragment "filter=<expression>".
// Values are not percent-encoded: the remote parser reads the expression raw.
func (fs Filters) String() string {
	return "filter=" + fs.Expression()
}

// ParseFilter parses a single clause such as "state.name=Done" or
// "moment>=2024-01-01". The first operator in the text splits field from value.
func ParseFilter(expr string) (Filter, error) {
	idx := strings.IndexAny(expr, "=<>!")
	if idx <= 0 {
		return Filter{}, invalidFilter(expr, "expected <field><operand><value>")
	}

	var op Operand
	if idx+1 < len(expr) && expr[idx+1] == '=' && expr[idx] != '=' {
		op = Operand(expr[idx : idx+2])
	} else {
		op = Operand(expr[idx : idx+1])
	}
	if !op.Valid() {
		return Filter{}, invalidFilter(expr, fmt.Sprintf("unsupported operand %q", op))
	}

	return Filter{
		Field:   expr[:idx],
		Operand: op,
		Value:   expr[idx+len(op):],
	}, nil
}

// ParseFilters parses a ';'-separated expression. Empty clauses are skipped.
func ParseFilters(expr string) (Filters, error) {
	var fs Filters
	for _, part := range strings.Split(expr, ";") {
		if part == "" {
			continue
		}
		f, err := ParseFilter(part)
		if err != nil {
			return nil, err
		}
		fs = append(fs, f)
	}
	return fs, nil
}

func invalidFilter(expr, reason string) error {
	return &skladerrors.ValidationError{
		Kind:    skladerrors.KindInvalidValue,
		Field:   "filter",
		Value:   expr,
		Message: fmt.Sprintf("invalid filter %q: %s", expr, reason),
	}
}
