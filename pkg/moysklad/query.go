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
	"net/url"
	"strconv"
	"strings"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

// FiltersKey is the reserved Params key holding a Filters value. It is
// rendered as a raw "filter=" fragment instead of a percent-encoded pair.
const FiltersKey = "filters"

// Params are the query parameters of a read. Values are rendered with
// their natural string form; nil values are omitted.
type Params map[string]any

// Keys returns the parameter names in no particular order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	return keys
}

// EncodeQuery renders params as a query string without the leading '?'.
// Ordinary pairs are percent-encoded and sorted by key. The FiltersKey entry,
// when it holds at least one clause, is appended last as a raw "filter="
// fragment.
func EncodeQuery(params Params) (string, error) {
	values := url.Values{}
	var filters Filters

	for key, value := range params {
		if key == FiltersKey {
			fs, err := asFilters(value)
			if err != nil {
				return "", err
			}
			filters = fs
			continue
		}
		if value == nil {
			continue
		}
		values.Set(key, formatValue(value))
	}

	query := values.Encode()
	if len(filters) > 0 {
		if query != "" {
			query += "&"
		}
		query += filters.String()
	}
	return query, nil
}

// DecodeQuery parses a query string produced by EncodeQuery. Ordinary values
// come back as strings; a "filter" pair is parsed back into Filters under
// FiltersKey.
func DecodeQuery(raw string) (Params, error) {
	raw = strings.TrimPrefix(raw, "?")
	params := Params{}
	if raw == "" {
		return params, nil
	}

	for _, pair := range strings.Split(raw, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		if name == "filter" {
			fs, err := ParseFilters(value)
			if err != nil {
				return nil, err
			}
			params[FiltersKey] = fs
			continue
		}

		key, err := url.QueryUnescape(name)
		if err != nil {
			return nil, invalidQuery(pair, err)
		}
		val, err := url.QueryUnescape(value)
		if err != nil {
			return nil, invalidQuery(pair, err)
		}
		params[key] = val
	}
	return params, nil
}

func asFilters(value any) (Filters, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case Filters:
		return v, nil
	case []Filter:
		return Filters(v), nil
	case Filter:
		return Filters{v}, nil
	default:
		return nil, &skladerrors.ValidationError{
			Kind:    skladerrors.KindInvalidValue,
			Field:   FiltersKey,
			Message: fmt.Sprintf("%s must be a filter set, got %T", FiltersKey, value),
		}
	}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func invalidQuery(pair string, err error) error {
	return &skladerrors.ValidationError{
		Kind:    skladerrors.KindInvalidValue,
		Field:   "query",
		Value:   pair,
		Message: err.Error(),
	}
}
