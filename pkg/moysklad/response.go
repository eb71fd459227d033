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
	"bytes"
	"iter"
	"net/http"
	"sort"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

// Response is the read-only result of a successful call.
//
// Top-level fields of a JSON object body are reachable by name. Values
// returned by Get share memory with the response and must not be modified.
type Response struct {
	statusCode int
	headers    http.Header
	raw        []byte
	value      any
	fields     map[string]any
	codec      Codec
}

func newResponse(status int, headers http.Header, body []byte, codec Codec) (*Response, error) {
	r := &Response{
		statusCode: status,
		headers:    headers,
		raw:        body,
		codec:      codec,
	}

	if len(bytes.TrimSpace(body)) == 0 {
		r.fields = map[string]any{}
		r.value = r.fields
		return r, nil
	}

	if err := codec.Unmarshal(body, &r.value); err != nil {
		return nil, decodeError(err)
	}
	if obj, ok := r.value.(map[string]any); ok {
		r.fields = obj
	} else {
		r.fields = map[string]any{}
	}
	return r, nil
}

// StatusCode returns the HTTP status of the response.
func (r *Response) StatusCode() int {
	return r.statusCode
}

// Header returns the first value of a response header.
func (r *Response) Header(name string) string {
	if r.headers == nil {
		return ""
	}
	return r.headers.Get(name)
}

// IsSuccessful reports whether the status is below 400.
func (r *Response) IsSuccessful() bool {
	return r.statusCode < 400
}

// Get returns a top-level field, or *errors.NotFoundError when it is absent.
func (r *Response) Get(name string) (any, error) {
	v, ok := r.fields[name]
	if !ok {
		return nil, &skladerrors.NotFoundError{Resource: "field", ID: name}
	}
	return v, nil
}

// Lookup returns a top-level field and whether it was present.
func (r *Response) Lookup(name string) (any, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Has reports whether a top-level field is present.
func (r *Response) Has(name string) bool {
	_, ok := r.fields[name]
	return ok
}

// Keys returns the top-level field names in sorted order.
func (r *Response) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of top-level fields.
func (r *Response) Len() int {
	return len(r.fields)
}

// Fields iterates over the top-level fields in sorted key order.
func (r *Response) Fields() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range r.Keys() {
			if !yield(k, r.fields[k]) {
				return
			}
		}
	}
}

// Value returns the whole decoded body. It is a map for object bodies and
// may be a slice or scalar otherwise.
func (r *Response) Value() any {
	return r.value
}

// Raw returns the undecoded response body.
func (r *Response) Raw() []byte {
	return r.raw
}

// Decode unmarshals the raw body into v.
func (r *Response) Decode(v any) error {
	if len(bytes.TrimSpace(r.raw)) == 0 {
		return nil
	}
	return decodeError(r.codec.Unmarshal(r.raw, v))
}

// Set always fails: responses are read-only.
func (r *Response) Set(string, any) error {
	return &skladerrors.NotAllowedError{Operation: "set"}
}

// Remove always fails: responses are read-only.
func (r *Response) Remove(string) error {
	return &skladerrors.NotAllowedError{Operation: "remove"}
}
