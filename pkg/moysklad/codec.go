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
	"encoding/json"
	"errors"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

// Codec serializes request bodies and parses response bodies.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSONCodec is the default Codec backed by encoding/json.
type JSONCodec struct{}

// Marshal implements Codec.
func (JSONCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal implements Codec. Parser failures are returned as
// *errors.JSONDecodeError carrying the byte offset when known.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return decodeError(err)
	}
	return nil
}

func decodeError(err error) error {
	if err == nil {
		return nil
	}
	var jErr *skladerrors.JSONDecodeError
	if errors.As(err, &jErr) {
		return jErr
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &skladerrors.JSONDecodeError{Offset: syntaxErr.Offset, Cause: err}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &skladerrors.JSONDecodeError{Offset: typeErr.Offset, Cause: err}
	}
	return &skladerrors.JSONDecodeError{Cause: err}
}
