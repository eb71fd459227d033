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
	"encoding/base64"
	"fmt"
	"strings"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
	"github.com/tombee/moysklad/pkg/transport"
)

// MaxBodySize is the largest serialized write body the API accepts (10 MiB).
const MaxBodySize = 10 * 1024 * 1024

// envelope is the wire shape of every write body.
type envelope struct {
	Data any `json:"data"`
}

// encodeBody serializes payload inside the write envelope and enforces
// MaxBodySize. A nil payload yields no body.
func encodeBody(codec Codec, payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	body, err := codec.Marshal(envelope{Data: payload})
	if err != nil {
		return nil, &skladerrors.ValidationError{
			Kind:    skladerrors.KindInvalidValue,
			Field:   "payload",
			Message: fmt.Sprintf("payload can not be serialized: %v", err),
		}
	}
	if len(body) > MaxBodySize {
		return nil, &skladerrors.PayloadTooLargeError{Size: len(body), Limit: MaxBodySize}
	}
	return body, nil
}

// basicAuth returns the Authorization header value for login and password.
func basicAuth(login, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(login+":"+password))
}

// checkMethod rejects methods the API does not accept.
func checkMethod(method string) error {
	if transport.IsAllowedMethod(method) {
		return nil
	}
	return &skladerrors.ValidationError{
		Kind:    skladerrors.KindUnsupportedMethod,
		Field:   "method",
		Value:   method,
		Message: fmt.Sprintf("method %q is not supported, allowed methods: %s", method, strings.Join(transport.AllowedMethods, ", ")),
	}
}
