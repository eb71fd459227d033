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
	"regexp"

	"github.com/google/uuid"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

// bareToken matches identifiers made only of letters and digits. Such values
// are reported as wrong attributes rather than malformed UUIDs.
var bareToken = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// ValidateUUID checks that id is a canonical 36-character hyphenated UUID
// (8-4-4-4-12 hex groups). The returned *errors.ValidationError has Kind
// KindEmpty for an empty id, KindWrongAttribute for a bare alphanumeric token
// and KindInvalidFormat for anything else.
func ValidateUUID(id string) error {
	if id == "" {
		return &skladerrors.ValidationError{
			Kind:    skladerrors.KindEmpty,
			Field:   "uuid",
			Message: "the uuid can not be empty",
		}
	}

	if IsUUID(id) {
		return nil
	}

	if bareToken.MatchString(id) {
		return &skladerrors.ValidationError{
			Kind:    skladerrors.KindWrongAttribute,
			Field:   "uuid",
			Value:   id,
			Message: fmt.Sprintf("wrong attribute: `%s`", id),
		}
	}

	return &skladerrors.ValidationError{
		Kind:    skladerrors.KindInvalidFormat,
		Field:   "uuid",
		Value:   id,
		Message: "the uuid has invalid format",
	}
}

// IsUUID reports whether id is in canonical hyphenated form.
// uuid.Parse alone also accepts braces, urn prefixes and the 32-character
// form, so the length is pinned first.
func IsUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
