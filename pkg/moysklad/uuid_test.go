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
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

func TestValidateUUID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		wantKind skladerrors.ValidationKind
	}{
		{name: "canonical lowercase", id: "b1e2c3d4-0000-4a5b-9c6d-7e8f90123456"},
		{name: "canonical uppercase", id: "B1E2C3D4-0000-4A5B-9C6D-7E8F90123456"},
		{name: "generated", id: uuid.NewString()},
		{name: "empty", id: "", wantKind: skladerrors.KindEmpty},
		{name: "bare token", id: "abc123", wantKind: skladerrors.KindWrongAttribute},
		{name: "bare letters", id: "metadata", wantKind: skladerrors.KindWrongAttribute},
		{name: "missing hyphens", id: "b1e2c3d400004a5b9c6d7e8f90123456", wantKind: skladerrors.KindWrongAttribute},
		{name: "bad characters", id: "not-a-uuid!", wantKind: skladerrors.KindInvalidFormat},
		{name: "non hex group", id: "g1e2c3d4-0000-4a5b-9c6d-7e8f90123456", wantKind: skladerrors.KindInvalidFormat},
		{name: "braced", id: "{b1e2c3d4-0000-4a5b-9c6d-7e8f90123456}", wantKind: skladerrors.KindInvalidFormat},
		{name: "urn form", id: "urn:uuid:b1e2c3d4-0000-4a5b-9c6d-7e8f90123456", wantKind: skladerrors.KindInvalidFormat},
		{name: "whitespace", id: " ", wantKind: skladerrors.KindInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUUID(tt.id)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *skladerrors.ValidationError
			if assert.ErrorAs(t, err, &vErr) {
				assert.Equal(t, tt.wantKind, vErr.Kind)
			}
		})
	}
}

func TestValidateUUID_WrongAttributeNamesValue(t *testing.T) {
	err := ValidateUUID("bystock")
	assert.True(t, strings.Contains(err.Error(), "`bystock`"), err.Error())
}
