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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var fixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMessage string
		wantEntries int
	}{
		{
			name:        "entries with and without parameter",
			body:        `{"errors":[{"parameter":"name","error":"required","code":3000},{"error":"boom"}]}`,
			wantMessage: "[2024-01-02 03:04:05] Error name: required\n[2024-01-02 03:04:05] Error: boom\n",
			wantEntries: 2,
		},
		{
			name:        "no entries",
			body:        `{"errors":[]}`,
			wantMessage: "[2024-01-02 03:04:05] Internal server error",
		},
		{
			name:        "empty body",
			body:        ``,
			wantMessage: "[2024-01-02 03:04:05] Internal server error",
		},
		{
			name:        "html body",
			body:        `<html>Bad Gateway</html>`,
			wantMessage: "[2024-01-02 03:04:05] Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newAPIError(412, []byte(tt.body), fixedTime, JSONCodec{})
			assert.Equal(t, 412, err.StatusCode)
			assert.Equal(t, tt.wantMessage, err.Message)
			assert.Len(t, err.Entries, tt.wantEntries)
		})
	}
}

func TestNewAPIError_KeepsEntryDetails(t *testing.T) {
	err := newAPIError(400, []byte(`{"errors":[{"parameter":"limit","error":"too big","code":1002,"moreInfo":"https://dev.moysklad.ru"}]}`), fixedTime, JSONCodec{})
	if assert.Len(t, err.Entries, 1) {
		assert.Equal(t, 1002, err.Entries[0].Code)
		assert.Equal(t, "https://dev.moysklad.ru", err.Entries[0].MoreInfo)
	}
	assert.Equal(t, "api error [HTTP 400]: [2024-01-02 03:04:05] Error limit: too big", err.Error())
}
