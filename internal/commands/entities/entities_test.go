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

package entities

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/moysklad/pkg/moysklad"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	cmd := NewCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return buf.String()
}

func TestList(t *testing.T) {
	r := moysklad.NewRegistry(map[string]moysklad.Category{
		"product":    moysklad.CategoryEntity,
		"stock":      moysklad.CategoryReport,
		"assortment": moysklad.CategoryPOS,
	})

	assert.Equal(t, []Entry{
		{Name: "assortment", Category: "pos"},
		{Name: "product", Category: "entity"},
		{Name: "stock", Category: "report"},
	}, List(r, ""))

	assert.Equal(t, []Entry{{Name: "stock", Category: "report"}}, List(r, "report"))
	assert.Empty(t, List(r, "unknown"))
}

func TestEntitiesCommand_Table(t *testing.T) {
	out := execute(t)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, moysklad.DefaultRegistry().Len()+1)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, out, "stock")
}

func TestEntitiesCommand_Category(t *testing.T) {
	out := execute(t, "--category", "pos")

	for _, line := range strings.Split(strings.TrimSpace(out), "\n")[1:] {
		assert.True(t, strings.HasSuffix(line, "pos"), line)
	}
	assert.Contains(t, out, "assortment")
	assert.NotContains(t, out, "product")
}

func TestEntitiesCommand_JSON(t *testing.T) {
	out := execute(t, "-o", "json", "--category", "report")

	var entries []Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Equal(t, []Entry{{Name: "stock", Category: "report"}}, entries)
}

func TestEntitiesCommand_JQ(t *testing.T) {
	out := execute(t, "--jq", "map(select(.category == \"pos\")) | length")
	assert.Equal(t, "3\n", out)
}
