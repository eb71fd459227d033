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

package write_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/moysklad/internal/commands/shared"
	"github.com/tombee/moysklad/internal/commands/write"
	"github.com/tombee/moysklad/internal/testing/clitest"
	"github.com/tombee/moysklad/internal/testing/fixture"
	"github.com/tombee/moysklad/pkg/moysklad"
)

const (
	base      = "https://online.moysklad.ru/api/remap/1.1/"
	productID = "7944ef04-f831-11e5-7a69-971500188b19"
)

func commands() []*cobra.Command {
	return []*cobra.Command{write.NewCreateCommand(), write.NewUpdateCommand(), write.NewDeleteCommand()}
}

func TestCreate_FromStdin(t *testing.T) {
	api := clitest.Setup(t, fixture.Route{Method: "POST", Path: "entity/product", Status: 200, Body: `{"id":"` + productID + `","name":"Widget"}`})

	res := clitest.Run(t, strings.NewReader(`{"name":"Widget"}`), commands(), "create", "product", "--data", "-", "--jq", ".id")
	require.NoError(t, res.Err)
	assert.Equal(t, "\""+productID+"\"\n", res.Stdout)

	req := api.LastRequest()
	require.NotNil(t, req)
	assert.Equal(t, "POST", req.Method)
	assert.Equal(t, base+"entity/product", req.URL)
	assert.JSONEq(t, `{"data":{"name":"Widget"}}`, string(req.Body))
	assert.Equal(t, "application/json", req.Headers["Content-Type"])
}

func TestCreate_FromFileWithID(t *testing.T) {
	api := clitest.Setup(t, fixture.Route{Method: "POST", Path: "entity/product/" + productID, Status: 200, Body: `{}`})

	path := filepath.Join(t.TempDir(), "product.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"code":"w-1"}`), 0o600))

	res := clitest.Run(t, nil, commands(), "create", "product", productID, "--data", path)
	require.NoError(t, res.Err)
	assert.Equal(t, base+"entity/product/"+productID, api.LastRequest().URL)
	assert.JSONEq(t, `{"data":{"code":"w-1"}}`, string(api.LastRequest().Body))
}

func TestCreate_WithoutPayload(t *testing.T) {
	api := clitest.Setup(t, fixture.Route{Method: "POST", Path: "entity/product", Status: 200, Body: `{}`})

	res := clitest.Run(t, nil, commands(), "create", "product")
	require.NoError(t, res.Err)
	assert.Nil(t, api.LastRequest().Body)
	assert.NotContains(t, api.LastRequest().Headers, "Content-Type")
}

func TestCreate_PayloadTooLarge(t *testing.T) {
	api := clitest.Setup(t)

	// {"data":...} adds 9 bytes, so this body is one byte over the limit.
	doc := `"` + strings.Repeat("a", moysklad.MaxBodySize-10) + `"`
	res := clitest.Run(t, strings.NewReader(doc), commands(), "create", "product", "--data", "-")
	require.Error(t, res.Err)
	assert.Equal(t, shared.ExitValidation, res.ExitCode())
	assert.Empty(t, api.Requests())
}

func TestCreate_InvalidPayload(t *testing.T) {
	api := clitest.Setup(t)

	res := clitest.Run(t, strings.NewReader(`{"name":`), commands(), "create", "product", "--data", "-")
	require.Error(t, res.Err)
	assert.Equal(t, shared.ExitValidation, res.ExitCode())
	assert.Empty(t, api.Requests())
}

func TestUpdate(t *testing.T) {
	api := clitest.Setup(t, fixture.Route{Method: "PUT", Path: "entity/product/" + productID, Status: 200, Body: `{"name":"Renamed"}`})

	res := clitest.Run(t, strings.NewReader(`{"name":"Renamed"}`), commands(), "update", "product", productID, "-d", "-")
	require.NoError(t, res.Err)
	assert.JSONEq(t, `{"name":"Renamed"}`, res.Stdout)

	req := api.LastRequest()
	assert.Equal(t, "PUT", req.Method)
	assert.JSONEq(t, `{"data":{"name":"Renamed"}}`, string(req.Body))
}

func TestUpdate_RequiresID(t *testing.T) {
	clitest.Setup(t)

	res := clitest.Run(t, nil, commands(), "update", "product")
	require.Error(t, res.Err)
}

func TestDelete(t *testing.T) {
	api := clitest.Setup(t, fixture.Route{Method: "DELETE", Path: "entity/product/" + productID, Status: 200})

	res := clitest.Run(t, nil, commands(), "delete", "product", productID)
	require.NoError(t, res.Err)
	assert.Equal(t, "{}\n", res.Stdout)

	req := api.LastRequest()
	assert.Equal(t, "DELETE", req.Method)
	assert.Nil(t, req.Body)
	assert.Equal(t, "application/json", req.Headers["Content-Type"])
}

func TestDelete_InvalidID(t *testing.T) {
	api := clitest.Setup(t)

	for _, id := range []string{"metadata", "not-a-uuid"} {
		res := clitest.Run(t, nil, commands(), "delete", "product", id)
		require.Error(t, res.Err, id)
		assert.Equal(t, shared.ExitValidation, res.ExitCode(), id)
	}
	assert.Empty(t, api.Requests())
}

func TestDelete_APIError(t *testing.T) {
	clitest.Setup(t, fixture.Route{
		Method: "DELETE",
		Path:   "entity/product/" + productID,
		Status: 412,
		Body:   `{"errors":[{"parameter":"id","error":"entity is in use"},{"error":"second"}]}`,
	})

	res := clitest.Run(t, nil, commands(), "delete", "product", productID)
	require.Error(t, res.Err)
	assert.Equal(t, shared.ExitAPI, res.ExitCode())
	assert.Contains(t, res.Err.Error(), "Error id: entity is in use")
	assert.Contains(t, res.Err.Error(), "Error: second")
}
