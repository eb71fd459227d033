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

// Package write implements the create, update and delete commands.
package write

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/tombee/moysklad/internal/commands/shared"
	"github.com/tombee/moysklad/pkg/moysklad"
)

// NewCreateCommand creates the create command.
func NewCreateCommand() *cobra.Command {
	var (
		dataPath string
		output   shared.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "create <entity> [id]",
		Short: "Create an entity with POST",
		Long: `Create an entity. The JSON document given with --data is sent
wrapped as {"data": ...}.

Examples:
  moysklad create product --data product.json
  echo '{"name":"Widget"}' | moysklad create product --data -`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id string
			if len(args) == 2 {
				id = args[1]
			}
			return runWrite(cmd, output, dataPath, func(ctx context.Context, c *moysklad.Client, payload any) (*moysklad.Response, error) {
				return c.Create(ctx, args[0], id, payload)
			})
		},
	}

	addDataFlag(cmd, &dataPath)
	shared.AddOutputFlags(cmd, &output)
	return cmd
}

// NewUpdateCommand creates the update command.
func NewUpdateCommand() *cobra.Command {
	var (
		dataPath string
		output   shared.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "update <entity> <id>",
		Short: "Update an entity with PUT",
		Long: `Update an entity by id. The JSON document given with --data is sent
wrapped as {"data": ...}.

Examples:
  moysklad update product 7944ef04-f831-11e5-7a69-971500188b19 --data changes.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, output, dataPath, func(ctx context.Context, c *moysklad.Client, payload any) (*moysklad.Response, error) {
				return c.Update(ctx, args[0], args[1], payload)
			})
		},
	}

	addDataFlag(cmd, &dataPath)
	shared.AddOutputFlags(cmd, &output)
	return cmd
}

// NewDeleteCommand creates the delete command.
func NewDeleteCommand() *cobra.Command {
	var output shared.OutputOptions

	cmd := &cobra.Command{
		Use:   "delete <entity> <id>",
		Short: "Delete an entity",
		Long: `Delete an entity by id.

Examples:
  moysklad delete product 7944ef04-f831-11e5-7a69-971500188b19`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWrite(cmd, output, "", func(ctx context.Context, c *moysklad.Client, _ any) (*moysklad.Response, error) {
				return c.Delete(ctx, args[0], args[1])
			})
		},
	}

	shared.AddOutputFlags(cmd, &output)
	return cmd
}

type writeFunc func(ctx context.Context, c *moysklad.Client, payload any) (*moysklad.Response, error)

func runWrite(cmd *cobra.Command, output shared.OutputOptions, dataPath string, fn writeFunc) error {
	if err := output.Validate(); err != nil {
		return err
	}
	raw, err := shared.ReadPayload(dataPath, cmd.InOrStdin())
	if err != nil {
		return err
	}

	// A nil json.RawMessage would marshal as "null"; keep the body absent.
	var payload any
	if raw != nil {
		payload = json.RawMessage(raw)
	}

	return shared.WithSession(cmd, func(ctx context.Context, s *shared.Session) error {
		resp, err := fn(ctx, s.Client, payload)
		if err != nil {
			return err
		}
		return shared.WriteResponse(ctx, cmd.OutOrStdout(), resp, output)
	})
}

func addDataFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "data", "d", "", "Path to a JSON payload, or - for stdin")
}
