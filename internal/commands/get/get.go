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

// Package get implements the read command.
package get

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tombee/moysklad/internal/commands/shared"
	"github.com/tombee/moysklad/pkg/moysklad"
)

// NewCommand creates the get command.
func NewCommand() *cobra.Command {
	var (
		params  []string
		filters []string
		output  shared.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "get <entity> [id|attribute] [subresource] [sub-id]",
		Short: "Read entities, reports and sub-resources",
		Long:  longHelp(),
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := output.Validate(); err != nil {
				return err
			}
			query, err := shared.ParseParams(params, filters)
			if err != nil {
				return err
			}

			return shared.WithSession(cmd, func(ctx context.Context, s *shared.Session) error {
				resp, err := s.Client.Read(ctx, args, query)
				if err != nil {
					return err
				}
				return shared.WriteResponse(ctx, cmd.OutOrStdout(), resp, output)
			})
		},
	}

	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Query parameter as key=value (repeatable)")
	cmd.Flags().StringArrayVarP(&filters, "filter", "f", nil, "Filter expression such as 'name=foo;quantity>5' (repeatable)")
	shared.AddOutputFlags(cmd, &output)

	return cmd
}

func longHelp() string {
	keys := slices.DeleteFunc(slices.Clone(moysklad.QueryKeys), func(k string) bool {
		return k == moysklad.FiltersKey
	})

	return fmt.Sprintf(`Read from the MoySklad API.

The first argument is an entity type such as "product" or "stock". The
category prefix (entity, report, pos) is resolved automatically.

Path shapes:
  get <entity>                        collection
  get <entity> metadata               bulk attribute (%s)
  get <entity> <id>                   single item
  get <entity> <id> <subresource>     %s
  get <entity> <id> <subresource> <sub-id>

Query parameters for collections and single items are limited to:
  %s
Filters are passed with --filter. Sub-resource reads forward parameters
unchecked.

Examples:
  moysklad get product --param limit=10
  moysklad get product --filter 'archived=false;name=Widget'
  moysklad get customerOrder 7944ef04-f831-11e5-7a69-971500188b19 positions
  moysklad get stock all --jq '.rows[] | {name, stock}'`,
		strings.Join(moysklad.BulkAttributes, ", "),
		strings.Join(moysklad.SubResources, ", "),
		strings.Join(keys, ", "))
}
