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

// Package entities implements the entities command.
package entities

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tombee/moysklad/internal/commands/shared"
	"github.com/tombee/moysklad/pkg/moysklad"
)

// Entry is one entity type and its path category.
type Entry struct {
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

// NewCommand creates the entities command.
func NewCommand() *cobra.Command {
	var (
		category string
		output   shared.OutputOptions
	)

	cmd := &cobra.Command{
		Use:   "entities",
		Short: "List the entity types the client can address",
		Long: `List every known entity type with the category prefix used to build
its path (entity, report or pos).

Examples:
  moysklad entities
  moysklad entities --category report
  moysklad entities -o json --jq '.[].name'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := !cmd.Flags().Changed("output") && output.JQ == ""
			if !table {
				if err := output.Validate(); err != nil {
					return err
				}
			}

			entries := List(moysklad.DefaultRegistry(), category)
			if table {
				return writeTable(cmd, entries)
			}

			values := make([]any, 0, len(entries))
			for _, e := range entries {
				values = append(values, map[string]any{"name": e.Name, "category": e.Category})
			}
			return shared.WriteValue(cmd.Context(), cmd.OutOrStdout(), values, output)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only list one category (entity, report, pos)")
	shared.AddOutputFlags(cmd, &output)

	return cmd
}

// List returns the registry entries in name order, optionally restricted to
// one category.
func List(r *moysklad.Registry, category string) []Entry {
	var entries []Entry
	for _, name := range r.Names() {
		c, _ := r.Lookup(name)
		if category != "" && string(c) != category {
			continue
		}
		entries = append(entries, Entry{Name: name, Category: string(c)})
	}
	return entries
}

func writeTable(cmd *cobra.Command, entries []Entry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCATEGORY")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\n", e.Name, e.Category)
	}
	return w.Flush()
}
