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

package cli

import (
	"github.com/spf13/cobra"

	"github.com/tombee/moysklad/internal/commands/shared"
)

// Command groups shown in help output.
const (
	GroupRead    = "read"
	GroupWrite   = "write"
	GroupAccount = "account"
)

// SetVersion sets the version information (called from main)
func SetVersion(v, c, b string) {
	shared.SetVersion(v, c, b)
}

// NewRootCommand creates the root Cobra command for moysklad
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moysklad",
		Short: "moysklad - MoySklad inventory API client",
		Long: `moysklad reads and writes MoySklad entities, reports and documents
through the JSON API (remap 1.1).

Run 'moysklad login --login admin@company' to store credentials, or set
MOYSKLAD_LOGIN and MOYSKLAD_PASSWORD.
Run 'moysklad entities' to see the entity types that can be addressed.`,
		SilenceUsage:  true, // Don't show usage on errors
		SilenceErrors: true, // We handle errors ourselves for proper exit codes
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	cmd.AddGroup(
		&cobra.Group{ID: GroupRead, Title: "Read Commands:"},
		&cobra.Group{ID: GroupWrite, Title: "Write Commands:"},
		&cobra.Group{ID: GroupAccount, Title: "Account Commands:"},
	)

	flags := shared.RegisterFlagPointers()

	cmd.PersistentFlags().StringVar(flags.Config, "config", "", "Path to config file (default: ~/.config/moysklad/config.yaml)")
	cmd.PersistentFlags().BoolVarP(flags.Verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolVar(flags.Insecure, "insecure", false, "Skip TLS certificate verification")
	cmd.PersistentFlags().BoolVar(flags.Trace, "trace", false, "Print request spans to stderr")
	cmd.PersistentFlags().StringVar(flags.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")

	cmd.SetHelpCommand(NewHelpCommand(cmd))

	return cmd
}

// AddCommand adds sub to root under the given group.
func AddCommand(root *cobra.Command, group string, subs ...*cobra.Command) {
	for _, sub := range subs {
		sub.GroupID = group
		root.AddCommand(sub)
	}
}

// GetVersion returns version information
func GetVersion() (string, string, string) {
	return shared.GetVersion()
}

// HandleExitError handles exit errors with proper exit codes
func HandleExitError(err error) {
	shared.HandleExitError(err)
}
