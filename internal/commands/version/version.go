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

package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tombee/moysklad/internal/commands/shared"
	"github.com/tombee/moysklad/pkg/moysklad"
)

// VersionInfo contains version metadata
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	APIURL    string `json:"api_url" yaml:"api_url"`
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	var output shared.OutputOptions

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, build date and the default API root.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd, output)
		},
	}

	shared.AddOutputFlags(cmd, &output)
	return cmd
}

func runVersion(cmd *cobra.Command, output shared.OutputOptions) error {
	v, c, b := shared.GetVersion()

	info := VersionInfo{
		Version:   v,
		Commit:    c,
		BuildDate: b,
		GoVersion: runtime.Version(),
		APIURL:    moysklad.DefaultBaseURL,
	}

	if cmd.Flags().Changed("output") || output.JQ != "" {
		if err := output.Validate(); err != nil {
			return err
		}
		value := map[string]any{
			"version":    info.Version,
			"commit":     info.Commit,
			"build_date": info.BuildDate,
			"go_version": info.GoVersion,
			"api_url":    info.APIURL,
		}
		return shared.WriteValue(cmd.Context(), cmd.OutOrStdout(), value, output)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "moysklad version %s\n", info.Version)
	fmt.Fprintf(cmd.OutOrStdout(), "  commit:     %s\n", info.Commit)
	fmt.Fprintf(cmd.OutOrStdout(), "  build date: %s\n", info.BuildDate)
	fmt.Fprintf(cmd.OutOrStdout(), "  go:         %s\n", info.GoVersion)
	fmt.Fprintf(cmd.OutOrStdout(), "  api:        %s\n", info.APIURL)

	return nil
}
