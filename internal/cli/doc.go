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

/*
Package cli provides the root command for the moysklad CLI.

This package creates the root Cobra command, binds the persistent flags and
handles exit codes. Individual commands are implemented in the
internal/commands subpackages.

# Command Tree

	moysklad
	├── get        Read entities, reports and sub-resources
	├── create     Create an entity
	├── update     Update an entity
	├── delete     Delete an entity
	├── entities   List known entity types
	├── login      Store credentials
	├── logout     Remove the stored password
	├── version    Show version
	└── help       Show help

# Usage

From main.go:

	cli.SetVersion(version, commit, date)
	rootCmd := cli.NewRootCommand()
	// ... add commands ...
	if err := rootCmd.ExecuteContext(ctx); err != nil {
	    cli.HandleExitError(err)
	}

# Global Flags

	--config         Path to config file
	--verbose, -v    Debug logging to stderr
	--insecure       Skip TLS certificate verification
	--trace          Print OpenTelemetry spans to stderr
	--metrics-file   Write Prometheus metrics to a file on exit

# Exit Codes

	0  success
	1  unexpected failure
	2  invalid input, rejected before any request
	3  the API answered with an error or a malformed body
	4  network failure after retries
	5  configuration or credentials problem
*/
package cli
