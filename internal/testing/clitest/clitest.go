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

// Package clitest runs CLI commands against a mock API with an isolated
// config directory and keychain.
package clitest

import (
	"bytes"
	"io"
	"testing"

	"github.com/spf13/cobra"
	"github.com/zalando/go-keyring"

	"github.com/tombee/moysklad/internal/cli"
	"github.com/tombee/moysklad/internal/commands/shared"
	"github.com/tombee/moysklad/internal/testing/fixture"
	"github.com/tombee/moysklad/internal/testing/mock"
)

// Test credentials set by Setup.
const (
	Login    = "admin@acme"
	Password = "secret"
)

// Setup isolates the environment for one test and routes every client
// request to a mock API serving routes. Requests are not paced.
func Setup(t *testing.T, routes ...fixture.Route) *mock.API {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MOYSKLAD_LOGIN", Login)
	t.Setenv("MOYSKLAD_PASSWORD", Password)
	t.Setenv("MOYSKLAD_BASE_URL", "")
	t.Setenv("MOYSKLAD_REQUEST_DELAY", "0s")
	t.Setenv("MOYSKLAD_DEBUG", "")
	t.Setenv("MOYSKLAD_LOG_LEVEL", "")
	t.Setenv("LOG_LEVEL", "")
	keyring.MockInit()

	api := mock.NewAPI(routes...)
	t.Cleanup(shared.SetTransportForTest(api))
	return api
}

// Result is the outcome of one command run.
type Result struct {
	Stdout string
	Stderr string
	Err    error
}

// ExitCode maps the error to the process exit code.
func (r Result) ExitCode() int {
	return shared.ExitCodeFor(r.Err)
}

// Run executes args against a fresh root command holding cmds.
func Run(t *testing.T, stdin io.Reader, cmds []*cobra.Command, args ...string) Result {
	t.Helper()

	root := cli.NewRootCommand()
	root.AddCommand(cmds...)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	if stdin != nil {
		root.SetIn(stdin)
	} else {
		root.SetIn(&bytes.Buffer{})
	}
	root.SetArgs(args)

	err := root.Execute()
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}
