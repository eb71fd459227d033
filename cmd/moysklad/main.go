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

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tombee/moysklad/internal/cli"
	"github.com/tombee/moysklad/internal/commands/auth"
	"github.com/tombee/moysklad/internal/commands/entities"
	"github.com/tombee/moysklad/internal/commands/get"
	versioncmd "github.com/tombee/moysklad/internal/commands/version"
	"github.com/tombee/moysklad/internal/commands/write"
)

// Version information (injected via ldflags at build time)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	cli.SetVersion(version, commit, buildDate)

	rootCmd := cli.NewRootCommand()

	cli.AddCommand(rootCmd, cli.GroupRead,
		get.NewCommand(),
		entities.NewCommand(),
	)
	cli.AddCommand(rootCmd, cli.GroupWrite,
		write.NewCreateCommand(),
		write.NewUpdateCommand(),
		write.NewDeleteCommand(),
	)
	cli.AddCommand(rootCmd, cli.GroupAccount,
		auth.NewLoginCommand(),
		auth.NewLogoutCommand(),
		versioncmd.NewVersionCommand(),
	)

	// Ctrl-C cancels the in-flight request, which ends the retry loop.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		cli.HandleExitError(err)
	}
}
