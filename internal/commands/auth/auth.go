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

// Package auth implements the login and logout commands.
package auth

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/tombee/moysklad/internal/cli/prompt"
	"github.com/tombee/moysklad/internal/commands/shared"
	"github.com/tombee/moysklad/internal/config"
	"github.com/tombee/moysklad/internal/log"
	"github.com/tombee/moysklad/internal/secrets"
	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

var (
	loginFlag     string
	passwordStdin bool
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store MoySklad credentials",
		Long: `Store the account login in the config file and its password in the
system keychain (macOS Keychain, Linux Secret Service, Windows Credential
Manager).

On a terminal the login and password are prompted for. Otherwise, or with
--password-stdin, the password is read as one line from standard input.

Examples:
  moysklad login --login admin@company
  echo "$PASSWORD" | moysklad login --login admin@company --password-stdin`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}

	cmd.Flags().StringVar(&loginFlag, "login", "", "Account login, e.g. admin@company")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from standard input")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored password from the keychain",
		Args:  cobra.NoArgs,
		RunE:  runLogout,
	}
}

// NewPrompter builds the prompter used by login. Tests replace it.
var NewPrompter = func(cmd *cobra.Command) prompt.Prompter {
	in := cmd.InOrStdin()
	f, ok := in.(*os.File)
	if !ok || !shared.IsInteractive(in) {
		return prompt.NewSurveyPrompter(false)
	}
	return prompt.NewSurveyPrompter(true, survey.WithStdio(f, os.Stderr, os.Stderr))
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := shared.LoadConfig()
	if err != nil {
		return err
	}

	prompter := NewPrompter(cmd)
	interactive := prompter.IsInteractive() && !passwordStdin

	login := loginFlag
	if login == "" && interactive {
		if login, err = prompter.PromptLogin(ctx, cfg.Login); err != nil {
			return err
		}
	}
	if login == "" {
		login = cfg.Login
	}
	if login == "" {
		return &skladerrors.ConfigError{Key: "login", Reason: "a login is required; pass --login"}
	}

	var password string
	if interactive {
		password, err = prompter.PromptPassword(ctx, login)
	} else {
		password, err = shared.ReadSecret(cmd.InOrStdin())
	}
	if err != nil {
		return err
	}
	if err := prompt.ValidatePassword(password); err != nil {
		return &skladerrors.ConfigError{Key: "password", Reason: err.Error()}
	}

	resolver := secrets.NewResolver(secrets.NewKeychainBackend())
	backend, err := resolver.Store(ctx, login, password)
	if err != nil {
		if skladerrors.Is(err, secrets.ErrBackendUnavailable) {
			return shared.NewConfigError("keychain unavailable; set MOYSKLAD_PASSWORD instead", err)
		}
		return err
	}

	path, err := shared.ConfigPath()
	if err != nil {
		return shared.NewConfigError("cannot locate config file", err)
	}
	cfg.Login = login
	if err := config.Save(path, cfg); err != nil {
		return shared.NewConfigError("cannot write config", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (password stored in %s)\n", log.SanitizeLogin(login), backend)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.Login == "" {
		return &skladerrors.ConfigError{Key: "login", Reason: "no login configured"}
	}

	resolver := secrets.NewResolver(secrets.NewKeychainBackend())
	if err := resolver.Forget(cmd.Context(), cfg.Login); err != nil {
		if skladerrors.Is(err, secrets.ErrSecretNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "No stored password for %s\n", log.SanitizeLogin(cfg.Login))
			return nil
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed stored password for %s\n", log.SanitizeLogin(cfg.Login))
	return nil
}
