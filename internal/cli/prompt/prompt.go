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

// Package prompt collects credentials interactively.
// SurveyPrompter is used on a terminal; MockPrompter scripts answers in tests.
package prompt

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	skladerrors "github.com/tombee/moysklad/pkg/errors"
)

// ErrNotInteractive is returned when a prompt is requested without a terminal.
var ErrNotInteractive = skladerrors.New("cannot prompt in non-interactive mode")

// MaxInputSize bounds a single answer.
const MaxInputSize = 4096

// Prompter asks the user for account credentials.
type Prompter interface {
	// PromptLogin asks for the account login, offering def as the default.
	PromptLogin(ctx context.Context, def string) (string, error)

	// PromptPassword asks for the password of login without echo.
	PromptPassword(ctx context.Context, login string) (string, error)

	// IsInteractive returns true if prompts can be displayed
	IsInteractive() bool
}

// ValidateLogin checks that a login has the user@account shape.
func ValidateLogin(login string) error {
	if err := validateText(login); err != nil {
		return err
	}
	user, account, found := strings.Cut(login, "@")
	if !found || user == "" || account == "" {
		return skladerrors.New("login must look like user@account")
	}
	if strings.ContainsAny(login, " \t") {
		return skladerrors.New("login must not contain whitespace")
	}
	return nil
}

// ValidatePassword rejects empty and malformed passwords.
func ValidatePassword(password string) error {
	if password == "" {
		return skladerrors.New("password cannot be empty")
	}
	return validateText(password)
}

func validateText(input string) error {
	if len(input) > MaxInputSize {
		return fmt.Errorf("input exceeds maximum size of %d bytes", MaxInputSize)
	}
	for i, r := range input {
		if r == 0 {
			return fmt.Errorf("input contains null byte at position %d", i)
		}
		if unicode.IsControl(r) {
			return fmt.Errorf("input contains invalid control character at position %d", i)
		}
	}
	return nil
}
