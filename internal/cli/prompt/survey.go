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

package prompt

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// SurveyPrompter implements Prompter using the survey library.
type SurveyPrompter struct {
	interactive bool
	opts        []survey.AskOpt
}

// NewSurveyPrompter creates a new survey-based prompter. Extra options such
// as survey.WithStdio are passed to every question.
func NewSurveyPrompter(interactive bool, opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{
		interactive: interactive,
		opts:        opts,
	}
}

// PromptLogin asks for the login using survey.Input.
func (sp *SurveyPrompter) PromptLogin(ctx context.Context, def string) (string, error) {
	if !sp.interactive {
		return "", ErrNotInteractive
	}

	var result string
	q := &survey.Input{
		Message: "MoySklad login:",
		Default: def,
		Help:    "The account login, e.g. admin@company",
	}
	opts := append([]survey.AskOpt{survey.WithValidator(validator(ValidateLogin))}, sp.opts...)
	if err := survey.AskOne(q, &result, opts...); err != nil {
		return "", err
	}
	return result, nil
}

// PromptPassword asks for the password using survey.Password.
func (sp *SurveyPrompter) PromptPassword(ctx context.Context, login string) (string, error) {
	if !sp.interactive {
		return "", ErrNotInteractive
	}

	var result string
	q := &survey.Password{
		Message: fmt.Sprintf("Password for %s:", login),
	}
	opts := append([]survey.AskOpt{survey.WithValidator(validator(ValidatePassword))}, sp.opts...)
	if err := survey.AskOne(q, &result, opts...); err != nil {
		return "", err
	}
	return result, nil
}

// IsInteractive returns true if the prompter can display prompts.
func (sp *SurveyPrompter) IsInteractive() bool {
	return sp.interactive
}

func validator(fn func(string) error) survey.Validator {
	return func(ans interface{}) error {
		if str, ok := ans.(string); ok {
			return fn(str)
		}
		return nil
	}
}
