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
)

// MockPrompter implements Prompter with scripted responses for testing.
type MockPrompter struct {
	responses    []string
	currentIndex int
	interactive  bool
	callLog      []string
}

// NewMockPrompter creates a new mock prompter with pre-scripted responses,
// consumed in order across all prompts.
func NewMockPrompter(interactive bool, responses ...string) *MockPrompter {
	return &MockPrompter{
		responses:   responses,
		interactive: interactive,
		callLog:     make([]string, 0),
	}
}

// PromptLogin returns the next response, or def when the script is exhausted.
func (mp *MockPrompter) PromptLogin(ctx context.Context, def string) (string, error) {
	mp.callLog = append(mp.callLog, "PromptLogin")
	if !mp.interactive {
		return "", ErrNotInteractive
	}
	answer, ok := mp.next()
	if !ok {
		return def, nil
	}
	if err := ValidateLogin(answer); err != nil {
		return "", err
	}
	return answer, nil
}

// PromptPassword returns the next response.
func (mp *MockPrompter) PromptPassword(ctx context.Context, login string) (string, error) {
	mp.callLog = append(mp.callLog, fmt.Sprintf("PromptPassword(%s)", login))
	if !mp.interactive {
		return "", ErrNotInteractive
	}
	answer, ok := mp.next()
	if !ok {
		return "", fmt.Errorf("no scripted password")
	}
	if err := ValidatePassword(answer); err != nil {
		return "", err
	}
	return answer, nil
}

// IsInteractive returns the configured interactive mode.
func (mp *MockPrompter) IsInteractive() bool {
	return mp.interactive
}

// GetCallLog returns the prompts asked so far.
func (mp *MockPrompter) GetCallLog() []string {
	return mp.callLog
}

func (mp *MockPrompter) next() (string, bool) {
	if mp.currentIndex >= len(mp.responses) {
		return "", false
	}
	resp := mp.responses[mp.currentIndex]
	mp.currentIndex++
	return resp, true
}
