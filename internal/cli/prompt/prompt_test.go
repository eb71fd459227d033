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
	"errors"
	"strings"
	"testing"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		login   string
		wantErr bool
	}{
		{"admin@company", false},
		{"admin@", true},
		{"@company", true},
		{"admin", true},
		{"ad min@company", true},
		{"admin\x00@company", true},
		{strings.Repeat("a", MaxInputSize) + "@x", true},
	}

	for _, tt := range tests {
		t.Run(tt.login, func(t *testing.T) {
			err := ValidateLogin(tt.login)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLogin(%q) error = %v, wantErr %v", tt.login, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword(""); err == nil {
		t.Error("expected error for empty password")
	}
	if err := ValidatePassword("line\nbreak"); err == nil {
		t.Error("expected error for control characters")
	}
	if err := ValidatePassword("s3cr3t!"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMockPrompter(t *testing.T) {
	ctx := context.Background()
	mp := NewMockPrompter(true, "buyer@acme", "hunter2")

	login, err := mp.PromptLogin(ctx, "admin@acme")
	if err != nil || login != "buyer@acme" {
		t.Fatalf("PromptLogin() = %q, %v", login, err)
	}
	password, err := mp.PromptPassword(ctx, login)
	if err != nil || password != "hunter2" {
		t.Fatalf("PromptPassword() = %q, %v", password, err)
	}

	// Exhausted script falls back to the default login.
	login, err = mp.PromptLogin(ctx, "admin@acme")
	if err != nil || login != "admin@acme" {
		t.Fatalf("PromptLogin() = %q, %v", login, err)
	}

	want := []string{"PromptLogin", "PromptPassword(buyer@acme)", "PromptLogin"}
	if got := mp.GetCallLog(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("call log = %v, want %v", got, want)
	}
}

func TestMockPrompter_NonInteractive(t *testing.T) {
	mp := NewMockPrompter(false, "buyer@acme")

	if mp.IsInteractive() {
		t.Error("expected non-interactive")
	}
	if _, err := mp.PromptPassword(context.Background(), "buyer@acme"); !errors.Is(err, ErrNotInteractive) {
		t.Errorf("expected ErrNotInteractive, got %v", err)
	}
}

func TestSurveyPrompter_NonInteractive(t *testing.T) {
	sp := NewSurveyPrompter(false)

	if _, err := sp.PromptLogin(context.Background(), ""); !errors.Is(err, ErrNotInteractive) {
		t.Errorf("expected ErrNotInteractive, got %v", err)
	}
	if _, err := sp.PromptPassword(context.Background(), "a@b"); !errors.Is(err, ErrNotInteractive) {
		t.Errorf("expected ErrNotInteractive, got %v", err)
	}
}
