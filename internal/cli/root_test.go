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
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "moysklad" {
		t.Errorf("expected use 'moysklad', got %q", cmd.Use)
	}

	if cmd.Short == "" {
		t.Error("expected short description to be set")
	}

	if cmd.Long == "" {
		t.Error("expected long description to be set")
	}

	if !cmd.SilenceErrors || !cmd.SilenceUsage {
		t.Error("expected errors and usage to be silenced")
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"config", "verbose", "insecure", "trace", "metrics-file"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("%s flag not registered", name)
		}
	}
	if f := cmd.PersistentFlags().Lookup("verbose"); f != nil && f.Shorthand != "v" {
		t.Errorf("expected -v shorthand, got %q", f.Shorthand)
	}
}

func TestAddCommand(t *testing.T) {
	root := NewRootCommand()
	sub := &cobra.Command{Use: "get", RunE: func(*cobra.Command, []string) error { return nil }}

	AddCommand(root, GroupRead, sub)

	if sub.GroupID != GroupRead {
		t.Errorf("expected group %q, got %q", GroupRead, sub.GroupID)
	}
	if found, _, err := root.Find([]string{"get"}); err != nil || found != sub {
		t.Errorf("expected to find the added command, got %v (%v)", found, err)
	}
}

func TestRootHelpJSON_NoCompletionCommand(t *testing.T) {
	root := NewRootCommand()
	AddCommand(root, GroupRead, &cobra.Command{Use: "get", Short: "Read", RunE: func(*cobra.Command, []string) error { return nil }})

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"help", "--json"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var resp HelpResponse
	if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, buf.String())
	}
	if len(resp.Commands) != 1 || resp.Commands[0].Name != "get" {
		t.Errorf("expected only the get command, got %+v", resp.Commands)
	}
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3", "abc123", "2025-12-22")
	defer SetVersion("dev", "unknown", "unknown")

	v, c, b := GetVersion()
	if v != "1.2.3" {
		t.Errorf("expected version '1.2.3', got %q", v)
	}
	if c != "abc123" {
		t.Errorf("expected commit 'abc123', got %q", c)
	}
	if b != "2025-12-22" {
		t.Errorf("expected build date '2025-12-22', got %q", b)
	}
}
