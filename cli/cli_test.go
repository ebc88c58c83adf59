/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cli

import (
	"bytes"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
)

// run builds a fresh command tree, executes it against the given database
// file, and returns everything written to the command output.
func run(t *testing.T, newCmd func() *cobra.Command, dbPath string, args ...string) string {
	t.Helper()
	cmd := newCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append(args, "--db", dbPath))
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v", args, err)
	}
	return buf.String()
}

func TestPetsCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "pets.db")

	out := run(t, NewPetsCommand, dbPath, "add_owner", "-n", "Anna", "-p", "555-0001")
	if !strings.Contains(out, "added successfully") {
		t.Fatalf("add_owner output: %q", out)
	}

	out = run(t, NewPetsCommand, dbPath, "display_owners")
	if !strings.Contains(out, "Anna") || !strings.Contains(out, "555-0001") {
		t.Fatalf("display_owners output:\n%s", out)
	}

	// a missing owner is reported without persisting the pet
	out = run(t, NewPetsCommand, dbPath, "add_pet",
		"-n", "Rex", "-s", "dog", "-b", "labrador", "-a", "3", "-o", "99")
	if !strings.Contains(out, "Error: owner with ID 99 not found!") {
		t.Fatalf("add_pet output: %q", out)
	}
	out = run(t, NewPetsCommand, dbPath, "display_pets")
	if !strings.Contains(out, "Pet list is empty.") {
		t.Fatalf("display_pets output: %q", out)
	}

	out = run(t, NewPetsCommand, dbPath, "add_pet",
		"-n", "Rex", "-s", "dog", "-b", "labrador", "-a", "3", "-o", "1")
	if !strings.Contains(out, "added successfully") {
		t.Fatalf("add_pet output: %q", out)
	}

	out = run(t, NewPetsCommand, dbPath, "display_pets")
	if !strings.Contains(out, "Rex") || !strings.Contains(out, "Owner ID") {
		t.Fatalf("display_pets output:\n%s", out)
	}

	out = run(t, NewPetsCommand, dbPath, "select_pets_by_owner", "-o", "1")
	if !strings.Contains(out, `Pets of owner "Anna" (ID: 1):`) {
		t.Fatalf("select_pets_by_owner header missing:\n%s", out)
	}
	if !strings.Contains(out, "Rex") || strings.Contains(out, "Owner ID") {
		t.Fatalf("select_pets_by_owner table wrong:\n%s", out)
	}

	out = run(t, NewPetsCommand, dbPath, "select_pets_by_owner", "-o", "42")
	if !strings.Contains(out, "Error: owner with ID 42 not found!") {
		t.Fatalf("select_pets_by_owner output: %q", out)
	}
}

func TestWorkersCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "workers.db")

	year := time.Now().Year()
	out := run(t, NewWorkersCommand, dbPath, "add",
		"-n", "Alice Johnson", "-p", "Engineer", "-y", strconv.Itoa(year-10))
	if !strings.Contains(out, "added successfully") {
		t.Fatalf("add output: %q", out)
	}
	run(t, NewWorkersCommand, dbPath, "add",
		"-n", "Bob Smith", "-p", "Engineer", "-y", strconv.Itoa(year-1))

	out = run(t, NewWorkersCommand, dbPath, "display")
	if !strings.Contains(out, "Alice Johnson") || !strings.Contains(out, "Bob Smith") {
		t.Fatalf("display output:\n%s", out)
	}
	if !strings.Contains(out, "Engineer") {
		t.Fatalf("display output missing post:\n%s", out)
	}

	out = run(t, NewWorkersCommand, dbPath, "select", "-P", "5")
	if !strings.Contains(out, "Alice Johnson") || strings.Contains(out, "Bob Smith") {
		t.Fatalf("select output:\n%s", out)
	}
}

func TestWorkersEmptyListing(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "workers.db")
	out := run(t, NewWorkersCommand, dbPath, "display")
	if !strings.Contains(out, "Worker list is empty.") {
		t.Fatalf("display output: %q", out)
	}
}
