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

package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tomoncle/keeper/registry"
	"github.com/tomoncle/keeper/types"
)

func TestEmptyListMessages(t *testing.T) {
	cases := []struct {
		name  string
		print func(buf *bytes.Buffer)
		want  string
	}{
		{"owners", func(buf *bytes.Buffer) { FprintOwners(buf, nil) }, "Owner list is empty.\n"},
		{"pets", func(buf *bytes.Buffer) { FprintPets(buf, nil, true) }, "Pet list is empty.\n"},
		{"workers", func(buf *bytes.Buffer) { FprintWorkers(buf, nil) }, "Worker list is empty.\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.print(&buf)
			if got := buf.String(); got != tc.want {
				t.Fatalf("output = %q, want %q", got, tc.want)
			}
			if strings.Contains(buf.String(), "+") {
				t.Fatal("empty listing must not draw table borders")
			}
		})
	}
}

func TestFprintOwners(t *testing.T) {
	var buf bytes.Buffer
	FprintOwners(&buf, []*registry.Owner{
		{ID: 1, Name: "Anna", Phone: "555-0001"},
		{ID: 2, Name: "Bob", Phone: "555-0002"},
	})
	out := buf.String()

	for _, want := range []string{"ID", "Owner Name", "Phone", "Anna", "555-0001", "Bob"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// border, header, border, two rows, border
	if len(lines) != 6 {
		t.Fatalf("output has %d lines, want 6:\n%s", len(lines), out)
	}
	border := lines[0]
	if !strings.HasPrefix(border, "+") || !strings.HasSuffix(border, "+") {
		t.Fatalf("border line malformed: %q", border)
	}
	if lines[2] != border || lines[5] != border {
		t.Fatal("border lines are not identical")
	}
	for _, row := range []string{lines[1], lines[3], lines[4]} {
		if !strings.HasPrefix(row, "|") || !strings.HasSuffix(row, "|") {
			t.Fatalf("row malformed: %q", row)
		}
		if len(row) != len(border) {
			t.Fatalf("row width %d differs from border width %d", len(row), len(border))
		}
	}
}

func TestFprintPetsOwnerColumn(t *testing.T) {
	pets := []*registry.Pet{
		{ID: 1, Name: "Rex", Species: "dog", Breed: "labrador", Age: 3, OwnerID: 7},
	}

	var with bytes.Buffer
	FprintPets(&with, pets, true)
	if !strings.Contains(with.String(), "Owner ID") {
		t.Fatalf("full listing missing owner column:\n%s", with.String())
	}

	var without bytes.Buffer
	FprintPets(&without, pets, false)
	if strings.Contains(without.String(), "Owner ID") {
		t.Fatalf("scoped listing must omit the owner column:\n%s", without.String())
	}
	if !strings.Contains(without.String(), "Rex") {
		t.Fatalf("scoped listing missing pet row:\n%s", without.String())
	}
}

func TestFprintPetPageFooter(t *testing.T) {
	page := &types.Pagination[registry.Pet]{
		Page:     2,
		PageSize: 2,
		Total:    5,
		Items: []*registry.Pet{
			{ID: 3, Name: "Coco", Species: "cat", Breed: "mixed", Age: 1, OwnerID: 1},
		},
	}

	var buf bytes.Buffer
	FprintPetPage(&buf, page)
	if !strings.Contains(buf.String(), "Page 2 of 3 (5 records)") {
		t.Fatalf("footer missing:\n%s", buf.String())
	}
}

func TestFprintWorkersRowNumbers(t *testing.T) {
	var buf bytes.Buffer
	FprintWorkers(&buf, []*registry.Worker{
		{ID: 10, Name: "Alice Johnson", Year: 2015, Post: &registry.Post{ID: 1, Title: "Engineer"}},
		{ID: 11, Name: "Bob Smith", Year: 2020, Post: nil},
	})
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("output has %d lines, want 6:\n%s", len(lines), out)
	}
	// row numbers restart from 1 regardless of the stored ids
	if !strings.Contains(lines[3], " 1 ") || !strings.Contains(lines[3], "Alice Johnson") {
		t.Fatalf("first row malformed: %q", lines[3])
	}
	if !strings.Contains(lines[4], " 2 ") || !strings.Contains(lines[4], "Bob Smith") {
		t.Fatalf("second row malformed: %q", lines[4])
	}
	if strings.Contains(out, "10") || strings.Contains(out, "11") {
		t.Fatalf("stored ids leaked into the listing:\n%s", out)
	}
}

func TestCenter(t *testing.T) {
	cases := []struct {
		s     string
		width int
		want  string
	}{
		{"ab", 6, "  ab  "},
		{"abc", 6, " abc  "},
		{"abcdef", 4, "abcdef"},
		{"", 3, "   "},
	}
	for _, tc := range cases {
		if got := center(tc.s, tc.width); got != tc.want {
			t.Errorf("center(%q, %d) = %q, want %q", tc.s, tc.width, got, tc.want)
		}
	}
}
