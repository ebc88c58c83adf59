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

package registry_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomoncle/keeper/database"
	"github.com/tomoncle/keeper/registry"
	"github.com/uptrace/bun"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()
	cfg := database.DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	db, err := database.InitDB(cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = database.CloseDB()
	})
	return db
}

func TestOwnerAddAndList(t *testing.T) {
	db := newTestDB(t)
	owners := registry.NewOwnerRegistryWithDB(db)
	ctx := context.Background()

	zoe, err := owners.Add(ctx, "Zoe", "555-0001")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if zoe.ID == 0 {
		t.Fatal("Add did not populate the owner id")
	}
	if _, err := owners.Add(ctx, "Adam", "555-0002"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	all, err := owners.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("All returned %d owners, want 2", len(all))
	}
	if all[0].Name != "Adam" || all[1].Name != "Zoe" {
		t.Fatalf("owners not ordered by name: %q, %q", all[0].Name, all[1].Name)
	}

	got, err := owners.ByID(ctx, zoe.ID)
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	if got.Name != "Zoe" || got.Phone != "555-0001" {
		t.Fatalf("ByID returned %+v", got)
	}
}

func TestOwnerByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	owners := registry.NewOwnerRegistryWithDB(db)

	_, err := owners.ByID(context.Background(), 9999)
	if !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("ByID error = %v, want ErrNotFound", err)
	}
}

func TestPetAddRejectsMissingOwner(t *testing.T) {
	db := newTestDB(t)
	pets := registry.NewPetRegistryWithDB(db)
	ctx := context.Background()

	_, err := pets.Add(ctx, "Rex", "dog", "labrador", 3, 12345)
	if !errors.Is(err, registry.ErrOwnerNotFound) {
		t.Fatalf("Add error = %v, want ErrOwnerNotFound", err)
	}

	all, err := pets.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("rejected insert persisted %d pets", len(all))
	}
}

func TestPetsByOwnerScoped(t *testing.T) {
	db := newTestDB(t)
	owners := registry.NewOwnerRegistryWithDB(db)
	pets := registry.NewPetRegistryWithDB(db)
	ctx := context.Background()

	anna, err := owners.Add(ctx, "Anna", "555-0003")
	if err != nil {
		t.Fatalf("Add owner: %v", err)
	}
	bob, err := owners.Add(ctx, "Bob", "555-0004")
	if err != nil {
		t.Fatalf("Add owner: %v", err)
	}

	for _, p := range []struct {
		name    string
		ownerID int64
	}{
		{"Whiskers", anna.ID},
		{"Buddy", anna.ID},
		{"Goldie", bob.ID},
	} {
		if _, err := pets.Add(ctx, p.name, "cat", "mixed", 2, p.ownerID); err != nil {
			t.Fatalf("Add pet %s: %v", p.name, err)
		}
	}

	scoped, err := pets.ByOwner(ctx, anna.ID)
	if err != nil {
		t.Fatalf("ByOwner: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("ByOwner returned %d pets, want 2", len(scoped))
	}
	if scoped[0].Name != "Buddy" || scoped[1].Name != "Whiskers" {
		t.Fatalf("pets not ordered by name: %q, %q", scoped[0].Name, scoped[1].Name)
	}
	for _, p := range scoped {
		if p.OwnerID != anna.ID {
			t.Fatalf("pet %q belongs to owner %d, want %d", p.Name, p.OwnerID, anna.ID)
		}
	}
}

func TestPetPaging(t *testing.T) {
	db := newTestDB(t)
	owners := registry.NewOwnerRegistryWithDB(db)
	pets := registry.NewPetRegistryWithDB(db)
	ctx := context.Background()

	owner, err := owners.Add(ctx, "Carol", "555-0005")
	if err != nil {
		t.Fatalf("Add owner: %v", err)
	}
	names := []string{"Ace", "Bingo", "Coco", "Daisy", "Echo"}
	for _, name := range names {
		if _, err := pets.Add(ctx, name, "dog", "mixed", 1, owner.ID); err != nil {
			t.Fatalf("Add pet %s: %v", name, err)
		}
	}

	page, err := pets.Page(ctx, 1, 2)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if page.Total != 5 {
		t.Fatalf("Total = %d, want 5", page.Total)
	}
	if page.TotalPages() != 3 {
		t.Fatalf("TotalPages = %d, want 3", page.TotalPages())
	}
	if !page.HasNext() {
		t.Fatal("HasNext = false on the first of three pages")
	}
	if len(page.Items) != 2 {
		t.Fatalf("page holds %d items, want 2", len(page.Items))
	}
	if page.Items[0].Name != "Ace" || page.Items[1].Name != "Bingo" {
		t.Fatalf("unexpected page content: %q, %q", page.Items[0].Name, page.Items[1].Name)
	}

	last, err := pets.Page(ctx, 3, 2)
	if err != nil {
		t.Fatalf("Page: %v", err)
	}
	if len(last.Items) != 1 || last.Items[0].Name != "Echo" {
		t.Fatalf("unexpected last page content: %+v", last.Items)
	}
	if last.HasNext() {
		t.Fatal("HasNext = true on the last page")
	}
}

func TestGetOrCreatePostIdempotent(t *testing.T) {
	db := newTestDB(t)
	staff := registry.NewStaffRegistryWithDB(db)
	ctx := context.Background()

	first, err := staff.GetOrCreatePost(ctx, "Engineer")
	if err != nil {
		t.Fatalf("GetOrCreatePost: %v", err)
	}
	second, err := staff.GetOrCreatePost(ctx, "Engineer")
	if err != nil {
		t.Fatalf("GetOrCreatePost: %v", err)
	}
	if first != second {
		t.Fatalf("same title produced two ids: %d and %d", first, second)
	}

	other, err := staff.GetOrCreatePost(ctx, "Manager")
	if err != nil {
		t.Fatalf("GetOrCreatePost: %v", err)
	}
	if other == first {
		t.Fatalf("distinct titles share id %d", other)
	}

	count, err := db.NewSelect().Model((*registry.Post)(nil)).Count(ctx)
	if err != nil {
		t.Fatalf("count posts: %v", err)
	}
	if count != 2 {
		t.Fatalf("posts table holds %d rows, want 2", count)
	}
}

func TestAddWorkerCreatesPostOnDemand(t *testing.T) {
	db := newTestDB(t)
	staff := registry.NewStaffRegistryWithDB(db)
	ctx := context.Background()

	worker, err := staff.AddWorker(ctx, "Alice Johnson", "Engineer", 2015)
	if err != nil {
		t.Fatalf("AddWorker: %v", err)
	}
	if worker.Post == nil || worker.Post.Title != "Engineer" {
		t.Fatalf("worker post not populated: %+v", worker.Post)
	}

	// a second worker under the same title reuses the post
	colleague, err := staff.AddWorker(ctx, "Bob Smith", "Engineer", 2020)
	if err != nil {
		t.Fatalf("AddWorker: %v", err)
	}
	if colleague.PostID != worker.PostID {
		t.Fatalf("same title produced posts %d and %d", worker.PostID, colleague.PostID)
	}

	all, err := staff.AllWorkers(ctx)
	if err != nil {
		t.Fatalf("AllWorkers: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("AllWorkers returned %d workers, want 2", len(all))
	}
	if all[0].Name != "Alice Johnson" || all[1].Name != "Bob Smith" {
		t.Fatalf("workers not in insertion order: %q, %q", all[0].Name, all[1].Name)
	}
	for _, w := range all {
		if w.Post == nil || w.Post.Title != "Engineer" {
			t.Fatalf("worker %q missing post relation: %+v", w.Name, w.Post)
		}
	}
}

func TestWorkersByPeriod(t *testing.T) {
	db := newTestDB(t)
	staff := registry.NewStaffRegistryWithDB(db)
	ctx := context.Background()
	year := time.Now().Year()

	if _, err := staff.AddWorker(ctx, "Veteran", "Engineer", year-10); err != nil {
		t.Fatalf("AddWorker: %v", err)
	}
	if _, err := staff.AddWorker(ctx, "Rookie", "Engineer", year-1); err != nil {
		t.Fatalf("AddWorker: %v", err)
	}

	seniors, err := staff.ByPeriod(ctx, 5)
	if err != nil {
		t.Fatalf("ByPeriod: %v", err)
	}
	if len(seniors) != 1 || seniors[0].Name != "Veteran" {
		t.Fatalf("ByPeriod(5) returned %+v, want only Veteran", seniors)
	}

	// the boundary is inclusive: exactly period years of service qualifies
	boundary, err := staff.ByPeriod(ctx, 10)
	if err != nil {
		t.Fatalf("ByPeriod: %v", err)
	}
	if len(boundary) != 1 {
		t.Fatalf("ByPeriod(10) returned %d workers, want 1", len(boundary))
	}

	everyone, err := staff.ByPeriod(ctx, 0)
	if err != nil {
		t.Fatalf("ByPeriod: %v", err)
	}
	if len(everyone) != 2 {
		t.Fatalf("ByPeriod(0) returned %d workers, want 2", len(everyone))
	}
}

func TestPostByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	staff := registry.NewStaffRegistryWithDB(db)

	_, err := staff.PostByID(context.Background(), 4242)
	if !errors.Is(err, registry.ErrNotFound) {
		t.Fatalf("PostByID error = %v, want ErrNotFound", err)
	}
}
