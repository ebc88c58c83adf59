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

package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomoncle/keeper/database"
	"github.com/tomoncle/keeper/repository"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/feature"
)

// StaffRegistry exposes the staff registry operations: posts are created on
// demand when a worker is added under a new title.
type StaffRegistry struct {
	db      *bun.DB
	posts   repository.Repository[Post]
	workers repository.Repository[Worker]
	once    sync.Once
}

// NewStaffRegistry returns a registry backed by the global database.
func NewStaffRegistry() *StaffRegistry {
	return &StaffRegistry{}
}

// NewStaffRegistryWithDB returns a registry backed by the given connection.
func NewStaffRegistryWithDB(db *bun.DB) *StaffRegistry {
	return &StaffRegistry{db: db}
}

func (r *StaffRegistry) conn() *bun.DB {
	r.once.Do(func() {
		if r.db == nil {
			r.db = database.GetDB()
		}
		r.posts = repository.NewRepository[Post](r.db)
		r.workers = repository.NewRepository[Worker](r.db)
	})
	return r.db
}

// GetOrCreatePost returns the id of the post with the given title, inserting
// it first when absent. The insert resolves conflicts on the unique title, so
// two callers racing on the same title both observe one row.
func (r *StaffRegistry) GetOrCreatePost(ctx context.Context, title string) (int64, error) {
	r.conn()
	post := &Post{Title: title}

	insert := r.posts.NewInsert().Model(post)
	features := r.posts.Dialect().Features()
	var err error
	switch {
	case features.Has(feature.InsertOnConflict):
		_, err = insert.On("CONFLICT (title) DO NOTHING").Exec(ctx)
	case features.Has(feature.InsertOnDuplicateKey):
		_, err = insert.On("DUPLICATE KEY UPDATE title = title").Exec(ctx)
	default:
		if _, err = insert.Exec(ctx); err != nil && database.IsDuplicateKey(err) {
			err = nil
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to create post %q: %w", title, err)
	}

	// The driver's LastInsertId is unreliable when the insert conflicted, so
	// the id always comes from a fresh lookup.
	var existing Post
	if err := r.posts.NewSelect().Model(&existing).Where("title = ?", title).Scan(ctx); err != nil {
		return 0, fmt.Errorf("failed to look up post %q: %w", title, err)
	}
	return existing.ID, nil
}

// PostByID returns the post with the given id, or ErrNotFound.
func (r *StaffRegistry) PostByID(ctx context.Context, id int64) (*Post, error) {
	r.conn()
	post, err := r.posts.GetOne(ctx, id)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return post, nil
}

// AddWorker inserts a worker under the given post title, creating the post
// when it does not exist yet.
func (r *StaffRegistry) AddWorker(ctx context.Context, name, postTitle string, year int) (*Worker, error) {
	r.conn()
	postID, err := r.GetOrCreatePost(ctx, postTitle)
	if err != nil {
		return nil, err
	}

	worker := &Worker{Name: name, PostID: postID, Year: year}
	if err := r.workers.Create(ctx, worker); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: id=%d", ErrPostNotFound, postID)
		}
		return nil, fmt.Errorf("failed to add worker: %w", err)
	}
	worker.Post = &Post{ID: postID, Title: postTitle}
	return worker, nil
}

// AllWorkers returns every worker with its post, in insertion order.
func (r *StaffRegistry) AllWorkers(ctx context.Context) ([]*Worker, error) {
	r.conn()
	var workers []*Worker
	err := r.workers.NewSelect().
		Model(&workers).
		Relation("Post").
		Order("w.id ASC").
		Scan(ctx)
	return workers, err
}

// ByPeriod returns the workers whose service length, counted in full years
// from the stored start year to the current year, is at least period.
func (r *StaffRegistry) ByPeriod(ctx context.Context, period int) ([]*Worker, error) {
	r.conn()
	var workers []*Worker
	err := r.workers.NewSelect().
		Model(&workers).
		Relation("Post").
		Where("? - w.year >= ?", time.Now().Year(), period).
		Order("w.id ASC").
		Scan(ctx)
	return workers, err
}
