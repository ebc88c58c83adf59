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

	"github.com/tomoncle/keeper/database"
	"github.com/tomoncle/keeper/repository"
	"github.com/uptrace/bun"
)

// OwnerRegistry exposes the owner operations of the pet registry.
type OwnerRegistry struct {
	db   *bun.DB
	repo repository.Repository[Owner]
	once sync.Once
}

// NewOwnerRegistry returns a registry backed by the global database.
func NewOwnerRegistry() *OwnerRegistry {
	return &OwnerRegistry{}
}

// NewOwnerRegistryWithDB returns a registry backed by the given connection.
func NewOwnerRegistryWithDB(db *bun.DB) *OwnerRegistry {
	return &OwnerRegistry{db: db}
}

func (r *OwnerRegistry) base() repository.Repository[Owner] {
	r.once.Do(func() {
		if r.db == nil {
			r.db = database.GetDB()
		}
		r.repo = repository.NewRepository[Owner](r.db)
	})
	return r.repo
}

// Add inserts a new owner and returns the stored record.
func (r *OwnerRegistry) Add(ctx context.Context, name, phone string) (*Owner, error) {
	owner := &Owner{Name: name, Phone: phone}
	if err := r.base().Create(ctx, owner); err != nil {
		return nil, fmt.Errorf("failed to add owner: %w", err)
	}
	return owner, nil
}

// All returns every owner ordered by name.
func (r *OwnerRegistry) All(ctx context.Context) ([]*Owner, error) {
	return r.base().List(ctx, nil, "name ASC")
}

// ByID returns the owner with the given id, or ErrNotFound.
func (r *OwnerRegistry) ByID(ctx context.Context, id int64) (*Owner, error) {
	owner, err := r.base().GetOne(ctx, id)
	if err != nil {
		if database.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return owner, nil
}
