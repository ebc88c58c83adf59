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
	"github.com/tomoncle/keeper/types"
	"github.com/uptrace/bun"
)

// PetRegistry exposes the pet operations of the pet registry.
type PetRegistry struct {
	db   *bun.DB
	repo repository.Repository[Pet]
	once sync.Once
}

// NewPetRegistry returns a registry backed by the global database.
func NewPetRegistry() *PetRegistry {
	return &PetRegistry{}
}

// NewPetRegistryWithDB returns a registry backed by the given connection.
func NewPetRegistryWithDB(db *bun.DB) *PetRegistry {
	return &PetRegistry{db: db}
}

func (r *PetRegistry) base() repository.Repository[Pet] {
	r.once.Do(func() {
		if r.db == nil {
			r.db = database.GetDB()
		}
		r.repo = repository.NewRepository[Pet](r.db)
	})
	return r.repo
}

// Add inserts a new pet. Referential integrity is enforced by the database:
// a nonexistent owner surfaces as ErrOwnerNotFound and nothing is persisted.
func (r *PetRegistry) Add(ctx context.Context, name, species, breed string, age int, ownerID int64) (*Pet, error) {
	pet := &Pet{
		Name:    name,
		Species: species,
		Breed:   breed,
		Age:     age,
		OwnerID: ownerID,
	}
	if err := r.base().Create(ctx, pet); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: id=%d", ErrOwnerNotFound, ownerID)
		}
		return nil, fmt.Errorf("failed to add pet: %w", err)
	}
	return pet, nil
}

// All returns every pet ordered by name.
func (r *PetRegistry) All(ctx context.Context) ([]*Pet, error) {
	return r.base().List(ctx, nil, "name ASC")
}

// ByOwner returns the pets of one owner ordered by name.
func (r *PetRegistry) ByOwner(ctx context.Context, ownerID int64) ([]*Pet, error) {
	return r.base().List(ctx, types.NewQueryFilter("owner_id = ?", ownerID), "name ASC")
}

// Page returns one page of pets ordered by name.
func (r *PetRegistry) Page(ctx context.Context, page, size int) (*types.Pagination[Pet], error) {
	return r.base().Page(ctx, types.NewPageRequestWithOrders(page, size, "name ASC"))
}
