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

package repository

import (
	"context"

	"github.com/tomoncle/keeper/types"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"
)

// ReadRepository defines the read operations for a generic entity type.
type ReadRepository[T any] interface {
	GetOne(ctx context.Context, id any) (*T, error)

	// List returns the entities matching filter (all of them when filter is
	// nil), sorted by the given order clauses.
	List(ctx context.Context, filter *types.QueryFilter, orders ...string) ([]*T, error)
}

// WriteRepository defines the insert operation. The registries built on top
// only ever insert; rows are never updated or deleted.
type WriteRepository[T any] interface {
	Create(ctx context.Context, entity ...*T) error
}

// PageQueryRepository defines pagination functionality for listing entities.
type PageQueryRepository[T any] interface {
	Page(ctx context.Context, page *types.PageRequest) (*types.Pagination[T], error)
}

// Repository combines read, insert, and pagination operations and exposes Bun
// query builders for advanced use cases.
type Repository[T any] interface {
	ReadRepository[T]
	WriteRepository[T]
	PageQueryRepository[T]
	Dialect() schema.Dialect
	NewSelect() *bun.SelectQuery
	NewInsert() *bun.InsertQuery
}
