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
	"github.com/tomoncle/keeper/database"
	"github.com/uptrace/bun"
)

// Owner is a pet owner. Records returned by the registries are value
// snapshots; nothing mutates them after construction.
type Owner struct {
	bun.BaseModel `bun:"table:owners,alias:o"`

	ID    int64  `bun:"id,pk,autoincrement" json:"id"`
	Name  string `bun:"name,notnull" json:"name"`
	Phone string `bun:"phone,notnull" json:"phone"`
}

// Pet belongs to exactly one Owner.
type Pet struct {
	bun.BaseModel `bun:"table:pets,alias:p"`

	ID      int64  `bun:"id,pk,autoincrement" json:"id"`
	Name    string `bun:"name,notnull" json:"name"`
	Species string `bun:"species,notnull" json:"species"`
	Breed   string `bun:"breed,notnull" json:"breed"`
	Age     int    `bun:"age,notnull" json:"age"`
	OwnerID int64  `bun:"owner_id,notnull" json:"owner_id"`

	Owner *Owner `bun:"rel:belongs-to,join:owner_id=id" json:"-"`
}

// Post is a staff position. The unique title makes get-or-create atomic: a
// concurrent duplicate insert fails on the constraint instead of creating a
// second row.
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:ps"`

	ID    int64  `bun:"id,pk,autoincrement" json:"id"`
	Title string `bun:"title,notnull,unique" json:"title"`
}

// Worker holds a Post and records the year employment started.
type Worker struct {
	bun.BaseModel `bun:"table:workers,alias:w"`

	ID     int64  `bun:"id,pk,autoincrement" json:"id"`
	Name   string `bun:"name,notnull" json:"name"`
	PostID int64  `bun:"post_id,notnull" json:"post_id"`
	Year   int    `bun:"year,notnull" json:"year"`

	Post *Post `bun:"rel:belongs-to,join:post_id=id" json:"-"`
}

func init() {
	// Parents before children so CREATE TABLE order satisfies references.
	database.RegisteredModel(database.NewModelAdapter((*Owner)(nil), 10))
	database.RegisteredModel(database.NewModelAdapter((*Post)(nil), 10))
	database.RegisteredModel(database.NewModelAdapter((*Pet)(nil), 20))
	database.RegisteredModel(database.NewModelAdapter((*Worker)(nil), 20))

	database.RegisterForeignKey(database.ForeignKeyConstraint{
		Table:           "pets",
		Column:          "owner_id",
		ReferenceTable:  "owners",
		ReferenceColumn: "id",
		OnDelete:        "CASCADE",
	})
	database.RegisterForeignKey(database.ForeignKeyConstraint{
		Table:           "workers",
		Column:          "post_id",
		ReferenceTable:  "posts",
		ReferenceColumn: "id",
	})
}
