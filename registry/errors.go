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

import "errors"

var (
	// ErrNotFound is returned when a lookup by identifier matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrOwnerNotFound is returned when inserting a pet whose owner does not
	// exist. The database rejects the row, so nothing is persisted.
	ErrOwnerNotFound = errors.New("owner not found")

	// ErrPostNotFound is returned when inserting a worker whose post does not
	// exist.
	ErrPostNotFound = errors.New("post not found")
)
