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
	"fmt"
	"io"
	"strconv"

	"github.com/tomoncle/keeper/registry"
	"github.com/tomoncle/keeper/types"
)

// Empty-list messages, one per entity type.
const (
	EmptyOwners  = "Owner list is empty."
	EmptyPets    = "Pet list is empty."
	EmptyWorkers = "Worker list is empty."
)

var (
	ownerTable = NewTable(
		[]string{"ID", "Owner Name", "Phone"},
		[]int{6, 25, 15},
	)
	petTable = NewTable(
		[]string{"ID", "Name", "Species", "Breed", "Age", "Owner ID"},
		[]int{6, 15, 15, 20, 8, 12},
	)
	petTableShort = NewTable(
		[]string{"ID", "Name", "Species", "Breed", "Age"},
		[]int{6, 15, 15, 20, 8},
	)
	workerTable = NewTable(
		[]string{"#", "Full Name", "Post", "Year"},
		[]int{6, 30, 20, 8},
	)
)

// FprintOwners renders the owners table, or the empty message.
func FprintOwners(w io.Writer, owners []*registry.Owner) {
	if len(owners) == 0 {
		fmt.Fprintln(w, EmptyOwners)
		return
	}
	rows := make([][]string, 0, len(owners))
	for _, o := range owners {
		rows = append(rows, []string{
			strconv.FormatInt(o.ID, 10), o.Name, o.Phone,
		})
	}
	ownerTable.Fprint(w, rows)
}

// FprintPets renders the pets table, or the empty message. The owner column
// is included only when showOwner is true; listings already scoped to one
// owner leave it out.
func FprintPets(w io.Writer, pets []*registry.Pet, showOwner bool) {
	if len(pets) == 0 {
		fmt.Fprintln(w, EmptyPets)
		return
	}
	rows := make([][]string, 0, len(pets))
	for _, p := range pets {
		row := []string{
			strconv.FormatInt(p.ID, 10), p.Name, p.Species, p.Breed,
			strconv.Itoa(p.Age),
		}
		if showOwner {
			row = append(row, strconv.FormatInt(p.OwnerID, 10))
		}
		rows = append(rows, row)
	}
	if showOwner {
		petTable.Fprint(w, rows)
	} else {
		petTableShort.Fprint(w, rows)
	}
}

// FprintPetPage renders one page of pets with a paging footer.
func FprintPetPage(w io.Writer, page *types.Pagination[registry.Pet]) {
	FprintPets(w, page.Items, true)
	if page.Total > 0 {
		fmt.Fprintf(w, "Page %d of %d (%d records)\n", page.Page, page.TotalPages(), page.Total)
	}
}

// FprintWorkers renders the workers table with 1-based row numbers, or the
// empty message.
func FprintWorkers(w io.Writer, workers []*registry.Worker) {
	if len(workers) == 0 {
		fmt.Fprintln(w, EmptyWorkers)
		return
	}
	rows := make([][]string, 0, len(workers))
	for i, wk := range workers {
		title := ""
		if wk.Post != nil {
			title = wk.Post.Title
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1), wk.Name, title, strconv.Itoa(wk.Year),
		})
	}
	workerTable.Fprint(w, rows)
}
