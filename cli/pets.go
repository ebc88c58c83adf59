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
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tomoncle/keeper/display"
	"github.com/tomoncle/keeper/registry"
)

// NewPetsCommand builds the command tree for the pet registry tool.
func NewPetsCommand() *cobra.Command {
	opts := &rootOptions{}
	owners := registry.NewOwnerRegistry()
	pets := registry.NewPetRegistry()

	root := &cobra.Command{
		Use:     "pets",
		Short:   "Pet and owner registry",
		Long:    "Keeps a registry of pet owners and their pets in a relational database.",
		Version: Version,
	}
	opts.bindRootFlags(root, "pets.db")

	root.AddCommand(newAddOwnerCommand(owners))
	root.AddCommand(newAddPetCommand(owners, pets))
	root.AddCommand(newDisplayOwnersCommand(owners))
	root.AddCommand(newDisplayPetsCommand(pets))
	root.AddCommand(newSelectPetsByOwnerCommand(owners, pets))
	return root
}

func newAddOwnerCommand(owners *registry.OwnerRegistry) *cobra.Command {
	var name, phone string

	cmd := &cobra.Command{
		Use:   "add_owner",
		Short: "Register a new owner",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			owner, err := owners.Add(cmd.Context(), name, phone)
			if err != nil {
				fmt.Fprintf(out, "Failed to add owner: %v\n", err)
				return
			}
			fmt.Fprintf(out, "Owner %q added successfully (ID: %d).\n", owner.Name, owner.ID)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "owner name")
	cmd.Flags().StringVarP(&phone, "phone", "p", "", "owner phone number")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}

func newAddPetCommand(owners *registry.OwnerRegistry, pets *registry.PetRegistry) *cobra.Command {
	var (
		name, species, breed string
		age                  int
		ownerID              int64
	)

	cmd := &cobra.Command{
		Use:   "add_pet",
		Short: "Register a new pet under an existing owner",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			// the owner check keeps the message friendly; the foreign key
			// still guards the insert against races
			if _, err := owners.ByID(ctx, ownerID); err != nil {
				if errors.Is(err, registry.ErrNotFound) {
					fmt.Fprintf(out, "Error: owner with ID %d not found!\n", ownerID)
				} else {
					fmt.Fprintf(out, "Failed to look up owner: %v\n", err)
				}
				return
			}

			pet, err := pets.Add(ctx, name, species, breed, age, ownerID)
			if err != nil {
				if errors.Is(err, registry.ErrOwnerNotFound) {
					fmt.Fprintf(out, "Error: owner with ID %d not found!\n", ownerID)
				} else {
					fmt.Fprintf(out, "Failed to add pet: %v\n", err)
				}
				return
			}
			fmt.Fprintf(out, "Pet %q added successfully (ID: %d).\n", pet.Name, pet.ID)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "pet name")
	cmd.Flags().StringVarP(&species, "species", "s", "", "pet species")
	cmd.Flags().StringVarP(&breed, "breed", "b", "", "pet breed")
	cmd.Flags().IntVarP(&age, "age", "a", 0, "pet age in years")
	cmd.Flags().Int64VarP(&ownerID, "owner", "o", 0, "id of the owner")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("species")
	_ = cmd.MarkFlagRequired("breed")
	_ = cmd.MarkFlagRequired("age")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newDisplayOwnersCommand(owners *registry.OwnerRegistry) *cobra.Command {
	return &cobra.Command{
		Use:   "display_owners",
		Short: "List all registered owners",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			all, err := owners.All(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "Failed to list owners: %v\n", err)
				return
			}
			display.FprintOwners(out, all)
		},
	}
}

func newDisplayPetsCommand(pets *registry.PetRegistry) *cobra.Command {
	var (
		page int
		size int
	)

	cmd := &cobra.Command{
		Use:   "display_pets",
		Short: "List all registered pets",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			if page > 0 {
				result, err := pets.Page(ctx, page, size)
				if err != nil {
					fmt.Fprintf(out, "Failed to list pets: %v\n", err)
					return
				}
				display.FprintPetPage(out, result)
				return
			}

			all, err := pets.All(ctx)
			if err != nil {
				fmt.Fprintf(out, "Failed to list pets: %v\n", err)
				return
			}
			display.FprintPets(out, all, true)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "page number to display (0 lists everything)")
	cmd.Flags().IntVar(&size, "size", 10, "page size when paging")
	return cmd
}

func newSelectPetsByOwnerCommand(owners *registry.OwnerRegistry, pets *registry.PetRegistry) *cobra.Command {
	var ownerID int64

	cmd := &cobra.Command{
		Use:   "select_pets_by_owner",
		Short: "List the pets of one owner",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			owner, err := owners.ByID(ctx, ownerID)
			if err != nil {
				if errors.Is(err, registry.ErrNotFound) {
					fmt.Fprintf(out, "Error: owner with ID %d not found!\n", ownerID)
				} else {
					fmt.Fprintf(out, "Failed to look up owner: %v\n", err)
				}
				return
			}

			scoped, err := pets.ByOwner(ctx, ownerID)
			if err != nil {
				fmt.Fprintf(out, "Failed to list pets: %v\n", err)
				return
			}
			fmt.Fprintf(out, "Pets of owner %q (ID: %d):\n", owner.Name, owner.ID)
			display.FprintPets(out, scoped, false)
		},
	}
	cmd.Flags().Int64VarP(&ownerID, "owner", "o", 0, "id of the owner")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}
