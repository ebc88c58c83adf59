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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tomoncle/keeper/display"
	"github.com/tomoncle/keeper/registry"
)

// NewWorkersCommand builds the command tree for the staff registry tool.
func NewWorkersCommand() *cobra.Command {
	opts := &rootOptions{}
	staff := registry.NewStaffRegistry()

	root := &cobra.Command{
		Use:     "workers",
		Short:   "Staff registry",
		Long:    "Keeps a registry of workers and their posts in a relational database.",
		Version: Version,
	}
	opts.bindRootFlags(root, "workers.db")

	root.AddCommand(newAddWorkerCommand(staff))
	root.AddCommand(newDisplayWorkersCommand(staff))
	root.AddCommand(newSelectWorkersCommand(staff))
	return root
}

func newAddWorkerCommand(staff *registry.StaffRegistry) *cobra.Command {
	var (
		name, post string
		year       int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new worker, creating the post on demand",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			worker, err := staff.AddWorker(cmd.Context(), name, post, year)
			if err != nil {
				fmt.Fprintf(out, "Failed to add worker: %v\n", err)
				return
			}
			fmt.Fprintf(out, "Worker %q added successfully (post: %s, since %d).\n",
				worker.Name, worker.Post.Title, worker.Year)
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "worker full name")
	cmd.Flags().StringVarP(&post, "post", "p", "", "post title")
	cmd.Flags().IntVarP(&year, "year", "y", 0, "year the worker started")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("post")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func newDisplayWorkersCommand(staff *registry.StaffRegistry) *cobra.Command {
	return &cobra.Command{
		Use:   "display",
		Short: "List all registered workers with their posts",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			workers, err := staff.AllWorkers(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "Failed to list workers: %v\n", err)
				return
			}
			display.FprintWorkers(out, workers)
		},
	}
}

func newSelectWorkersCommand(staff *registry.StaffRegistry) *cobra.Command {
	var period int

	cmd := &cobra.Command{
		Use:   "select",
		Short: "List workers employed for at least the given number of years",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			workers, err := staff.ByPeriod(cmd.Context(), period)
			if err != nil {
				fmt.Fprintf(out, "Failed to select workers: %v\n", err)
				return
			}
			display.FprintWorkers(out, workers)
		},
	}
	cmd.Flags().IntVarP(&period, "period", "P", 0, "minimum years of service")
	_ = cmd.MarkFlagRequired("period")
	return cmd
}
