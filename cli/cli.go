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
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tomoncle/keeper/database"
	"github.com/tomoncle/keeper/utils"
)

// Version is the tool version reported by --version.
var Version = "1.0.0"

// rootOptions holds the flags shared by both command trees.
type rootOptions struct {
	dbPath  string
	cfgFile string
	verbose bool
}

// defaultDBPath places the database file in the user's home directory,
// falling back to the working directory when the home cannot be resolved.
func defaultDBPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filename
	}
	return filepath.Join(home, filename)
}

// bindRootFlags registers the shared persistent flags and the open/close
// lifecycle on a root command. The database is opened before any subcommand
// runs and closed afterwards.
func (o *rootOptions) bindRootFlags(root *cobra.Command, defaultFile string) {
	root.PersistentFlags().StringVar(&o.dbPath, "db", defaultDBPath(defaultFile), "path to the database file")
	root.PersistentFlags().StringVar(&o.cfgFile, "config", "", "path to a YAML database configuration file")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug logging and query logging")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return o.openDatabase()
	}
	root.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = database.CloseDB()
	}
}

// openDatabase builds the configuration from flags and initializes the global
// connection, bootstrapping the schema on first use.
func (o *rootOptions) openDatabase() error {
	if o.verbose {
		utils.ConfigureLogLevel("debug")
	} else {
		// keep tables clean: only warnings and errors reach the console
		utils.ConfigureLogLevel("warn")
	}

	var cfg *database.Config
	if o.cfgFile != "" {
		loaded, err := database.LoadConfigFile(o.cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		if cfg.ConnectionConfig.Path == "" {
			cfg.ConnectionConfig.Path = o.dbPath
		}
	} else {
		cfg = database.DefaultConfig(o.dbPath)
	}
	if o.verbose {
		cfg.ConnectionConfig.EnableQueryLog = true
	}

	_, err := database.InitDB(cfg)
	return err
}
