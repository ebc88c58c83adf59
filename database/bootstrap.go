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

package database

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/uptrace/bun"
)

// SchemaBootstrapper creates the tables for all registered models and records
// the applied steps, so repeated startups are no-ops.
type SchemaBootstrapper struct {
	db     *bun.DB
	logger Logger
}

// Migration represents an applied bootstrap step stored in the database.
type Migration struct {
	Version     string    `bun:"version,pk"`
	Name        string    `bun:"name"`
	AppliedAt   time.Time `bun:"applied_at"`
	Description string    `bun:"description"`
}

// MigrationFunc is a bootstrap step executed within a transaction.
type MigrationFunc func(ctx context.Context, db bun.IDB) error

// MigrationItem describes a single versioned bootstrap step.
type MigrationItem struct {
	Version     string
	Name        string
	Description string
	Up          MigrationFunc
}

// NewSchemaBootstrapper constructs a bootstrapper for the given database.
func NewSchemaBootstrapper(db *bun.DB, logger Logger) *SchemaBootstrapper {
	return &SchemaBootstrapper{
		db:     db,
		logger: logger,
	}
}

// Run creates the tracking table if needed and executes all pending steps in
// ascending version order.
func (sb *SchemaBootstrapper) Run(ctx context.Context) error {
	// silent bootstrap unless explicitly requested
	if _, ok := os.LookupEnv("BUNDEBUG_MIGRATION"); !ok {
		EnableSqlSilent(true)
		defer EnableSqlSilent(false)
	}

	if sb.db == nil {
		return fmt.Errorf("database not initialized")
	}

	if err := sb.createMigrationTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations := sb.getAllMigrations()

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for _, migration := range migrations {
		if err := sb.runMigration(ctx, migration); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", migration.Version, err)
		}
	}

	if sb.logger != nil {
		sb.logger.Debug("Schema bootstrap completed!")
	}

	return nil
}

func (sb *SchemaBootstrapper) createMigrationTable(ctx context.Context) error {
	_, err := sb.db.NewCreateTable().
		Model((*Migration)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

func (sb *SchemaBootstrapper) getAllMigrations() []MigrationItem {
	migrations := []MigrationItem{
		{
			Version:     "001",
			Name:        "create_base_tables",
			Description: "Create base table structure",
			Up:          sb.createBaseTables,
		},
	}
	if globalConfig == nil || globalConfig.SchemaConfig.EnableForeignKey {
		migrations = append(migrations, MigrationItem{
			Version:     "002",
			Name:        "add_foreign_keys",
			Description: "Add table foreign key constraints",
			Up:          sb.addForeignKeys,
		})
	}
	return migrations
}

func (sb *SchemaBootstrapper) runMigration(ctx context.Context, migration MigrationItem) error {
	exists, err := sb.db.NewSelect().
		Model((*Migration)(nil)).
		Where("version = ?", migration.Version).
		Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	tx, err := sb.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	var committed bool
	defer func(tx bun.Tx) {
		if !committed {
			if rollbackErr := tx.Rollback(); rollbackErr != nil && sb.logger != nil {
				sb.logger.Error("Failed to rollback transaction", "error", rollbackErr)
			}
		}
	}(tx)

	if err := migration.Up(ctx, tx); err != nil {
		return err
	}

	migrationRecord := &Migration{
		Version:     migration.Version,
		Name:        migration.Name,
		AppliedAt:   time.Now(),
		Description: migration.Description,
	}

	_, err = tx.NewInsert().
		Model(migrationRecord).
		Exec(ctx)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	if sb.logger != nil {
		sb.logger.Debug("Migration executed successfully", "version", migration.Version, "name", migration.Name)
	}

	return nil
}

// createBaseTables creates one table per registered model in priority order.
// WithForeignKeys renders relation tags into REFERENCES clauses, which is how
// SQLite gets its constraints.
func (sb *SchemaBootstrapper) createBaseTables(ctx context.Context, db bun.IDB) error {
	for _, model := range RegisteredModelInstances() {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table %T: %w", model, err)
		}
	}
	return nil
}

func (sb *SchemaBootstrapper) addForeignKeys(ctx context.Context, db bun.IDB) error {
	var configPath string
	if globalConfig != nil {
		configPath = globalConfig.SchemaConfig.ForeignKeyFile
	}
	fkManager, err := NewConfigurableForeignKeyManager(sb.logger, configPath)
	if err != nil {
		if sb.logger != nil {
			sb.logger.Debug("Failed to use config-based foreign key manager, falling back to code-defined", "error", err.Error())
		}
		return NewForeignKeyManager(sb.logger).AddAllForeignKeys(ctx, db)
	}

	if errs := fkManager.ValidateConstraints(); len(errs) > 0 {
		for _, err := range errs {
			if sb.logger != nil {
				sb.logger.Debug("Foreign key constraint validation failed", "error", err.Error())
			}
		}
		return fmt.Errorf("foreign key constraint validation failed, %d errors in total", len(errs))
	}

	return fkManager.AddAllForeignKeys(ctx, db)
}

// GetAppliedMigrations returns bootstrap records ordered by version.
func (sb *SchemaBootstrapper) GetAppliedMigrations(ctx context.Context) ([]Migration, error) {
	var migrations []Migration
	err := sb.db.NewSelect().
		Model(&migrations).
		Order("version ASC").
		Scan(ctx)
	return migrations, err
}
