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
	"path/filepath"
	"testing"
)

func TestManagerLifecycle(t *testing.T) {
	cfg := DefaultConnectionConfig()
	cfg.Path = filepath.Join(t.TempDir(), "test.db")
	manager := NewDatabaseManager(cfg)
	ctx := context.Background()

	// before Connect the manager reports unhealthy
	status := manager.HealthCheck(ctx)
	if status.Healthy || status.Connected {
		t.Fatalf("HealthCheck before Connect = %+v", status)
	}

	if err := manager.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if err := manager.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	status = manager.HealthCheck(ctx)
	if !status.Healthy || !status.Connected {
		t.Fatalf("HealthCheck after Connect = %+v", status)
	}
	if status.ResponseTime <= 0 {
		t.Fatalf("ResponseTime = %v", status.ResponseTime)
	}

	// SQLite pins the pool to a single connection for the pragma
	stats := manager.GetStats()
	if stats.MaxOpenConns != 1 {
		t.Fatalf("MaxOpenConns = %d, want 1", stats.MaxOpenConns)
	}
	if manager.GetSQLDB() == nil || manager.GetDB() == nil {
		t.Fatal("connection accessors returned nil after Connect")
	}

	if err := manager.RunMigrations(ctx); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	if err := manager.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if err := manager.Ping(ctx); err == nil {
		t.Fatal("Ping succeeded after Disconnect")
	}
}

func TestGlobalDatabaseAccessors(t *testing.T) {
	cfg := DefaultConfig(filepath.Join(t.TempDir(), "test.db"))
	db, err := InitDB(cfg)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() {
		_ = CloseDB()
	})

	if GetDB() != db {
		t.Fatal("GetDB does not return the initialized connection")
	}
	if GetConfig() != cfg {
		t.Fatal("GetConfig does not return the active configuration")
	}
	if GetDatabaseManager() == nil {
		t.Fatal("GetDatabaseManager returned nil after InitDB")
	}

	status := GetHealthStatus(context.Background())
	if !status.Healthy || !status.Connected {
		t.Fatalf("GetHealthStatus = %+v", status)
	}
	if GetDatabaseStats().MaxOpenConns != 1 {
		t.Fatalf("GetDatabaseStats = %+v", GetDatabaseStats())
	}

	// bootstrap already ran on startup; a second run is a no-op
	if err := RunMigrations(); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	applied, err := NewSchemaBootstrapper(db, nil).GetAppliedMigrations(context.Background())
	if err != nil {
		t.Fatalf("GetAppliedMigrations: %v", err)
	}
	if len(applied) != 2 {
		t.Fatalf("GetAppliedMigrations returned %d records, want 2", len(applied))
	}
	if applied[0].Version != "001" || applied[1].Version != "002" {
		t.Fatalf("applied versions = %q, %q", applied[0].Version, applied[1].Version)
	}
}

func TestForeignKeyManagerLookups(t *testing.T) {
	pets := ForeignKeyConstraint{
		Table:           "pets",
		Column:          "owner_id",
		ReferenceTable:  "owners",
		ReferenceColumn: "id",
		OnDelete:        "CASCADE",
	}
	workers := ForeignKeyConstraint{
		Table:           "workers",
		Column:          "post_id",
		ReferenceTable:  "posts",
		ReferenceColumn: "id",
		ConstraintName:  "fk_custom",
	}
	fkm := &ForeignKeyManager{constraints: []ForeignKeyConstraint{pets, workers}}

	if got := len(fkm.ListAllConstraints()); got != 2 {
		t.Fatalf("ListAllConstraints returned %d, want 2", got)
	}
	scoped := fkm.GetConstraintsByTable("pets")
	if len(scoped) != 1 || scoped[0].Column != "owner_id" {
		t.Fatalf("GetConstraintsByTable = %+v", scoped)
	}
	if name := pets.GenerateConstraintName(); name != "fk_pets_owner_id" {
		t.Fatalf("derived constraint name = %q", name)
	}
	if name := workers.GenerateConstraintName(); name != "fk_custom" {
		t.Fatalf("explicit constraint name = %q", name)
	}
	if errs := fkm.ValidateConstraints(); len(errs) != 0 {
		t.Fatalf("valid constraints reported errors: %v", errs)
	}

	broken := &ForeignKeyManager{constraints: []ForeignKeyConstraint{{
		Table:    "pets",
		OnDelete: "EXPLODE",
	}}}
	if errs := broken.ValidateConstraints(); len(errs) == 0 {
		t.Fatal("invalid constraint passed validation")
	}
}
