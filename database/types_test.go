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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("/tmp/pets.db")
	if cfg.ConnectionConfig.Type != "sqlite" {
		t.Fatalf("Type = %q, want sqlite", cfg.ConnectionConfig.Type)
	}
	if cfg.ConnectionConfig.Path != "/tmp/pets.db" {
		t.Fatalf("Path = %q", cfg.ConnectionConfig.Path)
	}
	if !cfg.SchemaConfig.EnableMigrateOnStartup {
		t.Fatal("schema bootstrap disabled by default")
	}
	if !cfg.SchemaConfig.EnableForeignKey {
		t.Fatal("foreign keys disabled by default")
	}
}

func TestLoadConfigFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
connection:
  type: postgres
  host: db.example.com
  port: 5432
  username: keeper
  dbname: keeper
schema:
  enable_foreign_key: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.ConnectionConfig.Type != "postgres" {
		t.Fatalf("Type = %q, want postgres", cfg.ConnectionConfig.Type)
	}
	if cfg.ConnectionConfig.Host != "db.example.com" || cfg.ConnectionConfig.Port != 5432 {
		t.Fatalf("connection not parsed: %+v", cfg.ConnectionConfig)
	}
	if cfg.SchemaConfig.EnableForeignKey {
		t.Fatal("enable_foreign_key: false was not honored")
	}
	// fields absent from the file keep their defaults
	if cfg.ConnectionConfig.MaxOpenConns != 10 {
		t.Fatalf("MaxOpenConns = %d, want default 10", cfg.ConnectionConfig.MaxOpenConns)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("LoadConfigFile succeeded on a missing file")
	}
}

func TestForeignKeyConstraintSQL(t *testing.T) {
	fk := ForeignKeyConstraint{
		Table:           "pets",
		Column:          "owner_id",
		ReferenceTable:  "owners",
		ReferenceColumn: "id",
		OnDelete:        "CASCADE",
	}
	name := fk.GenerateConstraintName()
	if name == "" {
		t.Fatal("constraint name is empty")
	}
	sql := fk.GenerateSQL()
	for _, want := range []string{"pets", "owner_id", "owners", "CASCADE"} {
		if !strings.Contains(sql, want) {
			t.Fatalf("generated SQL missing %q: %s", want, sql)
		}
	}
}
