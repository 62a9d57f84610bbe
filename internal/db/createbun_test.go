// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"database/sql"
	"testing"

	"github.com/uptrace/bun/dialect"
	_ "modernc.org/sqlite"
)

func TestCreateBunDB_VariousDialects(t *testing.T) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite in-memory: %v", err)
	}
	defer func() { _ = sqlDB.Close() }()

	cases := map[string]dialect.Name{
		"sqlite":   dialect.SQLite,
		"postgres": dialect.PG,
		"mysql":    dialect.MySQL,
		"unknown":  dialect.SQLite,
	}
	for typ, want := range cases {
		b := createBunDB(sqlDB, typ)
		if b == nil {
			t.Fatalf("createBunDB returned nil for dialect %s", typ)
		}
		if got := b.Dialect().Name(); got != want {
			t.Fatalf("createBunDB(%s) dialect = %v; want %v", typ, got, want)
		}
	}
}

func TestDriverName(t *testing.T) {
	for typ, want := range map[string]string{"sqlite": "sqlite", "mysql": "mysql", "postgres": "pgx"} {
		got, err := driverName(typ)
		if err != nil || got != want {
			t.Fatalf("driverName(%s) = %q, %v; want %q", typ, got, err, want)
		}
	}
	if _, err := driverName("oracle"); err == nil {
		t.Fatal("expected error for unsupported type")
	}
}
