// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// schemaModels lists the tables in dependency order: parents first.
var schemaModels = []any{
	(*UserModel)(nil),
	(*ImplantModel)(nil),
	(*MeasurementModel)(nil),
}

// EnsureSchema creates the users, implants and measurements tables if they
// are missing. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, bdb *bun.DB) error {
	start := time.Now()
	for _, m := range schemaModels {
		q := bdb.NewCreateTable().Model(m).IfNotExists().WithForeignKeys()
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", m, err)
		}
	}
	dbLogf("schema ensured in %s", time.Since(start))
	return nil
}

// checkForeignKeys verifies that SQLite enforces foreign keys on the
// connection it hands out.
func checkForeignKeys(ctx context.Context, bdb *bun.DB) error {
	var on int
	if err := QueryRawInto(ctx, bdb, &on, "PRAGMA foreign_keys"); err != nil {
		return fmt.Errorf("failed to read foreign_keys pragma: %w", err)
	}
	if on != 1 {
		return fmt.Errorf("sqlite foreign key enforcement is off")
	}
	return nil
}
