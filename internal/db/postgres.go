// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
)

// SQLSTATE codes of integrity constraint violations.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

func postgresConstraint(err error) (ConstraintKind, bool) {
	var pe *pgconn.PgError
	if !errors.As(err, &pe) {
		return 0, false
	}
	switch pe.Code {
	case pgForeignKeyViolation:
		return ForeignKey, true
	case pgNotNullViolation:
		return NotNull, true
	case pgUniqueViolation:
		return Unique, true
	}
	return 0, false
}
