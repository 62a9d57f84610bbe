// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_Strings(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind ConstraintKind
	}{
		{"sqlite foreign key", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), ForeignKey},
		{"mysql foreign key", errors.New("Error 1452 (23000): Cannot add or update a child row"), ForeignKey},
		{"sqlite not null", errors.New("NOT NULL constraint failed: implants.user_id"), NotNull},
		{"mysql not null", errors.New("Error 1048: Column 'user_id' cannot be null"), NotNull},
		{"postgres unique", errors.New("duplicate key value violates unique constraint (SQLSTATE 23505)"), Unique},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			mapped := MapDBError(c.err)
			var ce *ConstraintError
			if !errors.As(mapped, &ce) {
				t.Fatalf("expected ConstraintError, got %T %v", mapped, mapped)
			}
			if ce.Kind != c.kind {
				t.Fatalf("kind: got %v want %v", ce.Kind, c.kind)
			}
			if !errors.Is(mapped, ErrConstraint) {
				t.Fatalf("expected errors.Is(ErrConstraint)")
			}
			if !errors.Is(mapped, c.err) {
				t.Fatalf("expected the driver error to stay reachable")
			}
		})
	}
}

func TestMapDBError_TypedDriverErrors(t *testing.T) {
	if !IsForeignKey(MapDBError(&mysql.MySQLError{Number: 1452, Message: "child row"})) {
		t.Fatalf("mysql 1452 should map to foreign key")
	}
	if !IsForeignKey(MapDBError(&pgconn.PgError{Code: "23503"})) {
		t.Fatalf("postgres 23503 should map to foreign key")
	}
	var ce *ConstraintError
	if !errors.As(MapDBError(&pgconn.PgError{Code: "23502"}), &ce) || ce.Kind != NotNull {
		t.Fatalf("postgres 23502 should map to not null")
	}
}

func TestMapDBError_Passthrough(t *testing.T) {
	if MapDBError(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	e := errors.New("some network error")
	mapped := MapDBError(e)
	if mapped != e {
		t.Fatalf("expected original error to be returned unchanged, got: %v", mapped)
	}
	if errors.Is(mapped, ErrConstraint) {
		t.Fatalf("did not expect ErrConstraint for unrelated error")
	}
}
