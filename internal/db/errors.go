// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConstraint is matched by every *ConstraintError.
var ErrConstraint = errors.New("constraint violation")

// ConstraintKind tells which schema rule rejected a write.
type ConstraintKind int

const (
	ForeignKey ConstraintKind = iota + 1
	NotNull
	Unique
)

func (k ConstraintKind) String() string {
	switch k {
	case ForeignKey:
		return "foreign key"
	case NotNull:
		return "not null"
	case Unique:
		return "unique"
	default:
		return "unknown"
	}
}

// ConstraintError is returned when the store rejects an insert because a
// referenced row does not exist or a required column is missing.
type ConstraintError struct {
	Kind ConstraintKind
	Err  error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s constraint violation: %v", e.Kind, e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// Is reports ErrConstraint as a match.
func (e *ConstraintError) Is(target error) bool { return target == ErrConstraint }

// IsForeignKey reports whether err is a foreign key violation.
func IsForeignKey(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce) && ce.Kind == ForeignKey
}

// MapDBError inspects low-level driver errors and maps constraint
// violations to *ConstraintError. Typed driver errors are checked first;
// the message-based fallback covers wrapped or proxied driver errors.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	if kind, ok := sqliteConstraint(err); ok {
		return &ConstraintError{Kind: kind, Err: err}
	}
	if kind, ok := mysqlConstraint(err); ok {
		return &ConstraintError{Kind: kind, Err: err}
	}
	if kind, ok := postgresConstraint(err); ok {
		return &ConstraintError{Kind: kind, Err: err}
	}

	le := strings.ToLower(err.Error())
	switch {
	// SQLite "FOREIGN KEY constraint failed", MySQL 1452, Postgres 23503
	case strings.Contains(le, "foreign key"), strings.Contains(le, "1452"), strings.Contains(le, "23503"):
		return &ConstraintError{Kind: ForeignKey, Err: err}
	case strings.Contains(le, "not null"), strings.Contains(le, "cannot be null"), strings.Contains(le, "23502"):
		return &ConstraintError{Kind: NotNull, Err: err}
	case strings.Contains(le, "duplicate"), strings.Contains(le, "unique"), strings.Contains(le, "23505"):
		return &ConstraintError{Kind: Unique, Err: err}
	}
	return err
}
