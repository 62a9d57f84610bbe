// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite" // Pure Go SQLite driver
	sqlite3 "modernc.org/sqlite/lib"
)

// sqliteBusyTimeoutMS is how long a connection waits for a competing
// writer's lock before failing with SQLITE_BUSY.
const sqliteBusyTimeoutMS = 5000

// sqliteDSN sets the per-connection pragmas every pooled connection needs:
// a busy timeout so concurrent writers queue on the lock, foreign key
// enforcement, and WAL journaling for file databases. Pragmas already
// present in dsn are left alone.
func sqliteDSN(dsn string) string {
	if dsn == ":memory:" {
		dsn = "file::memory:"
	}
	pragmas := []struct{ name, value string }{
		{"busy_timeout", fmt.Sprintf("busy_timeout(%d)", sqliteBusyTimeoutMS)},
		{"foreign_keys", "foreign_keys(1)"},
	}
	if !isMemorySQLite(dsn) {
		pragmas = append(pragmas, struct{ name, value string }{"journal_mode", "journal_mode(WAL)"})
	}
	for _, p := range pragmas {
		if strings.Contains(dsn, p.name) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=" + p.value
	}
	return dsn
}

// isMemorySQLite reports whether dsn names an in-memory database. Those live
// per connection, so the pool must be limited to one.
func isMemorySQLite(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

func sqliteConstraint(err error) (ConstraintKind, bool) {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return 0, false
	}
	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return ForeignKey, true
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return NotNull, true
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return Unique, true
	}
	return 0, false
}
