// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"

	"github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQL server error numbers for the constraints the schema declares.
const (
	mysqlErrDupEntry        = 1062
	mysqlErrBadNull         = 1048
	mysqlErrNoReferencedRow = 1452
	mysqlErrNoDefault       = 1364
)

func mysqlConstraint(err error) (ConstraintKind, bool) {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return 0, false
	}
	switch me.Number {
	case mysqlErrNoReferencedRow:
		return ForeignKey, true
	case mysqlErrBadNull, mysqlErrNoDefault:
		return NotNull, true
	case mysqlErrDupEntry:
		return Unique, true
	}
	return 0, false
}
