// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"time"

	"github.com/czujnik/czujnik/internal/logging"
	"github.com/uptrace/bun"
)

var dbDebugEnabled bool

// SetDebug enables or disables DB debug logging. Disabled by default.
func SetDebug(enabled bool) {
	dbDebugEnabled = enabled
}

func dbLogf(format string, v ...any) {
	if dbDebugEnabled {
		logging.Debugf("[DB] "+format, v...)
	}
}

// queryLogHook logs every statement bun executes when DB debug is enabled.
type queryLogHook struct{}

var _ bun.QueryHook = queryLogHook{}

func (queryLogHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (queryLogHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	if !dbDebugEnabled {
		return
	}
	dur := time.Since(event.StartTime)
	if event.Err != nil {
		dbLogf("%s failed after %s: %v: %s", event.Operation(), dur, event.Err, event.Query)
		return
	}
	dbLogf("%s in %s: %s", event.Operation(), dur, event.Query)
}
