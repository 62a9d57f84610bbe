// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db provides the data access layer for Czujnik.
// It hides the underlying database (SQLite locally, MySQL or PostgreSQL in
// production) behind the Store interface, backed by a long-lived *bun.DB.
package db // import "github.com/czujnik/czujnik/internal/db"

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/czujnik/czujnik/internal/model"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// sqlOpenFunc allows tests to override database opening behavior.
var sqlOpenFunc = sql.Open

// PoolOptions configures the database/sql connection pool.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolOptions are conservative values for small deployments.
func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		MaxOpenConns:    25,
		MaxIdleConns:    25,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 60 * time.Second,
	}
}

// driverName maps a database type to the registered database/sql driver.
func driverName(dbType string) (string, error) {
	switch dbType {
	case "sqlite", "mysql":
		return dbType, nil
	case "postgres":
		// The pgx stdlib registers driver name "pgx".
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported database type: '%s'", dbType)
	}
}

// NewStoreFromDSN opens a sql.DB for the given DSN, ensures the schema and
// returns a Store backed by a long-lived *bun.DB.
func NewStoreFromDSN(ctx context.Context, dbType, dsn string, opts PoolOptions) (*BunStore, error) {
	driver, err := driverName(dbType)
	if err != nil {
		return nil, err
	}
	if dbType == "sqlite" {
		dsn = sqliteDSN(dsn)
	}

	start := time.Now()
	sqlDB, err := sqlOpenFunc(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// In-memory SQLite databases exist per connection; keep a single one so
	// every query sees the same schema.
	if dbType == "sqlite" && isMemorySQLite(dsn) {
		opts.MaxOpenConns = 1
		opts.MaxIdleConns = 1
		opts.ConnMaxLifetime = 0
		opts.ConnMaxIdleTime = 0
	}
	sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	dbLogf("opened %s driver in %s (max open=%d, idle=%d, maxLifetime=%s)", driver, time.Since(start), opts.MaxOpenConns, opts.MaxIdleConns, opts.ConnMaxLifetime)

	bunDB := createBunDB(sqlDB, dbType)
	bunDB.AddQueryHook(queryLogHook{})

	if dbType == "sqlite" {
		if err := checkForeignKeys(ctx, bunDB); err != nil {
			_ = bunDB.Close()
			return nil, err
		}
	}
	if err := EnsureSchema(ctx, bunDB); err != nil {
		_ = bunDB.Close()
		return nil, fmt.Errorf("failed to ensure schema: %w", err)
	}
	return &BunStore{bun: bunDB, dbType: dbType}, nil
}

// createBunDB constructs a *bun.DB for the provided *sql.DB and dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case "postgres":
		return bun.NewDB(sqlDB, pgdialect.New())
	case "mysql":
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// BunStore implements Store on top of bun.
type BunStore struct {
	bun    *bun.DB
	dbType string
}

var _ Store = (*BunStore)(nil)

// Type returns the database type the store was opened with.
func (s *BunStore) Type() string { return s.dbType }

// AddUser inserts u and sets its id.
func (s *BunStore) AddUser(ctx context.Context, u *model.User) error {
	id, err := AddUserBun(ctx, s.bun, *u)
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

// GetUser looks a user up by id.
func (s *BunStore) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return GetUserBun(ctx, s.bun, id)
}

// ListUsers returns every user without relations.
func (s *BunStore) ListUsers(ctx context.Context) ([]model.User, error) {
	return ListUsersBun(ctx, s.bun, false)
}

// ListUsersWithImplants returns every user with its implants loaded.
func (s *BunStore) ListUsersWithImplants(ctx context.Context) ([]model.User, error) {
	return ListUsersBun(ctx, s.bun, true)
}

// AddImplant inserts im and sets its id.
func (s *BunStore) AddImplant(ctx context.Context, im *model.Implant) error {
	id, err := AddImplantBun(ctx, s.bun, *im)
	if err != nil {
		return err
	}
	im.ID = id
	return nil
}

// GetImplant looks an implant up by id.
func (s *BunStore) GetImplant(ctx context.Context, id int64) (*model.Implant, error) {
	return GetImplantBun(ctx, s.bun, id)
}

// ListImplants returns every implant without relations.
func (s *BunStore) ListImplants(ctx context.Context) ([]model.Implant, error) {
	return ListImplantsBun(ctx, s.bun, false)
}

// ListImplantsWithMeasurements returns every implant with its measurements loaded.
func (s *BunStore) ListImplantsWithMeasurements(ctx context.Context) ([]model.Implant, error) {
	return ListImplantsBun(ctx, s.bun, true)
}

// AddMeasurement inserts m and sets its number.
func (s *BunStore) AddMeasurement(ctx context.Context, m *model.Measurement) error {
	number, err := AddMeasurementBun(ctx, s.bun, *m)
	if err != nil {
		return err
	}
	m.Number = number
	return nil
}

// GetMeasurement looks a measurement up by number.
func (s *BunStore) GetMeasurement(ctx context.Context, number int64) (*model.Measurement, error) {
	return GetMeasurementBun(ctx, s.bun, number)
}

// ListMeasurements returns every measurement.
func (s *BunStore) ListMeasurements(ctx context.Context) ([]model.Measurement, error) {
	return ListMeasurementsBun(ctx, s.bun)
}

// Ping checks the database connection.
func (s *BunStore) Ping(ctx context.Context) error {
	return s.bun.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *BunStore) Close() error {
	return s.bun.Close()
}
