// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/czujnik/czujnik/internal/model"
)

// Store defines the interface for all database operations in Czujnik.
// Lookups return (nil, nil) when no row matches; absence is not an error.
type Store interface {
	// User methods
	AddUser(ctx context.Context, u *model.User) error
	GetUser(ctx context.Context, id int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ListUsersWithImplants(ctx context.Context) ([]model.User, error)

	// Implant methods
	AddImplant(ctx context.Context, im *model.Implant) error
	GetImplant(ctx context.Context, id int64) (*model.Implant, error)
	ListImplants(ctx context.Context) ([]model.Implant, error)
	ListImplantsWithMeasurements(ctx context.Context) ([]model.Implant, error)

	// Measurement methods
	AddMeasurement(ctx context.Context, m *model.Measurement) error
	GetMeasurement(ctx context.Context, number int64) (*model.Measurement, error)
	ListMeasurements(ctx context.Context) ([]model.Measurement, error)

	Ping(ctx context.Context) error
	Close() error
}
