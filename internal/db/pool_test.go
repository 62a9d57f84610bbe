// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/czujnik/czujnik/internal/model"
)

// TestDBPoolDefaultsSQLite verifies that a file-backed SQLite store keeps
// the configured pool size.
func TestDBPoolDefaultsSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "pool.db")
	s, err := NewStoreFromDSN(context.Background(), "sqlite", dsn, DefaultPoolOptions())
	if err != nil {
		t.Fatalf("NewStoreFromDSN returned error: %v", err)
	}
	defer func() { _ = s.Close() }()

	stats := s.bun.DB.Stats()
	want := DefaultPoolOptions().MaxOpenConns
	if stats.MaxOpenConnections != want {
		t.Fatalf("MaxOpenConnections = %d; want %d", stats.MaxOpenConnections, want)
	}
}

// TestDBPoolInMemorySingleConn verifies in-memory SQLite is pinned to one
// connection so every query sees the same database.
func TestDBPoolInMemorySingleConn(t *testing.T) {
	s, err := NewStoreFromDSN(context.Background(), "sqlite", ":memory:", DefaultPoolOptions())
	if err != nil {
		t.Fatalf("NewStoreFromDSN returned error: %v", err)
	}
	defer func() { _ = s.Close() }()

	if got := s.bun.DB.Stats().MaxOpenConnections; got != 1 {
		t.Fatalf("MaxOpenConnections = %d; want 1", got)
	}
}

// TestConcurrentInsertsFileSQLite verifies that parallel writers on a
// file-backed store wait for the write lock instead of failing with
// SQLITE_BUSY.
func TestConcurrentInsertsFileSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "czujnik.db")
	s, err := NewStoreFromDSN(context.Background(), "sqlite", dsn, DefaultPoolOptions())
	if err != nil {
		t.Fatalf("NewStoreFromDSN returned error: %v", err)
	}
	defer func() { _ = s.Close() }()

	const writers = 50
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("user %d", i)
			u := model.NewUser(&name, nil, nil, nil, time.Now())
			if err := s.AddUser(context.Background(), &u); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent AddUser failed: %v", err)
	}

	users, err := s.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != writers {
		t.Fatalf("expected %d users, got %d", writers, len(users))
	}
}

func TestFileSQLiteUsesWAL(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "wal.db")
	s, err := NewStoreFromDSN(context.Background(), "sqlite", dsn, DefaultPoolOptions())
	if err != nil {
		t.Fatalf("NewStoreFromDSN returned error: %v", err)
	}
	defer func() { _ = s.Close() }()

	var mode string
	if err := QueryRawInto(context.Background(), s.bun, &mode, "PRAGMA journal_mode"); err != nil {
		t.Fatalf("reading journal_mode failed: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode = %q; want wal", mode)
	}
	var timeout int
	if err := QueryRawInto(context.Background(), s.bun, &timeout, "PRAGMA busy_timeout"); err != nil {
		t.Fatalf("reading busy_timeout failed: %v", err)
	}
	if timeout != sqliteBusyTimeoutMS {
		t.Fatalf("busy_timeout = %d; want %d", timeout, sqliteBusyTimeoutMS)
	}
}
