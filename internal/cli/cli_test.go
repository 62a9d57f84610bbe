// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/czujnik/czujnik/buildvars"
	"github.com/czujnik/czujnik/internal/config"
	"github.com/czujnik/czujnik/internal/db"
)

func TestResolveBuildVersion_MainVersion(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: modulePath, Version: "v1.2.3"},
	}
	v, c, d := resolveBuildVersion(info)
	if v != "v1.2.3" {
		t.Fatalf("expected v1.2.3 got %s", v)
	}
	if c != gitCommit {
		t.Fatalf("expected commit to equal package gitCommit (default) got %s", c)
	}
	if d != buildDate {
		t.Fatalf("expected date to equal package buildDate (default) got %s", d)
	}
}

func TestResolveBuildVersion_DependencyFallback(t *testing.T) {
	info := &debug.BuildInfo{
		Main: debug.Module{Path: modulePath, Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: modulePath, Version: "v0.3.1-0.20260101120000-abcdef123456"},
		},
	}
	v, _, _ := resolveBuildVersion(info)
	if v != "v0.3.1-0.20260101120000-abcdef123456" {
		t.Fatalf("expected dependency version fallback got %s", v)
	}
}

func TestResolveBuildVersion_LinkerVersionWins(t *testing.T) {
	orig := buildvars.Version
	defer func() { buildvars.Version = orig }()
	buildvars.Version = "v9.9.9"
	info := &debug.BuildInfo{
		Main:     debug.Module{Path: modulePath, Version: "v1.0.0"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "cafe"}, {Key: "vcs.time", Value: "2026-01-02T03:04:05Z"}},
	}
	v, c, d := resolveBuildVersion(info)
	if v != "v9.9.9" || c != "cafe" || d != "2026-01-02T03:04:05Z" {
		t.Fatalf("unexpected %s %s %s", v, c, d)
	}
}

func TestResolveBuildVersion_GitCommitFallback(t *testing.T) {
	orig := gitCommit
	defer func() { gitCommit = orig }()
	gitCommit = "deadbeef"
	info := &debug.BuildInfo{
		Main: debug.Module{Path: modulePath, Version: "(devel)"},
	}
	v, _, _ := resolveBuildVersion(info)
	if v != "deadbeef" {
		t.Fatalf("expected gitCommit fallback got %s", v)
	}
}

func TestRootCommandTree(t *testing.T) {
	root := NewRootCmd()
	for _, name := range []string{"serve", "config", "version"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("expected subcommand %q, got %v (%v)", name, c, err)
		}
	}
	if c, _, err := root.Find([]string{"config", "write"}); err != nil || c.Name() != "write" {
		t.Fatalf("expected config write, got %v (%v)", c, err)
	}
}

func TestVersionCommand(t *testing.T) {
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Fatalf("expected a version string")
	}
}

func TestConfigWriteCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"config", "write", "--port", "6060"})
	if err := root.Execute(); err != nil {
		t.Fatalf("config write failed: %v", err)
	}
	path := filepath.Join(dir, "czujnik", "czujnik.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected config at %s: %v", path, err)
	}
	if !strings.Contains(string(data), "port: 6060") {
		t.Fatalf("flag value not persisted:\n%s", data)
	}
	if !strings.Contains(out.String(), path) {
		t.Fatalf("output should name the path, got %q", out.String())
	}
}

func TestHasLocale(t *testing.T) {
	for lang, want := range map[string]bool{"en": true, "pl": true, "pl-PL": true, "de": false} {
		if got := hasLocale(lang); got != want {
			t.Fatalf("hasLocale(%q) = %v; want %v", lang, got, want)
		}
	}
}

func TestPingStore(t *testing.T) {
	store, err := db.NewStoreFromDSN(context.Background(), "sqlite", ":memory:", db.DefaultPoolOptions())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := pingStore(context.Background(), store); err != nil {
		t.Fatalf("pingStore on open store: %v", err)
	}
	_ = store.Close()
	if err := pingStore(context.Background(), store); err == nil {
		t.Fatalf("expected ping on closed store to fail")
	}
}

func TestNewHandlerServesAPIAndViews(t *testing.T) {
	c := config.Config{Mode: config.ModeDevelopment, Timezone: "UTC", Language: "en"}
	store, err := db.NewStoreFromDSN(context.Background(), "sqlite", ":memory:", db.DefaultPoolOptions())
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	defer store.Close()

	h, err := newHandler(c, store)
	if err != nil {
		t.Fatalf("newHandler: %v", err)
	}
	for path, want := range map[string]int{"/": http.StatusOK, "/web/users": http.StatusOK, "/user/1": http.StatusNotFound} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != want {
			t.Fatalf("%s: status %d, want %d", path, w.Code, want)
		}
	}
}
