// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/czujnik/czujnik/internal/api"
	"github.com/czujnik/czujnik/internal/config"
	"github.com/czujnik/czujnik/internal/db"
	"github.com/czujnik/czujnik/internal/i18n"
	"github.com/czujnik/czujnik/internal/logging"
	"github.com/czujnik/czujnik/internal/server"
	"github.com/czujnik/czujnik/internal/web"
	"github.com/spf13/cobra"
)

// loadConfig resolves the configuration and sets up logging and i18n from
// it.
func loadConfig(cmd *cobra.Command, verbose bool) (config.Config, error) {
	path, err := getConfigPathFromCli(cmd)
	if err != nil {
		return config.Config{}, err
	}
	c, err := config.Load(cmd, path)
	if err != nil {
		return c, err
	}
	if verbose {
		c.Log.Level = "debug"
	}
	if err := logging.Setup(logging.Options{Level: c.Log.Level, Format: c.Log.Format}); err != nil {
		return c, err
	}
	db.SetDebug(verbose)
	i18n.Init(c.Language)
	if !hasLocale(c.Language) {
		logging.Warnf("no translations for language %q; views fall back to English", c.Language)
	}
	return c, nil
}

// hasLocale reports whether a translation file covers lang or its base
// language.
func hasLocale(lang string) bool {
	base, _, _ := strings.Cut(strings.ToLower(lang), "-")
	for _, l := range i18n.GetAvailableLocales() {
		if strings.EqualFold(l, lang) || l == base {
			return true
		}
	}
	return false
}

// pingStore checks the database answers and logs the round trip.
func pingStore(ctx context.Context, store db.Store) error {
	start := time.Now()
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logging.Infof("database reachable in %s", time.Since(start))
	return nil
}

// openStore opens the configured database and makes sure the schema exists.
func openStore(ctx context.Context, c config.Config) (*db.BunStore, error) {
	opts := db.DefaultPoolOptions()
	opts.MaxOpenConns = c.Database.MaxOpenConns
	opts.MaxIdleConns = c.Database.MaxIdleConns
	opts.ConnMaxLifetime = c.Database.ConnMaxLifetime
	store, err := db.NewStoreFromDSN(ctx, c.Database.Type, c.Database.Dsn, opts)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", c.Database.Type, err)
	}
	return store, nil
}

// newHandler assembles the JSON API and the HTML views over store.
func newHandler(c config.Config, store db.Store) (http.Handler, error) {
	loc := c.Location()
	r := api.NewRouter(store, api.Options{
		Location: loc,
		Logger:   logging.L,
		Debug:    c.Mode == config.ModeDevelopment && c.Log.Level == "debug",
	})
	if err := web.Register(r, store, web.Options{Location: loc, Logger: logging.L}); err != nil {
		return nil, fmt.Errorf("load view templates: %w", err)
	}
	return r, nil
}

func runServe(cmd *cobra.Command, verbose bool) error {
	c, err := loadConfig(cmd, verbose)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Warnf("closing store: %v", err)
		}
	}()
	logging.Infof("using %s database in %s mode", store.Type(), c.Mode)
	if err := pingStore(ctx, store); err != nil {
		return err
	}

	h, err := newHandler(c, store)
	if err != nil {
		return err
	}
	srv, err := server.New(c.Server, c.Addr(), h, logging.L)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
