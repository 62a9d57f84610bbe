// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
)

// Modes.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// ErrMissingCredential is returned when production mode lacks a database
// credential it needs to build a connection string.
var ErrMissingCredential = errors.New("missing required database credential")

// Config is the process configuration. It is resolved once at startup and
// handed to the components that need it.
type Config struct {
	Mode     string   `mapstructure:"mode" yaml:"mode"`
	Timezone string   `mapstructure:"timezone" yaml:"timezone"`
	Language string   `mapstructure:"language" yaml:"language"`
	Server   Server   `mapstructure:"server" yaml:"server"`
	Database Database `mapstructure:"database" yaml:"database"`
	Log      Log      `mapstructure:"log" yaml:"log"`
}

// Server holds the HTTP listener settings.
type Server struct {
	Host            string        `mapstructure:"host" yaml:"host"`
	Port            int           `mapstructure:"port" yaml:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	GzipMinSize     int           `mapstructure:"gzip_min_size" yaml:"gzip_min_size"`
}

// Database selects and configures the store.
type Database struct {
	Type            string        `mapstructure:"type" yaml:"type"`
	Dsn             string        `mapstructure:"dsn" yaml:"dsn"`
	Username        string        `mapstructure:"username" yaml:"username,omitempty"`
	Password        string        `mapstructure:"password" yaml:"password,omitempty"`
	Host            string        `mapstructure:"host" yaml:"host,omitempty"`
	Name            string        `mapstructure:"name" yaml:"name,omitempty"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

// Log configures the process logger.
type Log struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Defaults returns the default value of every config key.
func Defaults() map[string]any {
	return map[string]any{
		"mode":                       ModeDevelopment,
		"timezone":                   "UTC",
		"language":                   "en",
		"server.host":                "127.0.0.1",
		"server.port":                5000,
		"server.read_timeout":        10 * time.Second,
		"server.write_timeout":       10 * time.Second,
		"server.idle_timeout":        60 * time.Second,
		"server.shutdown_timeout":    10 * time.Second,
		"server.gzip_min_size":       1024,
		"database.type":              "",
		"database.dsn":               "",
		"database.username":          "",
		"database.password":          "",
		"database.host":              "",
		"database.name":              "",
		"database.max_open_conns":    25,
		"database.max_idle_conns":    25,
		"database.conn_max_lifetime": 5 * time.Minute,
		"log.level":                  "info",
		"log.format":                 "auto",
	}
}

// Load reads .env, resolves the configuration for cmd and validates it.
// Startup must not continue when it returns an error.
func Load(cmd *cobra.Command, configFile *string) (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Config{}, err
	}
	c, err := LoadConfig[Config](cmd, Defaults(), configFile)
	if err != nil {
		return c, fmt.Errorf("error loading config: %w", err)
	}
	if err := c.Resolve(); err != nil {
		return c, err
	}
	return c, nil
}

// Resolve fills mode-dependent database settings and validates the result.
func (c *Config) Resolve() error {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	if c.Mode != ModeProduction {
		c.Mode = ModeDevelopment
	}
	if err := c.resolveDatabase(); err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) resolveDatabase() error {
	d := &c.Database
	if c.Mode == ModeDevelopment {
		if d.Type == "" {
			d.Type = "sqlite"
		}
		if d.Dsn == "" {
			d.Dsn = "czujnik.db"
		}
		return nil
	}

	if d.Type == "" {
		d.Type = "mysql"
	}
	if d.Dsn != "" {
		return nil
	}

	var missing []string
	if d.Username == "" {
		missing = append(missing, "DB_USERNAME")
	}
	if d.Password == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredential, strings.Join(missing, ", "))
	}
	if d.Host == "" {
		d.Host = d.Username + ".mysql.pythonanywhere-services.com"
	}
	if d.Name == "" {
		d.Name = d.Username + "$czujnik"
	}

	switch d.Type {
	case "mysql":
		mc := mysql.NewConfig()
		mc.User = d.Username
		mc.Passwd = d.Password
		mc.Net = "tcp"
		mc.Addr = d.Host
		mc.DBName = d.Name
		mc.ParseTime = true
		mc.Loc = time.UTC
		d.Dsn = mc.FormatDSN()
	case "postgres":
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(d.Username, d.Password),
			Host:   d.Host,
			Path:   "/" + d.Name,
		}
		d.Dsn = u.String()
	default:
		return fmt.Errorf("cannot derive a %s connection string in production; set database.dsn", d.Type)
	}
	return nil
}

// Validate checks values that would otherwise fail later at runtime.
func (c *Config) Validate() error {
	switch c.Database.Type {
	case "sqlite", "mysql", "postgres":
	default:
		return fmt.Errorf("unsupported database type: '%s'", c.Database.Type)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("invalid language %q: %w", c.Language, err)
	}
	return nil
}

// Location returns the time zone timestamps are rendered in.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Addr returns the host:port the server listens on.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
