// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envAliases binds config keys to additional environment variable names
// kept from earlier deployments. The prefixed CZUJNIK_* name always wins.
var envAliases = map[string][]string{
	"mode":              {"FLASK_ENV"},
	"server.port":       {"PORT"},
	"database.username": {"DB_USERNAME"},
	"database.password": {"DB_PASSWORD"},
	"database.host":     {"DB_HOST"},
	"database.name":     {"DB_NAME"},
}

// flagKeys maps CLI flag names to the config keys they override.
var flagKeys = map[string]string{
	"host":       "server.host",
	"port":       "server.port",
	"db-type":    "database.type",
	"dsn":        "database.dsn",
	"log-level":  "log.level",
	"log-format": "log.format",
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Czujnik")
		default: // Linux, macOS, etc.
			configDir = "/etc/czujnik"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "czujnik")
	}

	return filepath.Join(configDir, "czujnik.yaml"), nil
}

// LoadDotEnv merges variables from a .env file into the process
// environment. Variables that are already set are kept. A missing file is
// not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LoadConfig resolves a T from defaults, the config file, the environment
// and the command's flags, in increasing order of precedence.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFilePath *string) (T, error) {
	var c T
	v := viper.New()

	// 1. Set defaults
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// 2. Set up file search paths
	v.SetConfigName("czujnik")
	v.SetConfigType("yaml")

	// 3. An explicit --config path has the highest precedence for files.
	if configFilePath != nil && *configFilePath != "" {
		v.SetConfigFile(*configFilePath)
	} else {
		if userConfigPath, err := GetConfigPath(false); err == nil {
			v.AddConfigPath(filepath.Dir(userConfigPath))
		}
		if systemConfigPath, err := GetConfigPath(true); err == nil {
			v.AddConfigPath(filepath.Dir(systemConfigPath))
		}
		v.AddConfigPath(".")
	}

	// 4. Read in the config file. Not finding one is fine.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, err
		}
	}

	// 5. Read from environment variables
	v.SetEnvPrefix("czujnik")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		prefixed := "CZUJNIK_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return c, err
		}
	}

	// 6. Flags
	if cmd != nil {
		if err := v.BindPFlags(cmd.Flags()); err != nil {
			return c, err
		}
		for name, key := range flagKeys {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return c, err
				}
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	return c, nil
}

// WriteConfigFile persists c as YAML to the user or system config path and
// returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the file may contain database credentials.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", err
	}
	return path, nil
}
