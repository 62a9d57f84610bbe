// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli sets up the command-line interface using the Cobra library:
// the root command, the serve, config and version subcommands, and the
// flags they share.
package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/czujnik/czujnik/buildvars"
	"github.com/czujnik/czujnik/internal/i18n"
	"github.com/spf13/cobra"
)

const modulePath = "github.com/czujnik/czujnik"

var gitCommit = "dev" // set at build time with the short commit SHA
var buildDate = ""    // set at build time (RFC3339)

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates the root command. Running it without a subcommand
// starts the service.
func NewRootCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "czujnik",
		Short: "Czujnik records users, their implants and implant measurements.",
		Long: `Czujnik is a small HTTP service that stores implant telemetry.
It exposes JSON endpoints to add and fetch users, implants and
measurements, plus read-only HTML listings under /web.

Running without a subcommand starts the service.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, verbose)
		},
	}
	cmd.Version = compositeVersion()

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output (debug log level and SQL logging)")
	cmd.PersistentFlags().String("config", "", "config file")
	cmd.PersistentFlags().String("mode", "", `run mode ("development" or "production")`)
	cmd.PersistentFlags().String("language", "", `view language ("en", "pl")`)
	cmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "", "log format (auto, text, json, logfmt)")
	applyServeFlags(cmd)

	cmd.AddCommand(newServeCmd(&verbose))
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func applyServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("host", "", "listen host")
	cmd.Flags().Int("port", 0, "listen port")
	cmd.Flags().String("db-type", "", `database type ("sqlite", "mysql", "postgres")`)
	cmd.Flags().String("dsn", "", "database connection string")
}

func newServeCmd(verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: i18n.T("cli.serve.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, *verbose)
		},
	}
	applyServeFlags(cmd)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: i18n.T("cli.version.short"),
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), compositeVersion())
		},
	}
}

// getConfigPathFromCli returns the --config path when the user set one.
func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	// Make sure the user-provided file exists to avoid unwanted behavior.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

func compositeVersion() string {
	v, c, d := resolveBuildVersion(nil)
	out := v
	if c != "" && c != "dev" {
		out = out + " (" + c + ")"
	}
	if d != "" {
		out = out + " built: " + d
	}
	return out
}

// resolveBuildVersion computes the best-available version, commit and build
// date for the running binary. If `info` is nil, it reads build info from
// the runtime.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault("dev")
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	if info == nil {
		if local, found := debug.ReadBuildInfo(); found {
			info = local
		}
	}

	if info != nil {
		if resolvedVersion == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only record our version as a dependency.
		if resolvedVersion == "dev" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	// As a last resort show the commit passed via ldflags.
	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}
	return resolvedVersion, resolvedCommit, resolvedDate
}
