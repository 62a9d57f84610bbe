// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for Czujnik.
//
// Usage:
//
//	go run . [flags]
//	./czujnik [serve|config write|version] [flags]
//
// Without a subcommand the HTTP service starts. See --help for options.
package main

import (
	"os"

	"github.com/czujnik/czujnik/internal/cli"
	"github.com/czujnik/czujnik/internal/logging"
)

func main() {
	if err := cli.Execute(); err != nil {
		logging.Errorf("czujnik: %v", err)
		os.Exit(1)
	}
}
