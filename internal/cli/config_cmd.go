// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"fmt"

	"github.com/czujnik/czujnik/internal/config"
	"github.com/czujnik/czujnik/internal/i18n"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: i18n.T("cli.config.short"),
	}

	var system bool
	write := &cobra.Command{
		Use:   "write",
		Short: i18n.T("cli.config.write.short"),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := getConfigPathFromCli(cmd)
			if err != nil {
				return err
			}
			c, err := config.Load(cmd, path)
			if err != nil {
				return err
			}
			written, err := config.WriteConfigFile(&c, system)
			if err != nil {
				return fmt.Errorf("could not write config file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.config.written", map[string]any{"Path": written}))
			return nil
		},
	}
	write.Flags().BoolVar(&system, "system", false, "write the system-wide config instead of the user config")
	applyServeFlags(write)
	cmd.AddCommand(write)
	return cmd
}
