// Copyright (c) 2026 Czujnik Team
// Czujnik - implant telemetry record service
// This source code is licensed under the MIT license found in the LICENSE file.

package logging

import (
	"github.com/charmbracelet/lipgloss"
	clog "github.com/charmbracelet/log"
)

// levelStyles returns the default styles with fixed-width, colored level
// badges.
func levelStyles() *clog.Styles {
	styles := clog.DefaultStyles()
	badge := func(label, color string) lipgloss.Style {
		return lipgloss.NewStyle().
			SetString(label).
			Bold(true).
			Width(5).
			Foreground(lipgloss.Color(color))
	}
	styles.Levels[clog.DebugLevel] = badge("DEBUG", "63")
	styles.Levels[clog.InfoLevel] = badge("INFO", "86")
	styles.Levels[clog.WarnLevel] = badge("WARN", "192")
	styles.Levels[clog.ErrorLevel] = badge("ERROR", "204")
	styles.Levels[clog.FatalLevel] = badge("FATAL", "134")
	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
	return styles
}
