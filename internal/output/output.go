// Package output provides styled terminal output for the Hearth CLI.
//
// Callers get consistent, colorful messages without touching lipgloss
// directly.
package output

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	verboseMode bool
)

// SetVerbose enables or disables verbose output for debugging.
// Called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	verboseMode = v
}

// Success prints a success message in green.
//
// Example:
//
//	output.Success("Created automation: hallway_lights_when_motion.yaml")
func Success(msg string) {
	fmt.Println(successStyle.Render("🔥 " + msg))
}

// Error prints an error message in red.
func Error(msg string) {
	fmt.Println(errorStyle.Render("❌ " + msg))
}

// Warn prints a warning in yellow. Used for non-fatal conditions such as a
// scaffold file that already exists and was skipped.
func Warn(msg string) {
	fmt.Println(warnStyle.Render("⚠️  " + msg))
}

// Info prints an informational message in cyan.
func Info(msg string) {
	fmt.Println(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented step message in gray, for sub-items and next steps.
func Step(msg string) {
	fmt.Println(stepStyle.Render("   " + msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	if verboseMode {
		fmt.Println(stepStyle.Render("🔍 " + msg))
	}
}
