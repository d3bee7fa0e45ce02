package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette for terminal output.
var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary values
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
	colorWhite  = lipgloss.Color("255") // Bright white - values
)

// Shared styles for command output.
var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleKey     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// printTitle writes a bold section title to stderr.
func printTitle(title string) {
	fmt.Fprintln(os.Stderr, styleTitle.Render(title))
}

// printKV writes an aligned key-value line to stderr.
func printKV(key, value string) {
	fmt.Fprintf(os.Stderr, "  %s %s\n", styleKey.Render(fmt.Sprintf("%-14s", key+":")), styleValue.Render(value))
}

// printSuccess writes a success line to stderr.
func printSuccess(msg string) {
	fmt.Fprintln(os.Stderr, styleSuccess.Render("✓ ")+msg)
}

// printWarning writes a warning line to stderr.
func printWarning(msg string) {
	fmt.Fprintln(os.Stderr, styleWarning.Render("! ")+msg)
}

// printError writes an error line to stderr.
func printError(msg string) {
	fmt.Fprintln(os.Stderr, styleError.Render("✗ ")+msg)
}
