package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/subframe7536/unobundle/internal/runner"
)

// Terminal styles for the build summary. Lipgloss degrades colors based on
// terminal capabilities.
var (
	styleGreen = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	styleRed   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	styleGray  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderStyle applies a lipgloss style when colors are enabled.
func renderStyle(style lipgloss.Style, text string, useColors bool) string {
	if !useColors {
		return text
	}
	return style.Render(text)
}

// printSummary writes the one-screen build report.
func printSummary(w io.Writer, res *runner.Result, s settings) {
	fmt.Fprintln(w, renderStyle(styleGreen, "✓ Build complete", s.Color))
	fmt.Fprintf(w, "  Files transformed: %d (skipped %d of %d)\n", res.Transformed, res.Skipped, res.Files)
	fmt.Fprintf(w, "  Tokens found: %d\n", res.Tokens)
	if res.AssetName != "" {
		fmt.Fprintf(w, "  Stylesheet: %s (%d bytes)\n", res.AssetName, res.AssetBytes)
	} else {
		fmt.Fprintln(w, "  Stylesheet: disabled")
	}
	fmt.Fprintln(w, renderStyle(styleGray, fmt.Sprintf("  Took %s", res.Duration.Round(time.Millisecond)), s.Color))

	for _, fe := range res.Errors {
		fmt.Fprintf(w, "%s %s: %v\n", renderStyle(styleRed, "✗", s.Color), fe.File, fe.Err)
	}
}
