// Package main provides the unobundle CLI, a standalone driver that plays
// the host build tool over a directory tree: it discovers source files,
// runs them through the plugin's transform pipeline, and writes the
// aggregated stylesheet.
package main

import (
	"fmt"
	"os"

	"github.com/subframe7536/unobundle/internal/logging"
)

func main() {
	logging.InitFromEnv()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
