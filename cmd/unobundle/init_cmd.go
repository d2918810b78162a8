package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .unobundle.yaml config file",
	Long:  `Create a .unobundle.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".unobundle.yaml"); err == nil && !force {
			return fmt.Errorf(".unobundle.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".unobundle.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .unobundle.yaml")
		return nil
	},
}

const defaultConfig = `# unobundle configuration
# Generator rules, variants, shortcuts and theme live in uno.yaml
# (or uno.config.yaml) under the root.

root: .
include:
  - "**/*.jsx"
  - "**/*.tsx"
exclude:
  - "**/node_modules/**"
  - "**/dist/**"

file-name: uno.css
out-dir: ""      # when set, rewritten sources + source maps land here
minify: false
no-css: false    # accumulate tokens but skip the stylesheet
workers: 0       # 0 = number of CPUs
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
