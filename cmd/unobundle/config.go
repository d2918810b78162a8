package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/subframe7536/unobundle"
	"github.com/subframe7536/unobundle/internal/logging"
)

var k = koanf.New(".")

// settings is the CLI-level configuration: where to look, what to write,
// and how to drive the plugin. The generator's own configuration lives in
// uno.yaml under the root and is resolved by the plugin itself.
type settings struct {
	Root        string
	Include     []string
	Exclude     []string
	OutDir      string
	FileName    string
	Workers     int
	Minify      bool
	GenerateCSS bool
	Quiet       bool
	Color       bool
}

// loadConfig loads configuration with precedence: flags > env > file >
// defaults. It must be called after cobra parses flags (PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".unobundle.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence; only flags that were explicitly set
	// override keys already loaded).
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment
// variables. Separated from loadConfig to allow testing without a cobra
// command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// Environment variables (UNO_* prefix):
	// UNO_OUT_DIR -> out-dir, UNO_FILE_NAME -> file-name
	if err := k.Load(env.Provider("UNO_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "UNO_")),
			"_", "-",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// resolveSettings constructs the CLI settings from koanf state.
func resolveSettings() settings {
	s := settings{
		Root:        stringOr("root", "."),
		OutDir:      k.String("out-dir"),
		FileName:    stringOr("file-name", unobundle.DefaultFileName),
		Workers:     k.Int("workers"),
		Minify:      k.Bool("minify"),
		GenerateCSS: !k.Bool("no-css"),
		Quiet:       k.Bool("quiet"),
		Color:       k.Bool("color"),
	}

	if include := k.Strings("include"); len(include) > 0 {
		s.Include = include
	} else {
		s.Include = []string{"**/*.jsx", "**/*.tsx"}
	}
	if exclude := k.Strings("exclude"); len(exclude) > 0 {
		s.Exclude = exclude
	} else {
		s.Exclude = []string{"**/node_modules/**", "**/dist/**"}
	}

	return s
}

func stringOr(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// newPlugin builds the plugin the CLI drives from resolved settings.
func newPlugin(s settings) *unobundle.Plugin {
	return unobundle.New(unobundle.Options{
		Root:        s.Root,
		Minify:      s.Minify,
		FileName:    s.FileName,
		Filter:      &unobundle.Filter{Include: s.Include, Exclude: s.Exclude},
		GenerateCSS: unobundle.Bool(s.GenerateCSS),
		Logger:      logging.L(),
	})
}
