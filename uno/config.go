// Package uno implements the utility-class generator engine: configuration
// loading, token matching, pre-scan source transformers, and CSS emission
// from an accumulated token set.
package uno

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// configFileNames lists the on-disk files LoadConfig looks for, in order,
// under the configured root.
var configFileNames = []string{"uno.yaml", "uno.config.yaml"}

// Config describes the generator: utility rules, dynamic patterns,
// shortcuts, variants, the theme scales they draw from, and output knobs.
type Config struct {
	// Rules maps a class name to its CSS declarations, e.g.
	// "card": "border-radius: 0.5rem; padding: 1rem".
	Rules map[string]string `koanf:"rules"`
	// Patterns are regex-driven rules for parameterized classes.
	Patterns []PatternRule `koanf:"patterns"`
	// Shortcuts map an alias to a space-separated list of variant-free
	// utility tokens. A variant applies to the shortcut token as a whole
	// (hover:btn), never to an individual part; a part carrying a variant
	// prefix is a configuration error.
	Shortcuts map[string]string `koanf:"shortcuts"`
	// Variants map a token prefix (without the colon) to a selector or
	// at-rule wrapper.
	Variants map[string]Variant `koanf:"variants"`
	Theme    Theme              `koanf:"theme"`
	// NoPreflight drops the minimal reset block normally prepended to the
	// generated stylesheet.
	NoPreflight bool `koanf:"no-preflight"`
	// Blocklist lists tokens that must never match, even if a rule would.
	Blocklist []string `koanf:"blocklist"`
	// Transformers are additional pre-scan transformers, run after the
	// built-in ones in the order given. Code-only; never read from disk.
	Transformers []Transformer `koanf:"-"`
}

// PatternRule matches a class name against a regular expression and expands
// capture groups into a declaration template, e.g.
// match: "^grid-cols-(\\d+)$", decls: "grid-template-columns: repeat($1, minmax(0, 1fr))".
type PatternRule struct {
	Match string `koanf:"match"`
	Decls string `koanf:"decls"`
}

// Variant wraps a matched rule in a selector rewrite, an at-rule, or both.
// Selector uses "&" as the placeholder for the wrapped selector.
type Variant struct {
	Selector string `koanf:"selector"`
	AtRule   string `koanf:"at-rule"`
}

// Theme holds the value scales dynamic rules resolve against.
type Theme struct {
	Spacing   map[string]string `koanf:"spacing"`
	Colors    map[string]string `koanf:"colors"`
	FontSizes map[string]string `koanf:"font-sizes"`
}

// DefaultConfig returns the built-in preset. Rule and variant tables that
// ship with the engine live in rules.go; the config only carries the theme
// scales and user extension points.
func DefaultConfig() *Config {
	return &Config{
		Rules:     map[string]string{},
		Shortcuts: map[string]string{},
		Variants:  map[string]Variant{},
		Theme: Theme{
			Spacing:   defaultSpacing(),
			Colors:    defaultColors(),
			FontSizes: defaultFontSizes(),
		},
	}
}

// LoadConfig resolves the generator configuration for a build: the built-in
// preset, overlaid with an on-disk uno.yaml (or uno.config.yaml) under root
// if one exists, overlaid with the inline config. Inline values win. A
// missing file with a nil inline config yields the default preset.
func LoadConfig(root string, inline *Config) (*Config, error) {
	cfg := DefaultConfig()

	if path := findConfigFile(root); path != "" {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		fileCfg := &Config{}
		if err := k.Unmarshal("", fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.merge(fileCfg)
	}

	if inline != nil {
		cfg.merge(inline)
	}

	return cfg, nil
}

// findConfigFile returns the first config file present under root, or "".
func findConfigFile(root string) string {
	for _, name := range configFileNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// merge overlays other onto c. Maps merge key-wise with other winning,
// slices append, and NoPreflight sticks once any layer sets it.
func (c *Config) merge(other *Config) {
	mergeStringMap(&c.Rules, other.Rules)
	mergeStringMap(&c.Shortcuts, other.Shortcuts)
	mergeStringMap(&c.Theme.Spacing, other.Theme.Spacing)
	mergeStringMap(&c.Theme.Colors, other.Theme.Colors)
	mergeStringMap(&c.Theme.FontSizes, other.Theme.FontSizes)

	if other.Variants != nil {
		if c.Variants == nil {
			c.Variants = map[string]Variant{}
		}
		for k, v := range other.Variants {
			c.Variants[k] = v
		}
	}

	c.Patterns = append(c.Patterns, other.Patterns...)
	c.Blocklist = append(c.Blocklist, other.Blocklist...)
	c.Transformers = append(c.Transformers, other.Transformers...)
	c.NoPreflight = c.NoPreflight || other.NoPreflight
}

func mergeStringMap(dst *map[string]string, src map[string]string) {
	if src == nil {
		return
	}
	if *dst == nil {
		*dst = map[string]string{}
	}
	for k, v := range src {
		(*dst)[k] = v
	}
}
