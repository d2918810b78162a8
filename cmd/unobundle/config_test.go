package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subframe7536/unobundle"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".unobundle.yaml")
	configContent := `
root: src
file-name: styles.css
out-dir: build
minify: true
workers: 8
include:
  - "**/*.vue"
exclude:
  - "**/vendor/**"
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "src", k.String("root"))
	assert.Equal(t, "styles.css", k.String("file-name"))
	assert.Equal(t, "build", k.String("out-dir"))
	assert.True(t, k.Bool("minify"))
	assert.Equal(t, 8, k.Int("workers"))
	assert.Equal(t, []string{"**/*.vue"}, k.Strings("include"))
	assert.Equal(t, []string{"**/vendor/**"}, k.Strings("exclude"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config — should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.unobundle.yaml"))

	s := resolveSettings()
	assert.Equal(t, ".", s.Root)
	assert.Equal(t, unobundle.DefaultFileName, s.FileName)
	assert.Empty(t, s.OutDir)
	assert.False(t, s.Minify)
	assert.True(t, s.GenerateCSS)
	assert.Equal(t, []string{"**/*.jsx", "**/*.tsx"}, s.Include)
	assert.Equal(t, []string{"**/node_modules/**", "**/dist/**"}, s.Exclude)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".unobundle.yaml")
	configContent := `
file-name: from-file.css
minify: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	// Set env vars that should override config file
	t.Setenv("UNO_FILE_NAME", "from-env.css")
	t.Setenv("UNO_MINIFY", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env.css", k.String("file-name"))
	assert.True(t, k.Bool("minify"))
}

func TestResolveSettings_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".unobundle.yaml")
	configContent := `
root: app
out-dir: out
no-css: true
workers: 2
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	s := resolveSettings()
	assert.Equal(t, "app", s.Root)
	assert.Equal(t, "out", s.OutDir)
	assert.False(t, s.GenerateCSS)
	assert.Equal(t, 2, s.Workers)
	// Unset keys keep their defaults
	assert.Equal(t, unobundle.DefaultFileName, s.FileName)
}

func TestNewPlugin_FromSettings(t *testing.T) {
	resetKoanf()

	s := resolveSettings()
	p := newPlugin(s)
	require.NotNil(t, p)
	assert.Equal(t, "unobundle", p.Name())
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	// Verify file was created
	data, err := os.ReadFile(".unobundle.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "include:")
	assert.Contains(t, string(data), "file-name: uno.css")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(".unobundle.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	// Create existing file
	require.NoError(t, os.WriteFile(".unobundle.yaml", []byte("existing"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".unobundle.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "file-name: uno.css")
}

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
}

func TestStringOr(t *testing.T) {
	resetKoanf()

	assert.Equal(t, "default", stringOr("missing-key", "default"))

	require.NoError(t, k.Set("present-key", "value"))
	assert.Equal(t, "value", stringOr("present-key", "default"))
}
