package discover

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
}

func TestFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/App.tsx")
	writeFile(t, root, "src/pages/Home.jsx")
	writeFile(t, root, "src/main.go")
	writeFile(t, root, "dist/bundle.tsx")

	files, stats, err := Files(root, []string{"**/*.tsx", "**/*.jsx"}, []string{"dist/**"})
	require.NoError(t, err)

	require.ElementsMatch(t, []string{"src/App.tsx", "src/pages/Home.jsx"}, files)
	require.Equal(t, 3, stats.Discovered)
	require.Equal(t, 2, stats.Matched)
	require.Equal(t, 1, stats.Skipped)
}

func TestFilesGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/App.tsx")
	writeFile(t, root, "generated/out.tsx")
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("generated/\n"), 0644))

	files, stats, err := Files(root, []string{"**/*.tsx"}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"src/App.tsx"}, files)
	require.Equal(t, 1, stats.Skipped)
}

func TestFilesNoMatches(t *testing.T) {
	files, stats, err := Files(t.TempDir(), []string{"**/*.tsx"}, nil)
	require.NoError(t, err)
	require.Empty(t, files)
	require.Zero(t, stats.Discovered)
}

func TestFilesDeduplicates(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/App.tsx")

	files, _, err := Files(root, []string{"**/*.tsx", "src/*.tsx"}, nil)
	require.NoError(t, err)
	require.Equal(t, []string{"src/App.tsx"}, files)
}
