// Package discover expands glob patterns into the file set a build
// transforms, applying gitignore-based filtering.
package discover

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// Stats tracks file discovery statistics for the build summary.
type Stats struct {
	Discovered int // files found by the glob patterns
	Matched    int // files kept after filtering
	Skipped    int // files dropped by exclude patterns or .gitignore
}

// Files expands include patterns relative to root, drops matches hitting an
// exclude pattern or the root's .gitignore, and returns root-relative,
// deduplicated paths.
//
// A missing .gitignore degrades gracefully: no gitignore filtering applies.
func Files(root string, include, exclude []string) ([]string, Stats, error) {
	var stats Stats
	gi := loadGitIgnore(root)

	var files []string
	seen := make(map[string]bool)

	for _, pattern := range include {
		matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
		if err != nil {
			return nil, stats, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			rel, err := filepath.Rel(root, match)
			if err != nil {
				rel = match
			}
			rel = filepath.ToSlash(rel)
			if seen[rel] {
				continue
			}
			seen[rel] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.Discovered++

			if shouldSkip(rel, exclude, gi) {
				stats.Skipped++
				continue
			}
			files = append(files, rel)
			stats.Matched++
		}
	}

	return files, stats, nil
}

// shouldSkip applies two filtering layers: explicit exclude patterns, then
// the project gitignore.
func shouldSkip(rel string, exclude []string, gi *ignore.GitIgnore) bool {
	for _, pattern := range exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	// Gitignore only applies inside the project tree.
	if gi != nil && !strings.HasPrefix(rel, "..") && gi.MatchesPath(rel) {
		return true
	}
	return false
}

// loadGitIgnore compiles root/.gitignore, or nil when none exists.
func loadGitIgnore(root string) *ignore.GitIgnore {
	gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return gi
}
