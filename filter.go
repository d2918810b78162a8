package unobundle

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter decides which file identifiers the transform hook rewrites.
// When Match is set it takes precedence over the patterns. Otherwise an
// identifier passes when it matches no Exclude pattern and at least one
// Include pattern (an empty Include list admits everything not excluded).
type Filter struct {
	Include []string
	Exclude []string
	Match   func(id string) bool
}

// DefaultFilter matches JSX and TSX sources anywhere in the tree.
func DefaultFilter() *Filter {
	return &Filter{Include: []string{"**/*.jsx", "**/*.tsx"}}
}

// Validate reports the first malformed glob pattern. A malformed pattern
// never matches, so without this check it would silently drop out of the
// filter instead of failing the build.
func (f *Filter) Validate() error {
	for _, pattern := range f.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("malformed include pattern %q", pattern)
		}
	}
	for _, pattern := range f.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("malformed exclude pattern %q", pattern)
		}
	}
	return nil
}

// Matches reports whether id passes the filter. Patterns use doublestar
// syntax and match against the slash-normalized identifier.
func (f *Filter) Matches(id string) bool {
	if f.Match != nil {
		return f.Match(id)
	}

	// Normalize separators so Windows identifiers match slash patterns on
	// every platform.
	id = strings.ReplaceAll(id, "\\", "/")
	for _, pattern := range f.Exclude {
		if ok, err := doublestar.Match(pattern, id); err == nil && ok {
			return false
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for _, pattern := range f.Include {
		if ok, err := doublestar.Match(pattern, id); err == nil && ok {
			return true
		}
	}
	return false
}
