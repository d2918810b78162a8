package unobundle

import (
	"sort"
	"sync"

	"github.com/subframe7536/unobundle/uno"
)

// TokenSet is the build-wide accumulator of discovered utility-class
// tokens. Insertion is idempotent and safe under concurrent use; the set
// only grows during the transform phase and is read in full at finalize.
type TokenSet struct {
	mu sync.Mutex
	m  map[string]struct{}
}

// NewTokenSet returns an empty set.
func NewTokenSet() *TokenSet {
	return &TokenSet{m: make(map[string]struct{})}
}

// Add inserts token, reporting whether it was new.
func (s *TokenSet) Add(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[token]; ok {
		return false
	}
	s.m[token] = struct{}{}
	return true
}

// Len returns the number of distinct tokens.
func (s *TokenSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Values returns a sorted snapshot of the set.
func (s *TokenSet) Values() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.m))
	for t := range s.m {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// BuildContext is the per-build session state: the resolved configuration,
// the generator built from it, the token accumulator, and a cleanup
// registry. A fresh context is created by each BuildStart; nothing tears it
// down explicitly when the build ends.
type BuildContext struct {
	cfg    *uno.Config
	gen    *uno.Generator
	tokens *TokenSet

	mu       sync.Mutex
	cleanups []func()
}

// Config returns the resolved generator configuration.
func (c *BuildContext) Config() *uno.Config { return c.cfg }

// Generator returns the build's generator instance.
func (c *BuildContext) Generator() *uno.Generator { return c.gen }

// Tokens returns the build's token accumulator.
func (c *BuildContext) Tokens() *TokenSet { return c.tokens }

// OnInvalidate registers fn to run when Invalidate is called. The registry
// is append-only; callbacks cannot be removed.
func (c *BuildContext) OnInvalidate(fn func()) {
	c.mu.Lock()
	c.cleanups = append(c.cleanups, fn)
	c.mu.Unlock()
}

// Invalidate runs every registered cleanup callback synchronously, in
// registration order. The context itself stays alive; callers decide what
// invalidation means for them.
func (c *BuildContext) Invalidate() {
	c.mu.Lock()
	cleanups := make([]func(), len(c.cleanups))
	copy(cleanups, c.cleanups)
	c.mu.Unlock()

	for _, fn := range cleanups {
		fn()
	}
}
