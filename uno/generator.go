package uno

import (
	"fmt"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ruleCacheSize bounds the token→rule cache. Matched and unmatched tokens
// are both cached, so a token repeated across many files costs the regexp
// work once.
const ruleCacheSize = 4096

// Rule is a compiled utility: the selector it emits, the at-rules wrapping
// it, and its declarations.
type Rule struct {
	Token    string
	Selector string
	AtRules  []string
	Decls    string
}

type compiledPattern struct {
	re    *regexp.Regexp
	decls string
}

// Generator compiles a Config into matching tables and produces CSS from
// token sets. It is constructed once per build and is safe for concurrent
// use: the tables are read-only after construction and the rule cache
// locks internally.
type Generator struct {
	cfg          *Config
	static       map[string]string
	patterns     []compiledPattern
	variants     map[string]Variant
	shortcuts    map[string]string
	blocked      map[string]struct{}
	cache        *lru.Cache[string, *Rule]
	transformers []Transformer
}

// NewGenerator compiles cfg. Pattern regexes that fail to compile surface
// here, before any file is transformed.
func NewGenerator(cfg *Config) (*Generator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	static := make(map[string]string, len(builtinRules)+len(cfg.Rules))
	for k, v := range builtinRules {
		static[k] = v
	}
	for k, v := range cfg.Rules {
		static[k] = v
	}

	variants := make(map[string]Variant, len(builtinVariants)+len(cfg.Variants))
	for k, v := range builtinVariants {
		variants[k] = v
	}
	for k, v := range cfg.Variants {
		variants[k] = v
	}

	patterns := make([]compiledPattern, 0, len(cfg.Patterns))
	for _, p := range cfg.Patterns {
		re, err := regexp.Compile(p.Match)
		if err != nil {
			return nil, fmt.Errorf("compiling pattern %q: %w", p.Match, err)
		}
		patterns = append(patterns, compiledPattern{re: re, decls: p.Decls})
	}

	blocked := make(map[string]struct{}, len(cfg.Blocklist))
	for _, b := range cfg.Blocklist {
		blocked[b] = struct{}{}
	}

	// Shortcut parts resolve without variant peeling: all parts share the
	// alias token's one selector, which cannot also carry a per-part
	// variant. Reject such configs here instead of dropping parts quietly.
	for name, expansion := range cfg.Shortcuts {
		for _, part := range strings.Fields(expansion) {
			if idx := strings.IndexByte(part, ':'); idx > 0 {
				if _, ok := variants[part[:idx]]; ok {
					return nil, fmt.Errorf("shortcut %q: part %q carries variant %q; apply variants to the shortcut token instead", name, part, part[:idx])
				}
			}
		}
	}

	cache, err := lru.New[string, *Rule](ruleCacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating rule cache: %w", err)
	}

	return &Generator{
		cfg:          cfg,
		static:       static,
		patterns:     patterns,
		variants:     variants,
		shortcuts:    cfg.Shortcuts,
		blocked:      blocked,
		cache:        cache,
		transformers: append([]Transformer{NewVariantGroupTransformer()}, cfg.Transformers...),
	}, nil
}

// Config returns the resolved configuration the generator was built from.
func (g *Generator) Config() *Config { return g.cfg }

// Transformers returns the pre-scan transformer list, in execution order.
func (g *Generator) Transformers() []Transformer { return g.transformers }

// Resolve compiles a single token into its rule, or nil if the token does
// not match any rule. Results are cached.
func (g *Generator) Resolve(token string) *Rule {
	if r, ok := g.cache.Get(token); ok {
		return r
	}
	r := g.compile(token)
	g.cache.Add(token, r)
	return r
}

func (g *Generator) compile(token string) *Rule {
	if _, ok := g.blocked[token]; ok {
		return nil
	}

	selector := "." + escapeSelector(token)
	var atRules []string

	// Peel variant prefixes left to right: hover:dark:m-4.
	rest := token
	for {
		idx := strings.IndexByte(rest, ':')
		if idx <= 0 {
			break
		}
		v, ok := g.variants[rest[:idx]]
		if !ok {
			break
		}
		if v.Selector != "" {
			selector = strings.ReplaceAll(v.Selector, "&", selector)
		}
		if v.AtRule != "" {
			atRules = append(atRules, v.AtRule)
		}
		rest = rest[idx+1:]
	}
	if rest == "" {
		return nil
	}

	decls, ok := g.matchShortcut(rest)
	if !ok {
		decls, ok = g.matchBase(rest)
	}
	if !ok {
		return nil
	}

	return &Rule{Token: token, Selector: selector, AtRules: atRules, Decls: decls}
}

// matchShortcut expands an alias into the joined declarations of its
// utilities. Parts that fail to match are dropped; an alias whose parts all
// fail does not match.
func (g *Generator) matchShortcut(base string) (string, bool) {
	expansion, ok := g.shortcuts[base]
	if !ok {
		return "", false
	}
	var decls []string
	for _, part := range strings.Fields(expansion) {
		if d, ok := g.matchBase(part); ok {
			decls = append(decls, d)
		}
	}
	if len(decls) == 0 {
		return "", false
	}
	return strings.Join(decls, "; "), true
}

// matchBase resolves a variant-free class name: static rules first, then
// the built-in dynamic matchers, then user patterns.
func (g *Generator) matchBase(base string) (string, bool) {
	if decls, ok := g.static[base]; ok {
		return decls, true
	}
	if decls, ok := g.matchDynamic(base); ok {
		return decls, true
	}
	for _, p := range g.patterns {
		idx := p.re.FindStringSubmatchIndex(base)
		if idx == nil || idx[0] != 0 || idx[1] != len(base) {
			continue
		}
		return string(p.re.ExpandString(nil, p.decls, base, idx)), true
	}
	return "", false
}

// escapeSelector backslash-escapes the characters in a class name that are
// not valid in a CSS identifier.
func escapeSelector(token string) string {
	var sb strings.Builder
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
