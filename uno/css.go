package uno

import (
	"fmt"
	"sort"
	"strings"
)

// cssHeader marks the generated asset; kept even for an empty token set so
// the emitted file is never zero bytes.
const cssHeader = "/* generated by unobundle */\n"

// preflight is the minimal reset prepended unless the config disables it.
const preflight = `*, ::before, ::after {
  box-sizing: border-box;
  margin: 0;
  padding: 0;
}
`

// Generate produces the stylesheet for a token set. Tokens that resolve to
// no rule are skipped. Output is deterministic: rules are ordered by token.
// An empty token set degrades to the header (plus preflight if enabled).
func (g *Generator) Generate(tokens []string, minify bool) (string, error) {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	sort.Strings(sorted)

	var sb strings.Builder
	sb.WriteString(cssHeader)
	if !g.cfg.NoPreflight {
		sb.WriteString(preflight)
	}

	for _, token := range sorted {
		rule := g.Resolve(token)
		if rule == nil {
			continue
		}
		writeRule(&sb, rule)
	}

	css := sb.String()
	if minify {
		min, err := minifyCSS(css)
		if err != nil {
			return "", fmt.Errorf("minifying stylesheet: %w", err)
		}
		css = min
	}
	return css, nil
}

// writeRule emits one rule, nesting it in its at-rule wrappers.
func writeRule(sb *strings.Builder, rule *Rule) {
	indent := ""
	for _, at := range rule.AtRules {
		sb.WriteString(indent)
		sb.WriteString(at)
		sb.WriteString(" {\n")
		indent += "  "
	}

	sb.WriteString(indent)
	sb.WriteString(rule.Selector)
	sb.WriteString(" {\n")
	for _, decl := range strings.Split(rule.Decls, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		sb.WriteString(indent)
		sb.WriteString("  ")
		sb.WriteString(decl)
		sb.WriteString(";\n")
	}
	sb.WriteString(indent)
	sb.WriteString("}\n")

	for i := len(rule.AtRules) - 1; i >= 0; i-- {
		indent = indent[:len(indent)-2]
		sb.WriteString(indent)
		sb.WriteString("}\n")
	}
}
