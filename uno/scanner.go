package uno

import "regexp"

// splitRE separates source text into candidate tokens. Quotes, whitespace,
// JSX punctuation and template-literal backticks all delimit; brackets are
// kept so arbitrary values like m-[10px] survive as one candidate.
var splitRE = regexp.MustCompile("[\\s\"'`<>{}();,=\\\\]+")

// candidateRE is a cheap validity pre-filter applied before rule matching.
var candidateRE = regexp.MustCompile(`^[!a-zA-Z][a-zA-Z0-9:_/.%#\[\]-]*$`)

// Scan extracts the utility-class tokens present in text: every candidate
// substring that resolves to a rule. The result is deduplicated and in
// first-seen order. Scanning the same text twice yields the same set.
func (g *Generator) Scan(text string) []string {
	var tokens []string
	seen := make(map[string]struct{})

	for _, cand := range splitRE.Split(text, -1) {
		if !candidateRE.MatchString(cand) {
			continue
		}
		if _, ok := seen[cand]; ok {
			continue
		}
		if g.Resolve(cand) == nil {
			continue
		}
		seen[cand] = struct{}{}
		tokens = append(tokens, cand)
	}

	return tokens
}
