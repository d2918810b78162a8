package uno

import (
	"context"
	"regexp"
	"strings"

	"github.com/subframe7536/unobundle/textedit"
)

// variantGroupRE matches a variant prefix chain followed by a parenthesized
// group: hover:(a b), hover:dark:(a b). Groups do not nest.
var variantGroupRE = regexp.MustCompile(`((?:[!\w-]+:)+)\(([^()\n]+)\)`)

// VariantGroupTransformer expands variant groups into plain utility tokens,
// rewriting "hover:(a b)" to "hover:a hover:b" so the scanner sees the
// expanded classes. It must run before scanning: the grouped form matches
// no rule on its own.
type VariantGroupTransformer struct{}

func NewVariantGroupTransformer() *VariantGroupTransformer {
	return &VariantGroupTransformer{}
}

func (t *VariantGroupTransformer) Name() string { return "variant-group" }

// Filter skips stylesheets; expansion only makes sense in markup and script
// sources.
func (t *VariantGroupTransformer) Filter(id string) bool {
	return !strings.HasSuffix(id, ".css")
}

func (t *VariantGroupTransformer) Transform(ctx context.Context, _ string, buf *textedit.Buffer) ([]Highlight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src := buf.Source()
	var highlights []Highlight
	for _, m := range variantGroupRE.FindAllStringSubmatchIndex(src, -1) {
		prefix := src[m[2]:m[3]]
		parts := strings.Fields(src[m[4]:m[5]])
		if len(parts) == 0 {
			continue
		}
		expanded := make([]string, len(parts))
		for i, p := range parts {
			expanded[i] = prefix + p
		}
		replacement := strings.Join(expanded, " ")
		if err := buf.Overwrite(m[0], m[1], replacement); err != nil {
			return nil, err
		}
		highlights = append(highlights, Highlight{Start: m[0], End: m[1], Token: replacement})
	}
	return highlights, nil
}
