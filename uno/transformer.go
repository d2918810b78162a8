package uno

import (
	"context"

	"github.com/subframe7536/unobundle/textedit"
)

// Highlight marks a source range a transformer rewrote, with the text that
// replaced it. Highlights live only for the duration of one file's
// transform: they are handed to the post-transform hook and discarded.
type Highlight struct {
	Start int
	End   int
	Token string
}

// Transformer is a pre-scan rewriting step. Transformers run sequentially,
// in list order, against the same buffer; a transformer may skip a file by
// rejecting its identifier in Filter.
type Transformer interface {
	Name() string
	// Filter reports whether the transformer applies to the given file
	// identifier.
	Filter(id string) bool
	// Transform records edits on buf and returns highlights for the ranges
	// it touched. Errors abort the file's transform.
	Transform(ctx context.Context, id string, buf *textedit.Buffer) ([]Highlight, error)
}
