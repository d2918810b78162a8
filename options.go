package unobundle

import (
	"context"
	"log/slog"
	"os"

	"github.com/subframe7536/unobundle/textedit"
	"github.com/subframe7536/unobundle/uno"
)

// DefaultFileName is the asset name used when Options.FileName is empty.
const DefaultFileName = "uno.css"

// TransformHook runs once per transformed file, after all transformers and
// before the token scan. It receives the file identifier, the mutable
// buffer (further edits are allowed), and every highlight the transformers
// produced for the file. An error aborts the file's transform.
type TransformHook func(ctx context.Context, id string, buf *textedit.Buffer, highlights []uno.Highlight) error

// Options configures a Plugin. The zero value is usable: it scans .jsx and
// .tsx files under the working directory and emits uno.css. Options are
// fixed at New and never mutated afterward.
type Options struct {
	// Root is the directory configuration is resolved against.
	// Defaults to the process working directory.
	Root string

	// Minify compacts the emitted stylesheet.
	Minify bool

	// Filter selects which file identifiers Transform rewrites.
	// Defaults to **/*.jsx and **/*.tsx.
	Filter *Filter

	// FileName names the emitted asset. Defaults to DefaultFileName.
	FileName string

	// Config is inline generator configuration, overlaid on top of any
	// on-disk config found under Root.
	Config *uno.Config

	// GenerateCSS controls whether GenerateBundle emits the stylesheet.
	// nil means true.
	GenerateCSS *bool

	// OnTransform, when set, is invoked once per transformed file.
	OnTransform TransformHook

	// Logger receives debug output. Defaults to slog.Default.
	Logger *slog.Logger
}

// withDefaults fills unset fields; the result is what the plugin stores.
func (o Options) withDefaults() Options {
	if o.Root == "" {
		if wd, err := os.Getwd(); err == nil {
			o.Root = wd
		} else {
			o.Root = "."
		}
	}
	if o.FileName == "" {
		o.FileName = DefaultFileName
	}
	if o.Filter == nil {
		o.Filter = DefaultFilter()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// generateCSS resolves the tri-state GenerateCSS field.
func (o Options) generateCSS() bool {
	return o.GenerateCSS == nil || *o.GenerateCSS
}

// Bool is a convenience for setting Options.GenerateCSS.
func Bool(v bool) *bool { return &v }
