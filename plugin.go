package unobundle

import (
	"context"
	"fmt"
	"sync"

	"github.com/subframe7536/unobundle/textedit"
	"github.com/subframe7536/unobundle/uno"
)

// AssetEmitter registers a generated file with the host's output bundle.
type AssetEmitter interface {
	EmitFile(name string, data []byte) error
}

// AssetEmitterFunc adapts a function to the AssetEmitter interface.
type AssetEmitterFunc func(name string, data []byte) error

func (f AssetEmitterFunc) EmitFile(name string, data []byte) error {
	return f(name, data)
}

// TransformResult is a file's rewritten code and the source map describing
// the rewrite.
type TransformResult struct {
	Code string
	Map  *textedit.SourceMap
}

// Plugin is the bundler integration. Construct it with New, then let the
// host drive BuildStart, Transform (possibly concurrently across files),
// and GenerateBundle, in that lifecycle order.
type Plugin struct {
	opts Options

	mu    sync.RWMutex
	build *BuildContext
}

// New creates a plugin. Option defaults are applied here; the generator is
// not constructed until BuildStart.
func New(opts Options) *Plugin {
	return &Plugin{opts: opts.withDefaults()}
}

// Name identifies the plugin to the host.
func (p *Plugin) Name() string { return "unobundle" }

// Context returns the current build's context, or nil before the first
// BuildStart.
func (p *Plugin) Context() *BuildContext {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.build
}

// BuildStart resolves configuration (on-disk under Root, overlaid with the
// inline config) and constructs the generator. It must complete before any
// Transform; a configuration error aborts the build here, before any file
// is touched. Each call begins a fresh build session with an empty token
// accumulator.
func (p *Plugin) BuildStart(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := p.opts.Filter.Validate(); err != nil {
		return fmt.Errorf("resolving configuration: %w", err)
	}
	cfg, err := uno.LoadConfig(p.opts.Root, p.opts.Config)
	if err != nil {
		return fmt.Errorf("resolving configuration: %w", err)
	}
	gen, err := uno.NewGenerator(cfg)
	if err != nil {
		return fmt.Errorf("constructing generator: %w", err)
	}

	p.mu.Lock()
	p.build = &BuildContext{cfg: cfg, gen: gen, tokens: NewTokenSet()}
	p.mu.Unlock()

	p.opts.Logger.Debug("build started",
		"root", p.opts.Root,
		"fileName", p.opts.FileName,
		"generateCSS", p.opts.generateCSS())
	return nil
}

// Transform rewrites one file: transformers run in order against a
// range-tracked buffer, the optional hook sees the result, the materialized
// text is scanned for tokens, and the rewritten code is returned with a
// high-resolution source map. Files rejected by the filter return (nil,
// nil), untouched. Any step's error aborts the file with no partial output.
func (p *Plugin) Transform(ctx context.Context, id, code string) (*TransformResult, error) {
	build := p.Context()
	if build == nil {
		return nil, fmt.Errorf("transform of %s before build start", id)
	}
	if !p.opts.Filter.Matches(id) {
		return nil, nil
	}

	buf := textedit.NewBuffer(code)
	var highlights []uno.Highlight
	for _, tr := range build.Generator().Transformers() {
		if !tr.Filter(id) {
			continue
		}
		hs, err := tr.Transform(ctx, id, buf)
		if err != nil {
			return nil, fmt.Errorf("transformer %s on %s: %w", tr.Name(), id, err)
		}
		highlights = append(highlights, hs...)
	}

	if p.opts.OnTransform != nil {
		if err := p.opts.OnTransform(ctx, id, buf, highlights); err != nil {
			return nil, fmt.Errorf("transform hook on %s: %w", id, err)
		}
	}

	// Scan the post-transform text, never the original: tokens produced by
	// rewriting (expanded variant groups) must reach the accumulator.
	out := buf.String()
	tokens := build.Generator().Scan(out)
	for _, token := range tokens {
		build.Tokens().Add(token)
	}
	p.opts.Logger.Debug("transformed file", "id", id, "tokens", len(tokens), "edited", buf.HasChanged())

	srcMap := buf.GenerateMap(textedit.MapOptions{
		Source:         id,
		Hires:          true,
		IncludeContent: true,
	})
	return &TransformResult{Code: out, Map: srcMap}, nil
}

// GenerateBundle finalizes the build: it generates the stylesheet from the
// complete token set and registers it under Options.FileName. The host
// guarantees no transform is still in flight. When CSS generation is
// disabled this is a no-op and no asset exists; an empty token set still
// emits a (near-empty) stylesheet.
func (p *Plugin) GenerateBundle(ctx context.Context, emit AssetEmitter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	build := p.Context()
	if build == nil {
		return fmt.Errorf("generate bundle before build start")
	}
	if !p.opts.generateCSS() {
		p.opts.Logger.Debug("css generation disabled, skipping asset")
		return nil
	}

	tokens := build.Tokens().Values()
	css, err := build.Generator().Generate(tokens, p.opts.Minify)
	if err != nil {
		return fmt.Errorf("generating css: %w", err)
	}
	if err := emit.EmitFile(p.opts.FileName, []byte(css)); err != nil {
		return fmt.Errorf("emitting %s: %w", p.opts.FileName, err)
	}

	p.opts.Logger.Debug("emitted stylesheet", "fileName", p.opts.FileName, "tokens", len(tokens), "bytes", len(css))
	return nil
}
