package unobundle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subframe7536/unobundle/textedit"
	"github.com/subframe7536/unobundle/uno"
)

// memEmitter collects emitted assets in memory.
type memEmitter struct {
	mu     sync.Mutex
	assets map[string][]byte
}

func newMemEmitter() *memEmitter {
	return &memEmitter{assets: make(map[string][]byte)}
}

func (e *memEmitter) EmitFile(name string, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.assets[name] = data
	return nil
}

func startPlugin(t *testing.T, opts Options) *Plugin {
	t.Helper()
	if opts.Root == "" {
		opts.Root = t.TempDir()
	}
	p := New(opts)
	require.NoError(t, p.BuildStart(context.Background()))
	return p
}

func TestTransformFilterDefault(t *testing.T) {
	p := startPlugin(t, Options{})

	res, err := p.Transform(context.Background(), "src/App.tsx", `<div class="flex">`)
	require.NoError(t, err)
	require.NotNil(t, res)

	res, err = p.Transform(context.Background(), "src/main.go", `flex`)
	require.NoError(t, err)
	require.Nil(t, res, "unmatched files pass through untouched")
	require.Equal(t, 1, p.Context().Tokens().Len(), "filtered file contributes no tokens")
}

func TestTransformBeforeBuildStart(t *testing.T) {
	p := New(Options{})
	_, err := p.Transform(context.Background(), "a.tsx", "")
	require.Error(t, err)

	err = p.GenerateBundle(context.Background(), newMemEmitter())
	require.Error(t, err)
}

func TestTransformExpandsVariantGroups(t *testing.T) {
	p := startPlugin(t, Options{})

	res, err := p.Transform(context.Background(), "App.tsx", `<div class="hover:(flex hidden)">`)
	require.NoError(t, err)
	require.Equal(t, `<div class="hover:flex hover:hidden">`, res.Code)

	emit := newMemEmitter()
	require.NoError(t, p.GenerateBundle(context.Background(), emit))

	css := string(emit.assets["uno.css"])
	require.Contains(t, css, `.hover\:flex:hover`)
	require.Contains(t, css, `.hover\:hidden:hover`)
	require.NotContains(t, css, "hover:(", "grouped form never reaches the stylesheet")
}

func TestTransformSourceMap(t *testing.T) {
	p := startPlugin(t, Options{})

	res, err := p.Transform(context.Background(), "App.tsx", `<div class="hover:(flex hidden)">`)
	require.NoError(t, err)
	require.NotNil(t, res.Map)
	require.Equal(t, 3, res.Map.Version)
	require.Equal(t, []string{"App.tsx"}, res.Map.Sources)
	require.NotEmpty(t, res.Map.Mappings)
}

func TestOnTransformHook(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
		got   []uno.Highlight
	)
	p := startPlugin(t, Options{
		OnTransform: func(_ context.Context, id string, buf *textedit.Buffer, hs []uno.Highlight) error {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, id)
			got = hs
			// The hook may keep editing; its edits must be visible to the scan.
			buf.Append(` <span class="block">`)
			return nil
		},
	})

	res, err := p.Transform(context.Background(), "App.tsx", `<div class="hover:(flex hidden)">`)
	require.NoError(t, err)

	require.Equal(t, []string{"App.tsx"}, calls, "hook runs exactly once per file")
	require.Len(t, got, 1, "hook sees the transformers' highlights")
	require.Equal(t, "hover:flex hover:hidden", got[0].Token)

	require.Contains(t, res.Code, `<span class="block">`)
	tokens := p.Context().Tokens().Values()
	require.Contains(t, tokens, "block", "scan runs on the hook's output")
}

func TestOnTransformHookPrependsRewrittenStart(t *testing.T) {
	// The variant-group transformer rewrites the range starting at byte 0;
	// a hook prepending to the same file must still materialize cleanly.
	p := startPlugin(t, Options{
		OnTransform: func(_ context.Context, _ string, buf *textedit.Buffer, _ []uno.Highlight) error {
			buf.Prepend("/* x */ ")
			return nil
		},
	})

	res, err := p.Transform(context.Background(), "App.tsx", "hover:(flex hidden) tail")
	require.NoError(t, err)
	require.Equal(t, "/* x */ hover:flex hover:hidden tail", res.Code)
	require.NotNil(t, res.Map)

	tokens := p.Context().Tokens().Values()
	require.Contains(t, tokens, "hover:flex")
	require.Contains(t, tokens, "hover:hidden")
}

func TestOnTransformHookError(t *testing.T) {
	hookErr := errors.New("hook failed")
	p := startPlugin(t, Options{
		OnTransform: func(context.Context, string, *textedit.Buffer, []uno.Highlight) error {
			return hookErr
		},
	})

	_, err := p.Transform(context.Background(), "App.tsx", `<div class="flex">`)
	require.ErrorIs(t, err, hookErr)
}

// failingTransformer aborts every file it sees.
type failingTransformer struct{ err error }

func (f *failingTransformer) Name() string           { return "failing" }
func (f *failingTransformer) Filter(string) bool     { return true }
func (f *failingTransformer) Transform(context.Context, string, *textedit.Buffer) ([]uno.Highlight, error) {
	return nil, f.err
}

func TestTransformerErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	p := startPlugin(t, Options{
		Config: &uno.Config{Transformers: []uno.Transformer{&failingTransformer{err: boom}}},
	})

	_, err := p.Transform(context.Background(), "App.tsx", `<div class="flex">`)
	require.ErrorIs(t, err, boom)
	require.Zero(t, p.Context().Tokens().Len(), "failed transform contributes nothing")
}

func TestGenerateCSSDisabled(t *testing.T) {
	p := startPlugin(t, Options{GenerateCSS: Bool(false)})

	_, err := p.Transform(context.Background(), "App.tsx", `<div class="flex m-4">`)
	require.NoError(t, err)
	require.Equal(t, 2, p.Context().Tokens().Len(), "tokens still accumulate")

	emit := newMemEmitter()
	require.NoError(t, p.GenerateBundle(context.Background(), emit))
	require.Empty(t, emit.assets, "disabled generation emits no asset at all")
}

func TestGenerateBundleEmptyTokenSet(t *testing.T) {
	p := startPlugin(t, Options{FileName: "styles.css"})

	emit := newMemEmitter()
	require.NoError(t, p.GenerateBundle(context.Background(), emit))

	require.Len(t, emit.assets, 1)
	require.NotEmpty(t, emit.assets["styles.css"], "empty token set still yields a stylesheet")
}

func TestGenerateBundleEmitError(t *testing.T) {
	p := startPlugin(t, Options{})

	emitErr := errors.New("disk full")
	err := p.GenerateBundle(context.Background(), AssetEmitterFunc(func(string, []byte) error {
		return emitErr
	}))
	require.ErrorIs(t, err, emitErr)
}

func TestConcurrentTransformsUnion(t *testing.T) {
	const n = 16

	rules := make(map[string]string, n)
	for i := 0; i < n; i++ {
		rules[fmt.Sprintf("u%d", i)] = fmt.Sprintf("--u: %d", i)
	}
	p := startPlugin(t, Options{Config: &uno.Config{Rules: rules}})

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code := fmt.Sprintf(`<div class="u%d">`, i)
			_, errs[i] = p.Transform(context.Background(), fmt.Sprintf("f%d.tsx", i), code)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "file %d", i)
	}
	tokens := p.Context().Tokens()
	require.Equal(t, n, tokens.Len())
	for i := 0; i < n; i++ {
		require.Contains(t, tokens.Values(), fmt.Sprintf("u%d", i))
	}
}

func TestBuildStartResetsSession(t *testing.T) {
	p := startPlugin(t, Options{Root: t.TempDir()})

	_, err := p.Transform(context.Background(), "App.tsx", `<div class="flex">`)
	require.NoError(t, err)
	require.Equal(t, 1, p.Context().Tokens().Len())

	first := p.Context()
	require.NoError(t, p.BuildStart(context.Background()))
	require.NotSame(t, first, p.Context(), "each build gets a fresh context")
	require.Zero(t, p.Context().Tokens().Len())
}

func TestBuildStartMalformedFilterPattern(t *testing.T) {
	p := New(Options{
		Root:   t.TempDir(),
		Filter: &Filter{Include: []string{"src/[oops"}},
	})
	err := p.BuildStart(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), `"src/[oops"`)
}

func TestBuildStartConfigError(t *testing.T) {
	p := New(Options{
		Root:   t.TempDir(),
		Config: &uno.Config{Patterns: []uno.PatternRule{{Match: "(unclosed", Decls: "x: y"}}},
	})
	require.Error(t, p.BuildStart(context.Background()))
}
