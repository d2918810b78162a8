// Package unobundle wires the uno utility-class generator into a bundler's
// per-file transform pipeline and emits one aggregated stylesheet asset.
//
// The plugin exposes the three lifecycle hooks a host build tool drives:
//
//	p := unobundle.New(unobundle.Options{Root: "."})
//	if err := p.BuildStart(ctx); err != nil { ... }
//	for each matched file {
//		res, err := p.Transform(ctx, id, code) // may run concurrently
//	}
//	err := p.GenerateBundle(ctx, emitter)
//
// BuildStart resolves configuration and constructs the generator once per
// build. Transform rewrites a file through the generator's transformer
// list, scans the rewritten text for utility-class tokens, and records
// them in a build-wide accumulator. GenerateBundle produces the final CSS
// from the accumulated set and registers it with the host.
//
// The host guarantees ordering: BuildStart completes before any Transform,
// and GenerateBundle runs after every Transform has finished. Transforms of
// distinct files may interleave freely; the token accumulator is safe under
// concurrent insertion.
//
// # CLI Tool
//
// A standalone driver that plays the host over a directory tree ships as:
//
//	go install github.com/subframe7536/unobundle/cmd/unobundle@latest
package unobundle
