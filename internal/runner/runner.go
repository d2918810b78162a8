// Package runner drives a full build through the plugin's lifecycle hooks:
// one BuildStart, concurrent per-file Transforms over a worker pool, then
// one GenerateBundle. It plays the role a host bundler would.
package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/subframe7536/unobundle"
)

// Options configures a build run.
type Options struct {
	Plugin *unobundle.Plugin
	// Root is the directory file paths are resolved against.
	Root string
	// Workers is the transform pool size; 0 means runtime.NumCPU.
	Workers int
	// OutDir, when set, receives the rewritten code and a .map file per
	// transformed file. When empty only the stylesheet asset is written.
	OutDir string
	Logger *slog.Logger
}

// FileError records a per-file transform failure. Failures do not stop the
// rest of the build; the caller decides how to report them.
type FileError struct {
	File string
	Err  error
}

// Result summarizes one build.
type Result struct {
	Files       int
	Transformed int
	Skipped     int
	Tokens      int
	Errors      []FileError
	AssetName   string
	AssetBytes  int
	Duration    time.Duration
}

type Runner struct {
	opts Options
	log  *slog.Logger
}

func New(opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Runner{opts: opts, log: opts.Logger}
}

// Run executes one build over files (paths relative to Root). The emitted
// stylesheet goes through emit; per-file rewrites go under OutDir when set.
// Configuration and finalize errors abort the run; per-file errors are
// collected in the result.
func (r *Runner) Run(ctx context.Context, files []string, emit unobundle.AssetEmitter) (*Result, error) {
	start := time.Now()
	plugin := r.opts.Plugin

	if err := plugin.BuildStart(ctx); err != nil {
		return nil, fmt.Errorf("build start: %w", err)
	}

	res := &Result{Files: len(files)}
	var mu sync.Mutex

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for file := range jobs {
				r.log.Debug("transforming", "worker", worker, "file", file)
				outcome, err := r.transformFile(ctx, file)

				mu.Lock()
				switch {
				case err != nil:
					res.Errors = append(res.Errors, FileError{File: file, Err: err})
				case outcome:
					res.Transformed++
				default:
					res.Skipped++
				}
				mu.Unlock()
			}
		}(i)
	}

	for _, file := range files {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		case jobs <- file:
		}
	}
	close(jobs)
	wg.Wait()

	res.Tokens = plugin.Context().Tokens().Len()

	recorder := unobundle.AssetEmitterFunc(func(name string, data []byte) error {
		res.AssetName = name
		res.AssetBytes = len(data)
		return emit.EmitFile(name, data)
	})
	if err := plugin.GenerateBundle(ctx, recorder); err != nil {
		return nil, fmt.Errorf("generate bundle: %w", err)
	}

	res.Duration = time.Since(start)
	return res, nil
}

// transformFile reads, transforms, and (when OutDir is set) writes one
// file. The bool reports whether the plugin's filter admitted the file.
func (r *Runner) transformFile(ctx context.Context, file string) (bool, error) {
	code, err := os.ReadFile(filepath.Join(r.opts.Root, file))
	if err != nil {
		return false, fmt.Errorf("reading: %w", err)
	}

	result, err := r.opts.Plugin.Transform(ctx, file, string(code))
	if err != nil {
		return false, err
	}
	if result == nil {
		return false, nil
	}
	if r.opts.OutDir == "" {
		return true, nil
	}

	dest := filepath.Join(r.opts.OutDir, file)
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return false, fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(dest, []byte(result.Code), 0644); err != nil {
		return false, fmt.Errorf("writing code: %w", err)
	}
	mapJSON, err := json.Marshal(result.Map)
	if err != nil {
		return false, fmt.Errorf("encoding source map: %w", err)
	}
	if err := os.WriteFile(dest+".map", mapJSON, 0644); err != nil {
		return false, fmt.Errorf("writing source map: %w", err)
	}
	return true, nil
}

// FileEmitter writes emitted assets under dir.
func FileEmitter(dir string) unobundle.AssetEmitter {
	return unobundle.AssetEmitterFunc(func(name string, data []byte) error {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		return os.WriteFile(path, data, 0644)
	})
}
