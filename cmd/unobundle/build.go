package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/subframe7536/unobundle"
	"github.com/subframe7536/unobundle/internal/discover"
	"github.com/subframe7536/unobundle/internal/logging"
	"github.com/subframe7536/unobundle/internal/runner"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Transform matching files and emit the aggregated stylesheet",
	Long: `Discover files under the root, run each through the transform pipeline,
and write the generated stylesheet. With --out-dir, rewritten sources and
their source maps are written as well.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runBuild,
}

func init() {
	f := buildCmd.Flags()
	f.String("root", ".", "Directory to scan and resolve config against")
	f.StringSlice("include", nil, "Glob patterns for files to transform")
	f.StringSlice("exclude", nil, "Glob patterns to skip")
	f.String("out-dir", "", "Directory for rewritten sources and source maps")
	f.String("file-name", "uno.css", "Name of the emitted stylesheet")
	f.Int("workers", 0, "Transform workers (0 = number of CPUs)")
	f.Bool("minify", false, "Minify the emitted stylesheet")
	f.Bool("no-css", false, "Accumulate tokens but emit no stylesheet")
}

func runBuild(cmd *cobra.Command, _ []string) error {
	s := resolveSettings()
	res, err := executeBuild(cmd.Context(), s, newPlugin(s))
	if err != nil {
		return err
	}

	if !s.Quiet {
		printSummary(os.Stdout, res, s)
	}
	if len(res.Errors) > 0 {
		return fmt.Errorf("%d file(s) failed to transform", len(res.Errors))
	}
	return nil
}

// executeBuild runs one full build with fresh discovery: the shared glue
// between build and watch. Watch passes the same plugin on every rebuild,
// so its invalidation hooks survive across builds.
func executeBuild(ctx context.Context, s settings, plugin *unobundle.Plugin) (*runner.Result, error) {
	files, stats, err := discover.Files(s.Root, s.Include, s.Exclude)
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	logging.L().Debug("discovered files",
		"matched", stats.Matched, "skipped", stats.Skipped)

	r := runner.New(runner.Options{
		Plugin:  plugin,
		Root:    s.Root,
		Workers: s.Workers,
		OutDir:  s.OutDir,
		Logger:  logging.L(),
	})

	emitDir := s.OutDir
	if emitDir == "" {
		emitDir = s.Root
	}
	return r.Run(ctx, files, runner.FileEmitter(emitDir))
}
