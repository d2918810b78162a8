package main

import (
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/subframe7536/unobundle/internal/logging"
)

// debounceWindow coalesces editor save bursts into one rebuild.
const debounceWindow = 150 * time.Millisecond

// watchedConfigNames are the files whose change means "reload everything":
// the CLI's own config plus the generator configs the plugin resolves.
var watchedConfigNames = map[string]bool{
	".unobundle.yaml": true,
	"uno.yaml":        true,
	"uno.config.yaml": true,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the stylesheet whenever matching files change",
	Long: `Run an initial build, then watch the root for changes and rebuild.
A change to the configuration file invalidates the build session and
reloads everything.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	// Watch shares the build flag surface.
	watchCmd.Flags().AddFlagSet(buildCmd.Flags())
}

func runWatch(cmd *cobra.Command, _ []string) error {
	s := resolveSettings()
	log := logging.L()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	plugin := newPlugin(s)
	if res, err := executeBuild(ctx, s, plugin); err != nil {
		return err
	} else if !s.Quiet {
		printSummary(os.Stdout, res, s)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, s.Root, s.OutDir); err != nil {
		return fmt.Errorf("watching %s: %w", s.Root, err)
	}
	log.Info("watching for changes", "root", s.Root)

	var (
		timer        *time.Timer
		timerC       <-chan time.Time
		configDirty  bool
		pendingBuild bool
	)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnore(event.Name, s.OutDir) {
				continue
			}
			// Newly created directories need their own watch.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name, s.OutDir)
				}
			}
			if watchedConfigNames[filepath.Base(event.Name)] {
				configDirty = true
			}
			pendingBuild = true
			if timer == nil {
				timer = time.NewTimer(debounceWindow)
				timerC = timer.C
			} else {
				timer.Reset(debounceWindow)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if !pendingBuild {
				continue
			}
			pendingBuild = false

			if configDirty {
				configDirty = false
				log.Info("configuration changed, invalidating build session")
				if bc := plugin.Context(); bc != nil {
					bc.Invalidate()
				}
			}

			res, err := executeBuild(ctx, s, plugin)
			if err != nil {
				log.Error("rebuild failed", "error", err)
				continue
			}
			if !s.Quiet {
				printSummary(os.Stdout, res, s)
			}
		}
	}
}

// addRecursive watches dir and every directory below it, skipping output
// and dependency trees.
func addRecursive(watcher *fsnotify.Watcher, dir, outDir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		if shouldIgnore(path, outDir) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// shouldIgnore filters paths no rebuild should react to. Writing the
// stylesheet into the watched tree must not retrigger the build.
func shouldIgnore(path, outDir string) bool {
	base := filepath.Base(path)
	if base == ".git" || base == "node_modules" || base == "dist" {
		return true
	}
	if strings.HasSuffix(path, ".css") || strings.HasSuffix(path, ".map") {
		return true
	}
	if outDir != "" {
		if rel, err := filepath.Rel(outDir, path); err == nil && !strings.HasPrefix(rel, "..") {
			return true
		}
	}
	return false
}
