package cli

import (
	"context"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/brander/internal/core/ports/driving"
	"github.com/custodia-labs/brander/internal/logger"
)

const (
	defaultWatchInterval = 2 * time.Second

	// quietPeriod ignores the events caused by brander's own writes.
	quietPeriod = 500 * time.Millisecond
)

var watchInterval time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the project changes",
	Long: `Generates once, then watches the configuration directory and
regenerates on every change. Runs are throttled to at most one per
--interval. Hidden directories and node_modules are not watched.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchInterval, "interval", defaultWatchInterval, "minimum time between runs")
	watchCmd.Flags().BoolVar(&skipAssets, "skip-assets", false, "skip the task phase")
	watchCmd.Flags().BoolVar(&skipDocs, "skip-docs", false, "skip the document phase")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	session, err := openSession()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	opts := driving.GenerateOptions{SkipAssets: skipAssets, SkipDocs: skipDocs}
	// The configuration is reloaded on every run so edits to it apply.
	regenerate := func() {
		start := time.Now()
		current, err := openSession()
		if err == nil {
			err = current.Brander.Generate(ctx, opts)
		}
		if err != nil {
			cmd.PrintErrf("%s %v\n", styled(cmd.ErrOrStderr(), errorStyle, "✗"), err)
			return
		}
		cmd.Printf("%s Regenerated %s\n", styled(out, successStyle, "✓"),
			styled(out, mutedStyle, "in "+time.Since(start).Round(time.Millisecond).String()))
	}
	regenerate()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(session.ConfigPath)
	if err := addRecursive(watcher, dir); err != nil {
		return err
	}
	cmd.Printf("Watching %s for changes (Ctrl+C to stop)\n", dir)

	loop := &watchLoop{
		events:     watcher.Events,
		errors:     watcher.Errors,
		limiter:    rate.NewLimiter(rate.Every(watchInterval), 1),
		quiet:      quietPeriod,
		now:        time.Now,
		regenerate: regenerate,
		addDir:     func(path string) error { return addRecursive(watcher, path) },
	}
	return loop.run(ctx)
}

// watchLoop turns filesystem events into throttled regenerations.
type watchLoop struct {
	events     <-chan fsnotify.Event
	errors     <-chan error
	limiter    *rate.Limiter
	quiet      time.Duration
	now        func() time.Time
	regenerate func()
	addDir     func(path string) error
}

func (l *watchLoop) run(ctx context.Context) error {
	var quietUntil time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-l.errors:
			if !ok {
				return nil
			}
			logger.Error("watch: %v", err)
		case ev, ok := <-l.events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) && l.addDir != nil {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() && !skipDir(ev.Name) {
					if err := l.addDir(ev.Name); err != nil {
						logger.Warn("watch %s: %v", ev.Name, err)
					}
				}
			}
			if !relevant(ev) || l.now().Before(quietUntil) {
				continue
			}
			logger.Debug("Change detected: %s", ev)
			if err := l.limiter.Wait(ctx); err != nil {
				return nil
			}
			l.regenerate()
			quietUntil = l.now().Add(l.quiet)
		}
	}
}

// relevant reports whether ev should trigger a run. Chmod-only events,
// hidden files and editor backups are ignored.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	base := filepath.Base(ev.Name)
	return !strings.HasPrefix(base, ".") && !strings.HasSuffix(base, "~")
}

func skipDir(path string) bool {
	base := filepath.Base(path)
	return base == "node_modules" || (strings.HasPrefix(base, ".") && base != "." && base != "..")
}

// addRecursive watches root and every directory below it.
func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDir(path) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
