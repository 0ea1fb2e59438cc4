package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"go.trai.ch/sketchsense/internal/adapters/watcher"
	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/sketchsense/internal/engine/derivation"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	// Board overrides the workspace board configuration.
	Board string
	// SkipInitial disables deriving every sketch under the root at startup.
	SkipInitial bool
	// Reporter receives the progress of each watched derivation when set.
	Reporter ports.DerivationReporter
}

// Watch keeps the editor configuration of every sketch under root current
// until ctx is cancelled.
//
// Sketch writes trigger derivations after the debounce window settles. A
// change of the board configuration invalidates every cached derivation
// under root and re-derives the affected sketches. Requests dropped because a
// derivation of the same file is running are queued again.
func (a *App) Watch(ctx context.Context, root string, opts WatchOptions) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return domain.Wrap(err, domain.ErrFailedToGetRoot)
	}

	settings, err := a.settings.Load(abs)
	if err != nil {
		a.logger.WarnErr(zerr.Wrap(err, "using default settings"))
		settings = domain.DefaultSettings()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var debouncer *watcher.Debouncer
	debouncer = watcher.NewDebouncer(settings.Debounce, func(paths []string) {
		a.handleBatch(ctx, abs, opts, debouncer, paths)
	})

	if err := a.watcher.Start(ctx, abs); err != nil {
		return err
	}
	a.logger.Info("watching " + abs)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		for ev := range a.watcher.Events() {
			if relevant(abs, ev) {
				debouncer.Add(ev.Path)
			}
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.watcher.Stop()
	})

	if !opts.SkipInitial {
		g.Go(func() error {
			a.handleBatch(gctx, abs, opts, debouncer, a.sketches(abs))
			return nil
		})
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// relevant reports whether ev can change a derivation under root.
func relevant(root string, ev ports.WatchEvent) bool {
	if ev.Path == domain.BoardConfigPath(root) {
		return true
	}
	if !domain.IsSketch(ev.Path) {
		return false
	}
	return ev.Operation == ports.OpWrite || ev.Operation == ports.OpCreate
}

func (a *App) sketches(root string) []string {
	var paths []string
	for p := range a.walker.WalkFiles(root, nil) {
		if domain.IsSketch(p) {
			paths = append(paths, p)
		}
	}
	return paths
}

// handleBatch serves one settled batch of changed paths.
func (a *App) handleBatch(ctx context.Context, root string, opts WatchOptions, d *watcher.Debouncer, paths []string) {
	var sketches []string
	for _, p := range paths {
		switch {
		case p == domain.BoardConfigPath(root):
			dropped, err := a.engine.BoardChanged(root)
			if err != nil {
				a.logger.Error(err)
			}
			// Sketches deriving right now hold no entry yet and are not in dropped.
			sketches = append(sketches, dropped...)
			sketches = append(sketches, a.sketches(root)...)
		case domain.IsSketch(p):
			sketches = append(sketches, p)
		}
	}
	slices.Sort(sketches)
	sketches = slices.Compact(sketches)

	if len(sketches) > 1 {
		a.logger.Debug("processing " + strconv.Itoa(len(sketches)) + " changed sketches")
	}

	for _, p := range sketches {
		if ctx.Err() != nil {
			return
		}
		a.deriveWatched(ctx, root, p, opts, d)
	}
}

func (a *App) deriveWatched(ctx context.Context, root, path string, opts WatchOptions, d *watcher.Debouncer) {
	if _, err := os.Stat(path); err != nil {
		a.logger.Debug("skipping " + path + ": " + err.Error())
		return
	}

	if opts.Reporter != nil {
		opts.Reporter.OnDeriveStart(path)
	}

	res, err := a.engine.Derive(ctx, derivation.Request{
		Path:  path,
		Root:  root,
		Board: opts.Board,
	})
	if opts.Reporter != nil {
		opts.Reporter.OnDeriveDone(path, res.Status.String(), res.Properties, err)
	}
	if err != nil {
		if ctx.Err() == nil {
			a.logger.Error(err)
		}
		return
	}

	if res.Status == derivation.StatusDropped {
		d.Add(path)
	}
}
