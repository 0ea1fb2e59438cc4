// Package app implements the application layer for sketchsense.
package app

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	adapterfs "go.trai.ch/sketchsense/internal/adapters/fs"
	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/sketchsense/internal/engine/derivation"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	engine   *derivation.Engine
	watcher  ports.Watcher
	settings ports.SettingsLoader
	store    ports.DerivationStore
	walker   *adapterfs.Walker
	logger   ports.Logger
}

// New creates a new App instance.
func New(
	engine *derivation.Engine,
	watcher ports.Watcher,
	settings ports.SettingsLoader,
	store ports.DerivationStore,
	walker *adapterfs.Walker,
	log ports.Logger,
) *App {
	return &App{
		engine:   engine,
		watcher:  watcher,
		settings: settings,
		store:    store,
		walker:   walker,
		logger:   log,
	}
}

// DeriveOptions configuration for the Derive method.
type DeriveOptions struct {
	// Root is the workspace root. Empty means the sketch's directory.
	Root string
	// Board overrides the workspace board configuration.
	Board string
	// Source is the editor buffer text. Empty means read the sketch from disk.
	Source string
	// NoCache forces a full derivation.
	NoCache bool
}

// Derive publishes the compiler configuration of one sketch.
func (a *App) Derive(ctx context.Context, path string, opts DeriveOptions) (derivation.Result, error) {
	res, err := a.engine.Derive(ctx, derivation.Request{
		Path:   path,
		Root:   opts.Root,
		Source: opts.Source,
		Board:  opts.Board,
		Force:  opts.NoCache,
	})
	if err != nil {
		return res, err
	}
	if res.Status == derivation.StatusDropped {
		a.logger.Warn("a derivation of " + res.Path + " is already running; nothing written")
		return res, nil
	}

	a.logger.Info("configuration written to " + domain.EditorConfigPath(res.Root))
	return res, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// EditorConfig also removes the generated editor configuration.
	EditorConfig bool
}

// Clean drops the stored derivations of the workspace at root.
func (a *App) Clean(_ context.Context, root string, opts CleanOptions) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return domain.Wrap(err, domain.ErrFailedToGetRoot)
	}

	if err := a.store.Purge(abs); err != nil {
		return err
	}
	a.logger.Info("removed stored derivations under " + domain.StorePath(abs))

	if !opts.EditorConfig {
		return nil
	}

	path := domain.EditorConfigPath(abs)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove editor configuration"), "path", path)
	}
	a.logger.Info("removed " + path)
	return nil
}
