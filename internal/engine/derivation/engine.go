package derivation

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/sketchsense/internal/engine/arch"
	"go.trai.ch/sketchsense/internal/engine/compiletrace"
	"go.trai.ch/sketchsense/internal/engine/includes"
	"go.trai.ch/sketchsense/internal/engine/macros"
	"go.trai.ch/zerr"
)

// Status reports how a request was served.
type Status int

const (
	// StatusHit means the cached properties were reused.
	StatusHit Status = iota
	// StatusDerived means a full derivation ran.
	StatusDerived
	// StatusDropped means the request arrived while the file was deriving.
	StatusDropped
)

func (s Status) String() string {
	switch s {
	case StatusHit:
		return "hit"
	case StatusDerived:
		return "derived"
	case StatusDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Request asks for the compiler configuration of one sketch.
type Request struct {
	// Path is the sketch file. It becomes the file identity once made absolute.
	Path string
	// Root is the workspace root. Empty means the sketch's directory.
	Root string
	// Source is the current buffer text. Empty means read Path from disk.
	Source string
	// Board overrides the board configuration of the workspace when set.
	Board string
	// Force skips the cache hit path. The per-file lock still applies.
	Force bool
}

// Result describes a served request.
type Result struct {
	Status      Status
	Path        string
	Root        string
	BoardID     string
	Fingerprint domain.Fingerprint
	Properties  domain.BoardProperties
}

// Engine runs derivations on top of a Registry.
type Engine struct {
	registry   *Registry
	stager     ports.SketchStager
	builder    ports.SketchBuilder
	parser     *compiletrace.Parser
	resolver   *arch.Resolver
	discoverer *macros.Discoverer
	boards     ports.BoardConfigLoader
	settings   ports.SettingsLoader
	store      ports.DerivationStore
	writer     ports.ConfigWriter
	tracer     ports.Tracer
	logger     ports.Logger
	now        func() time.Time
}

// NewEngine creates a new Engine.
func NewEngine(
	registry *Registry,
	stager ports.SketchStager,
	builder ports.SketchBuilder,
	parser *compiletrace.Parser,
	resolver *arch.Resolver,
	discoverer *macros.Discoverer,
	boards ports.BoardConfigLoader,
	settings ports.SettingsLoader,
	store ports.DerivationStore,
	writer ports.ConfigWriter,
	tracer ports.Tracer,
	logger ports.Logger,
) *Engine {
	return &Engine{
		registry:   registry,
		stager:     stager,
		builder:    builder,
		parser:     parser,
		resolver:   resolver,
		discoverer: discoverer,
		boards:     boards,
		settings:   settings,
		store:      store,
		writer:     writer,
		tracer:     tracer,
		logger:     logger,
		now:        time.Now,
	}
}

// Registry returns the registry the engine derives against.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Derive serves req from the cache or runs a full derivation.
//
// On a hit or a successful derivation the editor configuration is written.
// A failed derivation leaves the cache and the editor configuration untouched.
//
//nolint:cyclop // orchestration function
func (e *Engine) Derive(ctx context.Context, req Request) (Result, error) {
	if !domain.IsSketch(req.Path) {
		return Result{}, zerr.With(zerr.Wrap(domain.ErrNotASketch, "invalid derivation request"), "path", req.Path)
	}

	path, root, err := identity(req.Path, req.Root)
	if err != nil {
		return Result{}, err
	}

	source := req.Source
	if source == "" {
		source, err = e.stager.ReadSource(path)
		if err != nil {
			return Result{}, zerr.With(domain.Wrap(err, domain.ErrSketchReadFailed), "path", path)
		}
	}

	active := includes.Active(source)
	fp := domain.NewFingerprint(active)
	settings := e.loadSettings(root)
	boardID := req.Board
	if boardID == "" {
		boardID = e.resolveBoard(root, settings)
	}

	e.seed(root, path)

	res := Result{Path: path, Root: root, BoardID: boardID, Fingerprint: fp}

	entry, decision := e.registry.Begin(path, fp, boardID, req.Force)
	switch decision {
	case DecisionDropped:
		e.logger.Debug("derivation already running for " + path + "; request dropped")
		res.Status = StatusDropped
		return res, nil
	case DecisionHit:
		e.logger.Debug("includes and board unchanged for " + path + "; using cached configuration")
		res.Status = StatusHit
		res.Properties = entry.Properties
		return res, e.writer.Write(root, boardID, entry.Properties)
	case DecisionDerive:
	}

	var derived *domain.CacheEntry
	defer func() { e.registry.Finish(path, derived) }()

	e.logger.Info("deriving compiler configuration for " + filepath.Base(path) + " (" + boardID + ")")

	props, err := e.run(ctx, path, root, source, active, boardID, settings)
	if err != nil {
		return Result{}, zerr.With(domain.Wrap(err, domain.ErrDerivationFailed), "path", path)
	}

	derived = &domain.CacheEntry{
		FileID:         path,
		ActiveIncludes: fp,
		BoardID:        boardID,
		Properties:     props,
		DerivedAt:      e.now(),
	}
	if err := e.store.Put(root, derived); err != nil {
		e.logger.WarnErr(err)
	}

	e.logger.Info("derived " + strconv.Itoa(len(props.IncludePaths)) + " include paths and " +
		strconv.Itoa(len(props.Defines)) + " defines for " + filepath.Base(path))

	res.Status = StatusDerived
	res.Properties = props
	return res, e.writer.Write(root, boardID, props)
}

// BoardChanged drops every cached derivation under root, in memory and on
// disk, and returns the identities that were cached.
func (e *Engine) BoardChanged(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, domain.Wrap(err, domain.ErrFailedToGetRoot)
	}

	dropped := e.registry.InvalidateWorkspace(abs)
	e.logger.Info("board configuration changed; invalidated " + strconv.Itoa(len(dropped)) + " cached derivations")

	return dropped, e.store.Purge(abs)
}

// run executes build, parse, resolve and discover for one sketch.
func (e *Engine) run(
	ctx context.Context,
	path, root, source string,
	active []string,
	boardID string,
	settings domain.Settings,
) (domain.BoardProperties, error) {
	ctx, span := e.tracer.Start(ctx, "derive",
		ports.WithAttribute("sketch", path),
		ports.WithAttribute("board", boardID),
	)
	defer span.End()

	if settings.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.Timeout)
		defer cancel()
	}

	trace, err := e.build(ctx, path, root, source, includes.Unique(active), boardID, settings)
	if err != nil {
		span.RecordError(err)
		return domain.BoardProperties{}, err
	}

	inv, err := e.parser.Parse(trace)
	if err != nil {
		span.RecordError(err)
		return domain.BoardProperties{}, err
	}
	span.SetAttribute("compiler", inv.CompilerPath)

	resolution := e.resolver.Resolve(ctx, inv.CompilerPath, settings.CompilerOverrides)
	span.SetAttribute("family", string(resolution.Profile.Family))

	paths := make([]string, 0, len(inv.IncludePaths)+len(resolution.StandardIncludes))
	paths = append(paths, inv.IncludePaths...)
	paths = append(paths, resolution.StandardIncludes...)
	paths = includes.Unique(paths)

	defines := e.discoverer.Discover(ctx, inv, resolution.Profile, paths)

	return domain.NewBoardProperties(paths, defines, inv.CompilerPath, resolution.Profile.Family), nil
}

// build stages the sketch, runs the verbose build and removes the staged copy.
func (e *Engine) build(
	ctx context.Context,
	path, root, source string,
	headers []string,
	boardID string,
	settings domain.Settings,
) (string, error) {
	ctx, span := e.tracer.Start(ctx, "build", ports.WithAttribute("headers", len(headers)))
	defer span.End()

	dir, cleanup, err := e.stager.Stage(path, source, headers, root)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	defer func() {
		if cleanup == nil {
			return
		}
		if err := cleanup(); err != nil {
			e.logger.WarnErr(zerr.With(err, "dir", dir))
		}
	}()

	trace, err := e.builder.Build(ctx, domain.BuildRequest{
		SketchDir: dir,
		FQBN:      boardID,
		CLI:       settings.CLI,
		ExtraArgs: settings.ExtraArgs,
	})
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	return trace, nil
}

// seed loads the stored entry of a file the registry has not seen yet.
func (e *Engine) seed(root, path string) {
	if e.registry.Known(path) {
		return
	}
	entry, err := e.store.Get(root, path)
	if err != nil {
		e.logger.WarnErr(err)
		return
	}
	e.registry.Seed(entry)
}

func (e *Engine) loadSettings(root string) domain.Settings {
	settings, err := e.settings.Load(root)
	if err != nil {
		e.logger.WarnErr(zerr.Wrap(err, "using default settings"))
		return domain.DefaultSettings()
	}
	return settings
}

func (e *Engine) resolveBoard(root string, settings domain.Settings) string {
	fallback := settings.DefaultBoard
	if fallback == "" {
		fallback = domain.DefaultBoard
	}

	cfg, err := e.boards.Load(root)
	if err != nil {
		e.logger.WarnErr(zerr.With(zerr.Wrap(err, "falling back to default board"), "board", fallback))
		return fallback
	}
	return cfg.FQBN()
}

// identity returns the absolute sketch path and workspace root.
func identity(path, root string) (string, string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", "", zerr.With(domain.Wrap(err, domain.ErrSketchReadFailed), "path", path)
	}
	if root == "" {
		return abs, filepath.Dir(abs), nil
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", "", domain.Wrap(err, domain.ErrFailedToGetRoot)
	}
	return abs, absRoot, nil
}
