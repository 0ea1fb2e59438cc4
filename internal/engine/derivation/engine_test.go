package derivation_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/sketchsense/internal/core/ports/mocks"
	"go.trai.ch/sketchsense/internal/engine/arch"
	"go.trai.ch/sketchsense/internal/engine/compiletrace"
	"go.trai.ch/sketchsense/internal/engine/derivation"
	"go.trai.ch/sketchsense/internal/engine/macros"
	"go.uber.org/mock/gomock"
)

const (
	board     = "arduino:avr:uno"
	compiler  = "/opt/avr-gcc/bin/avr-g++"
	avrTrace  = compiler + " -c -mmcu=atmega328p -I/core -I/variant -DF_CPU=16000000L -DARDUINO_AVR_UNO blink.ino.cpp -o blink.o\n"
	baseline  = "#define __cplusplus 201703L\n#define F_CPU 16000000L\n"
	hardware  = baseline + "#define ARDUINO_AVR_UNO 1\n#define __AVR_ATmega328P__ 1\n"
	blinkCode = "#include \"pins.h\"\nvoid setup() {}\nvoid loop() {}\n"
)

type engineMocks struct {
	stager   *mocks.MockSketchStager
	builder  *mocks.MockSketchBuilder
	runner   *mocks.MockCommandRunner
	boards   *mocks.MockBoardConfigLoader
	settings *mocks.MockSettingsLoader
	store    *mocks.MockDerivationStore
	writer   *mocks.MockConfigWriter
	logger   *mocks.MockLogger
}

func setupEngine(t *testing.T) (*derivation.Engine, engineMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := engineMocks{
		stager:   mocks.NewMockSketchStager(ctrl),
		builder:  mocks.NewMockSketchBuilder(ctrl),
		runner:   mocks.NewMockCommandRunner(ctrl),
		boards:   mocks.NewMockBoardConfigLoader(ctrl),
		settings: mocks.NewMockSettingsLoader(ctrl),
		store:    mocks.NewMockDerivationStore(ctrl),
		writer:   mocks.NewMockConfigWriter(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}

	tracer := mocks.NewMockTracer(ctrl)
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		},
	).AnyTimes()

	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	m.logger.EXPECT().Info(gomock.Any()).AnyTimes()

	m.settings.EXPECT().Load(gomock.Any()).Return(domain.DefaultSettings(), nil).AnyTimes()

	e := derivation.NewEngine(
		derivation.NewRegistry(),
		m.stager,
		m.builder,
		compiletrace.NewParser(m.logger),
		arch.NewResolver(m.logger),
		macros.NewDiscoverer(m.runner, m.logger, tracer),
		m.boards,
		m.settings,
		m.store,
		m.writer,
		tracer,
		m.logger,
	)
	return e, m
}

func sketch(t *testing.T) (path, root string) {
	t.Helper()
	root = t.TempDir()
	return filepath.Join(root, "blink", "blink.ino"), root
}

// expectDerivation sets up one full derivation: stage, build and both macro passes.
func (m engineMocks) expectDerivation(trace string) {
	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("/tmp/stage/blink", func() error { return nil }, nil)
	m.builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(trace, nil)
	m.runner.EXPECT().Run(gomock.Any(), compiler, gomock.Any(), domain.BaselineSource()).
		Return(ports.CommandResult{Stdout: baseline}, nil)
	m.runner.EXPECT().Run(gomock.Any(), compiler, gomock.Any(), "#include <avr/io.h>\n").
		Return(ports.CommandResult{Stdout: hardware}, nil)
}

func TestDerive_FullDerivation(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)

	m.boards.EXPECT().Load(root).Return(domain.BoardConfig{Board: board}, nil)
	m.store.EXPECT().Get(root, path).Return(nil, nil)
	m.stager.EXPECT().Stage(path, blinkCode, []string{"pins.h"}, root).
		Return("/tmp/stage/blink", func() error { return nil }, nil)
	m.builder.EXPECT().Build(gomock.Any(), domain.BuildRequest{
		SketchDir: "/tmp/stage/blink",
		FQBN:      board,
		CLI:       domain.DefaultCLI,
	}).Return(avrTrace, nil)
	m.runner.EXPECT().Run(gomock.Any(), compiler, []string{"-dM", "-E", "-x", "c++", "-"}, domain.BaselineSource()).
		Return(ports.CommandResult{Stdout: baseline}, nil)
	m.runner.EXPECT().Run(gomock.Any(), compiler, gomock.Any(), "#include <avr/io.h>\n").
		Return(ports.CommandResult{Stdout: hardware}, nil)

	var stored *domain.CacheEntry
	m.store.EXPECT().Put(root, gomock.Any()).DoAndReturn(func(_ string, e *domain.CacheEntry) error {
		stored = e
		return nil
	})
	m.writer.EXPECT().Write(root, board, gomock.Any()).Return(nil)

	res, err := e.Derive(context.Background(), derivation.Request{Path: path, Root: root, Source: blinkCode})
	require.NoError(t, err)

	assert.Equal(t, derivation.StatusDerived, res.Status)
	assert.Equal(t, domain.Fingerprint("pins.h"), res.Fingerprint)
	assert.Equal(t, compiler, res.Properties.CompilerPath)
	assert.Equal(t, domain.FamilyAVR, res.Properties.Family)
	assert.Equal(t, []string{
		"/core",
		"/variant",
		filepath.Join("/opt/avr-gcc", "avr", "include"),
		filepath.Join("/opt/avr-gcc", "lib", "gcc", "avr", "7.3.0", "include"),
		filepath.Join("/opt/avr-gcc", "lib", "gcc", "avr", "7.3.0", "include-fixed"),
	}, res.Properties.IncludePaths)
	assert.Equal(t, []string{"F_CPU=16000000L", "ARDUINO_AVR_UNO", "__AVR_ATmega328P__"}, res.Properties.Defines)

	require.NotNil(t, stored)
	assert.Equal(t, path, stored.FileID)
	assert.Equal(t, board, stored.BoardID)
	assert.False(t, stored.DerivedAt.IsZero())
}

func TestDerive_Idempotence(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)

	m.boards.EXPECT().Load(root).Return(domain.BoardConfig{Board: board}, nil).Times(2)
	m.store.EXPECT().Get(root, path).Return(nil, nil).Times(1)
	m.store.EXPECT().Put(root, gomock.Any()).Return(nil).Times(1)
	m.writer.EXPECT().Write(root, board, gomock.Any()).Return(nil).Times(2)
	m.expectDerivation(avrTrace)

	req := derivation.Request{Path: path, Root: root, Source: blinkCode}
	first, err := e.Derive(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, derivation.StatusDerived, first.Status)

	// Code edits that leave the includes alone must not spawn anything.
	req.Source = blinkCode + "// tweak\nint x = 1;\n"
	second, err := e.Derive(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, derivation.StatusHit, second.Status)
	assert.Equal(t, first.Properties, second.Properties)
}

func TestDerive_FingerprintChangeRederives(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)

	m.boards.EXPECT().Load(root).Return(domain.BoardConfig{Board: board}, nil).AnyTimes()
	m.store.EXPECT().Get(root, path).Return(nil, nil)
	m.store.EXPECT().Put(root, gomock.Any()).Return(nil).Times(2)
	m.writer.EXPECT().Write(root, board, gomock.Any()).Return(nil).Times(2)
	m.expectDerivation(avrTrace)
	m.expectDerivation(avrTrace)

	_, err := e.Derive(context.Background(), derivation.Request{Path: path, Root: root, Source: blinkCode})
	require.NoError(t, err)

	res, err := e.Derive(context.Background(), derivation.Request{
		Path:   path,
		Root:   root,
		Source: "#include \"pins.h\"\n#include \"wifi.h\"\n",
	})
	require.NoError(t, err)
	assert.Equal(t, derivation.StatusDerived, res.Status)
	assert.Equal(t, domain.Fingerprint("pins.h\nwifi.h"), res.Fingerprint)
}

func TestDerive_CommentedIncludeDoesNotRederive(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)

	m.boards.EXPECT().Load(root).Return(domain.BoardConfig{Board: board}, nil).AnyTimes()
	m.store.EXPECT().Get(root, path).Return(nil, nil)
	m.store.EXPECT().Put(root, gomock.Any()).Return(nil)
	m.writer.EXPECT().Write(root, board, gomock.Any()).Return(nil).Times(2)
	m.expectDerivation(avrTrace)

	_, err := e.Derive(context.Background(), derivation.Request{Path: path, Root: root, Source: blinkCode})
	require.NoError(t, err)

	res, err := e.Derive(context.Background(), derivation.Request{
		Path:   path,
		Root:   root,
		Source: blinkCode + "// #include \"wifi.h\"\n/* #include \"gps.h\" */\n",
	})
	require.NoError(t, err)
	assert.Equal(t, derivation.StatusHit, res.Status)
}

func TestDerive_BoardChangeInvalidates(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)
	mega := "arduino:avr:mega"

	gomock.InOrder(
		m.boards.EXPECT().Load(root).Return(domain.BoardConfig{Board: board}, nil),
		m.boards.EXPECT().Load(root).Return(domain.BoardConfig{Board: mega}, nil),
	)
	m.store.EXPECT().Get(root, path).Return(nil, nil).Times(2)
	m.store.EXPECT().Put(root, gomock.Any()).Return(nil).Times(2)
	m.store.EXPECT().Purge(root).Return(nil)
	m.writer.EXPECT().Write(root, board, gomock.Any()).Return(nil)
	m.writer.EXPECT().Write(root, mega, gomock.Any()).Return(nil)
	m.expectDerivation(avrTrace)
	m.expectDerivation(avrTrace)

	req := derivation.Request{Path: path, Root: root, Source: blinkCode}
	_, err := e.Derive(context.Background(), req)
	require.NoError(t, err)

	dropped, err := e.BoardChanged(root)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, dropped)
	assert.False(t, e.Registry().Known(path))

	res, err := e.Derive(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, derivation.StatusDerived, res.Status)
	assert.Equal(t, mega, res.BoardID)
}

func TestDerive_NoCompilerCommandKeepsPriorEntry(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)

	m.boards.EXPECT().Load(root).Return(domain.BoardConfig{Board: board}, nil).AnyTimes()
	m.store.EXPECT().Get(root, path).Return(nil, nil)
	m.store.EXPECT().Put(root, gomock.Any()).Return(nil).Times(1)
	m.writer.EXPECT().Write(root, board, gomock.Any()).Return(nil).Times(1)
	m.expectDerivation(avrTrace)

	_, err := e.Derive(context.Background(), derivation.Request{Path: path, Root: root, Source: blinkCode})
	require.NoError(t, err)

	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("/tmp/stage/blink", func() error { return nil }, nil)
	m.builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return("Error compiling for board Arduino Uno.\n", nil)

	_, err = e.Derive(context.Background(), derivation.Request{Path: path, Root: root, Source: "#include \"other.h\"\n"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDerivationFailed)
	assert.ErrorIs(t, err, domain.ErrNoCompilerCommand)

	prior, ok := e.Registry().Lookup(path)
	require.True(t, ok)
	assert.Equal(t, domain.Fingerprint("pins.h"), prior.ActiveIncludes)
	assert.False(t, e.Registry().Deriving(path), "lock is released after a failure")
}

func TestDerive_DroppedWhileDeriving(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)

	m.boards.EXPECT().Load(root).Return(domain.BoardConfig{Board: board}, nil)
	m.store.EXPECT().Get(root, path).Return(nil, nil)

	_, d := e.Registry().Begin(path, "", board, false)
	require.Equal(t, derivation.DecisionDerive, d)

	res, err := e.Derive(context.Background(), derivation.Request{Path: path, Root: root, Source: blinkCode})
	require.NoError(t, err)
	assert.Equal(t, derivation.StatusDropped, res.Status)
}

func TestDerive_ForceSkipsHit(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)

	m.boards.EXPECT().Load(root).Return(domain.BoardConfig{Board: board}, nil).AnyTimes()
	m.store.EXPECT().Get(root, path).Return(nil, nil)
	m.store.EXPECT().Put(root, gomock.Any()).Return(nil).Times(2)
	m.writer.EXPECT().Write(root, board, gomock.Any()).Return(nil).Times(2)
	m.expectDerivation(avrTrace)
	m.expectDerivation(avrTrace)

	req := derivation.Request{Path: path, Root: root, Source: blinkCode}
	_, err := e.Derive(context.Background(), req)
	require.NoError(t, err)

	req.Force = true
	res, err := e.Derive(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, derivation.StatusDerived, res.Status)
}

func TestDerive_SeedsFromStore(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)

	stored := &domain.CacheEntry{
		FileID:         path,
		ActiveIncludes: "pins.h",
		BoardID:        board,
		Properties:     domain.NewBoardProperties([]string{"/core"}, []string{"X"}, compiler, domain.FamilyAVR),
	}
	m.boards.EXPECT().Load(root).Return(domain.BoardConfig{Board: board}, nil)
	m.store.EXPECT().Get(root, path).Return(stored, nil)
	m.writer.EXPECT().Write(root, board, stored.Properties).Return(nil)

	res, err := e.Derive(context.Background(), derivation.Request{Path: path, Root: root, Source: blinkCode})
	require.NoError(t, err)
	assert.Equal(t, derivation.StatusHit, res.Status)
}

func TestDerive_BoardConfigFailureUsesDefault(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)

	m.boards.EXPECT().Load(root).Return(domain.BoardConfig{}, domain.ErrBoardConfigReadFailed)
	m.logger.EXPECT().WarnErr(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrBoardConfigReadFailed)
		assert.ErrorContains(t, err, "falling back to default board")
	}).Times(1)
	m.store.EXPECT().Get(root, path).Return(nil, nil)
	m.store.EXPECT().Put(root, gomock.Any()).Return(nil)
	m.writer.EXPECT().Write(root, domain.DefaultBoard, gomock.Any()).Return(nil)
	m.expectDerivation(avrTrace)

	res, err := e.Derive(context.Background(), derivation.Request{Path: path, Root: root, Source: blinkCode})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultBoard, res.BoardID)
}

func TestDerive_CleanupFailureIsAWarning(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)

	m.boards.EXPECT().Load(root).Return(domain.BoardConfig{Board: board}, nil)
	m.store.EXPECT().Get(root, path).Return(nil, nil)
	m.store.EXPECT().Put(root, gomock.Any()).Return(nil)
	m.writer.EXPECT().Write(root, board, gomock.Any()).Return(nil)
	m.stager.EXPECT().Stage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("/tmp/stage/blink", func() error { return errors.New("busy") }, nil)
	m.builder.EXPECT().Build(gomock.Any(), gomock.Any()).Return(avrTrace, nil)
	m.runner.EXPECT().Run(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(ports.CommandResult{Stdout: baseline}, nil).Times(2)
	m.logger.EXPECT().WarnErr(gomock.Any()).Do(func(err error) {
		assert.EqualError(t, err, "busy")
	}).Times(1)

	res, err := e.Derive(context.Background(), derivation.Request{Path: path, Root: root, Source: blinkCode})
	require.NoError(t, err)
	assert.Equal(t, derivation.StatusDerived, res.Status)
}

func TestDerive_ReadsSourceWhenNoneGiven(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)

	m.stager.EXPECT().ReadSource(path).Return(blinkCode, nil)
	m.boards.EXPECT().Load(root).Return(domain.BoardConfig{Board: board}, nil)
	m.store.EXPECT().Get(root, path).Return(stubEntry(path), nil)
	m.writer.EXPECT().Write(root, board, gomock.Any()).Return(nil)

	res, err := e.Derive(context.Background(), derivation.Request{Path: path, Root: root})
	require.NoError(t, err)
	assert.Equal(t, derivation.StatusHit, res.Status)
}

func TestDerive_RejectsNonSketch(t *testing.T) {
	e, _ := setupEngine(t)

	_, err := e.Derive(context.Background(), derivation.Request{Path: "/w/main.cpp"})
	assert.ErrorIs(t, err, domain.ErrNotASketch)
}

func TestDerive_DefaultRootIsSketchDir(t *testing.T) {
	e, m := setupEngine(t)
	path, _ := sketch(t)
	dir := filepath.Dir(path)

	m.boards.EXPECT().Load(dir).Return(domain.BoardConfig{Board: board}, nil)
	m.store.EXPECT().Get(dir, path).Return(stubEntry(path), nil)
	m.writer.EXPECT().Write(dir, board, gomock.Any()).Return(nil)

	res, err := e.Derive(context.Background(), derivation.Request{Path: path, Source: blinkCode})
	require.NoError(t, err)
	assert.Equal(t, dir, res.Root)
}

func stubEntry(path string) *domain.CacheEntry {
	return &domain.CacheEntry{
		FileID:         path,
		ActiveIncludes: "pins.h",
		BoardID:        board,
		Properties:     domain.NewBoardProperties(nil, nil, compiler, domain.FamilyAVR),
	}
}

func TestDerive_BoardOverrideSkipsBoardConfig(t *testing.T) {
	e, m := setupEngine(t)
	path, root := sketch(t)

	m.store.EXPECT().Get(root, path).Return(nil, nil)
	m.store.EXPECT().Put(root, gomock.Any()).Return(nil)
	m.writer.EXPECT().Write(root, "arduino:avr:mega", gomock.Any()).Return(nil)
	m.expectDerivation(avrTrace)

	res, err := e.Derive(context.Background(), derivation.Request{
		Path:   path,
		Root:   root,
		Source: blinkCode,
		Board:  "arduino:avr:mega",
	})
	require.NoError(t, err)
	assert.Equal(t, "arduino:avr:mega", res.BoardID)
}
