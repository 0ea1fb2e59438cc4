package commands_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sketchsense/cmd/sketchsense/commands"
	"go.trai.ch/sketchsense/internal/adapters/detector"
	"go.trai.ch/sketchsense/internal/app"
	"go.trai.ch/sketchsense/internal/build"
	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/engine/derivation"
)

type mockApp struct {
	deriveFunc func(ctx context.Context, path string, opts app.DeriveOptions) (derivation.Result, error)
	watchFunc  func(ctx context.Context, root string, opts app.WatchOptions) error
	cleanFunc  func(ctx context.Context, root string, opts app.CleanOptions) error
	logOpts    []app.LogOptions
}

func (m *mockApp) Derive(ctx context.Context, path string, opts app.DeriveOptions) (derivation.Result, error) {
	if m.deriveFunc != nil {
		return m.deriveFunc(ctx, path, opts)
	}
	return derivation.Result{}, nil
}

func (m *mockApp) Watch(ctx context.Context, root string, opts app.WatchOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, root, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, root string, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, root, opts)
	}
	return nil
}

func (m *mockApp) ConfigureLogging(opts app.LogOptions) detector.LogFormat {
	m.logOpts = append(m.logOpts, opts)
	return detector.FormatPretty
}

func TestCommands_Derive(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedPath string
		var capturedOpts app.DeriveOptions

		mock := &mockApp{
			deriveFunc: func(_ context.Context, path string, opts app.DeriveOptions) (derivation.Result, error) {
				capturedPath = path
				capturedOpts = opts
				return derivation.Result{
					Status:  derivation.StatusDerived,
					Path:    "/w/blink/blink.ino",
					BoardID: "arduino:avr:mega",
					Properties: domain.NewBoardProperties(
						[]string{"/core", "/variant"}, []string{"F_CPU=16000000L"}, "/bin/avr-g++", domain.FamilyAVR),
				}, nil
			},
		}

		cli := commands.New(mock)
		out := new(bytes.Buffer)
		cli.SetOutput(out, new(bytes.Buffer))
		cli.SetArgs([]string{"derive", "blink/blink.ino", "--root", "/w", "--board", "arduino:avr:mega", "--no-cache"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "blink/blink.ino", capturedPath)
		assert.Equal(t, "/w", capturedOpts.Root)
		assert.Equal(t, "arduino:avr:mega", capturedOpts.Board)
		assert.True(t, capturedOpts.NoCache)
		assert.Empty(t, capturedOpts.Source)
		assert.Contains(t, out.String(), "derived /w/blink/blink.ino (arduino:avr:mega): 2 include paths, 1 defines")
	})

	t.Run("reads source from stdin", func(t *testing.T) {
		var source string
		mock := &mockApp{
			deriveFunc: func(_ context.Context, _ string, opts app.DeriveOptions) (derivation.Result, error) {
				source = opts.Source
				return derivation.Result{Status: derivation.StatusHit}, nil
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetInput(strings.NewReader("#include \"a.h\"\nvoid setup() {}\n"))
		cli.SetArgs([]string{"derive", "s.ino", "--stdin"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "#include \"a.h\"\nvoid setup() {}\n", source)
	})

	t.Run("returns error on derive failure", func(t *testing.T) {
		mock := &mockApp{
			deriveFunc: func(_ context.Context, _ string, _ app.DeriveOptions) (derivation.Result, error) {
				return derivation.Result{}, errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"derive", "s.ino"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("requires exactly one sketch", func(t *testing.T) {
		mock := &mockApp{
			deriveFunc: func(_ context.Context, _ string, _ app.DeriveOptions) (derivation.Result, error) {
				panic("should not be called")
			},
		}

		cli := commands.New(mock)
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
		cli.SetArgs([]string{"derive"})

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Watch(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantRoot string
		wantOpts app.WatchOptions
	}{
		{
			name:     "defaults to the working directory",
			args:     []string{"watch"},
			wantRoot: ".",
		},
		{
			name:     "explicit root and flags",
			args:     []string{"watch", "/w", "--board", "esp32:esp32:esp32", "--skip-initial"},
			wantRoot: "/w",
			wantOpts: app.WatchOptions{Board: "esp32:esp32:esp32", SkipInitial: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var root string
			var opts app.WatchOptions
			mock := &mockApp{
				watchFunc: func(_ context.Context, r string, o app.WatchOptions) error {
					root = r
					opts = o
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.wantRoot, root)
			assert.Equal(t, tt.wantOpts, opts)
		})
	}
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantRoot string
		wantOpts app.CleanOptions
	}{
		{
			name:     "defaults to the working directory",
			args:     []string{"clean"},
			wantRoot: ".",
		},
		{
			name:     "explicit root with editor config",
			args:     []string{"clean", "/w", "--editor-config"},
			wantRoot: "/w",
			wantOpts: app.CleanOptions{EditorConfig: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var root string
			var opts app.CleanOptions
			mock := &mockApp{
				cleanFunc: func(_ context.Context, r string, o app.CleanOptions) error {
					root = r
					opts = o
					return nil
				},
			}

			cli := commands.New(mock)
			cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
			cli.SetArgs(tt.args)

			require.NoError(t, cli.Execute(context.Background()))
			assert.Equal(t, tt.wantRoot, root)
			assert.Equal(t, tt.wantOpts, opts)
		})
	}
}

func TestCommands_RejectsExtraRoots(t *testing.T) {
	for _, cmd := range []string{"watch", "clean"} {
		t.Run(cmd, func(t *testing.T) {
			cli := commands.New(&mockApp{
				watchFunc: func(context.Context, string, app.WatchOptions) error {
					t.Fatal("watch must not run")
					return nil
				},
				cleanFunc: func(context.Context, string, app.CleanOptions) error {
					t.Fatal("clean must not run")
					return nil
				},
			})
			cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
			cli.SetArgs([]string{cmd, "/a", "/b"})

			assert.Error(t, cli.Execute(context.Background()))
		})
	}
}

func TestCommands_ConfiguresLogging(t *testing.T) {
	mock := &mockApp{}
	stderr := new(bytes.Buffer)

	cli := commands.New(mock)
	cli.SetOutput(new(bytes.Buffer), stderr)
	cli.SetArgs([]string{"clean", "--log-format", "json", "-v"})

	require.NoError(t, cli.Execute(context.Background()))
	require.Len(t, mock.logOpts, 1)
	assert.Equal(t, "json", mock.logOpts[0].Format)
	assert.True(t, mock.logOpts[0].Verbose)
	assert.Same(t, stderr, mock.logOpts[0].Output)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "sketchsense version "+build.Version+" (commit: "+build.Commit+", date: "+build.Date+")\n", buf.String())
}
