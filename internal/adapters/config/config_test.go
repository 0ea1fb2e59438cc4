package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sketchsense/internal/adapters/config"
	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newSettingsLoader(t *testing.T) *config.SettingsLoader {
	t.Helper()
	logger := mocks.NewMockLogger(gomock.NewController(t))
	logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewSettingsLoader(logger)
}

func TestSettingsLoader_MissingFileUsesDefaults(t *testing.T) {
	got, err := newSettingsLoader(t).Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultSettings(), got)
}

func TestSettingsLoader_FullFile(t *testing.T) {
	root := t.TempDir()
	content := `
cli: /opt/arduino/arduino-cli
defaultBoard: esp32:esp32:esp32
debounce: 150ms
timeout: 2m
compilerOverrides:
  xtensa-esp32-elf: [/opt/x/include, /opt/x/include/c++]
extraArgs: ["--warnings", "none"]
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "sketchsense.yaml"), []byte(content), 0o600))

	got, err := newSettingsLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, "/opt/arduino/arduino-cli", got.CLI)
	assert.Equal(t, "esp32:esp32:esp32", got.DefaultBoard)
	assert.Equal(t, 150*time.Millisecond, got.Debounce)
	assert.Equal(t, 2*time.Minute, got.Timeout)
	assert.Equal(t, []string{"/opt/x/include", "/opt/x/include/c++"}, got.CompilerOverrides["xtensa-esp32-elf"])
	assert.Equal(t, []string{"--warnings", "none"}, got.ExtraArgs)
}

func TestSettingsLoader_PartialFileKeepsDefaults(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "sketchsense.yaml"), []byte("timeout: 30s\n"), 0o600))

	got, err := newSettingsLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultCLI, got.CLI)
	assert.Equal(t, domain.DefaultBoard, got.DefaultBoard)
	assert.Equal(t, domain.DefaultDebounce, got.Debounce)
	assert.Equal(t, 30*time.Second, got.Timeout)
}

func TestSettingsLoader_WalksUp(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "projects", "blink")
	require.NoError(t, os.MkdirAll(root, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(parent, "sketchsense.yaml"), []byte("cli: acli\n"), 0o600))

	got, err := newSettingsLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, "acli", got.CLI)
}

func TestSettingsLoader_ParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid yaml", content: "cli: [unterminated\n"},
		{name: "invalid duration", content: "debounce: soon\n"},
		{name: "wrong type", content: "compilerOverrides: 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(root, "sketchsense.yaml"), []byte(tt.content), 0o600))

			_, err := newSettingsLoader(t).Load(root)
			require.Error(t, err)
			assert.ErrorContains(t, err, domain.ErrSettingsParseFailed.Error())
		})
	}
}

func writeBoard(t *testing.T, root, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".vscode"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(root, ".vscode", "arduino.json"), []byte(content), 0o600))
}

func TestBoardLoader_Load(t *testing.T) {
	root := t.TempDir()
	writeBoard(t, root, `{"board":"arduino:avr:nano","configuration":"cpu=atmega328old","port":"/dev/ttyUSB0","sketch":"blink.ino"}`)

	cfg, err := config.NewBoardLoader().Load(root)
	require.NoError(t, err)

	assert.Equal(t, "arduino:avr:nano", cfg.Board)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Port)
	assert.Equal(t, "arduino:avr:nano:cpu=atmega328old", cfg.FQBN())
}

func TestBoardLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{name: "missing file", want: domain.ErrBoardConfigReadFailed},
		{name: "invalid json", content: `{"board":`, want: domain.ErrBoardConfigParseFailed},
		{name: "empty board", content: `{"board":"  "}`, want: domain.ErrBoardMissing},
		{name: "no board", content: `{"port":"COM3"}`, want: domain.ErrBoardMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if tt.content != "" {
				writeBoard(t, root, tt.content)
			}

			_, err := config.NewBoardLoader().Load(root)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want.Error())
		})
	}
}
