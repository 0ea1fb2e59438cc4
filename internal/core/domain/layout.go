package domain

import (
	"path/filepath"
	"strings"
	"time"
)

const (
	// SketchExt is the file extension of sketch sources.
	SketchExt = ".ino"

	// EditorDirName is the project-relative directory holding editor configuration.
	EditorDirName = ".vscode"

	// BoardConfigFileName is the name of the board configuration file inside EditorDirName.
	BoardConfigFileName = "arduino.json"

	// EditorConfigFileName is the name of the generated compiler configuration inside EditorDirName.
	EditorConfigFileName = "c_cpp_properties.json"

	// SettingsFileName is the name of the user settings file.
	SettingsFileName = "sketchsense.yaml"

	// StateDirName is the name of the internal workspace directory.
	StateDirName = ".sketchsense"

	// StoreDirName is the name of the derivation store directory.
	StoreDirName = "store"

	// DefaultBoard is used when no board configuration can be read.
	DefaultBoard = "arduino:avr:uno"

	// DefaultCLI is the build tool invoked for verbose compile traces.
	DefaultCLI = "arduino-cli"

	// DefaultDebounce is the settling window for change notifications in watch mode.
	DefaultDebounce = 300 * time.Millisecond

	// WorkspaceWildcard is the first include path entry of every generated configuration.
	WorkspaceWildcard = "${workspaceFolder}/**"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// BoardConfigPath returns the path of the board configuration under root.
func BoardConfigPath(root string) string {
	return filepath.Join(root, EditorDirName, BoardConfigFileName)
}

// EditorConfigPath returns the path of the generated compiler configuration under root.
func EditorConfigPath(root string) string {
	return filepath.Join(root, EditorDirName, EditorConfigFileName)
}

// StorePath returns the derivation store directory under root.
func StorePath(root string) string {
	return filepath.Join(root, StateDirName, StoreDirName)
}

// IsSketch reports whether path names a sketch source.
func IsSketch(path string) bool {
	return strings.EqualFold(filepath.Ext(path), SketchExt)
}

// IsWithin reports whether path lies inside root (or is root itself).
func IsWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
