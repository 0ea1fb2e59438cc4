// Package vscode publishes derived compiler configuration in the format read
// by the C/C++ editor extension.
package vscode

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// FormatVersion is the c_cpp_properties.json schema version.
	FormatVersion = 4

	cStandard   = "c11"
	cppStandard = "c++17"
)

// Properties is the c_cpp_properties.json document.
type Properties struct {
	Configurations []Configuration `json:"configurations"`
	Version        int             `json:"version"`
}

// Configuration is one named configuration of the document.
type Configuration struct {
	Name             string   `json:"name"`
	IncludePath      []string `json:"includePath"`
	Defines          []string `json:"defines"`
	CompilerPath     string   `json:"compilerPath"`
	CStandard        string   `json:"cStandard"`
	CppStandard      string   `json:"cppStandard"`
	IntelliSenseMode string   `json:"intelliSenseMode"`
}

// Writer implements ports.ConfigWriter.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Document builds the document for boardID and props.
func Document(boardID string, props domain.BoardProperties) Properties {
	includePath := make([]string, 0, len(props.IncludePaths)+1)
	includePath = append(includePath, domain.WorkspaceWildcard)
	includePath = append(includePath, props.IncludePaths...)

	defines := props.Defines
	if defines == nil {
		defines = []string{}
	}

	return Properties{
		Configurations: []Configuration{{
			Name:             boardID,
			IncludePath:      includePath,
			Defines:          defines,
			CompilerPath:     props.CompilerPath,
			CStandard:        cStandard,
			CppStandard:      cppStandard,
			IntelliSenseMode: props.Family.IntelliSenseMode(),
		}},
		Version: FormatVersion,
	}
}

// Write replaces <root>/.vscode/c_cpp_properties.json. Readers never observe
// a partially written file.
func (w *Writer) Write(root, boardID string, props domain.BoardProperties) error {
	data, err := json.MarshalIndent(Document(boardID, props), "", "  ")
	if err != nil {
		return domain.Wrap(err, domain.ErrEditorConfigMarshalFailed)
	}
	data = append(data, '\n')

	path := domain.EditorConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(domain.Wrap(err, domain.ErrEditorConfigWriteFailed), "path", path)
	}

	if err := writeAtomic(path, data); err != nil {
		return zerr.With(domain.Wrap(err, domain.ErrEditorConfigWriteFailed), "path", path)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Chmod(name, domain.FilePerm); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return err
	}
	return nil
}
