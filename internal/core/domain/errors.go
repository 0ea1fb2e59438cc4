package domain

import "go.trai.ch/zerr"

var (
	// ErrNoCompilerCommand is returned when a build trace holds no qualifying compile line.
	ErrNoCompilerCommand = zerr.New("no compiler command found in build trace")

	// ErrIncludeListReadFailed is returned when an include-list file named in a trace cannot be read.
	ErrIncludeListReadFailed = zerr.New("failed to read include list")

	// ErrMacroDumpFailed is returned when the compiler cannot be run in macro-dump mode.
	ErrMacroDumpFailed = zerr.New("failed to dump compiler macros")

	// ErrNotASketch is returned when a derivation is requested for a file without the sketch extension.
	ErrNotASketch = zerr.New("file is not a sketch")

	// ErrSketchReadFailed is returned when the sketch source cannot be read.
	ErrSketchReadFailed = zerr.New("failed to read sketch source")

	// ErrBuildFailed is returned when the build tool cannot be spawned.
	ErrBuildFailed = zerr.New("failed to run build tool")

	// ErrDerivationFailed is returned when a derivation does not produce board properties.
	ErrDerivationFailed = zerr.New("derivation failed")

	// ErrCommandStartFailed is returned when an external process cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrTempSketchFailed is returned when the temporary sketch copy cannot be created.
	ErrTempSketchFailed = zerr.New("failed to materialize temporary sketch")

	// ErrBoardConfigReadFailed is returned when the board configuration file cannot be read.
	ErrBoardConfigReadFailed = zerr.New("failed to read board configuration")

	// ErrBoardConfigParseFailed is returned when the board configuration file is not valid JSON.
	ErrBoardConfigParseFailed = zerr.New("failed to parse board configuration")

	// ErrBoardMissing is returned when the board configuration holds no board identifier.
	ErrBoardMissing = zerr.New("board configuration has no board identifier")

	// ErrSettingsReadFailed is returned when the settings file cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings file")

	// ErrSettingsParseFailed is returned when the settings file cannot be parsed.
	ErrSettingsParseFailed = zerr.New("failed to parse settings file")

	// ErrEditorConfigMarshalFailed is returned when the editor configuration cannot be encoded.
	ErrEditorConfigMarshalFailed = zerr.New("failed to marshal editor configuration")

	// ErrEditorConfigWriteFailed is returned when the editor configuration cannot be written.
	ErrEditorConfigWriteFailed = zerr.New("failed to write editor configuration")

	// ErrStoreCreateFailed is returned when the derivation store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create derivation store directory")

	// ErrStoreReadFailed is returned when a stored derivation cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read stored derivation")

	// ErrStoreUnmarshalFailed is returned when a stored derivation cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal stored derivation")

	// ErrStoreMarshalFailed is returned when a derivation cannot be encoded for storage.
	ErrStoreMarshalFailed = zerr.New("failed to marshal derivation")

	// ErrStoreWriteFailed is returned when a derivation cannot be written to the store.
	ErrStoreWriteFailed = zerr.New("failed to write derivation")

	// ErrStorePurgeFailed is returned when the store cannot be cleared.
	ErrStorePurgeFailed = zerr.New("failed to purge derivation store")

	// ErrWatcherStartFailed is returned when the file watcher cannot be started.
	ErrWatcherStartFailed = zerr.New("failed to start file watcher")

	// ErrFailedToGetRoot is returned when the workspace root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of workspace root")
)

// Wrap annotates err with the sentinel kind. The result reads
// "<kind>: <err>", matches kind under errors.Is and keeps err in its chain.
func Wrap(err, kind error) error {
	if err == nil {
		return nil
	}
	return zerr.Wrap(&kindError{kind: kind, err: err}, kind.Error())
}

// kindError links a cause to a sentinel without adding text of its own.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string { return e.err.Error() }

// Message is empty so log formatting skips the link.
func (e *kindError) Message() string { return "" }

func (e *kindError) Unwrap() error { return e.err }

func (e *kindError) Is(target error) bool { return target == e.kind }
