package ports

// SketchStager defines the interface for preparing the directory handed to the build tool.
//
//go:generate mockgen -source=stager.go -destination=mocks/mock_stager.go -package=mocks
type SketchStager interface {
	// ReadSource returns the current text of the sketch at path.
	ReadSource(path string) (string, error)

	// Stage returns the directory to build for the sketch at path.
	//
	// When includes is empty the sketch's own directory is returned. Otherwise a
	// temporary copy holding source and the located local headers is created
	// and cleanup removes it.
	Stage(path, source string, includes []string, root string) (dir string, cleanup func() error, err error)
}
