package fs

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/zerr"
)

// Stager implements ports.SketchStager on the local file system.
type Stager struct {
	walker *Walker
	logger ports.Logger
	tmpDir string
}

// NewStager creates a new Stager that places temporary sketches in the
// system temp directory.
func NewStager(walker *Walker, logger ports.Logger) *Stager {
	return &Stager{
		walker: walker,
		logger: logger,
	}
}

// NewStagerIn creates a Stager that places temporary sketches under dir.
func NewStagerIn(walker *Walker, logger ports.Logger, dir string) *Stager {
	s := NewStager(walker, logger)
	s.tmpDir = dir
	return s
}

// ReadSource returns the text of the sketch at path.
func (s *Stager) ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the sketch the editor asked about
	if err != nil {
		return "", zerr.With(domain.Wrap(err, domain.ErrSketchReadFailed), "path", path)
	}
	return string(data), nil
}

// Stage returns the directory to build for the sketch at path.
// Without includes the sketch directory itself is built and cleanup is nil.
func (s *Stager) Stage(path, source string, includes []string, root string) (string, func() error, error) {
	if len(includes) == 0 {
		return filepath.Dir(path), nil, nil
	}

	base, err := os.MkdirTemp(s.tmpDir, "sketchsense-*")
	if err != nil {
		return "", nil, domain.Wrap(err, domain.ErrTempSketchFailed)
	}
	cleanup := func() error {
		if err := os.RemoveAll(base); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to remove temporary sketch"), "dir", base)
		}
		return nil
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	dir := filepath.Join(base, name)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		_ = cleanup()
		return "", nil, domain.Wrap(err, domain.ErrTempSketchFailed)
	}

	if err := os.WriteFile(filepath.Join(dir, name+domain.SketchExt), []byte(source), domain.FilePerm); err != nil {
		_ = cleanup()
		return "", nil, domain.Wrap(err, domain.ErrTempSketchFailed)
	}

	for _, inc := range includes {
		dst := filepath.Join(dir, filepath.FromSlash(inc))
		if dst == dir || !domain.IsWithin(dir, dst) {
			s.logger.Info("skipping header " + inc + " outside the temporary sketch")
			continue
		}
		src := s.locate(filepath.Dir(path), root, inc)
		if src == "" {
			s.logger.Info(inc + " not found in the project; assuming a library header")
			continue
		}
		if err := copyFile(src, dst); err != nil {
			s.logger.Info(zerr.With(zerr.Wrap(err, "skipping header"), "header", inc).Error())
		}
	}

	return dir, cleanup, nil
}

// locate finds inc next to the sketch first, then anywhere under root.
func (s *Stager) locate(sketchDir, root, inc string) string {
	rel := filepath.FromSlash(inc)
	if candidate := filepath.Join(sketchDir, rel); isFile(candidate) {
		return candidate
	}
	if root == "" {
		return ""
	}

	name := filepath.Base(rel)
	var byName string
	for p := range s.walker.WalkFiles(root, nil) {
		if filepath.Base(p) != name {
			continue
		}
		if strings.HasSuffix(p, string(filepath.Separator)+rel) {
			return p
		}
		if byName == "" {
			byName = p
		}
	}
	return byName
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func copyFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return err
	}

	in, err := os.Open(src) //nolint:gosec // src was found under the workspace root
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm) //nolint:gosec // dst is inside the temp sketch
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
