// Package arch resolves the toolchain family of a compiler and the standard
// include directories that ship with it.
package arch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/sketchsense/internal/core/domain"
	"go.trai.ch/sketchsense/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Resolution is the outcome of resolving a compiler path.
type Resolution struct {
	Profile domain.ArchitectureProfile
	// ToolchainRoot is the directory two levels above the compiler executable.
	ToolchainRoot string
	// Version is the GCC version directory used, empty when none was found.
	Version          string
	StandardIncludes []string
}

// Resolver classifies compilers and locates their standard include directories.
// Version lookups are shared between concurrent callers and memoized per
// toolchain root once they succeed.
type Resolver struct {
	logger  ports.Logger
	readDir func(string) ([]os.DirEntry, error)

	group    singleflight.Group
	mu       sync.RWMutex
	versions map[string]string
}

// NewResolver creates a Resolver reading toolchain directories from disk.
func NewResolver(logger ports.Logger) *Resolver {
	return &Resolver{
		logger:   logger,
		readDir:  os.ReadDir,
		versions: make(map[string]string),
	}
}

// Resolve selects the profile of compilerPath and computes its standard
// include directories. overrides maps a target triple to directories used
// when the versioned directories cannot be found.
func (r *Resolver) Resolve(ctx context.Context, compilerPath string, overrides map[string][]string) Resolution {
	profile := domain.ResolveProfile(compilerPath)
	root := filepath.Dir(filepath.Dir(compilerPath))

	res := Resolution{Profile: profile, ToolchainRoot: root}

	version := profile.GCCVersion
	if version == "" {
		version = r.discoverVersion(ctx, root, profile.Triple)
	}
	res.Version = version

	for _, tmpl := range profile.IncludeTemplates() {
		if strings.Contains(tmpl, domain.VersionPlaceholder) {
			if version == "" {
				continue
			}
			tmpl = strings.ReplaceAll(tmpl, domain.VersionPlaceholder, version)
		}
		res.StandardIncludes = append(res.StandardIncludes, filepath.Join(root, filepath.FromSlash(tmpl)))
	}

	if version == "" {
		r.logger.Warn("could not find gcc version directory for " + profile.Triple + " under " + root)
		if dirs, ok := overrides[profile.Triple]; ok {
			r.logger.Info("using compiler override for " + profile.Triple)
			res.StandardIncludes = append(res.StandardIncludes, dirs...)
		}
	}

	return res
}

// discoverVersion returns the first entry of <root>/lib/gcc/<triple>, or ""
// when the directory is missing or empty.
func (r *Resolver) discoverVersion(ctx context.Context, root, triple string) string {
	dir := filepath.Join(root, "lib", "gcc", triple)

	r.mu.RLock()
	v, ok := r.versions[dir]
	r.mu.RUnlock()
	if ok {
		return v
	}

	ch := r.group.DoChan(dir, func() (any, error) {
		entries, err := r.readDir(dir)
		if err != nil {
			return "", zerr.With(err, "path", dir)
		}
		for _, e := range entries {
			if e.IsDir() {
				r.mu.Lock()
				r.versions[dir] = e.Name()
				r.mu.Unlock()
				return e.Name(), nil
			}
		}
		return "", nil
	})

	select {
	case <-ctx.Done():
		return ""
	case res := <-ch:
		if res.Err != nil {
			r.logger.Debug(res.Err.Error())
			return ""
		}
		version, _ := res.Val.(string)
		return version
	}
}
