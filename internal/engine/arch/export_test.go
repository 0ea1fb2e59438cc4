package arch

import "os"

// SetReadDir replaces the directory lister used for version discovery.
func (r *Resolver) SetReadDir(fn func(string) ([]os.DirEntry, error)) {
	r.readDir = fn
}
