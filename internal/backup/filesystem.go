package backup

import "io"

// SourcePath is a validated source argument. SourcePath objects are created
// by FilesystemManager.Resolve, which confirms the path exists and is a
// regular file or a directory.
type SourcePath struct {
	path  string
	isDir bool
}

// NewSourcePath creates a SourcePath from its components.
// This is primarily for use by FilesystemManager implementations.
func NewSourcePath(path string, isDir bool) *SourcePath {
	return &SourcePath{path: path, isDir: isDir}
}

// String returns the path as the manifest will key it: relative to the
// source root when one is configured, otherwise as given.
func (p *SourcePath) String() string { return p.path }

// IsDir reports whether this source is a directory.
func (p *SourcePath) IsDir() bool { return p.isDir }

// FilesystemManager abstracts file access so the selector can be tested
// without touching the real filesystem. Implementations that support a
// source root translate between root-relative keys and on-disk locations.
type FilesystemManager interface {
	// Resolve validates a raw source argument. A path that does not exist,
	// or is neither a regular file nor a directory, fails with
	// *InvalidSourceError.
	Resolve(source string) (*SourcePath, error)

	// FindFiles returns the regular files for a resolved source in walk
	// order. A file source yields itself as the sole entry; a directory
	// source yields every regular file beneath it. The order must be
	// deterministic for a given filesystem snapshot.
	FindFiles(src *SourcePath) ([]string, error)

	// Open opens a discovered file for reading.
	Open(path string) (io.ReadCloser, error)
}
