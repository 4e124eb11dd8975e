package fs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"cback/internal/backup"
)

// OSFilesystemManager is the real filesystem implementation of
// backup.FilesystemManager.
//
// When a source root is configured, sources are interpreted relative to it
// and all returned paths are root-relative, so manifest entries stay stable
// no matter where the tool is invoked from. The root is an explicit prefix
// threaded through path resolution; the process working directory is never
// changed.
type OSFilesystemManager struct {
	root   string
	ignore *IgnoreMatcher
}

// NewOSFilesystemManager creates a filesystem manager. root may be empty, in
// which case paths are used as given. ignorePatterns filter files out of
// directory walks.
func NewOSFilesystemManager(root string, ignorePatterns []string) *OSFilesystemManager {
	return &OSFilesystemManager{
		root:   root,
		ignore: NewIgnoreMatcher(ignorePatterns),
	}
}

// onDisk maps a root-relative key to its on-disk location.
func (m *OSFilesystemManager) onDisk(key string) string {
	if m.root == "" {
		return key
	}
	return filepath.Join(m.root, key)
}

// Resolve validates a raw source argument.
func (m *OSFilesystemManager) Resolve(source string) (*backup.SourcePath, error) {
	key := filepath.Clean(source)
	info, err := os.Stat(m.onDisk(key))
	if err != nil {
		return nil, &backup.InvalidSourceError{Path: source, Err: err}
	}

	switch {
	case info.Mode().IsRegular():
		return backup.NewSourcePath(key, false), nil
	case info.IsDir():
		return backup.NewSourcePath(key, true), nil
	default:
		// Symlinks, devices, pipes, sockets.
		return nil, &backup.InvalidSourceError{Path: source}
	}
}

// FindFiles discovers the regular files for a resolved source in walk order.
// filepath.WalkDir visits entries in lexical order, so the result is
// deterministic for a given filesystem snapshot.
func (m *OSFilesystemManager) FindFiles(src *backup.SourcePath) ([]string, error) {
	if !src.IsDir() {
		return []string{src.String()}, nil
	}

	var files []string
	base := m.onDisk(src.String())
	err := filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		key := p
		if m.root != "" {
			key, err = filepath.Rel(m.root, p)
			if err != nil {
				return err
			}
		}
		if m.ignore.Match(key) {
			return nil
		}
		files = append(files, key)
		return nil
	})
	if err != nil {
		return nil, &backup.FileReadError{Path: src.String(), Err: err}
	}

	return files, nil
}

// Open opens a discovered file for reading.
func (m *OSFilesystemManager) Open(path string) (io.ReadCloser, error) {
	return os.Open(m.onDisk(path))
}

// Compile-time check that OSFilesystemManager implements backup.FilesystemManager
var _ backup.FilesystemManager = (*OSFilesystemManager)(nil)
