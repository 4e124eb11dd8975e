package testutil

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"cback/internal/backup"
)

// MemFilesystem is an in-memory backup.FilesystemManager for testing.
// Directory walks yield files in lexical path order, mirroring
// filepath.WalkDir on a real filesystem.
type MemFilesystem struct {
	files map[string][]byte
	dirs  map[string]bool

	// OpenErr, when set, makes Open fail for the given path.
	OpenErr map[string]error
}

// NewMemFilesystem creates an empty in-memory filesystem.
func NewMemFilesystem() *MemFilesystem {
	return &MemFilesystem{
		files:   make(map[string][]byte),
		dirs:    make(map[string]bool),
		OpenErr: make(map[string]error),
	}
}

// AddFile adds a file and creates its parent directories.
func (m *MemFilesystem) AddFile(path string, content []byte) {
	m.files[path] = content
	for dir := filepath.Dir(path); dir != "." && dir != "/"; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
	}
}

// AddDirectory adds an (possibly empty) directory.
func (m *MemFilesystem) AddDirectory(path string) {
	m.dirs[path] = true
}

func (m *MemFilesystem) Resolve(source string) (*backup.SourcePath, error) {
	key := filepath.Clean(source)
	if _, ok := m.files[key]; ok {
		return backup.NewSourcePath(key, false), nil
	}
	if m.dirs[key] {
		return backup.NewSourcePath(key, true), nil
	}
	return nil, &backup.InvalidSourceError{Path: source, Err: fmt.Errorf("no such file or directory")}
}

func (m *MemFilesystem) FindFiles(src *backup.SourcePath) ([]string, error) {
	if !src.IsDir() {
		return []string{src.String()}, nil
	}

	prefix := src.String() + string(filepath.Separator)
	var files []string
	for path := range m.files {
		if strings.HasPrefix(path, prefix) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *MemFilesystem) Open(path string) (io.ReadCloser, error) {
	if err := m.OpenErr[path]; err != nil {
		return nil, err
	}
	content, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// Compile-time check
var _ backup.FilesystemManager = (*MemFilesystem)(nil)
