package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"cback/internal/backup"
)

// OSManifestStore reads and writes manifest files on the real filesystem.
type OSManifestStore struct{}

// NewOSManifestStore creates a manifest store backed by the filesystem.
func NewOSManifestStore() *OSManifestStore {
	return &OSManifestStore{}
}

// Load reads and decodes the manifest at path.
func (s *OSManifestStore) Load(path string) (*backup.Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening manifest %s: %w", path, err)
	}
	defer f.Close()

	m, err := backup.DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// Store writes the manifest to path via a temp file and rename, so a failed
// write never leaves a truncated manifest behind.
func (s *OSManifestStore) Store(path string, m *backup.Manifest) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return fmt.Errorf("creating temp manifest in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if err := backup.EncodeManifest(tmp, m); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp manifest: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing manifest %s: %w", path, err)
	}
	return nil
}

// Compile-time check that OSManifestStore implements backup.ManifestStore
var _ backup.ManifestStore = (*OSManifestStore)(nil)
