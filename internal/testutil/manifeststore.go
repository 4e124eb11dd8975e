package testutil

import (
	"fmt"

	"cback/internal/backup"
)

// MemManifestStore keeps manifests in memory, keyed by path.
type MemManifestStore struct {
	Manifests map[string]*backup.Manifest

	// LoadErr and StoreErr, when set, fail the corresponding call.
	LoadErr  error
	StoreErr error
}

func NewMemManifestStore() *MemManifestStore {
	return &MemManifestStore{Manifests: make(map[string]*backup.Manifest)}
}

func (s *MemManifestStore) Load(path string) (*backup.Manifest, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	m, ok := s.Manifests[path]
	if !ok {
		return nil, fmt.Errorf("opening manifest %s: file not found", path)
	}
	return m, nil
}

func (s *MemManifestStore) Store(path string, m *backup.Manifest) error {
	if s.StoreErr != nil {
		return s.StoreErr
	}
	s.Manifests[path] = m
	return nil
}

// Compile-time check
var _ backup.ManifestStore = (*MemManifestStore)(nil)
