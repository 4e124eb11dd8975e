package backup

import (
	"fmt"
)

// Request describes one backup run.
type Request struct {
	// Sources are the raw source arguments, resolved through the
	// FilesystemManager.
	Sources []string

	// ArchivePath is the fully resolved destination for the archive.
	// Destination resolution (unique naming inside an extant directory)
	// happens before the service is invoked.
	ArchivePath string

	// OldManifestPath, when non-empty, names the previous run's manifest.
	OldManifestPath string

	// NewManifestPath, when non-empty, names the file to write the new
	// manifest to. Requesting a new manifest activates checksum mode even
	// without a previous manifest.
	NewManifestPath string

	// HashName selects the checksum algorithm; empty means DefaultHashName.
	HashName string

	// DryRun reports the would-be archiver invocation instead of running it
	// and writes nothing.
	DryRun bool
}

// Result summarizes a completed run.
type Result struct {
	Selection  Selection
	Discovered int
	// ManifestWritten is the path the new manifest was written to, or empty.
	ManifestWritten string
}

// Service orchestrates a backup run: load the previous manifest, compute the
// selection, archive it, then write the new manifest. A failure at any step
// aborts the run with no partial artifacts: the archiver runs only after the
// selection is finalized, and the new manifest is written only after the
// archiver succeeds.
type Service struct {
	fsmgr     FilesystemManager
	archiver  Archiver
	manifests ManifestStore
	logger    Logger
}

// NewService creates a Service with the provided collaborators.
func NewService(fsmgr FilesystemManager, archiver Archiver, manifests ManifestStore, logger Logger) *Service {
	return &Service{
		fsmgr:     fsmgr,
		archiver:  archiver,
		manifests: manifests,
		logger:    logger,
	}
}

// Run executes one backup per the request.
func (s *Service) Run(req Request) (*Result, error) {
	hashName := req.HashName
	if hashName == "" {
		hashName = DefaultHashName
	}
	newHash, err := LookupHash(hashName)
	if err != nil {
		return nil, err
	}

	previous := NewManifest()
	if req.OldManifestPath != "" {
		previous, err = s.manifests.Load(req.OldManifestPath)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("previous manifest loaded",
			"path", req.OldManifestPath, "entries", previous.Len())
	}

	selector := NewSelector(s.fsmgr, s.logger)
	selection, manifest, err := selector.ComputeSelection(
		req.Sources, previous, newHash, req.NewManifestPath != "")
	if err != nil {
		return nil, err
	}

	discovered := len(selection)
	if manifest != nil {
		discovered = manifest.Len()
	}
	result := &Result{Selection: selection, Discovered: discovered}

	if req.DryRun {
		s.logger.Info("dry run: " + s.archiver.Describe(req.ArchivePath, selection))
		if manifest != nil && req.NewManifestPath != "" {
			s.logger.Info("dry run: manifest would be written",
				"path", req.NewManifestPath, "entries", manifest.Len())
		}
		return result, nil
	}

	if err := s.archiver.Archive(req.ArchivePath, selection); err != nil {
		return nil, &ArchiverError{Destination: req.ArchivePath, Err: err}
	}
	s.logger.Info("archive written", "path", req.ArchivePath, "files", len(selection))

	if manifest != nil && req.NewManifestPath != "" {
		if err := s.manifests.Store(req.NewManifestPath, manifest); err != nil {
			return nil, fmt.Errorf("writing new manifest: %w", err)
		}
		result.ManifestWritten = req.NewManifestPath
		s.logger.Info("manifest written",
			"path", req.NewManifestPath, "entries", manifest.Len())
	}

	return result, nil
}
