package app

import (
	"fmt"
	"os"

	"cback/internal/archive"
	"cback/internal/backup"
	"cback/internal/config"
	"cback/internal/fs"
	"cback/internal/history"
)

// BackupRequest carries the CLI arguments for one backup run.
type BackupRequest struct {
	Sources      []string
	Destination  string
	SourceRoot   string
	OldChecksums string
	NewChecksums string
	HashAlgo     string
	DryRun       bool
}

// App is the application layer between the CLI and the backup service.
// It constructs all collaborators from config and manages the history
// database and log file lifecycle on Close.
type App struct {
	cfg     *config.Config
	store   *history.Store // nil when history is disabled
	logger  backup.Logger
	logFile *os.File
	clock   backup.Clock
	idgen   backup.IDGenerator
}

// NewApp creates a fully wired App from defaults and the on-disk config.
// The caller must call Close when done.
func NewApp() (*App, error) {
	defaults, err := GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.LoadOrDefault(defaults["config_path"], defaults["base_dir"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	clock := backup.RealClock{}
	runID := clock.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, runID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.Open(cfg.History.Path)
		if err != nil {
			logFile.Close()
			return nil, fmt.Errorf("opening history: %w", err)
		}
	}

	return &App{
		cfg:     cfg,
		store:   store,
		logger:  &slogAdapter{l: logger},
		logFile: logFile,
		clock:   clock,
		idgen:   backup.UUIDGenerator{},
	}, nil
}

// Backup executes one backup run. Dry runs are not recorded in history.
func (a *App) Backup(req BackupRequest) (*backup.Result, error) {
	fsmgr := fs.NewOSFilesystemManager(req.SourceRoot, a.cfg.Filesystem.Ignore)

	archiver, err := archive.NewArchiverFromConfig(a.cfg.Archiver, req.SourceRoot)
	if err != nil {
		return nil, err
	}

	dest, err := archive.ResolveDestination(req.Destination, a.clock, a.idgen)
	if err != nil {
		return nil, err
	}

	hashName := req.HashAlgo
	if hashName == "" {
		hashName = a.cfg.HashAlgo
	}

	svc := backup.NewService(fsmgr, archiver, fs.NewOSManifestStore(), a.logger)
	svcReq := backup.Request{
		Sources:         req.Sources,
		ArchivePath:     dest,
		OldManifestPath: req.OldChecksums,
		NewManifestPath: req.NewChecksums,
		HashName:        hashName,
		DryRun:          req.DryRun,
	}

	var runID int64
	if a.store != nil && !req.DryRun {
		runID, err = a.store.Begin(a.clock.Now(), req.Sources, dest, hashName)
		if err != nil {
			return nil, err
		}
	}

	result, runErr := svc.Run(svcReq)

	if a.store != nil && !req.DryRun {
		status := "success"
		discovered, selected := 0, 0
		if runErr != nil {
			status = "error"
		} else {
			discovered = result.Discovered
			selected = len(result.Selection)
		}
		if err := a.store.Finish(runID, a.clock.Now(), status, discovered, selected); err != nil {
			a.logger.Warn("recording run outcome failed", "error", err)
		}
	}

	return result, runErr
}

// History returns the most recent recorded runs.
func (a *App) History(limit int) ([]*history.Run, error) {
	if a.store == nil {
		return nil, fmt.Errorf("run history is disabled in config")
	}
	return a.store.Recent(limit)
}

// Close releases the history database and log file.
func (a *App) Close() error {
	var firstErr error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			firstErr = fmt.Errorf("closing history: %w", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
	return firstErr
}

