package backup_test

import (
	"errors"
	"path/filepath"
	"testing"

	"cback/internal/backup"
	"cback/internal/testutil"
)

func TestService_Run(t *testing.T) {
	aPath := filepath.Join("src", "a.txt")
	bPath := filepath.Join("src", "b.txt")

	newFixture := func() (*testutil.MemFilesystem, *testutil.CaptureArchiver, *testutil.MemManifestStore) {
		fsys := testutil.NewMemFilesystem()
		fsys.AddFile(aPath, []byte("x"))
		fsys.AddFile(bPath, []byte("y"))
		return fsys, testutil.NewCaptureArchiver(), testutil.NewMemManifestStore()
	}

	t.Run("full incremental run archives changes and writes manifest", func(t *testing.T) {
		fsys, archiver, store := newFixture()

		previous := backup.NewManifest()
		previous.Set(aPath, sum("x"))
		previous.Set(bPath, sum("old"))
		store.Manifests["old.sums"] = previous

		svc := backup.NewService(fsys, archiver, store, backup.NewNopLogger())
		result, err := svc.Run(backup.Request{
			Sources:         []string{"src"},
			ArchivePath:     "out.tar.gz",
			OldManifestPath: "old.sums",
			NewManifestPath: "new.sums",
			HashName:        "sha256",
		})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if len(result.Selection) != 1 || result.Selection[0] != bPath {
			t.Errorf("Selection = %v, want [%s]", result.Selection, bPath)
		}
		if result.Discovered != 2 {
			t.Errorf("Discovered = %d, want 2", result.Discovered)
		}
		if archiver.Destination != "out.tar.gz" {
			t.Errorf("archive destination = %q, want out.tar.gz", archiver.Destination)
		}
		if len(archiver.Files) != 1 || archiver.Files[0] != bPath {
			t.Errorf("archived files = %v, want [%s]", archiver.Files, bPath)
		}
		written, ok := store.Manifests["new.sums"]
		if !ok {
			t.Fatal("new manifest not written")
		}
		if written.Len() != 2 {
			t.Errorf("new manifest entries = %d, want 2", written.Len())
		}
		if result.ManifestWritten != "new.sums" {
			t.Errorf("ManifestWritten = %q, want new.sums", result.ManifestWritten)
		}
	})

	t.Run("failed archiver leaves no manifest behind", func(t *testing.T) {
		fsys, archiver, store := newFixture()
		archiver.FailWith = errors.New("disk full")

		svc := backup.NewService(fsys, archiver, store, backup.NewNopLogger())
		_, err := svc.Run(backup.Request{
			Sources:         []string{"src"},
			ArchivePath:     "out.tar.gz",
			NewManifestPath: "new.sums",
		})

		var archErr *backup.ArchiverError
		if !errors.As(err, &archErr) {
			t.Fatalf("Run() error = %v, want *ArchiverError", err)
		}
		if _, ok := store.Manifests["new.sums"]; ok {
			t.Error("manifest written despite archiver failure")
		}
	})

	t.Run("dry run invokes nothing and writes nothing", func(t *testing.T) {
		fsys, archiver, store := newFixture()

		svc := backup.NewService(fsys, archiver, store, backup.NewNopLogger())
		result, err := svc.Run(backup.Request{
			Sources:         []string{"src"},
			ArchivePath:     "out.tar.gz",
			NewManifestPath: "new.sums",
			DryRun:          true,
		})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		if archiver.Calls != 0 {
			t.Errorf("archiver called %d times during dry run, want 0", archiver.Calls)
		}
		if _, ok := store.Manifests["new.sums"]; ok {
			t.Error("manifest written during dry run")
		}
		if len(result.Selection) != 2 {
			t.Errorf("Selection = %v, want both files", result.Selection)
		}
	})

	t.Run("malformed previous manifest aborts before any walk", func(t *testing.T) {
		fsys, archiver, store := newFixture()
		store.LoadErr = &backup.ParseError{Line: 3, Reason: "expected 2 fields, found 3"}

		svc := backup.NewService(fsys, archiver, store, backup.NewNopLogger())
		_, err := svc.Run(backup.Request{
			Sources:         []string{"src"},
			ArchivePath:     "out.tar.gz",
			OldManifestPath: "old.sums",
		})

		var parseErr *backup.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("Run() error = %v, want *ParseError", err)
		}
		if archiver.Calls != 0 {
			t.Errorf("archiver called %d times after parse failure, want 0", archiver.Calls)
		}
	})

	t.Run("invalid source produces no artifacts", func(t *testing.T) {
		fsys, archiver, store := newFixture()

		svc := backup.NewService(fsys, archiver, store, backup.NewNopLogger())
		_, err := svc.Run(backup.Request{
			Sources:         []string{"src", "does-not-exist"},
			ArchivePath:     "out.tar.gz",
			NewManifestPath: "new.sums",
		})

		var srcErr *backup.InvalidSourceError
		if !errors.As(err, &srcErr) {
			t.Fatalf("Run() error = %v, want *InvalidSourceError", err)
		}
		if archiver.Calls != 0 {
			t.Error("archiver invoked despite invalid source")
		}
		if len(store.Manifests) != 0 {
			t.Error("manifest written despite invalid source")
		}
	})

	t.Run("unknown hash algorithm fails before any work", func(t *testing.T) {
		fsys, archiver, store := newFixture()

		svc := backup.NewService(fsys, archiver, store, backup.NewNopLogger())
		_, err := svc.Run(backup.Request{
			Sources:     []string{"src"},
			ArchivePath: "out.tar.gz",
			HashName:    "rot13",
		})
		if err == nil {
			t.Fatal("Run() expected error for unknown algorithm")
		}
		if archiver.Calls != 0 {
			t.Error("archiver invoked despite bad algorithm")
		}
	})

	t.Run("no manifests at all still archives everything", func(t *testing.T) {
		fsys, archiver, store := newFixture()

		svc := backup.NewService(fsys, archiver, store, backup.NewNopLogger())
		result, err := svc.Run(backup.Request{
			Sources:     []string{"src"},
			ArchivePath: "out.tar.gz",
		})
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(result.Selection) != 2 {
			t.Errorf("Selection = %v, want both files", result.Selection)
		}
		if result.ManifestWritten != "" {
			t.Errorf("ManifestWritten = %q, want empty", result.ManifestWritten)
		}
		if len(archiver.Files) != 2 {
			t.Errorf("archived files = %v, want both", archiver.Files)
		}
	})
}
