package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		HashAlgo: "sha256",
		LogDir:   "/home/user/.local/share/cback/log",
		Archiver: ArchiverConfig{
			Type:    "command",
			Command: "bsdtar",
			Args:    []string{"--no-xattrs", "-czf"},
		},
		Filesystem: FilesystemConfig{
			Ignore: []string{"*.log", ".git"},
		},
		History: HistoryConfig{Enabled: true, Path: "/data/history.db"},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.HashAlgo != original.HashAlgo {
		t.Errorf("HashAlgo = %q, want %q", got.HashAlgo, original.HashAlgo)
	}
	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Archiver.Type != "command" {
		t.Errorf("Archiver.Type = %q, want command", got.Archiver.Type)
	}
	if got.Archiver.Command != "bsdtar" {
		t.Errorf("Archiver.Command = %q, want bsdtar", got.Archiver.Command)
	}
	if len(got.Archiver.Args) != 2 {
		t.Fatalf("len(Archiver.Args) = %d, want 2", len(got.Archiver.Args))
	}
	if len(got.Filesystem.Ignore) != 2 {
		t.Fatalf("len(Filesystem.Ignore) = %d, want 2", len(got.Filesystem.Ignore))
	}
	if !got.History.Enabled || got.History.Path != "/data/history.db" {
		t.Errorf("History = %+v, want enabled with /data/history.db", got.History)
	}
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/cback")

	if cfg.HashAlgo != "sha1" {
		t.Errorf("HashAlgo = %q, want sha1", cfg.HashAlgo)
	}
	if cfg.LogDir != filepath.Join("/data/cback", "log") {
		t.Errorf("LogDir = %q, want /data/cback/log", cfg.LogDir)
	}
	if cfg.Archiver.Type != "internal" {
		t.Errorf("Archiver.Type = %q, want internal", cfg.Archiver.Type)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}
	if cfg.History.Path != filepath.Join("/data/cback", "history.db") {
		t.Errorf("History.Path = %q, want /data/cback/history.db", cfg.History.Path)
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := LoadOrDefault(filepath.Join(dir, "cback.toml"), dir)
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if cfg.HashAlgo != "sha1" {
			t.Errorf("HashAlgo = %q, want sha1", cfg.HashAlgo)
		}
	})

	t.Run("sparse file keeps defaults for unset fields", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "cback.toml")
		if err := os.WriteFile(path, []byte("hash_algo = \"sha512\"\n"), 0644); err != nil {
			t.Fatalf("writing test config: %v", err)
		}

		cfg, err := LoadOrDefault(path, dir)
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if cfg.HashAlgo != "sha512" {
			t.Errorf("HashAlgo = %q, want sha512", cfg.HashAlgo)
		}
		if cfg.LogDir != filepath.Join(dir, "log") {
			t.Errorf("LogDir = %q, want default", cfg.LogDir)
		}
		if cfg.Archiver.Type != "internal" {
			t.Errorf("Archiver.Type = %q, want internal default", cfg.Archiver.Type)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "cback.toml")
		if err := os.WriteFile(path, []byte("hash_algo = [broken"), 0644); err != nil {
			t.Fatalf("writing test config: %v", err)
		}

		if _, err := LoadOrDefault(path, dir); err == nil {
			t.Fatal("LoadOrDefault() expected error for malformed config")
		}
	})
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "cback.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("Init() error = %v", err)
		}

		if _, err := os.Stat(path); err != nil {
			t.Fatalf("config file not created: %v", err)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "cback.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}

		if err := Init(path, cfg); err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}
