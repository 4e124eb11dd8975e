package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for cback. Every field has a
// working default; the tool must run with no config file at all.
type Config struct {
	HashAlgo   string           `toml:"hash_algo"`
	LogDir     string           `toml:"log_dir"`
	Archiver   ArchiverConfig   `toml:"archiver"`
	Filesystem FilesystemConfig `toml:"filesystem"`
	History    HistoryConfig    `toml:"history"`
}

// ArchiverConfig selects how archives are produced.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type ArchiverConfig struct {
	Type string `toml:"type"` // "internal" (in-process tar.gz) or "command"

	// Command-specific fields (only used when Type == "command")
	Command string   `toml:"command,omitempty"` // defaults to "tar"
	Args    []string `toml:"args,omitempty"`    // defaults to ["-czf"]
}

// FilesystemConfig holds filesystem-related settings.
type FilesystemConfig struct {
	Ignore []string `toml:"ignore"`
}

// HistoryConfig controls the run-history database.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
}

// NewConfig creates a Config with defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		HashAlgo: "sha1",
		LogDir:   filepath.Join(baseDir, "log"),
		Archiver: ArchiverConfig{Type: "internal"},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(baseDir, "history.db"),
		},
	}
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault reads the config at path, falling back to defaults rooted at
// baseDir when no config file exists.
func LoadOrDefault(path, baseDir string) (*Config, error) {
	cfg, err := ReadFromFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewConfig(baseDir), nil
		}
		return nil, err
	}
	// Fill gaps so a sparse config file still yields a runnable setup.
	defaults := NewConfig(baseDir)
	if cfg.HashAlgo == "" {
		cfg.HashAlgo = defaults.HashAlgo
	}
	if cfg.LogDir == "" {
		cfg.LogDir = defaults.LogDir
	}
	if cfg.Archiver.Type == "" {
		cfg.Archiver.Type = defaults.Archiver.Type
	}
	if cfg.History.Enabled && cfg.History.Path == "" {
		cfg.History.Path = defaults.History.Path
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	// Ensure the directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
