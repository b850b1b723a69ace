package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigDir is the config directory relative to the user home.
const DefaultConfigDir = ".config/tagctl"

// configFileName is the single JSON document holding defaults and auth.
const configFileName = "config.json"

// Store abstracts reading and writing the persisted configuration so the
// credential resolver can be tested without touching a real filesystem.
type Store interface {
	// Load reads the current configuration. A missing file yields an
	// empty configuration, not an error.
	Load() (*Config, error)

	// Save writes the configuration back as a whole document.
	Save(cfg *Config) error

	// Path returns where the configuration lives, for status output.
	Path() string
}

// FileStore persists the configuration as a JSON file.
//
// The file is created with 0600 permissions and its directory with 0700,
// since the auth record contains tokens. The document is read and rewritten
// whole; the CLI is a single-user, one-invocation-at-a-time tool, so there
// is no cross-process locking.
type FileStore struct {
	path string
}

// NewFileStore creates a store at the given path. An empty path selects
// ~/.config/tagctl/config.json.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, DefaultConfigDir, configFileName)
	}
	return &FileStore{path: path}, nil
}

// Path returns the config file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the config file.
func (s *FileStore) Load() (*Config, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}
	return &cfg, nil
}

// Save writes the config file, creating the directory if needed.
func (s *FileStore) Save(cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
