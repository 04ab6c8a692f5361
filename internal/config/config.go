// Package config manages process-wide configuration for the protocol core:
// where circuit parameters live on disk, log levels, and audit log path.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the process configuration. It is loaded once and treated as
// read-only thereafter by the ParamResolver and logger constructors.
type Config struct {
	// ParamDir is the base directory used by paramio.Resolver; it holds a
	// <name>.pk and a <name>.vk file per circuit.
	ParamDir string `json:"param_dir"`

	// LogLevel and LogFile drive internal/log.New.
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// AuditLogPath receives one line per contract Send/Receive decision.
	AuditLogPath string `json:"audit_log_path"`

	// TreeDepth is the configured Merkle tree depth; the protocol default is
	// 60, but tests run shallow trees for tractability (see merkle tests).
	TreeDepth int `json:"tree_depth"`

	// ListenAddr is retained for the smoke-test CLI's own bookkeeping; no
	// network server is started from this field (network transport is a
	// non-goal).
	ListenAddr string `json:"listen_addr"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ParamDir:     "params",
		LogLevel:     "info",
		LogFile:      "privacycash.log",
		AuditLogPath: "audit.log",
		TreeDepth:    60,
		ListenAddr:   "127.0.0.1:0",
	}
}

// Load reads configuration from path, creating and persisting a default one
// if the file does not yet exist.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err == nil {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("config: open %s: %w", path, err)
		}
		defer f.Close()

		var cfg Config
		if err := json.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
		return &cfg, nil
	}

	cfg := DefaultConfig()
	if err := Save(cfg, path); err != nil {
		return nil, fmt.Errorf("config: save default: %w", err)
	}
	return cfg, nil
}

// Save persists the configuration as indented JSON, creating parent
// directories as needed.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: mkdir %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}

// Validate checks basic sanity of the configuration.
func (c *Config) Validate() error {
	if c.ParamDir == "" {
		return fmt.Errorf("config: param_dir must not be empty")
	}
	if c.TreeDepth <= 0 {
		return fmt.Errorf("config: tree_depth must be positive")
	}
	return nil
}
