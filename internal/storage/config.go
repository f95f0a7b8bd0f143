package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	Backend        string        `json:"backend"`
	DataPath       string        `json:"dataPath"`
	ExportDir      string        `json:"exportDir"`
	VerbatimExport bool          `json:"verbatimExport"`
	Favicon        FaviconConfig `json:"favicon"`
	Columns        ColumnsConfig `json:"columns"`
	Check          CheckConfig   `json:"check"`
}

// FaviconConfig addresses the favicon service. An empty endpoint disables
// icons.
type FaviconConfig struct {
	Endpoint  string `json:"endpoint"`
	Size      int    `json:"size"`
	PageParam string `json:"pageParam"`
	SizeParam string `json:"sizeParam"`
}

// ColumnsConfig holds the responsive breakpoints, in layout units.
type ColumnsConfig struct {
	SingleMax    int `json:"singleMax"`
	DoubleMax    int `json:"doubleMax"`
	UnitsPerCell int `json:"unitsPerCell"`
}

// CheckConfig tunes the dead-link checker.
type CheckConfig struct {
	Concurrency    int      `json:"concurrency"`
	TimeoutSeconds int      `json:"timeoutSeconds"`
	ExcludeDomains []string `json:"excludeDomains"`
}

// DefaultConfig returns the default configuration.
// Paths are left empty and resolved by ResolvePaths.
func DefaultConfig() Config {
	return Config{
		Backend: BackendJSON,
		Favicon: FaviconConfig{
			Endpoint:  "https://www.google.com/s2/favicons",
			Size:      32,
			PageParam: "domain_url",
			SizeParam: "sz",
		},
		Columns: ColumnsConfig{
			SingleMax:    600,
			DoubleMax:    900,
			UnitsPerCell: 8,
		},
		Check: CheckConfig{
			Concurrency:    10,
			TimeoutSeconds: 10,
			ExcludeDomains: []string{"github.com", "gitlab.com"},
		},
	}
}

// LoadConfig reads the config at path. A missing file is written out with
// defaults so users have something to edit.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := cfg.ResolvePaths(); err != nil {
			return nil, err
		}
		_ = SaveConfig(path, &cfg)
		return &cfg, nil
	case err != nil:
		return nil, err
	}

	cfg = Config{}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.ResolvePaths(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults fills zero-valued fields from DefaultConfig.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Backend == "" {
		c.Backend = defaults.Backend
	}
	if c.Favicon.Size <= 0 {
		c.Favicon.Size = defaults.Favicon.Size
	}
	if c.Favicon.PageParam == "" {
		c.Favicon.PageParam = defaults.Favicon.PageParam
	}
	if c.Favicon.SizeParam == "" {
		c.Favicon.SizeParam = defaults.Favicon.SizeParam
	}
	if c.Columns.SingleMax <= 0 {
		c.Columns.SingleMax = defaults.Columns.SingleMax
	}
	if c.Columns.DoubleMax <= 0 {
		c.Columns.DoubleMax = defaults.Columns.DoubleMax
	}
	if c.Columns.UnitsPerCell <= 0 {
		c.Columns.UnitsPerCell = defaults.Columns.UnitsPerCell
	}
	if c.Check.Concurrency <= 0 {
		c.Check.Concurrency = defaults.Check.Concurrency
	}
	if c.Check.TimeoutSeconds <= 0 {
		c.Check.TimeoutSeconds = defaults.Check.TimeoutSeconds
	}
	if c.Check.ExcludeDomains == nil {
		c.Check.ExcludeDomains = defaults.Check.ExcludeDomains
	}
}

// ResolvePaths fills DataPath and ExportDir from the user's home directory.
func (c *Config) ResolvePaths() error {
	if c.DataPath != "" && c.ExportDir != "" {
		return nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	if c.DataPath == "" {
		name := "bookmarks.json"
		if c.Backend == BackendSQLite {
			name = "bookmarks.db"
		}
		c.DataPath = filepath.Join(homeDir, ".config", "bmdeck", name)
	}
	if c.ExportDir == "" {
		c.ExportDir = filepath.Join(homeDir, "Downloads")
	}
	return nil
}

// SaveConfig writes config as indented JSON, creating its directory.
func SaveConfig(path string, config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/bmdeck/config.json
func DefaultConfigFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bmdeck", "config.json"), nil
}
