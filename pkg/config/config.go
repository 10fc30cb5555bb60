package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration structure
type Config struct {
	// General settings
	General GeneralConfig `yaml:"general"`

	// Combine command settings
	Combine CombineConfig `yaml:"combine"`

	// Catalog database settings
	Database DatabaseConfig `yaml:"database"`
}

type GeneralConfig struct {
	// Root of the paint data repository to scan
	Root string `yaml:"root"`

	// Enable verbose logging
	Verbose bool `yaml:"verbose"`

	// Directory names excluded from discovery
	SkipDirs []string `yaml:"skip_dirs"`

	// File names excluded from discovery (scraper caches etc.)
	SkipFiles []string `yaml:"skip_files"`
}

type CombineConfig struct {
	// Name of the combined output file, written under the root
	Output string `yaml:"output"`

	// Drop records whose id was already seen in an earlier file
	Dedup bool `yaml:"dedup"`
}

type DatabaseConfig struct {
	// Catalog database path
	Path string `yaml:"path"`
}

// Global config instance
var Cfg *Config

// Load loads configuration from a YAML file. Keys absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	Cfg = cfg
	return cfg, nil
}

// LoadOrCreate loads config from path or creates a default one
func LoadOrCreate(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := Save(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		Cfg = cfg
		return cfg, nil
	}

	return Load(path)
}

// Save saves configuration to a YAML file
func Save(cfg *Config, path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Add header comment
	header := `# paintctl Configuration File
# Generated automatically - customize as needed

`
	content := header + string(data)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	paintctlDir := filepath.Join(home, ".paintctl")

	return &Config{
		General: GeneralConfig{
			Root:      ".",
			Verbose:   false,
			SkipDirs:  []string{".git", "node_modules", "scripts", ".github", "__pycache__"},
			SkipFiles: []string{".ak_set_skus_cache.json"},
		},
		Combine: CombineConfig{
			Output: "combined.json",
			Dedup:  true,
		},
		Database: DatabaseConfig{
			Path: filepath.Join(paintctlDir, "catalog.db"),
		},
	}
}

// GetDefaultConfigPath returns the default config file path
func GetDefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".paintctl", "config.yaml")
}
