// Package config loads export settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-chat2html/internal/fileutil"
	"github.com/alnah/go-chat2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Batch size bounds mirror the exporter's accepted range.
const (
	MinBatchSize = 1
	MaxBatchSize = 100
)

// Config holds all configuration for conversation export.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Export ExportConfig `yaml:"export"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default snapshot directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// ExportConfig defines how the conversation is rendered.
type ExportConfig struct {
	Theme        string `yaml:"theme"`        // "auto", "light", "dark" (default: "auto")
	ImageQuality string `yaml:"imageQuality"` // "low", "medium", "high", "none" (default: "medium")
	BatchSize    int    `yaml:"batchSize"`    // Turns per batch, 1-100 (default: 10)
	Markdown     bool   `yaml:"markdown"`     // Also emit a Markdown artifact
}

// Validate checks enum fields and numeric ranges. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Export.Theme) {
	case "", "auto", "light", "dark":
		// valid
	default:
		return fmt.Errorf("export.theme: invalid value %q (must be auto, light, or dark)", c.Export.Theme)
	}

	switch strings.ToLower(c.Export.ImageQuality) {
	case "", "low", "medium", "high", "none":
		// valid
	default:
		return fmt.Errorf("export.imageQuality: invalid value %q (must be low, medium, high, or none)", c.Export.ImageQuality)
	}

	if c.Export.BatchSize != 0 {
		if c.Export.BatchSize < MinBatchSize || c.Export.BatchSize > MaxBatchSize {
			return fmt.Errorf("export.batchSize: must be between %d and %d, got %d", MinBatchSize, MaxBatchSize, c.Export.BatchSize)
		}
	}

	return nil
}

// DefaultConfig returns a neutral configuration. Zero values defer to the
// exporter's own defaults.
func DefaultConfig() *Config {
	return &Config{
		Input:  InputConfig{DefaultDir: ""},
		Output: OutputConfig{DefaultDir: ""},
		Export: ExportConfig{},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-chat2html/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-chat2html", name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
