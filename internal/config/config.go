package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for LingoMirror. Pointer
// fields distinguish "unset" from zero values so layers can be merged.
type FileConfig struct {
	Include         *string  `yaml:"include,omitempty"`
	Exclude         *string  `yaml:"exclude,omitempty"`
	Extensions      []string `yaml:"extensions,omitempty"`
	Ignore          []string `yaml:"ignore,omitempty"`
	MaxBytes        *int64   `yaml:"max_bytes,omitempty"`
	Enable          *string  `yaml:"enable,omitempty"`
	Disable         *string  `yaml:"disable,omitempty"`
	Threads         *int     `yaml:"threads,omitempty"`
	NoColor         *bool    `yaml:"no_color,omitempty"`
	DefaultExcludes *bool    `yaml:"default_excludes,omitempty"`
	Format          *string  `yaml:"format,omitempty"`
	FailOn          *string  `yaml:"fail_on,omitempty"`
	Baseline        *string  `yaml:"baseline,omitempty"`
	LogLevel        *string  `yaml:"log_level,omitempty"`
}

// ErrNotFound is returned when no config file exists at the searched locations.
var ErrNotFound = errors.New("config not found")

// FileNames are the local config names searched in order.
var FileNames = []string{".lingomirror.yml", ".lingomirror.yaml", "lingomirror.yml", "lingomirror.yaml"}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range FileNames {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, ErrNotFound
}

// GlobalPath returns the global config location under XDG_CONFIG_HOME or
// ~/.config, or "" when neither is known.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "lingomirror", "config.yml")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p := GlobalPath()
	if p == "" {
		return cfg, ErrNotFound
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, ErrNotFound
}

// Validate checks enumerated fields.
func (fc FileConfig) Validate() error {
	if fc.Format != nil {
		switch *fc.Format {
		case "table", "text", "json", "sarif":
		default:
			return fmt.Errorf("invalid format %q (want table, text, json or sarif)", *fc.Format)
		}
	}
	if fc.FailOn != nil {
		switch *fc.FailOn {
		case "error", "warning", "none":
		default:
			return fmt.Errorf("invalid fail_on %q (want error, warning or none)", *fc.FailOn)
		}
	}
	if fc.Threads != nil && *fc.Threads < 0 {
		return fmt.Errorf("threads must be >= 0, got %d", *fc.Threads)
	}
	if fc.MaxBytes != nil && *fc.MaxBytes < 0 {
		return fmt.Errorf("max_bytes must be >= 0, got %d", *fc.MaxBytes)
	}
	return nil
}

// Default returns the configuration written by "config init".
func Default() FileConfig {
	maxBytes := int64(1 << 20)
	defaultExcludes := true
	format := "table"
	failOn := "error"
	return FileConfig{
		MaxBytes:        &maxBytes,
		DefaultExcludes: &defaultExcludes,
		Format:          &format,
		FailOn:          &failOn,
		Ignore:          []string{"**/*.stories.tsx"},
	}
}

// Write stores cfg as YAML at path, refusing to overwrite unless force.
func Write(path string, cfg FileConfig, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, b, 0o644)
}
