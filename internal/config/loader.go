package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".pidate"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File holds the options a .pidate configuration file may set.
// Every field is optional; unset fields keep the built-in defaults.
//
// Example:
//
//	digits: 500000
//	format: markdown
//	history: false
type File struct {
	// Digits is the default precision budget.
	Digits int `yaml:"digits"`

	// Format is the default report format: simple, json, or markdown.
	Format string `yaml:"format"`

	// History controls whether searches are recorded. A pointer
	// distinguishes "unset" from an explicit false.
	History *bool `yaml:"history"`
}

// LoadConfigFile loads defaults from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error appropriately based on whether the config file path was
// explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	switch cf.Format {
	case "", "simple", "json", "markdown":
	default:
		return nil, ErrUnknownFormat
	}

	return &cf, nil
}

// Apply merges the file's values into the config. File values win over the
// built-in defaults but are themselves overridden by explicit CLI flags,
// which the command layer applies after this call.
func (f *File) Apply(cfg *Config) {
	if f.Digits > 0 {
		cfg.PrecisionBudget = f.Digits
	}

	switch f.Format {
	case "json":
		cfg.JSONReport = true
	case "markdown":
		cfg.MarkdownReport = true
	}

	if f.History != nil {
		cfg.SaveHistory = *f.History
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .pidate in the current directory
// 3. Look for .pidate in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
