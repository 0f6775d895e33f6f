package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultPrecisionBudget is the number of fractional digits of pi to
	// generate and search when the user gives no budget. One million digits
	// find the vast majority of eight-digit date patterns: a given
	// eight-digit sequence misses a million-digit window with probability
	// around e^-0.01, so roughly one search in a hundred needs more.
	DefaultPrecisionBudget = 1_000_000

	// DefaultBatchSize is the number of concurrent searches in batch mode.
	// The searches are pure CPU over a shared immutable string, so a small
	// multiple of the typical core count is enough; higher values only add
	// scheduling overhead.
	DefaultBatchSize = 4

	// AppName is the application name used for XDG directory paths.
	AppName = "pidate"
)

// Config holds all configuration options for pidate.
// This struct is designed to be populated from CLI flags and the optional
// config file, then passed through the application via dependency injection
// rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The number of options is manageable, and nesting would
// add complexity without significant benefit.
type Config struct {
	// PrecisionBudget is the minimum count of fractional digits of pi to
	// generate before searching.
	PrecisionBudget int

	// BatchSize is the number of concurrent searches in batch mode.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON output instead of the human-readable format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output instead of the human-readable
	// format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	ReportFile string

	// FullTrace enables printing the full position trace in console
	// reports. The trace length is proportional to the match offset, so
	// this is opt-in.
	FullTrace bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .pidate in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SaveHistory controls whether searches are recorded in the history
	// database. Only the request and the outcome are stored, never the
	// digit expansion itself.
	SaveHistory bool

	// DBDir is the directory path for the SQLite history database.
	// Defaults to the XDG data directory (~/.local/share/pidate on Linux).
	DBDir string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults; users can override
// specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		PrecisionBudget: DefaultPrecisionBudget,
		BatchSize:       DefaultBatchSize,
		SaveHistory:     true,
		DBDir:           XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for pidate.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/pidate
// On macOS: ~/Library/Application Support/pidate
// On Windows: %LOCALAPPDATA%\pidate
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for pidate.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any computation begins.
func (c *Config) Validate() error {
	if c.PrecisionBudget <= 0 {
		return ErrInvalidPrecision
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
