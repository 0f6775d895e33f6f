package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidPrecision is returned when the precision budget is not
	// positive. A zero or negative budget leaves nothing to search.
	ErrInvalidPrecision = errors.New("invalid digit budget: must be positive")

	// ErrInvalidBatchSize is returned when the batch concurrency is not
	// positive. A batch size of zero would mean no searches run at all.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrUnknownFormat is returned when the config file names a report
	// format other than simple, json, or markdown.
	ErrUnknownFormat = errors.New("unknown report format: use simple, json, or markdown")
)
