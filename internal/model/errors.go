package model

import "errors"

// Validation errors for search requests.
// These errors are returned before any pi computation starts and provide
// specific information about what is wrong with the request.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each validation site. This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidDateFormat is returned when the date does not parse as a
	// real calendar date in strict DD.MM.YYYY form.
	ErrInvalidDateFormat = errors.New("invalid date format: use DD.MM.YYYY")

	// ErrInvalidTimeFormat is returned when the optional time does not match
	// the HH.MM shape. Only the shape is checked, not the numeric range.
	ErrInvalidTimeFormat = errors.New("invalid time format: use HH.MM")

	// ErrInvalidPrecision is returned when the precision budget is negative.
	// A zero budget means "use the default"; a negative one is always a bug.
	ErrInvalidPrecision = errors.New("invalid precision budget: must be positive")
)
