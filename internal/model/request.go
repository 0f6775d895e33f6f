package model

import (
	"regexp"
	"strings"
	"time"
)

// DateLayout is the strict day-month-year layout accepted for search dates.
// It mirrors the DD.MM.YYYY input format: day and month may omit the leading
// zero (as with strptime), the year must be four digits. The unpadded layout
// tokens accept both "15.03.1990" and "5.3.1990"; the padded ones would
// reject the latter.
const DateLayout = "2.1.2006"

// DefaultPrecisionBudget is the number of fractional digits of pi to search
// when the caller does not specify a budget. One million digits find the
// vast majority of eight-digit date patterns while keeping the computation
// in the low seconds on current hardware.
const DefaultPrecisionBudget = 1_000_000

// timeShape matches the two-component HH.MM shape of an optional time.
//
// Only the shape is checked, not the numeric range: "99.99" is accepted.
// The time component is just additional search digits, not a clock value,
// so out-of-range components still yield a meaningful pattern. Tightening
// this to 0-23/0-59 would reject searches the tool can serve perfectly well.
var timeShape = regexp.MustCompile(`^\d{2}\.\d{2}$`)

// SearchRequest describes one digit search: a calendar date, an optional
// time, and the minimum number of fractional digits of pi to generate
// before searching.
type SearchRequest struct {
	// Date is the date to search for, in DD.MM.YYYY form.
	Date string `json:"date"`

	// Time is the optional time to append to the pattern, in HH.MM form.
	// Empty means the pattern is built from the date alone.
	Time string `json:"time,omitempty"`

	// PrecisionBudget is the minimum count of fractional digits of pi to
	// generate. Zero means DefaultPrecisionBudget.
	PrecisionBudget int `json:"precision_budget"`
}

// Validate checks the request shape. It returns ErrInvalidDateFormat,
// ErrInvalidTimeFormat, or ErrInvalidPrecision; nil means the request is
// safe to turn into a pattern. Validation never touches the pi computation.
func (r *SearchRequest) Validate() error {
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return ErrInvalidDateFormat
	}
	if r.Time != "" && !timeShape.MatchString(r.Time) {
		return ErrInvalidTimeFormat
	}
	if r.PrecisionBudget < 0 {
		return ErrInvalidPrecision
	}
	return nil
}

// Budget returns the effective precision budget, applying the default when
// the request leaves it unset.
func (r *SearchRequest) Budget() int {
	if r.PrecisionBudget == 0 {
		return DefaultPrecisionBudget
	}
	return r.PrecisionBudget
}

// Pattern builds the digit pattern for the request: the date digits as
// written, separators removed, followed by the time digits when present.
//
//	{Date: "15.03.1990"}                 -> "15031990"
//	{Date: "01.01.2000", Time: "12.30"}  -> "010120001230"
//
// Callers must Validate first; Pattern performs no checks of its own.
func (r *SearchRequest) Pattern() string {
	pattern := strings.ReplaceAll(r.Date, ".", "")
	if r.Time != "" {
		pattern += strings.ReplaceAll(r.Time, ".", "")
	}
	return pattern
}
