package model

import "math"

// Physical assumptions behind the derived analogies. These match the
// original hand-written values and are part of the observable contract:
// changing them changes every report.
const (
	// SecondsPerDigit is the assumed writing speed for the writing-duration
	// analogy: one digit every two seconds.
	SecondsPerDigit = 2

	// DigitsPerLine and LinesPerPage define the book-position analogy:
	// 80 characters per line, 50 lines per page, 4000 digits per page.
	DigitsPerLine = 80
	LinesPerPage  = 50

	// MetersPerDigit is the assumed printed size of one digit (3 mm).
	MetersPerDigit = 0.003

	// MetersPerStep converts walked meters to steps.
	MetersPerStep = 1.5

	// WalkingKmPerHour converts walked kilometers to hours on foot.
	WalkingKmPerHour = 5
)

// MatchResult is the outcome of one digit search. A result with Found=false
// is a normal outcome, not an error; only malformed requests produce errors.
type MatchResult struct {
	// Found reports whether the pattern occurs within the searched digits.
	Found bool `json:"found"`

	// Pattern is the digit pattern that was searched for.
	Pattern string `json:"pattern"`

	// Offset is the zero-based index of the first occurrence within pi's
	// fractional digits. Only meaningful when Found is true.
	Offset int `json:"offset,omitempty"`

	// DigitsSearched is the precision budget the search covered.
	DigitsSearched int `json:"digits_searched"`

	// Message describes a not-found outcome, naming the pattern and the
	// digit budget searched. Empty on success.
	Message string `json:"message,omitempty"`

	// WritingDuration is how long writing the digits up to the match would
	// take by hand. Nil when not found.
	WritingDuration *WritingDuration `json:"writing_duration,omitempty"`

	// BookPosition is where the match would sit in a printed book of digits.
	// Nil when not found.
	BookPosition *BookPosition `json:"book_position,omitempty"`

	// WalkingAnalogy is how far one would walk along the printed digits to
	// reach the match. Nil when not found.
	WalkingAnalogy *WalkingAnalogy `json:"walking_analogy,omitempty"`

	// Context is a window of digits around the match, the match wrapped in
	// brackets and the window wrapped in ellipses.
	Context string `json:"context,omitempty"`

	// FullPositionTrace is "3," followed by every fractional digit before
	// the match and the bracketed pattern. Its length is proportional to
	// Offset and may reach the full precision budget; it is produced
	// without truncation as a documented cost.
	FullPositionTrace string `json:"full_position_trace,omitempty"`
}

// WritingDuration expresses the match offset as handwriting time, assuming
// SecondsPerDigit. Hours and Minutes use integer floor division.
type WritingDuration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// NewWritingDuration derives the writing duration for a match offset.
func NewWritingDuration(offset int) *WritingDuration {
	seconds := offset * SecondsPerDigit
	return &WritingDuration{
		Hours:   seconds / 3600,
		Minutes: seconds % 3600 / 60,
	}
}

// BookPosition expresses the match offset as a 1-based page and line in a
// book printed at DigitsPerLine x LinesPerPage digits per page.
type BookPosition struct {
	Page int `json:"page"`
	Line int `json:"line"`
}

// NewBookPosition derives the book position for a match offset.
func NewBookPosition(offset int) *BookPosition {
	perPage := DigitsPerLine * LinesPerPage
	return &BookPosition{
		Page: offset/perPage + 1,
		Line: offset%perPage/DigitsPerLine + 1,
	}
}

// WalkingAnalogy expresses the match offset as walking distance along the
// printed digits. Below one kilometer the meters/steps pair is meaningful;
// at or above it the kilometers/hours pair is.
type WalkingAnalogy struct {
	// Meters is the raw distance, offset * MetersPerDigit.
	Meters float64 `json:"meters"`

	// Steps is Meters / MetersPerStep rounded to the nearest integer.
	Steps int `json:"steps"`

	// Kilometers is Meters / 1000.
	Kilometers float64 `json:"kilometers"`

	// WalkingHours is Kilometers / WalkingKmPerHour.
	WalkingHours float64 `json:"walking_hours"`

	// UseKilometers selects which pair a renderer should show: false below
	// 1000 meters, true at or above.
	UseKilometers bool `json:"use_kilometers"`
}

// NewWalkingAnalogy derives the walking analogy for a match offset.
func NewWalkingAnalogy(offset int) *WalkingAnalogy {
	meters := float64(offset) * MetersPerDigit
	km := meters / 1000
	return &WalkingAnalogy{
		Meters:        meters,
		Steps:         int(math.Round(meters / MetersPerStep)),
		Kilometers:    km,
		WalkingHours:  km / WalkingKmPerHour,
		UseKilometers: meters >= 1000,
	}
}
