package locator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkitagawa/pidate/internal/model"
	"github.com/mkitagawa/pidate/internal/pi"
)

const (
	// searchGuardDigits is the safety margin generated beyond the precision
	// budget. The extra digits absorb representation artifacts at the
	// requested boundary and are included in the searched region.
	searchGuardDigits = 100

	// contextRadius is the number of digits shown on each side of a match
	// in the context window.
	contextRadius = 10
)

// DigitSource generates at least n fractional digits of pi. The production
// source is pi.FractionalDigits; tests inject fixed digit strings.
type DigitSource func(ctx context.Context, n int) (string, error)

// Locator performs digit searches. The zero value is not usable; create
// instances with New.
type Locator struct {
	// digits generates the pi expansion to search.
	digits DigitSource

	// logger is used for debug-level progress logging.
	logger *slog.Logger
}

// Option configures a Locator.
type Option func(*Locator)

// WithLogger sets a custom logger for the locator.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Locator) {
		l.logger = logger
	}
}

// WithDigitSource replaces the pi digit generator. This exists for tests
// and for callers that already hold a sufficiently long expansion.
func WithDigitSource(src DigitSource) Option {
	return func(l *Locator) {
		l.digits = src
	}
}

// New creates a Locator backed by the Chudnovsky digit generator.
func New(opts ...Option) *Locator {
	l := &Locator{
		digits: pi.FractionalDigits,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.logger == nil {
		l.logger = slog.Default()
	}

	return l
}

// Locate runs one digit search. It validates the request, computes pi to
// the request's budget plus the guard margin, and returns the match result.
//
// A pattern that does not occur is a normal outcome: the result carries
// Found=false and a message, not an error. Errors are limited to request
// validation failures and a cancelled context.
//
// The computation blocks until done; at the default budget of one million
// digits it is the dominant cost of the call. Cancel the context to abort.
func (l *Locator) Locate(ctx context.Context, req *model.SearchRequest) (*model.MatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	budget := req.Budget()
	pattern := req.Pattern()

	l.logger.Debug("computing pi expansion",
		"budget", budget,
		"pattern", pattern,
	)

	digits, err := l.digits(ctx, budget+searchGuardDigits)
	if err != nil {
		return nil, fmt.Errorf("failed to compute pi digits: %w", err)
	}

	result := searchDigits(digits, pattern, budget)

	l.logger.Debug("search finished",
		"pattern", pattern,
		"found", result.Found,
		"offset", result.Offset,
	)

	return result, nil
}

// searchDigits performs the first-occurrence search for pattern within the
// expansion and derives the analogies. The expansion may be longer than the
// budget requires (batch searches share one); only budget+guard digits are
// considered.
func searchDigits(digits, pattern string, budget int) *model.MatchResult {
	region := digits
	if max := budget + searchGuardDigits; len(region) > max {
		region = region[:max]
	}

	offset := strings.Index(region, pattern)
	if offset < 0 {
		return &model.MatchResult{
			Found:          false,
			Pattern:        pattern,
			DigitsSearched: budget,
			Message: fmt.Sprintf("the digit sequence '%s' was not found in the first %d fractional digits of pi",
				pattern, budget),
		}
	}

	return &model.MatchResult{
		Found:             true,
		Pattern:           pattern,
		Offset:            offset,
		DigitsSearched:    budget,
		WritingDuration:   model.NewWritingDuration(offset),
		BookPosition:      model.NewBookPosition(offset),
		WalkingAnalogy:    model.NewWalkingAnalogy(offset),
		Context:           contextWindow(region, offset, len(pattern)),
		FullPositionTrace: "3," + region[:offset] + "[" + pattern + "]" + "...",
	}
}

// contextWindow extracts the digits surrounding a match, clamped to the
// expansion bounds, with the match bracketed and the window wrapped in
// ellipses.
func contextWindow(digits string, offset, length int) string {
	start := offset - contextRadius
	if start < 0 {
		start = 0
	}
	end := offset + length + contextRadius
	if end > len(digits) {
		end = len(digits)
	}

	return "..." + digits[start:offset] +
		"[" + digits[offset:offset+length] + "]" +
		digits[offset+length:end] + "..."
}
