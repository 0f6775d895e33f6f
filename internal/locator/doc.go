// Package locator implements the digit search: given a validated search
// request it computes pi's fractional digits to the requested budget,
// finds the first occurrence of the request's digit pattern, and derives
// the human-readable analogies for the match offset.
//
// The locator is pure: it performs no console I/O and keeps no state
// between calls. BatchSearcher runs many searches against one shared
// expansion with bounded concurrency.
package locator
