// Package model defines the data structures exchanged between the digit
// locator, the report writers, and the history database: search requests,
// digit patterns, and match results with their derived analogies.
package model
