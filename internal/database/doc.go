// Package database provides SQLite-based storage for the search history.
// Only search requests and their outcomes are recorded; the digit
// expansions themselves are never persisted.
package database
