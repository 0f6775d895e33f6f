// Package log provides logging utilities for pidate.
// Its TruncateHandler keeps digit-string attributes from flooding the log:
// a match trace can run to megabytes, and a single stray Debug call must
// not write it out verbatim.
package log
