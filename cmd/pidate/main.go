// Package main provides the entry point for the pidate CLI.
//
// pidate searches the decimal expansion of pi for the digit pattern of a
// date (and optional time) and reports where it occurs, together with a
// few illustrative analogies for the offset.
//
// Usage:
//
//	pidate find 15.03.1990
//	pidate find 01.01.2000 12.30 --digits 2000000
//	pidate batch dates.txt
//
// See --help for all available options.
package main

// main is the entry point for pidate.
func main() {
	Execute()
}
