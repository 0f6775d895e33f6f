// Package config provides configuration structures and utilities for pidate.
// It defines the search defaults, report format preferences, and the
// optional .pidate configuration file.
package config
