// Package main provides the entry point for the pidate CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for pidate.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pidate",
		Short: "Find a date in the decimal digits of pi",
		Long: `pidate computes pi to an arbitrary number of fractional digits and
searches them for the digit pattern of a date (and optional time).

A match is reported with its zero-based offset and a few analogies:
how long writing the digits up to it would take, where it would sit in
a printed book of digits, and how far you would walk along them.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewFindCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
