package main

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/mkitagawa/pidate/internal/config"
	"github.com/mkitagawa/pidate/internal/database"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [pattern]",
		Short: "Show past search outcomes",
		Long: `History lists past searches recorded by the find and batch commands,
newest first. With a pattern argument, only searches for that exact
digit pattern are shown.

Only outcomes are stored (pattern, budget, found, offset); the digit
expansions themselves are never saved.

Examples:
  pidate history
  pidate history 15031990
  pidate history --limit 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "l", 20, "Maximum number of records to show (0 for no limit)")
	cmd.Flags().String("db-dir", "",
		"Directory for the history database (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	if limit < 0 {
		return fmt.Errorf("limit must not be negative: %d", limit)
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	pattern := ""
	if len(args) > 0 {
		pattern = strings.TrimSpace(args[0])
	}

	out := cmd.OutOrStdout()

	// Listing history must not create an empty database as a side effect.
	db, err := database.Open(dbDir, database.Options{CreateIfNotExists: false})
	if err != nil {
		fmt.Fprintln(out, "No search history yet. Run `pidate find` to record a search.")
		return nil
	}
	defer db.Close()

	records, err := db.ListSearches(cmd.Context(), pattern, limit)
	if err != nil {
		return fmt.Errorf("failed to read search history: %w", err)
	}

	if len(records) == 0 {
		if pattern != "" {
			fmt.Fprintf(out, "No recorded searches for pattern %s.\n", pattern)
		} else {
			fmt.Fprintln(out, "No search history yet. Run `pidate find` to record a search.")
		}
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIMESTAMP\tDATE\tTIME\tPATTERN\tDIGITS\tRESULT")
	for _, rec := range records {
		result := "not found"
		if rec.Found {
			result = fmt.Sprintf("offset %d", rec.Offset)
		}

		timeCol := rec.Time
		if timeCol == "" {
			timeCol = "-"
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			rec.Timestamp.Format("2006-01-02 15:04:05"),
			rec.Date,
			timeCol,
			rec.Pattern,
			rec.PrecisionBudget,
			result,
		)
	}

	return w.Flush()
}
