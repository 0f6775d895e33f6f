package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mkitagawa/pidate/internal/config"
	"github.com/mkitagawa/pidate/internal/database"
	"github.com/mkitagawa/pidate/internal/locator"
	"github.com/mkitagawa/pidate/internal/model"
	"github.com/mkitagawa/pidate/internal/report"
	"github.com/spf13/cobra"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Search pi for every date in a list file",
		Long: `Batch reads queries from a file, one per line, each a date optionally
followed by a time, separated by whitespace. Blank lines and lines
starting with '#' are skipped.

The pi expansion is computed once, sized to the digit budget, and all
queries are searched concurrently against it.

Example list file:
  # family birthdays
  15.03.1990
  01.01.2000 12.30

Examples:
  pidate batch dates.txt
  pidate batch dates.txt --digits 2000000 --batch 8`,
		Args: cobra.ExactArgs(1),
		RunE: runBatchCmd,
	}

	cmd.Flags().IntP("digits", "n", config.DefaultPrecisionBudget,
		"Minimum fractional digits of pi to generate and search")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of concurrent searches")
	cmd.Flags().Bool("no-history", false,
		"Do not record these searches in the history database")
	cmd.Flags().String("db-dir", "",
		"Directory for the history database (default: XDG data directory)")

	return cmd
}

// batchQuery pairs a parsed request with its source line for error
// reporting.
type batchQuery struct {
	request *model.SearchRequest
	line    int
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, args []string) error {
	cfg := config.NewConfig()

	var err error
	if cfg.PrecisionBudget, err = cmd.Flags().GetInt("digits"); err != nil {
		return err
	}
	if cfg.BatchSize, err = cmd.Flags().GetInt("batch"); err != nil {
		return err
	}
	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return err
	}
	if noHistory {
		cfg.SaveHistory = false
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	queries, err := readQueries(args[0], cfg.PrecisionBudget)
	if err != nil {
		return err
	}
	if len(queries) == 0 {
		return fmt.Errorf("no queries found in %s", args[0])
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	var db *database.HistoryDB
	if cfg.SaveHistory {
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			logger.Warn("failed to open history database", "dir", cfg.DBDir, "error", err)
		} else {
			defer db.Close()
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Searching %d queries in %d fractional digits of pi (concurrency: %d)...\n",
		len(queries), cfg.PrecisionBudget, cfg.BatchSize)

	reqs := make([]*model.SearchRequest, len(queries))
	for i, q := range queries {
		reqs[i] = q.request
	}

	searcher := locator.NewBatchSearcher(
		locator.WithBatchConcurrency(cfg.BatchSize),
		locator.WithBatchLogger(logger),
	)

	// The callback is already serialized by the searcher; writing the
	// report and the history record inside it keeps output per query
	// contiguous.
	writer := report.NewSimpleWriter(out)
	return searcher.ProcessWithCallback(ctx, reqs, func(index int, result *model.MatchResult, err error) {
		query := queries[index]

		if err != nil {
			fmt.Fprintf(out, "\n[line %d] %s: %v\n", query.line, query.request.Date, err)
			return
		}

		fmt.Fprintf(out, "\n[line %d] %s", query.line, query.request.Date)
		if query.request.Time != "" {
			fmt.Fprintf(out, " %s", query.request.Time)
		}
		fmt.Fprintln(out)

		if _, err := writer.Write(result); err != nil {
			logger.Error("report failed", "pattern", result.Pattern, "error", err)
		}

		if db != nil {
			_, err := db.InsertSearch(ctx, &database.SearchRecord{
				Pattern:         result.Pattern,
				Date:            query.request.Date,
				Time:            query.request.Time,
				PrecisionBudget: result.DigitsSearched,
				Found:           result.Found,
				Offset:          result.Offset,
			})
			if err != nil {
				logger.Warn("failed to save search record", "pattern", result.Pattern, "error", err)
			}
		}
	})
}

// readQueries parses the batch list file into search requests.
func readQueries(path string, budget int) ([]batchQuery, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided list path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open query list: %w", err)
	}
	defer f.Close()

	var queries []batchQuery
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		req := &model.SearchRequest{
			Date:            fields[0],
			PrecisionBudget: budget,
		}
		if len(fields) > 1 {
			req.Time = fields[1]
		}

		queries = append(queries, batchQuery{request: req, line: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read query list: %w", err)
	}

	return queries, nil
}
