package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mkitagawa/pidate/internal/config"
	"github.com/mkitagawa/pidate/internal/database"
	"github.com/mkitagawa/pidate/internal/locator"
	pilog "github.com/mkitagawa/pidate/internal/log"
	"github.com/mkitagawa/pidate/internal/model"
	"github.com/mkitagawa/pidate/internal/report"
	"github.com/spf13/cobra"
)

// NewFindCmd creates the find command.
func NewFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [date] [time]",
		Short: "Search pi's fractional digits for a date",
		Long: `Find computes pi to the requested number of fractional digits and
searches them for the digit pattern of a date, optionally extended by a
time. The date uses DD.MM.YYYY, the time HH.MM; all separators are
stripped before searching, so "15.03.1990" becomes the pattern 15031990.

With no date argument, find prompts for one on standard input.

Examples:
  # Search for a date
  pidate find 15.03.1990

  # Extend the pattern with a time
  pidate find 01.01.2000 12.30

  # Search two million digits and print a Markdown report
  pidate find 15.03.1990 --digits 2000000 --markdown

  # Print the full position trace (large output)
  pidate find 15.03.1990 --full-trace

Configuration file (.pidate) example:
  digits: 500000
  format: markdown
  history: false`,
		Args: cobra.MaximumNArgs(2),
		RunE: runFindCmd,
	}

	// Search flags
	cmd.Flags().IntP("digits", "n", config.DefaultPrecisionBudget,
		"Minimum fractional digits of pi to generate and search")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("full-trace", false,
		"Print the full position trace (its length grows with the match offset)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .pidate in current or home directory)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this search in the history database")
	cmd.Flags().String("db-dir", "",
		"Directory for the history database (default: XDG data directory)")

	return cmd
}

// runFindCmd executes the find command.
func runFindCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildFindConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(getVerboseFlag(cmd))
	slog.SetDefault(logger)

	req, err := buildRequest(cmd, args, cfg)
	if err != nil {
		return err
	}

	// Set up context with signal handling so a long computation can be
	// interrupted cleanly.
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

	loc := locator.New(locator.WithLogger(logger))
	result, err := loc.Locate(ctx, req)
	if err != nil {
		return err
	}

	if err := outputReport(cfg, result, cmd.OutOrStdout()); err != nil {
		return err
	}

	saveSearch(ctx, cfg, req, result, logger)
	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildFindConfig creates a Config from the config file and cobra flags.
// File values override the built-in defaults; explicitly set flags override
// the file.
func buildFindConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently skip when no file exists.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("digits") {
		if cfg.PrecisionBudget, err = cmd.Flags().GetInt("digits"); err != nil {
			return nil, err
		}
	}

	// An explicit format flag wins over the config file entirely.
	if cmd.Flags().Changed("json") {
		cfg.JSONReport = true
		cfg.MarkdownReport = false
	}
	if cmd.Flags().Changed("markdown") {
		cfg.MarkdownReport = true
		cfg.JSONReport = false
	}
	if cmd.Flags().Changed("json") && cmd.Flags().Changed("markdown") {
		return nil, config.ErrConflictingReportFormats
	}

	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}

	if cfg.FullTrace, err = cmd.Flags().GetBool("full-trace"); err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	if noHistory {
		cfg.SaveHistory = false
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// buildRequest assembles the search request from positional arguments,
// prompting for the date when none is given.
func buildRequest(cmd *cobra.Command, args []string, cfg *config.Config) (*model.SearchRequest, error) {
	req := &model.SearchRequest{PrecisionBudget: cfg.PrecisionBudget}

	if len(args) > 0 {
		req.Date = args[0]
	} else {
		date, err := promptDate(cmd.OutOrStdout(), cmd.InOrStdin())
		if err != nil {
			return nil, err
		}
		req.Date = date
	}

	if len(args) > 1 {
		req.Time = args[1]
	}

	return req, nil
}

// promptDate asks for a date on the interactive input.
func promptDate(out io.Writer, in io.Reader) (string, error) {
	fmt.Fprint(out, "Enter a date (DD.MM.YYYY): ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read date: %w", err)
		}
		return "", fmt.Errorf("no date entered")
	}

	return strings.TrimSpace(scanner.Text()), nil
}

// setupLogger creates a structured logger based on verbosity setting.
// Digit-string attributes are capped so a stray trace never floods the log.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	handler := pilog.NewTruncateHandler(slog.NewTextHandler(os.Stderr, opts))
	return slog.New(handler)
}

// outputReport outputs the match result in the requested format.
func outputReport(cfg *config.Config, result *model.MatchResult, stdout io.Writer) error {
	// Determine output destination
	output := stdout
	if cfg.ReportFile != "" {
		// Create directories if they don't exist
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	// JSON output
	if cfg.JSONReport {
		writer := report.NewJSONWriter(output, report.WithPrettyPrint())
		_, err := writer.Write(result)
		return err
	}

	// Markdown output
	if cfg.MarkdownReport {
		writer := report.NewMarkdownWriter(output)
		_, err := writer.Write(result)
		return err
	}

	// Human-readable report (default)
	writer := report.NewSimpleWriter(output, report.WithFullTrace(cfg.FullTrace))
	_, err := writer.Write(result)
	return err
}

// saveSearch records the search outcome in the history database.
// History failures are logged, never fatal: the search itself succeeded.
func saveSearch(ctx context.Context, cfg *config.Config, req *model.SearchRequest, result *model.MatchResult, logger *slog.Logger) {
	if !cfg.SaveHistory {
		return
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	_, err = db.InsertSearch(ctx, &database.SearchRecord{
		Pattern:         result.Pattern,
		Date:            req.Date,
		Time:            req.Time,
		PrecisionBudget: result.DigitsSearched,
		Found:           result.Found,
		Offset:          result.Offset,
	})
	if err != nil {
		logger.Warn("failed to save search record", "pattern", result.Pattern, "error", err)
		return
	}

	logger.Debug("search recorded", "pattern", result.Pattern, "found", result.Found)
}
