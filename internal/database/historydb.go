package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// HistoryDB stores past searches and their outcomes. Offsets in pi are
// deterministic, so a stored record never goes stale; the history exists
// for the `history` command, not as a computation cache.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are
// created; if false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "pidate.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a single pooled connection avoids
	// SQLITE_BUSY under concurrent inserts.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Searches is an append-only log of digit searches and their outcomes.
	CREATE TABLE IF NOT EXISTS searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		pattern TEXT NOT NULL,
		date TEXT NOT NULL,
		time TEXT,
		precision_budget INTEGER NOT NULL,
		found INTEGER NOT NULL,
		position INTEGER,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_searches_pattern ON searches(pattern);
	CREATE INDEX IF NOT EXISTS idx_searches_timestamp ON searches(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// SearchRecord represents one stored search.
type SearchRecord struct {
	ID              int64
	Pattern         string
	Date            string
	Time            string
	PrecisionBudget int
	Found           bool
	Offset          int
	Timestamp       time.Time
}

// InsertSearch appends a search record and returns its ID.
func (hdb *HistoryDB) InsertSearch(ctx context.Context, record *SearchRecord) (int64, error) {
	query := `
	INSERT INTO searches (pattern, date, time, precision_budget, found, position)
	VALUES (?, ?, ?, ?, ?, ?)
	`

	var offset any
	if record.Found {
		offset = record.Offset
	}

	result, err := hdb.db.ExecContext(ctx, query,
		record.Pattern,
		record.Date,
		record.Time,
		record.PrecisionBudget,
		record.Found,
		offset,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert search record: %w", err)
	}

	return result.LastInsertId()
}

// ListSearches returns stored searches, newest first. When pattern is
// non-empty only searches for that exact pattern are returned. A limit of
// zero means no limit.
func (hdb *HistoryDB) ListSearches(ctx context.Context, pattern string, limit int) ([]SearchRecord, error) {
	query := `
	SELECT id, pattern, date, time, precision_budget, found, position, timestamp
	FROM searches
	WHERE 1=1
	`
	args := make([]any, 0)

	if pattern != "" {
		query += " AND pattern = ?"
		args = append(args, pattern)
	}

	query += " ORDER BY timestamp DESC, id DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list searches: %w", err)
	}
	defer rows.Close()

	var results []SearchRecord
	for rows.Next() {
		record, err := scanSearchRecord(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, record)
	}

	return results, rows.Err()
}

// LatestSearch returns the most recent search for a pattern, or nil when
// the pattern was never searched.
func (hdb *HistoryDB) LatestSearch(ctx context.Context, pattern string) (*SearchRecord, error) {
	records, err := hdb.ListSearches(ctx, pattern, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// scanSearchRecord reads one row into a SearchRecord, tolerating NULL
// time and offset columns.
func scanSearchRecord(rows *sql.Rows) (SearchRecord, error) {
	var record SearchRecord
	var searchTime sql.NullString
	var offset sql.NullInt64
	var timestamp string

	err := rows.Scan(
		&record.ID,
		&record.Pattern,
		&record.Date,
		&searchTime,
		&record.PrecisionBudget,
		&record.Found,
		&offset,
		&timestamp,
	)
	if err != nil {
		return SearchRecord{}, fmt.Errorf("failed to scan search record: %w", err)
	}

	record.Time = searchTime.String
	if offset.Valid {
		record.Offset = int(offset.Int64)
	}
	record.Timestamp = parseTimestamp(timestamp)

	return record, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending on
// configuration. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
