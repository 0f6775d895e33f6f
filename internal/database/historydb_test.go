package database

import (
	"context"
	"testing"
	"time"
)

// openTestDB opens a HistoryDB in a temporary directory.
func openTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	hdb, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := hdb.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return hdb
}

// TestOpen tests database creation behavior.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates the database when allowed", func(t *testing.T) {
		t.Parallel()

		openTestDB(t)
	})

	t.Run("refuses a missing database when creation is off", func(t *testing.T) {
		t.Parallel()

		opts := Options{CreateIfNotExists: false}
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected an error for a missing database")
		}
	})
}

// TestInsertAndListSearches tests the append-and-query round trip.
func TestInsertAndListSearches(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	hdb := openTestDB(t)

	records := []*SearchRecord{
		{Pattern: "15031990", Date: "15.03.1990", PrecisionBudget: 1000000, Found: true, Offset: 2733},
		{Pattern: "010120001230", Date: "01.01.2000", Time: "12.30", PrecisionBudget: 1000000, Found: false},
		{Pattern: "15031990", Date: "15.03.1990", PrecisionBudget: 2000000, Found: true, Offset: 2733},
	}
	for _, record := range records {
		if _, err := hdb.InsertSearch(ctx, record); err != nil {
			t.Fatalf("failed to insert: %v", err)
		}
	}

	t.Run("lists all searches newest first", func(t *testing.T) {
		got, err := hdb.ListSearches(ctx, "", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 3 {
			t.Fatalf("got %d records, expected 3", len(got))
		}
		if got[0].PrecisionBudget != 2000000 {
			t.Errorf("expected the latest insert first, got budget %d", got[0].PrecisionBudget)
		}
	})

	t.Run("filters by pattern", func(t *testing.T) {
		got, err := hdb.ListSearches(ctx, "15031990", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d records, expected 2", len(got))
		}
		for _, record := range got {
			if record.Pattern != "15031990" {
				t.Errorf("unexpected pattern %q", record.Pattern)
			}
		}
	})

	t.Run("respects the limit", func(t *testing.T) {
		got, err := hdb.ListSearches(ctx, "", 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("got %d records, expected 1", len(got))
		}
	})

	t.Run("preserves outcome fields", func(t *testing.T) {
		got, err := hdb.ListSearches(ctx, "010120001230", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d records, expected 1", len(got))
		}
		record := got[0]
		if record.Found {
			t.Error("expected a not-found record")
		}
		if record.Time != "12.30" {
			t.Errorf("got time %q, expected '12.30'", record.Time)
		}
		if record.Timestamp.IsZero() {
			t.Error("expected a parsed timestamp")
		}
		if time.Since(record.Timestamp) > time.Hour {
			t.Errorf("timestamp %v is implausibly old", record.Timestamp)
		}
	})
}

// TestLatestSearch tests the most-recent lookup.
func TestLatestSearch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	hdb := openTestDB(t)

	t.Run("unknown pattern yields nil", func(t *testing.T) {
		record, err := hdb.LatestSearch(ctx, "99999999")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record != nil {
			t.Errorf("got %+v, expected nil", record)
		}
	})

	t.Run("returns the newest record for a pattern", func(t *testing.T) {
		for _, budget := range []int{1000, 2000} {
			_, err := hdb.InsertSearch(ctx, &SearchRecord{
				Pattern: "15031990", Date: "15.03.1990", PrecisionBudget: budget, Found: true, Offset: 42,
			})
			if err != nil {
				t.Fatalf("failed to insert: %v", err)
			}
		}

		record, err := hdb.LatestSearch(ctx, "15031990")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record == nil {
			t.Fatal("expected a record")
		}
		if record.PrecisionBudget != 2000 {
			t.Errorf("got budget %d, expected 2000", record.PrecisionBudget)
		}
		if record.Offset != 42 {
			t.Errorf("got offset %d, expected 42", record.Offset)
		}
	})
}
