package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/docs2md/internal/model"
)

// HistoryDB provides SQLite-based storage for crawl run history.
// It manages connection pooling and provides methods for CRUD operations.
//
// Design decision: We use a single database file for all documentation
// sets rather than one file per set. This keeps cross-set queries
// ("show every run") trivial and simplifies backup/restore.
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

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
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
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, "docs2md.db")

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

	// SQLite only supports one writer.
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
	-- Runs store one row per completed crawl
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		start_url TEXT NOT NULL,
		doc_name TEXT NOT NULL,
		output_mode TEXT NOT NULL,
		filter_mode TEXT NOT NULL,
		discovered INTEGER NOT NULL,
		processed INTEGER NOT NULL,
		succeeded INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		index_path TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_doc_name ON runs(doc_name);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);

	-- Pages store the per-URL outcome of each run
	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		depth INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_pages_run ON pages(run_id);
	CREATE INDEX IF NOT EXISTS idx_pages_url ON pages(url);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord represents a stored crawl run.
type RunRecord struct {
	ID         int64
	StartURL   string
	DocName    string
	OutputMode string
	FilterMode string
	Discovered int
	Processed  int
	Succeeded  int
	Failed     int
	Elapsed    time.Duration
	IndexPath  string
	Timestamp  time.Time
}

// PageRecord represents the stored outcome of one page within a run.
type PageRecord struct {
	ID           int64
	RunID        int64
	URL          string
	Depth        int
	Success      bool
	ErrorMessage string
}

// SaveRun stores a crawl summary and its per-page outcomes as one run.
// The insert is transactional: either the run and all its pages are
// stored, or nothing is.
func (hdb *HistoryDB) SaveRun(ctx context.Context, summary *model.CrawlSummary, outputMode, filterMode string, pages []PageRecord) (int64, error) {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	result, err := tx.ExecContext(ctx, `
	INSERT INTO runs (start_url, doc_name, output_mode, filter_mode, discovered, processed, succeeded, failed, elapsed_ms, index_path)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		summary.StartURL,
		summary.DocName,
		outputMode,
		filterMode,
		summary.Discovered,
		summary.Processed,
		summary.Succeeded,
		summary.Failed,
		summary.Elapsed.Milliseconds(),
		summary.IndexPath,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for _, page := range pages {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO pages (run_id, url, depth, success, error_message)
		VALUES (?, ?, ?, ?, ?)
		`, runID, page.URL, page.Depth, page.Success, page.ErrorMessage); err != nil {
			return 0, fmt.Errorf("failed to insert page record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns retrieves stored runs, newest first. When docName is
// non-empty, only runs for that documentation set are returned.
func (hdb *HistoryDB) ListRuns(ctx context.Context, docName string) ([]RunRecord, error) {
	query := `
	SELECT id, start_url, doc_name, output_mode, filter_mode, discovered, processed, succeeded, failed, elapsed_ms, index_path, timestamp
	FROM runs
	`
	args := make([]any, 0, 1)
	if docName != "" {
		query += " WHERE doc_name = ?"
		args = append(args, docName)
	}
	query += " ORDER BY timestamp DESC, id DESC"

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LatestRun retrieves the most recent run for a documentation set.
// Returns nil when no run exists.
func (hdb *HistoryDB) LatestRun(ctx context.Context, docName string) (*RunRecord, error) {
	row := hdb.db.QueryRowContext(ctx, `
	SELECT id, start_url, doc_name, output_mode, filter_mode, discovered, processed, succeeded, failed, elapsed_ms, index_path, timestamp
	FROM runs
	WHERE doc_name = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`, docName)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRunPages retrieves the per-page outcomes of a run in insert order.
func (hdb *HistoryDB) GetRunPages(ctx context.Context, runID int64) ([]PageRecord, error) {
	rows, err := hdb.db.QueryContext(ctx, `
	SELECT id, run_id, url, depth, success, error_message
	FROM pages
	WHERE run_id = ?
	ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run pages: %w", err)
	}
	defer rows.Close()

	var pages []PageRecord
	for rows.Next() {
		var page PageRecord
		var errMsg sql.NullString
		if err := rows.Scan(&page.ID, &page.RunID, &page.URL, &page.Depth, &page.Success, &errMsg); err != nil {
			return nil, fmt.Errorf("failed to scan page record: %w", err)
		}
		page.ErrorMessage = errMsg.String
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

// scanRun reads one run row.
func scanRun(s scanner) (RunRecord, error) {
	var run RunRecord
	var elapsedMS int64
	var timestamp string

	err := s.Scan(
		&run.ID,
		&run.StartURL,
		&run.DocName,
		&run.OutputMode,
		&run.FilterMode,
		&run.Discovered,
		&run.Processed,
		&run.Succeeded,
		&run.Failed,
		&elapsedMS,
		&run.IndexPath,
		&timestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, err
		}
		return RunRecord{}, fmt.Errorf("failed to scan run: %w", err)
	}

	run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	run.Timestamp = parseTimestamp(timestamp)
	return run, nil
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

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
