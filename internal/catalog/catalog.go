// Package catalog keeps a local index of completed scrapes so history and
// the dashboard can find what was saved where.
package catalog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/trendlab/subreddit-trends/internal/domain"
)

// Entry is one recorded save.
type Entry struct {
	ID         string             `json:"id"`
	Subreddit  string             `json:"subreddit"`
	Method     domain.FetchMethod `json:"method"`
	TimeFilter domain.TimeFilter  `json:"time_filter,omitempty"`
	FetchedAt  string             `json:"fetched_at"`
	Backend    string             `json:"backend"`
	Location   string             `json:"location"`
	RowCount   int                `json:"row_count"`
	CreatedAt  time.Time          `json:"created_at"`
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	Subreddit string
	Method    domain.FetchMethod
	Backend   string
	Limit     int
}

// Catalog is a sqlite-backed scrape index.
type Catalog struct {
	db *sql.DB
}

// Open opens the catalog database at path, creating parent directories as
// needed.
func Open(path string) (*Catalog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, eris.Wrapf(err, "catalog: create %s", dir)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: open")
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "catalog: exec %s", pragma)
		}
	}

	return &Catalog{db: db}, nil
}

const migration = `
CREATE TABLE IF NOT EXISTS scrapes (
	id          TEXT PRIMARY KEY,
	subreddit   TEXT NOT NULL,
	method      TEXT NOT NULL,
	time_filter TEXT NOT NULL DEFAULT '',
	fetched_at  TEXT NOT NULL,
	backend     TEXT NOT NULL,
	location    TEXT NOT NULL,
	row_count   INTEGER NOT NULL,
	created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_scrapes_subreddit ON scrapes(subreddit);
CREATE INDEX IF NOT EXISTS idx_scrapes_created_at ON scrapes(created_at);
`

// Migrate creates the schema if it does not exist yet.
func (c *Catalog) Migrate(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, migration)
	return eris.Wrap(err, "catalog: migrate")
}

// Close closes the underlying database.
func (c *Catalog) Close() error {
	return c.db.Close()
}

// Record inserts one completed save and returns the stored entry.
func (c *Catalog) Record(ctx context.Context, result domain.ScrapeResult, backend, location string) (*Entry, error) {
	e := &Entry{
		ID:         uuid.New().String(),
		Subreddit:  result.Subreddit,
		Method:     result.Method,
		TimeFilter: result.TimeFilter,
		FetchedAt:  result.FetchedAt,
		Backend:    backend,
		Location:   location,
		RowCount:   result.Table.Len(),
		CreatedAt:  time.Now().UTC(),
	}

	_, err := c.db.ExecContext(ctx, `
		INSERT INTO scrapes (id, subreddit, method, time_filter, fetched_at, backend, location, row_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Subreddit, string(e.Method), string(e.TimeFilter), e.FetchedAt,
		e.Backend, e.Location, e.RowCount, e.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: insert scrape")
	}
	return e, nil
}

// List returns recorded scrapes, newest first.
func (c *Catalog) List(ctx context.Context, filter Filter) ([]Entry, error) {
	query := `
		SELECT id, subreddit, method, time_filter, fetched_at, backend, location, row_count, created_at
		FROM scrapes WHERE 1=1`
	var args []any

	if filter.Subreddit != "" {
		query += ` AND subreddit = ?`
		args = append(args, filter.Subreddit)
	}
	if filter.Method != "" {
		query += ` AND method = ?`
		args = append(args, string(filter.Method))
	}
	if filter.Backend != "" {
		query += ` AND backend = ?`
		args = append(args, filter.Backend)
	}

	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "catalog: list scrapes")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var method, tf string
		if err := rows.Scan(&e.ID, &e.Subreddit, &method, &tf, &e.FetchedAt,
			&e.Backend, &e.Location, &e.RowCount, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "catalog: scan scrape")
		}
		e.Method = domain.FetchMethod(method)
		e.TimeFilter = domain.TimeFilter(tf)
		entries = append(entries, e)
	}
	return entries, eris.Wrap(rows.Err(), "catalog: iterate scrapes")
}
