// Package linkdb maintains an optional SQLite cache of link occurrences
// under <dir>/.notedown/index.db.
//
// The cache only serves the backlinks query. It is derived data,
// invalidated per file by mtime, and always safe to delete: the engine's
// index, resolution, lint, and rename paths never read it.
package linkdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/darryllawson/notedown/internal/index"
	"github.com/darryllawson/notedown/internal/scan"
	"github.com/darryllawson/notedown/internal/sqlutil"
	"github.com/darryllawson/notedown/internal/title"
)

const (
	dataDirName = ".notedown"
	dbFileName  = "index.db"
)

// DB is the cache handle for one notes directory.
type DB struct {
	db   *sql.DB
	norm title.Normalizer
}

// Open opens or creates the cache for dir.
func Open(dir string, norm title.Normalizer) (*DB, error) {
	dataDir := filepath.Join(dir, dataDirName)
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s directory: %w", dataDirName, err)
	}

	db, err := sql.Open("sqlite", "file:"+filepath.Join(dataDir, dbFileName))
	if err != nil {
		return nil, fmt.Errorf("open link cache: %w", err)
	}

	d := &DB{db: db, norm: norm}
	if err := d.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the cache.
func (d *DB) Close() error { return d.db.Close() }

func (d *DB) initialize() error {
	stmts := []string{
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA synchronous = NORMAL;`,
		`PRAGMA busy_timeout = 5000;`,
		`CREATE TABLE IF NOT EXISTS files (
			path  TEXT PRIMARY KEY,
			mtime INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS links (
			source TEXT NOT NULL,
			kind   TEXT NOT NULL,
			text   TEXT NOT NULL,
			norm   TEXT NOT NULL,
			line   INTEGER NOT NULL,
			start  INTEGER NOT NULL,
			FOREIGN KEY(source) REFERENCES files(path) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_links_norm ON links(norm);`,
		`CREATE INDEX IF NOT EXISTS idx_links_source ON links(source);`,
	}
	for _, stmt := range stmts {
		if _, err := d.db.Exec(stmt); err != nil {
			return fmt.Errorf("initialize link cache: %w", err)
		}
	}
	return nil
}

// Refresh brings the cache up to date with the given index. Files whose
// mtime is unchanged are skipped; removed files are purged.
func (d *DB) Refresh(idx *index.Index) error {
	present := make(map[string]bool, idx.Len())

	for _, note := range idx.Notes() {
		present[note.Path] = true

		st, err := os.Stat(note.Path)
		if err != nil {
			continue
		}
		mtime := st.ModTime().UnixNano()

		var cached int64
		err = d.db.QueryRow(`SELECT mtime FROM files WHERE path = ?`, note.Path).Scan(&cached)
		if err == nil && cached == mtime {
			continue
		}
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("query link cache: %w", err)
		}

		body, err := os.ReadFile(note.Path)
		if err != nil {
			continue
		}
		if err := d.replaceFile(note.Path, mtime, string(body)); err != nil {
			return err
		}
	}

	rows, err := d.db.Query(`SELECT path FROM files`)
	if err != nil {
		return fmt.Errorf("query link cache: %w", err)
	}
	cached, err := sqlutil.ScanRows(rows, func(rows *sql.Rows) (string, error) {
		var p string
		err := rows.Scan(&p)
		return p, err
	})
	if err != nil {
		return err
	}

	for _, p := range cached {
		if present[p] {
			continue
		}
		if err := d.remove(p); err != nil {
			return err
		}
	}
	return nil
}

func (d *DB) replaceFile(path string, mtime int64, body string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("update link cache: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM links WHERE source = ?`, path); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT INTO files (path, mtime) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET mtime = excluded.mtime`,
		path, mtime,
	); err != nil {
		return err
	}

	for _, occ := range scan.Body(body) {
		if _, err := tx.Exec(
			`INSERT INTO links (source, kind, text, norm, line, start) VALUES (?, ?, ?, ?, ?, ?)`,
			path, occ.Kind.String(), occ.Text, d.norm.Normalize(occ.Text), occ.Line, occ.Start,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (d *DB) remove(path string) error {
	if _, err := d.db.Exec(`DELETE FROM links WHERE source = ?`, path); err != nil {
		return err
	}
	_, err := d.db.Exec(`DELETE FROM files WHERE path = ?`, path)
	return err
}

// Backlink is one link occurrence pointing at a title.
type Backlink struct {
	Source string `json:"source"`
	Text   string `json:"text"`
	Line   int    `json:"line"`
}

// Backlinks returns every title-link occurrence whose display text matches t,
// ordered by source path then position.
func (d *DB) Backlinks(t string) ([]Backlink, error) {
	rows, err := d.db.Query(
		`SELECT source, text, line FROM links
		 WHERE kind = 'title' AND norm = ?
		 ORDER BY source, start`,
		d.norm.Normalize(t),
	)
	if err != nil {
		return nil, fmt.Errorf("query backlinks: %w", err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (Backlink, error) {
		var b Backlink
		err := rows.Scan(&b.Source, &b.Text, &b.Line)
		return b, err
	})
}
