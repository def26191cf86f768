package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/glabrego/relwin/internal/release"
)

var ErrReleaseNotFound = errors.New("release not found")

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Repository) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS releases (
  position INTEGER PRIMARY KEY,
  version TEXT NOT NULL,
  title TEXT NOT NULL,
  url TEXT NOT NULL,
  published_at TEXT,
  current INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS downloads (
  position INTEGER PRIMARY KEY,
  platform TEXT NOT NULL,
  label TEXT NOT NULL,
  url TEXT NOT NULL,
  is_primary INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS meta (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// CheckWritable fails early when the database file cannot be written.
func (r *Repository) CheckWritable(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('write_check', ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value`, time.Now().UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("write check: %w", err)
	}
	return nil
}

// ReplaceReleases stores releases in list order, dropping the previous list.
func (r *Repository) ReplaceReleases(ctx context.Context, releases []release.Release) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM releases`); err != nil {
		return fmt.Errorf("clear releases: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO releases (position, version, title, url, published_at, current)
VALUES (?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		return fmt.Errorf("prepare release statement: %w", err)
	}
	defer stmt.Close()

	for i, rel := range releases {
		var published sql.NullString
		if !rel.PublishedAt.IsZero() {
			published = sql.NullString{String: rel.PublishedAt.UTC().Format(time.RFC3339Nano), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, rel.Version, rel.Title, rel.URL, published, rel.Current); err != nil {
			return fmt.Errorf("save release %q: %w", rel.Version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) ListReleases(ctx context.Context) ([]release.Release, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT version, title, url, published_at, current
FROM releases
ORDER BY position ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query releases: %w", err)
	}
	defer rows.Close()

	releases := make([]release.Release, 0, 32)
	for rows.Next() {
		var rel release.Release
		var published sql.NullString
		if err := rows.Scan(&rel.Version, &rel.Title, &rel.URL, &published, &rel.Current); err != nil {
			return nil, fmt.Errorf("scan release: %w", err)
		}
		if published.Valid && published.String != "" {
			rel.PublishedAt, err = time.Parse(time.RFC3339Nano, published.String)
			if err != nil {
				return nil, fmt.Errorf("parse release published_at %q: %w", published.String, err)
			}
		}
		releases = append(releases, rel)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return releases, nil
}

// SetCurrent moves the current marker to the release with the given version.
func (r *Repository) SetCurrent(ctx context.Context, version string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var position int
	err = tx.QueryRowContext(ctx, `SELECT position FROM releases WHERE version = ? ORDER BY position LIMIT 1`, version).Scan(&position)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrReleaseNotFound, version)
	}
	if err != nil {
		return fmt.Errorf("find release %q: %w", version, err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE releases SET current = (position = ?)`, position); err != nil {
		return fmt.Errorf("update current release: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) ReplaceDownloads(ctx context.Context, downloads []release.Download) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM downloads`); err != nil {
		return fmt.Errorf("clear downloads: %w", err)
	}
	for i, d := range downloads {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO downloads (position, platform, label, url, is_primary)
VALUES (?, ?, ?, ?, ?)
`, i, d.Platform, d.Label, d.URL, d.Primary); err != nil {
			return fmt.Errorf("save download %q: %w", d.Platform, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) ListDownloads(ctx context.Context) ([]release.Download, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT platform, label, url, is_primary
FROM downloads
ORDER BY position ASC
`)
	if err != nil {
		return nil, fmt.Errorf("query downloads: %w", err)
	}
	defer rows.Close()

	var downloads []release.Download
	for rows.Next() {
		var d release.Download
		if err := rows.Scan(&d.Platform, &d.Label, &d.URL, &d.Primary); err != nil {
			return nil, fmt.Errorf("scan download: %w", err)
		}
		downloads = append(downloads, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return downloads, nil
}

func (r *Repository) SetTitle(ctx context.Context, title string) error {
	if _, err := r.db.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES ('title', ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value`, title); err != nil {
		return fmt.Errorf("save title: %w", err)
	}
	return nil
}

func (r *Repository) Title(ctx context.Context) (string, error) {
	var title string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'title'`).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load title: %w", err)
	}
	return title, nil
}

// UIPreferences are the browser toggles kept between sessions.
type UIPreferences struct {
	RelativeTime bool
	ShowNumbers  bool
}

func (r *Repository) SaveUIPreferences(ctx context.Context, prefs UIPreferences) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, on := range map[string]bool{
		"ui.relative_time": prefs.RelativeTime,
		"ui.show_numbers":  prefs.ShowNumbers,
	} {
		value := "0"
		if on {
			value = "1"
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value`, key, value); err != nil {
			return fmt.Errorf("save preference %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) LoadUIPreferences(ctx context.Context) (UIPreferences, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM meta WHERE key IN ('ui.relative_time', 'ui.show_numbers')`)
	if err != nil {
		return UIPreferences{}, fmt.Errorf("load preferences: %w", err)
	}
	defer rows.Close()

	var prefs UIPreferences
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return UIPreferences{}, fmt.Errorf("scan preference: %w", err)
		}
		switch key {
		case "ui.relative_time":
			prefs.RelativeTime = value == "1"
		case "ui.show_numbers":
			prefs.ShowNumbers = value == "1"
		}
	}
	if err := rows.Err(); err != nil {
		return UIPreferences{}, fmt.Errorf("iterate preferences: %w", err)
	}
	return prefs, nil
}
