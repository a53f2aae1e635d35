// Package viewcount is the default view counter behind the blog metadata
// display. It counts at most one view per visitor, slug and UTC day, so counts
// only ever grow.
package viewcount

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store keeps view totals and the recent visitor hashes used for
// deduplication in SQLite.
type Store struct {
	db   *sql.DB
	salt string
}

// PageViews is the total for one slug.
type PageViews struct {
	Slug  string `json:"slug"`
	Views int64  `json:"views"`
}

// NewStore opens (or creates) the database at path, applies the schema and
// loads the per-installation hashing salt.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open views db: %w", err)
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure views db: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.initSalt(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS page_views (
    slug TEXT PRIMARY KEY,
    views INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS view_visitors (
    slug TEXT NOT NULL,
    visitor TEXT NOT NULL,
    day TEXT NOT NULL,
    PRIMARY KEY (slug, visitor, day)
);

CREATE INDEX IF NOT EXISTS idx_view_visitors_day ON view_visitors(day);

CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`)
	return err
}

// GetSetting returns a setting value, or "" when it is not set.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return val, err
}

// SetSetting upserts a setting value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (s *Store) initSalt() error {
	v, err := s.GetSetting("hash_salt")
	if err != nil {
		return fmt.Errorf("read hash salt: %w", err)
	}
	if v == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return fmt.Errorf("generate salt: %w", err)
		}
		v = hex.EncodeToString(b)
		if err := s.SetSetting("hash_salt", v); err != nil {
			return fmt.Errorf("store hash salt: %w", err)
		}
	}
	s.salt = v
	return nil
}

// VisitorID derives an anonymous visitor key from the client IP and User-Agent.
// Raw addresses are never stored.
func (s *Store) VisitorID(ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(s.salt + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Hit records a view of slug by visitor at the given time. It reports whether
// the view was counted; repeat views by the same visitor on the same UTC day
// are not.
func (s *Store) Hit(ctx context.Context, slug, visitor string, at time.Time) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO view_visitors (slug, visitor, day) VALUES (?, ?, ?)`,
		slug, visitor, at.UTC().Format("2006-01-02"))
	if err != nil {
		return false, fmt.Errorf("record visitor: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO page_views (slug, views) VALUES (?, 1)
		ON CONFLICT(slug) DO UPDATE SET views = views + 1`, slug); err != nil {
		return false, fmt.Errorf("increment views: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// Views returns the total for slug; unknown slugs have zero views.
func (s *Store) Views(ctx context.Context, slug string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT views FROM page_views WHERE slug = ?`, slug).Scan(&n)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return n, err
}

// Top returns the limit most viewed slugs.
func (s *Store) Top(ctx context.Context, limit int) ([]PageViews, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, views FROM page_views ORDER BY views DESC, slug ASC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PageViews
	for rows.Next() {
		var pv PageViews
		if err := rows.Scan(&pv.Slug, &pv.Views); err != nil {
			return nil, err
		}
		out = append(out, pv)
	}
	return out, rows.Err()
}

// CleanupVisitors drops visitor hashes older than retentionDays. Totals are
// unaffected.
func (s *Store) CleanupVisitors(retentionDays int) error {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format("2006-01-02")
	if _, err := s.db.Exec(`DELETE FROM view_visitors WHERE day < ?`, cutoff); err != nil {
		return fmt.Errorf("cleanup view_visitors: %w", err)
	}
	return nil
}

// StartCleanupScheduler runs CleanupVisitors periodically. Returns a stop function.
func (s *Store) StartCleanupScheduler(retentionDays int, interval time.Duration) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				if err := s.CleanupVisitors(retentionDays); err != nil {
					slog.Error("view cleanup failed", "error", err)
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
