// Package botlog records social crawler visits in SQLite and aggregates them
// for the admin stats endpoint. IP addresses are never stored raw: they are
// hashed with a per-installation salt persisted in the settings table.
package botlog

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store provides database operations for the crawler visit log.
type Store struct {
	db   *sql.DB
	salt string
}

// Visit is a single recorded crawler hit.
type Visit struct {
	ID        int64     `json:"-"`
	BotName   string    `json:"bot_name"`
	IPHash    string    `json:"-"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// NameCount is a generic (name, count) aggregate row.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DayCount is a per-day visit count.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Stats holds aggregated crawler visit data for a time range.
type Stats struct {
	TotalVisits int         `json:"total_visits"`
	TopBots     []NameCount `json:"top_bots"`
	TopPaths    []NameCount `json:"top_paths"`
	DailyVisits []DayCount  `json:"daily_visits"`
}

// Open opens (or creates) the visit log at dbPath and loads the hash salt.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open botlog db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.loadSalt(); err != nil {
		db.Close()
		return nil, fmt.Errorf("load salt: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS crawler_visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			bot_name TEXT NOT NULL,
			ip_hash TEXT NOT NULL,
			user_agent TEXT NOT NULL,
			path TEXT NOT NULL,
			timestamp DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_crawler_visits_timestamp ON crawler_visits(timestamp);
		CREATE INDEX IF NOT EXISTS idx_crawler_visits_name ON crawler_visits(bot_name);
		CREATE INDEX IF NOT EXISTS idx_crawler_visits_path ON crawler_visits(path);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// loadSalt reads the persisted hash salt, generating one on first run.
func (s *Store) loadSalt() error {
	salt, err := s.getSetting("hash_salt")
	if err != nil {
		return err
	}
	if salt == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return fmt.Errorf("generate salt: %w", err)
		}
		salt = hex.EncodeToString(b)
		if err := s.setSetting("hash_salt", salt); err != nil {
			return err
		}
	}
	s.salt = salt
	return nil
}

func (s *Store) getSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, nil
}

func (s *Store) setSetting(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

// HashIP creates a salted SHA-256 hash of an IP address, truncated the same
// way for every caller so hashes are comparable within one installation.
func (s *Store) HashIP(ip string) string {
	h := sha256.New()
	h.Write([]byte(s.salt + ip))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Record saves one crawler visit.
func (s *Store) Record(v *Visit) error {
	_, err := s.db.Exec(
		"INSERT INTO crawler_visits (bot_name, ip_hash, user_agent, path, timestamp) VALUES (?, ?, ?, ?, ?)",
		v.BotName, v.IPHash, v.UserAgent, v.Path, v.Timestamp.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record crawler visit: %w", err)
	}
	return nil
}

// Stats aggregates visits in [from, to).
func (s *Store) Stats(from, to time.Time) (*Stats, error) {
	fromStr := from.UTC().Format(time.RFC3339)
	toStr := to.UTC().Format(time.RFC3339)

	stats := &Stats{}

	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM crawler_visits WHERE timestamp >= ? AND timestamp < ?",
		fromStr, toStr,
	).Scan(&stats.TotalVisits)
	if err != nil {
		return nil, fmt.Errorf("count visits: %w", err)
	}

	stats.TopBots, err = s.nameCounts(
		"SELECT bot_name, COUNT(*) AS n FROM crawler_visits WHERE timestamp >= ? AND timestamp < ? GROUP BY bot_name ORDER BY n DESC LIMIT 10",
		fromStr, toStr,
	)
	if err != nil {
		return nil, fmt.Errorf("top bots: %w", err)
	}

	stats.TopPaths, err = s.nameCounts(
		"SELECT path, COUNT(*) AS n FROM crawler_visits WHERE timestamp >= ? AND timestamp < ? GROUP BY path ORDER BY n DESC LIMIT 10",
		fromStr, toStr,
	)
	if err != nil {
		return nil, fmt.Errorf("top paths: %w", err)
	}

	rows, err := s.db.Query(
		"SELECT strftime('%Y-%m-%d', timestamp) AS day, COUNT(*) FROM crawler_visits WHERE timestamp >= ? AND timestamp < ? GROUP BY day ORDER BY day",
		fromStr, toStr,
	)
	if err != nil {
		return nil, fmt.Errorf("daily visits: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d DayCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, fmt.Errorf("scan daily visit: %w", err)
		}
		stats.DailyVisits = append(stats.DailyVisits, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("daily visits: %w", err)
	}

	return stats, nil
}

func (s *Store) nameCounts(query string, args ...any) ([]NameCount, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NameCount
	for rows.Next() {
		var nc NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, err
		}
		out = append(out, nc)
	}
	return out, rows.Err()
}
