package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"GoldBoard/internal/news"
)

// SQLiteRecorder persists refresh history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard reads don't block recorder writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT,
			price      REAL,
			change     REAL,
			change_pct REAL,
			sma_fast   REAL,
			sma_slow   REAL,
			rsi        REAL,
			day_high   REAL,
			day_low    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_ts ON snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS news_items (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			title     TEXT,
			url       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_news_ts ON news_items(timestamp)`,

		`CREATE TABLE IF NOT EXISTS fetch_errors (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			source    TEXT,
			detail    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_errors_ts ON fetch_errors(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable converts NaN indicator values to SQL NULL.
func nullable(v float64) interface{} {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func (r *SQLiteRecorder) RecordSnapshot(rec *SnapshotRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO snapshots
		(timestamp, symbol, price, change, change_pct, sma_fast, sma_slow, rsi, day_high, day_low)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Symbol, rec.Price, rec.Change, rec.ChangePct,
		nullable(rec.SMAFast), nullable(rec.SMASlow), nullable(rec.RSI),
		rec.DayHigh, rec.DayLow,
	)
	return err
}

func (r *SQLiteRecorder) RecordNews(items []news.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for _, item := range items {
		if _, err := r.db.Exec(`INSERT INTO news_items (timestamp, title, url) VALUES (?,?,?)`,
			now, item.Title, item.URL); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordFetchError(evt *FetchErrorEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO fetch_errors (timestamp, source, detail) VALUES (?,?,?)`,
		time.Now().Unix(), evt.Source, evt.Detail)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
