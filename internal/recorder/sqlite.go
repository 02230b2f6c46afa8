package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the event history to a SQLite database.
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

	// WAL mode so external readers don't block the bot's writes.
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
		`CREATE TABLE IF NOT EXISTS catches (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp     INTEGER NOT NULL,
			user_id       TEXT NOT NULL,
			username      TEXT,
			streak        INTEGER,
			total_catches INTEGER,
			daily_count   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_catches_ts ON catches(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_catches_user ON catches(user_id)`,

		`CREATE TABLE IF NOT EXISTS resets (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			participants   INTEGER,
			streaks_broken INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_resets_ts ON resets(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCatch(evt *CatchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO catches
		(timestamp, user_id, username, streak, total_catches, daily_count)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.UserID, evt.Username,
		evt.Streak, evt.TotalCatches, evt.DailyCount,
	)
	return err
}

func (r *SQLiteRecorder) RecordReset(evt *ResetEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO resets
		(timestamp, participants, streaks_broken)
		VALUES (?,?,?)`,
		time.Now().Unix(), evt.Participants, evt.StreaksBroken,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
