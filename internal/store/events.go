package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// EventLog is an append-only history of sessions and answers, kept in
// SQLite beside the JSON record files. It is never read back to rebuild
// state; the JSON documents stay authoritative.
type EventLog struct {
	db *sql.DB
}

// AnswerEvent is a single drilled round.
type AnswerEvent struct {
	SessionID string
	Word      string
	Tier      string
	Submitted string
	Correct   bool
	Timeout   bool
	TimeMs    int
}

// SessionEvent is a completed (or aborted) session.
type SessionEvent struct {
	SessionID    string
	Mode         string
	Difficulty   string
	Chapter      string
	TotalWords   int
	CorrectWords int
	Score        int
	Accuracy     float64
	StartedAt    time.Time
	EndedAt      time.Time
}

// MissRecord is a historical incorrect answer, for review listings.
type MissRecord struct {
	Word      string
	Submitted string
	Timeout   bool
	At        time.Time
}

// OpenEventLog opens or creates the event log database and applies
// migrations and the pragmas recommended for single-user use.
func OpenEventLog(path string) (*EventLog, error) {
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}

	l := &EventLog{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return l, nil
}

// Close closes the underlying database.
func (l *EventLog) Close() error {
	return l.db.Close()
}

func (l *EventLog) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			chapter TEXT NOT NULL,
			total_words INTEGER NOT NULL,
			correct_words INTEGER NOT NULL,
			score INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL,
			word TEXT NOT NULL,
			tier TEXT NOT NULL,
			submitted TEXT NOT NULL,
			correct INTEGER NOT NULL,
			timeout INTEGER NOT NULL,
			time_ms INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_answers_session ON answers(session_id);`,
		`CREATE INDEX IF NOT EXISTS idx_answers_correct ON answers(correct, created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate event log: %w", err)
		}
	}
	return nil
}

// AppendAnswer records one settled round.
func (l *EventLog) AppendAnswer(ctx context.Context, ev AnswerEvent) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO answers (session_id, word, tier, submitted, correct, timeout, time_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.SessionID, ev.Word, ev.Tier, ev.Submitted,
		boolInt(ev.Correct), boolInt(ev.Timeout), ev.TimeMs,
		time.Now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append answer event: %w", err)
	}
	return nil
}

// AppendSession records a finished session.
func (l *EventLog) AppendSession(ctx context.Context, ev SessionEvent) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO sessions (session_id, mode, difficulty, chapter, total_words, correct_words, score, accuracy, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.SessionID, ev.Mode, ev.Difficulty, ev.Chapter,
		ev.TotalWords, ev.CorrectWords, ev.Score, ev.Accuracy,
		ev.StartedAt.Format(time.RFC3339Nano), ev.EndedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append session event: %w", err)
	}
	return nil
}

// RecentMisses returns the most recent incorrect answers, newest first.
func (l *EventLog) RecentMisses(ctx context.Context, limit int) ([]MissRecord, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT word, submitted, timeout, created_at FROM answers
		 WHERE correct = 0 ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query misses: %w", err)
	}
	defer rows.Close()

	var out []MissRecord
	for rows.Next() {
		var m MissRecord
		var timeout int
		var at string
		if err := rows.Scan(&m.Word, &m.Submitted, &timeout, &at); err != nil {
			return nil, fmt.Errorf("scan miss: %w", err)
		}
		m.Timeout = timeout != 0
		m.At, _ = time.Parse(time.RFC3339Nano, at)
		out = append(out, m)
	}
	return out, rows.Err()
}

// SessionCount returns the number of logged sessions.
func (l *EventLog) SessionCount(ctx context.Context) (int, error) {
	var n int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
