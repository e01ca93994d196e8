// Package journal is an optional SQLite audit sink for executed reactions
// and reward grants.
//
// The engine works without it (the default sink is a no-op); when enabled,
// every reaction run and reward grant lands in an append-only journal that
// the `riposte trace` command reads back. Writes are idempotent: a
// replayed (run token, seq) pair is silently ignored.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store is a SQLite-backed reaction journal.
// Uses WAL mode so the trace command can read while the engine writes.
type Store struct {
	db *sql.DB
}

// Open creates or opens the journal database at the given path.
// Applies pragmas and schema automatically; safe to call on an existing
// database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	// SQLite allows one writer at a time; a single pooled connection
	// avoids SQLITE_BUSY under concurrent executor goroutines.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %q: %w", pragma, err)
		}
	}
	return nil
}

// Reaction is one executed reaction run.
type Reaction struct {
	RunToken  string
	Seq       int64
	Initiator string
	Target    string
	Signal    string
	Emote     string
	TextKey   string
	Combo     bool
	Streak    int
}

// Reward is one granted once-per-day reward.
type Reward struct {
	Initiator string
	Target    string
	Day       int
	Amount    int
	RunToken  string
	Seq       int64
}

// WriteReaction appends a reaction record.
// Idempotent via ON CONFLICT DO NOTHING on (run_token, seq).
func (s *Store) WriteReaction(ctx context.Context, r Reaction) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reactions
		(run_token, seq, initiator, target, signal, emote, text_key, combo, streak)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		r.RunToken, r.Seq, r.Initiator, r.Target, r.Signal,
		r.Emote, r.TextKey, boolToInt(r.Combo), r.Streak,
	)
	if err != nil {
		return fmt.Errorf("write reaction: %w", err)
	}
	return nil
}

// WriteReward appends a reward record.
// The (initiator, target, day) primary key mirrors the engine's
// once-per-day invariant; a duplicate grant is silently ignored.
func (s *Store) WriteReward(ctx context.Context, r Reward) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rewards
		(initiator, target, day, amount, run_token, seq)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		r.Initiator, r.Target, r.Day, r.Amount, r.RunToken, r.Seq,
	)
	if err != nil {
		return fmt.Errorf("write reward: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
