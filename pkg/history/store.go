// Package history persists a log of move requests and their outcomes in a
// local SQLite database.
package history

import (
	"database/sql"
	_ "embed"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"armhost/pkg/arm"
	"armhost/pkg/errors"
)

//go:embed schema.sql
var schemaSQL string

// Outcome values recorded for a move request.
const (
	OutcomeCompleted   = "completed"
	OutcomeOutOfRange  = "out_of_range"
	OutcomePathBlocked = "path_blocked"
)

// MoveRecord is one row of the move log.
type MoveRecord struct {
	ID           uuid.UUID
	SessionID    uuid.UUID
	RequestedAt  time.Time
	From         arm.Point
	To           arm.Point
	Outcome      string
	PosesEmitted int
}

// Store is a SQLite-backed move log.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if needed) the move log at path. Use ":memory:" for
// an ephemeral store in tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.HistoryError("open", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, errors.HistoryError("init schema", err)
	}

	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return errors.HistoryError("close", err)
	}
	return nil
}

// Record inserts one move record. A zero ID is assigned a fresh UUID and a
// zero timestamp the current time.
func (s *Store) Record(rec MoveRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return errors.HistoryError("record", sql.ErrConnDone)
	}

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.RequestedAt.IsZero() {
		rec.RequestedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO moves (id, session_id, requested_at, from_x, from_y, to_x, to_y, outcome, poses_emitted)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(),
		rec.SessionID.String(),
		rec.RequestedAt.Format(time.RFC3339Nano),
		rec.From.X, rec.From.Y,
		rec.To.X, rec.To.Y,
		rec.Outcome,
		rec.PosesEmitted,
	)
	if err != nil {
		return errors.HistoryError("record", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(limit int) ([]MoveRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, errors.HistoryError("query", sql.ErrConnDone)
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, requested_at, from_x, from_y, to_x, to_y, outcome, poses_emitted
		 FROM moves ORDER BY requested_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, errors.HistoryError("query", err)
	}
	defer rows.Close()

	var records []MoveRecord
	for rows.Next() {
		var (
			rec       MoveRecord
			id, sid   string
			requested string
		)
		if err := rows.Scan(&id, &sid, &requested,
			&rec.From.X, &rec.From.Y, &rec.To.X, &rec.To.Y,
			&rec.Outcome, &rec.PosesEmitted); err != nil {
			return nil, errors.HistoryError("scan", err)
		}
		if rec.ID, err = uuid.Parse(id); err != nil {
			return nil, errors.HistoryError("scan", err)
		}
		if rec.SessionID, err = uuid.Parse(sid); err != nil {
			return nil, errors.HistoryError("scan", err)
		}
		if rec.RequestedAt, err = time.Parse(time.RFC3339Nano, requested); err != nil {
			return nil, errors.HistoryError("scan", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.HistoryError("query", err)
	}
	return records, nil
}

// CountByOutcome returns how many recorded moves ended with each outcome.
func (s *Store) CountByOutcome() (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, errors.HistoryError("query", sql.ErrConnDone)
	}

	rows, err := s.db.Query(`SELECT outcome, COUNT(*) FROM moves GROUP BY outcome`)
	if err != nil {
		return nil, errors.HistoryError("query", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, errors.HistoryError("scan", err)
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}
