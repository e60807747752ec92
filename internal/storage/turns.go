package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubelet/internal/cube"
)

// TurnRecord is a committed turn in the journal.
type TurnRecord struct {
	TurnID    int64
	SessionID string
	Seq       uint64
	TsMs      int64
	Face      string
	Direction int
	Notation  string
}

// Turn converts the record back into a cube turn.
func (r TurnRecord) Turn() (cube.Turn, error) {
	face, err := cube.ParseFace(r.Face)
	if err != nil {
		return cube.Turn{}, fmt.Errorf("turn %d: %w", r.TurnID, err)
	}
	t := cube.Turn{Face: face, Direction: cube.Direction(r.Direction)}
	if err := t.Validate(); err != nil {
		return cube.Turn{}, fmt.Errorf("turn %d: %w", r.TurnID, err)
	}
	return t, nil
}

// TurnRepository provides CRUD operations for turns.
type TurnRepository struct {
	db *DB
}

// NewTurnRepository creates a new turn repository.
func NewTurnRepository(db *DB) *TurnRepository {
	return &TurnRepository{db: db}
}

const insertTurn = `
	INSERT INTO turns (session_id, seq, ts_ms, face, direction, notation)
	VALUES (?, ?, ?, ?, ?, ?)`

// Create records one committed turn and returns its ID.
func (r *TurnRepository) Create(sessionID string, seq uint64, at time.Time, t cube.Turn) (int64, error) {
	result, err := r.db.Exec(insertTurn, sessionID, seq, at.UnixMilli(), t.Face.String(), int(t.Direction), t.Notation())
	if err != nil {
		return 0, fmt.Errorf("failed to create turn: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get turn ID: %w", err)
	}
	return id, nil
}

// CreateBatch records turns with consecutive sequence numbers in a single
// transaction.
func (r *TurnRepository) CreateBatch(sessionID string, firstSeq uint64, at time.Time, turns []cube.Turn) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, t := range turns {
			seq := firstSeq + uint64(i)
			if _, err := tx.Exec(insertTurn, sessionID, seq, at.UnixMilli(), t.Face.String(), int(t.Direction), t.Notation()); err != nil {
				return fmt.Errorf("failed to create turn %d: %w", seq, err)
			}
		}
		return nil
	})
}

// GetBySession retrieves all turns for a session in commit order.
func (r *TurnRepository) GetBySession(sessionID string) ([]TurnRecord, error) {
	rows, err := r.db.Query(`
		SELECT turn_id, session_id, seq, ts_ms, face, direction, notation
		FROM turns
		WHERE session_id = ?
		ORDER BY seq
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get turns: %w", err)
	}
	defer rows.Close()

	var turns []TurnRecord
	for rows.Next() {
		var t TurnRecord
		if err := rows.Scan(&t.TurnID, &t.SessionID, &t.Seq, &t.TsMs, &t.Face, &t.Direction, &t.Notation); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get turns: %w", err)
	}

	return turns, nil
}

// Count returns the number of turns for a session.
func (r *TurnRepository) Count(sessionID string) (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM turns WHERE session_id = ?", sessionID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count turns: %w", err)
	}
	return count, nil
}

// CreateReset records that the state returned to solved after commit
// afterSeq.
func (r *TurnRepository) CreateReset(sessionID string, afterSeq uint64, at time.Time) error {
	_, err := r.db.Exec(`INSERT INTO resets (session_id, after_seq, ts_ms) VALUES (?, ?, ?)`,
		sessionID, afterSeq, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to create reset: %w", err)
	}
	return nil
}

// LastReset returns the sequence number of the latest reset marker of a
// session, and false if it was never reset.
func (r *TurnRepository) LastReset(sessionID string) (uint64, bool, error) {
	var seq sql.NullInt64
	err := r.db.QueryRow("SELECT MAX(after_seq) FROM resets WHERE session_id = ?", sessionID).Scan(&seq)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get last reset: %w", err)
	}
	if !seq.Valid {
		return 0, false, nil
	}
	return uint64(seq.Int64), true, nil
}

// ToTurns converts records to cube turns.
func ToTurns(records []TurnRecord) ([]cube.Turn, error) {
	turns := make([]cube.Turn, 0, len(records))
	for _, rec := range records {
		t, err := rec.Turn()
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, nil
}
