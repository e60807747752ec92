package storage

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubelet/internal/cube"
)

// Journal records the committed turns of one session.
type Journal struct {
	sessions  *SessionRepository
	turns     *TurnRepository
	sessionID string
	logger    *slog.Logger

	mu     sync.Mutex
	count  int
	closed bool
}

// StartJournal creates a session and returns a journal writing to it.
func StartJournal(db *DB, source, notes string, logger *slog.Logger) (*Journal, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sessions := NewSessionRepository(db)
	id, err := sessions.Create(source, notes)
	if err != nil {
		return nil, err
	}
	logger.Info("journal started", "session", id, "source", source)

	return &Journal{
		sessions:  sessions,
		turns:     NewTurnRepository(db),
		sessionID: id,
		logger:    logger,
	}, nil
}

// SessionID returns the session being written.
func (j *Journal) SessionID() string {
	return j.sessionID
}

// Count returns the number of turns recorded so far.
func (j *Journal) Count() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.count
}

// Record appends one committed turn.
func (j *Journal) Record(seq uint64, at time.Time, t cube.Turn) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return fmt.Errorf("journal %s is closed", j.sessionID)
	}
	if _, err := j.turns.Create(j.sessionID, seq, at, t); err != nil {
		j.logger.Error("failed to journal turn", "session", j.sessionID, "seq", seq, "error", err)
		return err
	}
	j.count++
	return nil
}

// RecordBatch appends turns committed together, numbered from firstSeq.
func (j *Journal) RecordBatch(firstSeq uint64, at time.Time, turns []cube.Turn) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return fmt.Errorf("journal %s is closed", j.sessionID)
	}
	if err := j.turns.CreateBatch(j.sessionID, firstSeq, at, turns); err != nil {
		return err
	}
	j.count += len(turns)
	return nil
}

// RecordReset marks that the state went back to solved after commit
// afterSeq. Replay ignores the turns before the latest marker.
func (j *Journal) RecordReset(afterSeq uint64, at time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return fmt.Errorf("journal %s is closed", j.sessionID)
	}
	if err := j.turns.CreateReset(j.sessionID, afterSeq, at); err != nil {
		j.logger.Error("failed to journal reset", "session", j.sessionID, "after_seq", afterSeq, "error", err)
		return err
	}
	j.logger.Info("reset journaled", "session", j.sessionID, "after_seq", afterSeq)
	return nil
}

// Close ends the session. Closing twice is a no-op.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}
	j.closed = true
	j.logger.Info("journal closed", "session", j.sessionID, "turns", j.count)
	return j.sessions.End(j.sessionID)
}

// Replay rebuilds the state of a session from a solved cube. Only turns
// committed after the latest reset marker are applied and returned.
func Replay(db *DB, sessionID string) (cube.State, []cube.Turn, error) {
	repo := NewTurnRepository(db)
	records, err := repo.GetBySession(sessionID)
	if err != nil {
		return cube.State{}, nil, err
	}

	resetSeq, wasReset, err := repo.LastReset(sessionID)
	if err != nil {
		return cube.State{}, nil, err
	}
	if wasReset {
		kept := records[:0]
		for _, rec := range records {
			if rec.Seq > resetSeq {
				kept = append(kept, rec)
			}
		}
		records = kept
	}

	turns, err := ToTurns(records)
	if err != nil {
		return cube.State{}, nil, fmt.Errorf("failed to decode session %s: %w", sessionID, err)
	}

	return cube.ApplyTurns(cube.Solved(), turns...), turns, nil
}
