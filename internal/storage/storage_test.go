package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubelet/internal/cube"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenAndMigrate(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenAndMigrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db := openTestDB(t)

	if err := db.MigrateUp(); err != nil {
		t.Fatalf("second MigrateUp: %v", err)
	}
	v, err := db.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion: %v", err)
	}
	if v != 2 {
		t.Errorf("version = %d, want 2", v)
	}
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)

	id, err := repo.Create("keyboard", "warmup")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	s, err := repo.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if s.Source != "keyboard" || s.Notes == nil || *s.Notes != "warmup" {
		t.Errorf("unexpected session %+v", s)
	}
	if s.EndedAt != nil {
		t.Error("new session should be open")
	}

	if err := repo.End(id); err != nil {
		t.Fatalf("End: %v", err)
	}
	s, _ = repo.Get(id)
	if s.EndedAt == nil {
		t.Error("ended session should have EndedAt")
	}

	if _, err := repo.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get(missing) = %v, want ErrSessionNotFound", err)
	}
	if err := repo.End("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("End(missing) = %v, want ErrSessionNotFound", err)
	}
}

func TestResolvePrefix(t *testing.T) {
	db := openTestDB(t)
	repo := NewSessionRepository(db)

	id, _ := repo.Create("apply", "")
	s, err := repo.Resolve(id[:8])
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if s.SessionID != id {
		t.Errorf("Resolve = %s, want %s", s.SessionID, id)
	}
	if _, err := repo.Resolve("zzzz"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Resolve(zzzz) = %v", err)
	}
}

func TestJournalReplayReproducesState(t *testing.T) {
	db := openTestDB(t)

	j, err := StartJournal(db, "apply", "", nil)
	if err != nil {
		t.Fatalf("StartJournal: %v", err)
	}

	turns, _ := cube.ParseTurns("R U R' U' F' L2 D B'")
	want := cube.Solved()
	at := time.Now()
	for i, turn := range turns {
		want = cube.ApplyTurn(want, turn)
		if err := j.Record(uint64(i+1), at, turn); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := j.Record(99, at, turns[0]); err == nil {
		t.Error("Record after Close should fail")
	}

	got, replayed, err := Replay(db, j.SessionID())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if got != want {
		t.Errorf("replayed state differs:\n%s\nwant:\n%s", got, want)
	}
	if cube.FormatTurns(replayed) != cube.FormatTurns(turns) {
		t.Errorf("replayed turns %q, want %q", cube.FormatTurns(replayed), cube.FormatTurns(turns))
	}

	sessions, err := NewSessionRepository(db).List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(sessions) != 1 || sessions[0].TurnCount != len(turns) {
		t.Errorf("List = %+v", sessions)
	}
}

func TestReplayStartsAfterLastReset(t *testing.T) {
	db := openTestDB(t)

	j, err := StartJournal(db, "keyboard", "", nil)
	if err != nil {
		t.Fatalf("StartJournal: %v", err)
	}
	defer j.Close()

	at := time.Now()
	seq := uint64(0)
	record := func(notation string) {
		turns, _ := cube.ParseTurns(notation)
		for _, turn := range turns {
			seq++
			if err := j.Record(seq, at, turn); err != nil {
				t.Fatalf("Record: %v", err)
			}
		}
	}

	record("B L")
	if err := j.RecordReset(seq, at); err != nil {
		t.Fatalf("RecordReset: %v", err)
	}
	record("F D'")
	if err := j.RecordReset(seq, at); err != nil {
		t.Fatalf("RecordReset: %v", err)
	}
	record("R U")

	got, turns, err := Replay(db, j.SessionID())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if cube.FormatTurns(turns) != "R U" {
		t.Errorf("replayed turns = %q, want %q", cube.FormatTurns(turns), "R U")
	}
	want := cube.ApplyTurns(cube.Solved(), cube.Turn{Face: cube.R, Direction: cube.Clockwise}, cube.Turn{Face: cube.U, Direction: cube.Clockwise})
	if got != want {
		t.Errorf("replayed state differs:\n%s\nwant:\n%s", got, want)
	}
}

func TestCreateBatchAndCount(t *testing.T) {
	db := openTestDB(t)
	id, _ := NewSessionRepository(db).Create("gocube", "")
	repo := NewTurnRepository(db)

	turns, _ := cube.ParseTurns("F F' B")
	if err := repo.CreateBatch(id, 1, time.Now(), turns); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	n, err := repo.Count(id)
	if err != nil || n != 3 {
		t.Errorf("Count = %d, %v", n, err)
	}

	// Duplicate sequence numbers roll back the whole batch
	if err := repo.CreateBatch(id, 3, time.Now(), turns); err == nil {
		t.Error("duplicate seq should fail")
	}
	if n, _ := repo.Count(id); n != 3 {
		t.Errorf("Count after failed batch = %d, want 3", n)
	}
}

func TestDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	id, _ := sessions.Create("apply", "")
	NewTurnRepository(db).Create(id, 1, time.Now(), cube.Turn{Face: cube.U, Direction: cube.Clockwise})

	if err := sessions.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n, _ := NewTurnRepository(db).Count(id); n != 0 {
		t.Errorf("turns left after delete: %d", n)
	}
}

func TestTurnRecordRejectsBadRows(t *testing.T) {
	if _, err := (TurnRecord{Face: "X", Direction: 1}).Turn(); err == nil {
		t.Error("bad face should fail")
	}
	if _, err := (TurnRecord{Face: "U", Direction: 2}).Turn(); err == nil {
		t.Error("bad direction should fail")
	}
}
