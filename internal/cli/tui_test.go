package cli

import (
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cubelet"
	"github.com/SeamusWaldron/cubelet/internal/cube"
	"github.com/SeamusWaldron/cubelet/internal/storage"
)

func newTestModel(opts ...cubelet.Option) *cubeModel {
	engine := cubelet.New(opts...)
	m := newCubeModel(engine, nil, slog.New(slog.DiscardHandler), 10*time.Millisecond)
	m.Init()
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// settle feeds ticks until the engine is idle.
func settle(m *cubeModel) {
	now := m.last
	for i := 0; i < 1000 && m.engine.Turning(); i++ {
		now = now.Add(100 * time.Millisecond)
		m.Update(tickMsg(now))
	}
}

func TestSelectAndArrowTurns(t *testing.T) {
	m := newTestModel()

	m.Update(key("6")) // Right
	if m.selected != cube.R {
		t.Fatalf("selected = %v, want R", m.selected)
	}
	m.Update(key("right"))
	settle(m)

	m.Update(key("3")) // Up
	m.Update(key("left"))
	settle(m)

	want := cubelet.ApplyTurns(cubelet.Solved(), cubelet.R, cubelet.UPrime)
	if m.engine.State() != want {
		t.Errorf("state after R U' differs:\n%s", m.engine.State())
	}
}

func TestLetterKeysAndShift(t *testing.T) {
	m := newTestModel()

	m.Update(key("f"))
	settle(m)
	m.Update(key("F"))
	settle(m)

	h := m.engine.History()
	if len(h) != 2 || h[0] != cubelet.F || h[1] != cubelet.FPrime {
		t.Errorf("history = %v, want F F'", h)
	}
	if !m.engine.IsSolved() {
		t.Error("F F' should be solved")
	}
}

func TestBusyKeyIsIgnored(t *testing.T) {
	m := newTestModel()

	m.Update(key("r"))
	m.Update(key("u"))
	if !strings.Contains(m.admission, "ignored") {
		t.Errorf("admission = %q, want ignored", m.admission)
	}
	settle(m)
	if len(m.engine.History()) != 1 {
		t.Errorf("history = %v, want only R", m.engine.History())
	}
}

func TestUndoAndReset(t *testing.T) {
	m := newTestModel()

	m.Update(key("l"))
	settle(m)
	m.Update(key("z"))
	settle(m)
	if !m.engine.IsSolved() {
		t.Error("undo should restore solved")
	}

	m.Update(key("b"))
	settle(m)
	m.Update(key("0"))
	if m.engine.State() != cubelet.Solved() || len(m.engine.History()) != 0 {
		t.Error("reset should restore solved and clear history")
	}
}

func TestUndoTwiceUndoesTwoTurns(t *testing.T) {
	m := newTestModel()

	m.Update(key("l"))
	settle(m)
	m.Update(key("b"))
	settle(m)

	m.Update(key("z"))
	settle(m)
	if m.engine.State() != cubelet.ApplyTurns(cubelet.Solved(), cubelet.L) {
		t.Fatalf("first undo should leave only L:\n%s", m.engine.State())
	}
	m.Update(key("z"))
	settle(m)
	if !m.engine.IsSolved() {
		t.Errorf("second undo should restore solved:\n%s", m.engine.State())
	}

	m.Update(key("z"))
	if m.engine.Turning() {
		t.Error("nothing left to undo, no turn should start")
	}
}

func TestResetIsJournaledForReplay(t *testing.T) {
	db, err := storage.OpenAndMigrate(filepath.Join(t.TempDir(), "cubelet.db"))
	if err != nil {
		t.Fatalf("OpenAndMigrate: %v", err)
	}
	defer db.Close()

	logger := slog.New(slog.DiscardHandler)
	journal, err := storage.StartJournal(db, "keyboard", "", logger)
	if err != nil {
		t.Fatalf("StartJournal: %v", err)
	}
	defer journal.Close()

	engine := cubelet.New()
	journalCommits(engine, journal, logger)
	m := newCubeModel(engine, journal, logger, 10*time.Millisecond)
	m.Init()

	m.Update(key("b"))
	settle(m)
	m.Update(key("0"))
	m.Update(key("r"))
	settle(m)

	if m.err != nil {
		t.Fatalf("unexpected error: %v", m.err)
	}
	state, turns, err := storage.Replay(db, journal.SessionID())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if state != engine.State() {
		t.Errorf("replayed state differs from engine:\n%s\nengine:\n%s", state, engine.State())
	}
	if cubelet.FormatTurns(turns) != "R" {
		t.Errorf("replayed turns = %q, want R", cubelet.FormatTurns(turns))
	}
}

func TestResetRefusedWhileMirroring(t *testing.T) {
	m := newTestModel(cubelet.WithPolicy(cubelet.PolicyQueue))
	m.turns = make(chan cube.Turn)

	m.Update(cubeTurnMsg{turn: cubelet.B})
	settle(m)
	m.Update(key("0"))

	if m.engine.IsSolved() {
		t.Error("reset should not change the mirrored state")
	}
	if !strings.Contains(m.admission, "disabled") {
		t.Errorf("admission = %q, want reset refusal", m.admission)
	}
}

func TestDroppedCubeTurnsAreShown(t *testing.T) {
	m := newTestModel(cubelet.WithPolicy(cubelet.PolicyQueue), cubelet.WithQueueDepth(1))

	for _, turn := range []cube.Turn{cubelet.R, cubelet.U, cubelet.F} {
		m.Update(cubeTurnMsg{turn: turn})
	}
	if m.dropped != 1 {
		t.Errorf("dropped = %d, want 1", m.dropped)
	}
	if !strings.Contains(m.View(), "1 cube turns dropped") {
		t.Errorf("view should report dropped turns:\n%s", m.View())
	}
}

func TestMirrorKeepsUpWithFastSolve(t *testing.T) {
	// Same options as the connect command.
	m := newTestModel(
		cubelet.WithPolicy(cubelet.PolicyQueue),
		cubelet.WithUnboundedQueue(),
		cubelet.WithCatchUp(true),
	)

	var turns []cube.Turn
	for i := 0; i < 20; i++ {
		turns = append(turns, cubelet.SexyMove...)
	}
	for _, turn := range turns {
		m.Update(cubeTurnMsg{turn: turn})
	}
	settle(m)

	if m.dropped != 0 {
		t.Errorf("dropped = %d, want 0", m.dropped)
	}
	if m.engine.Commits() != uint64(len(turns)) {
		t.Errorf("committed %d of %d turns", m.engine.Commits(), len(turns))
	}
	if !m.engine.IsSolved() {
		t.Error("(R U R' U') x 20 should be solved")
	}
}

func TestSmartCubeTurnsAreQueued(t *testing.T) {
	m := newTestModel(cubelet.WithPolicy(cubelet.PolicyQueue))

	for _, turn := range cubelet.SexyMove {
		m.Update(cubeTurnMsg{turn: turn})
	}
	if m.engine.Pending() != 3 {
		t.Errorf("pending = %d, want 3", m.engine.Pending())
	}
	settle(m)
	if m.engine.State() != cubelet.ApplyTurns(cubelet.Solved(), cubelet.SexyMove...) {
		t.Error("queued smart-cube turns should all commit in order")
	}
}

func TestViewShowsTurnInFlight(t *testing.T) {
	m := newTestModel()
	m.Update(key("d"))
	m.Update(tickMsg(m.last.Add(time.Second)))

	view := m.View()
	if !strings.Contains(view, "Turning") || !strings.Contains(view, "D") {
		t.Errorf("view should show the turning face:\n%s", view)
	}

	m.Update(key("q"))
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestRecentTurns(t *testing.T) {
	turns, _ := cubelet.ParseTurns("R U R' U' F")
	if got := recentTurns(turns, 10); got != "R U R' U' F" {
		t.Errorf("recentTurns = %q", got)
	}
	if got := recentTurns(turns, 2); got != "... U' F" {
		t.Errorf("recentTurns = %q", got)
	}
	if recentTurns(nil, 5) != "" {
		t.Error("no turns should render empty")
	}
}

func TestProgressBar(t *testing.T) {
	if got := progressBar(0.5, 4); got != "[▓▓░░]" {
		t.Errorf("progressBar(0.5) = %q", got)
	}
	if got := progressBar(2, 2); got != "[▓▓]" {
		t.Errorf("progressBar(2) = %q", got)
	}
}

func TestRecentTurnsFoldsRuns(t *testing.T) {
	turns, _ := cubelet.ParseTurns("R2 U U U")
	if got := recentTurns(turns, 10); got != "R2 U'" {
		t.Errorf("recentTurns = %q, want R2 U'", got)
	}
}

func TestViewCountsChangedSlots(t *testing.T) {
	m := newTestModel()
	m.Update(key("u"))
	settle(m)

	if view := m.View(); !strings.Contains(view, "9 of 27 slots changed") {
		t.Errorf("view should count changed slots:\n%s", view)
	}
}
