package cli

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SeamusWaldron/cubelet"
	"github.com/SeamusWaldron/cubelet/internal/cube"
	"github.com/SeamusWaldron/cubelet/internal/notation"
	"github.com/SeamusWaldron/cubelet/internal/storage"
)

// Messages
type tickMsg time.Time
type cubeTurnMsg struct{ turn cube.Turn }
type batteryMsg int

// Number keys pick a face in this order.
var selectKeys = map[string]cube.Face{
	"1": cube.F,
	"2": cube.B,
	"3": cube.U,
	"4": cube.D,
	"5": cube.L,
	"6": cube.R,
}

type requested struct {
	turn cube.Turn
	undo bool
}

// cubeModel drives an engine from the keyboard and, optionally, a smart
// cube feeding turns through a channel.
type cubeModel struct {
	engine  *cubelet.Engine
	journal *storage.Journal
	logger  *slog.Logger
	tick    time.Duration
	last    time.Time

	// Input
	selected  cube.Face
	turns     <-chan cube.Turn
	device    string
	battery   int
	admission string

	// Undo: committed turns not yet undone, and requested turns in commit
	// order so an undo's own commit is not pushed back.
	undoable []cube.Turn
	inflight []requested

	// Smart-cube turns the engine refused; the mirror is out of sync.
	dropped int

	err      error
	quitting bool
}

func newCubeModel(engine *cubelet.Engine, journal *storage.Journal, logger *slog.Logger, tick time.Duration) *cubeModel {
	if tick <= 0 {
		tick = 16 * time.Millisecond
	}
	engine.OnSolved(func() { logger.Info("cube solved") })
	return &cubeModel{
		engine:   engine,
		journal:  journal,
		logger:   logger,
		tick:     tick,
		selected: cube.F,
		battery:  -1,
	}
}

func (m *cubeModel) Init() tea.Cmd {
	m.last = time.Now()
	if m.turns != nil {
		return tea.Batch(m.tickCmd(), m.listenForTurns())
	}
	return m.tickCmd()
}

func (m *cubeModel) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *cubeModel) listenForTurns() tea.Cmd {
	return func() tea.Msg {
		t, ok := <-m.turns
		if !ok {
			return nil
		}
		return cubeTurnMsg{turn: t}
	}
}

// request submits a turn and remembers how it was admitted.
func (m *cubeModel) request(t cube.Turn, undo bool) cubelet.Admission {
	adm, err := m.engine.RequestTurn(t)
	if err != nil {
		m.err = err
		return adm
	}
	if adm != cubelet.Ignored {
		m.inflight = append(m.inflight, requested{turn: t, undo: undo})
	}
	m.admission = fmt.Sprintf("%s (%s) %s", t.Notation(), notation.Describe(t), adm)
	m.logger.Info("turn requested", "turn", t.Notation(), "admission", adm.String())
	return adm
}

// committed updates the undo stack after the engine commits a turn.
func (m *cubeModel) committed(c cubelet.Commit) {
	if len(m.inflight) == 0 {
		return
	}
	r := m.inflight[0]
	m.inflight = m.inflight[1:]
	if !r.undo {
		m.undoable = append(m.undoable, r.turn)
	}
}

// undo reverts the most recent committed turn that was not undone yet.
func (m *cubeModel) undo() {
	n := len(m.undoable)
	if n == 0 {
		return
	}
	if adm := m.request(m.undoable[n-1].Inverse(), true); adm != cubelet.Ignored {
		m.undoable = m.undoable[:n-1]
	}
}

// reset returns the engine to solved and marks the journal so replay starts
// over. A smart cube cannot be reset from here, so the key is refused.
func (m *cubeModel) reset() {
	if m.turns != nil {
		m.admission = "reset disabled while mirroring a smart cube"
		return
	}
	if err := m.engine.Reset(); err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.admission = "reset"
	m.undoable = nil
	m.inflight = nil

	if m.journal != nil {
		if err := m.journal.RecordReset(m.engine.Commits(), time.Now()); err != nil {
			m.err = err
		}
	}
}

func (m *cubeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "1", "2", "3", "4", "5", "6":
			m.selected = selectKeys[key]

		case "left":
			m.request(cube.Turn{Face: m.selected, Direction: cube.CounterClockwise}, false)

		case "right":
			m.request(cube.Turn{Face: m.selected, Direction: cube.Clockwise}, false)

		case "u", "d", "f", "b", "l", "r", "U", "D", "F", "B", "L", "R":
			face, _ := cube.ParseFace(strings.ToUpper(key))
			dir := cube.Clockwise
			if key == strings.ToUpper(key) {
				dir = cube.CounterClockwise
			}
			m.request(cube.Turn{Face: face, Direction: dir}, false)

		case "z":
			m.undo()

		case "0":
			m.reset()
		}

	case tickMsg:
		now := time.Time(msg)
		dt := now.Sub(m.last)
		m.last = now
		if c, ok := m.engine.Advance(dt); ok {
			m.committed(c)
			m.logger.Info("turn committed", "seq", c.Seq, "turn", c.Turn.Notation())
		}
		return m, m.tickCmd()

	case cubeTurnMsg:
		if m.request(msg.turn, false) == cubelet.Ignored {
			m.dropped++
			m.logger.Warn("smart cube turn dropped", "turn", msg.turn.Notation(), "dropped", m.dropped)
		}
		return m, m.listenForTurns()

	case batteryMsg:
		m.battery = int(msg)
	}

	return m, nil
}

func (m *cubeModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	snap := m.engine.Snapshot()

	b.WriteString(titleStyle.Render("cubelet"))
	b.WriteString("\n")

	status := "Input: keyboard"
	if m.device != "" {
		status = fmt.Sprintf("Input: %s + keyboard", m.device)
		if m.battery >= 0 {
			status += fmt.Sprintf(" (Battery: %d%%)", m.battery)
		}
	}
	if m.journal != nil {
		status += fmt.Sprintf("  Session: %s", m.journal.SessionID()[:8])
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n\n")

	b.WriteString(renderNet(snap.State, m.selected, true))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Selected: %s   ", turnStyle.Render(m.selected.Name())))
	if snap.Turning {
		b.WriteString(fmt.Sprintf("Turning: %s %s %5.1f°",
			turnStyle.Render(snap.Turn.Notation()), progressBar(snap.Progress, 12), snap.Angle))
		if snap.Pending > 0 {
			b.WriteString(fmt.Sprintf(" (+%d queued)", snap.Pending))
		}
	} else {
		b.WriteString(statusStyle.Render("Idle"))
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Commits: %d", snap.Commits))
	if m.admission != "" {
		b.WriteString(statusStyle.Render("   Last: " + m.admission))
	}
	b.WriteString("\n")

	if snap.State.IsSolved() {
		b.WriteString(moveStyle.Render("SOLVED"))
	} else {
		changed := len(snap.State.Displaced(cube.Solved()))
		b.WriteString(statusStyle.Render(fmt.Sprintf("Scrambled (%d of 27 slots changed)", changed)))
	}
	b.WriteString("\n")

	if recent := recentTurns(m.engine.History(), 20); recent != "" {
		b.WriteString(moveStyle.Render(recent))
		b.WriteString("\n")
	}

	if m.dropped > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("%d cube turns dropped: display out of sync with the cube", m.dropped)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("1-6 select (F B U D L R) | ←/→ turn | f b u d l r (shift=prime) | z undo | 0 reset | q quit"))
	b.WriteString("\n")

	return b.String()
}

func progressBar(p float64, width int) string {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	filled := int(p * float64(width))
	return "[" + strings.Repeat("▓", filled) + strings.Repeat("░", width-filled) + "]"
}
