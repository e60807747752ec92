package cubelet

import (
	"fmt"
	"sync"
	"time"

	"github.com/SeamusWaldron/cubelet/internal/animation"
	"github.com/SeamusWaldron/cubelet/internal/cube"
)

// MaxCatchUp bounds the animation speedup applied under WithCatchUp.
const MaxCatchUp = 16

// Admission is the outcome of a turn request.
type Admission int

const (
	// Accepted means the turn started animating.
	Accepted Admission = iota
	// Queued means the turn will start after the ones ahead of it.
	Queued
	// Ignored means a turn was in flight and the request was dropped.
	Ignored
)

func (a Admission) String() string {
	switch a {
	case Accepted:
		return "accepted"
	case Queued:
		return "queued"
	case Ignored:
		return "ignored"
	default:
		return "unknown"
	}
}

// Commit describes one completed turn.
type Commit struct {
	Seq   uint64    // 1-based commit counter
	Turn  Turn      // The turn that finished
	At    time.Time // When it was committed
	State State     // State after the turn
}

// Snapshot is a consistent view of the engine for one frame.
type Snapshot struct {
	State    State
	Turning  bool
	Turn     Turn     // Turn in flight, valid when Turning
	Slots    [9]Slot  // Slots of the turning face, valid when Turning
	Angle    float64  // Degrees about Axis
	Target   float64  // -90 for clockwise, +90 for counter-clockwise
	Axis     cube.Vec // Outward normal of the turning face
	Progress float64  // 0..1
	Commits  uint64
	Pending  int // Queued turns
}

// Moving reports whether slot belongs to the face currently turning.
func (s Snapshot) Moving(slot Slot) bool {
	if !s.Turning {
		return false
	}
	for _, m := range s.Slots {
		if m == slot {
			return true
		}
	}
	return false
}

// Engine owns a cube state and serializes animated face turns.
//
// At most one turn animates at a time. The state changes only when a turn's
// animation completes, exactly once per turn. One loop should call Advance;
// any goroutine may request turns or take snapshots.
//
//	engine := cubelet.New(cubelet.WithPolicy(cubelet.PolicyQueue))
//	engine.RequestTurn(cubelet.R)
//	for engine.Turning() {
//	    engine.Advance(16 * time.Millisecond)
//	}
type Engine struct {
	mu     sync.RWMutex
	config *config
	clock  *animation.Clock

	state   State
	active  Turn
	queue   []Turn
	history []Turn
	commits uint64

	// Callbacks
	onCommit  func(Commit)
	onSolved  func()
	onIgnored func(Turn)
}

// New creates an engine holding a solved cube.
func New(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	e := &Engine{
		config: cfg,
		clock:  animation.NewClock(cfg.rate, cfg.epsilon),
		state:  cube.Solved(),
	}
	cfg.logger.Debug("engine ready",
		"rate", e.clock.Rate(),
		"epsilon", e.clock.Epsilon(),
		"policy", cfg.policy.String(),
		"queue_depth", cfg.queueDepth,
	)
	return e
}

// OnCommit sets the callback fired after each committed turn.
// The callback runs on the goroutine that called Advance.
func (e *Engine) OnCommit(cb func(Commit)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onCommit = cb
}

// OnSolved sets the callback fired when a commit solves the cube.
func (e *Engine) OnSolved(cb func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onSolved = cb
}

// OnIgnored sets the callback fired when a request is dropped as busy.
func (e *Engine) OnIgnored(cb func(Turn)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onIgnored = cb
}

// RequestTurn asks for a quarter turn. An invalid turn returns an error
// wrapping ErrInvalidTurn. While another turn is in flight the request is
// Ignored, or Queued under PolicyQueue when the queue has room.
func (e *Engine) RequestTurn(t Turn) (Admission, error) {
	if err := t.Validate(); err != nil {
		return Ignored, fmt.Errorf("%w: %w", ErrInvalidTurn, err)
	}

	e.mu.Lock()
	if e.clock.Turning() {
		if e.config.policy == PolicyQueue && (e.config.queueDepth == 0 || len(e.queue) < e.config.queueDepth) {
			e.queue = append(e.queue, t)
			pending := len(e.queue)
			e.mu.Unlock()
			e.config.logger.Debug("turn queued", "turn", t.Notation(), "pending", pending)
			return Queued, nil
		}
		cb := e.onIgnored
		e.mu.Unlock()
		e.config.logger.Debug("turn ignored", "turn", t.Notation(), "policy", e.config.policy.String())
		if cb != nil {
			cb(t)
		}
		return Ignored, nil
	}

	err := e.start(t)
	e.mu.Unlock()
	if err != nil {
		return Ignored, err
	}
	e.config.logger.Debug("turn accepted", "turn", t.Notation())
	return Accepted, nil
}

// start begins animating t. Caller holds e.mu.
func (e *Engine) start(t Turn) error {
	target := animation.QuarterTurn
	if t.Direction == cube.Clockwise {
		target = -target
	}
	if err := e.clock.Start(target); err != nil {
		return fmt.Errorf("starting %s: %w", t.Notation(), err)
	}
	e.active = t
	return nil
}

// Advance moves the animation forward by dt, scaled by the backlog under
// WithCatchUp. When the turn in flight completes, its permutation is
// committed and the commit is returned with true; the next queued turn, if
// any, starts from angle 0.
func (e *Engine) Advance(dt time.Duration) (Commit, bool) {
	e.mu.Lock()
	if e.config.catchUp && len(e.queue) > 0 {
		dt *= time.Duration(min(len(e.queue)+1, MaxCatchUp))
	}
	if !e.clock.Advance(dt) {
		e.mu.Unlock()
		return Commit{}, false
	}

	commit, solved := e.onAnimationComplete()
	onCommit := e.onCommit
	onSolved := e.onSolved
	e.mu.Unlock()

	// Fire callbacks outside the lock
	if onCommit != nil {
		onCommit(commit)
	}
	if solved && onSolved != nil {
		onSolved()
	}

	return commit, true
}

// onAnimationComplete commits the active turn and starts the next queued
// one. Caller holds e.mu.
func (e *Engine) onAnimationComplete() (Commit, bool) {
	wasSolved := e.state.IsSolved()
	e.state = cube.ApplyTurn(e.state, e.active)
	e.commits++

	commit := Commit{
		Seq:   e.commits,
		Turn:  e.active,
		At:    e.config.now(),
		State: e.state,
	}
	if e.config.moveHistory {
		e.history = append(e.history, e.active)
	}
	e.config.logger.Debug("turn committed", "seq", commit.Seq, "turn", commit.Turn.Notation())

	if len(e.queue) > 0 {
		next := e.queue[0]
		e.queue = e.queue[1:]
		if err := e.start(next); err != nil {
			e.config.logger.Error("queued turn failed to start", "turn", next.Notation(), "error", err)
		}
	}

	return commit, !wasSolved && e.state.IsSolved()
}

// Settle runs the turn in flight and every queued turn to completion
// immediately and returns their commits.
func (e *Engine) Settle() []Commit {
	var commits []Commit
	for {
		e.mu.RLock()
		turning := e.clock.Turning()
		remaining := e.clock.Remaining()
		e.mu.RUnlock()

		if !turning {
			return commits
		}
		if c, ok := e.Advance(remaining + time.Millisecond); ok {
			commits = append(commits, c)
		}
	}
}

// Snapshot returns the state and animation for rendering one frame.
func (e *Engine) Snapshot() Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := Snapshot{
		State:   e.state,
		Commits: e.commits,
		Pending: len(e.queue),
	}
	if e.clock.Turning() {
		snap.Turning = true
		snap.Turn = e.active
		snap.Slots = cube.SlotsOf(e.active.Face)
		snap.Angle = e.clock.Angle()
		snap.Target = e.clock.Target()
		snap.Axis = e.active.Face.Normal()
		snap.Progress = e.clock.Progress()
	}
	return snap
}

// State returns the committed cube state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// IsSolved returns true if the committed state is solved.
func (e *Engine) IsSolved() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state.IsSolved()
}

// Turning reports whether a turn is in flight.
func (e *Engine) Turning() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.clock.Turning()
}

// Pending returns the number of queued turns.
func (e *Engine) Pending() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.queue)
}

// Commits returns the number of committed turns.
func (e *Engine) Commits() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.commits
}

// History returns the committed turns in order.
// Returns nil if move history is disabled.
func (e *Engine) History() []Turn {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.config.moveHistory {
		return nil
	}

	out := make([]Turn, len(e.history))
	copy(out, e.history)
	return out
}

// Reset restores the solved state and clears history and queue.
// It fails with ErrBusy while a turn is in flight.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clock.Turning() {
		return ErrBusy
	}
	e.state = cube.Solved()
	e.queue = nil
	e.history = nil
	return nil
}

// Load replaces the state, for example with one rebuilt from a journal.
// It fails with ErrBusy while a turn is in flight and with ErrInvalidState
// when s is not a valid cube.
func (e *Engine) Load(s State) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.clock.Turning() {
		return ErrBusy
	}
	e.state = s
	return nil
}

// Policy returns the configured busy policy.
func (e *Engine) Policy() Policy {
	return e.config.policy
}
