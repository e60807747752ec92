// Package cubelet provides a Rubik's cube state engine: the logical state of
// a 3x3x3 cube, the quarter-turn permutation over its 27 slots, and a turn
// sequencer that animates one face turn at a time and commits it exactly
// once.
//
// # Features
//
//   - Slot/cubie model with tracked cubie orientation
//   - Face turns derived from one handedness rule
//   - Time-driven turn animation with a fixed angular speed
//   - Admission control: one turn in flight, reject or queue the rest
//   - Renderer snapshots (slot occupants, turning face, angle, axis)
//
// # Quick Start
//
//	engine := cubelet.New()
//
//	engine.OnCommit(func(c cubelet.Commit) {
//	    fmt.Println("Committed:", c.Turn)
//	})
//
//	if adm, err := engine.RequestTurn(cubelet.F); err == nil {
//	    fmt.Println(adm) // accepted
//	}
//
//	// Once per frame:
//	engine.Advance(16 * time.Millisecond)
//	snap := engine.Snapshot()
//
// # Pure State
//
// State values can be turned directly without animation:
//
//	s := cubelet.Solved()
//	s = cubelet.ApplyTurns(s, cubelet.SexyMove...)
//	fmt.Println(s.IsSolved())
//
// # Handedness
//
// Clockwise means clockwise as seen from outside the face, which is a
// rotation of -90 degrees about the face's outward normal. Animation angles
// use the same axis and sign.
package cubelet

import (
	"github.com/SeamusWaldron/cubelet/internal/cube"
)

type (
	// Face is one of the six outer faces.
	Face = cube.Face
	// Direction is Clockwise or CounterClockwise, seen from outside.
	Direction = cube.Direction
	// Turn is a quarter turn of one face.
	Turn = cube.Turn
	// State is the slot to cubie assignment plus cubie orientations.
	State = cube.State
	// Slot is a grid cell 0..26.
	Slot = cube.Slot
	// Color is a sticker color.
	Color = cube.Color
)

// Face constants.
const (
	FaceU = cube.U
	FaceD = cube.D
	FaceF = cube.F
	FaceB = cube.B
	FaceR = cube.R
	FaceL = cube.L
)

// Direction constants.
const (
	Clockwise        = cube.Clockwise
	CounterClockwise = cube.CounterClockwise
)

// Solved returns a solved cube state.
func Solved() State {
	return cube.Solved()
}

// Apply returns s after one quarter turn. It panics on an invalid turn; use
// Turn.Validate at input boundaries.
func Apply(s State, t Turn) State {
	return cube.ApplyTurn(s, t)
}

// ApplyTurns returns s after the turns, in order.
func ApplyTurns(s State, turns ...Turn) State {
	return cube.ApplyTurns(s, turns...)
}

// ParseTurns parses notation such as "R U R' U'". Half turns expand to two
// quarter turns.
func ParseTurns(s string) ([]Turn, error) {
	return cube.ParseTurns(s)
}

// FormatTurns formats turns as notation.
func FormatTurns(turns []Turn) string {
	return cube.FormatTurns(turns)
}

// SlotsOf returns the nine slots of a face, row-major as seen from outside.
func SlotsOf(f Face) [9]Slot {
	return cube.SlotsOf(f)
}
