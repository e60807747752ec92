// Package notation formats turn histories for people: runs of the same face
// are folded into half turns and each turn can be described in words.
package notation

import (
	"strings"

	"github.com/SeamusWaldron/cubelet/internal/cube"
)

// Move is a run of same-face quarter turns folded into one move.
// Quarters is 1 (clockwise), 2 (half turn) or -1 (counter-clockwise).
type Move struct {
	Face     cube.Face
	Quarters int
}

// Notation returns R, R2 or R'.
func (m Move) Notation() string {
	switch m.Quarters {
	case 2:
		return m.Face.String() + "2"
	case -1:
		return m.Face.String() + "'"
	default:
		return m.Face.String()
	}
}

// Fold merges adjacent same-face turns. R R becomes R2, R R R becomes R',
// and R R R R cancels out.
func Fold(turns []cube.Turn) []Move {
	var out []Move
	for _, t := range turns {
		if n := len(out); n > 0 && out[n-1].Face == t.Face {
			q := normalize(out[n-1].Quarters + int(t.Direction))
			if q == 0 {
				out = out[:n-1]
			} else {
				out[n-1].Quarters = q
			}
			continue
		}
		out = append(out, Move{Face: t.Face, Quarters: int(t.Direction)})
	}
	return out
}

// normalize maps a quarter count to -1, 0, 1 or 2.
func normalize(q int) int {
	q = ((q % 4) + 4) % 4
	if q == 3 {
		return -1
	}
	return q
}

// Compact formats turns with same-face runs folded.
func Compact(turns []cube.Turn) string {
	moves := Fold(turns)
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}
	return strings.Join(parts, " ")
}

// Describe returns a plain-language description of a turn, as seen holding
// the cube with the front face toward you.
func Describe(t cube.Turn) string {
	cw := t.Direction == cube.Clockwise
	pick := func(a, b string) string {
		if cw {
			return a
		}
		return b
	}

	switch t.Face {
	case cube.R:
		return pick("R up", "R down")
	case cube.L:
		return pick("L down", "L up")
	case cube.U:
		return pick("Top rotate left", "Top rotate right")
	case cube.D:
		return pick("Bottom rotate right", "Bottom rotate left")
	case cube.F:
		return pick("Front clockwise", "Front anti-clockwise")
	case cube.B:
		return pick("Back clockwise", "Back anti-clockwise")
	}
	return t.Notation()
}
