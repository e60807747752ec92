package cube

import "fmt"

// Direction is the sense of a quarter turn, seen from outside the face.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "CW"
	case CounterClockwise:
		return "CCW"
	default:
		return "?"
	}
}

// Valid reports whether d is a quarter-turn direction.
func (d Direction) Valid() bool {
	return d == Clockwise || d == CounterClockwise
}

// Inverse returns the opposite direction.
func (d Direction) Inverse() Direction {
	return -d
}

// Rotation is a proper rotation of the grid that maps axes onto axes. It
// takes a cubie's home directions to its current directions.
type Rotation [3][3]int

// Identity is the orientation of every cubie on a solved cube.
var Identity = Rotation{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Mul returns r*o.
func (r Rotation) Mul(o Rotation) Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum := 0
			for k := 0; k < 3; k++ {
				sum += r[i][k] * o[k][j]
			}
			out[i][j] = sum
		}
	}
	return out
}

// Apply rotates v.
func (r Rotation) Apply(v Vec) Vec {
	var out Vec
	for i := 0; i < 3; i++ {
		out[i] = r[i][0]*v[0] + r[i][1]*v[1] + r[i][2]*v[2]
	}
	return out
}

// Transpose returns the inverse rotation.
func (r Rotation) Transpose() Rotation {
	var out Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = r[j][i]
		}
	}
	return out
}

// Valid reports whether r is one of the 24 cube rotations: a signed
// permutation matrix with determinant +1.
func (r Rotation) Valid() bool {
	var colUsed [3]bool
	for i := 0; i < 3; i++ {
		nonzero := 0
		for j := 0; j < 3; j++ {
			switch r[i][j] {
			case 0:
			case 1, -1:
				nonzero++
				if colUsed[j] {
					return false
				}
				colUsed[j] = true
			default:
				return false
			}
		}
		if nonzero != 1 {
			return false
		}
	}
	det := r[0][0]*(r[1][1]*r[2][2]-r[1][2]*r[2][1]) -
		r[0][1]*(r[1][0]*r[2][2]-r[1][2]*r[2][0]) +
		r[0][2]*(r[1][0]*r[2][1]-r[1][1]*r[2][0])
	return det == 1
}

// quarter returns the rotation by sign*90 degrees about the positive axis,
// counter-clockwise when looking down the axis toward the origin.
func quarter(a Axis, sign int) Rotation {
	s := sign
	switch a {
	case X:
		return Rotation{{1, 0, 0}, {0, 0, -s}, {0, s, 0}}
	case Y:
		return Rotation{{0, 0, s}, {0, 1, 0}, {-s, 0, 0}}
	default:
		return Rotation{{0, -s, 0}, {s, 0, 0}, {0, 0, 1}}
	}
}

// TurnRotation returns the rotation applied to the slots of face f by a
// quarter turn in direction d. Clockwise seen from outside is -90 degrees
// about the outward normal.
func TurnRotation(f Face, d Direction) Rotation {
	a := f.Axis()
	return quarter(a, -int(d)*normals[f][a])
}

// Apply returns the state after turning face f a quarter turn in direction
// d. Every occupant of the face moves to the image of its slot and its
// orientation is composed with the turn. The input is not modified.
//
// Apply panics on an invalid face or direction; callers validate at the
// boundary.
func Apply(s State, f Face, d Direction) State {
	if !f.Valid() || !d.Valid() {
		panic(fmt.Sprintf("cube: invalid turn face=%d direction=%d", f, d))
	}

	m := TurnRotation(f, d)
	next := s
	for _, slot := range faceSlots[f] {
		dst := SlotFromOffset(m.Apply(slot.Offset()))
		next.Cubies[dst] = s.Cubies[slot]
		next.Orient[dst] = m.Mul(s.Orient[slot])
	}
	return next
}

// ApplyTurn applies a single Turn.
func ApplyTurn(s State, t Turn) State {
	return Apply(s, t.Face, t.Direction)
}

// ApplyTurns applies a sequence of turns in order.
func ApplyTurns(s State, turns ...Turn) State {
	for _, t := range turns {
		s = Apply(s, t.Face, t.Direction)
	}
	return s
}
