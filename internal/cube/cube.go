// Package cube provides a 3x3x3 cube model: 27 fixed slots holding movable
// cubies, and the pure face-turn permutation over them.
package cube

import (
	"errors"
	"fmt"
)

// Errors returned by boundary validation.
var (
	ErrInvalidFace      = errors.New("cube: invalid face")
	ErrInvalidDirection = errors.New("cube: invalid direction")
	ErrInvalidSlot      = errors.New("cube: invalid slot")
	ErrInvalidNotation  = errors.New("cube: invalid turn notation")
	ErrNotPermutation   = errors.New("cube: slot table is not a permutation")
	ErrBadOrientation   = errors.New("cube: orientation is not a cube rotation")
)

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Down face when solved
	Yellow Color = 1 // Up face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
	None   Color = 6 // Interior face, never visible
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	case None:
		return "."
	default:
		return "?"
	}
}

// Name returns the lower-case color name.
func (c Color) Name() string {
	switch c {
	case White:
		return "white"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	case Blue:
		return "blue"
	case Red:
		return "red"
	case Orange:
		return "orange"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// Axis is one of the three grid axes.
type Axis int

const (
	X Axis = iota // Left to Right
	Y             // Down to Up
	Z             // Back to Front
)

func (a Axis) String() string {
	switch a {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	default:
		return "?"
	}
}

// Face represents one of the six outer faces. A Face doubles as a physical
// direction: the outward normal of that face.
type Face int

const (
	U Face = 0 // Up
	D Face = 1 // Down
	F Face = 2 // Front
	B Face = 3 // Back
	R Face = 4 // Right
	L Face = 5 // Left
)

// Faces lists all faces in index order.
var Faces = [6]Face{U, D, F, B, R, L}

func (f Face) String() string {
	switch f {
	case U:
		return "U"
	case D:
		return "D"
	case F:
		return "F"
	case B:
		return "B"
	case R:
		return "R"
	case L:
		return "L"
	default:
		return "?"
	}
}

// Name returns the full face name.
func (f Face) Name() string {
	switch f {
	case U:
		return "Up"
	case D:
		return "Down"
	case F:
		return "Front"
	case B:
		return "Back"
	case R:
		return "Right"
	case L:
		return "Left"
	default:
		return "Unknown"
	}
}

// Valid reports whether f is one of the six faces.
func (f Face) Valid() bool {
	return f >= U && f <= L
}

var normals = [6]Vec{
	U: {0, 1, 0},
	D: {0, -1, 0},
	F: {0, 0, 1},
	B: {0, 0, -1},
	R: {1, 0, 0},
	L: {-1, 0, 0},
}

// Normal returns the outward unit vector of the face.
func (f Face) Normal() Vec {
	return normals[f]
}

// Axis returns the grid axis the face is perpendicular to.
func (f Face) Axis() Axis {
	switch f {
	case R, L:
		return X
	case U, D:
		return Y
	default:
		return Z
	}
}

// Opposite returns the parallel face on the other side of the cube.
func (f Face) Opposite() Face {
	switch f {
	case U:
		return D
	case D:
		return U
	case F:
		return B
	case B:
		return F
	case R:
		return L
	default:
		return R
	}
}

// HomeColor returns the color a face shows when the cube is solved.
func (f Face) HomeColor() Color {
	switch f {
	case U:
		return Yellow
	case D:
		return White
	case F:
		return Green
	case B:
		return Blue
	case R:
		return Red
	case L:
		return Orange
	default:
		return None
	}
}

// FaceOf returns the face whose normal is v.
func FaceOf(v Vec) (Face, bool) {
	for _, f := range Faces {
		if normals[f] == v {
			return f, true
		}
	}
	return 0, false
}

// ParseFace parses a face letter (U D F B R L, either case).
func ParseFace(s string) (Face, error) {
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFace, s)
	}
	switch s[0] {
	case 'U', 'u':
		return U, nil
	case 'D', 'd':
		return D, nil
	case 'F', 'f':
		return F, nil
	case 'B', 'b':
		return B, nil
	case 'R', 'r':
		return R, nil
	case 'L', 'l':
		return L, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFace, s)
}

// Vec is an integer 3-vector used for slot offsets and face normals.
type Vec [3]int

// Slot is a fixed grid cell, 0..26.
type Slot int

const (
	// NumSlots is the number of grid cells.
	NumSlots = 27

	// CoreSlot is the hidden center of the cube.
	CoreSlot Slot = 13
)

// Valid reports whether s is in range.
func (s Slot) Valid() bool {
	return s >= 0 && s < NumSlots
}

// SlotAt returns the slot at grid coordinates, each in 0..2.
func SlotAt(x, y, z int) Slot {
	return Slot(x*9 + y*3 + z)
}

// Coords returns the grid coordinates of the slot.
func (s Slot) Coords() (x, y, z int) {
	i := int(s)
	return i / 9, (i / 3) % 3, i % 3
}

// Offset returns the slot position relative to the core, each component in
// -1..1.
func (s Slot) Offset() Vec {
	x, y, z := s.Coords()
	return Vec{x - 1, y - 1, z - 1}
}

// SlotFromOffset is the inverse of Offset.
func SlotFromOffset(v Vec) Slot {
	return SlotAt(v[0]+1, v[1]+1, v[2]+1)
}

// Kind classifies a cubie by its number of stickers.
type Kind int

const (
	Core   Kind = 0
	Center Kind = 1
	Edge   Kind = 2
	Corner Kind = 3
)

func (k Kind) String() string {
	switch k {
	case Core:
		return "core"
	case Center:
		return "center"
	case Edge:
		return "edge"
	case Corner:
		return "corner"
	default:
		return "unknown"
	}
}

// Kind returns the cubie kind that lives in this slot when solved.
func (s Slot) Kind() Kind {
	n := 0
	for _, c := range s.Offset() {
		if c != 0 {
			n++
		}
	}
	return Kind(n)
}

// stickers[slot][face] is the home color of cubie slot on its face-ward side.
var stickers [NumSlots][6]Color

func init() {
	for s := Slot(0); s < NumSlots; s++ {
		off := s.Offset()
		for _, f := range Faces {
			stickers[s][f] = None
			n := normals[f]
			a := f.Axis()
			if off[a] != 0 && off[a] == n[a] {
				stickers[s][f] = f.HomeColor()
			}
		}
	}
}

// Stickers returns the home color table of the cubie whose identity is id,
// indexed by home face direction. Faces pointing inward are None.
func Stickers(id Slot) [6]Color {
	return stickers[id]
}
