package cube

import (
	"fmt"
	"strings"
)

// State is the logical cube: which cubie occupies each slot and how it is
// turned. State is a value; Apply returns a new one.
type State struct {
	// Cubies[slot] = identity of the cubie in that slot
	Cubies [NumSlots]Slot
	// Orient[slot] = orientation of the cubie in that slot
	Orient [NumSlots]Rotation
}

// Solved returns the state with every cubie at home.
func Solved() State {
	var s State
	for i := Slot(0); i < NumSlots; i++ {
		s.Cubies[i] = i
		s.Orient[i] = Identity
	}
	return s
}

// Validate checks that the slot table is a permutation of 0..26 and that
// every orientation is a cube rotation.
func (s State) Validate() error {
	var seen [NumSlots]bool
	for slot, id := range s.Cubies {
		if !id.Valid() {
			return fmt.Errorf("%w: slot %d holds %d", ErrNotPermutation, slot, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: cubie %d appears twice", ErrNotPermutation, id)
		}
		seen[id] = true
	}
	for slot, r := range s.Orient {
		if !r.Valid() {
			return fmt.Errorf("%w: slot %d", ErrBadOrientation, slot)
		}
	}
	return nil
}

// Occupant returns the identity of the cubie in slot.
func (s State) Occupant(slot Slot) Slot {
	return s.Cubies[slot]
}

// FaceColors returns the colors the cubie in slot shows toward each physical
// direction.
func (s State) FaceColors(slot Slot) [6]Color {
	var out [6]Color
	id := s.Cubies[slot]
	inv := s.Orient[slot].Transpose()
	for _, f := range Faces {
		home, _ := FaceOf(inv.Apply(normals[f]))
		out[f] = stickers[id][home]
	}
	return out
}

// Facelet returns the color at index i (0..8) of face f.
func (s State) Facelet(f Face, i int) Color {
	return s.FaceColors(faceSlots[f][i])[f]
}

// FaceletsOf returns the nine colors of a face in facelet order.
func (s State) FaceletsOf(f Face) [9]Color {
	var out [9]Color
	for i := range out {
		out[i] = s.Facelet(f, i)
	}
	return out
}

// IsSolved reports whether every face shows a single color. Centers may be
// turned in place.
func (s State) IsSolved() bool {
	for _, f := range Faces {
		want := s.Facelet(f, 4)
		for i := 0; i < 9; i++ {
			if s.Facelet(f, i) != want {
				return false
			}
		}
	}
	return true
}

// IsHome reports whether every cubie is in its home slot with its home
// orientation.
func (s State) IsHome() bool {
	return s == Solved()
}

// Equal reports whether both states hold the same cubies in the same
// orientations.
func (s State) Equal(o State) bool {
	return s == o
}

// Displaced returns the slots whose occupant or orientation differs from o.
func (s State) Displaced(o State) []Slot {
	var out []Slot
	for i := Slot(0); i < NumSlots; i++ {
		if s.Cubies[i] != o.Cubies[i] || s.Orient[i] != o.Orient[i] {
			out = append(out, i)
		}
	}
	return out
}

// String returns the unfolded net:
//
//	      U
//	L F R B
//	      D
func (s State) String() string {
	var b strings.Builder

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(s.Facelet(U, row*3+col).String() + " ")
		}
		b.WriteString("\n")
	}

	for row := 0; row < 3; row++ {
		for _, face := range []Face{L, F, R, B} {
			for col := 0; col < 3; col++ {
				b.WriteString(s.Facelet(face, row*3+col).String() + " ")
			}
		}
		b.WriteString("\n")
	}

	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(s.Facelet(D, row*3+col).String() + " ")
		}
		b.WriteString("\n")
	}

	return b.String()
}
