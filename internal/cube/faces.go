package cube

// Each face is read as seen from outside, looking at the core. Facelet
// indices run row-major from the top-left corner:
//
//	0 1 2
//	3 4 5
//	6 7 8
//
// Index 4 is the face center.
type viewFrame struct {
	right Vec
	up    Vec
}

// right x up equals the outward normal for every frame.
var viewFrames = [6]viewFrame{
	U: {right: Vec{1, 0, 0}, up: Vec{0, 0, -1}},
	D: {right: Vec{1, 0, 0}, up: Vec{0, 0, 1}},
	F: {right: Vec{1, 0, 0}, up: Vec{0, 1, 0}},
	B: {right: Vec{-1, 0, 0}, up: Vec{0, 1, 0}},
	R: {right: Vec{0, 0, -1}, up: Vec{0, 1, 0}},
	L: {right: Vec{0, 0, 1}, up: Vec{0, 1, 0}},
}

// ringOrder walks the eight non-center indices clockwise from the top-left
// corner.
var ringOrder = [8]int{0, 1, 2, 5, 8, 7, 6, 3}

var faceSlots [6][9]Slot

func init() {
	for _, f := range Faces {
		vf := viewFrames[f]
		n := normals[f]
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				var off Vec
				for i := 0; i < 3; i++ {
					off[i] = (col-1)*vf.right[i] + (1-row)*vf.up[i] + n[i]
				}
				faceSlots[f][row*3+col] = SlotFromOffset(off)
			}
		}
	}
}

// SlotsOf returns the nine slots of a face in facelet order.
func SlotsOf(f Face) [9]Slot {
	return faceSlots[f]
}

// RingOf returns the eight ring slots of a face, clockwise as seen from
// outside, starting at the top-left corner.
func RingOf(f Face) [8]Slot {
	var ring [8]Slot
	for i, idx := range ringOrder {
		ring[i] = faceSlots[f][idx]
	}
	return ring
}

// CenterOf returns the center slot of a face.
func CenterOf(f Face) Slot {
	return faceSlots[f][4]
}

// AxisOf returns the rotation axis of a face turn.
func AxisOf(f Face) Axis {
	return f.Axis()
}

// Contains reports whether slot s belongs to face f.
func Contains(f Face, s Slot) bool {
	a := f.Axis()
	return s.Offset()[a] == normals[f][a]
}

// FacesOf returns the faces a slot belongs to, in index order.
func FacesOf(s Slot) []Face {
	var faces []Face
	for _, f := range Faces {
		if Contains(f, s) {
			faces = append(faces, f)
		}
	}
	return faces
}
