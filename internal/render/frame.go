// Package render turns an engine snapshot into per-cubie model matrices and
// colors for a 3D renderer.
package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/SeamusWaldron/cubelet"
	"github.com/SeamusWaldron/cubelet/internal/cube"
)

// Options controls cubie placement.
type Options struct {
	CubeSize float32 `json:"cube_size"` // Edge length of one cubie
	Gap      float32 `json:"gap"`       // Space between neighbours
}

// DefaultOptions returns a 0.25 cubie with a 0.02 gap.
func DefaultOptions() Options {
	return Options{CubeSize: 0.25, Gap: 0.02}
}

// Spacing is the distance between neighbouring cubie centers.
func (o Options) Spacing() float32 {
	return o.CubeSize + o.Gap
}

// Cubie is one drawable cubie.
type Cubie struct {
	Slot   cube.Slot     `json:"slot"`
	ID     cube.Slot     `json:"id"`
	Moving bool          `json:"moving"`
	Model  mgl32.Mat4    `json:"model"`
	Colors [6]mgl32.Vec4 `json:"colors"` // RGBA per home face, in cube.Face order
}

// Frame is everything a renderer needs for one draw.
type Frame struct {
	Turning bool    `json:"turning"`
	Turn    string  `json:"turn,omitempty"`
	Angle   float32 `json:"angle"`
	Cubies  []Cubie `json:"cubies"`
}

// palette holds RGBA values for each sticker color.
var palette = map[cube.Color]mgl32.Vec4{
	cube.White:  {1, 1, 1, 1},
	cube.Yellow: {1, 1, 0, 1},
	cube.Green:  {0, 1, 0, 1},
	cube.Blue:   {0, 0, 1, 1},
	cube.Red:    {1, 0, 0, 1},
	cube.Orange: {1, 0.37, 0.08, 1},
	cube.None:   {0, 0, 0, 1},
}

// RGBA returns the render color of c. Unknown colors are black.
func RGBA(c cube.Color) mgl32.Vec4 {
	if v, ok := palette[c]; ok {
		return v
	}
	return palette[cube.None]
}

// Build computes a frame. Each model matrix is
//
//	Rotate(angle about the turning face's normal, moving slots only)
//	* Translate(slot offset * spacing) * Orientation * Scale(cube size)
//
// so a unit cube drawn with Colors per local face lands where the engine
// says it is.
func Build(snap cubelet.Snapshot, opts Options) Frame {
	frame := Frame{
		Turning: snap.Turning,
		Cubies:  make([]Cubie, 0, cube.NumSlots),
	}

	turn := mgl32.Ident4()
	if snap.Turning {
		frame.Turn = snap.Turn.Notation()
		frame.Angle = float32(snap.Angle)
		turn = mgl32.HomogRotate3D(mgl32.DegToRad(frame.Angle), vec3(snap.Axis))
	}

	spacing := opts.Spacing()
	for slot := cube.Slot(0); slot < cube.NumSlots; slot++ {
		id := snap.State.Occupant(slot)
		off := vec3(slot.Offset()).Mul(spacing)

		model := mgl32.Translate3D(off.X(), off.Y(), off.Z()).
			Mul4(orientation(snap.State.Orient[slot])).
			Mul4(mgl32.Scale3D(opts.CubeSize, opts.CubeSize, opts.CubeSize))

		moving := snap.Moving(slot)
		if moving {
			model = turn.Mul4(model)
		}

		c := Cubie{Slot: slot, ID: id, Moving: moving, Model: model}
		for i, color := range cube.Stickers(id) {
			c.Colors[i] = RGBA(color)
		}
		frame.Cubies = append(frame.Cubies, c)
	}

	return frame
}

func vec3(v cube.Vec) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

func orientation(r cube.Rotation) mgl32.Mat4 {
	rows := [3]mgl32.Vec3{}
	for i := range rows {
		rows[i] = mgl32.Vec3{float32(r[i][0]), float32(r[i][1]), float32(r[i][2])}
	}
	return mgl32.Mat3FromRows(rows[0], rows[1], rows[2]).Mat4()
}
