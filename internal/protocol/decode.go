package protocol

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/SeamusWaldron/cubelet/internal/cube"
)

var ErrUnknownFace = errors.New("protocol: unknown face code")

// Rotation is one face turn reported by the cube.
type Rotation struct {
	FaceCode          byte      // Raw face+direction code (0x00-0x0B)
	CenterOrientation byte      // Center piece orientation
	Turn              cube.Turn // Decoded turn
}

// BatteryEvent is a battery level notification.
type BatteryEvent struct {
	Level int // 0-100 percentage
}

// CubeTypeEvent is a cube type notification.
type CubeTypeEvent struct {
	TypeCode byte
	TypeName string
}

// OrientationEvent is a cube orientation notification.
type OrientationEvent struct {
	X, Y, Z, W float64

	// Derived discrete orientation
	Up    cube.Face
	Front cube.Face
}

// faceCodes maps code/2 to a face, assuming white up and green front.
var faceCodes = [6]cube.Face{
	0: cube.B, // blue
	1: cube.F, // green
	2: cube.U, // white
	3: cube.D, // yellow
	4: cube.R, // red
	5: cube.L, // orange
}

// DecodeRotation decodes a rotation payload. The payload holds byte pairs
// [face_dir] [center_orientation]; even codes are clockwise.
func DecodeRotation(payload []byte) ([]Rotation, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("rotation payload must have even length, got %d", len(payload))
	}

	rotations := make([]Rotation, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(faceCodes) {
			return nil, fmt.Errorf("%w: 0x%02X", ErrUnknownFace, code)
		}

		dir := cube.Clockwise
		if code%2 != 0 {
			dir = cube.CounterClockwise
		}

		rotations = append(rotations, Rotation{
			FaceCode:          code,
			CenterOrientation: payload[i+1],
			Turn:              cube.Turn{Face: faceCodes[idx], Direction: dir},
		})
	}

	return rotations, nil
}

// EncodeRotation returns the rotation payload for turns, with zero center
// orientation.
func EncodeRotation(turns ...cube.Turn) []byte {
	out := make([]byte, 0, 2*len(turns))
	for _, t := range turns {
		var code byte
		for i, f := range faceCodes {
			if f == t.Face {
				code = byte(i * 2)
			}
		}
		if t.Direction == cube.CounterClockwise {
			code++
		}
		out = append(out, code, 0)
	}
	return out
}

// DecodeBattery decodes a battery payload.
func DecodeBattery(payload []byte) (*BatteryEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("battery payload too short")
	}
	return &BatteryEvent{Level: int(payload[0])}, nil
}

// DecodeCubeType decodes a cube type payload.
func DecodeCubeType(payload []byte) (*CubeTypeEvent, error) {
	if len(payload) < 1 {
		return nil, fmt.Errorf("cube type payload too short")
	}

	typeName := "standard"
	if payload[0] == 0x01 {
		typeName = "edge"
	}
	return &CubeTypeEvent{TypeCode: payload[0], TypeName: typeName}, nil
}

// DecodeOrientation decodes an orientation payload.
// Format: ASCII "x#y#z#w", possibly followed by trailing bytes after w.
func DecodeOrientation(payload []byte) (*OrientationEvent, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("orientation payload must have 4 parts, got %d", len(parts))
	}
	parts[3] = leadingNumber(parts[3])

	var q [4]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid orientation component %d: %w", i, err)
		}
		q[i] = v
	}

	event := &OrientationEvent{X: q[0], Y: q[1], Z: q[2], W: q[3]}
	event.Up, event.Front = quaternionToFaces(q[0], q[1], q[2], q[3])
	return event, nil
}

func leadingNumber(s string) string {
	end := 0
	for i, r := range s {
		if (r == '-' && i == 0) || (r >= '0' && r <= '9') || r == '.' {
			end = i + 1
			continue
		}
		break
	}
	return s[:end]
}

// quaternionToFaces returns the faces pointing up and toward the solver.
func quaternionToFaces(x, y, z, w float64) (up, front cube.Face) {
	// GoCube sends raw integer values
	if mag := math.Sqrt(x*x + y*y + z*z + w*w); mag > 0 {
		x, y, z, w = x/mag, y/mag, z/mag, w/mag
	}

	up = nearestFace(2*(x*y-w*z), 1-2*(x*x+z*z), 2*(y*z+w*x))
	front = nearestFace(2*(x*z+w*y), 2*(y*z-w*x), 1-2*(x*x+y*y))
	return up, front
}

func nearestFace(x, y, z float64) cube.Face {
	ax, ay, az := math.Abs(x), math.Abs(y), math.Abs(z)
	switch {
	case ay >= ax && ay >= az:
		if y > 0 {
			return cube.U
		}
		return cube.D
	case az >= ax:
		if z > 0 {
			return cube.F
		}
		return cube.B
	case x > 0:
		return cube.R
	default:
		return cube.L
	}
}
