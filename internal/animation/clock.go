// Package animation turns a discrete quarter turn into a continuous angle
// advanced by elapsed time.
package animation

import (
	"errors"
	"math"
	"time"
)

const (
	// DefaultRate is the angular speed in degrees per second.
	DefaultRate = 40.0

	// DefaultEpsilon is the distance to the target, in degrees, at which a
	// turn counts as finished.
	DefaultEpsilon = 0.1

	// QuarterTurn is the magnitude of every target.
	QuarterTurn = 90.0
)

var (
	ErrBusy   = errors.New("animation: turn already in progress")
	ErrTarget = errors.New("animation: target must be +90 or -90 degrees")
)

// Status is the clock state.
type Status int

const (
	Idle Status = iota
	Turning
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Turning:
		return "turning"
	default:
		return "unknown"
	}
}

// Clock tracks the angle of the face currently turning.
// Clock is not safe for concurrent use; the owner serializes access.
type Clock struct {
	rate    float64
	epsilon float64

	status Status
	angle  float64
	target float64
}

// NewClock creates an idle clock. Non-positive arguments select the
// defaults.
func NewClock(rate, epsilon float64) *Clock {
	if rate <= 0 {
		rate = DefaultRate
	}
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Clock{rate: rate, epsilon: epsilon}
}

// Start begins a turn toward target, which must be +90 or -90.
func (c *Clock) Start(target float64) error {
	if c.status == Turning {
		return ErrBusy
	}
	if target != QuarterTurn && target != -QuarterTurn {
		return ErrTarget
	}
	c.status = Turning
	c.angle = 0
	c.target = target
	return nil
}

// Advance moves the angle toward the target by rate*dt. It returns true
// exactly once per turn, on the call that comes within epsilon of the target
// or steps past it. The turn then ends exactly on the target: the clock goes
// idle and the angle resets to 0, since the owner commits the quarter turn
// to its state at the same moment.
func (c *Clock) Advance(dt time.Duration) bool {
	if c.status != Turning || dt <= 0 {
		return false
	}

	step := c.rate * dt.Seconds()
	if c.target < 0 {
		step = -step
	}
	c.angle += step

	remaining := c.target - c.angle
	if math.Abs(remaining) >= c.epsilon && remaining*c.target > 0 {
		return false
	}

	c.status = Idle
	c.angle = 0
	c.target = 0
	return true
}

// Turning reports whether a turn is in progress.
func (c *Clock) Turning() bool {
	return c.status == Turning
}

// Angle returns the current angle in degrees, 0 when idle.
func (c *Clock) Angle() float64 {
	return c.angle
}

// Target returns the target of the current turn, 0 when idle.
func (c *Clock) Target() float64 {
	return c.target
}

// Progress returns the completed fraction of the current turn in [0, 1].
func (c *Clock) Progress() float64 {
	if c.status != Turning {
		return 0
	}
	return math.Min(1, math.Abs(c.angle)/QuarterTurn)
}

// Remaining returns the time left at the configured rate.
func (c *Clock) Remaining() time.Duration {
	if c.status != Turning {
		return 0
	}
	deg := math.Abs(c.target - c.angle)
	return time.Duration(deg / c.rate * float64(time.Second))
}

// Rate returns the angular speed in degrees per second.
func (c *Clock) Rate() float64 {
	return c.rate
}

// Epsilon returns the completion threshold in degrees.
func (c *Clock) Epsilon() float64 {
	return c.epsilon
}
