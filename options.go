package cubelet

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SeamusWaldron/cubelet/internal/animation"
)

// Policy decides what happens to a turn requested while another is in
// flight.
type Policy int

const (
	// PolicyReject ignores the request.
	PolicyReject Policy = iota
	// PolicyQueue keeps the request and starts it after the current turn.
	PolicyQueue
)

func (p Policy) String() string {
	switch p {
	case PolicyReject:
		return "reject"
	case PolicyQueue:
		return "queue"
	default:
		return "unknown"
	}
}

// ParsePolicy parses "reject" or "queue".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return PolicyReject, nil
	case "queue":
		return PolicyQueue, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPolicy, s)
	}
}

// Option configures Engine behavior.
type Option func(*config)

type config struct {
	rate        float64
	epsilon     float64
	policy      Policy
	queueDepth  int // 0 means unbounded
	catchUp     bool
	moveHistory bool
	logger      *slog.Logger
	now         func() time.Time
}

func defaultConfig() *config {
	return &config{
		rate:        animation.DefaultRate,
		epsilon:     animation.DefaultEpsilon,
		policy:      PolicyReject,
		queueDepth:  16,
		moveHistory: true,
		logger:      slog.New(slog.DiscardHandler),
		now:         time.Now,
	}
}

// WithRate sets the turn speed in degrees per second (default 40).
func WithRate(degPerSec float64) Option {
	return func(c *config) {
		if degPerSec > 0 {
			c.rate = degPerSec
		}
	}
}

// WithEpsilon sets how close, in degrees, the angle must come to the target
// for a turn to finish (default 0.1).
func WithEpsilon(deg float64) Option {
	return func(c *config) {
		if deg > 0 {
			c.epsilon = deg
		}
	}
}

// WithPolicy selects what happens to requests made while a turn is in
// flight. The default rejects them.
func WithPolicy(p Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithQueueDepth bounds the number of waiting turns under PolicyQueue.
func WithQueueDepth(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.queueDepth = n
		}
	}
}

// WithUnboundedQueue lets PolicyQueue keep every waiting turn. Use it for
// input that must never be dropped, such as a smart cube mirroring a
// physical one.
func WithUnboundedQueue() Option {
	return func(c *config) {
		c.queueDepth = 0
	}
}

// WithCatchUp speeds the animation up while turns are queued, so a backlog
// drains instead of growing. With n turns waiting, time runs n+1 times
// faster, up to MaxCatchUp.
func WithCatchUp(enabled bool) Option {
	return func(c *config) {
		c.catchUp = enabled
	}
}

// WithMoveHistory enables or disables the committed-turn history.
// When enabled (default), all commits are stored and accessible via History().
// Disable this for long sessions to reduce memory usage.
func WithMoveHistory(enabled bool) Option {
	return func(c *config) {
		c.moveHistory = enabled
	}
}

// WithLogger sets the structured logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeSource replaces time.Now for commit timestamps.
func WithTimeSource(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
