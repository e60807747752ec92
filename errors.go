package cubelet

import (
	"errors"

	"github.com/SeamusWaldron/cubelet/internal/cube"
)

// Sentinel errors for the cubelet package.
var (
	// Input errors
	ErrInvalidTurn     = errors.New("cubelet: invalid turn")
	ErrInvalidNotation = cube.ErrInvalidNotation
	ErrInvalidPolicy   = errors.New("cubelet: invalid busy policy")

	// State errors
	ErrBusy         = errors.New("cubelet: turn in progress")
	ErrInvalidState = errors.New("cubelet: invalid cube state")
)
