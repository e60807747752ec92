package cube

import (
	"fmt"
	"strings"
)

// Turn is a quarter turn of one face.
type Turn struct {
	Face      Face      `json:"face"`
	Direction Direction `json:"direction"`
}

// Validate rejects out-of-range faces and directions.
func (t Turn) Validate() error {
	if !t.Face.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidFace, t.Face)
	}
	if !t.Direction.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, t.Direction)
	}
	return nil
}

// Inverse returns the turn that undoes t.
func (t Turn) Inverse() Turn {
	return Turn{Face: t.Face, Direction: t.Direction.Inverse()}
}

// Notation returns the standard notation: F, F'.
func (t Turn) Notation() string {
	if t.Direction == CounterClockwise {
		return t.Face.String() + "'"
	}
	return t.Face.String()
}

// String returns the notation string (alias for Notation).
func (t Turn) String() string {
	return t.Notation()
}

// ParseTurn parses a single token. A half turn such as R2 expands to two
// clockwise quarter turns.
// Examples: R, R', R2, u, U`
func ParseTurn(s string) ([]Turn, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidNotation)
	}

	face, err := ParseFace(s[:1])
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	switch s[1:] {
	case "":
		return []Turn{{Face: face, Direction: Clockwise}}, nil
	case "'", "`":
		return []Turn{{Face: face, Direction: CounterClockwise}}, nil
	case "2", "2'", "2`":
		t := Turn{Face: face, Direction: Clockwise}
		return []Turn{t, t}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
}

// ParseTurns parses a space-separated sequence such as "R U R' U'".
func ParseTurns(s string) ([]Turn, error) {
	parts := strings.Fields(s)
	turns := make([]Turn, 0, len(parts))

	for _, part := range parts {
		t, err := ParseTurn(part)
		if err != nil {
			return nil, err
		}
		turns = append(turns, t...)
	}

	return turns, nil
}

// FormatTurns formats turns as a space-separated notation string.
func FormatTurns(turns []Turn) string {
	if len(turns) == 0 {
		return ""
	}

	parts := make([]string, len(turns))
	for i, t := range turns {
		parts[i] = t.Notation()
	}

	return strings.Join(parts, " ")
}

// InverseTurns returns the sequence that undoes turns.
func InverseTurns(turns []Turn) []Turn {
	out := make([]Turn, len(turns))
	for i, t := range turns {
		out[len(turns)-1-i] = t.Inverse()
	}
	return out
}
