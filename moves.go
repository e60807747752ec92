package cubelet

// Predefined turns for convenience.
//
// Example:
//
//	s := cubelet.ApplyTurns(cubelet.Solved(), cubelet.R, cubelet.U, cubelet.RPrime, cubelet.UPrime)
var (
	// Right face turns
	R      = Turn{Face: FaceR, Direction: Clockwise}        // Right clockwise
	RPrime = Turn{Face: FaceR, Direction: CounterClockwise} // Right counter-clockwise

	// Left face turns
	L      = Turn{Face: FaceL, Direction: Clockwise}
	LPrime = Turn{Face: FaceL, Direction: CounterClockwise}

	// Up face turns
	U      = Turn{Face: FaceU, Direction: Clockwise}
	UPrime = Turn{Face: FaceU, Direction: CounterClockwise}

	// Down face turns
	D      = Turn{Face: FaceD, Direction: Clockwise}
	DPrime = Turn{Face: FaceD, Direction: CounterClockwise}

	// Front face turns
	F      = Turn{Face: FaceF, Direction: Clockwise}
	FPrime = Turn{Face: FaceF, Direction: CounterClockwise}

	// Back face turns
	B      = Turn{Face: FaceB, Direction: Clockwise}
	BPrime = Turn{Face: FaceB, Direction: CounterClockwise}
)

// SexyMove is R U R' U'. Six repetitions return to the starting state.
var SexyMove = []Turn{R, U, RPrime, UPrime}

// InverseSexyMove is U R U' R'.
var InverseSexyMove = []Turn{U, R, UPrime, RPrime}

// TPerm swaps two corners and two edges of the top layer. Half turns are
// written as two quarter turns.
var TPerm = []Turn{R, U, RPrime, UPrime, RPrime, F, R, R, UPrime, RPrime, UPrime, R, U, RPrime, FPrime}
