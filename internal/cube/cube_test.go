package cube

import (
	"errors"
	"math/rand"
	"testing"
)

func randomTurns(seed int64, n int) []Turn {
	rng := rand.New(rand.NewSource(seed))
	turns := make([]Turn, n)
	for i := range turns {
		d := Clockwise
		if rng.Intn(2) == 0 {
			d = CounterClockwise
		}
		turns[i] = Turn{Face: Faces[rng.Intn(6)], Direction: d}
	}
	return turns
}

func TestNewStateIsSolved(t *testing.T) {
	s := Solved()
	if !s.IsSolved() {
		t.Error("New state should be solved")
	}
	if !s.IsHome() {
		t.Error("New state should have every cubie at home")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Solved state should validate: %v", err)
	}
}

func TestSingleTurnBreaksSolved(t *testing.T) {
	for _, f := range Faces {
		s := Apply(Solved(), f, Clockwise)
		if s.IsSolved() {
			t.Errorf("Cube should not be solved after %v", f)
		}
	}
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	s := Solved()
	_ = Apply(s, R, Clockwise)
	if !s.IsHome() {
		t.Error("Apply should not modify its input")
	}
}

func TestFourTurnsReturnToSolved_AllFaces(t *testing.T) {
	for _, f := range Faces {
		for _, d := range []Direction{Clockwise, CounterClockwise} {
			s := Solved()
			for i := 0; i < 4; i++ {
				s = Apply(s, f, d)
			}
			if s != Solved() {
				t.Errorf("%v %v x 4 should return to solved", f, d)
				t.Log(s.String())
			}
		}
	}
}

func TestOrderFourFromScrambledState(t *testing.T) {
	start := ApplyTurns(Solved(), randomTurns(7, 40)...)
	for _, f := range Faces {
		s := start
		for i := 0; i < 4; i++ {
			s = Apply(s, f, Clockwise)
		}
		if s != start {
			t.Errorf("%v x 4 should be the identity on a scrambled state", f)
		}
	}
}

func TestInverseUndoesTurn(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		s := ApplyTurns(Solved(), randomTurns(seed, 25)...)
		for _, f := range Faces {
			if got := Apply(Apply(s, f, Clockwise), f, CounterClockwise); got != s {
				t.Errorf("seed %d: %v then %v' should be the identity", seed, f, f)
			}
			if got := Apply(Apply(s, f, CounterClockwise), f, Clockwise); got != s {
				t.Errorf("seed %d: %v' then %v should be the identity", seed, f, f)
			}
		}
	}
}

func TestBijectionAfterScramble(t *testing.T) {
	s := Solved()
	for i, turn := range randomTurns(42, 500) {
		s = ApplyTurn(s, turn)
		if err := s.Validate(); err != nil {
			t.Fatalf("after %d turns: %v", i+1, err)
		}
	}
}

func TestCenterFixedPoint(t *testing.T) {
	for _, f := range Faces {
		center := CenterOf(f)
		for _, d := range []Direction{Clockwise, CounterClockwise} {
			s := Apply(Solved(), f, d)
			if s.Cubies[center] != center {
				t.Errorf("%v %v moved center %d to another slot", f, d, center)
			}
			if s.Orient[center] == Identity {
				t.Errorf("%v %v should turn the center in place", f, d)
			}
			if got := s.FaceColors(center)[f]; got != f.HomeColor() {
				t.Errorf("%v center shows %v after turn, want %v", f, got, f.HomeColor())
			}
		}
	}
}

func TestLeftRightCommute(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		s := ApplyTurns(Solved(), randomTurns(seed, 30)...)
		lr := Apply(Apply(s, L, Clockwise), R, Clockwise)
		rl := Apply(Apply(s, R, Clockwise), L, Clockwise)
		if lr != rl {
			t.Errorf("seed %d: L R and R L should commute", seed)
		}
	}
}

func TestFrontClockwiseRing(t *testing.T) {
	s := Apply(Solved(), F, Clockwise)
	ring := RingOf(F)

	for i := 0; i < 8; i++ {
		dst := ring[(i+2)%8]
		if s.Cubies[dst] != ring[i] {
			t.Errorf("slot %d holds %d, want %d", dst, s.Cubies[dst], ring[i])
		}
	}

	inRing := make(map[Slot]bool)
	for _, slot := range ring {
		inRing[slot] = true
	}
	unchanged := 0
	for slot := Slot(0); slot < NumSlots; slot++ {
		if inRing[slot] {
			continue
		}
		if s.Cubies[slot] != slot {
			t.Errorf("slot %d should keep its cubie, holds %d", slot, s.Cubies[slot])
		}
		unchanged++
	}
	if unchanged != 19 {
		t.Errorf("expected 19 slots outside the ring, got %d", unchanged)
	}

	for i := 0; i < 3; i++ {
		s = Apply(s, F, Clockwise)
	}
	if !s.IsHome() {
		t.Error("F x 4 should return to solved")
	}
}

func TestRingDirectionMatchesGeometry_AllFaces(t *testing.T) {
	for _, f := range Faces {
		ring := RingOf(f)
		cw := Apply(Solved(), f, Clockwise)
		ccw := Apply(Solved(), f, CounterClockwise)
		for i := 0; i < 8; i++ {
			if cw.Cubies[ring[(i+2)%8]] != ring[i] {
				t.Errorf("%v: clockwise should move ring %d two steps forward", f, i)
			}
			if ccw.Cubies[ring[(i+6)%8]] != ring[i] {
				t.Errorf("%v: counter-clockwise should move ring %d two steps back", f, i)
			}
		}
	}
}

func TestStickersFollowTurns(t *testing.T) {
	// F moves the left column of stickers onto the bottom row of U.
	s := Apply(Solved(), F, Clockwise)
	for _, i := range []int{6, 7, 8} {
		if got := s.Facelet(U, i); got != L.HomeColor() {
			t.Errorf("U[%d] = %v after F, want %v", i, got, L.HomeColor())
		}
	}
	for i := 0; i < 9; i++ {
		if got := s.Facelet(F, i); got != F.HomeColor() {
			t.Errorf("F[%d] = %v after F, want %v", i, got, F.HomeColor())
		}
	}

	// R brings the Down stickers up onto the right column of F.
	s = Apply(Solved(), R, Clockwise)
	for _, i := range []int{2, 5, 8} {
		if got := s.Facelet(F, i); got != D.HomeColor() {
			t.Errorf("F[%d] = %v after R, want %v", i, got, D.HomeColor())
		}
	}
}

func TestSexyMove_6Times_ReturnsToSolved(t *testing.T) {
	// (R U R' U') x 6 = identity
	sexy := []Turn{
		{R, Clockwise}, {U, Clockwise}, {R, CounterClockwise}, {U, CounterClockwise},
	}
	s := Solved()
	for i := 0; i < 6; i++ {
		s = ApplyTurns(s, sexy...)
		if i < 5 && s.IsSolved() {
			t.Errorf("Sexy move x %d should not be solved", i+1)
		}
	}
	if s != Solved() {
		t.Error("Sexy move x 6 should return to solved")
		t.Log(s.String())
	}
}

func TestScrambleAndReverse(t *testing.T) {
	scramble := randomTurns(99, 30)
	s := ApplyTurns(Solved(), scramble...)
	if s.IsSolved() {
		t.Error("Cube should be scrambled after turns")
	}
	s = ApplyTurns(s, InverseTurns(scramble)...)
	if !s.IsHome() {
		t.Error("Cube should be solved after reversing the scramble")
		t.Log(s.String())
	}
}

func TestSlotsOfFaces(t *testing.T) {
	counts := make(map[Slot]int)
	for _, f := range Faces {
		seen := make(map[Slot]bool)
		for _, slot := range SlotsOf(f) {
			if seen[slot] {
				t.Errorf("%v lists slot %d twice", f, slot)
			}
			seen[slot] = true
			if !Contains(f, slot) {
				t.Errorf("%v lists slot %d outside the face", f, slot)
			}
			counts[slot]++
		}
		if SlotsOf(f)[4] != SlotFromOffset(f.Normal()) {
			t.Errorf("%v center should be at its normal", f)
		}
		if AxisOf(f) != f.Opposite().Axis() {
			t.Errorf("%v and its opposite should share an axis", f)
		}
	}

	for slot := Slot(0); slot < NumSlots; slot++ {
		if counts[slot] != int(slot.Kind()) {
			t.Errorf("slot %d appears in %d faces, want %d", slot, counts[slot], slot.Kind())
		}
		if len(FacesOf(slot)) != int(slot.Kind()) {
			t.Errorf("FacesOf(%d) = %v", slot, FacesOf(slot))
		}
	}
	if counts[CoreSlot] != 0 {
		t.Error("core slot should belong to no face")
	}
}

func TestSlotCoordinates(t *testing.T) {
	// Layout shared with the renderer: x*9 + y*3 + z.
	if SlotAt(2, 0, 0) != 18 || SlotAt(0, 2, 0) != 6 || SlotAt(0, 0, 2) != 2 {
		t.Error("unexpected slot layout")
	}
	for slot := Slot(0); slot < NumSlots; slot++ {
		if SlotFromOffset(slot.Offset()) != slot {
			t.Errorf("offset round trip failed for slot %d", slot)
		}
	}
}

func TestStickerTable(t *testing.T) {
	kinds := make(map[Kind]int)
	for id := Slot(0); id < NumSlots; id++ {
		colored := 0
		for _, f := range Faces {
			c := Stickers(id)[f]
			if c == None {
				continue
			}
			colored++
			if c != f.HomeColor() {
				t.Errorf("cubie %d shows %v on %v", id, c, f)
			}
		}
		if colored != int(id.Kind()) {
			t.Errorf("cubie %d has %d stickers, kind %v", id, colored, id.Kind())
		}
		kinds[id.Kind()]++
	}
	if kinds[Corner] != 8 || kinds[Edge] != 12 || kinds[Center] != 6 || kinds[Core] != 1 {
		t.Errorf("unexpected kind counts: %v", kinds)
	}
}

func TestValidateDetectsDuplicate(t *testing.T) {
	s := Solved()
	s.Cubies[0] = 1
	if err := s.Validate(); !errors.Is(err, ErrNotPermutation) {
		t.Errorf("expected ErrNotPermutation, got %v", err)
	}

	s = Solved()
	s.Orient[5] = Rotation{{2, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if err := s.Validate(); !errors.Is(err, ErrBadOrientation) {
		t.Errorf("expected ErrBadOrientation, got %v", err)
	}

	s = Solved()
	s.Orient[5] = Rotation{{-1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	if err := s.Validate(); !errors.Is(err, ErrBadOrientation) {
		t.Error("a reflection should not validate")
	}
}

func TestTurnRotationIsCubeRotation(t *testing.T) {
	for _, f := range Faces {
		cw := TurnRotation(f, Clockwise)
		ccw := TurnRotation(f, CounterClockwise)
		if !cw.Valid() || !ccw.Valid() {
			t.Errorf("%v turn rotation should be valid", f)
		}
		if cw.Mul(ccw) != Identity {
			t.Errorf("%v clockwise and counter-clockwise should be inverses", f)
		}
		if cw.Transpose() != ccw {
			t.Errorf("%v inverse should equal transpose", f)
		}
		if cw.Apply(f.Normal()) != f.Normal() {
			t.Errorf("%v turn should fix its normal", f)
		}
	}
}

func TestApplyPanicsOnInvalidTurn(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Apply should panic on an invalid face")
		}
	}()
	Apply(Solved(), Face(9), Clockwise)
}

func TestStringShowsNet(t *testing.T) {
	want := "" +
		"      Y Y Y \n" +
		"      Y Y Y \n" +
		"      Y Y Y \n" +
		"O O O G G G R R R B B B \n" +
		"O O O G G G R R R B B B \n" +
		"O O O G G G R R R B B B \n" +
		"      W W W \n" +
		"      W W W \n" +
		"      W W W \n"
	if got := Solved().String(); got != want {
		t.Errorf("unexpected net:\n%s", got)
	}
}

func TestDisplacedAfterOneTurn(t *testing.T) {
	s := ApplyTurn(Solved(), Turn{Face: F, Direction: Clockwise})

	got := s.Displaced(Solved())
	if len(got) != 9 {
		t.Fatalf("Displaced = %v, want the 9 front slots", got)
	}
	front := SlotsOf(F)
	for _, slot := range got {
		found := false
		for _, f := range front {
			if f == slot {
				found = true
			}
		}
		if !found {
			t.Errorf("slot %d is not on the front face", slot)
		}
	}

	if d := Solved().Displaced(Solved()); len(d) != 0 {
		t.Errorf("solved vs solved = %v, want none", d)
	}
}
