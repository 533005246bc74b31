package board

import "testing"

func mustLoad(t *testing.T, fen string) *Position {
	t.Helper()
	pos, err := LoadFEN(fen)
	if err != nil {
		t.Fatalf("LoadFEN(%q): %v", fen, err)
	}
	return pos
}

func hasMoveTo(moves []Move, to Square, flag MoveFlag) bool {
	for _, m := range moves {
		if m.To == to && m.Flag == flag {
			return true
		}
	}
	return false
}

// TestInfantrySingleStep mirrors scenario S1: a lone Infantry advances one
// square orthogonally and no further.
func TestInfantrySingleStep(t *testing.T) {
	fen := "11/11/11/11/11/11/11/11/11/11/4I6/11 r - - 0 1"
	pos := mustLoad(t, fen)
	from := NewSquare(4, 1)
	moves := GenerateMoves(pos.Board, nil, from)
	if !hasMoveTo(moves, NewSquare(4, 2), FlagNormal) {
		t.Errorf("expected infantry to step forward one rank")
	}
	if hasMoveTo(moves, NewSquare(4, 3), FlagNormal) {
		t.Errorf("infantry should not reach two ranks away")
	}
}

// TestNavyStayCapturesLand mirrors scenario S2: Navy's capture range
// exceeds its ability to occupy land, so it stays and removes the target.
func TestNavyStayCapturesLand(t *testing.T) {
	fen := "11/11/11/11/11/11/11/11/2N8/3t7/11/11 r - - 0 1"
	pos := mustLoad(t, fen)
	navySq := NewSquare(2, 3)
	targetSq := NewSquare(3, 2)
	moves := GenerateMoves(pos.Board, nil, navySq)
	found := false
	for _, m := range moves {
		if m.To == targetSq && m.Flag == FlagStayCapture {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a stay-capture onto %s, got %+v", targetSq, moves)
	}
}

// TestAirForceSuicideCapture: an Air Force capturing an enemy Air Force
// destroys both (spec.md §9 OQ1 resolution).
func TestAirForceSuicideCapture(t *testing.T) {
	fen := "11/11/11/11/4F6/4f6/11/11/11/11/11/11 r - - 0 1"
	pos := mustLoad(t, fen)
	from := NewSquare(4, 7)
	to := NewSquare(4, 6)
	moves := GenerateMoves(pos.Board, nil, from)
	if !hasMoveTo(moves, to, FlagSuicideCapture) {
		t.Fatalf("expected suicide-capture move, got %+v", moves)
	}
}

// TestTankIgnoresBlockingOnCapture: a Tank may capture at range 2 over a
// single friendly screening piece.
func TestTankIgnoresBlockingOnCapture(t *testing.T) {
	fen := "11/11/11/11/11/11/11/11/2TIi6/11/11/11 r - - 0 1"
	pos := mustLoad(t, fen)
	from := NewSquare(2, 3)
	targetSq := NewSquare(4, 3)
	moves := GenerateMoves(pos.Board, nil, from)
	if !hasMoveTo(moves, targetSq, FlagCapture) {
		t.Fatalf("expected tank to capture over its screen, got %+v", moves)
	}
}

func TestCombinationMove(t *testing.T) {
	fen := "11/11/11/11/11/11/11/11/11/4T6/4I6/11 r - - 0 1"
	pos := mustLoad(t, fen)
	from := NewSquare(4, 2)
	to := NewSquare(4, 1)
	moves := GenerateMoves(pos.Board, nil, from)
	if !hasMoveTo(moves, to, FlagCombination) {
		t.Fatalf("expected combination move onto friendly Infantry, got %+v", moves)
	}
}
