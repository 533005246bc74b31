package board

import "testing"

func TestAirDefensePressureHaltsFlight(t *testing.T) {
	// Two Blue AntiAir units on d6 and f6 flank the e-file flight path and
	// both cover e7, giving pressure 2 there, which should stop a Red Air
	// Force from flying past them.
	fen := "11/11/11/11/4F6/11/3g1g5/11/11/11/11/11 r - - 0 1"
	pos := mustLoad(t, fen)
	ad := NewAirDefenseMap()
	ad.Rebuild(pos.Board)

	from := NewSquare(4, 7) // the Air Force
	far, ok := from.Step(0, -1)
	if !ok {
		t.Fatal("expected a square south of the air force")
	}
	if ad.Pressure(Blue, far) < 1 {
		t.Fatalf("expected AD pressure from anti-air units, got %d", ad.Pressure(Blue, far))
	}

	moves := GenerateMoves(pos.Board, ad, from)
	beyond := NewSquare(4, 3)
	if hasMoveTo(moves, beyond, FlagNormal) {
		t.Errorf("expected air defense pressure to halt the flight before %s", beyond)
	}
}

func TestAirDefenseRadiusGrowsWithHeroic(t *testing.T) {
	fen := "11/11/11/11/11/11/11/11/11/11/4+G6/11 r - - 0 1"
	pos := mustLoad(t, fen)
	ad := NewAirDefenseMap()
	ad.Rebuild(pos.Board)
	origin := NewSquare(4, 1)
	nearby, _ := origin.Step(2, 0)
	if !ad.CoveredBy(Red, nearby) {
		t.Errorf("expected heroic anti-air's extended radius to cover %s", nearby)
	}
}
