package board

import "testing"

func TestLoadFENRoundTrip(t *testing.T) {
	fen := "11/11/11/11/11/11/11/11/11/11/4C6/11 r - - 0 1"
	pos, err := LoadFEN(fen)
	if err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	if got := pos.FEN(); got != fen {
		t.Errorf("round trip mismatch:\n got %q\nwant %q", got, fen)
	}
	if pos.Board.CommanderSquare(Red) == NoSquare {
		t.Errorf("commander square not tracked after load")
	}
}

func TestLoadFENStack(t *testing.T) {
	fen := "11/11/11/11/11/11/11/11/11/11/(NF)10/11 r - - 0 1"
	pos, err := LoadFEN(fen)
	if err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	sq := NewSquare(0, 1)
	p := pos.Board.Get(sq)
	if p.Kind != Navy || len(p.Carrying) != 1 || p.Carrying[0].Kind != AirForce {
		t.Fatalf("unexpected stack at %s: %+v", sq, p)
	}
}

func TestLoadFENHeroicMarker(t *testing.T) {
	fen := "11/11/11/11/11/11/11/11/11/11/4+t6/11 b - - 0 1"
	pos, err := LoadFEN(fen)
	if err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	sq := NewSquare(4, 1)
	p := pos.Board.Get(sq)
	if p.Kind != Tank || !p.Heroic || p.Color != Blue {
		t.Fatalf("unexpected piece at %s: %+v", sq, p)
	}
}

func TestLoadFENRejectsBadRankCount(t *testing.T) {
	_, err := LoadFEN("11/11 r - - 0 1")
	if err == nil {
		t.Fatal("expected error for wrong rank count")
	}
	if !matchesCode(err, "FEN_INVALID_RANK_COUNT") {
		t.Errorf("wrong error code: %v", err)
	}
}

func TestLoadFENRejectsMismatchedParens(t *testing.T) {
	_, err := LoadFEN("11/11/11/11/11/11/11/11/11/11/4(NF6/11 r - - 0 1")
	if err == nil {
		t.Fatal("expected error for unterminated stack")
	}
	if !matchesCode(err, "FEN_MISMATCH_PARENTHESES") {
		t.Errorf("wrong error code: %v", err)
	}
}

func matchesCode(err error, code string) bool {
	return err != nil && (stringContains(err.Error(), code))
}

func stringContains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
