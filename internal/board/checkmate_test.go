package board_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/cotulenh/core/internal/board"
	"github.com/cotulenh/core/internal/command"
	"github.com/cotulenh/core/internal/session"
)

func mustPut(t *testing.T, b *board.Board, p board.Piece, sq board.Square) {
	t.Helper()
	if err := b.Put(p, sq, false); err != nil {
		t.Fatalf("Put %s at %s: %v", p.Kind, sq, err)
	}
}

// TestCommanderInCheckIsDetected builds a minimal in-check position
// directly (rather than through a hand-rolled FEN string) and confirms
// IsAttacked reports it.
func TestCommanderInCheckIsDetected(t *testing.T) {
	b := board.NewBoard()
	commanderSq := board.NewSquare(5, 1)
	attackerSq := board.NewSquare(5, 2)

	mustPut(t, b, board.Piece{Kind: board.Commander, Color: board.Red}, commanderSq)
	mustPut(t, b, board.Piece{Kind: board.Infantry, Color: board.Blue}, attackerSq)

	ad := board.NewAirDefenseMap()
	ad.Rebuild(b)

	if !board.IsAttacked(b, ad, commanderSq, board.Blue) {
		t.Fatalf("expected commander at %s to be attacked by infantry at %s", commanderSq, attackerSq)
	}
}

// TestCapturingAttackerResolvesCheck confirms that a legal move which
// removes the sole attacker clears the check condition, the minimal
// positive counterpart to a checkmate (no such move exists) test.
func TestCapturingAttackerResolvesCheck(t *testing.T) {
	b := board.NewBoard()
	commanderSq := board.NewSquare(5, 1)
	attackerSq := board.NewSquare(5, 2)
	defenderSq := board.NewSquare(4, 2)

	mustPut(t, b, board.Piece{Kind: board.Commander, Color: board.Red}, commanderSq)
	mustPut(t, b, board.Piece{Kind: board.Infantry, Color: board.Blue}, attackerSq)
	mustPut(t, b, board.Piece{Kind: board.Infantry, Color: board.Red}, defenderSq)

	ad := board.NewAirDefenseMap()
	ad.Rebuild(b)
	if !board.IsAttacked(b, ad, commanderSq, board.Blue) {
		t.Fatalf("expected commander to start in check")
	}

	legal := session.FilterLegal(b, ad, board.Red, board.GenerateMoves(b, ad, defenderSq), false, zerolog.Nop())
	var captured bool
	for _, m := range legal {
		if m.To != attackerSq || !m.IsCapture() {
			continue
		}
		cmd := command.BuildMoveCommand(b, m)
		if err := cmd.Execute(b); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		captured = true
		break
	}
	if !captured {
		t.Fatalf("expected a legal move capturing the attacker at %s", attackerSq)
	}

	ad.Rebuild(b)
	if board.IsAttacked(b, ad, commanderSq, board.Blue) {
		t.Errorf("expected check to be resolved once the attacker is captured")
	}
}

// TestCommanderCannotStepOntoAnotherAttackedSquare confirms the
// legality filter rejects a commander move that merely trades one
// attacked square for another: a ray-distance escape along the
// attacker's own diagonal still leaves the commander in check.
func TestCommanderCannotStepOntoAnotherAttackedSquare(t *testing.T) {
	b := board.NewBoard()
	commanderSq := board.NewSquare(2, 0)
	escapeSq := board.NewSquare(3, 1) // on the same diagonal as the attacker
	attackerSq := board.NewSquare(5, 3)

	mustPut(t, b, board.Piece{Kind: board.Commander, Color: board.Red}, commanderSq)
	mustPut(t, b, board.Piece{Kind: board.Artillery, Color: board.Blue}, attackerSq)

	ad := board.NewAirDefenseMap()
	ad.Rebuild(b)

	legal := session.FilterLegal(b, ad, board.Red, board.GenerateMoves(b, ad, commanderSq), false, zerolog.Nop())
	for _, m := range legal {
		if m.To == escapeSq {
			t.Errorf("expected %s to remain illegal: it is still on the attacker's diagonal", escapeSq)
		}
	}
}
