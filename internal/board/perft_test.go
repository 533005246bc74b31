package board_test

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/cotulenh/core/internal/board"
	"github.com/cotulenh/core/internal/command"
	"github.com/cotulenh/core/internal/session"
)

// perft walks the legal-move tree the same way the game facade does (C5
// pseudo-legal generation narrowed by C8's trial-execute filter), counting
// leaf nodes at depth. There is no published CoTuLenh perft table to check
// against, so this is a self-consistency check: depth 1 must equal the
// legal move count, and depth N must equal the sum of depth N-1 counts
// across each of depth 1's children.
func perft(b *board.Board, ad *board.AirDefenseMap, color board.Color, depth int) int64 {
	if depth == 0 {
		return 1
	}
	legal := legalMovesFor(b, ad, color)
	if depth == 1 {
		return int64(len(legal))
	}
	var nodes int64
	for _, m := range legal {
		cmd := command.BuildMoveCommand(b, m)
		if err := cmd.Execute(b); err != nil {
			continue
		}
		ad.Rebuild(b)
		nodes += perft(b, ad, color.Other(), depth-1)
		_ = cmd.Undo(b)
		ad.Rebuild(b)
	}
	return nodes
}

func legalMovesFor(b *board.Board, ad *board.AirDefenseMap, color board.Color) []board.Move {
	var pseudo []board.Move
	b.ForEachPiece(func(sq board.Square, p board.Piece) {
		if p.Color != color {
			return
		}
		pseudo = append(pseudo, board.GenerateMoves(b, ad, sq)...)
		if p.IsStack() {
			for _, unit := range p.Flatten() {
				pseudo = append(pseudo, board.GenerateUnitMoves(b, ad, sq, unit.Kind)...)
			}
		}
	})
	return session.FilterLegal(b, ad, color, pseudo, false, zerolog.Nop())
}

func TestPerftIsSelfConsistent(t *testing.T) {
	pos, err := board.LoadFEN("11/11/11/11/11/11/11/4i6/11/4I6/4C6/6c4 r - - 0 1")
	if err != nil {
		t.Fatalf("LoadFEN: %v", err)
	}
	ad := board.NewAirDefenseMap()
	ad.Rebuild(pos.Board)

	depth1 := perft(pos.Board, ad, board.Red, 1)
	if depth1 == 0 {
		t.Fatalf("expected at least one legal move for Red at depth 1")
	}

	var manualDepth2 int64
	for _, m := range legalMovesFor(pos.Board, ad, board.Red) {
		cmd := command.BuildMoveCommand(pos.Board, m)
		if err := cmd.Execute(pos.Board); err != nil {
			continue
		}
		ad.Rebuild(pos.Board)
		manualDepth2 += int64(len(legalMovesFor(pos.Board, ad, board.Blue)))
		_ = cmd.Undo(pos.Board)
		ad.Rebuild(pos.Board)
	}

	depth2 := perft(pos.Board, ad, board.Red, 2)
	if depth2 != manualDepth2 {
		t.Errorf("perft(2) = %d, manual recount = %d", depth2, manualDepth2)
	}
}
