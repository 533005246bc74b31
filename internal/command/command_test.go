package command

import (
	"testing"

	"github.com/cotulenh/core/internal/board"
)

func mustPos(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.LoadFEN(fen)
	if err != nil {
		t.Fatalf("LoadFEN(%q): %v", fen, err)
	}
	return pos
}

func TestNormalMoveCommandExecuteUndo(t *testing.T) {
	pos := mustPos(t, "11/11/11/11/11/11/11/11/11/11/4I6/11 r - - 0 1")
	from := board.NewSquare(4, 1)
	to := board.NewSquare(4, 2)
	move := board.Move{From: from, To: to, Kind: board.Infantry, Color: board.Red, Flag: board.FlagNormal}

	before := pos.FEN()
	cmd := BuildMoveCommand(pos.Board, move)
	if err := cmd.Execute(pos.Board); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !pos.Board.Get(from).IsEmpty() || pos.Board.Get(to).IsEmpty() {
		t.Fatalf("expected piece to have moved from %s to %s", from, to)
	}
	if err := cmd.Undo(pos.Board); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if after := pos.FEN(); after != before {
		t.Errorf("undo did not restore FEN:\n got %q\nwant %q", after, before)
	}
}

func TestCaptureMoveCommandExecuteUndo(t *testing.T) {
	pos := mustPos(t, "11/11/11/11/11/11/11/11/11/4I6/4m6/11 r - - 0 1")
	from := board.NewSquare(4, 2)
	to := board.NewSquare(4, 1)
	captured := pos.Board.Get(to)
	move := board.Move{From: from, To: to, Kind: board.Infantry, Color: board.Red, Flag: board.FlagCapture, Captured: captured}

	before := pos.FEN()
	cmd := BuildMoveCommand(pos.Board, move)
	if err := cmd.Execute(pos.Board); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := pos.Board.Get(to); got.Color != board.Red || got.Kind != board.Infantry {
		t.Fatalf("expected red infantry at %s, got %+v", to, got)
	}
	if err := cmd.Undo(pos.Board); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if after := pos.FEN(); after != before {
		t.Errorf("undo did not restore FEN:\n got %q\nwant %q", after, before)
	}
}

func TestStayCaptureCommandLeavesMoverInPlace(t *testing.T) {
	pos := mustPos(t, "11/11/11/11/11/11/11/11/2N8/3t7/11/11 r - - 0 1")
	from := board.NewSquare(2, 3)
	to := board.NewSquare(3, 2)
	captured := pos.Board.Get(to)
	move := board.Move{From: from, To: to, Kind: board.Navy, Color: board.Red, Flag: board.FlagStayCapture, Captured: captured}

	cmd := BuildMoveCommand(pos.Board, move)
	if err := cmd.Execute(pos.Board); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if pos.Board.Get(from).Kind != board.Navy {
		t.Errorf("expected navy to remain at origin %s", from)
	}
	if !pos.Board.Get(to).IsEmpty() {
		t.Errorf("expected target %s to be cleared", to)
	}
	if err := cmd.Undo(pos.Board); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if pos.Board.Get(to).Kind != board.Tank {
		t.Errorf("expected captured tank restored at %s", to)
	}
}

func TestLastGuardPromotion(t *testing.T) {
	pos := mustPos(t, "11/11/11/11/11/11/11/11/11/11/4I6/4C6 r - - 0 1")
	effect := NewLastGuardEffect(pos.Board, board.Red)
	if err := effect.Execute(pos.Board); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	sq := board.NewSquare(4, 1)
	if !pos.Board.Get(sq).Heroic {
		t.Errorf("expected lone infantry to be promoted heroic")
	}
	if err := effect.Undo(pos.Board); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if pos.Board.Get(sq).Heroic {
		t.Errorf("expected undo to revert heroic promotion")
	}
}
