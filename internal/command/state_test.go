package command

import (
	"testing"

	"github.com/cotulenh/core/internal/board"
)

type fakeGameState struct {
	turn      board.Color
	half      int
	full      int
	positions []string
}

func (f *fakeGameState) Turn() board.Color          { return f.turn }
func (f *fakeGameState) SetTurn(c board.Color)      { f.turn = c }
func (f *fakeGameState) HalfMoveClock() int         { return f.half }
func (f *fakeGameState) SetHalfMoveClock(n int)      { f.half = n }
func (f *fakeGameState) FullMoveNumber() int        { return f.full }
func (f *fakeGameState) SetFullMoveNumber(n int)     { f.full = n }
func (f *fakeGameState) CurrentFEN() string         { return "fen-stub" }
func (f *fakeGameState) RecordPosition(fen string)  { f.positions = append(f.positions, fen) }
func (f *fakeGameState) ForgetPosition(fen string) {
	for i, p := range f.positions {
		if p == fen {
			f.positions = append(f.positions[:i], f.positions[i+1:]...)
			return
		}
	}
}

func TestStateUpdateCaptureResetsHalfMoveClock(t *testing.T) {
	gs := &fakeGameState{turn: board.Red, half: 5, full: 3}
	su := NewStateUpdate(gs, true)
	action := NewStateUpdateAction(su)
	if err := action.Execute(nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if gs.half != 0 {
		t.Errorf("expected halfmove clock reset on capture, got %d", gs.half)
	}
	if gs.turn != board.Blue {
		t.Errorf("expected turn to switch to Blue, got %v", gs.turn)
	}
	if gs.full != 3 {
		t.Errorf("full move number should not bump until Blue finishes, got %d", gs.full)
	}
	if len(gs.positions) != 1 {
		t.Fatalf("expected one recorded position, got %d", len(gs.positions))
	}
	if err := action.Undo(nil); err != nil {
		t.Fatalf("Undo: %v", err)
	}
	if gs.half != 5 || gs.turn != board.Red || gs.full != 3 {
		t.Errorf("undo did not restore prior state: %+v", gs)
	}
	if len(gs.positions) != 0 {
		t.Errorf("expected undo to forget the recorded position")
	}
}

func TestStateUpdateBumpsFullMoveAfterBlue(t *testing.T) {
	gs := &fakeGameState{turn: board.Blue, half: 2, full: 4}
	su := NewStateUpdate(gs, false)
	action := NewStateUpdateAction(su)
	if err := action.Execute(nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if gs.full != 5 {
		t.Errorf("expected full move number to bump to 5, got %d", gs.full)
	}
	if gs.half != 3 {
		t.Errorf("expected halfmove clock to increment, got %d", gs.half)
	}
}
