package command

import "github.com/cotulenh/core/internal/board"

// GameState is the thin slice of game.Game that a StateUpdate action
// needs to read and mutate. Defined here (rather than importing package
// game) to avoid an import cycle: game imports command, not vice versa.
type GameState interface {
	Turn() board.Color
	SetTurn(board.Color)
	HalfMoveClock() int
	SetHalfMoveClock(int)
	FullMoveNumber() int
	SetFullMoveNumber(int)
	CurrentFEN() string
	RecordPosition(fen string)
	ForgetPosition(fen string)
}

// StateUpdate is the metadata half of a move: clock, turn, move number,
// and repetition bookkeeping (spec.md §4.6). It is wrapped in an Action
// via NewStateUpdateAction so it composes with board mutations in a
// single undoable Command.
type StateUpdate struct {
	gs        GameState
	isCapture bool

	prevTurn    board.Color
	prevHalf    int
	prevFull    int
	recordedFEN string
}

// NewStateUpdate captures nothing yet; state is snapshotted on execute so
// that constructing a StateUpdate has no side effects.
func NewStateUpdate(gs GameState, isCapture bool) *StateUpdate {
	return &StateUpdate{gs: gs, isCapture: isCapture}
}

func (s *StateUpdate) execute() error {
	s.prevTurn = s.gs.Turn()
	s.prevHalf = s.gs.HalfMoveClock()
	s.prevFull = s.gs.FullMoveNumber()

	if s.isCapture {
		s.gs.SetHalfMoveClock(0)
	} else {
		s.gs.SetHalfMoveClock(s.prevHalf + 1)
	}
	s.gs.SetTurn(s.prevTurn.Other())
	if s.prevTurn == board.Blue {
		s.gs.SetFullMoveNumber(s.prevFull + 1)
	}
	s.recordedFEN = s.gs.CurrentFEN()
	s.gs.RecordPosition(s.recordedFEN)
	return nil
}

func (s *StateUpdate) undo() error {
	s.gs.ForgetPosition(s.recordedFEN)
	s.gs.SetTurn(s.prevTurn)
	s.gs.SetHalfMoveClock(s.prevHalf)
	s.gs.SetFullMoveNumber(s.prevFull)
	return nil
}
