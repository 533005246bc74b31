// Package session implements the move session state machine (a turn that
// may emit several deploy sub-moves from one stack) and the legality
// filter that sits between pseudo-legal generation and committed history
// (spec.md §4.7, §4.8).
package session

import (
	"github.com/rs/zerolog"

	"github.com/cotulenh/core/internal/board"
	"github.com/cotulenh/core/internal/command"
	"github.com/cotulenh/core/internal/xerr"
)

// State is where a Session sits in its lifecycle.
type State uint8

const (
	NoSession State = iota
	StandardOpen
	DeployOpen
	Committed
)

// Session tracks one in-progress turn, possibly spanning several deploy
// sub-moves from a single stack, until it is committed or cancelled.
type Session struct {
	StackSquare   board.Square
	Turn          board.Color
	OriginalPiece board.Piece
	IsDeploy      bool
	Commands      []*command.Command
	BeforeFEN     string

	state State
}

// Ensure returns the existing session if one is open, or creates a fresh
// one rooted at move.From (spec.md §4.7's `ensure`).
func Ensure(existing *Session, b *board.Board, move board.Move, beforeFEN string) *Session {
	if existing != nil && existing.state != NoSession && existing.state != Committed {
		return existing
	}
	return &Session{
		StackSquare:   move.From,
		Turn:          move.Color,
		OriginalPiece: b.Get(move.From),
		IsDeploy:      move.IsDeploy,
		BeforeFEN:     beforeFEN,
		state:         openStateFor(move),
	}
}

func openStateFor(move board.Move) State {
	if move.IsDeploy {
		return DeployOpen
	}
	return StandardOpen
}

// State reports the session's current lifecycle position.
func (s *Session) State() State { return s.state }

// AddMove builds and executes the command for move, appending it to the
// session (spec.md §4.7's `addMove`).
func (s *Session) AddMove(b *board.Board, move board.Move) (*command.Command, error) {
	cmd := command.BuildMoveCommand(b, move)
	if err := cmd.Execute(b); err != nil {
		return nil, err
	}
	s.Commands = append(s.Commands, cmd)
	return cmd, nil
}

// UndoLastMove pops and undoes the most recent command. The caller should
// drop its session reference once State() reports NoSession.
func (s *Session) UndoLastMove(b *board.Board) error {
	if len(s.Commands) == 0 {
		return xerr.New(xerr.SessionInvalidOperation, "no moves to undo in this session")
	}
	last := s.Commands[len(s.Commands)-1]
	if err := last.Undo(b); err != nil {
		return err
	}
	s.Commands = s.Commands[:len(s.Commands)-1]
	if len(s.Commands) == 0 {
		s.state = NoSession
	}
	return nil
}

// IsComplete reports whether a deploy session has naturally run out of
// moves: no piece remaining in the residual stack has any legal move.
func (s *Session) IsComplete(b *board.Board, ad *board.AirDefenseMap) bool {
	if !s.IsDeploy {
		return false
	}
	residual := b.Get(s.StackSquare)
	if residual.IsEmpty() {
		return true
	}
	for _, unit := range residual.Flatten() {
		if len(FilterLegal(b, ad, unit.Color, board.GenerateUnitMoves(b, ad, s.StackSquare, unit.Kind), true, zerolog.Nop())) > 0 {
			return false
		}
	}
	return true
}

// CanCommit reports whether the session may be committed: for a deploy
// session, any residual stack must legally fit its own terrain; in every
// case, the mover's commander must not be attacked or exposed after the
// full sequence (spec.md §4.7's `canCommit`).
func (s *Session) CanCommit(b *board.Board, ad *board.AirDefenseMap) bool {
	if s.IsDeploy {
		residual := b.Get(s.StackSquare)
		if !residual.IsEmpty() && !board.AdmitsTerrain(residual.Kind, s.StackSquare) {
			return false
		}
	}
	commanderSq := b.CommanderSquare(s.Turn)
	if commanderSq == board.NoSquare {
		return false
	}
	if board.IsAttacked(b, ad, commanderSq, s.Turn.Other()) {
		return false
	}
	if board.CommandersFaceOff(b) {
		return false
	}
	return true
}

// Commit asserts CanCommit, attaches the turn/clock bookkeeping as a
// trailing action on the aggregate command so undo reverses it first, and
// marks the session Committed. The caller appends the returned command to
// history and clears its session reference.
func (s *Session) Commit(b *board.Board, ad *board.AirDefenseMap, gs command.GameState, isCapture bool) (*FinalCommand, error) {
	if !s.CanCommit(b, ad) {
		return nil, xerr.New(xerr.SessionInvalidOperation, "commit would leave %s's commander attacked or exposed", s.Turn)
	}
	su := command.NewStateUpdate(gs, isCapture)
	stateAction := command.NewStateUpdateAction(su)
	if err := stateAction.Execute(b); err != nil {
		return nil, err
	}
	s.state = Committed
	return &FinalCommand{Inner: command.NewDeploySequence(s.Commands), StateAction: stateAction}, nil
}

// Cancel undoes every command in the session and resets it to NoSession.
func (s *Session) Cancel(b *board.Board) error {
	for i := len(s.Commands) - 1; i >= 0; i-- {
		if err := s.Commands[i].Undo(b); err != nil {
			return err
		}
	}
	s.Commands = nil
	s.state = NoSession
	return nil
}

// Reversible is the minimal execute/undo contract FinalCommand composes.
type Reversible interface {
	Execute(b *board.Board) error
	Undo(b *board.Board) error
}

// FinalCommand bundles a session's board mutations with the StateUpdate
// that finalizes turn/clock bookkeeping, so the game facade holds one
// undoable unit per committed turn.
type FinalCommand struct {
	Inner       Reversible
	StateAction *command.Action
}

// Execute is a no-op: by the time Commit returns a FinalCommand, every
// sub-move has already executed via AddMove and the StateUpdate has
// already executed via Commit itself. The method exists only so
// FinalCommand satisfies Reversible alongside Undo.
func (f *FinalCommand) Execute(b *board.Board) error {
	return nil
}

// Undo reverses the state action first, then the board mutations — the
// inverse of the order Commit executed them in.
func (f *FinalCommand) Undo(b *board.Board) error {
	if err := f.StateAction.Undo(b); err != nil {
		return err
	}
	return f.Inner.Undo(b)
}
