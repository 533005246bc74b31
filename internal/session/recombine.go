package session

import (
	"github.com/cotulenh/core/internal/board"
	"github.com/cotulenh/core/internal/command"
	"github.com/cotulenh/core/internal/xerr"
)

// Recombine retargets the residual passenger of kind expectedKind — still
// sitting at the session's origin stack square — so it rejoins the piece an
// earlier sub-move already deployed onto targetSquare. It inserts a new
// combination sub-move for expectedKind right after the earlier move that
// landed on targetSquare, then replays the whole sequence from BeforeFEN
// with that insertion. It succeeds only if every replayed sub-move is
// itself legal to execute; otherwise the original sequence is restored
// unchanged (spec.md §4.7's `recombine`).
func (s *Session) Recombine(b *board.Board, targetSquare board.Square, expectedKind board.PieceKind) error {
	if s.state != DeployOpen {
		return xerr.New(xerr.SessionInvalidOperation, "recombine requires an open deploy session")
	}
	idx := -1
	for i, cmd := range s.Commands {
		if cmd.Move.To == targetSquare {
			idx = i
		}
	}
	if idx < 0 {
		return xerr.New(xerr.SessionInvalidOperation, "no earlier sub-move landed on %s", targetSquare)
	}

	original := s.Commands
	for i := len(original) - 1; i >= 0; i-- {
		if err := original[i].Undo(b); err != nil {
			return xerr.Wrap(xerr.InternalInconsistency, err, "recombine failed to unwind session")
		}
	}

	residentMove := board.Move{
		Color:    s.Turn,
		From:     s.StackSquare,
		To:       targetSquare,
		Kind:     expectedKind,
		Flag:     board.FlagCombination,
		IsDeploy: true,
	}
	modified := make([]board.Move, 0, len(original)+1)
	for i, c := range original {
		modified = append(modified, c.Move)
		if i == idx {
			modified = append(modified, residentMove)
		}
	}

	replayed, err := replayMoves(b, modified)
	if err == nil {
		s.Commands = replayed
		return nil
	}

	// Restore the original, unmodified sequence.
	restored, restoreErr := replayMoves(b, movesOf(original))
	if restoreErr != nil {
		return xerr.Wrap(xerr.InternalInconsistency, restoreErr, "recombine rollback failed")
	}
	s.Commands = restored
	return xerr.New(xerr.CombinationFailed, "recombine of %s at %s produced an illegal sequence", expectedKind, targetSquare)
}

func movesOf(cmds []*command.Command) []board.Move {
	out := make([]board.Move, len(cmds))
	for i, c := range cmds {
		out[i] = c.Move
	}
	return out
}

// replayMoves executes moves in order on b, rolling back everything it
// replayed if any step fails.
func replayMoves(b *board.Board, moves []board.Move) ([]*command.Command, error) {
	built := make([]*command.Command, 0, len(moves))
	for _, mv := range moves {
		cmd := command.BuildMoveCommand(b, mv)
		if err := cmd.Execute(b); err != nil {
			for j := len(built) - 1; j >= 0; j-- {
				_ = built[j].Undo(b)
			}
			return nil, err
		}
		built = append(built, cmd)
	}
	return built, nil
}
