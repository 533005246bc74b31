package session

import (
	"github.com/rs/zerolog"

	"github.com/cotulenh/core/internal/board"
	"github.com/cotulenh/core/internal/command"
)

// FilterLegal narrows pseudo-legal moves down to legal ones (spec.md
// §4.8). A DEPLOY move is accepted unconditionally — deferring legality to
// commit time — when a session is already open or the source stack
// contains the Commander, since that is what allows a multi-step
// check-escape. Every other move is trial-executed and rolled back; a
// rejected trial is logged at debug level with the reason, so a caller
// replaying a game can see why a candidate never reached the legal list.
func FilterLegal(b *board.Board, ad *board.AirDefenseMap, color board.Color, moves []board.Move, sessionOpen bool, logger zerolog.Logger) []board.Move {
	var legal []board.Move
	for _, m := range moves {
		if m.IsDeploy && (sessionOpen || b.Get(m.From).ContainsKind(board.Commander)) {
			legal = append(legal, m)
			continue
		}
		if trialIsLegal(b, m, color, logger) {
			legal = append(legal, m)
		}
	}
	return legal
}

// trialIsLegal executes m, checks the mover's own king-safety condition,
// and always undoes before returning (spec.md §4.8). Errors during the
// trial are treated as illegal; they never propagate, but both an
// execution error and a failed king-safety check are logged at debug
// level before being swallowed.
func trialIsLegal(b *board.Board, m board.Move, color board.Color, logger zerolog.Logger) bool {
	cmd := command.BuildMoveCommand(b, m)
	if err := cmd.Execute(b); err != nil {
		logger.Debug().Stringer("from", m.From).Stringer("to", m.To).Stringer("kind", m.Kind).Err(err).Msg("trial move rejected: execution failed")
		return false
	}
	defer func() { _ = cmd.Undo(b) }()

	trialAD := board.NewAirDefenseMap()
	trialAD.Rebuild(b)

	commanderSq := b.CommanderSquare(color)
	if commanderSq == board.NoSquare {
		logger.Debug().Stringer("from", m.From).Stringer("to", m.To).Stringer("color", color).Msg("trial move rejected: commander missing from board")
		return false
	}
	if board.IsAttacked(b, trialAD, commanderSq, color.Other()) {
		logger.Debug().Stringer("from", m.From).Stringer("to", m.To).Stringer("kind", m.Kind).Stringer("commander", commanderSq).Msg("trial move rejected: leaves commander attacked")
		return false
	}
	if board.CommandersFaceOff(b) {
		logger.Debug().Stringer("from", m.From).Stringer("to", m.To).Stringer("kind", m.Kind).Msg("trial move rejected: commanders face off")
		return false
	}
	return true
}
