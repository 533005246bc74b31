package game

import (
	"github.com/cotulenh/core/internal/board"
	"github.com/cotulenh/core/internal/command"
)

// HistoryEntry is one committed turn: a single move, or every sub-move of
// a deploy turn grouped together (spec.md §4.10's `history`).
type HistoryEntry struct {
	Color    board.Color
	Moves    []board.Move
	SAN      string
	LAN      string
	Before   string
	After    string
	Captured bool
}

// History returns every committed turn in play order.
func (g *Game) History() []HistoryEntry {
	out := make([]HistoryEntry, len(g.history))
	copy(out, g.history)
	return out
}

// ReplayFromStart rebuilds the position by undoing nothing and instead
// replaying every committed turn from the game's start FEN on a fresh
// board, preserving deploy sequence grouping (spec.md §4.10, testable
// property 9). It returns the resulting FEN, which must equal FEN().
func (g *Game) ReplayFromStart() (string, error) {
	pos, err := board.LoadFEN(g.startFEN)
	if err != nil {
		return "", err
	}
	ad := board.NewAirDefenseMap()
	ad.Rebuild(pos.Board)
	for _, entry := range g.history {
		for _, mv := range entry.Moves {
			cmd := command.BuildMoveCommand(pos.Board, mv)
			if err := cmd.Execute(pos.Board); err != nil {
				return "", err
			}
			ad.Rebuild(pos.Board)
			if err := cmd.AppendPostEffect(pos.Board, command.NewHeroicPromotionEffect(pos.Board, ad, mv.Color)); err != nil {
				return "", err
			}
			if g.lastGuard {
				if err := cmd.AppendPostEffect(pos.Board, command.NewLastGuardEffect(pos.Board, mv.Color)); err != nil {
					return "", err
				}
			}
			ad.Rebuild(pos.Board)
		}
		if entry.Captured {
			pos.HalfMoveClock = 0
		} else {
			pos.HalfMoveClock++
		}
		pos.Turn = entry.Color.Other()
		if entry.Color == board.Blue {
			pos.FullMoveNumber++
		}
	}
	return pos.FEN(), nil
}
