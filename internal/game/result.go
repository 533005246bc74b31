package game

import "github.com/cotulenh/core/internal/board"

// MoveResult is the public description of a completed (or intermediate
// deploy) move (spec.md §6).
type MoveResult struct {
	Color     board.Color
	From      board.Square
	To        board.Square
	ToMap     map[board.Square]board.PieceKind // deploy turns only: destination square -> deployed piece kind
	Piece     board.PieceKind
	Captured  *board.PieceKind
	Flags     string
	Before    string
	After     string
	SAN       string
	LAN       string
	Completed bool
}

// flagLetters renders a move's flag/deploy combination as the single
// FLAGS string MoveResult exposes. Letters: D deploy, S stay-capture,
// C capture, U suicide-capture, M combination; a plain move is "N".
func flagLetters(m board.Move) string {
	s := ""
	if m.IsDeploy {
		s += "D"
	}
	switch m.Flag {
	case board.FlagStayCapture:
		s += "S"
	case board.FlagCapture:
		s += "C"
	case board.FlagSuicideCapture:
		s += "U"
	case board.FlagCombination:
		s += "M"
	}
	if s == "" {
		return "N"
	}
	return s
}

func capturedKind(m board.Move) *board.PieceKind {
	if !m.IsCapture() {
		return nil
	}
	k := m.Captured.Kind
	return &k
}
