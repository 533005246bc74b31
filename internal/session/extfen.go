package session

import (
	"fmt"
	"strings"

	"github.com/cotulenh/core/internal/board"
)

// ExtendedFEN renders the extended-FEN snapshot of an open deploy session
// (spec.md §4.7): the base FEN as of session start, followed by
// "<origin>:<stayPiece|>:<san1,san2,...>", with a trailing "..." marker
// when the origin stack still holds a residual piece.
func ExtendedFEN(baseFEN string, origin board.Square, residual board.Piece, sans []string) string {
	stayTok := ""
	trailer := ""
	if !residual.IsEmpty() {
		stayTok = string(residual.Kind.Char())
		trailer = "..."
	}
	return fmt.Sprintf("%s %s:%s:%s%s", baseFEN, origin, stayTok, strings.Join(sans, ","), trailer)
}
