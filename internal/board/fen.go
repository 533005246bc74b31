package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cotulenh/core/internal/xerr"
)

// Position bundles a Board with the trailing FEN metadata fields that the
// board itself does not own (spec.md §6).
type Position struct {
	Board          *Board
	Turn           Color
	HalfMoveClock  int
	FullMoveNumber int
}

// LoadFEN parses a base FEN (6 whitespace-separated fields; rank 12 first,
// run-length empties 1..11, uppercase=RED, lowercase=BLUE, '+' heroic
// marker precedes its piece letter, stacks in parentheses carrier first).
func LoadFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, xerr.New(xerr.FENInvalidFormat, "expected 6 fields, got %d", len(fields))
	}
	placement, turnField, _, _, halfField, fullField := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	ranks := strings.Split(placement, "/")
	if len(ranks) != NumRanks {
		return nil, xerr.New(xerr.FENInvalidRankCount, "expected %d ranks, got %d", NumRanks, len(ranks))
	}

	b := NewBoard()
	for i, rankStr := range ranks {
		rank := NumRanks - 1 - i // rank 12 (index 0 in FEN) is board rank index 11
		file := 0
		pieces, err := parseRank(rankStr)
		if err != nil {
			return nil, err
		}
		for _, tok := range pieces {
			if tok.empties > 0 {
				file += tok.empties
				continue
			}
			if file >= NumFiles {
				return nil, xerr.New(xerr.FENInvalidFileCount, "rank %d overflows %d files", rank+1, NumFiles)
			}
			sq := NewSquare(file, rank)
			if err := b.Put(tok.piece, sq, true); err != nil {
				return nil, err
			}
			file++
		}
		if file != NumFiles {
			return nil, xerr.New(xerr.FENInvalidFileCount, "rank %d has %d files, want %d", rank+1, file, NumFiles)
		}
	}

	var turn Color
	switch turnField {
	case "r":
		turn = Red
	case "b":
		turn = Blue
	default:
		return nil, xerr.New(xerr.FENInvalidFormat, "invalid turn field %q", turnField)
	}

	half, err := strconv.Atoi(halfField)
	if err != nil || half < 0 {
		return nil, xerr.New(xerr.FENInvalidFormat, "invalid halfmove clock %q", halfField)
	}
	full, err := strconv.Atoi(fullField)
	if err != nil || full <= 0 {
		return nil, xerr.New(xerr.FENInvalidFormat, "invalid fullmove number %q", fullField)
	}

	return &Position{Board: b, Turn: turn, HalfMoveClock: half, FullMoveNumber: full}, nil
}

type rankToken struct {
	empties int
	piece   Piece
}

// parseRank tokenizes one rank's FEN text into empties-runs and pieces
// (stacks collapsed to one Piece each via Combine).
func parseRank(s string) ([]rankToken, error) {
	var out []rankToken
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			j := i
			for j < len(s) && s[j] >= '0' && s[j] <= '9' {
				j++
			}
			n, _ := strconv.Atoi(s[i:j])
			if n < 1 || n > NumFiles {
				return nil, xerr.New(xerr.FENInvalidFileCount, "invalid empty run %q", s[i:j])
			}
			out = append(out, rankToken{empties: n})
			i = j
		case c == '(':
			j := strings.IndexByte(s[i:], ')')
			if j < 0 {
				return nil, xerr.New(xerr.FENMismatchParentheses, "unterminated stack in %q", s)
			}
			inner := s[i+1 : i+j]
			pieces, err := parsePieceRun(inner)
			if err != nil {
				return nil, err
			}
			stack, ok := Combine(pieces)
			if !ok {
				return nil, xerr.New(xerr.CombinationFailed, "illegal stack %q", inner)
			}
			out = append(out, rankToken{piece: stack})
			i += j + 1
		case c == ')':
			return nil, xerr.New(xerr.FENMismatchParentheses, "unmatched ) in %q", s)
		default:
			p, n, err := parseOnePiece(s[i:])
			if err != nil {
				return nil, err
			}
			out = append(out, rankToken{piece: p})
			i += n
		}
	}
	return out, nil
}

func parsePieceRun(s string) ([]Piece, error) {
	var pieces []Piece
	i := 0
	for i < len(s) {
		p, n, err := parseOnePiece(s[i:])
		if err != nil {
			return nil, err
		}
		pieces = append(pieces, p)
		i += n
	}
	return pieces, nil
}

func parseOnePiece(s string) (Piece, int, error) {
	if len(s) == 0 {
		return NoPiece, 0, xerr.New(xerr.FENInvalidFormat, "empty piece token")
	}
	heroic := false
	i := 0
	if s[0] == '+' {
		heroic = true
		i++
		if i >= len(s) {
			return NoPiece, 0, xerr.New(xerr.FENInvalidPiece, "dangling heroic marker")
		}
	}
	c := s[i]
	upper := c
	if c >= 'a' && c <= 'z' {
		upper = c - 'a' + 'A'
	}
	kind, ok := KindFromChar(upper)
	if !ok {
		return NoPiece, 0, xerr.New(xerr.FENInvalidPiece, "unknown piece letter %q", string(c))
	}
	color := Red
	if c >= 'a' && c <= 'z' {
		color = Blue
	}
	return Piece{Kind: kind, Color: color, Heroic: heroic}, i + 1, nil
}

// FEN serializes the position back to base FEN form.
func (pos *Position) FEN() string {
	var ranks []string
	for i := 0; i < NumRanks; i++ {
		rank := NumRanks - 1 - i
		ranks = append(ranks, pos.serializeRank(rank))
	}
	turn := "r"
	if pos.Turn == Blue {
		turn = "b"
	}
	return fmt.Sprintf("%s %s - - %d %d", strings.Join(ranks, "/"), turn, pos.HalfMoveClock, pos.FullMoveNumber)
}

func (pos *Position) serializeRank(rank int) string {
	var sb strings.Builder
	empties := 0
	flush := func() {
		if empties > 0 {
			sb.WriteString(strconv.Itoa(empties))
			empties = 0
		}
	}
	for file := 0; file < NumFiles; file++ {
		sq := NewSquare(file, rank)
		p := pos.Board.Get(sq)
		if p.IsEmpty() {
			empties++
			continue
		}
		flush()
		sb.WriteString(serializePiece(p))
	}
	flush()
	return sb.String()
}

func serializePiece(p Piece) string {
	if !p.IsStack() {
		return pieceToken(p)
	}
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(pieceToken(Piece{Kind: p.Kind, Color: p.Color, Heroic: p.Heroic}))
	for _, c := range p.Carrying {
		sb.WriteString(pieceToken(c))
	}
	sb.WriteByte(')')
	return sb.String()
}

func pieceToken(p Piece) string {
	c := p.Kind.Char()
	if p.Color == Blue {
		c = c - 'A' + 'a'
	}
	if p.Heroic {
		return "+" + string(c)
	}
	return string(c)
}
