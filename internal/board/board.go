package board

import (
	"github.com/cotulenh/core/internal/xerr"
)

// Board owns every piece on the 11x12 grid. Squares not in play (the
// padding gaps of the 0x88-style stride) are simply never addressed by a
// valid Square.
type Board struct {
	squares    [NumRanks * stride]Piece
	commanders [2]Square
}

// NewBoard returns an empty board with no commanders placed.
func NewBoard() *Board {
	b := &Board{}
	for i := range b.squares {
		b.squares[i] = NoPiece
	}
	b.commanders[Red] = NoSquare
	b.commanders[Blue] = NoSquare
	return b
}

// Get returns the piece at sq, or NoPiece if empty or off-board.
func (b *Board) Get(sq Square) Piece {
	if !sq.IsValid() {
		return NoPiece
	}
	return b.squares[sq]
}

// CommanderSquare returns the square of color's commander, or NoSquare.
func (b *Board) CommanderSquare(c Color) Square {
	return b.commanders[c]
}

// Put places piece at sq, combining with any occupant when allowCombine is
// set. Validates terrain against the final stored piece's carrier kind,
// rejects a second commander of the same color, and rejects unstackable
// combinations (spec.md §4.1).
func (b *Board) Put(piece Piece, sq Square, allowCombine bool) error {
	if !sq.IsValid() {
		return xerr.New(xerr.BoardInvalidSquare, "square %v is off-board", sq)
	}
	final := piece
	occupant := b.Get(sq)
	if !occupant.IsEmpty() {
		if !allowCombine {
			return xerr.New(xerr.CombinationFailed, "square %s already occupied", sq)
		}
		combined, ok := Combine([]Piece{occupant, piece})
		if !ok {
			return xerr.New(xerr.CombinationFailed, "cannot combine %s and %s at %s", occupant.Kind, piece.Kind, sq)
		}
		final = combined
	}
	if !AdmitsTerrain(final.Kind, sq) {
		return xerr.New(xerr.BoardInvalidTerrain, "%s cannot occupy %s", final.Kind, sq)
	}
	if final.ContainsKind(Commander) {
		existing := b.commanders[final.Color]
		if existing != NoSquare && existing != sq {
			return xerr.New(xerr.CommanderLimitExceeded, "color %s already has a commander at %s", final.Color, existing)
		}
	}
	// Enemy commander replacement clears the opposing commander slot.
	if !occupant.IsEmpty() && occupant.Color != final.Color && occupant.ContainsKind(Commander) {
		b.commanders[occupant.Color] = NoSquare
	}
	b.squares[sq] = final
	if final.ContainsKind(Commander) {
		b.commanders[final.Color] = sq
	}
	return nil
}

// PieceOrAll selects what Remove should take off a square: the whole
// occupant, or one specific kind extracted from a stack.
type PieceOrAll struct {
	All  bool
	Kind PieceKind
}

// All selects "remove the entire occupant".
func All() PieceOrAll { return PieceOrAll{All: true} }

// Specific selects "remove just this kind from the stack".
func Specific(k PieceKind) PieceOrAll { return PieceOrAll{Kind: k} }

// Remove takes piece(s) off sq and returns the piece that was removed.
func (b *Board) Remove(sq Square, sel PieceOrAll) (Piece, error) {
	if !sq.IsValid() {
		return NoPiece, xerr.New(xerr.BoardInvalidSquare, "square %v is off-board", sq)
	}
	occupant := b.Get(sq)
	if occupant.IsEmpty() {
		return NoPiece, xerr.New(xerr.MovePieceNotFound, "no piece at %s", sq)
	}
	if sel.All || !occupant.IsStack() {
		b.squares[sq] = NoPiece
		if occupant.ContainsKind(Commander) {
			if b.commanders[occupant.Color] == sq {
				b.commanders[occupant.Color] = NoSquare
			}
		}
		return occupant, nil
	}
	remaining, removed, ok := Remove(occupant, sel.Kind)
	if !ok {
		return NoPiece, xerr.New(xerr.MovePieceNotFound, "kind %s not present in stack at %s", sel.Kind, sq)
	}
	b.squares[sq] = remaining
	if removed.Kind == Commander {
		b.commanders[removed.Color] = NoSquare
	} else if !remaining.IsEmpty() && remaining.ContainsKind(Commander) {
		b.commanders[remaining.Color] = sq
	}
	return removed, nil
}

// SetHeroic flips the heroic flag of the piece (or passenger, matched by
// kind) at sq, returning the previous value.
func (b *Board) SetHeroic(sq Square, kind PieceKind, value bool) (bool, error) {
	if !sq.IsValid() {
		return false, xerr.New(xerr.BoardInvalidSquare, "square %v is off-board", sq)
	}
	occupant := b.squares[sq]
	if occupant.IsEmpty() {
		return false, xerr.New(xerr.MovePieceNotFound, "no piece at %s", sq)
	}
	if occupant.Kind == kind {
		prev := occupant.Heroic
		occupant.Heroic = value
		b.squares[sq] = occupant
		return prev, nil
	}
	for i := range occupant.Carrying {
		if occupant.Carrying[i].Kind == kind {
			prev := occupant.Carrying[i].Heroic
			occupant.Carrying[i].Heroic = value
			b.squares[sq] = occupant
			return prev, nil
		}
	}
	return false, xerr.New(xerr.MovePieceNotFound, "kind %s not present at %s", kind, sq)
}

// Clone deep-copies the board, including the commander index.
func (b *Board) Clone() *Board {
	out := &Board{commanders: b.commanders}
	for i, p := range b.squares {
		out.squares[i] = p.Clone()
	}
	return out
}

// ForEachPiece calls f for every occupied square on the board.
func (b *Board) ForEachPiece(f func(sq Square, p Piece)) {
	for rank := 0; rank < NumRanks; rank++ {
		for file := 0; file < NumFiles; file++ {
			sq := NewSquare(file, rank)
			if p := b.squares[sq]; !p.IsEmpty() {
				f(sq, p)
			}
		}
	}
}

// ValidateInvariants checks the universal invariants from spec.md §8
// (1-3): commander bookkeeping, blueprint-canonical stacks, and terrain
// compatibility. Returns the first violation found, or nil.
func (b *Board) ValidateInvariants() error {
	for c := Red; c <= Blue; c++ {
		sq := b.commanders[c]
		if sq == NoSquare {
			continue
		}
		p := b.Get(sq)
		if p.IsEmpty() || !p.ContainsKind(c.commanderMarker()) {
			return xerr.New(xerr.InternalInconsistency, "commander index for %s points at %s but no commander found there", c, sq)
		}
	}
	var err error
	b.ForEachPiece(func(sq Square, p Piece) {
		if err != nil {
			return
		}
		if len(p.Carrying) > 0 {
			if _, ok := Combine(p.Flatten()); !ok {
				err = xerr.New(xerr.InternalInconsistency, "stack at %s is not blueprint-canonical", sq)
				return
			}
		}
		if !AdmitsTerrain(p.Kind, sq) {
			err = xerr.New(xerr.InternalInconsistency, "piece %s at %s violates terrain", p.Kind, sq)
		}
	})
	return err
}

// commanderMarker exists only so ValidateInvariants reads naturally; a
// commander slot always points at a piece containing a Commander of that
// color, regardless of which color field we index by.
func (c Color) commanderMarker() PieceKind { return Commander }
