// Package command implements the undoable action/command layer that sits
// between the pseudo-legal move generator and the game facade: every
// board mutation is expressed as a small atomic Action, composed into a
// Command that can be executed once and undone exactly once.
package command

import (
	"github.com/cotulenh/core/internal/board"
	"github.com/cotulenh/core/internal/xerr"
)

// Action is one atomic, undoable board mutation (spec.md §4.6). Exactly
// one of the tagged constructors below should be used to build one;
// Execute and Undo are symmetric.
type Action struct {
	kind actionKind

	// RemovePiece / PlacePiece / SetHeroic fields.
	square board.Square
	sel    board.PieceOrAll
	piece  board.Piece
	kindTo board.PieceKind
	value  bool

	// snapshots captured on Execute, consumed on Undo.
	removed    board.Piece
	hadRemoved bool
	prevPiece  board.Piece
	hadPrev    bool
	prevHeroic bool

	// StateUpdate fields.
	state *StateUpdate

	// LazyAction fields.
	factory  func() []*Action
	children []*Action
	built    bool
}

type actionKind uint8

const (
	kindRemove actionKind = iota
	kindPlace
	kindSetHeroic
	kindStateUpdate
	kindLazy
)

// RemovePiece builds an action that removes sel from square, snapshotting
// whatever was there for undo.
func RemovePiece(square board.Square, sel board.PieceOrAll) *Action {
	return &Action{kind: kindRemove, square: square, sel: sel}
}

// PlacePiece builds an action that places piece at square (combining with
// any occupant), snapshotting the prior occupant for undo.
func PlacePiece(square board.Square, piece board.Piece) *Action {
	return &Action{kind: kindPlace, square: square, piece: piece}
}

// SetHeroic builds an action that sets kind's heroic flag at square.
func SetHeroic(square board.Square, kind board.PieceKind, value bool) *Action {
	return &Action{kind: kindSetHeroic, square: square, kindTo: kind, value: value}
}

// NewStateUpdateAction wraps a StateUpdate as an Action.
func NewStateUpdateAction(s *StateUpdate) *Action {
	return &Action{kind: kindStateUpdate, state: s}
}

// NewLazyAction defers building its child action list until first
// Execute; Undo only runs if Execute actually ran (spec.md §4.6).
func NewLazyAction(factory func() []*Action) *Action {
	return &Action{kind: kindLazy, factory: factory}
}

// Execute applies the action to b, recording whatever Undo will need.
func (a *Action) Execute(b *board.Board) error {
	switch a.kind {
	case kindRemove:
		removed, err := b.Remove(a.square, a.sel)
		if err != nil {
			return err
		}
		a.removed, a.hadRemoved = removed, true
		return nil
	case kindPlace:
		prev := b.Get(a.square)
		a.prevPiece, a.hadPrev = prev, !prev.IsEmpty()
		allowCombine := a.hadPrev
		if err := b.Put(a.piece, a.square, allowCombine); err != nil {
			return err
		}
		return nil
	case kindSetHeroic:
		prev, err := b.SetHeroic(a.square, a.kindTo, a.value)
		if err != nil {
			return err
		}
		a.prevHeroic = prev
		return nil
	case kindStateUpdate:
		return a.state.execute()
	case kindLazy:
		if !a.built {
			a.children = a.factory()
			a.built = true
		}
		for i, child := range a.children {
			if err := child.Execute(b); err != nil {
				for j := i - 1; j >= 0; j-- {
					_ = a.children[j].Undo(b)
				}
				return err
			}
		}
		return nil
	default:
		return xerr.New(xerr.InternalInconsistency, "unknown action kind")
	}
}

// Undo reverses a previously executed action.
func (a *Action) Undo(b *board.Board) error {
	switch a.kind {
	case kindRemove:
		if !a.hadRemoved {
			return nil
		}
		return b.Put(a.removed, a.square, !b.Get(a.square).IsEmpty())
	case kindPlace:
		if _, err := b.Remove(a.square, board.All()); err != nil {
			return err
		}
		if a.hadPrev {
			return b.Put(a.prevPiece, a.square, false)
		}
		return nil
	case kindSetHeroic:
		_, err := b.SetHeroic(a.square, a.kindTo, a.prevHeroic)
		return err
	case kindStateUpdate:
		return a.state.undo()
	case kindLazy:
		if !a.built {
			return nil
		}
		for i := len(a.children) - 1; i >= 0; i-- {
			if err := a.children[i].Undo(b); err != nil {
				return err
			}
		}
		return nil
	default:
		return xerr.New(xerr.InternalInconsistency, "unknown action kind")
	}
}
