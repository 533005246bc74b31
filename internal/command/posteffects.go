package command

import "github.com/cotulenh/core/internal/board"

// attackerKey dedupes heroic-promotion candidates by (square, kind): a
// stack's carrier and its passengers can each independently attack the
// same target square, but each (square, kind) pair should be promoted at
// most once per command (spec.md §4.6).
type attackerKey struct {
	sq   board.Square
	kind board.PieceKind
}

// NewHeroicPromotionEffect builds the post-move LazyAction that promotes
// every distinct, not-yet-heroic moverColor attacker of the opposing
// commander to heroic, once this command's main actions have executed.
func NewHeroicPromotionEffect(b *board.Board, ad *board.AirDefenseMap, moverColor board.Color) *Action {
	return NewLazyAction(func() []*Action {
		defender := moverColor.Other()
		target := b.CommanderSquare(defender)
		if target == board.NoSquare {
			return nil
		}
		seen := map[attackerKey]bool{}
		var actions []*Action
		for _, sq := range board.AttackersOf(b, ad, target, moverColor) {
			occ := b.Get(sq)
			for _, unit := range occ.Flatten() {
				if unit.Color != moverColor || unit.Heroic {
					continue
				}
				if !board.CanCapture(b, ad, sq, unit, target) {
					continue
				}
				key := attackerKey{sq, unit.Kind}
				if seen[key] {
					continue
				}
				seen[key] = true
				actions = append(actions, SetHeroic(sq, unit.Kind, true))
			}
		}
		return actions
	})
}

// NewLastGuardEffect builds the post-move LazyAction that promotes color's
// sole remaining non-Commander piece to heroic, provided it is not
// carrying anything and not already heroic (spec.md §4.6). A stack that
// contains the Commander as carrier or passenger is excluded from the
// count entirely, since it is "the commander's square", not a guard.
func NewLastGuardEffect(b *board.Board, color board.Color) *Action {
	return NewLazyAction(func() []*Action {
		var candidateSq board.Square = board.NoSquare
		var candidate board.Piece
		count := 0
		b.ForEachPiece(func(sq board.Square, p board.Piece) {
			if p.Color != color || p.ContainsKind(board.Commander) {
				return
			}
			count++
			candidateSq, candidate = sq, p
		})
		if count != 1 || candidate.IsStack() || candidate.Heroic {
			return nil
		}
		return []*Action{SetHeroic(candidateSq, candidate.Kind, true)}
	})
}
