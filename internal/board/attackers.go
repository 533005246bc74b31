package board

// CommandersFaceOff reports whether the two commanders share a file or
// rank with nothing between them — the illegal "flying general" exposure
// (spec.md §4.5). Returns false if either commander is off the board.
func CommandersFaceOff(b *Board) bool {
	a, c := b.CommanderSquare(Red), b.CommanderSquare(Blue)
	if a == NoSquare || c == NoSquare || !SameFileOrRank(a, c) {
		return false
	}
	dFile, dRank := sign(c.File()-a.File()), sign(c.Rank()-a.Rank())
	cur := a
	for {
		next, ok := cur.Step(dFile, dRank)
		if !ok {
			return false
		}
		if next == c {
			return true
		}
		if !b.Get(next).IsEmpty() {
			return false
		}
		cur = next
	}
}

// AttackersOf returns the squares of every attackerColor piece that could
// capture on target, honoring terrain, blocking, range, and (for Air
// Force) air-defense pressure along the flight path (spec.md §4.4/§4.5).
// Used by heroic-promotion detection.
func AttackersOf(b *Board, ad *AirDefenseMap, target Square, attackerColor Color) []Square {
	var out []Square
	b.ForEachPiece(func(sq Square, p Piece) {
		if p.Color != attackerColor {
			return
		}
		for _, unit := range p.Flatten() {
			if unit.Color != attackerColor {
				continue
			}
			if CanCapture(b, ad, sq, unit, target) {
				out = append(out, sq)
				return
			}
		}
	})
	return out
}

// IsAttacked reports whether any attackerColor piece can capture on target.
func IsAttacked(b *Board, ad *AirDefenseMap, target Square, attackerColor Color) bool {
	found := false
	b.ForEachPiece(func(sq Square, p Piece) {
		if found || p.Color != attackerColor {
			return
		}
		for _, unit := range p.Flatten() {
			if unit.Color == attackerColor && CanCapture(b, ad, sq, unit, target) {
				found = true
				return
			}
		}
	})
	return found
}

// CanCapture reports whether a single unit (kind/color/heroic, as if
// standing alone at origin) could capture a piece sitting at target, given
// the current board occupancy for blocking purposes. This treats the unit
// in isolation from its stack, matching how passengers contribute their
// own attacking reach independent of the carrier (spec.md §4.5).
func CanCapture(b *Board, ad *AirDefenseMap, origin Square, unit Piece, target Square) bool {
	if origin == target {
		return false
	}
	cfg := unit.Kind.Config()
	rang := cfg.CaptureRange
	if unit.Heroic {
		rang += cfg.HeroicRangeDelta
	}
	if !AdmitsTerrain(unit.Kind, target) {
		rang-- // same reduced reach movegen uses for a target on foreign terrain
	}
	if rang <= 0 {
		return false
	}
	dFile := target.File() - origin.File()
	dRank := target.Rank() - origin.Rank()
	dir, steps, ok := matchDirection(unit.Kind, unit.Heroic, dFile, dRank)
	if !ok || steps > rang {
		return false
	}
	if cfg.IsHeavy && heavyCrossingBlocked(origin, dir, steps) {
		return false
	}
	if !cfg.IgnoresBlockingOnCapture {
		if blocked := rayBlocked(b, origin, dir, steps); blocked {
			return false
		}
	}
	if unit.Kind == AirForce {
		if pressureHaltsFlight(b, ad, origin, dir, steps, unit.Color) {
			return false
		}
	}
	return true
}

// matchDirection reports whether (dFile, dRank) lies exactly along one of
// kind's legal directions, and at how many steps.
func matchDirection(kind PieceKind, heroic bool, dFile, dRank int) (dir [2]int, steps int, ok bool) {
	if dFile == 0 && dRank == 0 {
		return dir, 0, false
	}
	stepFile, stepRank := sign(dFile), sign(dRank)
	if dFile != 0 && dRank != 0 && absInt(dFile) != absInt(dRank) {
		return dir, 0, false // not a straight diagonal
	}
	candidate := [2]int{stepFile, stepRank}
	for _, d := range kind.Directions() {
		if d == candidate {
			n := absInt(dFile)
			if n == 0 {
				n = absInt(dRank)
			}
			if kind.Config().Dirs == DirMixed && IsDiagonal(d) {
				// Missile: diagonal reach is 1, 2 when heroic; orthogonal
				// reaches the full range.
				maxDiag := 1
				if heroic {
					maxDiag += kind.Config().HeroicRangeDelta
				}
				if n > maxDiag {
					return dir, 0, false
				}
			}
			return candidate, n, true
		}
	}
	return dir, 0, false
}

// heavyCrossingBlocked reports whether any step of a heavy piece's ray from
// origin along dir crosses the river seam outside a matching bridge pair
// (spec.md §4.2/§4.5).
func heavyCrossingBlocked(origin Square, dir [2]int, steps int) bool {
	cur := origin
	for i := 1; i <= steps; i++ {
		next, ok := cur.Step(dir[0], dir[1])
		if !ok {
			return true
		}
		if BlocksHeavyCrossing(cur, next) {
			return true
		}
		cur = next
	}
	return false
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// rayBlocked reports whether any square strictly between origin and the
// (steps)-th square along dir is occupied.
func rayBlocked(b *Board, origin Square, dir [2]int, steps int) bool {
	cur := origin
	for i := 1; i < steps; i++ {
		next, ok := cur.Step(dir[0], dir[1])
		if !ok {
			return true
		}
		if !b.Get(next).IsEmpty() {
			return true
		}
		cur = next
	}
	return false
}

// pressureHaltsFlight reports whether the defender's AD net accumulates
// pressure >= 2 at any square strictly between origin and the destination,
// which halts an Air Force flight before it completes (spec.md §4.4).
func pressureHaltsFlight(b *Board, ad *AirDefenseMap, origin Square, dir [2]int, steps int, moverColor Color) bool {
	if ad == nil {
		return false
	}
	defender := moverColor.Other()
	cur := origin
	for i := 1; i < steps; i++ {
		next, ok := cur.Step(dir[0], dir[1])
		if !ok {
			return true
		}
		if ad.Pressure(defender, next) >= 2 {
			return true
		}
		cur = next
	}
	return false
}
