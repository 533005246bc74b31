package board

// GenerateMoves returns every pseudo-legal move for the entire piece
// (stack or single unit) sitting at from, moving as one unit under the
// carrier's kind/config. Deploy sub-moves are generated separately via
// GenerateUnitMoves (spec.md §4.5/§4.6).
func GenerateMoves(b *Board, ad *AirDefenseMap, from Square) []Move {
	p := b.Get(from)
	if p.IsEmpty() {
		return nil
	}
	return generateForUnit(b, ad, from, p.Kind, p.Color, p.Heroic, false)
}

// GenerateUnitMoves returns pseudo-legal moves for a single passenger or
// carrier (identified by kind) within the stack at from, as a deploy
// sub-move. The rest of the stack remains behind on a successful deploy.
func GenerateUnitMoves(b *Board, ad *AirDefenseMap, from Square, unitKind PieceKind) []Move {
	p := b.Get(from)
	if p.IsEmpty() {
		return nil
	}
	var unit *Piece
	for _, f := range p.Flatten() {
		if f.Kind == unitKind {
			u := f
			unit = &u
			break
		}
	}
	if unit == nil {
		return nil
	}
	return generateForUnit(b, ad, from, unit.Kind, unit.Color, unit.Heroic, true)
}

func generateForUnit(b *Board, ad *AirDefenseMap, from Square, kind PieceKind, color Color, heroic bool, deploy bool) []Move {
	cfg := kind.Config()
	moveRange := cfg.MoveRange
	captureRange := cfg.CaptureRange
	if heroic {
		moveRange += cfg.HeroicRangeDelta
		captureRange += cfg.HeroicRangeDelta
	}
	var moves []Move
	for _, dir := range kind.Directions() {
		maxRange := captureRange
		if moveRange > maxRange {
			maxRange = moveRange
		}
		diagCap := captureRange
		diagMove := moveRange
		if cfg.Dirs == DirMixed && IsDiagonal(dir) {
			diagCap, diagMove = 1, 1
			if heroic {
				diagCap += cfg.HeroicRangeDelta
				diagMove += cfg.HeroicRangeDelta
			}
			if diagCap > maxRange {
				maxRange = diagCap
			}
		}
		cur := from
		// obstacleSeen tracks whether we've already passed one occupied
		// square along this ray. Pieces with IgnoresBlockingOnCapture may
		// capture an enemy found just beyond a single screening piece
		// (friend or foe); everything else stops dead at the first
		// obstacle, matching Tank/Artillery/Missile/Navy/AirForce's long
		// capture reach over intervening units (spec.md §4.5).
		obstacleSeen := false
		for step := 1; step <= maxRange; step++ {
			prev := cur
			next, ok := cur.Step(dir[0], dir[1])
			if !ok {
				break
			}
			if cfg.IsHeavy && BlocksHeavyCrossing(prev, next) {
				break
			}
			cur = next
			occ := b.Get(next)

			if occ.IsEmpty() {
				if !obstacleSeen && step <= diagMove && AdmitsTerrain(kind, next) {
					if kind == AirForce && pressureHaltsFlight(b, ad, from, dir, step, color) {
						break
					}
					moves = append(moves, Move{From: from, To: next, Kind: kind, Color: color, Flag: FlagNormal, IsDeploy: deploy})
				}
				continue
			}

			if !obstacleSeen {
				if occ.Color == color {
					if step <= diagMove && AdmitsTerrain(kind, next) {
						if combined, ok := Combine([]Piece{occ, unitFor(kind, color, heroic)}); ok && AdmitsTerrain(combined.Kind, next) {
							moves = append(moves, Move{From: from, To: next, Kind: kind, Color: color, Flag: FlagCombination, Captured: occ, IsDeploy: deploy})
						}
					}
					if cfg.IgnoresBlockingOnCapture {
						obstacleSeen = true
						continue
					}
					break
				}
				terrainOK := AdmitsTerrain(kind, next)
				reach := diagCap
				if !terrainOK {
					reach = diagCap - 1
				}
				if step <= reach && !(kind == AirForce && pressureHaltsFlight(b, ad, from, dir, step, color)) {
					moves = append(moves, buildCaptureMove(from, next, kind, color, occ, terrainOK && step <= diagMove, deploy))
				}
				if cfg.IgnoresBlockingOnCapture {
					obstacleSeen = true
					continue
				}
				break
			}

			// Second obstacle along the ray.
			if occ.Color == color {
				break
			}
			terrainOK := AdmitsTerrain(kind, next)
			reach := diagCap
			if !terrainOK {
				reach = diagCap - 1
			}
			if step <= reach && !(kind == AirForce && pressureHaltsFlight(b, ad, from, dir, step, color)) {
				moves = append(moves, buildCaptureMove(from, next, kind, color, occ, terrainOK && step <= diagMove, deploy))
			}
			break
		}
	}
	return moves
}

func unitFor(kind PieceKind, color Color, heroic bool) Piece {
	return Piece{Kind: kind, Color: color, Heroic: heroic}
}

func buildCaptureMove(from, to Square, kind PieceKind, color Color, captured Piece, canOccupy bool, deploy bool) Move {
	flag := FlagCapture
	if kind == AirForce && captured.ContainsKind(AirForce) {
		flag = FlagSuicideCapture
	} else if !canOccupy && !AdmitsTerrain(kind, to) {
		flag = FlagStayCapture
	}
	return Move{From: from, To: to, Kind: kind, Color: color, Flag: flag, Captured: captured, IsDeploy: deploy}
}
