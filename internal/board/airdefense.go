package board

// AirDefenseMap tracks, per color, which squares are covered by that
// color's Navy/AntiAir emitters and by how many distinct origins — the
// "pressure" that halts an Air Force flight path once it reaches 2 or
// more (spec.md §4.4).
type AirDefenseMap struct {
	origins [2]map[Square][]Square // color -> covered square -> emitting origins
}

// NewAirDefenseMap builds an empty map; call Rebuild before first use.
func NewAirDefenseMap() *AirDefenseMap {
	return &AirDefenseMap{
		origins: [2]map[Square][]Square{
			Red:  make(map[Square][]Square),
			Blue: make(map[Square][]Square),
		},
	}
}

// Rebuild recomputes full AD coverage from scratch. Each emitter (Navy or
// AntiAir, at any stack depth) contributes a disc centered on its own
// current square, with radius = base ADRadius + HeroicRangeDelta if that
// specific piece is heroic. A piece's own heroic flag governs only its own
// disc, independent of carrier/passenger status (resolved ambiguity,
// SPEC_FULL.md §4).
func (m *AirDefenseMap) Rebuild(b *Board) {
	m.origins[Red] = make(map[Square][]Square)
	m.origins[Blue] = make(map[Square][]Square)
	b.ForEachPiece(func(sq Square, p Piece) {
		for _, unit := range p.Flatten() {
			cfg := unit.Kind.Config()
			if !cfg.EmitsAD {
				continue
			}
			radius := cfg.ADRadius
			if unit.Heroic {
				radius += cfg.HeroicRangeDelta
			}
			m.emitDisc(unit.Color, sq, radius)
		}
	})
}

func (m *AirDefenseMap) emitDisc(c Color, origin Square, radius int) {
	for rank := 0; rank < NumRanks; rank++ {
		for file := 0; file < NumFiles; file++ {
			sq := NewSquare(file, rank)
			if Chebyshev(origin, sq) <= radius {
				m.origins[c][sq] = append(m.origins[c][sq], origin)
			}
		}
	}
}

// Pressure returns how many defenderColor origins cover sq (i.e.
// defenderColor's own AD net, which an enemy Air Force flies into).
func (m *AirDefenseMap) Pressure(defenderColor Color, sq Square) int {
	return len(m.origins[defenderColor][sq])
}

// CoveredBy reports whether color's AD net covers sq at all.
func (m *AirDefenseMap) CoveredBy(color Color, sq Square) bool {
	return len(m.origins[color][sq]) > 0
}

// Origins returns the squares emitting AD coverage of color over sq.
func (m *AirDefenseMap) Origins(color Color, sq Square) []Square {
	return m.origins[color][sq]
}
