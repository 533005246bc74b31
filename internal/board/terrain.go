package board

// Terrain masks are static per-square legality tables, derived once from
// file/rank (spec.md §4.2). Files: a=0 b=1 c=2 d=3 e=4 f=5 g=6 h=7 i=8 j=9
// k=10. Ranks are 0-indexed (rank1=0 .. rank12=11).

var (
	navyMask [NumRanks * stride]bool
	landMask [NumRanks * stride]bool
	bridge   [NumRanks * stride]bool
)

// river mouth squares where Navy may additionally sail, per spec.md §4.2:
// d5, d6, e5, e6.
var navyMouthSquares = []Square{
	NewSquare(3, 4), NewSquare(3, 5), // d5, d6
	NewSquare(4, 4), NewSquare(4, 5), // e5, e6
}

// bridgeSquares are the sole river crossings for heavy land pieces.
var bridgeSquares = []Square{
	NewSquare(5, 5), NewSquare(5, 6), // f6, f7
	NewSquare(7, 5), NewSquare(7, 6), // h6, h7
}

// riverRanks are the two ranks (0-indexed) the river occupies: rank 6 and
// rank 7 (1-indexed) sit between the two halves of the board.
var riverRanks = [2]int{5, 6}

func init() {
	for rank := 0; rank < NumRanks; rank++ {
		for file := 0; file < NumFiles; file++ {
			sq := NewSquare(file, rank)
			navyMask[sq] = file <= 2 // a, b, c
			landMask[sq] = file >= 2 // c .. k
		}
	}
	for _, sq := range navyMouthSquares {
		navyMask[sq] = true
		landMask[sq] = true // mixed zone
	}
	for _, sq := range bridgeSquares {
		bridge[sq] = true
	}
	// River ranks are pure water for land pieces, except the bridges and
	// the navy-mouth squares already marked mixed above.
	for _, rank := range riverRanks {
		for file := 2; file < NumFiles; file++ {
			sq := NewSquare(file, rank)
			if bridge[sq] {
				continue
			}
			isMouth := false
			for _, m := range navyMouthSquares {
				if m == sq {
					isMouth = true
					break
				}
			}
			if !isMouth {
				landMask[sq] = false
			}
		}
	}
}

// AdmitsNavy reports whether Navy may occupy sq.
func AdmitsNavy(sq Square) bool {
	if !sq.IsValid() {
		return false
	}
	return navyMask[sq]
}

// AdmitsLand reports whether a land piece may occupy sq.
func AdmitsLand(sq Square) bool {
	if !sq.IsValid() {
		return false
	}
	return landMask[sq]
}

// IsBridge reports whether sq is one of the four river-crossing squares.
func IsBridge(sq Square) bool {
	if !sq.IsValid() {
		return false
	}
	return bridge[sq]
}

// IsRiverSeam reports whether the two (0-indexed) ranks straddle the river,
// i.e. a heavy land piece moving between them must cross at a bridge.
func IsRiverSeam(rankA, rankB int) bool {
	lo, hi := rankA, rankB
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo == riverRanks[0] && hi == riverRanks[1]
}

// BlocksHeavyCrossing reports whether a single ray step from a to b crosses
// the river seam somewhere other than a matching pair of bridge squares on
// the same file — the sole legal crossing for a heavy piece (spec.md
// §4.2/§4.5).
func BlocksHeavyCrossing(a, b Square) bool {
	if !IsRiverSeam(a.Rank(), b.Rank()) {
		return false
	}
	return !(IsBridge(a) && IsBridge(b))
}

// AdmitsTerrain reports whether the given carrier kind may sit on sq — Air
// Force ignores terrain entirely (spec.md §4.5), Navy carriers need
// AdmitsNavy, everything else needs AdmitsLand.
func AdmitsTerrain(carrier PieceKind, sq Square) bool {
	if carrier == AirForce {
		return sq.IsValid()
	}
	if carrier == Navy {
		return AdmitsNavy(sq)
	}
	return AdmitsLand(sq)
}
