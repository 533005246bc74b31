package board

// PieceKind is one of the eleven CoTuLenh unit types.
type PieceKind uint8

const (
	Commander PieceKind = iota
	Infantry
	Militia
	Tank
	Engineer
	Artillery
	AntiAir
	Missile
	AirForce
	Navy
	Headquarter
	NoPieceKind PieceKind = 11
)

// Char returns the one-letter FEN/SAN tag for the kind (uppercase).
func (k PieceKind) Char() byte {
	switch k {
	case Commander:
		return 'C'
	case Infantry:
		return 'I'
	case Militia:
		return 'M'
	case Tank:
		return 'T'
	case Engineer:
		return 'E'
	case Artillery:
		return 'A'
	case AntiAir:
		return 'G'
	case Missile:
		return 'S'
	case AirForce:
		return 'F'
	case Navy:
		return 'N'
	case Headquarter:
		return 'H'
	default:
		return '?'
	}
}

// KindFromChar maps an uppercase FEN/SAN tag back to a PieceKind.
func KindFromChar(c byte) (PieceKind, bool) {
	switch c {
	case 'C':
		return Commander, true
	case 'I':
		return Infantry, true
	case 'M':
		return Militia, true
	case 'T':
		return Tank, true
	case 'E':
		return Engineer, true
	case 'A':
		return Artillery, true
	case 'G':
		return AntiAir, true
	case 'S':
		return Missile, true
	case 'F':
		return AirForce, true
	case 'N':
		return Navy, true
	case 'H':
		return Headquarter, true
	default:
		return NoPieceKind, false
	}
}

func (k PieceKind) String() string {
	names := [...]string{
		"Commander", "Infantry", "Militia", "Tank", "Engineer", "Artillery",
		"AntiAir", "Missile", "AirForce", "Navy", "Headquarter",
	}
	if int(k) >= len(names) {
		return "NoPieceKind"
	}
	return names[k]
}

// DirSet says which ray directions a piece may use.
type DirSet uint8

const (
	DirNone       DirSet = iota // Headquarter only
	DirOrthogonal               // N/S/E/W
	DirAll                      // 8-way
	DirMixed                    // Missile: orthogonal + diagonal with different ranges
)

// PieceConfig is the static, compile-time-constant per-kind rule table
// described in spec.md §9 ("no dynamic dispatch needed").
type PieceConfig struct {
	Dirs                     DirSet
	MoveRange                int // base, before heroic bonus
	CaptureRange             int // base, before heroic bonus
	HeroicRangeDelta         int // added to both move & capture range when heroic
	IgnoresBlockingOnCapture bool
	EmitsAD                  bool
	ADRadius                 int // base radius, before heroic bonus
	IsHeavy                  bool
}

// PieceConfigs is the const lookup table indexed by PieceKind.
var PieceConfigs = [11]PieceConfig{
	Commander:   {Dirs: DirAll, MoveRange: 99, CaptureRange: 1, HeroicRangeDelta: 1},
	Infantry:    {Dirs: DirOrthogonal, MoveRange: 1, CaptureRange: 1, HeroicRangeDelta: 1},
	Militia:     {Dirs: DirAll, MoveRange: 1, CaptureRange: 1, HeroicRangeDelta: 1},
	Tank:        {Dirs: DirOrthogonal, MoveRange: 2, CaptureRange: 2, HeroicRangeDelta: 1, IgnoresBlockingOnCapture: true},
	Engineer:    {Dirs: DirOrthogonal, MoveRange: 1, CaptureRange: 1, HeroicRangeDelta: 1},
	Artillery:   {Dirs: DirAll, MoveRange: 3, CaptureRange: 3, HeroicRangeDelta: 1, IgnoresBlockingOnCapture: true, IsHeavy: true},
	AntiAir:     {Dirs: DirOrthogonal, MoveRange: 1, CaptureRange: 1, HeroicRangeDelta: 1, EmitsAD: true, ADRadius: 1, IsHeavy: true},
	Missile:     {Dirs: DirMixed, MoveRange: 2, CaptureRange: 2, HeroicRangeDelta: 1, IgnoresBlockingOnCapture: true, IsHeavy: true},
	AirForce:    {Dirs: DirAll, MoveRange: 4, CaptureRange: 4, HeroicRangeDelta: 1, IgnoresBlockingOnCapture: true},
	Navy:        {Dirs: DirAll, MoveRange: 4, CaptureRange: 4, HeroicRangeDelta: 1, IgnoresBlockingOnCapture: true, EmitsAD: true, ADRadius: 2},
	Headquarter: {Dirs: DirNone, MoveRange: 0, CaptureRange: 0, HeroicRangeDelta: 1},
}

// Config returns the static rule table entry for the kind.
func (k PieceKind) Config() PieceConfig {
	return PieceConfigs[k]
}

// rayDirections for the 8 chess-like directions and 4 orthogonal ones.
var (
	orthogonalDirs = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	diagonalDirs   = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	allDirs        = [8][2]int{
		{0, 1}, {0, -1}, {1, 0}, {-1, 0},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
)

// Directions returns the (dFile, dRank) steps this kind may move/attack
// along. Missile reports all 8; callers check DirMixed with IsDiagonal to
// pick the orthogonal vs diagonal range per direction.
func (k PieceKind) Directions() [][2]int {
	cfg := k.Config()
	switch cfg.Dirs {
	case DirNone:
		return nil
	case DirOrthogonal:
		return orthogonalDirs[:]
	case DirAll, DirMixed:
		return allDirs[:]
	default:
		return nil
	}
}

// IsDiagonal reports whether a direction step is a diagonal one.
func IsDiagonal(d [2]int) bool {
	return d[0] != 0 && d[1] != 0
}
