package board

import "sort"

// Piece is a single unit, possibly carrying passengers. Carrying arrays are
// shallow (blueprint-limited to at most two passengers) and held by value;
// commands clone a Piece wholesale when they need an undo snapshot.
type Piece struct {
	Kind     PieceKind
	Color    Color
	Heroic   bool
	Carrying []Piece
}

// NoPiece is the empty-square marker. It is not the zero value of Piece (a
// zero Piece has Kind Commander), so empty squares hold NoPiece explicitly.
var NoPiece = Piece{Kind: NoPieceKind, Color: NoColor}

// IsEmpty reports whether the square this piece would sit on is empty.
func (p Piece) IsEmpty() bool {
	return p.Kind == NoPieceKind
}

// IsStack reports whether p carries at least one passenger.
func (p Piece) IsStack() bool {
	return len(p.Carrying) > 0
}

// Clone deep-copies a piece (and its passengers), for command undo
// snapshots and trial execution.
func (p Piece) Clone() Piece {
	if len(p.Carrying) == 0 {
		return Piece{Kind: p.Kind, Color: p.Color, Heroic: p.Heroic}
	}
	carrying := make([]Piece, len(p.Carrying))
	for i, c := range p.Carrying {
		carrying[i] = c.Clone()
	}
	return Piece{Kind: p.Kind, Color: p.Color, Heroic: p.Heroic, Carrying: carrying}
}

// Flatten returns the carrier followed by all passengers, depth-first —
// "the flattened form" referenced throughout spec.md for commander lookup
// and heroic promotion bookkeeping.
func (p Piece) Flatten() []Piece {
	if p.IsEmpty() {
		return nil
	}
	out := []Piece{{Kind: p.Kind, Color: p.Color, Heroic: p.Heroic}}
	for _, c := range p.Carrying {
		out = append(out, c.Flatten()...)
	}
	return out
}

// ContainsKind reports whether the stack (carrier or any passenger)
// contains a piece of the given kind.
func (p Piece) ContainsKind(k PieceKind) bool {
	for _, f := range p.Flatten() {
		if f.Kind == k {
			return true
		}
	}
	return false
}

// blueprint describes one legal (carrier, passenger-set) combination.
type blueprint struct {
	carrier    PieceKind
	primary    map[PieceKind]bool // at most one of these
	secondary  map[PieceKind]bool // additionally at most one of these
}

func kindSet(ks ...PieceKind) map[PieceKind]bool {
	m := make(map[PieceKind]bool, len(ks))
	for _, k := range ks {
		m[k] = true
	}
	return m
}

// blueprints is the fixed stacking table from spec.md §3.
var blueprints = []blueprint{
	{
		carrier:   Navy,
		primary:   kindSet(AirForce),
		secondary: kindSet(Commander, Infantry, Militia, Tank),
	},
	{
		carrier:   Tank,
		primary:   kindSet(Commander, Infantry, Militia),
	},
	{
		carrier:   Engineer,
		primary:   kindSet(Artillery, AntiAir, Missile),
	},
	{
		carrier:   AirForce,
		primary:   kindSet(Tank),
		secondary: kindSet(Commander, Infantry, Militia),
	},
	{
		carrier:   Headquarter,
		primary:   kindSet(Commander),
	},
}

func blueprintFor(carrier PieceKind) *blueprint {
	for i := range blueprints {
		if blueprints[i].carrier == carrier {
			return &blueprints[i]
		}
	}
	return nil
}

// Combine attempts to build the canonical carrier+passengers stack out of a
// set of pieces (the same color), returning (stack, true) if some
// permutation is a legal blueprint match, or (zero, false) otherwise.
func Combine(pieces []Piece) (Piece, bool) {
	if len(pieces) == 0 {
		return NoPiece, false
	}
	if len(pieces) == 1 {
		return pieces[0], true
	}
	color := pieces[0].Color
	for _, p := range pieces {
		if p.Color != color {
			return NoPiece, false
		}
	}
	// Try each piece as the candidate carrier.
	for i, candidate := range pieces {
		bp := blueprintFor(candidate.Kind)
		if bp == nil {
			continue
		}
		rest := make([]Piece, 0, len(pieces)-1)
		for j, p := range pieces {
			if j != i {
				rest = append(rest, p)
			}
		}
		if stack, ok := tryAssign(candidate, bp, rest); ok {
			return stack, true
		}
	}
	return NoPiece, false
}

// tryAssign checks whether every piece in rest fits one of bp's
// primary/secondary passenger slots (each slot holds at most one piece, and
// at least one passenger is required), in any order, returning the
// canonical stack.
func tryAssign(carrier Piece, bp *blueprint, rest []Piece) (Piece, bool) {
	wantPrimary := len(bp.primary) > 0
	wantSecondary := len(bp.secondary) > 0
	slots := 0
	if wantPrimary {
		slots++
	}
	if wantSecondary {
		slots++
	}
	if len(rest) == 0 || len(rest) > slots {
		return NoPiece, false
	}
	var primaryPiece, secondaryPiece *Piece
	remaining := append([]Piece(nil), rest...)
	if wantPrimary {
		idx := -1
		for i, p := range remaining {
			if bp.primary[p.Kind] {
				idx = i
				break
			}
		}
		if idx >= 0 {
			picked := remaining[idx]
			primaryPiece = &picked
			remaining = append(remaining[:idx], remaining[idx+1:]...)
		}
	}
	if wantSecondary {
		idx := -1
		for i, p := range remaining {
			if bp.secondary[p.Kind] {
				idx = i
				break
			}
		}
		if idx >= 0 {
			picked := remaining[idx]
			secondaryPiece = &picked
			remaining = append(remaining[:idx], remaining[idx+1:]...)
		}
	}
	if len(remaining) != 0 {
		return NoPiece, false
	}
	out := Piece{Kind: carrier.Kind, Color: carrier.Color, Heroic: carrier.Heroic}
	if primaryPiece != nil {
		out.Carrying = append(out.Carrying, *primaryPiece)
	}
	if secondaryPiece != nil {
		out.Carrying = append(out.Carrying, *secondaryPiece)
	}
	sortCarrying(out.Carrying)
	return out, true
}

func sortCarrying(ps []Piece) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Kind < ps[j].Kind })
}

// IsStackable reports whether Combine would succeed for this set of kinds,
// without needing fully-formed Piece values.
func IsStackable(carrier PieceKind, passengers ...PieceKind) bool {
	bp := blueprintFor(carrier)
	if bp == nil {
		return len(passengers) == 0
	}
	pieces := []Piece{{Kind: carrier}}
	for _, k := range passengers {
		pieces = append(pieces, Piece{Kind: k})
	}
	_, ok := tryAssign(pieces[0], bp, pieces[1:])
	return ok
}

// Remove extracts target (matched by kind) from the stack, promoting the
// first remaining passenger to carrier if the carrier itself is removed.
// Returns (remaining, removedPiece, ok).
func Remove(stack Piece, target PieceKind) (Piece, Piece, bool) {
	if stack.Kind == target {
		if len(stack.Carrying) == 0 {
			return NoPiece, stack, true
		}
		newCarrier := stack.Carrying[0]
		rest := append([]Piece(nil), stack.Carrying[1:]...)
		newCarrier.Carrying = rest
		removed := Piece{Kind: stack.Kind, Color: stack.Color, Heroic: stack.Heroic}
		return newCarrier, removed, true
	}
	for i, c := range stack.Carrying {
		if c.Kind == target {
			removed := c
			rest := make([]Piece, 0, len(stack.Carrying)-1)
			rest = append(rest, stack.Carrying[:i]...)
			rest = append(rest, stack.Carrying[i+1:]...)
			newStack := stack
			newStack.Carrying = rest
			return newStack, removed, true
		}
	}
	return stack, NoPiece, false
}
