// Package game implements the public rules-engine facade: it wires
// board, command and session together into one stateful instance that
// loads a position, accepts moves, and reports game-over/draw status
// (spec.md §4.10).
package game

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/cotulenh/core/internal/board"
	"github.com/cotulenh/core/internal/command"
	"github.com/cotulenh/core/internal/session"
	"github.com/cotulenh/core/internal/xerr"
)

// fiftyMoveHalfMoves is the half-move clock threshold for the fifty-move
// draw rule: fifty full moves per side.
const fiftyMoveHalfMoves = 100

// Game is one rules-engine instance: a position, its derived air-defense
// projection, an optional open move session, committed history, and the
// repetition/cache bookkeeping that rides alongside them. It is
// single-threaded; see spec.md §5 for the concurrency model.
type Game struct {
	pos  *board.Position
	ad   *board.AirDefenseMap
	sess *session.Session

	positions positionCounts
	history   []HistoryEntry
	finals    []*session.FinalCommand
	startFEN  string

	lastGuard      bool
	movesCacheSize int
	movesCache     *lru.Cache[uint64, []board.Move]
	logger         zerolog.Logger
}

// NewGame loads fen and applies any Options (spec.md §4.10's `load`).
func NewGame(fen string, opts ...Option) (*Game, error) {
	g := &Game{
		lastGuard:      true,
		movesCacheSize: 256,
		logger:         defaultLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := g.Load(fen); err != nil {
		return nil, err
	}
	return g, nil
}

// Load resets the game to fen, clearing history, session and caches.
func (g *Game) Load(fen string) error {
	pos, err := board.LoadFEN(fen)
	if err != nil {
		return err
	}
	g.pos = pos
	g.ad = board.NewAirDefenseMap()
	g.ad.Rebuild(g.pos.Board)
	g.sess = nil
	g.history = nil
	g.finals = nil
	g.positions = positionCounts{}
	g.positions.record(fen)
	g.startFEN = fen
	if g.movesCacheSize > 0 {
		cache, err := lru.New[uint64, []board.Move](g.movesCacheSize)
		if err != nil {
			return xerr.Wrap(xerr.InternalInconsistency, err, "failed to allocate moves cache")
		}
		g.movesCache = cache
	} else {
		g.movesCache = nil
	}
	return nil
}

// FEN reports the base FEN, or the extended deploy-session FEN when
// deployMode is true and a deploy session is open (spec.md §4.10).
func (g *Game) FEN(deployMode ...bool) string {
	wantDeploy := len(deployMode) > 0 && deployMode[0]
	if wantDeploy && g.sess != nil && g.sess.IsDeploy {
		sans := make([]string, len(g.sess.Commands))
		for i, c := range g.sess.Commands {
			sans[i] = board.SAN(c.Move, nil)
		}
		residual := g.pos.Board.Get(g.sess.StackSquare)
		return session.ExtendedFEN(g.sess.BeforeFEN, g.sess.StackSquare, residual, sans)
	}
	return g.pos.FEN()
}

// ---- command.GameState implementation ----

func (g *Game) Turn() board.Color           { return g.pos.Turn }
func (g *Game) SetTurn(c board.Color)       { g.pos.Turn = c }
func (g *Game) HalfMoveClock() int          { return g.pos.HalfMoveClock }
func (g *Game) SetHalfMoveClock(v int)      { g.pos.HalfMoveClock = v }
func (g *Game) FullMoveNumber() int         { return g.pos.FullMoveNumber }
func (g *Game) SetFullMoveNumber(v int)     { g.pos.FullMoveNumber = v }
func (g *Game) CurrentFEN() string          { return g.pos.FEN() }
func (g *Game) RecordPosition(fen string)   { g.positions.record(fen) }
func (g *Game) ForgetPosition(fen string)   { g.positions.forget(fen) }

// MovesOptions filters the candidate set returned by Moves/MovesVerbose.
// A field set to board.NoSquare / board.NoPieceKind leaves that filter off.
// The zero value is not unfiltered: it selects square a1 and kind Commander.
type MovesOptions struct {
	Square board.Square
	Kind   board.PieceKind
}

// Moves returns the legal moves from the current position as SAN
// strings, honoring opts (spec.md §4.10's `moves`).
func (g *Game) Moves(opts MovesOptions) []string {
	legal := g.filteredLegalMoves(opts)
	out := make([]string, len(legal))
	for i, m := range legal {
		out[i] = board.SAN(m, legal)
	}
	return out
}

// MovesVerbose is Moves, but returns a MoveResult per candidate instead
// of a bare SAN string.
func (g *Game) MovesVerbose(opts MovesOptions) []MoveResult {
	legal := g.filteredLegalMoves(opts)
	before := g.CurrentFEN()
	out := make([]MoveResult, len(legal))
	for i, m := range legal {
		mr := g.buildMoveResult(m, before, !m.IsDeploy)
		mr.SAN = board.SAN(m, legal)
		mr.LAN = board.LAN(m)
		out[i] = *mr
	}
	return out
}

func (g *Game) filteredLegalMoves(opts MovesOptions) []board.Move {
	legal := g.legalMoves()
	if opts.Square == board.NoSquare && opts.Kind == board.NoPieceKind {
		return legal
	}
	out := make([]board.Move, 0, len(legal))
	for _, m := range legal {
		if opts.Square != board.NoSquare && m.From != opts.Square {
			continue
		}
		if opts.Kind != board.NoPieceKind && m.Kind != opts.Kind {
			continue
		}
		out = append(out, m)
	}
	return out
}

// Move resolves input (a SAN string or an already-generated board.Move)
// against the current legal-move set, executes it, and returns its
// result. A deploy sub-move leaves the session open and Completed=false;
// a standard move auto-commits (spec.md §4.7's diagram) and Completed=true.
func (g *Game) Move(input any) (*MoveResult, error) {
	legalBefore := g.legalMoves()
	mv, err := g.resolveMove(input, legalBefore)
	if err != nil {
		return nil, err
	}
	san := board.SAN(mv, legalBefore)
	lan := board.LAN(mv)
	before := g.CurrentFEN()

	g.sess = session.Ensure(g.sess, g.pos.Board, mv, before)
	cmd, err := g.sess.AddMove(g.pos.Board, mv)
	if err != nil {
		if len(g.sess.Commands) == 0 {
			g.sess = nil
		}
		return nil, err
	}

	g.ad.Rebuild(g.pos.Board)
	if err := cmd.AppendPostEffect(g.pos.Board, command.NewHeroicPromotionEffect(g.pos.Board, g.ad, mv.Color)); err != nil {
		return nil, err
	}
	if g.lastGuard {
		if err := cmd.AppendPostEffect(g.pos.Board, command.NewLastGuardEffect(g.pos.Board, mv.Color)); err != nil {
			return nil, err
		}
	}
	g.ad.Rebuild(g.pos.Board)
	g.invalidateMovesCache()

	completed := !mv.IsDeploy
	result := g.buildMoveResult(mv, before, completed)
	result.SAN, result.LAN = san, lan

	if !mv.IsDeploy {
		if err := g.finalizeSession(mv.IsCapture()); err != nil {
			return nil, err
		}
	}
	result.After = g.CurrentFEN()
	return result, nil
}

// resolveMove matches input against legal, accepting either a SAN string
// or a board.Move already produced by move generation.
func (g *Game) resolveMove(input any, legal []board.Move) (board.Move, error) {
	switch v := input.(type) {
	case board.Move:
		for _, m := range legal {
			if m.From == v.From && m.To == v.To && m.Kind == v.Kind && m.Flag == v.Flag && m.IsDeploy == v.IsDeploy {
				return m, nil
			}
		}
		return board.Move{}, xerr.New(xerr.MoveInvalidDestination, "move %s-%s is not legal", v.From, v.To)
	case string:
		return g.resolveSAN(v, legal)
	default:
		return board.Move{}, xerr.New(xerr.MoveInvalidDestination, "unsupported move input type %T", input)
	}
}

// resolveSAN first tries the strict pass (regenerate each legal move's
// own SAN/LAN and compare), then falls back to the permissive regex
// parser matched against kind/to/disambiguator (spec.md §4.9).
func (g *Game) resolveSAN(s string, legal []board.Move) (board.Move, error) {
	for _, m := range legal {
		if board.SAN(m, legal) == s || board.LAN(m) == s {
			return m, nil
		}
	}
	parsed, err := board.ParseSAN(s)
	if err != nil {
		return board.Move{}, err
	}
	for _, m := range legal {
		if m.Kind != parsed.Kind || m.To != parsed.To {
			continue
		}
		if matchesDisambig(m, parsed.Disambig) {
			return m, nil
		}
	}
	return board.Move{}, xerr.New(xerr.MoveInvalidDestination, "no legal move matches %q", s)
}

func matchesDisambig(m board.Move, disambig string) bool {
	if disambig == "" {
		return true
	}
	if disambig == m.From.String() {
		return true
	}
	if len(disambig) == 1 && disambig[0] >= 'a' && disambig[0] <= 'k' {
		return rune(disambig[0]) == rune('a'+m.From.File())
	}
	if rank, err := strconv.Atoi(disambig); err == nil {
		return rank-1 == m.From.Rank()
	}
	return false
}

func (g *Game) buildMoveResult(mv board.Move, before string, completed bool) *MoveResult {
	res := &MoveResult{
		Color:     mv.Color,
		From:      mv.From,
		To:        mv.To,
		Piece:     mv.Kind,
		Captured:  capturedKind(mv),
		Flags:     flagLetters(mv),
		Before:    before,
		Completed: completed,
	}
	if mv.IsDeploy && g.sess != nil {
		res.ToMap = map[board.Square]board.PieceKind{}
		for _, c := range g.sess.Commands {
			res.ToMap[c.Move.To] = c.Move.Kind
		}
	}
	return res
}

// finalizeSession commits the open session, appends its history entry,
// and clears the session reference.
func (g *Game) finalizeSession(isCapture bool) error {
	fc, err := g.sess.Commit(g.pos.Board, g.ad, g, isCapture)
	if err != nil {
		return err
	}
	moves := make([]board.Move, len(g.sess.Commands))
	for i, c := range g.sess.Commands {
		moves[i] = c.Move
	}
	sans := make([]string, len(moves))
	for i, m := range moves {
		sans[i] = board.SAN(m, nil)
	}
	san := sans[0]
	if len(sans) > 1 {
		san = board.DeploySAN(board.NoPieceKind, false, sans)
	}
	g.history = append(g.history, HistoryEntry{
		Color:    g.sess.Turn,
		Moves:    moves,
		SAN:      san,
		Before:   g.sess.BeforeFEN,
		After:    g.CurrentFEN(),
		Captured: isCapture,
	})
	g.finals = append(g.finals, fc)
	g.sess = nil
	return nil
}

// Undo reverses the most recent sub-move of an open session, or (with no
// session open) the last fully committed turn.
func (g *Game) Undo() error {
	if g.sess != nil {
		if err := g.sess.UndoLastMove(g.pos.Board); err != nil {
			return err
		}
		if g.sess.State() == session.NoSession {
			g.sess = nil
		}
		g.ad.Rebuild(g.pos.Board)
		g.invalidateMovesCache()
		return nil
	}
	if len(g.finals) == 0 {
		return xerr.New(xerr.SessionInvalidOperation, "no move to undo")
	}
	last := g.finals[len(g.finals)-1]
	if err := last.Undo(g.pos.Board); err != nil {
		return err
	}
	g.finals = g.finals[:len(g.finals)-1]
	g.history = g.history[:len(g.history)-1]
	g.ad.Rebuild(g.pos.Board)
	g.invalidateMovesCache()
	return nil
}

// CanCommitSession reports whether the open session may be committed.
func (g *Game) CanCommitSession() bool {
	if g.sess == nil {
		return false
	}
	return g.sess.CanCommit(g.pos.Board, g.ad)
}

// CommitSession finalizes an open deploy session explicitly, returning
// the aggregate MoveResult for the whole turn.
func (g *Game) CommitSession() (*MoveResult, error) {
	if g.sess == nil {
		return nil, xerr.New(xerr.SessionInvalidOperation, "no open session to commit")
	}
	if len(g.sess.Commands) == 0 {
		return nil, xerr.New(xerr.SessionInvalidOperation, "session has no moves to commit")
	}
	isCapture := g.sess.Commands[0].Move.IsCapture()
	toMap := map[board.Square]board.PieceKind{}
	for _, c := range g.sess.Commands {
		toMap[c.Move.To] = c.Move.Kind
	}
	color := g.sess.Turn
	if err := g.finalizeSession(isCapture); err != nil {
		return nil, err
	}
	entry := g.history[len(g.history)-1]
	return &MoveResult{
		Color:     color,
		ToMap:     toMap,
		Flags:     "D",
		Before:    entry.Before,
		After:     entry.After,
		SAN:       entry.SAN,
		Completed: true,
	}, nil
}

// RecombineSession retargets the residual passenger of kind so it rejoins
// an already-deployed piece at targetSquare (spec.md §4.7's `recombine`,
// glossary "Recombine"), e.g. rescuing an exposed commander left behind by
// an earlier deploy sub-move.
func (g *Game) RecombineSession(targetSquare board.Square, kind board.PieceKind) error {
	if g.sess == nil {
		return xerr.New(xerr.SessionInvalidOperation, "no open session to recombine")
	}
	if err := g.sess.Recombine(g.pos.Board, targetSquare, kind); err != nil {
		return err
	}
	g.ad.Rebuild(g.pos.Board)
	g.invalidateMovesCache()
	return nil
}

// CancelSession discards every sub-move of the open session.
func (g *Game) CancelSession() error {
	if g.sess == nil {
		return xerr.New(xerr.SessionInvalidOperation, "no open session to cancel")
	}
	if err := g.sess.Cancel(g.pos.Board); err != nil {
		return err
	}
	g.sess = nil
	g.ad.Rebuild(g.pos.Board)
	g.invalidateMovesCache()
	return nil
}

// GetSession exposes the open session, or nil.
func (g *Game) GetSession() *session.Session { return g.sess }

// GetDeployState reports the residual stack square and deploy flag of an
// open session, and whether a session is open at all.
func (g *Game) GetDeployState() (stackSquare board.Square, isDeploy bool, ok bool) {
	if g.sess == nil {
		return board.NoSquare, false, false
	}
	return g.sess.StackSquare, g.sess.IsDeploy, true
}

// ---- status predicates (spec.md §4.10) ----

// IsCommanderCaptured reports whether either color's commander is off the
// board.
func (g *Game) IsCommanderCaptured() bool {
	return g.pos.Board.CommanderSquare(board.Red) == board.NoSquare ||
		g.pos.Board.CommanderSquare(board.Blue) == board.NoSquare
}

// IsCheck reports whether the side to move's commander is attacked.
func (g *Game) IsCheck() bool {
	commanderSq := g.pos.Board.CommanderSquare(g.pos.Turn)
	if commanderSq == board.NoSquare {
		return false
	}
	return board.IsAttacked(g.pos.Board, g.ad, commanderSq, g.pos.Turn.Other())
}

func (g *Game) noLegalMoves() bool {
	return len(g.legalMoves()) == 0
}

func (g *Game) sessionOpen() bool {
	return g.sess != nil && g.sess.State() != session.NoSession && g.sess.State() != session.Committed
}

// IsCheckmate reports check with no legal response and no open session.
func (g *Game) IsCheckmate() bool {
	return !g.sessionOpen() && g.IsCheck() && g.noLegalMoves()
}

// IsStalemate reports no legal move while not in check and no open
// session.
func (g *Game) IsStalemate() bool {
	return !g.sessionOpen() && !g.IsCheck() && g.noLegalMoves()
}

// IsDrawByFiftyMoves reports the half-move clock has reached the
// fifty-full-move threshold.
func (g *Game) IsDrawByFiftyMoves() bool {
	return g.pos.HalfMoveClock >= fiftyMoveHalfMoves
}

// IsThreefoldRepetition reports the current FEN has recurred three times.
func (g *Game) IsThreefoldRepetition() bool {
	return g.positions.count(g.CurrentFEN()) >= 3
}

// IsGameOver reports checkmate, stalemate, fifty-move draw, threefold
// repetition, or a captured commander — always false while a deploy
// session is open (spec.md §4.10).
func (g *Game) IsGameOver() bool {
	if g.sessionOpen() {
		return false
	}
	return g.IsCheckmate() || g.IsStalemate() || g.IsDrawByFiftyMoves() ||
		g.IsThreefoldRepetition() || g.IsCommanderCaptured()
}

// ---- legal move generation / cache ----

func (g *Game) legalMoves() []board.Move {
	key := g.cacheKey()
	if g.movesCache != nil {
		if cached, ok := g.movesCache.Get(key); ok {
			return cached
		}
	}
	moves := g.computeLegalMoves()
	if g.movesCache != nil {
		g.movesCache.Add(key, moves)
	}
	return moves
}

func (g *Game) computeLegalMoves() []board.Move {
	color := g.pos.Turn
	sessionOpen := g.sessionOpen()

	var pseudo []board.Move
	if sessionOpen && g.sess.IsDeploy {
		sq := g.sess.StackSquare
		residual := g.pos.Board.Get(sq)
		for _, unit := range residual.Flatten() {
			pseudo = append(pseudo, board.GenerateUnitMoves(g.pos.Board, g.ad, sq, unit.Kind)...)
		}
	} else {
		g.pos.Board.ForEachPiece(func(sq board.Square, p board.Piece) {
			if p.Color != color {
				return
			}
			pseudo = append(pseudo, board.GenerateMoves(g.pos.Board, g.ad, sq)...)
			if p.IsStack() {
				for _, unit := range p.Flatten() {
					pseudo = append(pseudo, board.GenerateUnitMoves(g.pos.Board, g.ad, sq, unit.Kind)...)
				}
			}
		})
	}
	return session.FilterLegal(g.pos.Board, g.ad, color, pseudo, sessionOpen, g.logger)
}

func (g *Game) cacheKey() uint64 {
	h := board.Hash(g.pos.Board, g.pos.Turn)
	if g.sess != nil {
		h ^= uint64(g.sess.StackSquare)*0x9E3779B97F4A7C15 + 1
	}
	return h
}

func (g *Game) invalidateMovesCache() {
	if g.movesCache != nil {
		g.movesCache.Purge()
	}
}
