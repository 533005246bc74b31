package game

import (
	"os"

	"github.com/rs/zerolog"
)

// Option configures a Game at construction time.
type Option func(*Game)

// WithLastGuard toggles the Last Guard post-move promotion rule
// (spec.md §4.6); it is on by default.
func WithLastGuard(enabled bool) Option {
	return func(g *Game) { g.lastGuard = enabled }
}

// WithLogger overrides the default stderr zerolog.Logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithMovesCacheSize overrides the LRU moves-cache capacity (spec.md §9
// Design Notes). A size of 0 disables caching entirely.
func WithMovesCacheSize(size int) Option {
	return func(g *Game) { g.movesCacheSize = size }
}

func defaultLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}
