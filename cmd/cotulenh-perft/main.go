// Command cotulenh-perft loads a position and either dumps its FEN back
// out (as a load/save round-trip smoke check) or runs a perft node count
// to a chosen depth.
//
// Usage:
//
//	cotulenh-perft --fen "<fen>" --depth 3
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"

	"github.com/cotulenh/core/internal/board"
	"github.com/cotulenh/core/internal/command"
	"github.com/cotulenh/core/internal/session"
)

type options struct {
	FEN   string `short:"f" long:"fen" description:"base FEN to load" required:"true"`
	Depth int    `short:"d" long:"depth" description:"perft depth" default:"1"`
	Dump  bool   `long:"dump" description:"print the re-serialized FEN instead of running perft"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	parser.Name = "cotulenh-perft"
	parser.LongDescription = "Load a CoTuLenh FEN and either re-dump it or run a perft node count."

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	pos, err := board.LoadFEN(opts.FEN)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load FEN")
		os.Exit(1)
	}

	if opts.Dump {
		fmt.Println(pos.FEN())
		return
	}

	ad := board.NewAirDefenseMap()
	ad.Rebuild(pos.Board)

	for depth := 1; depth <= opts.Depth; depth++ {
		nodes := perft(pos.Board, ad, pos.Turn, depth, logger)
		fmt.Printf("perft(%d) = %d\n", depth, nodes)
	}
}

func perft(b *board.Board, ad *board.AirDefenseMap, color board.Color, depth int, logger zerolog.Logger) int64 {
	if depth == 0 {
		return 1
	}
	legal := legalMoves(b, ad, color, logger)
	if depth == 1 {
		return int64(len(legal))
	}
	var nodes int64
	for _, m := range legal {
		cmd := command.BuildMoveCommand(b, m)
		if err := cmd.Execute(b); err != nil {
			continue
		}
		ad.Rebuild(b)
		nodes += perft(b, ad, color.Other(), depth-1, logger)
		_ = cmd.Undo(b)
		ad.Rebuild(b)
	}
	return nodes
}

func legalMoves(b *board.Board, ad *board.AirDefenseMap, color board.Color, logger zerolog.Logger) []board.Move {
	var pseudo []board.Move
	b.ForEachPiece(func(sq board.Square, p board.Piece) {
		if p.Color != color {
			return
		}
		pseudo = append(pseudo, board.GenerateMoves(b, ad, sq)...)
		if p.IsStack() {
			for _, unit := range p.Flatten() {
				pseudo = append(pseudo, board.GenerateUnitMoves(b, ad, sq, unit.Kind)...)
			}
		}
	})
	return session.FilterLegal(b, ad, color, pseudo, false, logger)
}
