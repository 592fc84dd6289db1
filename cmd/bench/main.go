// bench runs a fixed search workload for profiling and engine-tuning sessions.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/pkg/profile"
	"github.com/seekerror/logw"
)

var (
	depth   = flag.Int("depth", 6, "Search depth per position")
	hash    = flag.Uint("hash", 64, "Transposition table size in MB")
	mode    = flag.String("profile", "", "Profiling mode: cpu, mem or empty for none")
	outdir  = flag.String("outdir", ".", "Directory for profile output")
	repeats = flag.Int("repeats", 1, "Number of passes over the position set")
)

// positions is a small, fixed set covering the opening, a tactical middlegame
// and a pawn endgame, so a profile exercises all evaluation terms.
var positions = []string{
	fen.Initial,
	"r1bqkb1r/pppp1ppp/2n2n2/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	"r2q1rk1/ppp2ppp/2npbn2/2b1p3/2B1P3/2NP1N2/PPP2PPP/R1BQ1RK1 w - - 6 8",
	"8/5pk1/6p1/8/3K4/8/5PP1/8 w - - 0 1",
}

func main() {
	ctx := context.Background()
	flag.Parse()

	switch *mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*outdir), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(*outdir), profile.NoShutdownHook).Stop()
	case "":
	default:
		logw.Exitf(ctx, "Unknown profile mode: %v", *mode)
	}

	tt := search.NewTranspositionTable(ctx, uint64(*hash)<<20)
	s := search.NegaMax{
		Quiesce: search.Quiescence{
			Explore: search.NoisyOrdering(),
			Eval:    search.StaticEvaluator{},
		},
	}

	var total uint64
	start := time.Now()

	for i := 0; i < *repeats; i++ {
		for _, position := range positions {
			pos, turn, noprogress, fullmoves, err := fen.Decode(position)
			if err != nil {
				logw.Exitf(ctx, "Invalid fen '%v': %v", position, err)
			}
			b := board.NewBoard(board.NewZobristTable(0), pos, turn, noprogress, fullmoves)

			sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore}
			nodes, score, pv, err := s.Search(ctx, sctx, tt, b, *depth)
			if err != nil {
				logw.Exitf(ctx, "Search failed on %v: %v", position, err)
			}
			total += nodes

			fmt.Printf("bench,%v,%v,%v,%v,%v\n", position, *depth, nodes, score, board.FormatMoves(pv, board.Move.String))
		}
	}

	elapsed := time.Since(start)
	fmt.Printf("bench total: %v nodes in %v (%v nps)\n", total, elapsed, uint64(time.Second)*total/uint64(elapsed))
}
