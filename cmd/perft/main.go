// perft is a movegen debugging tools. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/seekerror/logw"
	"golang.org/x/sync/errgroup"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = fen.Initial
	}

	pos, turn, _, _, err := fen.Decode(*position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes, err := rootSearch(pos, turn, i, *divide && i == *depth)
		if err != nil {
			logw.Exitf(ctx, "Perft failed at depth %v: %v", i, err)
		}
		duration := time.Since(start)

		println(fmt.Sprintf("perft,%v,%v,%v,%v", *position, i, nodes, duration.Microseconds()))
	}
}

// rootSearch fans the root moves of pos out across an errgroup, each counting
// its own subtree independently -- the only level with enough width to be
// worth the goroutine overhead.
func rootSearch(pos *board.Position, turn board.Color, depth int, d bool) (int64, error) {
	if depth == 0 {
		return 1, nil
	}

	moves := pos.PseudoLegalMoves(turn)
	counts := make([]int64, len(moves))

	var g errgroup.Group
	for i, m := range moves {
		i, m := i, m
		next, ok := pos.Move(m)
		if !ok {
			continue
		}
		g.Go(func() error {
			counts[i] = search(next, turn.Opponent(), depth-1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var nodes int64
	for i, m := range moves {
		if d && counts[i] > 0 {
			println(fmt.Sprintf("%v: %v", m, counts[i]))
		}
		nodes += counts[i]
	}
	return nodes, nil
}

func search(pos *board.Position, turn board.Color, depth int) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range pos.PseudoLegalMoves(turn) {
		if next, ok := pos.Move(m); ok {
			nodes += search(next, turn.Opponent(), depth-1)
		}
	}
	return nodes
}
