package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/eval"
)

// ErrHalted is returned by Search when the context was cancelled before the
// search completed, typically because the engine's Handle.Halt was called.
var ErrHalted = errors.New("search halted")

// Search is a fixed-depth, full-width search from the current position.
// Implementations are expected to be called repeatedly at increasing depth
// by an iterative-deepening driver such as searchctl.Iterative.
type Search interface {
	// Search returns the node count, score and principal variation for b at
	// the given depth, relative to the root. tt may be search.NoTranspositionTable{}.
	Search(ctx context.Context, sctx *Context, tt TranspositionTable, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error)
}

// PV is a principal variation produced by one iteration of iterative deepening.
type PV struct {
	Depth int
	Nodes uint64
	Score eval.Score
	Moves []board.Move
	Time  time.Duration
	Hash  float64 // transposition table utilization, [0;1]
}

func (pv PV) String() string {
	return fmt.Sprintf("{depth=%v, nodes=%v, score=%v, moves=%v, time=%v, hash=%.2f}", pv.Depth, pv.Nodes, pv.Score, pv.Moves, pv.Time, pv.Hash)
}
