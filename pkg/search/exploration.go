package search

import (
	"context"

	"github.com/kestrelchess/kestrel/pkg/board"
)

// Evaluator produces a raw, unclamped centipawn evaluation of a position from
// the side to move's perspective. eval.HeuristicScore clamps the result into
// the heuristic range before it is used as a search score.
type Evaluator interface {
	Evaluate(ctx context.Context, sctx *Context, b *board.Board) int32
}

// Exploration returns the move-ordering priority function and a predicate
// selecting which pseudo-legal moves are worth recursing into, for the
// current position.
type Exploration func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn)

// FullOrdering returns an Exploration that explores every move, ordered by the
// transposition table's best move (if any) for the position, then captures,
// then promotions, then everything else.
func FullOrdering(tt TranspositionTable) Exploration {
	return func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
		var best board.Move
		if _, _, _, m, ok := tt.Read(b.Hash()); ok {
			best = m
		}
		return orderingPriority(best), IsAnyMove
	}
}

// NoisyOrdering returns an Exploration restricted to captures and promotions,
// the set considered by quiescence search. No transposition-table move bias is
// applied since quiescence does not probe the table.
func NoisyOrdering() Exploration {
	return func(ctx context.Context, b *board.Board) (board.MovePriorityFn, board.MovePredicateFn) {
		return orderingPriority(board.Move{}), IsNoisyMove
	}
}

func orderingPriority(ttMove board.Move) board.MovePriorityFn {
	return board.First(ttMove, func(m board.Move) board.MovePriority {
		switch {
		case m.IsCapture():
			return 2
		case m.IsPromotion():
			return 1
		default:
			return 0
		}
	})
}

// IsAnyMove always explores.
func IsAnyMove(board.Move) bool {
	return true
}

// IsNoisyMove explores only captures and promotions.
func IsNoisyMove(m board.Move) bool {
	return m.IsNoisy()
}
