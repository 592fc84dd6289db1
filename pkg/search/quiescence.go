package search

import (
	"context"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// maxQuiescencePly bounds how many plies quiescence search will chase noisy
// moves before giving up and returning the stand-pat score. Without a cap a
// long forcing sequence of checks and recaptures could run unbounded.
const maxQuiescencePly = 3

// Quiescence implements a configurable alpha-beta quiet search restricted to
// noisy moves (captures and promotions), used to settle tactical positions at
// the leaves of the main search.
type Quiescence struct {
	Explore Exploration
	Eval    Evaluator
}

// QuietSearch resolves the position down to a quiet one and returns the node
// count consumed and the resulting score.
func (q Quiescence) QuietSearch(ctx context.Context, sctx *Context, b *board.Board) (uint64, eval.Score) {
	run := &runQuiescence{explore: q.Explore, eval: q.Eval, b: b}

	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score := run.search(ctx, sctx, low, high, 0)
	return run.nodes, score
}

type runQuiescence struct {
	explore Exploration
	eval    Evaluator
	b       *board.Board
	nodes   uint64
}

// search returns the positive score for the color to move.
func (r *runQuiescence) search(ctx context.Context, sctx *Context, alpha, beta eval.Score, qply int) eval.Score {
	if contextx.IsCancelled(ctx) {
		return eval.ZeroScore
	}
	if r.b.Result().Outcome == board.Draw {
		return eval.DrawScore
	}

	r.nodes++

	score := eval.HeuristicScore(r.eval.Evaluate(ctx, sctx, r.b))
	alpha = eval.Max(alpha, score)

	// NOTE: Don't cutoff based on evaluation before checking for legal moves:
	// a position with no legal moves is checkmate or stalemate, not quiet.
	capped := qply >= maxQuiescencePly
	cutoff := capped || alpha == beta || beta.Less(alpha)

	hasLegalMoves := false
	turn := r.b.Turn()

	priority, explore := r.explore(ctx, r.b)

	moves := board.NewMoveList(r.b.Position().PseudoLegalMoves(turn), priority)
	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		if !r.b.PushMove(m) {
			continue // skip: not legal
		}
		hasLegalMoves = true

		if cutoff {
			r.b.PopMove()
			break // a legal move exists: the cap or stand-pat cutoff applies
		}

		if explore(m) {
			score := r.search(ctx, sctx, beta.Negate(), alpha.Negate(), qply+1)
			score = eval.IncrementMateDistance(score).Negate()
			alpha = eval.Max(alpha, score)
		}

		r.b.PopMove()

		if alpha == beta || beta.Less(alpha) {
			break // cutoff
		}
	}

	if !hasLegalMoves {
		if result := r.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.MateIn(0).Negate() // mated now: worst possible score, still ply-encoded
		}
		return eval.DrawScore
	}
	if capped {
		return score
	}
	return alpha
}
