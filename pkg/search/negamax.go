package search

import (
	"context"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// NegaMax implements fixed-depth negamax search with alpha-beta pruning,
// transposition table lookups and a quiescence search at the frontier.
// Pseudo-code:
//
//	function negamax(node, depth, α, β, color) is
//	    if depth = 0 or node is terminal then
//	        return color × the heuristic value of node
//	    value := −∞
//	    for each child of node do
//	        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
//	        α := max(α, value)
//	        if α ≥ β then
//	            break (* cutoff *)
//	    return value
//
// See: https://en.wikipedia.org/wiki/Negamax.
type NegaMax struct {
	Explore Exploration
	Quiesce Quiescence
}

func (n NegaMax) Search(ctx context.Context, sctx *Context, tt TranspositionTable, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	tt = noneIfNotSet(tt)
	explore := n.Explore
	if explore == nil {
		// Default to transposition-table-aware ordering against the table
		// actually handed to this call, rather than one fixed at construction.
		explore = FullOrdering(tt)
	}

	run := &runNegaMax{
		explore: explore,
		quiesce: n.Quiesce,
		tt:      tt,
		noise:   sctx.Noise,
		b:       b,
	}

	low, high := eval.NegInfScore, eval.InfScore
	if !sctx.Alpha.IsInvalid() {
		low = sctx.Alpha
	}
	if !sctx.Beta.IsInvalid() {
		high = sctx.Beta
	}

	score, pv := run.search(ctx, depth, 0, low, high)
	if contextx.IsCancelled(ctx) {
		return 0, eval.InvalidScore, nil, ErrHalted
	}
	return run.nodes, score, pv, nil
}

type runNegaMax struct {
	explore Exploration
	quiesce Quiescence
	tt      TranspositionTable
	noise   eval.Random
	b       *board.Board
	nodes   uint64
}

// search returns the score and principal variation, both relative to the
// color to move at b, for the subtree rooted at ply plies below the search
// root.
func (r *runNegaMax) search(ctx context.Context, depth, ply int, alpha, beta eval.Score) (eval.Score, []board.Move) {
	if contextx.IsCancelled(ctx) {
		return eval.InvalidScore, nil
	}
	if r.b.Result().Outcome == board.Draw {
		return eval.DrawScore, nil
	}

	hash := r.b.Hash()

	var best board.Move
	if bound, d, stored, m, ok := r.tt.Read(hash); ok {
		best = m
		if d >= depth {
			score := stored
			switch {
			case bound == ExactBound:
				return score, pvFromTT(m) // cutoff: exact result already known
			case bound == LowerBound && !score.Less(beta):
				return score, pvFromTT(m) // cutoff: fails high regardless of the true value
			case bound == UpperBound && !alpha.Less(score):
				return score, pvFromTT(m) // cutoff: fails low regardless of the true value
			}
		} // else: not deep enough
	}

	if depth == 0 {
		sctx := &Context{Alpha: alpha, Beta: beta, Noise: r.noise}
		nodes, score := r.quiesce.QuietSearch(ctx, sctx, r.b)
		r.nodes += nodes
		return score, nil
	}

	r.nodes++

	// alphaOriginal is captured before the move loop mutates alpha: the bound
	// stored in the transposition table must be classified against the window
	// this node was searched with, not against the narrowed window left over
	// after the best move was found.
	alphaOriginal := alpha

	hasLegalMove := false
	var pv []board.Move

	priority, explore := r.explore(ctx, r.b)

	moves := board.NewMoveList(r.b.Position().PseudoLegalMoves(r.b.Turn()), board.First(best, priority))
	for {
		move, ok := moves.Next()
		if !ok {
			break
		}
		if !r.b.PushMove(move) {
			continue // skip: not legal
		}
		hasLegalMove = true

		if explore(move) {
			score, rem := r.search(ctx, depth-1, ply+1, beta.Negate(), alpha.Negate())
			score = eval.IncrementMateDistance(score).Negate()
			if alpha.Less(score) {
				alpha = score
				pv = append([]board.Move{move}, rem...)
			}
		}

		r.b.PopMove()

		if alpha == beta || beta.Less(alpha) {
			break // cutoff
		}
	}

	if !hasLegalMove {
		if result := r.b.AdjudicateNoLegalMoves(); result.Reason == board.Checkmate {
			return eval.MateIn(0).Negate(), nil // mated now: worst possible score, still ply-encoded
		}
		return eval.DrawScore, nil
	}

	if contextx.IsCancelled(ctx) {
		// Aborted mid-node: the move loop did not complete, so alpha is not a
		// trustworthy bound for this subtree. Never cache it.
		return alpha, pv
	}

	bound := classifyBound(alphaOriginal, beta, alpha)
	r.tt.Write(hash, bound, depth, alpha, firstOrNone(pv))

	return alpha, pv
}

// classifyBound implements the three-way transposition table classification:
// the search failed low (no move improved on alphaOriginal) yields an upper
// bound, a beta cutoff yields a lower bound, and anything in between is exact.
func classifyBound(alphaOriginal, beta, result eval.Score) Bound {
	switch {
	case !alphaOriginal.Less(result):
		return UpperBound
	case !result.Less(beta):
		return LowerBound
	default:
		return ExactBound
	}
}

// pvFromTT wraps a stored best move as a one-ply variation, so a table cutoff
// still surfaces a playable move to the driver. Entries from nodes where no
// move raised alpha carry no move.
func pvFromTT(m board.Move) []board.Move {
	if m.From == m.To {
		return nil
	}
	return []board.Move{m}
}

func firstOrNone(pv []board.Move) board.Move {
	if len(pv) == 0 {
		return board.Move{}
	}
	return pv[0]
}

func noneIfNotSet(tt TranspositionTable) TranspositionTable {
	if tt == nil {
		return NoTranspositionTable{}
	}
	return tt
}
