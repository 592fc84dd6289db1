package search_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuiescence() search.Quiescence {
	return search.Quiescence{
		Explore: search.NoisyOrdering(),
		Eval:    search.StaticEvaluator{},
	}
}

func TestQuiescenceQuietPositionStandsPat(t *testing.T) {
	// No captures or promotions available: quiescence returns the static
	// evaluation without recursing.
	b := newBoard(t, fen.Initial)

	sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore}
	nodes, score := newQuiescence().QuietSearch(context.Background(), sctx, b)

	assert.Equal(t, uint64(1), nodes)
	assert.Equal(t, eval.EvaluatePosition(b.Position(), b.Turn()), score)
}

func TestQuiescenceResolvesHangingQueen(t *testing.T) {
	// Black queen on d5 hangs to the e4 pawn. The stand-pat score sees White
	// a queen down; resolving the capture must improve on it.
	b := newBoard(t, "7k/8/8/3q4/4P3/8/8/7K w - - 0 1")

	standPat := eval.EvaluatePosition(b.Position(), b.Turn())

	sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore}
	nodes, score := newQuiescence().QuietSearch(context.Background(), sctx, b)

	assert.Greater(t, nodes, uint64(1))
	assert.Greater(t, score, standPat)
	assert.Greater(t, int32(score), int32(0))
}

func TestQuiescenceNeverBelowStandPat(t *testing.T) {
	// The side to move can always decline to capture, so the quiescence score
	// is bounded below by the static evaluation on a full window.
	tests := []string{
		fen.Initial,
		"r1bqkbnr/pppppppp/2n5/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 1 2",
		"r2q1rk1/ppp2ppp/2npbn2/2b1p3/2B1P3/2NP1N2/PPP2PPP/R1BQ1RK1 w - - 6 8",
		"7k/8/8/3q4/4P3/8/8/7K w - - 0 1",
	}

	for _, position := range tests {
		b := newBoard(t, position)
		standPat := eval.EvaluatePosition(b.Position(), b.Turn())

		sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore}
		_, score := newQuiescence().QuietSearch(context.Background(), sctx, b)

		assert.GreaterOrEqual(t, score, standPat, "position: %v", position)
	}
}

func TestQuiescenceDetectsMate(t *testing.T) {
	// Black is back-rank mated: no legal moves, in check.
	b := newBoard(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")

	sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore}
	_, score := newQuiescence().QuietSearch(context.Background(), sctx, b)

	require.Equal(t, eval.MateIn(0).Negate(), score)
}

func TestQuiescenceScoresStalemateAsDraw(t *testing.T) {
	b := newBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore}
	_, score := newQuiescence().QuietSearch(context.Background(), sctx, b)

	assert.Equal(t, eval.DrawScore, score)
}
