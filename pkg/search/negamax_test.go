package search_test

import (
	"context"
	"testing"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, position string) *board.Board {
	t.Helper()

	pos, turn, noprogress, fullmoves, err := fen.Decode(position)
	require.NoError(t, err)

	return board.NewBoard(board.NewZobristTable(0), pos, turn, noprogress, fullmoves)
}

func newSearch() search.NegaMax {
	return search.NegaMax{
		Quiesce: search.Quiescence{
			Explore: search.NoisyOrdering(),
			Eval:    search.StaticEvaluator{},
		},
	}
}

func TestNegaMaxFindsMateInOne(t *testing.T) {
	// White to move: Ra1-a8 is a textbook back-rank mate. The black king on
	// g8 is boxed in by its own unmoved pawns on f7, g7 and h7.
	b := newBoard(t, "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")

	s := newSearch()
	tt := search.NoTranspositionTable{}
	sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore}

	nodes, score, pv, err := s.Search(context.Background(), sctx, tt, b, 2)
	require.NoError(t, err)
	assert.Greater(t, nodes, uint64(0))

	md, ok := score.MateDistance()
	require.True(t, ok, "expected a forced mate score, got %v", score)
	assert.Equal(t, 1, md)
	require.NotEmpty(t, pv)
	assert.Equal(t, board.Move{Type: board.Normal, Piece: board.Rook, From: board.A1, To: board.A8}, pv[0])
}

func TestNegaMaxScoresStalemateAsDraw(t *testing.T) {
	// Black to move, no legal moves, not in check: stalemate.
	b := newBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	s := newSearch()
	tt := search.NoTranspositionTable{}
	sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore}

	_, score, pv, err := s.Search(context.Background(), sctx, tt, b, 1)
	require.NoError(t, err)
	assert.Equal(t, eval.DrawScore, score)
	assert.Empty(t, pv)
}

func TestNegaMaxRespectsDepthLimit(t *testing.T) {
	b := newBoard(t, fen.Initial)

	s := newSearch()
	tt := search.NoTranspositionTable{}
	sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore}

	_, score, pv, err := s.Search(context.Background(), sctx, tt, b, 1)
	require.NoError(t, err)
	assert.True(t, score.IsHeuristic())
	require.Len(t, pv, 1)
}

func TestNegaMaxReusesTranspositionTable(t *testing.T) {
	// Searching the same position twice against the same table must do
	// strictly less work the second time: the root entry alone short-circuits
	// the repeat search.
	b := newBoard(t, fen.Initial)

	s := newSearch()
	tt := search.NewTranspositionTable(context.Background(), 1<<20)
	sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore}

	first, score1, _, err := s.Search(context.Background(), sctx, tt, b, 3)
	require.NoError(t, err)

	second, score2, _, err := s.Search(context.Background(), sctx, tt, b, 3)
	require.NoError(t, err)

	assert.Equal(t, score1, score2)
	assert.Less(t, second, first)
}

func TestNegaMaxHaltsOnCancelledContext(t *testing.T) {
	b := newBoard(t, fen.Initial)

	s := newSearch()
	tt := search.NoTranspositionTable{}
	sctx := &search.Context{Alpha: eval.NegInfScore, Beta: eval.InfScore}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := s.Search(ctx, sctx, tt, b, 4)
	assert.ErrorIs(t, err, search.ErrHalted)
}
