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

func drain(ml *board.MoveList) []board.Move {
	var ret []board.Move
	for {
		m, ok := ml.Next()
		if !ok {
			return ret
		}
		ret = append(ret, m)
	}
}

func TestFullOrderingPrefersTTMoveThenCapturesThenPromotions(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t, fen.Initial)

	// Seed the table with a best move for the root position. The move is a
	// quiet one, so any ordering bias it receives comes from the table alone.
	tt := search.NewTranspositionTable(ctx, 1<<16)
	ttMove := board.Move{Type: board.Push, Piece: board.Pawn, From: board.D2, To: board.D3}
	tt.Write(b.Hash(), search.ExactBound, 1, eval.HeuristicScore(10), ttMove)

	priority, explore := search.FullOrdering(tt)(ctx, b)

	quietA := board.Move{Type: board.Normal, Piece: board.Knight, From: board.G1, To: board.F3}
	quietB := board.Move{Type: board.Normal, Piece: board.Knight, From: board.B1, To: board.C3}
	captureA := board.Move{Type: board.Capture, Piece: board.Bishop, From: board.C1, To: board.G5, Capture: board.Pawn}
	captureB := board.Move{Type: board.Capture, Piece: board.Rook, From: board.A1, To: board.A5, Capture: board.Pawn}
	promo := board.Move{Type: board.Promotion, Piece: board.Pawn, From: board.E7, To: board.E8, Promotion: board.Queen}

	moves := []board.Move{quietA, captureA, promo, quietB, ttMove, captureB}
	ordered := drain(board.NewMoveList(moves, priority))

	// Table move first, then captures, then promotions, then quiet moves --
	// each category in original order.
	expected := []board.Move{ttMove, captureA, captureB, promo, quietA, quietB}
	assert.Equal(t, board.PrintMoves(expected), board.PrintMoves(ordered))

	// Full-width search explores everything.
	for _, m := range moves {
		assert.True(t, explore(m), "move: %v", m)
	}
}

func TestNoisyOrderingExploresOnlyNoisyMoves(t *testing.T) {
	ctx := context.Background()
	b := newBoard(t, fen.Initial)

	_, explore := search.NoisyOrdering()(ctx, b)

	assert.False(t, explore(board.Move{Type: board.Normal, Piece: board.Knight, From: board.G1, To: board.F3}))
	assert.False(t, explore(board.Move{Type: board.Push, Piece: board.Pawn, From: board.E2, To: board.E3}))
	assert.True(t, explore(board.Move{Type: board.Capture, Piece: board.Pawn, From: board.E4, To: board.D5, Capture: board.Pawn}))
	assert.True(t, explore(board.Move{Type: board.Promotion, Piece: board.Pawn, From: board.E7, To: board.E8, Promotion: board.Queen}))
	assert.True(t, explore(board.Move{Type: board.EnPassant, Piece: board.Pawn, From: board.E5, To: board.D6}))
}

func TestMoveListStableWithinPriority(t *testing.T) {
	// Equal-priority moves come out in insertion order regardless of list size.
	var moves []board.Move
	for f := board.FileA; f < board.NumFiles; f++ {
		moves = append(moves, board.Move{Type: board.Push, Piece: board.Pawn, From: board.NewSquare(f, board.Rank2), To: board.NewSquare(f, board.Rank3)})
	}

	flat := func(board.Move) board.MovePriority { return 0 }
	ordered := drain(board.NewMoveList(moves, flat))

	require.Equal(t, board.PrintMoves(moves), board.PrintMoves(ordered))
}
