package searchctl_test

import (
	"context"
	"testing"
	"time"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/kestrelchess/kestrel/pkg/search"
	"github.com/kestrelchess/kestrel/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSearch returns an increasing score per depth, recording every depth it
// was invoked at.
type stubSearch struct {
	depths []int
}

func (s *stubSearch) Search(ctx context.Context, sctx *search.Context, tt search.TranspositionTable, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	s.depths = append(s.depths, depth)
	return uint64(depth), eval.HeuristicScore(int32(depth)), []board.Move{{From: board.E2, To: board.E4, Type: board.Jump, Piece: board.Pawn}}, nil
}

func newTestBoard(t *testing.T) *board.Board {
	t.Helper()
	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	return board.NewBoard(board.NewZobristTable(0), pos, turn, noprogress, fullmoves)
}

func TestIterativeStopsAtDepthLimit(t *testing.T) {
	root := &stubSearch{}
	it := &searchctl.Iterative{Root: root}

	opt := searchctl.Options{DepthLimit: lang.Some(uint(3))}
	handle, out := it.Launch(context.Background(), newTestBoard(t), search.NoTranspositionTable{}, eval.Random{}, opt)

	var last search.PV
	for pv := range out {
		last = pv
	}

	assert.Equal(t, []int{1, 2, 3}, root.depths)
	assert.Equal(t, 3, last.Depth)

	// Halt after completion is a no-op returning the final PV.
	assert.Equal(t, last, handle.Halt())
}

func TestIterativeHaltStopsLoop(t *testing.T) {
	root := &blockingSearch{release: make(chan struct{})}
	it := &searchctl.Iterative{Root: root}

	handle, out := it.Launch(context.Background(), newTestBoard(t), search.NoTranspositionTable{}, eval.Random{}, searchctl.Options{})

	// Let the first iteration complete, then halt before a second begins.
	<-out
	pv := handle.Halt()
	close(root.release)

	assert.Equal(t, 1, pv.Depth)

	_, ok := <-out
	assert.False(t, ok, "channel should be closed after halt")
}

// blockingSearch completes depth 1 immediately, then blocks until released so
// the test can halt the search between iterations deterministically.
type blockingSearch struct {
	release chan struct{}
}

func (b *blockingSearch) Search(ctx context.Context, sctx *search.Context, tt search.TranspositionTable, brd *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	if depth > 1 {
		select {
		case <-ctx.Done():
			return 0, eval.InvalidScore, nil, search.ErrHalted
		case <-b.release:
		}
	}
	return 1, eval.HeuristicScore(int32(depth)), []board.Move{{From: board.E2, To: board.E4, Type: board.Jump, Piece: board.Pawn}}, nil
}

func TestTimeControlSoftLimitStopsLoop(t *testing.T) {
	root := &slowSearch{}
	it := &searchctl.Iterative{Root: root}

	tc := searchctl.TimeControl{White: 20 * time.Millisecond, Black: 20 * time.Millisecond}
	opt := searchctl.Options{TimeControl: lang.Some(tc)}

	_, out := it.Launch(context.Background(), newTestBoard(t), search.NoTranspositionTable{}, eval.Random{}, opt)

	var last search.PV
	for pv := range out {
		last = pv
	}
	assert.GreaterOrEqual(t, last.Depth, 1)
}

// slowSearch takes long enough per iteration that the soft time limit trips.
type slowSearch struct{}

func (s *slowSearch) Search(ctx context.Context, sctx *search.Context, tt search.TranspositionTable, b *board.Board, depth int) (uint64, eval.Score, []board.Move, error) {
	time.Sleep(15 * time.Millisecond)
	return 1, eval.HeuristicScore(int32(depth)), []board.Move{{From: board.E2, To: board.E4, Type: board.Jump, Piece: board.Pawn}}, nil
}
