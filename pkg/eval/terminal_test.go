package eval_test

import (
	"testing"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminal(t *testing.T) {
	tests := []struct {
		result   board.Result
		turn     board.Color
		ply      int
		expected eval.Score
		decided  bool
	}{
		{board.Result{Outcome: board.Undecided}, board.White, 0, eval.ZeroScore, false},
		{board.Result{Outcome: board.Draw, Reason: board.Stalemate}, board.White, 2, eval.DrawScore, true},
		{board.Result{Outcome: board.Draw, Reason: board.NoProgress}, board.Black, 7, eval.DrawScore, true},
		{board.Result{Outcome: board.WhiteWins, Reason: board.Checkmate}, board.White, 0, eval.Score(10000), true},
		{board.Result{Outcome: board.WhiteWins, Reason: board.Checkmate}, board.Black, 0, eval.Score(-10000), true},
		{board.Result{Outcome: board.BlackWins, Reason: board.Checkmate}, board.Black, 3, eval.Score(9997), true},
		{board.Result{Outcome: board.BlackWins, Reason: board.Checkmate}, board.White, 3, eval.Score(-9997), true},
	}

	for _, tt := range tests {
		actual, ok := eval.Terminal(tt.result, tt.turn, tt.ply)
		require.Equal(t, tt.decided, ok, "result: %v", tt.result)
		assert.Equal(t, tt.expected, actual, "result: %v, turn: %v, ply: %v", tt.result, tt.turn, tt.ply)
	}
}

func TestTerminalMateOrdering(t *testing.T) {
	// A shorter mate scores strictly higher for the winner, and every mate
	// stays within the 10000 magnitude.
	win := board.Result{Outcome: board.WhiteWins, Reason: board.Checkmate}

	mateIn1, _ := eval.Terminal(win, board.White, 1)
	mateIn3, _ := eval.Terminal(win, board.White, 3)

	assert.Greater(t, mateIn1, mateIn3)
	assert.LessOrEqual(t, int32(mateIn1), int32(10000))

	lostIn1, _ := eval.Terminal(win, board.Black, 1)
	lostIn3, _ := eval.Terminal(win, board.Black, 3)

	// Being mated later is preferable.
	assert.Less(t, lostIn1, lostIn3)
}
