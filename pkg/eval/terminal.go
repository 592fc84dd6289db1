package eval

import "github.com/kestrelchess/kestrel/pkg/board"

// Terminal returns the score of a finished game from turn's perspective at the
// given search ply, or ok=false if the result is not yet decided. Checkmate is
// scored as a mate at this ply; every other decided outcome is a draw.
func Terminal(result board.Result, turn board.Color, ply int) (Score, bool) {
	switch result.Outcome {
	case board.Undecided:
		return ZeroScore, false
	case board.Draw:
		return DrawScore, true
	case board.WhiteWins:
		if turn == board.White {
			return MateIn(ply), true
		}
		return MateIn(ply).Negate(), true
	case board.BlackWins:
		if turn == board.Black {
			return MateIn(ply), true
		}
		return MateIn(ply).Negate(), true
	default:
		return ZeroScore, false
	}
}
