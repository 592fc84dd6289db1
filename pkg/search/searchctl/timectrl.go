package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// minMoveTime is the floor for the per-move time budget. Even on a nearly
// exhausted clock the engine takes at least this long, trusting the budget
// formula to have kept enough reserve in earlier moves.
const minMoveTime = time.Second

// TimeControl represents the remaining clock time and per-move increment for
// both players, as reported by the GUI on each "go" command.
type TimeControl struct {
	White, Black       time.Duration
	WhiteInc, BlackInc time.Duration
}

// Budget returns the wall-clock budget for making a move with the given
// color: a twentieth of the remaining clock plus the per-move increment,
// floored at minMoveTime.
func (t TimeControl) Budget(c board.Color) time.Duration {
	remainder, inc := t.White, t.WhiteInc
	if c == board.Black {
		remainder, inc = t.Black, t.BlackInc
	}

	budget := remainder/20 + inc
	if budget < minMoveTime {
		budget = minMoveTime
	}
	return budget
}

func (t TimeControl) String() string {
	return fmt.Sprintf("%.1f+%.1f<>%.1f+%.1f", t.White.Seconds(), t.WhiteInc.Seconds(), t.Black.Seconds(), t.BlackInc.Seconds())
}

// EnforceTimeControl enforces the time control, if any: the search is halted
// outright once the budget expires. Returns the budget as the soft limit for
// the iterative driver's own should-I-start-another-iteration heuristic.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], turn board.Color) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	budget := c.Budget(turn)
	time.AfterFunc(budget, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time budget for %v: %v", c, budget)
	return budget, true
}
