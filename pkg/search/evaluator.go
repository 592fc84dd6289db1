package search

import (
	"context"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/eval"
)

// StaticEvaluator is an Evaluator backed by eval.EvaluatePosition, with an
// optional random offset sampled from the search context's noise source so
// that otherwise-deterministic play can be varied across games.
type StaticEvaluator struct{}

func (StaticEvaluator) Evaluate(ctx context.Context, sctx *Context, b *board.Board) int32 {
	score := int32(eval.EvaluatePosition(b.Position(), b.Turn()))
	return score + sctx.Noise.Sample()
}
