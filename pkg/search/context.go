package search

import "github.com/kestrelchess/kestrel/pkg/eval"

// Context carries the per-call search parameters threaded through a single
// negamax/quiescence invocation that are not already explicit in the
// function signature.
type Context struct {
	Alpha, Beta eval.Score
	Noise       eval.Random
}
