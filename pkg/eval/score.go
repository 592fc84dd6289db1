// Package eval implements static position evaluation: material, piece-square
// tables and a handful of positional heuristics, plus the scalar Score type
// used throughout search.
package eval

import "math"

// Score is a signed centipawn evaluation from the perspective of the side to
// move: positive favors the side to move, negative favors the opponent.
//
// Scores near the extremes encode forced mate: a score s with |s| >= MateThreshold
// represents mate in (MateScore-|s|) plies, signed by who delivers it. Ordinary
// heuristic scores are always clamped strictly inside the mate band so the two
// can never be confused.
type Score int32

const (
	// MateScore is the magnitude assigned to an immediate mate (delivered this ply).
	MateScore = 10000
	// MateThreshold is the smallest magnitude considered a mate score. Anything
	// at or above it by absolute value encodes "mate in N plies", not a heuristic.
	MateThreshold = MateScore - 1000

	// ZeroScore is a neutral (drawn or balanced) evaluation.
	ZeroScore Score = 0
	// DrawScore is the score assigned to a drawn position. Slightly negative to
	// discourage steering towards draws when an edge, however small, is available.
	DrawScore Score = -50

	// InfScore is used as a search bound sentinel. Deliberately short of
	// math.MaxInt32 so that -InfScore never overflows on negation.
	InfScore Score = math.MaxInt32 - 1
	// NegInfScore is the negation of InfScore.
	NegInfScore Score = -InfScore

	// invalid is a sentinel distinguishable from every score a search can produce.
	invalid Score = math.MinInt32
)

// InvalidScore is returned by a search that is aborted before producing a result.
const InvalidScore = invalid

// HeuristicScore wraps a raw centipawn value from the static evaluator, clamping
// it strictly inside the mate band so it can never be mistaken for a forced mate.
func HeuristicScore(centipawns int32) Score {
	switch {
	case centipawns >= MateThreshold:
		return Score(MateThreshold - 1)
	case centipawns <= -MateThreshold:
		return Score(-(MateThreshold - 1))
	default:
		return Score(centipawns)
	}
}

// MateIn returns the score for delivering mate in the given number of plies
// (0 means mate on this move). Use Negate to express being mated instead.
func MateIn(ply int) Score {
	return Score(MateScore - ply)
}

// Negate flips the score to the opponent's perspective. Invalid is unaffected.
func (s Score) Negate() Score {
	if s == invalid {
		return s
	}
	return -s
}

// Less reports whether s is strictly less than o.
func (s Score) Less(o Score) bool {
	return s < o
}

// IsInvalid reports whether s is the sentinel returned by an aborted search.
func (s Score) IsInvalid() bool {
	return s == invalid
}

// IsHeuristic reports whether s is an ordinary evaluation, as opposed to an
// encoded forced mate.
func (s Score) IsHeuristic() bool {
	return !s.IsInvalid() && s > -MateThreshold && s < MateThreshold
}

// MateDistance returns the number of plies to mate and true, iff s encodes a
// forced mate. The ply count is signed: positive if the side to move delivers
// mate, negative if it is mated.
func (s Score) MateDistance() (int, bool) {
	switch {
	case s >= MateThreshold:
		return MateScore - int(s), true
	case s <= -MateThreshold:
		return -(MateScore + int(s)), true
	default:
		return 0, false
	}
}

// IncrementMateDistance adjusts a mate score by one additional ply of search
// between the node where it was computed and the node it is propagated to.
// Ordinary heuristic scores and invalid scores are unaffected.
func IncrementMateDistance(s Score) Score {
	switch {
	case s.IsInvalid():
		return s
	case s >= MateThreshold:
		return s - 1
	case s <= -MateThreshold:
		return s + 1
	default:
		return s
	}
}

// ToTT converts a score computed at the given ply into a ply-independent value
// suitable for storing in the transposition table: mate distance is measured
// from the stored node rather than from the search root.
func ToTT(s Score, ply int) Score {
	switch {
	case s.IsInvalid():
		return s
	case s >= MateThreshold:
		return s + Score(ply)
	case s <= -MateThreshold:
		return s - Score(ply)
	default:
		return s
	}
}

// FromTT reverses ToTT, reconstituting a score relative to the search root
// given the ply at which the table entry is being used.
func FromTT(s Score, ply int) Score {
	switch {
	case s.IsInvalid():
		return s
	case s >= MateThreshold:
		return s - Score(ply)
	case s <= -MateThreshold:
		return s + Score(ply)
	default:
		return s
	}
}

// Max returns the larger of a and b.
func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

// Min returns the smaller of a and b.
func Min(a, b Score) Score {
	if a > b {
		return b
	}
	return a
}
