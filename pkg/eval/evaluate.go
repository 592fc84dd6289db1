package eval

import "github.com/kestrelchess/kestrel/pkg/board"

// NominalValue is the material worth of a piece in centipawns.
func NominalValue(p board.Piece) int32 {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight:
		return 300
	case board.Bishop:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	default:
		return 0
	}
}

// EvaluatePosition returns a static, signed centipawn evaluation of the
// position from turn's perspective: material, piece-square placement and a
// handful of positional heuristics (passed/doubled/isolated pawns, open and
// semi-open file rooks, king file safety, bishop pair). The result is always
// a heuristic score, clamped inside the mate band.
func EvaluatePosition(pos *board.Position, turn board.Color) Score {
	endgame := isEndgame(pos)

	white := materialAndPositionalScore(pos, board.White, endgame)
	black := materialAndPositionalScore(pos, board.Black, endgame)

	score := white - black
	if turn == board.Black {
		score = -score
	}

	score += bishopPairScore(pos, turn)

	return HeuristicScore(score)
}

// EndgamePhaseThreshold is the combined rook/bishop/queen/knight count (both
// colors) at or below which the king piece-square table switches to its
// endgame form. Overridable via the optional kestrel.toml config file.
var EndgamePhaseThreshold int32 = 4

// isEndgame reports whether the king piece-square table should switch to its
// endgame form: at most EndgamePhaseThreshold rooks, bishops, queens and
// knights (combined, both colors) remain on the board.
func isEndgame(pos *board.Position) bool {
	var bb board.Bitboard
	for _, c := range [...]board.Color{board.White, board.Black} {
		bb |= pos.Piece(c, board.Rook)
		bb |= pos.Piece(c, board.Bishop)
		bb |= pos.Piece(c, board.Queen)
		bb |= pos.Piece(c, board.Knight)
	}
	return int32(bb.PopCount()) <= EndgamePhaseThreshold
}

// materialAndPositionalScore sums every evaluation term that is naturally
// symmetric between the two colors (i.e., every term except the bishop pair,
// which is asymmetric and scored separately in EvaluatePosition).
func materialAndPositionalScore(pos *board.Position, c board.Color, endgame bool) int32 {
	var score int32
	for p := board.Pawn; p < board.NumPieces; p++ {
		bb := pos.Piece(c, p)
		for bb != 0 {
			sq := bb.LastPopSquare()
			bb &^= board.BitMask(sq)

			score += NominalValue(p)
			score += pieceSquareValue(c, p, sq, endgame)
		}
	}

	score += passedPawnScore(pos, c)
	score += openFileRookScore(pos, c)
	score += isolatedPawnScore(pos, c)
	score += doubledPawnScore(pos, c)
	score += kingFileSafetyScore(pos, c)

	return score
}

// passedPawnScore awards +20 per passed pawn: no opposing pawn on its own or
// an adjacent file at any rank strictly ahead of it.
func passedPawnScore(pos *board.Position, c board.Color) int32 {
	opp := pos.Piece(c.Opponent(), board.Pawn)

	var score int32
	bb := pos.Piece(c, board.Pawn)
	for bb != 0 {
		sq := bb.LastPopSquare()
		bb &^= board.BitMask(sq)

		front := frontSpanMask(c, sq.Rank())
		blockers := front & (board.BitFile(sq.File()) | board.NeighborFiles(sq.File())) & opp
		if blockers == 0 {
			score += 20
		}
	}
	return score
}

// frontSpanMask returns the ranks strictly ahead of r from c's perspective.
func frontSpanMask(c board.Color, r board.Rank) board.Bitboard {
	var mask board.Bitboard
	if c == board.White {
		for rr := r + 1; rr < board.NumRanks; rr++ {
			mask |= board.BitRank(rr)
		}
	} else {
		for rr := r; rr > board.ZeroRank; rr-- {
			mask |= board.BitRank(rr - 1)
		}
	}
	return mask
}

// openFileRookScore awards +30 per file with no pawns of either color and
// any friendly rook on it, else +20 per file with no friendly pawn but a
// friendly rook (semi-open). Counted once per file, regardless of how many
// rooks share it. Only that color's own rooks are counted; the pawns of both
// colors decide whether a file is open or semi-open.
func openFileRookScore(pos *board.Position, c board.Color) int32 {
	ownPawns := pos.Piece(c, board.Pawn)
	oppPawns := pos.Piece(c.Opponent(), board.Pawn)
	rooks := pos.Piece(c, board.Rook)

	var score int32
	for f := board.FileA; f < board.NumFiles; f++ {
		file := board.BitFile(f)
		if rooks&file == 0 {
			continue
		}
		switch {
		case ownPawns&file == 0 && oppPawns&file == 0:
			score += 30 // open file
		case ownPawns&file == 0:
			score += 20 // semi-open file
		}
	}
	return score
}

// isolatedPawnScore deducts 10 per file holding friendly pawns with none on
// either adjacent file. Counted per file, not per pawn.
func isolatedPawnScore(pos *board.Position, c board.Color) int32 {
	own := pos.Piece(c, board.Pawn)

	var score int32
	for f := board.FileA; f < board.NumFiles; f++ {
		if own&board.BitFile(f) == 0 {
			continue
		}
		if own&board.NeighborFiles(f) == 0 {
			score -= 10
		}
	}
	return score
}

// doubledPawnScore deducts 15 per file with 2 or more friendly pawns,
// counted once per file, not per extra pawn.
func doubledPawnScore(pos *board.Position, c board.Color) int32 {
	own := pos.Piece(c, board.Pawn)

	var score int32
	for f := board.FileA; f < board.NumFiles; f++ {
		if (own & board.BitFile(f)).PopCount() >= 2 {
			score -= 15
		}
	}
	return score
}

// kingFileSafetyScore scores the file the king stands on: -50 if it has no
// friendly pawn, +50 if it has no opposing pawn.
func kingFileSafetyScore(pos *board.Position, c board.Color) int32 {
	kings := pos.Piece(c, board.King)
	if kings == 0 {
		return 0
	}
	file := board.BitFile(kings.LastPopSquare().File())

	var score int32
	if pos.Piece(c, board.Pawn)&file == 0 {
		score -= 50
	}
	if pos.Piece(c.Opponent(), board.Pawn)&file == 0 {
		score += 50
	}
	return score
}

// bishopPairScore is asymmetric: if the side to move has exactly two
// bishops, +30; if the opponent has exactly one bishop (no pair of its own),
// -30. The two conditions are independent, not mirrored halves of one rule.
func bishopPairScore(pos *board.Position, turn board.Color) int32 {
	var score int32
	if pos.Piece(turn, board.Bishop).PopCount() == 2 {
		score += 30
	}
	if pos.Piece(turn.Opponent(), board.Bishop).PopCount() == 1 {
		score -= 30
	}
	return score
}
