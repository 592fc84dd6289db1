package eval_test

import (
	"strings"
	"testing"
	"unicode"

	"github.com/kestrelchess/kestrel/pkg/board"
	"github.com/kestrelchess/kestrel/pkg/board/fen"
	"github.com/kestrelchess/kestrel/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluate(t *testing.T, position string) eval.Score {
	t.Helper()

	pos, turn, _, _, err := fen.Decode(position)
	require.NoError(t, err)
	return eval.EvaluatePosition(pos, turn)
}

// mirrorFEN rotates the board 180 degrees, swaps piece colors and gives the
// move to the other side. Every evaluation term is invariant under this
// transformation: the side-to-move flip and the piece-square mirroring cancel.
func mirrorFEN(t *testing.T, position string) string {
	t.Helper()

	parts := strings.Split(position, " ")
	require.Len(t, parts, 6)

	ranks := strings.Split(parts[0], "/")
	require.Len(t, ranks, 8)

	var flipped []string
	for i := len(ranks) - 1; i >= 0; i-- {
		runes := []rune(ranks[i])
		var sb strings.Builder
		for j := len(runes) - 1; j >= 0; j-- {
			r := runes[j]
			switch {
			case unicode.IsUpper(r):
				sb.WriteRune(unicode.ToLower(r))
			case unicode.IsLower(r):
				sb.WriteRune(unicode.ToUpper(r))
			default:
				sb.WriteRune(r)
			}
		}
		flipped = append(flipped, sb.String())
	}

	turn := "w"
	if parts[1] == "w" {
		turn = "b"
	}
	return strings.Join([]string{strings.Join(flipped, "/"), turn, "-", "-", parts[4], parts[5]}, " ")
}

func TestEvaluateMirrorSymmetry(t *testing.T) {
	tests := []string{
		fen.Initial,
		"r1bqkbnr/pppppppp/2n5/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 1 2",
		"r2q1rk1/ppp2ppp/2npbn2/2b1p3/2B1P3/2NP1N2/PPP2PPP/R1BQ1RK1 w - - 6 8",
		"8/5pk1/6p1/8/3K4/8/5PP1/8 w - - 0 1",
		"4k3/8/8/3Pp3/8/8/8/4K3 w - - 0 1",
	}

	for _, position := range tests {
		mirrored := mirrorFEN(t, position)
		assert.Equal(t, evaluate(t, position), evaluate(t, mirrored), "position: %v, mirror: %v", position, mirrored)
	}
}

func TestEvaluateInitialPosition(t *testing.T) {
	// Material and placement cancel exactly, leaving only the asymmetric
	// bishop-pair term: the side to move holds both bishops, +30.
	assert.Equal(t, eval.Score(30), evaluate(t, fen.Initial))
}

func TestEvaluateMaterialDominates(t *testing.T) {
	// White is a queen up. Whoever is to move, the score reflects it.
	position := "rnb1kbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w kq - 0 1"

	white := evaluate(t, position)
	assert.Greater(t, int32(white), int32(800))

	black := evaluate(t, strings.Replace(position, " w ", " b ", 1))
	assert.Less(t, int32(black), int32(-800))
}

func TestEvaluatePassedPawn(t *testing.T) {
	// White pawn on d5 with no black pawn on the c, d or e files ahead of it
	// is passed. Adding a black pawn on c7 revokes the bonus. The added pawn
	// also brings terms of its own -- material 100, placement 10, isolated
	// -10, net 100 -- which the comparison deducts.
	passed := evaluate(t, "4k3/8/8/3P4/8/8/8/4K3 w - - 0 1")
	blocked := evaluate(t, "4k3/2p5/8/3P4/8/8/8/4K3 w - - 0 1")

	assert.GreaterOrEqual(t, int32(passed)-(int32(blocked)+100), int32(20))
}

func TestEvaluateOpenFileRook(t *testing.T) {
	// White rook on the open a-file vs the same rook on the d-file, which is
	// closed by both sides' d-pawns. The a1 and d1 squares are worth 0 and 5
	// on the rook table, so the open-file bonus shows up as 30 - 5.
	open := evaluate(t, "4k3/3p4/8/8/8/8/3P4/R3K3 w - - 0 1")
	closed := evaluate(t, "4k3/3p4/8/8/8/8/3P4/3RK3 w - - 0 1")

	assert.Equal(t, int32(25), int32(open)-int32(closed))

	// Doubling rooks on the open file earns the bonus once, not per rook:
	// the second rook adds only its material and placement (500 - 5 on a3).
	doubled := evaluate(t, "4k3/3p4/8/8/8/R7/3P4/R3K3 w - - 0 1")
	assert.Equal(t, int32(495), int32(doubled)-int32(open))
}

func TestEvaluateSemiOpenFileRook(t *testing.T) {
	// Identical pawns in both positions; only the black rook moves. On a7 it
	// holds the a-file, where only White has a pawn: semi-open, +20. On b7 it
	// stands behind its own b5 pawn: no bonus. Placement: a7 is worth -5 on
	// the rook table, b7 is worth 0.
	semiOpen := evaluate(t, "4k3/r7/8/1p6/8/8/P7/4K3 b - - 0 1")
	closed := evaluate(t, "4k3/1r6/8/1p6/8/8/P7/4K3 b - - 0 1")

	assert.Equal(t, int32(15), int32(semiOpen)-int32(closed))
}

func TestEvaluateDoubledPawns(t *testing.T) {
	// e2+e4+f2 doubles the e-file; d2+e4+f2 does not. The d2 and e2 squares
	// are worth the same on the pawn table and no other term changes, so the
	// whole gap is the doubled-pawn penalty.
	doubled := evaluate(t, "4k3/8/8/8/4P3/8/4PP2/4K3 w - - 0 1")
	split := evaluate(t, "4k3/8/8/8/4P3/8/3P1P2/4K3 w - - 0 1")

	assert.Equal(t, int32(-15), int32(doubled)-int32(split))
}

func TestEvaluateIsolatedPawn(t *testing.T) {
	// a2+c2 leaves both pawns without neighbors: two isolated files, -20.
	// b2+c2 leaves none. Placement differs too: a2 is worth 5 where b2 is
	// worth 10, so the total gap is -20 - 5.
	isolated := evaluate(t, "4k3/8/8/8/8/8/P1P5/4K3 w - - 0 1")
	connected := evaluate(t, "4k3/8/8/8/8/8/1PP5/4K3 w - - 0 1")

	assert.Equal(t, int32(-25), int32(isolated)-int32(connected))
}

func TestEvaluateKingFileSafety(t *testing.T) {
	// Only the white king moves: on g1 it stands on its pawn's file (+50 for
	// the file being closed to Black); on e1 its file has no pawn of either
	// color, which cancels to 0. The endgame king table values g1 and e1
	// identically, and no pawn term changes.
	sheltered := evaluate(t, "k7/p7/8/8/8/8/6P1/6K1 w - - 0 1")
	exposed := evaluate(t, "k7/p7/8/8/8/8/6P1/4K3 w - - 0 1")

	assert.Equal(t, int32(50), int32(sheltered)-int32(exposed))
}

func TestEvaluateBishopPairAsymmetry(t *testing.T) {
	// The side to move with both bishops gets +30. The comparison deducts the
	// second bishop's material and placement (300 - 10 on f1).
	pair := evaluate(t, "4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1")
	single := evaluate(t, "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1")

	assert.Equal(t, int32(30), int32(pair)-int32(single)-290)
}

func TestEvaluateEndgameKingTable(t *testing.T) {
	// With only kings and pawns on the board the endgame king table applies:
	// a centralized king on e4 outscores a cornered king on a1.
	central := evaluate(t, "7k/7p/8/8/4K3/8/7P/8 w - - 0 1")
	corner := evaluate(t, "7k/7p/8/8/8/8/7P/K7 w - - 0 1")

	assert.Greater(t, int32(central), int32(corner))
}

func TestEvaluateClampsToHeuristicBand(t *testing.T) {
	// Even a grotesque material advantage must stay outside the mate band.
	score := evaluate(t, "QQQQQQ1k/QQQQQQQQ/QQQQQQQQ/QQQQQQQQ/QQQQQQQQ/QQQQQQQQ/QQQQQQQQ/QQQQQQ1K w - - 0 1")
	assert.True(t, score.IsHeuristic(), "score %v must remain heuristic", score)
}

func TestNominalValues(t *testing.T) {
	tests := []struct {
		piece    board.Piece
		expected int32
	}{
		{board.Pawn, 100},
		{board.Knight, 300},
		{board.Bishop, 300},
		{board.Rook, 500},
		{board.Queen, 900},
		{board.King, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, eval.NominalValue(tt.piece), "piece: %v", tt.piece)
	}
}
