// Package perft counts the leaf nodes of the legal move tree. The counts are
// compared against published values to validate move generation.
package perft

import (
	"slices"

	"golang.org/x/exp/maps"

	"github.com/hailam/chessrules/internal/board"
)

// Count returns the number of leaf nodes depth plies below pos.
func Count(pos *board.Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	gen := pos.NewMoveGenerator()
	if depth == 1 {
		return uint64(gen.Len())
	}

	var nodes uint64
	for m := range gen.All() {
		nodes += Count(pos.MakeMoveNewUnchecked(m), depth-1)
	}
	return nodes
}

// Divide returns the leaf count below each legal root move.
func Divide(pos *board.Position, depth int) map[board.Move]uint64 {
	div := make(map[board.Move]uint64)
	if depth <= 0 {
		return div
	}
	for m := range pos.NewMoveGenerator().All() {
		div[m] = Count(pos.MakeMoveNewUnchecked(m), depth-1)
	}
	return div
}

// SortedMoves returns the moves of a divide report in canonical order.
func SortedMoves(div map[board.Move]uint64) []board.Move {
	moves := maps.Keys(div)
	slices.SortFunc(moves, board.Move.Compare)
	return moves
}

// Total sums a divide report.
func Total(div map[board.Move]uint64) uint64 {
	var n uint64
	for _, c := range div {
		n += c
	}
	return n
}
