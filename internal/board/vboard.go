package board

// vboard is a scratch copy of the piece bitboards used to play a move out
// and test whether it leaves the mover's king attacked. It lives on the
// stack and never touches the Position it was taken from.
type vboard struct {
	pieces   [2][6]Bitboard
	occupied [2]Bitboard
	all      Bitboard
	kingSq   [2]Square
}

func newVBoard(p *Position) vboard {
	return vboard{
		pieces:   p.pieces,
		occupied: p.occupied,
		all:      p.all,
		kingSq:   p.kingSq,
	}
}

// applyMove moves the piece of color us from -> to, removing any captured
// piece. Promotions and castling rook moves are not replayed since they do
// not change whether the mover's king is attacked.
func (v *vboard) applyMove(from, to Square, us Color, enPassant bool) {
	them := us.Other()
	fromBB, toBB := SquareBB(from), SquareBB(to)

	var pt PieceType
	for t := Pawn; t <= King; t++ {
		if v.pieces[us][t]&fromBB != 0 {
			pt = t
			break
		}
	}

	captured := toBB
	if enPassant {
		captured = SquareBB(to.Forward(them))
	}
	for t := Pawn; t <= King; t++ {
		v.pieces[them][t] &^= captured
	}
	v.occupied[them] &^= captured

	moveBB := fromBB | toBB
	v.pieces[us][pt] ^= moveBB
	v.occupied[us] ^= moveBB
	v.all = v.occupied[White] | v.occupied[Black]

	if pt == King {
		v.kingSq[us] = to
	}
}

// isKingAttacked reports whether the king of color c is attacked.
func (v *vboard) isKingAttacked(c Color) bool {
	return attackersOf(&v.pieces, v.kingSq[c], c.Other(), v.all) != 0
}
