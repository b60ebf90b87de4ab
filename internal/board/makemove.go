package board

// DebugMoveValidation makes MakeMoveUnchecked verify its input and log
// illegal moves through the package logger. The move is applied anyway.
var DebugMoveValidation = false

// MakeMove checks that m is legal and applies it in place. It returns a
// *MoveError wrapping ErrIllegalMove if it is not, or ErrGameOver if the
// position already occurred five times. The position is unchanged on error.
func (p *Position) MakeMove(m Move) error {
	if err := p.checkMove(m); err != nil {
		return err
	}
	p.applyMove(m)
	return nil
}

// MakeMoveUnchecked applies m in place without checking it. The caller
// guarantees that m is legal, for instance because it came from a legal
// MoveGenerator on this position; anything else leaves the position in an
// undefined state.
func (p *Position) MakeMoveUnchecked(m Move) {
	if DebugMoveValidation && !p.IsLegal(m) {
		logger.Info("unchecked move is illegal", "move", m.String(), "fen", p.FEN())
	}
	p.applyMove(m)
}

// MakeMoveNew checks m and returns the resulting position, leaving p untouched.
func (p *Position) MakeMoveNew(m Move) (*Position, error) {
	if err := p.checkMove(m); err != nil {
		return nil, err
	}
	next := p.Copy()
	next.applyMove(m)
	return next, nil
}

// MakeMoveNewUnchecked returns the position after m without checking it,
// leaving p untouched. The legality contract of MakeMoveUnchecked applies.
func (p *Position) MakeMoveNewUnchecked(m Move) *Position {
	next := p.Copy()
	next.MakeMoveUnchecked(m)
	return next
}

// MakeNullMoveNew returns the position with the turn passed to the other
// side, or false if the side to move is in check. The en passant square is
// cleared, the clocks and history are left alone.
func (p *Position) MakeNullMoveNew() (*Position, bool) {
	if p.InCheck() {
		return nil, false
	}

	next := p.Copy()
	if next.epSquare != NoSquare {
		next.hash ^= zobristEnPassant[next.epSquare.File()]
		next.epSquare = NoSquare
	}
	next.sideToMove = next.sideToMove.Other()
	next.hash ^= zobristSideToMove
	next.updateAttackState()

	return next, true
}

func (p *Position) checkMove(m Move) error {
	if p.IsFivefoldRepetition() {
		return &MoveError{Move: m, FEN: p.FEN(), Err: ErrGameOver}
	}
	if !p.IsLegal(m) {
		return &MoveError{Move: m, FEN: p.FEN(), Err: ErrIllegalMove}
	}
	return nil
}

// applyMove plays m and updates every derived field, the hash incrementally.
func (p *Position) applyMove(m Move) {
	us := p.sideToMove
	them := us.Other()
	from, to := m.From(), m.To()
	pt := p.pieceTypeOf(us, from)
	piece := NewPiece(pt, us)

	// Remove the old castling and en passant terms; the new ones go back in below.
	p.hash ^= zobristCastling[castlingIndex(p.castling)]
	if p.epSquare != NoSquare {
		p.hash ^= zobristEnPassant[p.epSquare.File()]
	}

	enPassant := pt == Pawn && p.isEnPassantCapture(from, to)
	p.epSquare = NoSquare

	captured := NoPiece
	if enPassant {
		capSq := to.Forward(them)
		captured = p.removePiece(capSq)
		p.hash ^= zobristPiece[them][Pawn][capSq]
	} else if captured = p.removePiece(to); captured != NoPiece {
		p.hash ^= zobristPiece[them][captured.Type()][to]
	}

	p.movePiece(piece, from, to)
	p.hash ^= zobristPiece[us][pt][from] ^ zobristPiece[us][pt][to]

	if m.IsPromotion() {
		promo := m.Promotion()
		p.pieces[us][Pawn] &^= SquareBB(to)
		p.pieces[us][promo] |= SquareBB(to)
		p.hash ^= zobristPiece[us][Pawn][to] ^ zobristPiece[us][promo][to]
	}

	if pt == King && abs(to.File()-from.File()) == 2 {
		rookFrom, rookTo := NewSquare(7, from.Rank()), NewSquare(5, from.Rank())
		if to < from {
			rookFrom, rookTo = NewSquare(0, from.Rank()), NewSquare(3, from.Rank())
		}
		p.movePiece(NewPiece(Rook, us), rookFrom, rookTo)
		p.hash ^= zobristPiece[us][Rook][rookFrom] ^ zobristPiece[us][Rook][rookTo]
	}

	if pt == King {
		p.castling[us] = NoRights
	}
	for c := White; c <= Black; c++ {
		p.castling[c] = p.castling[c].Remove(castleRevoke[from][c] | castleRevoke[to][c])
	}
	p.hash ^= zobristCastling[castlingIndex(p.castling)]

	if pt == Pawn && abs(int(to)-int(from)) == 16 {
		p.epSquare = Square((int(from) + int(to)) / 2)
		p.hash ^= zobristEnPassant[p.epSquare.File()]
	}

	if pt == Pawn || captured != NoPiece {
		p.halfMove = 0
	} else {
		p.halfMove++
	}

	if us == Black {
		p.fullMove++
	}

	p.sideToMove = them
	p.hash ^= zobristSideToMove

	p.updateAttackState()

	if p.mode != RepetitionNone {
		p.history = append(p.history, p.hash)
	}
}
