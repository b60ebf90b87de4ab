package board

// IsLegal returns true if m is a legal move in this position.
func (p *Position) IsLegal(m Move) bool {
	return p.isPseudoLegal(m) && p.leavesKingSafe(m.From(), m.To())
}

// IsLegalQuick checks m against the piece movement rules and the cached
// checkers and pinned bitboards only. It never rejects a legal move but may
// accept an en passant capture that exposes the king along a rank.
func (p *Position) IsLegalQuick(m Move) bool {
	return p.isPseudoLegal(m) && p.quickLegal(m.From(), m.To())
}

// isPseudoLegal checks that m follows the movement rules for the side to
// move, including the promotion suffix.
func (p *Position) isPseudoLegal(m Move) bool {
	from, to := m.From(), m.To()
	if !p.pseudoTargets(from).IsSet(to) {
		return false
	}
	if !p.isPromotionSquare(from, to) {
		return !m.IsPromotion()
	}
	promo := m.Promotion()
	return promo >= Knight && promo <= Queen
}

// isEnPassantCapture reports whether the side to move's piece on from takes
// en passant by moving to to.
func (p *Position) isEnPassantCapture(from, to Square) bool {
	return to == p.epSquare && from.File() != to.File() &&
		p.pieces[p.sideToMove][Pawn].IsSet(from)
}

// leavesKingSafe is the full legality test for a pseudo-legal move. Moves
// that cannot possibly expose the king are accepted directly; everything
// else is played out on a scratch board.
func (p *Position) leavesKingSafe(from, to Square) bool {
	us := p.sideToMove
	ksq := p.kingSq[us]

	if from == ksq {
		if abs(to.File()-from.File()) == 2 {
			// Castling: the path was checked when the target was generated.
			return true
		}
		occ := p.all &^ SquareBB(from)
		return p.AttackersByColor(to, us.Other(), occ) == 0
	}

	if p.checkers.Empty() && !p.pinned.IsSet(from) && !p.isEnPassantCapture(from, to) {
		return true
	}

	v := newVBoard(p)
	v.applyMove(from, to, us, p.isEnPassantCapture(from, to))
	return !v.isKingAttacked(us)
}

// quickLegal rejects only moves that the checkers and pinned bitboards prove
// illegal, without simulating the move.
func (p *Position) quickLegal(from, to Square) bool {
	us := p.sideToMove
	ksq := p.kingSq[us]

	if from == ksq {
		if abs(to.File()-from.File()) == 2 {
			return true
		}
		occ := p.all &^ SquareBB(from)
		return p.AttackersByColor(to, us.Other(), occ) == 0
	}

	if p.checkers != 0 {
		// Double check: only the king can move.
		if p.checkers.More() {
			return false
		}
		checker := p.checkers.LSB()
		blocks := to == checker || Between(checker, ksq).IsSet(to)
		takesCheckerEP := p.isEnPassantCapture(from, to) && to.Forward(us.Other()) == checker
		if !blocks && !takesCheckerEP {
			return false
		}
	}

	if p.pinned.IsSet(from) && !Aligned(from, to, ksq) {
		return false
	}

	return true
}
