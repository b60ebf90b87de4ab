package board

// BoardStatus classifies a position. Only terminal results are statuses;
// claimable draws are reported by IsThreefoldRepetition and IsFiftyMoves.
type BoardStatus uint8

const (
	Ongoing BoardStatus = iota
	SeventyFiveMoves
	FivefoldRepetition
	InsufficientMaterial
	Stalemate
	Checkmate
)

func (s BoardStatus) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case SeventyFiveMoves:
		return "seventy-five moves"
	case FivefoldRepetition:
		return "fivefold repetition"
	case InsufficientMaterial:
		return "insufficient material"
	case Stalemate:
		return "stalemate"
	case Checkmate:
		return "checkmate"
	default:
		return "unknown"
	}
}

// IsDraw returns true for every drawn terminal status.
func (s BoardStatus) IsDraw() bool {
	return s != Ongoing && s != Checkmate
}

// Status returns the first matching status in the order checkmate,
// stalemate, fivefold repetition, seventy-five moves, insufficient
// material, ongoing.
func (p *Position) Status() BoardStatus {
	if !p.HasLegalMoves() {
		if p.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	switch {
	case p.IsFivefoldRepetition():
		return FivefoldRepetition
	case p.halfMove >= 150:
		return SeventyFiveMoves
	case p.IsInsufficientMaterial():
		return InsufficientMaterial
	}
	return Ongoing
}

// IsGameOver returns true if Status is not Ongoing.
func (p *Position) IsGameOver() bool {
	return p.Status() != Ongoing
}

// IsCheckmate returns true if the side to move is checkmated.
func (p *Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move has no legal move and is not in check.
func (p *Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// IsFivefoldRepetition returns true if the current position occurred at least five times.
func (p *Position) IsFivefoldRepetition() bool {
	return p.repetitions() >= 5
}

// IsThreefoldRepetition returns true if a draw may be claimed by threefold repetition.
func (p *Position) IsThreefoldRepetition() bool {
	return p.repetitions() >= 3
}

// IsSeventyFiveMoves returns true if 75 moves passed without a zeroing move
// and the game is not already decided on the board.
func (p *Position) IsSeventyFiveMoves() bool {
	return p.halfMove >= 150 && p.HasLegalMoves()
}

// IsFiftyMoves returns true if a draw may be claimed under the fifty-move rule.
func (p *Position) IsFiftyMoves() bool {
	return p.halfMove >= 100 && p.HasLegalMoves()
}

// CanClaimDraw returns true if the side to move may claim a draw.
func (p *Position) CanClaimDraw() bool {
	return p.IsThreefoldRepetition() || p.IsFiftyMoves()
}

// repetitions counts how often the current hash appears in the history.
func (p *Position) repetitions() int {
	n := 0
	for _, h := range p.history {
		if h == p.hash {
			n++
		}
	}
	return n
}

// IsInsufficientMaterial returns true if neither side can possibly mate:
// bare kings, a single minor piece, or one bishop each on the same square colour.
func (p *Position) IsInsufficientMaterial() bool {
	if p.PieceTypeBB(Pawn)|p.PieceTypeBB(Rook)|p.PieceTypeBB(Queen) != 0 {
		return false
	}

	knights := p.PieceTypeBB(Knight)
	bishops := p.PieceTypeBB(Bishop)

	switch (knights | bishops).PopCount() {
	case 0, 1:
		return true
	case 2:
		if knights != 0 || p.pieces[White][Bishop] == 0 || p.pieces[Black][Bishop] == 0 {
			return false
		}
		return bishops&LightSquares == bishops || bishops&DarkSquares == bishops
	}
	return false
}
