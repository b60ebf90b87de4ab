package board

import (
	"cmp"
	"fmt"
	"strings"
)

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-14: promotion piece type + 1 (0 = no promotion)
//
// A Move does not know which piece moves or whether it captures; those
// questions are answered by the Position it is played in.
type Move uint16

// NoMove represents an invalid or null move. It prints as "0000".
const NoMove Move = 0

// NewMove creates a move without promotion.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a pawn move that promotes to promo.
func NewPromotion(from, to Square, promo PieceType) Move {
	return NewMove(from, to) | Move(promo+1)<<12
}

// From returns the source square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Promotion returns the promotion piece type, or NoPieceType.
func (m Move) Promotion() PieceType {
	p := m >> 12
	if p == 0 {
		return NoPieceType
	}
	return PieceType(p - 1)
}

// IsPromotion returns true if the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m>>12 != 0
}

// Compare orders moves by source square, then destination, then promotion
// piece type. This is the order in which the generator yields moves.
func (m Move) Compare(o Move) int {
	if c := cmp.Compare(m.From(), o.From()); c != 0 {
		return c
	}
	if c := cmp.Compare(m.To(), o.To()); c != 0 {
		return c
	}
	return cmp.Compare(m>>12, o>>12)
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// ParseMove parses UCI move text such as "e2e4" or "e7e8q". Parsing is
// purely syntactic and case-insensitive; use Position.ParseUCIMove to also
// check legality.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, fmt.Errorf("%w: %q: want 4 or 5 characters", ErrMalformedUCI, s)
	}

	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrMalformedUCI, s, err)
	}

	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, fmt.Errorf("%w: %q: %v", ErrMalformedUCI, s, err)
	}

	if from == to {
		return NoMove, fmt.Errorf("%w: %q: source equals destination", ErrMalformedUCI, s)
	}

	if len(s) == 4 {
		return NewMove(from, to), nil
	}

	var promo PieceType
	switch strings.ToLower(s[4:]) {
	case "n":
		promo = Knight
	case "b":
		promo = Bishop
	case "r":
		promo = Rook
	case "q":
		promo = Queen
	default:
		return NoMove, fmt.Errorf("%w: %q: invalid promotion piece %q", ErrMalformedUCI, s, s[4])
	}
	return NewPromotion(from, to, promo), nil
}

// ParseUCIMove parses UCI move text and checks that it is legal here.
func (p *Position) ParseUCIMove(s string) (Move, error) {
	m, err := ParseMove(s)
	if err != nil {
		return NoMove, err
	}
	if !p.IsLegal(m) {
		return NoMove, &MoveError{Move: m, FEN: p.FEN(), Err: ErrIllegalMove}
	}
	return m, nil
}

// IsCapture returns true if m takes a piece, en passant included.
func (p *Position) IsCapture(m Move) bool {
	return p.occupied[p.sideToMove.Other()].IsSet(m.To()) || p.IsEnPassant(m)
}

// IsEnPassant returns true if m is a pawn capturing en passant.
func (p *Position) IsEnPassant(m Move) bool {
	return m.To() == p.epSquare &&
		p.pieces[p.sideToMove][Pawn].IsSet(m.From()) &&
		m.From().File() != m.To().File()
}

// IsZeroing returns true if m resets the halfmove clock: any pawn move or capture.
func (p *Position) IsZeroing(m Move) bool {
	return p.pieces[p.sideToMove][Pawn].IsSet(m.From()) || p.IsCapture(m)
}

// IsCastling returns true if m moves the king two files.
func (p *Position) IsCastling(m Move) bool {
	from, to := m.From(), m.To()
	return from == p.kingSq[p.sideToMove] &&
		from.Rank() == to.Rank() &&
		abs(to.File()-from.File()) == 2
}

// IsKingsideCastling returns true if m castles short.
func (p *Position) IsKingsideCastling(m Move) bool {
	return p.IsCastling(m) && m.To() > m.From()
}

// IsQueensideCastling returns true if m castles long.
func (p *Position) IsQueensideCastling(m Move) bool {
	return p.IsCastling(m) && m.To() < m.From()
}

// CanCastleKingside returns true if the side to move holds the kingside
// right and short castling is legal right now.
func (p *Position) CanCastleKingside() bool {
	return p.canCastle(KingSide)
}

// CanCastleQueenside returns true if the side to move holds the queenside
// right and long castling is legal right now.
func (p *Position) CanCastleQueenside() bool {
	return p.canCastle(QueenSide)
}

// CanCastle returns true if either castling move is legal.
func (p *Position) CanCastle() bool {
	return p.canCastle(KingSide) || p.canCastle(QueenSide)
}

func (p *Position) canCastle(side CastleRights) bool {
	us := p.sideToMove
	if !p.castling[us].Has(side) {
		return false
	}
	from := p.kingSq[us]
	to := from + 2
	if side == QueenSide {
		to = from - 2
	}
	return p.castlingTargets(from, us).IsSet(to)
}
