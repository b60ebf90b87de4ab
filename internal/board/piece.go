package board

import (
	"cmp"
	"strings"
)

// Color is a side. White and Black are 0 and 1 so a color can index
// per-side arrays directly.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

func (c Color) Other() Color {
	return c ^ 1
}

// Compare orders White before Black.
func (c Color) Compare(o Color) int {
	return cmp.Compare(c, o)
}

func (c Color) String() string {
	return [...]string{"White", "Black", "NoColor"}[min(c, NoColor)]
}

// PieceType is a kind of piece. The values run Pawn..King and index the
// per-type bitboards.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

const typeLetters = "pnbrqk "

func (pt PieceType) String() string {
	return [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}[min(pt, NoPieceType)]
}

// Char returns the lowercase FEN letter of pt, or a space for NoPieceType.
func (pt PieceType) Char() byte {
	return typeLetters[min(pt, NoPieceType)]
}

func (pt PieceType) Index() int {
	return int(pt)
}

// PromotionTypes are the promotion choices in generation order.
var PromotionTypes = [4]PieceType{Knight, Bishop, Rook, Queen}

// Piece is a colored piece type, numbered type + 6*color so that the white
// pieces come first. NoPiece marks an empty square.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

const (
	pieceLetters = "PNBRQKpnbrqk"
	pieceGlyphs  = "♙♘♗♖♕♔♟♞♝♜♛♚"
)

// NewPiece returns the piece of type pt and color c, or NoPiece if either
// is out of range.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return Piece(pt) + Piece(c)*6
}

func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the FEN letter, uppercase for White, or a space for NoPiece.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return pieceLetters[p : p+1]
}

// PieceFromChar is the inverse of String for the twelve FEN letters and
// returns NoPiece for anything else.
func PieceFromChar(c byte) Piece {
	if i := strings.IndexByte(pieceLetters, c); i >= 0 {
		return Piece(i)
	}
	return NoPiece
}

// Unicode returns the chess glyph of p, outlined for White and solid for
// Black, or a space for NoPiece.
func (p Piece) Unicode() string {
	if p >= NoPiece {
		return " "
	}
	// Every glyph is three bytes in UTF-8.
	return pieceGlyphs[3*int(p) : 3*int(p)+3]
}

// Compare orders pieces by type, then White before Black.
func (p Piece) Compare(o Piece) int {
	return cmp.Or(cmp.Compare(p.Type(), o.Type()), cmp.Compare(p.Color(), o.Color()))
}
