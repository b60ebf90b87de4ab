package board

import (
	"fmt"
	"slices"
	"strings"
)

// RepetitionMode selects how much move history a Position keeps for
// repetition detection.
type RepetitionMode uint8

const (
	// RepetitionFull records every position hash.
	RepetitionFull RepetitionMode = iota
	// RepetitionPartial currently behaves exactly like RepetitionFull.
	RepetitionPartial
	// RepetitionNone keeps no history; repetition rules never trigger.
	RepetitionNone
)

func (m RepetitionMode) String() string {
	switch m {
	case RepetitionFull:
		return "full"
	case RepetitionPartial:
		return "partial"
	case RepetitionNone:
		return "none"
	default:
		return fmt.Sprintf("RepetitionMode(%d)", uint8(m))
	}
}

// Position represents a complete chess position plus the hashes of the
// positions that led to it.
//
// A Position may be read from several goroutines at once as long as nobody
// applies a move to it meanwhile. Use Copy or the MakeMoveNew variants to
// hand positions between goroutines.
type Position struct {
	// Piece bitboards: [Color][PieceType]
	pieces [2][6]Bitboard

	// Occupancy bitboards
	occupied [2]Bitboard
	all      Bitboard

	sideToMove Color
	castling   [2]CastleRights
	epSquare   Square // Target square for en passant, NoSquare if none
	halfMove   int    // Plies since the last pawn move or capture
	fullMove   int    // Starts at 1, incremented after Black moves

	hash   uint64
	kingSq [2]Square

	// Attack state for the side to move, refreshed after every change.
	checkers Bitboard
	pinned   Bitboard

	mode    RepetitionMode
	history []uint64 // Hashes of every position reached, current one last
}

// Copy returns an independent deep copy of the position, history included.
func (p *Position) Copy() *Position {
	c := *p
	c.history = slices.Clone(p.history)
	return &c
}

// SideToMove returns the color whose turn it is.
func (p *Position) SideToMove() Color { return p.sideToMove }

// EnPassant returns the en passant target square, or NoSquare.
func (p *Position) EnPassant() Square { return p.epSquare }

// HalfMoveClock returns the number of plies since the last zeroing move.
func (p *Position) HalfMoveClock() int { return p.halfMove }

// FullMoveNumber returns the full move counter.
func (p *Position) FullMoveNumber() int { return p.fullMove }

// Hash returns the Zobrist hash of the position.
func (p *Position) Hash() uint64 { return p.hash }

// Checkers returns the enemy pieces giving check to the side to move.
func (p *Position) Checkers() Bitboard { return p.checkers }

// Pinned returns the side to move's pieces pinned against its own king.
func (p *Position) Pinned() Bitboard { return p.pinned }

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool { return p.checkers != 0 }

// KingSquare returns the square of the king of color c.
func (p *Position) KingSquare(c Color) Square { return p.kingSq[c] }

// RepetitionMode returns the history policy of the position.
func (p *Position) RepetitionMode() RepetitionMode { return p.mode }

// History returns a copy of the recorded position hashes, oldest first.
func (p *Position) History() []uint64 { return slices.Clone(p.history) }

// CastleRights returns the castling rights of color c.
func (p *Position) CastleRights(c Color) CastleRights { return p.castling[c] }

// MyCastleRights returns the castling rights of the side to move.
func (p *Position) MyCastleRights() CastleRights { return p.castling[p.sideToMove] }

// TheirCastleRights returns the castling rights of the side not to move.
func (p *Position) TheirCastleRights() CastleRights { return p.castling[p.sideToMove.Other()] }

// Equal reports whether two positions have the same hash.
func (p *Position) Equal(o *Position) bool {
	return p.hash == o.hash
}

// ColorBB returns the squares occupied by color c.
func (p *Position) ColorBB(c Color) Bitboard { return p.occupied[c] }

// PieceTypeBB returns the squares occupied by pieces of type pt of either color.
func (p *Position) PieceTypeBB(pt PieceType) Bitboard {
	return p.pieces[White][pt] | p.pieces[Black][pt]
}

// PieceBB returns the squares occupied by the given piece.
func (p *Position) PieceBB(piece Piece) Bitboard {
	if piece >= NoPiece {
		return Empty
	}
	return p.pieces[piece.Color()][piece.Type()]
}

// Occupied returns every occupied square.
func (p *Position) Occupied() Bitboard { return p.all }

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)
	if p.all&bb == 0 {
		return NoPiece
	}

	c := White
	if p.occupied[Black]&bb != 0 {
		c = Black
	}

	for pt := Pawn; pt <= King; pt++ {
		if p.pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}
	return NoPiece
}

// ColorAt returns the color of the piece on sq, or NoColor if it is empty.
func (p *Position) ColorAt(sq Square) Color {
	return p.PieceAt(sq).Color()
}

// PieceTypeAt returns the type of the piece on sq, or NoPieceType if it is empty.
func (p *Position) PieceTypeAt(sq Square) PieceType {
	return p.PieceAt(sq).Type()
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.all&SquareBB(sq) == 0
}

// setPiece places a piece on a square (does not update hash).
func (p *Position) setPiece(piece Piece, sq Square) {
	c := piece.Color()
	pt := piece.Type()
	bb := SquareBB(sq)

	p.pieces[c][pt] |= bb
	p.occupied[c] |= bb
	p.all |= bb

	if pt == King {
		p.kingSq[c] = sq
	}
}

// removePiece removes whatever stands on sq (does not update hash).
func (p *Position) removePiece(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}

	bb := SquareBB(sq)
	p.pieces[piece.Color()][piece.Type()] &^= bb
	p.occupied[piece.Color()] &^= bb
	p.all &^= bb
	return piece
}

// movePiece moves a piece between two squares (does not update hash).
func (p *Position) movePiece(piece Piece, from, to Square) {
	c := piece.Color()
	pt := piece.Type()
	moveBB := SquareBB(from) | SquareBB(to)

	p.pieces[c][pt] ^= moveBB
	p.occupied[c] ^= moveBB
	p.all ^= moveBB

	if pt == King {
		p.kingSq[c] = to
	}
}

// validate checks the structural invariants a parsed position must satisfy.
func (p *Position) validate() error {
	for c := White; c <= Black; c++ {
		if n := p.pieces[c][King].PopCount(); n != 1 {
			return &FENError{Field: "placement", Reason: fmt.Sprintf("%s has %d kings, want 1", strings.ToLower(c.String()), n)}
		}
	}

	if (p.pieces[White][Pawn]|p.pieces[Black][Pawn])&(Rank1|Rank8) != 0 {
		return &FENError{Field: "placement", Reason: "pawns on rank 1 or 8"}
	}

	// The side that just moved cannot have left its king en prise.
	them := p.sideToMove.Other()
	if p.IsSquareAttacked(p.kingSq[them], p.sideToMove) {
		return &FENError{Field: "placement", Reason: "side not to move is in check"}
	}

	return nil
}

// String returns a debug dump of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString(p.Display())
	fmt.Fprintf(&sb, "Side to move: %s\n", p.sideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.castlingField())
	fmt.Fprintf(&sb, "En passant: %s\n", p.epSquare)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.halfMove)
	fmt.Fprintf(&sb, "Full move: %d\n", p.fullMove)
	fmt.Fprintf(&sb, "Hash: %016x\n", p.hash)
	return sb.String()
}
