package board

import (
	"iter"
	"math/bits"
	"strings"
)

// Bitboard is a set of squares: bit i is set when Square(i) is a member,
// so a1 is bit 0, h1 bit 7 and h8 bit 63.
type Bitboard uint64

const (
	FileA Bitboard = 0x0101010101010101 << iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 Bitboard = 0xFF << (8 * iota)
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

const (
	Empty    Bitboard = 0
	Universe Bitboard = ^Empty

	NotFileA = ^FileA
	NotFileH = ^FileH

	// a1 is a dark square.
	DarkSquares  Bitboard = 0xAA55AA55AA55AA55
	LightSquares          = ^DarkSquares
)

// FileMask and RankMask index the file and rank constants by number, 0 for
// the a-file or first rank.
var (
	FileMask = [8]Bitboard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}
	RankMask = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}
)

// SquareBB returns the set holding only sq.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

func (b Bitboard) Set(sq Square) Bitboard    { return b | SquareBB(sq) }
func (b Bitboard) Clear(sq Square) Bitboard  { return b &^ SquareBB(sq) }
func (b Bitboard) Toggle(sq Square) Bitboard { return b ^ SquareBB(sq) }
func (b Bitboard) IsSet(sq Square) bool      { return b&SquareBB(sq) != 0 }

// Empty reports whether no square is set.
func (b Bitboard) Empty() bool { return b == 0 }

// More reports whether at least two squares are set.
func (b Bitboard) More() bool { return b&(b-1) != 0 }

func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the lowest set square, or NoSquare for an empty set.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// MSB returns the highest set square, or NoSquare for an empty set.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(63 - bits.LeadingZeros64(uint64(b)))
}

// PopLSB removes the lowest set square from b and returns it.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// ToSquare is LSB under the name used when b is known to hold one square.
func (b Bitboard) ToSquare() Square {
	return b.LSB()
}

// One-square shifts. Squares pushed off the board are dropped; the file
// masks stop east and west moves from wrapping onto the next rank.
func (b Bitboard) North() Bitboard     { return b << 8 }
func (b Bitboard) South() Bitboard     { return b >> 8 }
func (b Bitboard) East() Bitboard      { return b << 1 & NotFileA }
func (b Bitboard) West() Bitboard      { return b >> 1 & NotFileH }
func (b Bitboard) NorthEast() Bitboard { return b << 9 & NotFileA }
func (b Bitboard) NorthWest() Bitboard { return b << 7 & NotFileH }
func (b Bitboard) SouthEast() Bitboard { return b >> 7 & NotFileA }
func (b Bitboard) SouthWest() Bitboard { return b >> 9 & NotFileH }

// FlipVertical mirrors b top to bottom: each rank is one byte, so swapping
// byte order maps rank r onto rank 7-r.
func (b Bitboard) FlipVertical() Bitboard {
	return Bitboard(bits.ReverseBytes64(uint64(b)))
}

// Squares yields the members of b in ascending order. The sequence ranges
// over a copy of the mask and can be replayed.
func (b Bitboard) Squares() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		for rest := b; rest != 0; {
			if !yield(rest.PopLSB()) {
				return
			}
		}
	}
}

// ForEach calls f on each member in ascending order.
func (b Bitboard) ForEach(f func(Square)) {
	for sq := range b.Squares() {
		f(sq)
	}
}

// String draws b as an 8x8 grid, rank 8 on top, X for members.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(string(rune('1'+rank)) + " ")
		for file := range 8 {
			cell := ". "
			if b.IsSet(NewSquare(file, rank)) {
				cell = "X "
			}
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
