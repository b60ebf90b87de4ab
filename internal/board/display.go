package board

import "strings"

// Display returns the board as an ASCII grid, rank 8 first, one
// space-separated row per rank, "." for empty squares.
func (p *Position) Display() string {
	return p.grid(func(piece Piece) string { return piece.String() }, ".")
}

// DisplayUnicode returns the board drawn with chess glyphs and "·" for empty
// squares. With darkMode the glyph colours are swapped so that pieces look
// right as light text on a dark terminal.
func (p *Position) DisplayUnicode(darkMode bool) string {
	return p.grid(func(piece Piece) string {
		if darkMode {
			piece = NewPiece(piece.Type(), piece.Color().Other())
		}
		return piece.Unicode()
	}, "·")
}

func (p *Position) grid(glyph func(Piece) string, empty string) string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if piece := p.PieceAt(NewSquare(file, rank)); piece != NoPiece {
				sb.WriteString(glyph(piece))
			} else {
				sb.WriteString(empty)
			}
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
