package diagram

import (
	"strings"

	"github.com/srwiley/oksvg"

	"github.com/hailam/chessrules/internal/board"
)

// Piece outlines on a 45x45 canvas. {fill} and {stroke} are replaced per colour.
var pieceShapes = [6]string{
	board.Pawn: `<path d="M 19 22 L 26 22 L 30 36 L 15 36 Z"/>
<circle cx="22.5" cy="15" r="6"/>
<rect x="11" y="36" width="23" height="4"/>`,

	board.Knight: `<path d="M 12 39 L 33 39 L 31 22 C 30 13 25 9 19 9 L 18 12 L 14 14 L 10 22 L 13 24 L 18 21 L 20 23 C 15 28 12 33 12 39 Z"/>
<circle cx="16.5" cy="15" r="1.2" fill="{stroke}"/>`,

	board.Bishop: `<path d="M 12 38 L 33 38 L 33 35 L 12 35 Z"/>
<path d="M 15 34 L 30 34 C 30 28 29 24 27 21 L 18 21 C 16 24 15 28 15 34 Z"/>
<path d="M 22.5 8 C 16 13 15 18 18 21 L 27 21 C 30 18 29 13 22.5 8 Z"/>
<circle cx="22.5" cy="6.5" r="2.5"/>`,

	board.Rook: `<path d="M 9 39 L 36 39 L 36 35 L 9 35 Z"/>
<path d="M 13 35 L 32 35 L 30 17 L 15 17 Z"/>
<path d="M 11 17 L 34 17 L 34 9 L 30 9 L 30 12 L 25 12 L 25 9 L 20 9 L 20 12 L 15 12 L 15 9 L 11 9 Z"/>`,

	board.Queen: `<path d="M 9 26 L 36 26 L 39 12 L 31 23 L 29 9 L 25 22 L 22.5 8 L 20 22 L 16 9 L 14 23 L 6 12 Z"/>
<path d="M 9 26 L 36 26 L 34 32 L 11 32 Z"/>
<path d="M 11 32 L 34 32 L 35 38 L 10 38 Z"/>
<circle cx="6" cy="12" r="2"/>
<circle cx="16" cy="9" r="2"/>
<circle cx="22.5" cy="8" r="2"/>
<circle cx="29" cy="9" r="2"/>
<circle cx="39" cy="12" r="2"/>`,

	board.King: `<path d="M 22.5 6 L 22.5 14 M 19 9 L 26 9" fill="none"/>
<path d="M 22.5 14 C 27 14 28 20 22.5 26 C 17 20 18 14 22.5 14 Z"/>
<path d="M 11 37 L 34 37 L 34 30 C 40 24 34 16 27 21 L 22.5 26 L 18 21 C 11 16 5 24 11 30 Z"/>`,
}

// pieceSVG returns a standalone SVG document for p.
func pieceSVG(p board.Piece) string {
	fill, stroke := "#ffffff", "#000000"
	if p.Color() == board.Black {
		fill, stroke = "#000000", "#d8d8d8"
	}

	var sb strings.Builder
	sb.WriteString(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 45 45" width="45" height="45">`)
	sb.WriteString(`<g fill="{fill}" stroke="{stroke}" stroke-width="1.5" stroke-linejoin="round" stroke-linecap="round">`)
	sb.WriteString(pieceShapes[p.Type()])
	sb.WriteString(`</g></svg>`)

	return strings.NewReplacer("{fill}", fill, "{stroke}", stroke).Replace(sb.String())
}

// loadIcon parses the SVG for p. Icons are stateful once a target is set,
// so every render parses its own.
func loadIcon(p board.Piece) (*oksvg.SvgIcon, error) {
	return oksvg.ReadIconStream(strings.NewReader(pieceSVG(p)))
}
