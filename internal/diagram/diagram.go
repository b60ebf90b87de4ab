// Package diagram renders positions as raster board diagrams.
package diagram

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hailam/chessrules/internal/board"
)

// Options control how a diagram is drawn.
type Options struct {
	SquareSize  int  // pixels per square
	Flip        bool // draw from Black's side
	Coordinates bool // file letters and rank digits in a margin
	Highlight   board.Bitboard

	LightColor     color.RGBA
	DarkColor      color.RGBA
	HighlightColor color.RGBA
	CheckColor     color.RGBA // square of a king in check
	LabelColor     color.RGBA
}

// DefaultOptions returns 64 pixel squares in the usual brown palette with
// coordinates.
func DefaultOptions() Options {
	return Options{
		SquareSize:     64,
		Coordinates:    true,
		LightColor:     color.RGBA{0xF0, 0xD9, 0xB5, 0xFF},
		DarkColor:      color.RGBA{0xB5, 0x88, 0x63, 0xFF},
		HighlightColor: color.RGBA{0xCD, 0xD2, 0x6A, 0xFF},
		CheckColor:     color.RGBA{0xE0, 0x40, 0x40, 0xFF},
		LabelColor:     color.RGBA{0x30, 0x30, 0x30, 0xFF},
	}
}

// margin is the width of the coordinate strip, zero without coordinates.
func (o Options) margin() int {
	if !o.Coordinates {
		return 0
	}
	return o.SquareSize / 3
}

// SquareRect returns the pixel rectangle of sq in a diagram drawn with o.
func (o Options) SquareRect(sq board.Square) image.Rectangle {
	col, row := sq.File(), 7-sq.Rank()
	if o.Flip {
		col, row = 7-col, 7-row
	}
	x := o.margin() + col*o.SquareSize
	y := row * o.SquareSize
	return image.Rect(x, y, x+o.SquareSize, y+o.SquareSize)
}

// Render draws pos. A SquareSize below 8 is raised to 8.
func Render(pos *board.Position, opts Options) *image.RGBA {
	if opts.SquareSize < 8 {
		opts.SquareSize = 8
	}
	side := 8*opts.SquareSize + opts.margin()
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.LightColor), image.Point{}, draw.Src)

	checked := board.NoSquare
	if pos.InCheck() {
		checked = pos.KingSquare(pos.SideToMove())
	}

	for i := range 64 {
		sq := board.Square(i)
		c := opts.LightColor
		switch {
		case sq == checked:
			c = opts.CheckColor
		case opts.Highlight.IsSet(sq):
			c = opts.HighlightColor
		case (sq.File()+sq.Rank())%2 == 0:
			c = opts.DarkColor
		}
		draw.Draw(img, opts.SquareRect(sq), image.NewUniform(c), image.Point{}, draw.Src)
	}

	drawPieces(img, pos, opts)
	if opts.Coordinates {
		drawLabels(img, opts)
	}
	return img
}

// WritePNG renders pos and encodes it as PNG.
func WritePNG(w io.Writer, pos *board.Position, opts Options) error {
	return png.Encode(w, Render(pos, opts))
}

func drawPieces(img *image.RGBA, pos *board.Position, opts Options) {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	raster := rasterx.NewDasher(b.Dx(), b.Dy(), scanner)

	inset := float64(opts.SquareSize) / 20
	size := float64(opts.SquareSize) - 2*inset

	icons := make(map[board.Piece]*oksvg.SvgIcon)
	for sq := range pos.Occupied().Squares() {
		p := pos.PieceAt(sq)
		icon, ok := icons[p]
		if !ok {
			var err error
			// The outlines are fixed; a parse failure leaves the square empty.
			if icon, err = loadIcon(p); err != nil {
				continue
			}
			icons[p] = icon
		}

		r := opts.SquareRect(sq)
		icon.SetTarget(float64(r.Min.X)+inset, float64(r.Min.Y)+inset, size, size)
		icon.Draw(raster, 1.0)
	}
}

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// labelFace returns a Go Regular face of the given size, or the fixed
// 7x13 bitmap face if the font cannot be loaded.
func labelFace(size float64) font.Face {
	f, err := goRegular()
	if err != nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

func drawLabels(img *image.RGBA, opts Options) {
	m := opts.margin()
	face := labelFace(float64(m) * 0.8)
	defer face.Close()

	d := &font.Drawer{Dst: img, Src: image.NewUniform(opts.LabelColor), Face: face}
	ascent := face.Metrics().Ascent

	for i := 0; i < 8; i++ {
		file := board.NewSquare(i, 0)
		r := opts.SquareRect(file)
		s := string(rune('a' + i))
		w := d.MeasureString(s)
		d.Dot = fixed.Point26_6{
			X: fixed.I(r.Min.X+opts.SquareSize/2) - w/2,
			Y: fixed.I(8*opts.SquareSize+m/2) + ascent/2,
		}
		d.DrawString(s)

		rank := board.NewSquare(0, i)
		r = opts.SquareRect(rank)
		s = string(rune('1' + i))
		w = d.MeasureString(s)
		d.Dot = fixed.Point26_6{
			X: fixed.I(m/2) - w/2,
			Y: fixed.I(r.Min.Y+opts.SquareSize/2) + ascent/2,
		}
		d.DrawString(s)
	}
}
