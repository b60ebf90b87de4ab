package board

// CastleRights is one side's castling availability. The four values form a
// lattice ordered by inclusion; over a game a side's rights only shrink.
type CastleRights uint8

const (
	NoRights  CastleRights = 0
	KingSide  CastleRights = 1
	QueenSide CastleRights = 2
	BothSides CastleRights = KingSide | QueenSide
)

// Has returns true if every right in o is held.
func (cr CastleRights) Has(o CastleRights) bool {
	return cr&o == o
}

// Kingside returns true if short castling is still available.
func (cr CastleRights) Kingside() bool {
	return cr&KingSide != 0
}

// Queenside returns true if long castling is still available.
func (cr CastleRights) Queenside() bool {
	return cr&QueenSide != 0
}

// Intersect returns the rights held in both cr and o.
func (cr CastleRights) Intersect(o CastleRights) CastleRights {
	return cr & o
}

// Remove returns cr with the rights in o revoked.
func (cr CastleRights) Remove(o CastleRights) CastleRights {
	return cr &^ o
}

// Subset reports whether cr <= o in the lattice order. NoRights is below
// everything, BothSides above everything, KingSide and QueenSide are
// incomparable.
func (cr CastleRights) Subset(o CastleRights) bool {
	return cr&^o == 0
}

// String returns the FEN letters for the rights of color c ("KQ", "kq", ...),
// or the empty string if none are held.
func (cr CastleRights) String(c Color) string {
	var s []byte
	if cr.Kingside() {
		s = append(s, 'K')
	}
	if cr.Queenside() {
		s = append(s, 'Q')
	}
	if c == Black {
		for i := range s {
			s[i] |= 0x20
		}
	}
	return string(s)
}

// Index returns the rights as a 0-3 table index.
func (cr CastleRights) Index() int {
	return int(cr)
}

// castlingIndex packs both sides' rights into the 0-15 index used by the
// Zobrist castling table: White in bits 0-1, Black in bits 2-3.
func castlingIndex(rights [2]CastleRights) int {
	return rights[White].Index() | rights[Black].Index()<<2
}

// rookHome is the starting square of the rook used for each castling side.
func rookHome(c Color, side CastleRights) Square {
	switch {
	case c == White && side == KingSide:
		return H1
	case c == White:
		return A1
	case side == KingSide:
		return H8
	default:
		return A8
	}
}

// castleRevoke lists the rights lost when a piece moves from or to a rook's
// home square. King moves revoke both rights separately.
var castleRevoke [64][2]CastleRights

func init() {
	castleRevoke[A1][White] = QueenSide
	castleRevoke[H1][White] = KingSide
	castleRevoke[A8][Black] = QueenSide
	castleRevoke[H8][Black] = KingSide
}
