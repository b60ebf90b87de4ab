package board

// Zobrist keys for position hashing.
// Generated from a fixed seed so hashes are stable across runs and processes.
var (
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][Square]
	zobristEnPassant  [8]uint64        // One per file
	zobristCastling   [16]uint64       // Indexed by castlingIndex
	zobristSideToMove uint64           // XOR when black to move
)

func init() {
	initZobrist()
}

// prng is a small xorshift64* generator used only to fill the key tables.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	// Index 0 (no rights for either side) stays zero.
	for i := 1; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}

	zobristSideToMove = rng.next()
}

// computeHash folds every hash term of the position from scratch. The same
// terms are toggled incrementally when a move is applied.
func (p *Position) computeHash() uint64 {
	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for bb := p.pieces[c][pt]; bb != 0; {
				hash ^= zobristPiece[c][pt][bb.PopLSB()]
			}
		}
	}

	if p.sideToMove == Black {
		hash ^= zobristSideToMove
	}

	hash ^= zobristCastling[castlingIndex(p.castling)]

	if p.epSquare != NoSquare {
		hash ^= zobristEnPassant[p.epSquare.File()]
	}

	return hash
}
