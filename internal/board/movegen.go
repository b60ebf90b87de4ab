package board

import "iter"

// GeneratorState is the position of a MoveGenerator in its life cycle.
type GeneratorState uint8

const (
	// Idle: freshly created or reset, nothing consumed yet.
	Idle GeneratorState = iota
	// Enumerating: at least one move has been produced.
	Enumerating
	// Exhausted: no moves remain until Reset.
	Exhausted
)

func (s GeneratorState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Enumerating:
		return "enumerating"
	default:
		return "exhausted"
	}
}

// MoveGenerator enumerates the moves of a Position one at a time in
// canonical order: ascending source square, then ascending destination,
// promotions as knight, bishop, rook, queen.
//
// The generator keeps its cursor between calls. Once exhausted it yields
// nothing until Reset. The bound Position must not be modified while a
// generator is in use, and a generator must not be shared between
// goroutines.
type MoveGenerator struct {
	pos          *Position
	quick        bool // reject only provably illegal moves
	mask         Bitboard
	capturesOnly bool
	excluded     []Move

	state   GeneratorState
	pieces  Bitboard // own pieces not yet visited
	from    Square
	targets Bitboard // destinations of from not yet considered
	to      Square   // destination being expanded into promotions
	promo   int      // next index into PromotionTypes, -1 when idle
}

// NewMoveGenerator returns a generator over the legal moves of p.
func (p *Position) NewMoveGenerator() *MoveGenerator {
	return &MoveGenerator{pos: p, mask: Universe, promo: -1}
}

// NewPseudoLegalGenerator returns a generator that skips full legality
// checking. It drops moves that are provably illegal from the cached
// checkers and pinned bitboards alone, so it yields every legal move and
// possibly a few illegal en passant captures.
func (p *Position) NewPseudoLegalGenerator() *MoveGenerator {
	g := p.NewMoveGenerator()
	g.quick = true
	return g
}

// SetMask restricts the destination squares of all moves produced from now on.
func (g *MoveGenerator) SetMask(mask Bitboard) {
	g.mask = mask
}

// RemoveMask excludes the given destination squares from the moves produced
// from now on.
func (g *MoveGenerator) RemoveMask(mask Bitboard) {
	g.mask &^= mask
}

// ClearMask lifts any destination restriction.
func (g *MoveGenerator) ClearMask() {
	g.mask = Universe
}

// Mask returns the current destination mask.
func (g *MoveGenerator) Mask() Bitboard {
	return g.mask
}

// SetCapturesOnly limits the generator to captures, en passant included.
func (g *MoveGenerator) SetCapturesOnly(on bool) {
	g.capturesOnly = on
}

// Remove excludes m from the rest of the enumeration.
func (g *MoveGenerator) Remove(m Move) {
	g.excluded = append(g.excluded, m)
}

// State returns the generator's life-cycle state.
func (g *MoveGenerator) State() GeneratorState {
	return g.state
}

// Reset rewinds the generator to Idle. The mask and capture mode are kept,
// removed moves are forgotten.
func (g *MoveGenerator) Reset() {
	g.state = Idle
	g.excluded = nil
	g.pieces, g.targets = 0, 0
	g.promo = -1
}

// Next returns the next move, or false once the generator is exhausted.
func (g *MoveGenerator) Next() (Move, bool) {
	switch g.state {
	case Exhausted:
		return NoMove, false
	case Idle:
		g.pieces = g.pos.occupied[g.pos.sideToMove]
		g.targets = 0
		g.promo = -1
		g.state = Enumerating
	}

	for {
		if g.promo >= 0 {
			m := NewPromotion(g.from, g.to, PromotionTypes[g.promo])
			g.promo++
			if g.promo == len(PromotionTypes) {
				g.promo = -1
			}
			if !g.isExcluded(m) {
				return m, true
			}
			continue
		}

		allowed := g.targets & g.filter()
		if allowed == 0 {
			if g.pieces == 0 {
				g.state = Exhausted
				g.targets = 0
				return NoMove, false
			}
			g.from = g.pieces.PopLSB()
			g.targets = g.pos.pseudoTargets(g.from)
			continue
		}

		to := allowed.LSB()
		// Drop every destination up to and including to, so that widening
		// the mask later can never move the cursor backwards.
		g.targets &^= SquareBB(to)<<1 - 1

		if g.quick {
			if !g.pos.quickLegal(g.from, to) {
				continue
			}
		} else if !g.pos.leavesKingSafe(g.from, to) {
			continue
		}

		if g.pos.isPromotionSquare(g.from, to) {
			g.to = to
			g.promo = 0
			continue
		}

		m := NewMove(g.from, to)
		if !g.isExcluded(m) {
			return m, true
		}
	}
}

// All returns an iterator over the remaining moves. It continues from the
// current cursor; call Reset first to start over.
func (g *MoveGenerator) All() iter.Seq[Move] {
	return func(yield func(Move) bool) {
		for {
			m, ok := g.Next()
			if !ok || !yield(m) {
				return
			}
		}
	}
}

// Len returns the number of moves still to come without consuming them.
func (g *MoveGenerator) Len() int {
	c := *g
	n := 0
	for {
		if _, ok := c.Next(); !ok {
			return n
		}
		n++
	}
}

// filter returns the destinations currently allowed for the piece on g.from.
func (g *MoveGenerator) filter() Bitboard {
	allowed := g.mask
	if g.capturesOnly {
		p := g.pos
		victims := p.occupied[p.sideToMove.Other()]
		if p.epSquare != NoSquare && p.pieces[p.sideToMove][Pawn].IsSet(g.from) {
			victims |= SquareBB(p.epSquare)
		}
		allowed &= victims
	}
	return allowed
}

func (g *MoveGenerator) isExcluded(m Move) bool {
	for _, x := range g.excluded {
		if x == m {
			return true
		}
	}
	return false
}

// LegalMoves returns all legal moves in canonical order.
func (p *Position) LegalMoves() []Move {
	return p.collect(p.NewMoveGenerator())
}

// LegalCaptures returns all legal captures, en passant included, in canonical order.
func (p *Position) LegalCaptures() []Move {
	g := p.NewMoveGenerator()
	g.SetCapturesOnly(true)
	return p.collect(g)
}

// LegalMovesFrom returns the legal moves of the piece on sq.
func (p *Position) LegalMovesFrom(sq Square) []Move {
	var moves []Move
	for _, m := range p.LegalMoves() {
		if m.From() == sq {
			moves = append(moves, m)
		}
	}
	return moves
}

// PseudoLegalMoves returns the moves of the quick generator in canonical order.
func (p *Position) PseudoLegalMoves() []Move {
	return p.collect(p.NewPseudoLegalGenerator())
}

func (p *Position) collect(g *MoveGenerator) []Move {
	moves := make([]Move, 0, 48)
	for m := range g.All() {
		moves = append(moves, m)
	}
	return moves
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	_, ok := p.NewMoveGenerator().Next()
	return ok
}

// pieceTypeOf returns the type of c's piece on sq, or NoPieceType.
func (p *Position) pieceTypeOf(c Color, sq Square) PieceType {
	bb := SquareBB(sq)
	if p.occupied[c]&bb == 0 {
		return NoPieceType
	}
	for pt := Pawn; pt <= King; pt++ {
		if p.pieces[c][pt]&bb != 0 {
			return pt
		}
	}
	return NoPieceType
}

// pseudoTargets returns the pseudo-legal destinations of the side to move's
// piece on from: every square it attacks or may move to, minus its own
// pieces. Castling destinations are only included when the king is not in
// check and does not pass through an attacked square.
func (p *Position) pseudoTargets(from Square) Bitboard {
	us := p.sideToMove
	own := p.occupied[us]

	switch p.pieceTypeOf(us, from) {
	case Pawn:
		return p.pawnTargets(from, us)
	case Knight:
		return knightAttacks[from] &^ own
	case Bishop:
		return BishopAttacks(from, p.all) &^ own
	case Rook:
		return RookAttacks(from, p.all) &^ own
	case Queen:
		return QueenAttacks(from, p.all) &^ own
	case King:
		return kingAttacks[from]&^own | p.castlingTargets(from, us)
	default:
		return Empty
	}
}

func (p *Position) pawnTargets(from Square, us Color) Bitboard {
	them := us.Other()

	targets := pawnPushes[us][from] &^ p.all
	if targets != 0 && from.RelativeRank(us) == 1 {
		targets |= pawnPushes[us][targets.LSB()] &^ p.all
	}

	attacks := pawnAttacks[us][from]
	targets |= attacks & p.occupied[them]

	// En passant needs an empty target square with the enemy pawn right behind it.
	if ep := p.epSquare; ep != NoSquare && attacks.IsSet(ep) && !p.all.IsSet(ep) &&
		p.pieces[them][Pawn].IsSet(ep.Forward(them)) {
		targets |= SquareBB(ep)
	}

	return targets
}

// castlingTargets returns the king destinations of the castling moves
// available to us.
func (p *Position) castlingTargets(from Square, us Color) Bitboard {
	rights := p.castling[us]
	if rights == NoRights || p.checkers != 0 {
		return Empty
	}

	home := E1
	if us == Black {
		home = E8
	}
	if from != home {
		return Empty
	}

	them := us.Other()
	var targets Bitboard

	if rights.Kingside() && p.pieces[us][Rook].IsSet(rookHome(us, KingSide)) {
		f, g := home+1, home+2
		if p.all&(SquareBB(f)|SquareBB(g)) == 0 &&
			!p.IsSquareAttacked(f, them) && !p.IsSquareAttacked(g, them) {
			targets |= SquareBB(g)
		}
	}

	if rights.Queenside() && p.pieces[us][Rook].IsSet(rookHome(us, QueenSide)) {
		d, c, b := home-1, home-2, home-3
		if p.all&(SquareBB(d)|SquareBB(c)|SquareBB(b)) == 0 &&
			!p.IsSquareAttacked(d, them) && !p.IsSquareAttacked(c, them) {
			targets |= SquareBB(c)
		}
	}

	return targets
}

// isPromotionSquare returns true if the side to move's piece on from is a
// pawn and to is on the last rank.
func (p *Position) isPromotionSquare(from, to Square) bool {
	us := p.sideToMove
	return p.pieces[us][Pawn].IsSet(from) && to.RelativeRank(us) == 7
}
