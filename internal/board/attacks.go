package board

// Step-piece tables, indexed by square (and color for pawns).
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard
	pawnPushes    [2][64]Bitboard // single step only

	betweenBB [64][64]Bitboard // strictly between two aligned squares
	lineBB    [64][64]Bitboard // whole board line through two aligned squares
)

var knightDeltas = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}

func init() {
	initRays()
	initStepTables()
	initLines()
}

// stepTargets returns the squares reached from sq by each {file, rank}
// delta that stays on the board.
func stepTargets(sq Square, deltas [][2]int) Bitboard {
	var bb Bitboard
	for _, d := range deltas {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		if f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			bb |= SquareBB(NewSquare(f, r))
		}
	}
	return bb
}

func initStepTables() {
	for sq := A1; sq <= H8; sq++ {
		knightAttacks[sq] = stepTargets(sq, knightDeltas[:])
		kingAttacks[sq] = stepTargets(sq, rayDelta[:])
		pawnAttacks[White][sq] = stepTargets(sq, [][2]int{{-1, 1}, {1, 1}})
		pawnAttacks[Black][sq] = stepTargets(sq, [][2]int{{-1, -1}, {1, -1}})
		pawnPushes[White][sq] = stepTargets(sq, [][2]int{{0, 1}})
		pawnPushes[Black][sq] = stepTargets(sq, [][2]int{{0, -1}})
	}
}

// initLines fills betweenBB and lineBB from the ray tables. Opposite
// directions are four apart in the direction order.
func initLines() {
	for from := A1; from <= H8; from++ {
		for dir := range rays {
			ray := rays[dir][from]
			line := ray | rays[(dir+4)%8][from] | SquareBB(from)
			for to := range ray.Squares() {
				betweenBB[from][to] = ray &^ rays[dir][to] &^ SquareBB(to)
				lineBB[from][to] = line
			}
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// KnightAttacks returns the squares a knight on sq attacks.
func KnightAttacks(sq Square) Bitboard { return knightAttacks[sq] }

// KingAttacks returns the squares a king on sq attacks, castling aside.
func KingAttacks(sq Square) Bitboard { return kingAttacks[sq] }

// PawnAttacks returns the diagonal capture squares of a c pawn on sq.
func PawnAttacks(sq Square, c Color) Bitboard { return pawnAttacks[c][sq] }

// PawnPushes returns the single-step push square of a c pawn on sq,
// ignoring occupancy.
func PawnPushes(sq Square, c Color) Bitboard { return pawnPushes[c][sq] }

// BishopAttacks returns the diagonal squares a bishop on sq reaches, each
// ray ending on its first occupied square.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return bishopAttacks(sq, occupied)
}

// RookAttacks is BishopAttacks for ranks and files.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return rookAttacks(sq, occupied)
}

func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return bishopAttacks(sq, occupied) | rookAttacks(sq, occupied)
}

// Between returns the squares strictly between a and b, or Empty when they
// share no rank, file or diagonal.
func Between(a, b Square) Bitboard {
	return betweenBB[a][b]
}

// Line returns the edge-to-edge line through a and b, or Empty when they
// are not aligned.
func Line(a, b Square) Bitboard {
	return lineBB[a][b]
}

// Aligned reports whether c lies on the line through a and b.
func Aligned(a, b, c Square) bool {
	return lineBB[a][b].IsSet(c)
}

// AttackersTo returns the pieces of either color attacking sq, with sliders
// blocked by occupied.
func (p *Position) AttackersTo(sq Square, occupied Bitboard) Bitboard {
	return p.AttackersByColor(sq, White, occupied) | p.AttackersByColor(sq, Black, occupied)
}

// AttackersByColor is AttackersTo restricted to pieces of color c.
func (p *Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	return attackersOf(&p.pieces, sq, c, occupied)
}

// IsSquareAttacked reports whether any piece of color by attacks sq.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	return !p.AttackersByColor(sq, by, p.all).Empty()
}

// attackersOf looks outward from sq with each piece's own pattern: a c pawn
// attacks sq exactly when a pawn of the other color on sq would attack it.
func attackersOf(pieces *[2][6]Bitboard, sq Square, c Color, occupied Bitboard) Bitboard {
	set := &pieces[c]
	diag := set[Bishop] | set[Queen]
	straight := set[Rook] | set[Queen]
	return pawnAttacks[c.Other()][sq]&set[Pawn] |
		knightAttacks[sq]&set[Knight] |
		kingAttacks[sq]&set[King] |
		bishopAttacks(sq, occupied)&diag |
		rookAttacks(sq, occupied)&straight
}

// computePinned returns the pieces of color us that are the only blocker
// between their king and an enemy slider on the same line.
func (p *Position) computePinned(us Color) Bitboard {
	them := us.Other()
	ksq := p.kingSq[us]
	var pinned Bitboard

	// Sliders that would see the king on an empty board.
	snipers := rookAttacks(ksq, Empty)&(p.pieces[them][Rook]|p.pieces[them][Queen]) |
		bishopAttacks(ksq, Empty)&(p.pieces[them][Bishop]|p.pieces[them][Queen])
	for sq := range snipers.Squares() {
		blockers := betweenBB[sq][ksq] & p.all
		if !blockers.Empty() && !blockers.More() && blockers&p.occupied[us] != 0 {
			pinned |= blockers
		}
	}

	return pinned
}

// updateAttackState refreshes the cached checkers and pinned bitboards for
// the side to move.
func (p *Position) updateAttackState() {
	us := p.sideToMove
	if p.pieces[us][King] == 0 {
		p.checkers, p.pinned = 0, 0
		return
	}
	p.checkers = p.AttackersByColor(p.kingSq[us], us.Other(), p.all)
	p.pinned = p.computePinned(us)
}
