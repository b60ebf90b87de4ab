package board

// Ray directions. The first four step toward higher square indices, so the
// nearest blocker on those rays is the lowest set bit; on the others it is
// the highest.
const (
	dirNorth = iota
	dirNorthEast
	dirEast
	dirNorthWest
	dirSouth
	dirSouthWest
	dirWest
	dirSouthEast
)

var rayDelta = [8][2]int{ // {file, rank}
	dirNorth:     {0, 1},
	dirNorthEast: {1, 1},
	dirEast:      {1, 0},
	dirNorthWest: {-1, 1},
	dirSouth:     {0, -1},
	dirSouthWest: {-1, -1},
	dirWest:      {-1, 0},
	dirSouthEast: {1, -1},
}

// rays[dir][sq] holds every square from sq to the board edge in dir, sq excluded.
var rays [8][64]Bitboard

func initRays() {
	for dir := range rayDelta {
		df, dr := rayDelta[dir][0], rayDelta[dir][1]
		for sq := A1; sq <= H8; sq++ {
			var ray Bitboard
			f, r := sq.File()+df, sq.Rank()+dr
			for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
				ray |= SquareBB(NewSquare(f, r))
				f += df
				r += dr
			}
			rays[dir][sq] = ray
		}
	}
}

// rayAttacks casts a ray from sq in dir and stops at the first occupied
// square, which is included since it may be captured.
func rayAttacks(dir int, sq Square, occupied Bitboard) Bitboard {
	attacks := rays[dir][sq]
	blockers := attacks & occupied
	if blockers == 0 {
		return attacks
	}
	var first Square
	if dir < dirSouth {
		first = blockers.LSB()
	} else {
		first = blockers.MSB()
	}
	return attacks &^ rays[dir][first]
}

func bishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(dirNorthEast, sq, occupied) |
		rayAttacks(dirNorthWest, sq, occupied) |
		rayAttacks(dirSouthEast, sq, occupied) |
		rayAttacks(dirSouthWest, sq, occupied)
}

func rookAttacks(sq Square, occupied Bitboard) Bitboard {
	return rayAttacks(dirNorth, sq, occupied) |
		rayAttacks(dirSouth, sq, occupied) |
		rayAttacks(dirEast, sq, occupied) |
		rayAttacks(dirWest, sq, occupied)
}
