package board

import (
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string into a Position that keeps full repetition
// history. On failure no Position is returned and the error wraps
// ErrMalformedFEN.
func ParseFEN(fen string) (*Position, error) {
	return ParseFENWithMode(fen, RepetitionFull)
}

// ParseFENWithMode parses a FEN string into a Position with the given
// repetition mode.
//
// Only canonical FEN is accepted, so that FEN(ParseFEN(s)) == s for every
// accepted s up to whitespace: all six fields, castling letters in KQkq
// order, no adjacent digits in a rank and no leading zeros in the counters.
func ParseFENWithMode(fen string, mode RepetitionMode) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return nil, &FENError{Reason: "need 6 fields, got " + strconv.Itoa(len(parts))}
	}

	pos := &Position{
		epSquare: NoSquare,
		kingSq:   [2]Square{NoSquare, NoSquare},
		mode:     mode,
	}

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		pos.sideToMove = White
	case "b":
		pos.sideToMove = Black
	default:
		return nil, fenError("side to move", parts[1], "want w or b")
	}

	if err := parseCastlingRights(pos, parts[2]); err != nil {
		return nil, err
	}

	if err := parseEnPassant(pos, parts[3]); err != nil {
		return nil, err
	}

	hmc, err := parseCounter("halfmove clock", parts[4])
	if err != nil {
		return nil, err
	}
	pos.halfMove = hmc

	fmn, err := parseCounter("fullmove number", parts[5])
	if err != nil {
		return nil, err
	}
	if fmn == 0 {
		return nil, fenError("fullmove number", parts[5], "must be positive")
	}
	pos.fullMove = fmn

	if err := pos.validate(); err != nil {
		return nil, err
	}

	pos.updateAttackState()
	pos.hash = pos.computeHash()
	if mode != RepetitionNone {
		pos.history = []uint64{pos.hash}
	}

	return pos, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(pos *Position, placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fenError("placement", placement, "need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0
		prevDigit := false

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return fenError("placement", placement, "too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				if prevDigit {
					return fenError("placement", placement, "adjacent digits in rank %d", rank+1)
				}
				file += int(c - '0')
				prevDigit = true
				continue
			}
			prevDigit = false

			piece := PieceFromChar(c)
			if piece == NoPiece {
				return fenError("placement", placement, "invalid piece character %q", c)
			}
			pos.setPiece(piece, NewSquare(file, rank))
			file++
		}

		if file != 8 {
			return fenError("placement", placement, "rank %d has %d squares", rank+1, file)
		}
	}

	return nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(pos *Position, castling string) error {
	if castling == "-" {
		return nil
	}

	const order = "KQkq"
	next := 0
	for i := 0; i < len(castling); i++ {
		idx := strings.IndexByte(order, castling[i])
		if idx < 0 {
			return fenError("castling", castling, "invalid character %q", castling[i])
		}
		if idx < next {
			return fenError("castling", castling, "letters out of KQkq order")
		}
		next = idx + 1

		c := White
		if idx >= 2 {
			c = Black
		}
		side := KingSide
		if idx%2 == 1 {
			side = QueenSide
		}
		pos.castling[c] |= side
	}

	return nil
}

// parseEnPassant parses the en passant field. The target must sit on the
// rank the opponent's pawn skipped: the 6th for White to move, the 3rd for
// Black.
func parseEnPassant(pos *Position, field string) error {
	if field == "-" {
		return nil
	}

	sq, err := ParseSquare(field)
	if err != nil || field != sq.String() {
		return fenError("en passant", field, "not a lowercase square")
	}

	want := 5
	if pos.sideToMove == Black {
		want = 2
	}
	if sq.Rank() != want {
		return fenError("en passant", field, "wrong rank for %s to move", pos.sideToMove)
	}

	pos.epSquare = sq
	return nil
}

// parseCounter parses a non-negative decimal integer without sign or
// leading zeros.
func parseCounter(field, s string) (int, error) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, fenError(field, s, "not a canonical non-negative integer")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fenError(field, s, "not a canonical non-negative integer")
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fenError(field, s, "%v", err)
	}
	return n, nil
}

// FEN returns the FEN representation of the position.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.sideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castlingField())

	sb.WriteByte(' ')
	sb.WriteString(p.epSquare.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMove))

	return sb.String()
}

func (p *Position) castlingField() string {
	s := p.castling[White].String(White) + p.castling[Black].String(Black)
	if s == "" {
		return "-"
	}
	return s
}
