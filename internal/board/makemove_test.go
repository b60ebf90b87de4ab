package board

import (
	"errors"
	"testing"
)

func playMoves(t *testing.T, pos *Position, moves ...string) *Position {
	t.Helper()
	for _, s := range moves {
		m, err := pos.ParseUCIMove(s)
		if err != nil {
			t.Fatalf("ParseUCIMove(%q) in %s: %v", s, pos.FEN(), err)
		}
		if err := pos.MakeMove(m); err != nil {
			t.Fatalf("MakeMove(%v): %v", m, err)
		}
	}
	return pos
}

func TestMakeMoveUpdatesState(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  string
	}{
		{"double push sets en passant", StartFEN, []string{"e2e4"},
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"},
		{"black move bumps fullmove", StartFEN, []string{"e2e4", "c7c5", "g1f3"},
			"rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"},
		{"en passant capture", "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", []string{"e5f6"},
			"rnbqkbnr/ppp1p1pp/5P2/3p4/8/8/PPPP1PPP/RNBQKBNR b KQkq - 0 3"},
		{"kingside castling", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 5 10", []string{"e1g1"},
			"r3k2r/8/8/8/8/8/8/R4RK1 b kq - 6 10"},
		{"queenside castling", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 5 10", []string{"e8c8"},
			"2kr3r/8/8/8/8/8/8/R3K2R w KQ - 6 11"},
		{"rook move revokes one side", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"h1h5"},
			"r3k2r/8/8/7R/8/8/8/R3K3 b Qkq - 1 1"},
		{"rook capture revokes both colours", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"a1a8"},
			"R3k2r/8/8/8/8/8/8/4K2R b Kk - 0 1"},
		{"king move revokes both sides", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1e2"},
			"r3k2r/8/8/8/8/8/4K3/R6R b kq - 1 1"},
		{"promotion", "1n5k/P7/8/8/8/8/8/K7 w - - 3 40", []string{"a7b8q"},
			"1Q5k/8/8/8/8/8/8/K7 b - - 0 40"},
		{"underpromotion", "1n5k/P7/8/8/8/8/8/K7 w - - 3 40", []string{"a7a8n"},
			"Nn5k/8/8/8/8/8/8/K7 b - - 0 40"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err != nil {
				t.Fatalf("Failed to parse FEN: %v", err)
			}
			playMoves(t, pos, tc.moves...)
			if got := pos.FEN(); got != tc.want {
				t.Errorf("FEN() = %q, want %q", got, tc.want)
			}
			if pos.Hash() != pos.computeHash() {
				t.Error("incremental hash differs from recomputed hash")
			}
			if want, err := ParseFEN(tc.want); err != nil {
				t.Fatalf("Failed to parse expected FEN: %v", err)
			} else if want.Hash() != pos.Hash() {
				t.Error("hash differs from the hash of the parsed result FEN")
			}
			if got := len(pos.History()); got != len(tc.moves)+1 {
				t.Errorf("history length = %d, want %d", got, len(tc.moves)+1)
			}
		})
	}
}

func TestHashTransposition(t *testing.T) {
	a := playMoves(t, NewPosition(), "g1f3", "g8f6", "b1c3", "b8c6")
	b := playMoves(t, NewPosition(), "b1c3", "b8c6", "g1f3", "g8f6")
	if !a.Equal(b) {
		t.Errorf("transposed positions have different hashes: %x vs %x", a.Hash(), b.Hash())
	}

	// Same placement, different en passant target.
	c := playMoves(t, NewPosition(), "e2e4")
	d, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if c.Hash() == d.Hash() {
		t.Error("positions differing only in en passant share a hash")
	}

	// Same placement, different castling rights.
	e := playMoves(t, NewPosition(), "g1f3", "g8f6", "h1g1", "h8g8", "g1h1", "g8h8")
	f := NewPosition()
	playMoves(t, f, "g1f3", "g8f6", "f3g1", "f6g8")
	if e.Hash() == f.Hash() {
		t.Error("positions with different castling rights share a hash")
	}
	if f.Hash() != NewPosition().Hash() {
		t.Error("returning to the start position changed the hash")
	}
}

func TestMakeMoveNewLeavesOriginal(t *testing.T) {
	pos := NewPosition()
	before := pos.FEN()
	hash := pos.Hash()

	for _, m := range pos.LegalMoves() {
		next, err := pos.MakeMoveNew(m)
		if err != nil {
			t.Fatalf("MakeMoveNew(%v): %v", m, err)
		}
		if pos.Hash() != hash || pos.FEN() != before || len(pos.History()) != 1 {
			t.Fatalf("MakeMoveNew(%v) modified the original position", m)
		}

		inPlace := pos.Copy()
		inPlace.MakeMoveUnchecked(m)
		if inPlace.Hash() != next.Hash() || inPlace.FEN() != next.FEN() {
			t.Errorf("in-place and copy application of %v disagree", m)
		}
		if unchecked := pos.MakeMoveNewUnchecked(m); unchecked.FEN() != next.FEN() {
			t.Errorf("MakeMoveNewUnchecked(%v) disagrees with MakeMoveNew", m)
		}
	}
}

func TestMakeMoveIllegal(t *testing.T) {
	pos := NewPosition()
	before := pos.FEN()

	for _, m := range []Move{NewMove(E2, E5), NewMove(E7, E5), NewMove(E1, E2), NewMove(D4, D5)} {
		err := pos.MakeMove(m)
		if !errors.Is(err, ErrIllegalMove) {
			t.Errorf("MakeMove(%v) = %v, want ErrIllegalMove", m, err)
		}
		var me *MoveError
		if !errors.As(err, &me) || me.Move != m {
			t.Errorf("MakeMove(%v) error %v is not a *MoveError for the move", m, err)
		}
		if _, err := pos.MakeMoveNew(m); !errors.Is(err, ErrIllegalMove) {
			t.Errorf("MakeMoveNew(%v) = %v, want ErrIllegalMove", m, err)
		}
	}
	if pos.FEN() != before {
		t.Error("failed moves modified the position")
	}

	if _, err := pos.ParseUCIMove("e2e5"); !errors.Is(err, ErrIllegalMove) {
		t.Errorf("ParseUCIMove(e2e5) = %v, want ErrIllegalMove", err)
	}
	if _, err := pos.ParseUCIMove("e2"); !errors.Is(err, ErrMalformedUCI) {
		t.Errorf("ParseUCIMove(e2) = %v, want ErrMalformedUCI", err)
	}
}

func TestMoveAfterFivefold(t *testing.T) {
	pos := NewPosition()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for range 4 {
		playMoves(t, pos, shuffle...)
	}
	if !pos.IsFivefoldRepetition() {
		t.Fatal("expected fivefold repetition")
	}
	if err := pos.MakeMove(NewMove(E2, E4)); !errors.Is(err, ErrGameOver) {
		t.Errorf("MakeMove after fivefold = %v, want ErrGameOver", err)
	}
}

func TestNullMove(t *testing.T) {
	pos := playMoves(t, NewPosition(), "e2e4")
	next, ok := pos.MakeNullMoveNew()
	if !ok {
		t.Fatal("null move refused outside check")
	}
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 1"
	if next.FEN() != want {
		t.Errorf("FEN() = %q, want %q", next.FEN(), want)
	}
	if next.Hash() != next.computeHash() {
		t.Error("null move hash differs from recomputed hash")
	}
	if len(next.History()) != len(pos.History()) {
		t.Error("null move changed the history")
	}

	checked, err := ParseFEN("4k3/8/8/8/8/8/8/r3K3 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	if _, ok := checked.MakeNullMoveNew(); ok {
		t.Error("null move allowed while in check")
	}
}

func TestMovePredicates(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/3pP3/8/8/8/R3K2R w KQkq d6 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		move                                  string
		capture, enPassant, zeroing, castling bool
	}{
		{"e5d6", true, true, true, false},
		{"e5e6", false, false, true, false},
		{"a1a8", true, false, true, false},
		{"a1a2", false, false, false, false},
		{"e1g1", false, false, false, true},
		{"e1c1", false, false, false, true},
		{"e1f1", false, false, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.move, func(t *testing.T) {
			m, err := pos.ParseUCIMove(tc.move)
			if err != nil {
				t.Fatalf("ParseUCIMove: %v", err)
			}
			if got := pos.IsCapture(m); got != tc.capture {
				t.Errorf("IsCapture = %v", got)
			}
			if got := pos.IsEnPassant(m); got != tc.enPassant {
				t.Errorf("IsEnPassant = %v", got)
			}
			if got := pos.IsZeroing(m); got != tc.zeroing {
				t.Errorf("IsZeroing = %v", got)
			}
			if got := pos.IsCastling(m); got != tc.castling {
				t.Errorf("IsCastling = %v", got)
			}
		})
	}

	if !pos.IsKingsideCastling(NewMove(E1, G1)) || pos.IsQueensideCastling(NewMove(E1, G1)) {
		t.Error("e1g1 misclassified")
	}
	if !pos.IsQueensideCastling(NewMove(E1, C1)) || pos.IsKingsideCastling(NewMove(E1, C1)) {
		t.Error("e1c1 misclassified")
	}
}

func TestRepetitionNoneKeepsNoHistory(t *testing.T) {
	pos := NewPositionWithMode(RepetitionNone)
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for range 5 {
		playMoves(t, pos, shuffle...)
	}
	if len(pos.History()) != 0 {
		t.Errorf("history length = %d, want 0", len(pos.History()))
	}
	if pos.IsThreefoldRepetition() || pos.IsFivefoldRepetition() {
		t.Error("repetition detected without history")
	}
	if pos.Status() != Ongoing {
		t.Errorf("Status() = %v, want ongoing", pos.Status())
	}

	partial := NewPositionWithMode(RepetitionPartial)
	for range 2 {
		playMoves(t, partial, shuffle...)
	}
	if !partial.IsThreefoldRepetition() {
		t.Error("partial mode should detect threefold repetition like full mode")
	}
}

func TestDebugMoveValidationStillApplies(t *testing.T) {
	DebugMoveValidation = true
	defer func() { DebugMoveValidation = false }()

	pos := NewPosition()
	pos.MakeMoveUnchecked(NewMove(E2, E4))
	if pos.PieceAt(E4) != WhitePawn {
		t.Error("unchecked move not applied under debug validation")
	}
}

func TestCanCastle(t *testing.T) {
	tests := []struct {
		name        string
		fen         string
		king, queen bool
	}{
		{"both open", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", true, true},
		{"right lost", "r3k2r/8/8/8/8/8/8/R3K2R w Qkq - 0 1", false, true},
		{"f1 attacked", "r3kr2/8/8/8/8/8/8/R3K2R w KQq - 0 1", false, true},
		{"b1 occupied", "r3k2r/8/8/8/8/8/8/RN2K2R w KQkq - 0 1", true, false},
		{"in check", "r3k2r/8/8/8/8/8/4r3/R3K2R w KQk - 0 1", false, false},
		{"black to move", "r3k2r/8/8/8/8/8/8/R3K2R b Kk - 0 1", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := ParseFEN(tt.fen)
			if err != nil {
				t.Fatal(err)
			}
			if got := pos.CanCastleKingside(); got != tt.king {
				t.Errorf("CanCastleKingside() = %v, want %v", got, tt.king)
			}
			if got := pos.CanCastleQueenside(); got != tt.queen {
				t.Errorf("CanCastleQueenside() = %v, want %v", got, tt.queen)
			}
			if got := pos.CanCastle(); got != (tt.king || tt.queen) {
				t.Errorf("CanCastle() = %v", got)
			}
		})
	}
}
