package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hailam/chessrules/internal/board"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"empty", nil, board.StartFEN},
		{"startpos", []string{"startpos"}, board.StartFEN},
		{"startpos moves", []string{"startpos", "moves", "e2e4", "e7e5"},
			"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"},
		{"fen keyword", strings.Fields("fen 4k3/8/8/8/8/8/8/4K2R w K - 0 1 moves e1g1"),
			"4k3/8/8/8/8/8/8/5RK1 b - - 1 1"},
		{"bare fen", strings.Fields("4k3/8/8/8/8/8/8/4K2R w K - 0 1"),
			"4k3/8/8/8/8/8/8/4K2R w K - 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := parsePosition(tc.args)
			if err != nil {
				t.Fatalf("parsePosition: %v", err)
			}
			if got := pos.FEN(); got != tc.want {
				t.Errorf("FEN() = %q, want %q", got, tc.want)
			}
		})
	}

	if _, err := parsePosition([]string{"startpos", "moves", "e2e5"}); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("illegal move: %v, want ErrIllegalMove", err)
	}
	if _, err := parsePosition(strings.Fields("fen 8/8 w - - 0 1")); !errors.Is(err, board.ErrMalformedFEN) {
		t.Errorf("bad FEN: %v, want ErrMalformedFEN", err)
	}
}

func TestFENCommand(t *testing.T) {
	out, err := runCmd(t, "fen", "startpos", "moves", "f2f3", "e7e5", "g2g4", "d8h4")
	if err != nil {
		t.Fatalf("fen: %v", err)
	}
	if !strings.Contains(out, "checkmate, Black wins") {
		t.Errorf("output does not report the mate:\n%s", out)
	}
}

func TestMovesCommand(t *testing.T) {
	out, err := runCmd(t, "moves")
	if err != nil {
		t.Fatalf("moves: %v", err)
	}
	if !strings.Contains(out, "20 moves") || !strings.HasPrefix(out, "b1a3 b1c3 ") {
		t.Errorf("unexpected start position moves:\n%s", out)
	}

	out, err = runCmd(t, "moves", "-captures", "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2")
	if err != nil {
		t.Fatalf("moves -captures: %v", err)
	}
	if !strings.HasPrefix(out, "e4d5\n") {
		t.Errorf("captures output:\n%s", out)
	}

	out, err = runCmd(t, "moves", "-from", "g1")
	if err != nil {
		t.Fatalf("moves -from: %v", err)
	}
	if !strings.HasPrefix(out, "g1f3 g1h3\n") {
		t.Errorf("moves from g1:\n%s", out)
	}
}

func TestPerftCommand(t *testing.T) {
	out, err := runCmd(t, "perft", "-depth", "3", "-divide", "-workers", "2")
	if err != nil {
		t.Fatalf("perft: %v", err)
	}
	if !strings.Contains(out, "Nodes: 8902") || !strings.Contains(out, "e2e4: 600") {
		t.Errorf("perft output:\n%s", out)
	}
}

func TestPlayAndGames(t *testing.T) {
	dir := t.TempDir()
	pngPath := filepath.Join(dir, "final.png")

	out, err := runCmd(t, "-db", filepath.Join(dir, "db"), "play", "-save", "-png", pngPath, "f2f3", "e7e5", "g2g4", "d8h4")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if !strings.Contains(out, "saved game ") {
		t.Fatalf("play output:\n%s", out)
	}
	id := strings.TrimSpace(out[strings.LastIndex(out, "saved game ")+len("saved game "):])

	f, err := os.Open(pngPath)
	if err != nil {
		t.Fatalf("diagram not written: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("diagram is not a PNG: %v", err)
	}

	out, err = runCmd(t, "-db", filepath.Join(dir, "db"), "games")
	if err != nil {
		t.Fatalf("games: %v", err)
	}
	if !strings.Contains(out, id) || !strings.Contains(out, "1 games") {
		t.Errorf("games output:\n%s", out)
	}

	out, err = runCmd(t, "-db", filepath.Join(dir, "db"), "games", "-show", id)
	if err != nil {
		t.Fatalf("games -show: %v", err)
	}
	if !strings.Contains(out, "f2f3 e7e5 g2g4 d8h4") {
		t.Errorf("games -show output:\n%s", out)
	}

	if _, err := runCmd(t, "-db", filepath.Join(dir, "db"), "games", "-delete", id); err != nil {
		t.Fatalf("games -delete: %v", err)
	}
	if _, err := runCmd(t, "-db", filepath.Join(dir, "db"), "games", "-show", id); err == nil {
		t.Error("deleted game still found")
	}
}

func TestRenderCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "board.png")
	if _, err := runCmd(t, "render", "-o", out, "-size", "16", "-flip", "-highlight", "e2,e4"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("render wrote nothing: %v", err)
	}
	if _, err := runCmd(t, "render", "-o", out, "-highlight", "z9"); err == nil {
		t.Error("bad highlight square accepted")
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CHESSRULES_DB", "/tmp/somewhere")
	t.Setenv("CHESSRULES_WORKERS", "3")
	t.Setenv("CPUPROFILE", "")

	var stderr bytes.Buffer
	cfg, rest, err := parseConfig([]string{"-workers", "5", "perft"}, &stderr)
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.DBDir != "/tmp/somewhere" || cfg.Workers != 5 || cfg.CPUProfile != "" {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(rest) != 1 || rest[0] != "perft" {
		t.Errorf("rest = %v", rest)
	}

	t.Setenv("CHESSRULES_WORKERS", "many")
	if _, _, err := parseConfig(nil, &stderr); err == nil {
		t.Error("non-numeric CHESSRULES_WORKERS accepted")
	}
}

func TestUnknownCommand(t *testing.T) {
	if _, err := runCmd(t, "bogus"); err == nil {
		t.Error("unknown command accepted")
	}
	if _, err := runCmd(t); err == nil {
		t.Error("missing command accepted")
	}
}
