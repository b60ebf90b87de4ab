// Command chessrules inspects positions, lists legal moves, plays and
// archives games, runs perft and renders board diagrams.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/hailam/chessrules/internal/board"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "chessrules:", err)
		}
		os.Exit(2)
	}
}

// app carries what every command needs.
type app struct {
	cfg    Config
	log    logr.Logger
	stdout io.Writer
	stderr io.Writer
}

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"fen":    runFEN,
	"moves":  runMoves,
	"play":   runPlay,
	"perft":  runPerft,
	"render": runRender,
	"games":  runGames,
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, rest, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errors.New("no command given, run with -h for usage")
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("unknown command %q", rest[0])
	}

	stdr.SetVerbosity(cfg.Verbosity)
	logger := stdr.New(log.New(stderr, "", log.LstdFlags))
	board.SetLogger(logger.WithName("board"))
	if cfg.Verbosity > 1 {
		board.DebugMoveValidation = true
	}

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		logger.Info("CPU profiling enabled", "path", cfg.CPUProfile)
	}

	a := &app{cfg: cfg, log: logger, stdout: stdout, stderr: stderr}
	return cmd(ctx, a, rest[1:])
}

// newFlagSet returns a flag set for a command that reports errors instead of exiting.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// parsePosition reads "startpos", "fen <FEN>" or a bare FEN, each
// optionally followed by "moves" and UCI moves, and plays the moves.
func parsePosition(args []string) (*board.Position, error) {
	moveStart := len(args)
	for i, arg := range args {
		if arg == "moves" {
			moveStart = i
			break
		}
	}

	pos := board.NewPosition()
	posArgs := args[:moveStart]
	if len(posArgs) > 0 && posArgs[0] == "fen" {
		posArgs = posArgs[1:]
	}
	if len(posArgs) > 0 && !(len(posArgs) == 1 && posArgs[0] == "startpos") {
		var err error
		if pos, err = board.ParseFEN(strings.Join(posArgs, " ")); err != nil {
			return nil, err
		}
	}

	var moves []string
	if moveStart < len(args) {
		moves = args[moveStart+1:]
	}
	for i, s := range moves {
		m, err := pos.ParseUCIMove(s)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if err := pos.MakeMove(m); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return pos, nil
}

// describeStatus summarizes the game state of pos in one line.
func describeStatus(pos *board.Position) string {
	status := pos.Status()
	var b strings.Builder
	b.WriteString(status.String())

	switch {
	case status == board.Checkmate:
		fmt.Fprintf(&b, ", %s wins", pos.SideToMove().Other())
	case status != board.Ongoing:
		b.WriteString(", draw")
	default:
		fmt.Fprintf(&b, ", %s to move", pos.SideToMove())
		if pos.InCheck() {
			b.WriteString(", in check")
		}
		if pos.IsThreefoldRepetition() {
			b.WriteString(", threefold repetition claimable")
		}
		if pos.IsFiftyMoves() {
			b.WriteString(", fifty-move rule claimable")
		}
	}
	return b.String()
}
