package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Config holds the global settings shared by all commands.
type Config struct {
	DBDir      string // badger directory, empty for the platform data directory
	Workers    int    // perft workers, 0 for GOMAXPROCS
	CPUProfile string // write a CPU profile here if set
	Verbosity  int    // log verbosity for -v
}

// parseConfig reads the global flags from args, falling back to the
// environment for anything not given on the command line. It returns the
// remaining arguments.
func parseConfig(args []string, stderr io.Writer) (Config, []string, error) {
	var cfg Config

	fs := flag.NewFlagSet("chessrules", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.DBDir, "db", "", "database directory (env CHESSRULES_DB)")
	fs.IntVar(&cfg.Workers, "workers", 0, "perft workers, 0 for one per CPU (env CHESSRULES_WORKERS)")
	fs.StringVar(&cfg.CPUProfile, "cpuprofile", "", "write cpu profile to file (env CPUPROFILE)")
	fs.IntVar(&cfg.Verbosity, "v", 0, "log verbosity")
	fs.Usage = func() { usage(fs) }

	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["db"] {
		cfg.DBDir = os.Getenv("CHESSRULES_DB")
	}
	if !set["cpuprofile"] {
		cfg.CPUProfile = os.Getenv("CPUPROFILE")
	}
	if v := os.Getenv("CHESSRULES_WORKERS"); v != "" && !set["workers"] {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, nil, fmt.Errorf("CHESSRULES_WORKERS: %w", err)
		}
		cfg.Workers = n
	}
	if cfg.Workers < 0 {
		return cfg, nil, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}

	return cfg, fs.Args(), nil
}

func usage(fs *flag.FlagSet) {
	w := fs.Output()
	fmt.Fprintf(w, `Usage: chessrules [flags] <command> [command flags] [position]

Commands:
  fen      parse a position and print it with its status
  moves    list the legal moves of a position
  play     apply UCI moves, report the result and archive the game
  perft    count move-generation leaf nodes
  render   draw a position as PNG
  games    list, show or delete archived games

A position is "startpos", "fen <FEN>" or a bare FEN, optionally
followed by "moves" and UCI moves. The default is the start position.

Flags:
`)
	fs.PrintDefaults()
}
