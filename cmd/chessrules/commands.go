package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hailam/chessrules/internal/board"
	"github.com/hailam/chessrules/internal/diagram"
	"github.com/hailam/chessrules/internal/perft"
	"github.com/hailam/chessrules/internal/storage"
)

func runFEN(_ context.Context, a *app, args []string) error {
	fs := a.newFlagSet("fen")
	unicode := fs.Bool("unicode", false, "draw the board with chess glyphs")
	dark := fs.Bool("dark", false, "swap glyph colours for dark terminals")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pos, err := parsePosition(fs.Args())
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, pos.FEN())
	if *unicode {
		fmt.Fprint(a.stdout, pos.DisplayUnicode(*dark))
	} else {
		fmt.Fprint(a.stdout, pos.Display())
	}
	fmt.Fprintf(a.stdout, "hash %016x\n", pos.Hash())
	fmt.Fprintln(a.stdout, describeStatus(pos))
	return nil
}

func runMoves(_ context.Context, a *app, args []string) error {
	fs := a.newFlagSet("moves")
	captures := fs.Bool("captures", false, "list captures only")
	from := fs.String("from", "", "list moves of the piece on this square only")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pos, err := parsePosition(fs.Args())
	if err != nil {
		return err
	}

	gen := pos.NewMoveGenerator()
	gen.SetCapturesOnly(*captures)

	var moves []string
	for m := range gen.All() {
		moves = append(moves, m.String())
	}
	if *from != "" {
		sq, err := board.ParseSquare(*from)
		if err != nil {
			return err
		}
		moves = slices.DeleteFunc(moves, func(s string) bool {
			return !strings.HasPrefix(s, sq.String())
		})
	}

	fmt.Fprintln(a.stdout, strings.Join(moves, " "))
	fmt.Fprintf(a.stdout, "%d moves\n", len(moves))
	return nil
}

func runPlay(_ context.Context, a *app, args []string) error {
	fs := a.newFlagSet("play")
	fen := fs.String("fen", board.StartFEN, "starting position")
	save := fs.Bool("save", false, "archive the game in the database")
	pngPath := fs.String("png", "", "write a diagram of the final position to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rec, err := storage.NewGameRecord(*fen, fs.Args())
	if err != nil {
		return err
	}
	pos, err := storage.Replay(rec)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.stdout, rec.FinalFEN)
	fmt.Fprint(a.stdout, pos.Display())
	fmt.Fprintln(a.stdout, describeStatus(pos))

	if *pngPath != "" {
		opts := diagram.DefaultOptions()
		if n := len(rec.Moves); n > 0 {
			last, _ := board.ParseMove(rec.Moves[n-1])
			opts.Highlight = board.SquareBB(last.From()) | board.SquareBB(last.To())
		}
		if err := writeDiagram(*pngPath, pos, opts); err != nil {
			return err
		}
	}

	if *save {
		s, err := storage.Open(a.cfg.DBDir, a.log.WithName("storage"))
		if err != nil {
			return err
		}
		defer s.Close()
		if err := s.SaveGame(rec); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "saved game %s\n", rec.ID)
	}
	return nil
}

func runPerft(ctx context.Context, a *app, args []string) error {
	fs := a.newFlagSet("perft")
	depth := fs.Int("depth", 5, "search depth in plies")
	divide := fs.Bool("divide", false, "print the count below each root move")
	workers := fs.Int("workers", a.cfg.Workers, "parallel root moves, 0 for one per CPU")
	cacheSize := fs.Int64("cache", 1<<20, "in-memory cache entries, 0 to disable")
	persist := fs.Bool("persist", false, "also cache subtree counts in the database")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pos, err := parsePosition(fs.Args())
	if err != nil {
		return err
	}

	r := &perft.Runner{Workers: *workers, Logger: a.log.WithName("perft")}

	var mem *perft.MemoryCache
	if *cacheSize > 0 {
		if mem, err = perft.NewMemoryCache(*cacheSize); err != nil {
			return err
		}
		defer mem.Close()
		r.Cache = mem
	}
	if *persist {
		s, err := storage.Open(a.cfg.DBDir, a.log.WithName("storage"))
		if err != nil {
			return err
		}
		defer s.Close()
		if mem != nil {
			r.Cache = &perft.Tiered{Fast: mem, Slow: s.PerftCache()}
		} else {
			r.Cache = s.PerftCache()
		}
	}

	res, err := r.Run(ctx, pos, *depth)
	if err != nil {
		return err
	}

	if *divide {
		for _, m := range perft.SortedMoves(res.Divide) {
			fmt.Fprintf(a.stdout, "%s: %d\n", m, res.Divide[m])
		}
		fmt.Fprintln(a.stdout)
	}
	fmt.Fprintf(a.stdout, "Nodes: %d\n", res.Nodes)
	fmt.Fprintf(a.stdout, "Time: %v\n", res.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(a.stdout, "NPS: %s\n", humanize.Comma(int64(res.NodesPerSecond())))
	if t, ok := r.Cache.(*perft.Tiered); ok {
		hits, misses := t.Stats()
		fmt.Fprintf(a.stdout, "Cache: %s hits, %s misses\n", humanize.Comma(int64(hits)), humanize.Comma(int64(misses)))
	}
	return nil
}

func runRender(_ context.Context, a *app, args []string) error {
	fs := a.newFlagSet("render")
	out := fs.String("o", "board.png", "output file")
	size := fs.Int("size", 64, "square size in pixels")
	flip := fs.Bool("flip", false, "draw from Black's side")
	noCoords := fs.Bool("no-coords", false, "omit file and rank labels")
	highlight := fs.String("highlight", "", "comma-separated squares to highlight")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pos, err := parsePosition(fs.Args())
	if err != nil {
		return err
	}

	opts := diagram.DefaultOptions()
	opts.SquareSize = *size
	opts.Flip = *flip
	opts.Coordinates = !*noCoords
	if *highlight != "" {
		for _, s := range strings.Split(*highlight, ",") {
			sq, err := board.ParseSquare(strings.TrimSpace(s))
			if err != nil {
				return err
			}
			opts.Highlight |= board.SquareBB(sq)
		}
	}
	return writeDiagram(*out, pos, opts)
}

func runGames(_ context.Context, a *app, args []string) error {
	fs := a.newFlagSet("games")
	show := fs.String("show", "", "print the game with this ID")
	del := fs.String("delete", "", "delete the game with this ID")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := storage.Open(a.cfg.DBDir, a.log.WithName("storage"))
	if err != nil {
		return err
	}
	defer s.Close()

	switch {
	case *del != "":
		if err := s.DeleteGame(*del); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "deleted game %s\n", *del)
		return nil

	case *show != "":
		rec, err := s.LoadGame(*show)
		if err != nil {
			return err
		}
		pos, err := storage.Replay(rec)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s  %s\n", rec.ID, humanize.Time(rec.CreatedAt))
		fmt.Fprintln(a.stdout, rec.StartFEN)
		fmt.Fprintln(a.stdout, strings.Join(rec.Moves, " "))
		fmt.Fprint(a.stdout, pos.Display())
		fmt.Fprintln(a.stdout, describeStatus(pos))
		return nil
	}

	games, err := s.ListGames()
	if err != nil {
		return err
	}
	for _, rec := range games {
		fmt.Fprintf(a.stdout, "%s  %-14s  %3d moves  %s\n",
			rec.ID, humanize.Time(rec.CreatedAt), len(rec.Moves), rec.Status)
	}
	lsm, vlog := s.Size()
	fmt.Fprintf(a.stdout, "%d games, %s on disk\n", len(games), humanize.Bytes(uint64(lsm+vlog)))
	return nil
}

func writeDiagram(path string, pos *board.Position, opts diagram.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := diagram.WritePNG(f, pos, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
