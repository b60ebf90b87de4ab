package perft

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/chessrules/internal/board"
)

// Result is the outcome of a Runner.Run.
type Result struct {
	Nodes   uint64
	Divide  map[board.Move]uint64
	Elapsed time.Duration
}

// NodesPerSecond returns the search speed, or 0 if no time was measured.
func (r Result) NodesPerSecond() uint64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return uint64(float64(r.Nodes) / r.Elapsed.Seconds())
}

// Runner counts perft in parallel by splitting the root moves between
// workers. Every worker owns the child positions it creates, so the root
// position is only ever read.
type Runner struct {
	// Workers is the number of root moves counted at once. Zero means
	// runtime.GOMAXPROCS(0).
	Workers int
	// Cache, if set, stores subtree counts of two plies or more.
	Cache Cache
	// Logger receives per-move progress at V(1).
	Logger logr.Logger
}

// Run counts the leaf nodes depth plies below pos. It stops early and
// returns ctx's error if ctx is cancelled.
func (r *Runner) Run(ctx context.Context, pos *board.Position, depth int) (Result, error) {
	if depth < 0 {
		return Result{}, fmt.Errorf("perft: negative depth %d", depth)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	start := time.Now()
	if depth == 0 {
		return Result{Nodes: 1, Divide: map[board.Move]uint64{}, Elapsed: time.Since(start)}, nil
	}

	moves := pos.LegalMoves()
	counts := make([]uint64, len(moves))

	workers := r.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, m := range moves {
		g.Go(func() error {
			n, err := r.count(ctx, pos.MakeMoveNewUnchecked(m), depth-1)
			if err != nil {
				return err
			}
			counts[i] = n
			r.Logger.V(1).Info("root move done", "move", m.String(), "nodes", n)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	res := Result{Divide: make(map[board.Move]uint64, len(moves))}
	for i, m := range moves {
		res.Divide[m] = counts[i]
		res.Nodes += counts[i]
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

func (r *Runner) count(ctx context.Context, pos *board.Position, depth int) (uint64, error) {
	if depth < 2 {
		return Count(pos, depth), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.Cache != nil {
		if n, ok := r.Cache.Get(pos.Hash(), depth); ok {
			return n, nil
		}
	}

	var nodes uint64
	for m := range pos.NewMoveGenerator().All() {
		n, err := r.count(ctx, pos.MakeMoveNewUnchecked(m), depth-1)
		if err != nil {
			return 0, err
		}
		nodes += n
	}

	if r.Cache != nil {
		r.Cache.Put(pos.Hash(), depth, nodes)
	}
	return nodes, nil
}
