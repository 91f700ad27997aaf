package renderer

import (
	"context"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int // Position in submission order
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID  int
	Tile    *Tile
	Pixels  int
	Elapsed time.Duration
}

// TileFunc renders one tile. It must only write pixels inside task.Tile.Bounds.
type TileFunc func(ctx context.Context, task TileTask) (TileResult, error)

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers (0 = use CPU count)
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Run renders every task with at most GetNumWorkers tiles in flight. The context is checked
// before each tile starts; the first failing tile cancels the ones not yet started.
// done, if non-nil, receives each finished tile and is never called concurrently.
func (wp *WorkerPool) Run(ctx context.Context, tasks []TileTask, render TileFunc, done func(TileResult)) error {
	if wp.numWorkers == 1 {
		return runSequential(ctx, tasks, render, done)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	var mu sync.Mutex
	for _, task := range tasks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result, err := render(gctx, task)
			if err != nil {
				return err
			}
			if done != nil {
				mu.Lock()
				done(result)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func runSequential(ctx context.Context, tasks []TileTask, render TileFunc, done func(TileResult)) error {
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := render(ctx, task)
		if err != nil {
			return err
		}
		if done != nil {
			done(result)
		}
	}
	return nil
}
