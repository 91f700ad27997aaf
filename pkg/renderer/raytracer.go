package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// DefaultTileSize is the tile edge used when a config leaves it unset
const DefaultTileSize = 64

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ColorSource is what the renderer traces rays against; *scene.World implements it.
// Implementations must be safe for concurrent calls.
type ColorSource interface {
	ColorAt(ray core.Ray) (core.Color, error)
}

// RenderConfig contains configuration for tiled rendering
type RenderConfig struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count, 1 = sequential)
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TileSize:   DefaultTileSize,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	TileImage *image.RGBA // Image data for just this tile

	// Progress information
	TileNumber int // Number of tiles finished so far, including this one
	TotalTiles int
}

// Raytracer renders a world through a camera into a canvas
type Raytracer struct {
	world  ColorSource
	camera *Camera
	config RenderConfig
	logger core.Logger
}

// NewRaytracer creates a raytracer. A nil logger discards output.
func NewRaytracer(world ColorSource, camera *Camera, config RenderConfig, logger core.Logger) *Raytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Raytracer{
		world:  world,
		camera: camera,
		config: config,
		logger: logger,
	}
}

// Render traces one ray per pixel and returns the filled canvas. Tiles are farmed out to
// the worker pool; tileCallback, if non-nil, sees each tile as it completes.
// Cancelling ctx stops the render before the next tile and returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*Canvas, RenderStats, error) {
	start := time.Now()
	canvas := NewCanvas(rt.camera.HSize, rt.camera.VSize)
	tiles := NewTileGrid(canvas.Width, canvas.Height, rt.config.TileSize)
	pool := NewWorkerPool(rt.config.NumWorkers)

	tasks := make([]TileTask, len(tiles))
	for i, tile := range tiles {
		tasks[i] = TileTask{Tile: tile, TaskID: i}
	}

	rt.logger.Printf("Rendering %dx%d in %d tiles (using %d workers)\n",
		canvas.Width, canvas.Height, len(tiles), pool.GetNumWorkers())

	completed := 0
	done := func(result TileResult) {
		completed++
		if tileCallback == nil {
			return
		}
		bounds := result.Tile.Bounds
		tileCallback(TileCompletionResult{
			TileX:      bounds.Min.X / rt.config.TileSize,
			TileY:      bounds.Min.Y / rt.config.TileSize,
			TileImage:  canvas.SubImage(bounds),
			TileNumber: completed,
			TotalTiles: len(tiles),
		})
	}

	render := func(_ context.Context, task TileTask) (TileResult, error) {
		return rt.RenderTile(task, canvas)
	}

	stats := RenderStats{
		TotalPixels: canvas.Width * canvas.Height,
		TotalTiles:  len(tiles),
		NumWorkers:  pool.GetNumWorkers(),
	}
	if err := pool.Run(ctx, tasks, render, done); err != nil {
		stats.Elapsed = time.Since(start)
		core.Warnf(rt.logger, "Render stopped after %d of %d tiles: %v\n", completed, len(tiles), err)
		return nil, stats, err
	}

	stats.Elapsed = time.Since(start)
	rt.logger.Printf("Render completed in %v\n", stats.Elapsed)
	return canvas, stats, nil
}

// RenderTile fills the pixels of one tile. Only cells inside the tile bounds are written.
func (rt *Raytracer) RenderTile(task TileTask, canvas *Canvas) (TileResult, error) {
	start := time.Now()
	bounds := task.Tile.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray, err := rt.camera.RayForPixel(x, y)
			if err != nil {
				return TileResult{}, err
			}
			col, err := rt.world.ColorAt(ray)
			if err != nil {
				return TileResult{}, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}
			canvas.WritePixel(x, y, col)
		}
	}
	return TileResult{
		TaskID:  task.TaskID,
		Tile:    task.Tile,
		Pixels:  bounds.Dx() * bounds.Dy(),
		Elapsed: time.Since(start),
	}, nil
}

// Render traces every pixel of the camera's image against world on a single goroutine
func (c *Camera) Render(ctx context.Context, world ColorSource) (*Canvas, error) {
	canvas, _, err := NewRaytracer(world, c, RenderConfig{TileSize: DefaultTileSize, NumWorkers: 1}, nil).Render(ctx, nil)
	return canvas, err
}
