package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/loaders"
	"github.com/df07/go-phong-raytracer/pkg/output"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Config holds the parsed command line
type Config struct {
	SceneType   string
	File        string
	Width       int
	Height      int
	NumWorkers  int
	TileSize    int
	MaxDepth    int
	Format      output.Format
	Compression output.Compression
	Out         string
	Help        bool
}

func main() {
	config, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}
	if config.Help {
		showHelp(os.Stdout)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, config, renderer.NewDefaultLogger()); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet registers every option on a fresh flag set
func newFlagSet(config *Config, format, compression *string) *flag.FlagSet {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.StringVar(&config.SceneType, "scene", "default", "Scene: a built-in ID, file:<name> for scenes/<name>.json, or a .json path")
	fs.StringVar(&config.File, "file", "", "JSON scene file to render (overrides -scene)")
	fs.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&config.Height, "height", 0, "Image height in pixels (0 = scene default)")
	fs.IntVar(&config.NumWorkers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count, 1 = sequential)")
	fs.IntVar(&config.TileSize, "tile-size", renderer.DefaultTileSize, "Tile edge length in pixels")
	fs.IntVar(&config.MaxDepth, "max-depth", -1, "Reflection bounce limit (-1 = scene default)")
	fs.StringVar(format, "format", "ppm", "Output image format: ppm or png")
	fs.StringVar(compression, "compress", "none", "Output compression: none, zstd or snappy")
	fs.StringVar(&config.Out, "out", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	fs.BoolVar(&config.Help, "help", false, "Show help information")
	return fs
}

// parseFlags parses args into a Config. Invalid values are reported on errOut.
func parseFlags(args []string, errOut io.Writer) (Config, error) {
	var config Config
	var format, compression string
	fs := newFlagSet(&config, &format, &compression)
	fs.SetOutput(errOut)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var err error
	if config.Format, err = output.ParseFormat(format); err != nil {
		fmt.Fprintln(errOut, err)
		return Config{}, err
	}
	if config.Compression, err = output.ParseCompression(compression); err != nil {
		fmt.Fprintln(errOut, err)
		return Config{}, err
	}
	if config.Width < 0 || config.Height < 0 || config.TileSize <= 0 || config.NumWorkers < 0 {
		err := errors.New("width, height and workers must not be negative and tile-size must be positive")
		fmt.Fprintln(errOut, err)
		return Config{}, err
	}
	return config, nil
}

func showHelp(w io.Writer) {
	fmt.Fprintln(w, "Phong Raytracer")
	fmt.Fprintln(w, "Usage: raytracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	var config Config
	var format, compression string
	fs := newFlagSet(&config, &format, &compression)
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListBuiltinScenes() {
		fmt.Fprintf(w, "  %-18s %s\n", info.ID, info.Description)
	}
	if files, err := scene.ListFileScenes(); err == nil {
		for _, info := range files {
			fmt.Fprintf(w, "  %-18s %s\n", info.ID, info.Description)
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output will be saved to output/<scene>/render_<timestamp>.<format> unless -out is given")
}

// createScene resolves the scene to render and applies the size and depth overrides
func createScene(config Config) (*scene.Scene, error) {
	ref := config.SceneType
	if config.File != "" {
		ref = config.File
	}
	s, err := loaders.LoadScene(ref)
	if err != nil {
		return nil, err
	}

	s.Camera = scene.MergeCameraConfig(s.Camera, scene.CameraConfig{
		Width:  config.Width,
		Height: config.Height,
	})
	if config.MaxDepth >= 0 {
		s.World.MaxDepth = config.MaxDepth
	}
	return s, nil
}

// sceneDirName turns a scene name into a directory name for output
func sceneDirName(s *scene.Scene) string {
	name := strings.ToLower(s.Name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
	if name == "" {
		return "scene"
	}
	return name
}

func run(ctx context.Context, config Config, logger core.Logger) error {
	logger.Printf("Starting Phong Raytracer...\n")

	s, err := createScene(config)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%dx%d, max depth %d)...\n", s.Name, s.Camera.Width, s.Camera.Height, s.World.MaxDepth)

	camera, err := renderer.NewCameraFromConfig(s.Camera)
	if err != nil {
		return err
	}

	rt := renderer.NewRaytracer(s.World, camera, renderer.RenderConfig{
		TileSize:   config.TileSize,
		NumWorkers: config.NumWorkers,
	}, logger)

	canvas, stats, err := rt.Render(ctx, nil)
	if err != nil {
		return err
	}
	logger.Printf("Rendered %d pixels with %d workers (%.0f pixels/s, average luminance %.3f)\n",
		stats.TotalPixels, stats.NumWorkers, stats.PixelsPerSecond(), renderer.AverageLuminance(canvas))

	opts := output.Options{Format: config.Format, Compression: config.Compression}
	path := config.Out
	if path == "" {
		path = output.DefaultPath(sceneDirName(s), opts, time.Now())
	}
	written, err := output.Save(path, canvas, opts)
	if err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", written)
	return nil
}
