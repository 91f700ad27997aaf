package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/output"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

func TestParseFlags(t *testing.T) {
	config, err := parseFlags([]string{
		"-scene", "reflection", "-width", "80", "-height", "40", "-workers", "2",
		"-tile-size", "16", "-max-depth", "3", "-format", "png", "-compress", "zstd", "-out", "x.png",
	}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}

	expected := Config{
		SceneType:   "reflection",
		Width:       80,
		Height:      40,
		NumWorkers:  2,
		TileSize:    16,
		MaxDepth:    3,
		Format:      output.FormatPNG,
		Compression: output.CompressionZstd,
		Out:         "x.png",
	}
	if config != expected {
		t.Errorf("Expected %+v, got %+v", expected, config)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	config, err := parseFlags(nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if config.SceneType != "default" || config.Format != output.FormatPPM || config.Compression != output.CompressionNone {
		t.Errorf("Unexpected defaults %+v", config)
	}
	if config.MaxDepth != -1 || config.TileSize != 64 {
		t.Errorf("Expected max depth -1 and tile size 64, got %d and %d", config.MaxDepth, config.TileSize)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"-format", "gif"}},
		{"unknown compression", []string{"-compress", "lz4"}},
		{"negative width", []string{"-width", "-5"}},
		{"zero tile size", []string{"-tile-size", "0"}},
		{"unknown flag", []string{"-samples", "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errOut bytes.Buffer
			if _, err := parseFlags(tt.args, &errOut); err == nil {
				t.Errorf("Expected an error for %v", tt.args)
			}
			if errOut.Len() == 0 {
				t.Errorf("Expected the problem to be reported")
			}
		})
	}
}

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"spheres scene", "spheres", false},
		{"plane scene", "plane", false},
		{"patterns scene", "patterns", false},
		{"reflection scene", "reflection", false},
		{"json scene by path", "scenes/mirror-room.json", false},
		{"json scene by id", "file:mirror-room", false},

		{"unknown scene", "nonexistent", true},
		{"invalid json path", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(Config{SceneType: tt.sceneType, MaxDepth: -1})
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.Camera.Width <= 0 || s.Camera.Height <= 0 {
				t.Errorf("Scene camera size should be positive, got %dx%d", s.Camera.Width, s.Camera.Height)
			}
			if len(s.World.Objects()) == 0 {
				t.Errorf("Expected objects in scene '%s'", tt.sceneType)
			}
		})
	}
}

func TestCreateScene_Overrides(t *testing.T) {
	s, err := createScene(Config{SceneType: "default", File: "scenes/gradient-rings.json", Width: 32, MaxDepth: 1})
	if err != nil {
		t.Fatalf("createScene: %v", err)
	}
	if s.Name != "Gradient Rings" {
		t.Errorf("Expected -file to win over -scene, got %q", s.Name)
	}
	if s.Camera.Width != 32 || s.Camera.Height != 400 {
		t.Errorf("Expected 32x400, got %dx%d", s.Camera.Width, s.Camera.Height)
	}
	if s.World.MaxDepth != 1 {
		t.Errorf("Expected max depth 1, got %d", s.World.MaxDepth)
	}
}

func TestSceneDirName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"reflection", "reflection"},
		{"Mirror Room", "mirror-room"},
		{"a/b", "a-b"},
		{"", "scene"},
	}
	for _, tt := range tests {
		if got := sceneDirName(&scene.Scene{Name: tt.name}); got != tt.expected {
			t.Errorf("sceneDirName(%q) = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestRun_WritesPPM(t *testing.T) {
	out := filepath.Join(t.TempDir(), "render.ppm")
	config := Config{
		SceneType:  "default",
		Width:      20,
		Height:     10,
		NumWorkers: 2,
		TileSize:   8,
		MaxDepth:   -1,
		Format:     output.FormatPPM,
		Out:        out,
	}
	if err := run(context.Background(), config, core.NopLogger{}); err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n20 10\n255\n") {
		t.Errorf("Expected a 20x10 PPM header, got %q", string(data[:min(len(data), 16)]))
	}
	if lines := strings.Count(string(data), "\n"); lines != 3+200 {
		t.Errorf("Expected %d lines, got %d", 3+200, lines)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "render.ppm")
	err := run(ctx, Config{SceneType: "default", TileSize: 8, MaxDepth: -1, Format: output.FormatPPM, Out: out}, core.NopLogger{})
	if err == nil {
		t.Fatalf("Expected an error for a cancelled render")
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Errorf("Expected no output file after cancellation")
	}
}

func TestShowHelp(t *testing.T) {
	var buf bytes.Buffer
	showHelp(&buf)
	for _, want := range []string{"-scene", "-compress", "reflection", "Available scenes"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("Expected help to mention %q", want)
		}
	}
}
