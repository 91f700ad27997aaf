package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// Options selects how a canvas is written to disk
type Options struct {
	Format      Format
	Compression Compression
}

// Filename returns base with the format and compression extensions applied.
// An extension already present on base is kept as is.
func (o Options) Filename(base string) string {
	ext := o.Format.Extension()
	if !strings.EqualFold(filepath.Ext(base), ext) {
		base += ext
	}
	return base + o.Compression.Extension()
}

// DefaultPath returns output/<sceneName>/render_<timestamp> with the extensions for o
func DefaultPath(sceneName string, o Options, now time.Time) string {
	name := fmt.Sprintf("render_%s", now.Format("20060102_150405"))
	return filepath.Join("output", sceneName, o.Filename(name))
}

// Save writes the canvas to path, creating parent directories as needed, and returns
// the path actually written.
func Save(path string, c *renderer.Canvas, o Options) (written string, err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, file.Close())
	}()

	stream, err := NewWriter(file, o.Compression)
	if err != nil {
		return "", err
	}
	if err := Encode(stream, c, o.Format); err != nil {
		stream.Close()
		return "", err
	}
	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("finish %s: %w", path, err)
	}
	return path, nil
}
