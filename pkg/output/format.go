package output

import (
	"fmt"
	"image/png"
	"io"
	"strings"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// Format is an image encoding
type Format string

const (
	FormatPPM Format = "ppm"
	FormatPNG Format = "png"
)

// ParseFormat accepts "ppm" or "png" in any case
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPPM, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown image format %q: %w", s, core.ErrInvalidArgument)
	}
}

// Extension returns the file extension for the format, including the dot
func (f Format) Extension() string {
	return "." + string(f)
}

// Encode writes the canvas to w in format f
func Encode(w io.Writer, c *renderer.Canvas, f Format) error {
	switch f {
	case FormatPPM:
		return WritePPM(w, c)
	case FormatPNG:
		if err := png.Encode(w, c.ToImage()); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown image format %q: %w", f, core.ErrInvalidArgument)
	}
}
