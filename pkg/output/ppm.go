package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-phong-raytracer/pkg/renderer"
)

// WritePPM encodes the canvas as a plain-text (P3) portable pixmap: a header line per
// field, then one "R G B" line per pixel in row-major order. Channels are scaled to
// [0, 255], rounded and clamped.
func WritePPM(w io.Writer, c *renderer.Canvas) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.Width, c.Height); err != nil {
		return fmt.Errorf("write ppm header: %w", err)
	}
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			p := c.PixelAt(x, y)
			_, err := fmt.Fprintf(bw, "%d %d %d\n",
				renderer.ChannelByte(p.R), renderer.ChannelByte(p.G), renderer.ChannelByte(p.B))
			if err != nil {
				return fmt.Errorf("write ppm pixel (%d, %d): %w", x, y, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write ppm: %w", err)
	}
	return nil
}
