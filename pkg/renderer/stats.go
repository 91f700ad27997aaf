package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels int           // Total number of pixels rendered
	TotalTiles  int           // Number of tiles the image was split into
	NumWorkers  int           // Workers used
	Elapsed     time.Duration // Wall time of the whole render
}

// PixelsPerSecond returns the render throughput, or 0 for an instant render
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalPixels) / s.Elapsed.Seconds()
}

// AverageLuminance returns the mean Rec. 709 luminance of the canvas after clamping to [0, 1]
func AverageLuminance(c *Canvas) float64 {
	if len(c.pixels) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range c.pixels {
		p = p.Clamp(0, 1)
		total += 0.2126*p.R + 0.7152*p.G + 0.0722*p.B
	}
	return total / float64(len(c.pixels))
}
