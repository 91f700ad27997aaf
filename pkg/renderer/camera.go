package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// Camera maps the pixels of an HSize x VSize image onto rays. In its own space the camera
// sits at the origin looking down -z at a canvas one unit away.
type Camera struct {
	HSize       int     // Horizontal size in pixels
	VSize       int     // Vertical size in pixels
	FieldOfView float64 // Angle in radians covered by the longer image side
	HalfWidth   float64
	HalfHeight  float64
	PixelSize   float64 // World units per pixel on the canvas plane

	transform core.Matrix
	inverse   core.Matrix
}

// NewCamera creates a camera with the identity view transform. The derived canvas sizes
// are computed here once and never per pixel.
func NewCamera(hsize, vsize int, fieldOfView float64) (*Camera, error) {
	if hsize <= 0 || vsize <= 0 {
		return nil, fmt.Errorf("camera size %dx%d: %w", hsize, vsize, core.ErrInvalidArgument)
	}
	if !(fieldOfView > 0 && fieldOfView < math.Pi) {
		return nil, fmt.Errorf("camera field of view %v must be in (0, pi): %w", fieldOfView, core.ErrInvalidArgument)
	}

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)

	c := &Camera{
		HSize:       hsize,
		VSize:       vsize,
		FieldOfView: fieldOfView,
		transform:   core.Identity(4),
		inverse:     core.Identity(4),
	}
	if aspect >= 1 {
		c.HalfWidth = halfView
		c.HalfHeight = halfView / aspect
	} else {
		c.HalfWidth = halfView * aspect
		c.HalfHeight = halfView
	}
	c.PixelSize = c.HalfWidth * 2 / float64(hsize)
	return c, nil
}

// NewCameraFromConfig builds a camera from a scene's camera description
func NewCameraFromConfig(config scene.CameraConfig) (*Camera, error) {
	camera, err := NewCamera(config.Width, config.Height, config.FieldOfView)
	if err != nil {
		return nil, err
	}
	view, err := core.ViewTransform(config.From, config.To, config.Up)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	if err := camera.SetTransform(view); err != nil {
		return nil, err
	}
	return camera, nil
}

// Transform returns the world-to-camera view transform
func (c *Camera) Transform() core.Matrix { return c.transform }

// SetTransform replaces the view transform, usually one built by core.ViewTransform
func (c *Camera) SetTransform(m core.Matrix) error {
	if m.Size() != 4 {
		return fmt.Errorf("camera transform must be 4x4, got %dx%d: %w", m.Size(), m.Size(), core.ErrInvalidArgument)
	}
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("camera transform: %w", err)
	}
	c.transform = m
	c.inverse = inv
	return nil
}

// RayForPixel returns the world-space ray through the centre of pixel (px, py).
// Pixel (0, 0) is the top-left corner of the image.
func (c *Camera) RayForPixel(px, py int) (core.Ray, error) {
	xOffset := (float64(px) + 0.5) * c.PixelSize
	yOffset := (float64(py) + 0.5) * c.PixelSize

	// The camera looks toward -z, so +x is to the left
	worldX := c.HalfWidth - xOffset
	worldY := c.HalfHeight - yOffset

	pixel := c.inverse.MulTuple(core.Point(worldX, worldY, -1))
	origin := c.inverse.MulTuple(core.Point(0, 0, 0))

	toPixel, err := pixel.Subtract(origin)
	if err != nil {
		return core.Ray{}, err
	}
	direction, err := toPixel.Normalize()
	if err != nil {
		return core.Ray{}, fmt.Errorf("ray for pixel (%d, %d): %w", px, py, err)
	}
	return core.NewRay(origin, direction)
}
