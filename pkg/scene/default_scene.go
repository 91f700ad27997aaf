package scene

import (
	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// NewDefaultWorld creates the reference world: a light at (-10, 10, -10) and two
// concentric spheres at the origin, the inner one half size
func NewDefaultWorld() (*World, error) {
	b := newBuilder()
	b.light(core.Point(-10, 10, -10), core.White)

	outer := matte(core.NewColor(0.8, 1.0, 0.6))
	outer.Specular = 0.2
	b.sphere(core.Identity(4), outer)

	b.sphere(core.Scaling(0.5, 0.5, 0.5), material.Default())
	if b.err != nil {
		return nil, b.err
	}
	return b.world, nil
}

// NewDefaultScene views the reference world from (0, 0, -5)
func NewDefaultScene() (*Scene, error) {
	w, err := NewDefaultWorld()
	if err != nil {
		return nil, err
	}
	camera := DefaultCameraConfig()
	camera.Width = 200
	camera.Height = 200
	camera.From = core.Point(0, 0, -5)
	camera.To = core.Point(0, 0, 0)
	return &Scene{Name: "default", World: w, Camera: camera}, nil
}
