package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Scene pairs a world with the camera it is meant to be viewed through
type Scene struct {
	Name   string
	World  *World
	Camera CameraConfig
}

// CameraConfig describes a camera by image size, field of view and look-at parameters
type CameraConfig struct {
	Width       int        // Image width in pixels
	Height      int        // Image height in pixels
	FieldOfView float64    // Horizontal or vertical angle in radians, whichever image side is longer
	From        core.Tuple // Eye position
	To          core.Tuple // Point looked at
	Up          core.Tuple // Approximate up vector
}

// DefaultCameraConfig is the 2:1 view used by the built-in scenes
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Width:       500,
		Height:      250,
		FieldOfView: math.Pi / 3,
		From:        core.Point(0, 1.5, -5),
		To:          core.Point(0, 1, 0),
		Up:          core.Vector(0, 1, 0),
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied.
// Look-at tuples are overridden as a group when override.From is set.
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.FieldOfView > 0 {
		result.FieldOfView = override.FieldOfView
	}
	if override.From.IsPoint() {
		result.From = override.From
		result.To = override.To
		result.Up = override.Up
	}
	return result
}

// builder assembles a world and keeps the first error, so scene functions read as a list of objects
type builder struct {
	world *World
	err   error
}

func newBuilder() *builder {
	return &builder{world: NewWorld()}
}

func (b *builder) light(position core.Tuple, intensity core.Color) {
	if b.err != nil {
		return
	}
	l, err := lights.NewPointLight(position, intensity)
	if err != nil {
		b.err = err
		return
	}
	b.world.AddLight(l)
}

func (b *builder) add(shape geometry.Shape, transform core.Matrix, m material.Material) {
	if b.err != nil {
		return
	}
	if err := m.Validate(); err != nil {
		b.err = err
		return
	}
	if err := shape.SetTransform(transform); err != nil {
		b.err = err
		return
	}
	shape.SetMaterial(m)
	b.err = b.world.Add(shape)
}

func (b *builder) sphere(transform core.Matrix, m material.Material) {
	b.add(geometry.NewSphere(b.world.IDs()), transform, m)
}

func (b *builder) plane(transform core.Matrix, m material.Material) {
	b.add(geometry.NewPlane(b.world.IDs()), transform, m)
}

// pattern builds a pattern for a scene literal, recording construction errors
func (b *builder) pattern(p *material.Pattern, err error) *material.Pattern {
	if b.err != nil {
		return nil
	}
	if err != nil {
		b.err = err
		return nil
	}
	return p
}

func (b *builder) placed(p *material.Pattern, transform core.Matrix) *material.Pattern {
	if b.err != nil || p == nil {
		return p
	}
	b.err = p.SetTransform(transform)
	return p
}

func (b *builder) build(name string) (*Scene, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Scene{Name: name, World: b.world, Camera: DefaultCameraConfig()}, nil
}

// matte is the default material with a custom color, lower diffuse and a soft highlight
func matte(c core.Color) material.Material {
	m := material.Default()
	m.Color = c
	m.Diffuse = 0.7
	m.Specular = 0.3
	return m
}
