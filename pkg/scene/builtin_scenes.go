package scene

import (
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// sphereMaterials returns the materials of the small, middle and right spheres shared by the room scenes
func sphereMaterials() (left, middle, right material.Material) {
	left = matte(core.NewColor(1.0, 0.8, 0.1))
	middle = matte(core.NewColor(0.1, 1.0, 0.5))
	right = matte(core.NewColor(0.5, 1.0, 0.1))
	return left, middle, right
}

var (
	leftSphere   = core.Translation(-1.5, 0.33, -0.75).Mul(core.Scaling(0.33, 0.33, 0.33))
	middleSphere = core.Translation(-0.5, 1, 0.5)
	rightSphere  = core.Translation(1.5, 0.5, -0.5).Mul(core.Scaling(0.5, 0.5, 0.5))
)

// NewSpheresScene creates three spheres in a corner made of two flattened-sphere walls and a floor
func NewSpheresScene() (*Scene, error) {
	b := newBuilder()
	b.light(core.Point(-10, 10, -10), core.White)

	wall := material.Default()
	wall.Color = core.NewColor(1, 0.9, 0.9)
	wall.Specular = 0

	flat := core.Scaling(10, 0.01, 10)
	b.sphere(flat, wall)
	b.sphere(core.Translation(0, 0, 5).Mul(core.RotationY(-math.Pi/4)).Mul(core.RotationX(math.Pi/2)).Mul(flat), wall)
	b.sphere(core.Translation(0, 0, 5).Mul(core.RotationY(math.Pi/4)).Mul(core.RotationX(math.Pi/2)).Mul(flat), wall)

	left, middle, right := sphereMaterials()
	b.sphere(leftSphere, left)
	b.sphere(middleSphere, middle)
	b.sphere(rightSphere, right)
	return b.build("spheres")
}

// NewPlaneScene places the three spheres on an infinite floor plane
func NewPlaneScene() (*Scene, error) {
	b := newBuilder()
	b.light(core.Point(-10, 10, -10), core.White)

	b.plane(core.Identity(4), material.Default())
	left, middle, right := sphereMaterials()
	b.sphere(leftSphere, left)
	b.sphere(middleSphere, middle)
	b.sphere(rightSphere, right)
	return b.build("plane")
}

// NewPatternScene shows every pattern kind: ring, stripe and checkers spheres on a gradient floor
func NewPatternScene() (*Scene, error) {
	b := newBuilder()
	b.light(core.Point(-10, 10, -10), core.White)

	floor := material.Default()
	floor.Pattern = b.pattern(material.NewGradient(core.Orange, core.Blue))
	b.plane(core.Identity(4), floor)

	left, middle, right := sphereMaterials()
	left.Pattern = b.placed(b.pattern(material.NewStripe(core.Yellow, core.Green)), core.Scaling(0.2, 0.2, 0.2))
	middle.Pattern = b.placed(b.pattern(material.NewRing(core.White, core.Blue, core.Red, core.White, core.Red)),
		core.Scaling(0.2, 0.2, 0.2).RotateX(math.Pi/2))
	right.Pattern = b.pattern(material.NewCheckers(core.White, core.Black))

	b.sphere(leftSphere, left)
	b.sphere(middleSphere, middle)
	b.sphere(rightSphere, right)
	return b.build("patterns")
}

// NewReflectionScene puts a red sphere over a reflective checkered floor
func NewReflectionScene() (*Scene, error) {
	b := newBuilder()
	b.light(core.Point(-10, 10, -10), core.White)

	floor := material.Default()
	floor.Reflective = 0.7
	floor.Pattern = b.pattern(material.NewCheckers(core.NewColor(0.41, 0.41, 0.41), core.NewColor(0.82, 0.82, 0.82)))
	b.plane(core.Identity(4), floor)

	b.sphere(middleSphere, matte(core.Red))

	s, err := b.build("reflection")
	if err != nil {
		return nil, err
	}
	s.Camera.Width = 700
	s.Camera.Height = 500
	return s, nil
}
