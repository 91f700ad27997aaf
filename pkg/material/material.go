package material

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// Material holds the Phong reflectance parameters of a surface
type Material struct {
	Color      core.Color // Flat surface color, used when Pattern is nil
	Pattern    *Pattern   // Optional procedural color
	Ambient    float64    // [0, 1]
	Diffuse    float64    // [0, 1]
	Specular   float64    // [0, 1]
	Shininess  float64    // [10, 200]
	Reflective float64    // [0, 1]; 0 disables reflection
}

// Default returns a white, non-reflective material with a tight highlight
func Default() Material {
	return Material{
		Color:      core.White,
		Ambient:    0.1,
		Diffuse:    0.9,
		Specular:   0.9,
		Shininess:  200,
		Reflective: 0,
	}
}

// New creates a flat-colored material and validates its parameters
func New(color core.Color, ambient, diffuse, specular, shininess, reflective float64) (Material, error) {
	m := Material{
		Color:      color,
		Ambient:    ambient,
		Diffuse:    diffuse,
		Specular:   specular,
		Shininess:  shininess,
		Reflective: reflective,
	}
	if err := m.Validate(); err != nil {
		return Material{}, err
	}
	return m, nil
}

// Validate checks every parameter against its legal range
func (m Material) Validate() error {
	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"ambient", m.Ambient, 0, 1},
		{"diffuse", m.Diffuse, 0, 1},
		{"specular", m.Specular, 0, 1},
		{"shininess", m.Shininess, 10, 200},
		{"reflective", m.Reflective, 0, 1},
	}
	for _, c := range checks {
		if math.IsNaN(c.value) || c.value < c.min || c.value > c.max {
			return fmt.Errorf("material %s %v outside [%v, %v]: %w", c.name, c.value, c.min, c.max, core.ErrInvalidArgument)
		}
	}
	return nil
}

// SurfaceColor returns the pattern color at a world-space point, or the flat color
func (m Material) SurfaceColor(objectInverse core.Matrix, worldPoint core.Tuple) core.Color {
	if m.Pattern != nil {
		return m.Pattern.ColorAtObject(objectInverse, worldPoint)
	}
	return m.Color
}

// Lighting evaluates the Phong model for one light at a world-space point.
// objectInverse is the lit shape's world-to-object transform, used to place patterns.
// The result is not clamped.
func (m Material) Lighting(objectInverse core.Matrix, light lights.PointLight, point, eye, normal core.Tuple, inShadow bool) (core.Color, error) {
	effective := m.SurfaceColor(objectInverse, point).Blend(light.Intensity)
	ambient := effective.Multiply(m.Ambient)
	if inShadow {
		return ambient, nil
	}

	lightv, _, err := light.DirectionFrom(point)
	if err != nil {
		return core.Color{}, fmt.Errorf("lighting: %w", err)
	}
	lightDotNormal, err := lightv.Dot(normal)
	if err != nil {
		return core.Color{}, fmt.Errorf("lighting: %w", err)
	}
	// Light on the other side of the surface
	if lightDotNormal < 0 {
		return ambient, nil
	}
	diffuse := effective.Multiply(m.Diffuse * lightDotNormal)

	reflectv, err := lightv.Negate().Reflect(normal)
	if err != nil {
		return core.Color{}, fmt.Errorf("lighting: %w", err)
	}
	reflectDotEye, err := reflectv.Dot(eye)
	if err != nil {
		return core.Color{}, fmt.Errorf("lighting: %w", err)
	}
	specular := core.Black
	if reflectDotEye > 0 {
		specular = light.Intensity.Multiply(m.Specular * math.Pow(reflectDotEye, m.Shininess))
	}

	return ambient.Add(diffuse).Add(specular), nil
}
