package lights

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// LightType names a kind of light in scene descriptions
type LightType string

const (
	LightTypePoint LightType = "point"
)

// PointLight is a light source with no size: it casts hard shadows and has no falloff
type PointLight struct {
	Position  core.Tuple // Must be a point
	Intensity core.Color
}

// NewPointLight creates a point light, rejecting a position that is not a point
func NewPointLight(position core.Tuple, intensity core.Color) (PointLight, error) {
	if !position.IsPoint() {
		return PointLight{}, fmt.Errorf("light position must be a point, got %s: %w", position.Kind, core.ErrInvalidArgument)
	}
	return PointLight{Position: position, Intensity: intensity}, nil
}

// Type returns LightTypePoint
func (l PointLight) Type() LightType {
	return LightTypePoint
}

// DirectionFrom returns the unit vector from point towards the light and the distance to it
func (l PointLight) DirectionFrom(point core.Tuple) (core.Tuple, float64, error) {
	v, err := l.Position.Subtract(point)
	if err != nil {
		return core.Tuple{}, 0, fmt.Errorf("light direction: %w", err)
	}
	distance, err := v.Magnitude()
	if err != nil {
		return core.Tuple{}, 0, fmt.Errorf("light direction: %w", err)
	}
	dir, err := v.Divide(distance)
	if err != nil {
		return core.Tuple{}, 0, fmt.Errorf("light direction: point coincides with light: %w", err)
	}
	return dir, distance, nil
}
