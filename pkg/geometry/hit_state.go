package geometry

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// ShadowBias is how far OverPoint sits above the surface along the normal
const ShadowBias = 15 * core.Epsilon

// HitState is the world-space geometry at a hit, computed once per shading call
type HitState struct {
	T         float64
	ShapeID   ID
	Point     core.Tuple // Point of intersection
	OverPoint core.Tuple // Point nudged along the normal; origin for secondary rays
	Eye       core.Tuple // Towards the viewer
	Normal    core.Tuple // Surface normal, flipped to face the eye
	Reflect   core.Tuple // Incoming direction mirrored about Normal
	Inside    bool       // Whether the ray started inside the shape
}

// ComputeState precomputes the shading inputs for hit on shape along ray
func ComputeState(ray core.Ray, hit Intersection, shape Shape) (HitState, error) {
	if shape.ID() != hit.ShapeID {
		return HitState{}, fmt.Errorf("hit belongs to shape %d, not %d: %w", hit.ShapeID, shape.ID(), core.ErrInvalidArgument)
	}

	point := ray.Position(hit.T)
	normal, err := shape.NormalAt(point)
	if err != nil {
		return HitState{}, err
	}
	eye := ray.Direction.Negate()

	cos, err := normal.Dot(eye)
	if err != nil {
		return HitState{}, fmt.Errorf("compute hit state: %w", err)
	}
	inside := cos < 0
	if inside {
		normal = normal.Negate()
	}

	reflect, err := ray.Direction.Reflect(normal)
	if err != nil {
		return HitState{}, fmt.Errorf("compute hit state: %w", err)
	}
	over, err := point.Add(normal.Multiply(ShadowBias))
	if err != nil {
		return HitState{}, fmt.Errorf("compute hit state: %w", err)
	}

	return HitState{
		T:         hit.T,
		ShapeID:   hit.ShapeID,
		Point:     point,
		OverPoint: over,
		Eye:       eye,
		Normal:    normal,
		Reflect:   reflect,
		Inside:    inside,
	}, nil
}
