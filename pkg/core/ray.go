package core

import "fmt"

// Ray represents a ray with an origin point and a direction vector
type Ray struct {
	Origin    Tuple
	Direction Tuple
}

// NewRay creates a new ray, rejecting a non-point origin or a non-vector direction
func NewRay(origin, direction Tuple) (Ray, error) {
	if !origin.IsPoint() {
		return Ray{}, fmt.Errorf("ray origin must be a point, got %s: %w", origin.Kind, ErrInvalidArgument)
	}
	if !direction.IsVector() {
		return Ray{}, fmt.Errorf("ray direction must be a vector, got %s: %w", direction.Kind, ErrInvalidArgument)
	}
	return Ray{Origin: origin, Direction: direction}, nil
}

// Position returns the point at parameter t along the ray
func (r Ray) Position(t float64) Tuple {
	return Point(
		r.Origin.X+r.Direction.X*t,
		r.Origin.Y+r.Direction.Y*t,
		r.Origin.Z+r.Direction.Z*t,
	)
}

// Transform maps the ray through m. The direction is not renormalized, so t values
// computed against the transformed ray stay valid for the original one.
func (r Ray) Transform(m Matrix) Ray {
	return Ray{Origin: m.MulTuple(r.Origin), Direction: m.MulTuple(r.Direction)}
}
