package core

import (
	"fmt"
	"math"
)

// Kind tags a Tuple as a position or a direction
type Kind uint8

const (
	// KindVector is a direction; its homogeneous w is 0
	KindVector Kind = iota
	// KindPoint is a position; its homogeneous w is 1
	KindPoint
)

func (k Kind) String() string {
	if k == KindPoint {
		return "point"
	}
	return "vector"
}

// Tuple is a point or a vector in 3D space
type Tuple struct {
	X, Y, Z float64
	Kind    Kind
}

// Point creates a position tuple
func Point(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, Kind: KindPoint}
}

// Vector creates a direction tuple
func Vector(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, Kind: KindVector}
}

// W returns the homogeneous coordinate used by matrix transforms
func (t Tuple) W() float64 {
	if t.Kind == KindPoint {
		return 1
	}
	return 0
}

// IsPoint reports whether the tuple is a position
func (t Tuple) IsPoint() bool { return t.Kind == KindPoint }

// IsVector reports whether the tuple is a direction
func (t Tuple) IsVector() bool { return t.Kind == KindVector }

// Add returns t + other. Adding two points is undefined.
func (t Tuple) Add(other Tuple) (Tuple, error) {
	if t.IsPoint() && other.IsPoint() {
		return Tuple{}, fmt.Errorf("add %s to %s: %w", other.Kind, t.Kind, ErrInvalidOperand)
	}
	kind := KindVector
	if t.IsPoint() || other.IsPoint() {
		kind = KindPoint
	}
	return Tuple{X: t.X + other.X, Y: t.Y + other.Y, Z: t.Z + other.Z, Kind: kind}, nil
}

// Subtract returns t - other. point-point is a vector, point-vector a point,
// and subtracting a point from a vector is undefined.
func (t Tuple) Subtract(other Tuple) (Tuple, error) {
	var kind Kind
	switch {
	case t.IsPoint() && other.IsPoint():
		kind = KindVector
	case t.IsPoint():
		kind = KindPoint
	case other.IsPoint():
		return Tuple{}, fmt.Errorf("subtract %s from %s: %w", other.Kind, t.Kind, ErrInvalidOperand)
	default:
		kind = KindVector
	}
	return Tuple{X: t.X - other.X, Y: t.Y - other.Y, Z: t.Z - other.Z, Kind: kind}, nil
}

// Negate flips every component, keeping the kind
func (t Tuple) Negate() Tuple {
	return Tuple{X: -t.X, Y: -t.Y, Z: -t.Z, Kind: t.Kind}
}

// Multiply scales every component, keeping the kind
func (t Tuple) Multiply(scalar float64) Tuple {
	return Tuple{X: t.X * scalar, Y: t.Y * scalar, Z: t.Z * scalar, Kind: t.Kind}
}

// Divide divides every component by scalar
func (t Tuple) Divide(scalar float64) (Tuple, error) {
	if scalar == 0 {
		return Tuple{}, fmt.Errorf("divide %s: %w", t.Kind, ErrDivisionByZero)
	}
	return t.Multiply(1 / scalar), nil
}

// Dot returns the dot product of two vectors
func (t Tuple) Dot(other Tuple) (float64, error) {
	if !t.IsVector() || !other.IsVector() {
		return 0, fmt.Errorf("dot %s with %s: %w", t.Kind, other.Kind, ErrInvalidOperand)
	}
	return t.X*other.X + t.Y*other.Y + t.Z*other.Z, nil
}

// Cross returns the cross product of two vectors
func (t Tuple) Cross(other Tuple) (Tuple, error) {
	if !t.IsVector() || !other.IsVector() {
		return Tuple{}, fmt.Errorf("cross %s with %s: %w", t.Kind, other.Kind, ErrInvalidOperand)
	}
	return Vector(
		t.Y*other.Z-t.Z*other.Y,
		t.Z*other.X-t.X*other.Z,
		t.X*other.Y-t.Y*other.X,
	), nil
}

// Magnitude returns the length of a vector
func (t Tuple) Magnitude() (float64, error) {
	if !t.IsVector() {
		return 0, fmt.Errorf("magnitude of %s: %w", t.Kind, ErrInvalidOperand)
	}
	return math.Sqrt(t.X*t.X + t.Y*t.Y + t.Z*t.Z), nil
}

// Normalize returns a unit vector in the same direction
func (t Tuple) Normalize() (Tuple, error) {
	length, err := t.Magnitude()
	if err != nil {
		return Tuple{}, fmt.Errorf("normalize: %w", err)
	}
	return t.Divide(length)
}

// Reflect mirrors the incoming vector t about normal
func (t Tuple) Reflect(normal Tuple) (Tuple, error) {
	d, err := t.Dot(normal)
	if err != nil {
		return Tuple{}, fmt.Errorf("reflect: %w", err)
	}
	return t.Subtract(normal.Multiply(2 * d))
}

// Equal reports whether both tuples have the same kind and components within Epsilon
func (t Tuple) Equal(other Tuple) bool {
	return t.Kind == other.Kind &&
		FloatEqual(t.X, other.X) &&
		FloatEqual(t.Y, other.Y) &&
		FloatEqual(t.Z, other.Z)
}

func (t Tuple) String() string {
	return fmt.Sprintf("%s(%g, %g, %g)", t.Kind, t.X, t.Y, t.Z)
}
