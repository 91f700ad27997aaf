package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Sphere is a unit sphere centred on its local origin. Size and position come from its transform.
type Sphere struct {
	object
}

// NewSphere creates a unit sphere with the identity transform and the default material
func NewSphere(ids *IDAllocator) *Sphere {
	return &Sphere{object: newObject(ids)}
}

// Intersect returns both roots of the ray/sphere quadratic. A tangent ray yields two equal hits.
func (s *Sphere) Intersect(ray core.Ray) Intersections {
	local := s.localRay(ray)
	o, d := local.Origin, local.Direction

	// Quadratic equation coefficients: at² + bt + c = 0
	a := d.X*d.X + d.Y*d.Y + d.Z*d.Z
	b := 2 * (d.X*o.X + d.Y*o.Y + d.Z*o.Z)
	c := o.X*o.X + o.Y*o.Y + o.Z*o.Z - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 || a == 0 {
		return Intersections{}
	}

	sqrtD := math.Sqrt(discriminant)
	var xs Intersections
	xs.Push(Intersection{T: (-b - sqrtD) / (2 * a), ShapeID: s.id})
	xs.Push(Intersection{T: (-b + sqrtD) / (2 * a), ShapeID: s.id})
	return xs
}

// NormalAt returns the world-space surface normal at a world-space point on the sphere
func (s *Sphere) NormalAt(worldPoint core.Tuple) (core.Tuple, error) {
	if !worldPoint.IsPoint() {
		return core.Tuple{}, fmt.Errorf("sphere %d normal at %s: %w", s.id, worldPoint.Kind, core.ErrInvalidArgument)
	}
	p := s.localPoint(worldPoint)
	return s.worldNormal(core.Vector(p.X, p.Y, p.Z))
}
