package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// Plane is the infinite xz plane (y = 0) in object space
type Plane struct {
	object
}

// NewPlane creates a plane with the identity transform and the default material
func NewPlane(ids *IDAllocator) *Plane {
	return &Plane{object: newObject(ids)}
}

// Intersect returns the single crossing of the ray with the plane. Rays parallel to the plane,
// including rays lying in it, miss.
func (p *Plane) Intersect(ray core.Ray) Intersections {
	local := p.localRay(ray)
	if math.Abs(local.Direction.Y) < core.Epsilon {
		return Intersections{}
	}
	var xs Intersections
	xs.Push(Intersection{T: -local.Origin.Y / local.Direction.Y, ShapeID: p.id})
	return xs
}

// NormalAt returns the plane normal in world space; it is the same everywhere
func (p *Plane) NormalAt(worldPoint core.Tuple) (core.Tuple, error) {
	if !worldPoint.IsPoint() {
		return core.Tuple{}, fmt.Errorf("plane %d normal at %s: %w", p.id, worldPoint.Kind, core.ErrInvalidArgument)
	}
	return p.worldNormal(core.Vector(0, 1, 0))
}
