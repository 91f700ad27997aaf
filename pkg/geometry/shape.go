package geometry

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays. Rays and points passed in are
// in world space; each implementation maps them into its own object space.
type Shape interface {
	ID() ID
	Transform() core.Matrix
	// Inverse returns the cached world-to-object transform
	Inverse() core.Matrix
	SetTransform(m core.Matrix) error
	Material() *material.Material
	SetMaterial(m material.Material)
	Intersect(ray core.Ray) Intersections
	NormalAt(worldPoint core.Tuple) (core.Tuple, error)
}

// object holds the state shared by every shape: identity, transform and material.
// The inverse and inverse-transpose are cached whenever the transform changes.
type object struct {
	id               ID
	transform        core.Matrix
	inverse          core.Matrix
	inverseTranspose core.Matrix
	material         material.Material
}

// newObject requires an allocator; every shape constructor passes its ids through
func newObject(ids *IDAllocator) object {
	if ids == nil {
		panic("geometry: shape constructed without an IDAllocator")
	}
	return object{
		id:               ids.Next(),
		transform:        core.Identity(4),
		inverse:          core.Identity(4),
		inverseTranspose: core.Identity(4),
		material:         material.Default(),
	}
}

// ID returns the shape's identity
func (o *object) ID() ID { return o.id }

// Transform returns the object-to-world transform
func (o *object) Transform() core.Matrix { return o.transform }

// Inverse returns the cached world-to-object transform
func (o *object) Inverse() core.Matrix { return o.inverse }

// Material returns the shape's own material for in-place edits
func (o *object) Material() *material.Material { return &o.material }

// SetMaterial replaces the shape's material. The pattern is copied, so one material
// value can be handed to many shapes without them sharing state.
func (o *object) SetMaterial(m material.Material) {
	m.Pattern = m.Pattern.Clone()
	o.material = m
}

// SetTransform replaces the object-to-world transform. The matrix must be an invertible 4x4.
func (o *object) SetTransform(m core.Matrix) error {
	if m.Size() != 4 {
		return fmt.Errorf("shape %d: transform must be 4x4, got %dx%d: %w", o.id, m.Size(), m.Size(), core.ErrInvalidArgument)
	}
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("shape %d: %w", o.id, err)
	}
	o.transform = m
	o.inverse = inv
	o.inverseTranspose = inv.Transpose()
	return nil
}

// localRay maps a world-space ray into object space
func (o *object) localRay(ray core.Ray) core.Ray {
	return ray.Transform(o.inverse)
}

// localPoint maps a world-space point into object space
func (o *object) localPoint(p core.Tuple) core.Tuple {
	return o.inverse.MulTuple(p)
}

// worldNormal maps an object-space normal back to world space and normalizes it.
// MulTuple keeps the vector kind, which drops any translation the inverse transpose would add to w.
func (o *object) worldNormal(local core.Tuple) (core.Tuple, error) {
	n := o.inverseTranspose.MulTuple(core.Vector(local.X, local.Y, local.Z))
	unit, err := n.Normalize()
	if err != nil {
		return core.Tuple{}, fmt.Errorf("shape %d normal: %w", o.id, err)
	}
	return unit, nil
}
