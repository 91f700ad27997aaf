package scene

import (
	"fmt"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/geometry"
	"github.com/df07/go-phong-raytracer/pkg/lights"
)

// DefaultMaxDepth is the number of reflection bounces followed before a ray returns black
const DefaultMaxDepth = 5

// World owns every shape and light of a scene. Shapes are stored by ID so that
// intersections refer to them without holding pointers. A World is mutated only while
// the scene is assembled and is safe for concurrent reads while rendering.
type World struct {
	ids      *geometry.IDAllocator
	objects  map[geometry.ID]geometry.Shape
	order    []geometry.ID // insertion order, for deterministic iteration
	lights   []lights.PointLight
	MaxDepth int // Reflection bounce limit used by ColorAt
}

// NewWorld creates an empty world with its own shape ID allocator
func NewWorld() *World {
	return &World{
		ids:      geometry.NewIDAllocator(),
		objects:  make(map[geometry.ID]geometry.Shape),
		MaxDepth: DefaultMaxDepth,
	}
}

// IDs returns the allocator shapes added to this world should be created with
func (w *World) IDs() *geometry.IDAllocator {
	return w.ids
}

// Add inserts shapes into the world. A shape whose ID is already present is rejected
// and nothing after it is added.
func (w *World) Add(shapes ...geometry.Shape) error {
	for _, s := range shapes {
		if _, exists := w.objects[s.ID()]; exists {
			return fmt.Errorf("shape %d already in world: %w", s.ID(), core.ErrInvalidArgument)
		}
		w.objects[s.ID()] = s
		w.order = append(w.order, s.ID())
	}
	return nil
}

// AddLight appends a light
func (w *World) AddLight(l lights.PointLight) {
	w.lights = append(w.lights, l)
}

// Lookup returns the shape with the given ID
func (w *World) Lookup(id geometry.ID) (geometry.Shape, error) {
	s, ok := w.objects[id]
	if !ok {
		return nil, fmt.Errorf("shape %d: %w", id, core.ErrIndexOutOfRange)
	}
	return s, nil
}

// Objects returns the shapes in insertion order
func (w *World) Objects() []geometry.Shape {
	out := make([]geometry.Shape, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.objects[id])
	}
	return out
}

// Light returns the i-th light
func (w *World) Light(i int) (lights.PointLight, error) {
	if i < 0 || i >= len(w.lights) {
		return lights.PointLight{}, fmt.Errorf("light %d of %d: %w", i, len(w.lights), core.ErrIndexOutOfRange)
	}
	return w.lights[i], nil
}

// Lights returns a copy of the lights
func (w *World) Lights() []lights.PointLight {
	return append([]lights.PointLight(nil), w.lights...)
}

// Intersect returns every intersection of ray with every shape, sorted by t
func (w *World) Intersect(ray core.Ray) geometry.Intersections {
	var xs geometry.Intersections
	for _, id := range w.order {
		xs.Merge(w.objects[id].Intersect(ray))
	}
	return xs
}

// ColorAt returns the color seen along ray, following up to MaxDepth reflections
func (w *World) ColorAt(ray core.Ray) (core.Color, error) {
	return w.ColorAtDepth(ray, w.MaxDepth)
}

// ColorAtDepth returns the color seen along ray with remaining reflection bounces.
// A ray that hits nothing is black.
func (w *World) ColorAtDepth(ray core.Ray, remaining int) (core.Color, error) {
	hit, ok := w.Intersect(ray).Hit()
	if !ok {
		return core.Black, nil
	}
	shape, err := w.Lookup(hit.ShapeID)
	if err != nil {
		return core.Color{}, err
	}
	state, err := geometry.ComputeState(ray, hit, shape)
	if err != nil {
		return core.Color{}, err
	}
	return w.ShadeHit(state, remaining)
}

// ShadeHit sums the direct lighting from every light and adds the reflected color once
func (w *World) ShadeHit(state geometry.HitState, remaining int) (core.Color, error) {
	shape, err := w.Lookup(state.ShapeID)
	if err != nil {
		return core.Color{}, err
	}
	m := shape.Material()

	surface := core.Black
	for i, light := range w.lights {
		shadowed, err := w.IsShadowed(state.OverPoint, i)
		if err != nil {
			return core.Color{}, err
		}
		c, err := m.Lighting(shape.Inverse(), light, state.Point, state.Eye, state.Normal, shadowed)
		if err != nil {
			return core.Color{}, fmt.Errorf("shade shape %d: %w", shape.ID(), err)
		}
		surface = surface.Add(c)
	}

	reflected, err := w.ReflectedColor(state, remaining)
	if err != nil {
		return core.Color{}, err
	}
	return surface.Add(reflected), nil
}

// IsShadowed reports whether something lies between point and the light at lightIndex
func (w *World) IsShadowed(point core.Tuple, lightIndex int) (bool, error) {
	light, err := w.Light(lightIndex)
	if err != nil {
		return false, err
	}
	direction, distance, err := light.DirectionFrom(point)
	if err != nil {
		return false, fmt.Errorf("shadow ray: %w", err)
	}
	ray, err := core.NewRay(point, direction)
	if err != nil {
		return false, fmt.Errorf("shadow ray: %w", err)
	}
	hit, ok := w.Intersect(ray).Hit()
	return ok && hit.T < distance, nil
}

// ReflectedColor follows the reflection of the ray that produced state. Non-reflective
// surfaces and an exhausted bounce budget return black.
func (w *World) ReflectedColor(state geometry.HitState, remaining int) (core.Color, error) {
	shape, err := w.Lookup(state.ShapeID)
	if err != nil {
		return core.Color{}, err
	}
	reflective := shape.Material().Reflective
	if core.FloatEqual(reflective, 0) || remaining <= 0 {
		return core.Black, nil
	}

	ray, err := core.NewRay(state.OverPoint, state.Reflect)
	if err != nil {
		return core.Color{}, fmt.Errorf("reflection ray: %w", err)
	}
	c, err := w.ColorAtDepth(ray, remaining-1)
	if err != nil {
		return core.Color{}, err
	}
	return c.Multiply(reflective), nil
}
