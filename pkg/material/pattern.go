package material

import (
	"fmt"
	"math"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

// PatternKind selects the color function of a Pattern
type PatternKind int

const (
	PatternStripe PatternKind = iota
	PatternGradient
	PatternRing
	PatternCheckers
)

var patternNames = map[PatternKind]string{
	PatternStripe:   "stripe",
	PatternGradient: "gradient",
	PatternRing:     "ring",
	PatternCheckers: "checkers",
}

func (k PatternKind) String() string {
	if name, ok := patternNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PatternKind(%d)", int(k))
}

// ParsePatternKind maps a scene-file name such as "checkers" to its kind
func ParsePatternKind(name string) (PatternKind, error) {
	for kind, n := range patternNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown pattern %q: %w", name, core.ErrInvalidArgument)
}

// Pattern is a procedural color function evaluated in its own coordinate space.
// Colors are fixed at construction; only the transform may change afterwards.
type Pattern struct {
	kind      PatternKind
	colors    []core.Color
	transform core.Matrix
	inverse   core.Matrix
}

// NewPattern creates a pattern of the given kind. Gradient takes exactly two colors,
// the other kinds one or more, cycled in order.
func NewPattern(kind PatternKind, colors ...core.Color) (*Pattern, error) {
	if _, ok := patternNames[kind]; !ok {
		return nil, fmt.Errorf("pattern kind %d: %w", int(kind), core.ErrInvalidArgument)
	}
	if kind == PatternGradient && len(colors) != 2 {
		return nil, fmt.Errorf("gradient needs exactly 2 colors, got %d: %w", len(colors), core.ErrInvalidArgument)
	}
	if len(colors) == 0 {
		return nil, fmt.Errorf("%s needs at least one color: %w", kind, core.ErrInvalidArgument)
	}
	return &Pattern{
		kind:      kind,
		colors:    append([]core.Color(nil), colors...),
		transform: core.Identity(4),
		inverse:   core.Identity(4),
	}, nil
}

// NewStripe alternates colors along x
func NewStripe(colors ...core.Color) (*Pattern, error) { return NewPattern(PatternStripe, colors...) }

// NewGradient blends from the first color to the second across each unit of x
func NewGradient(from, to core.Color) (*Pattern, error) {
	return NewPattern(PatternGradient, from, to)
}

// NewRing alternates colors in concentric rings around the y axis
func NewRing(colors ...core.Color) (*Pattern, error) { return NewPattern(PatternRing, colors...) }

// NewCheckers alternates colors in unit cubes
func NewCheckers(colors ...core.Color) (*Pattern, error) {
	return NewPattern(PatternCheckers, colors...)
}

// Kind returns the pattern kind
func (p *Pattern) Kind() PatternKind { return p.kind }

// Colors returns a copy of the pattern's colors
func (p *Pattern) Colors() []core.Color { return append([]core.Color(nil), p.colors...) }

// Clone returns an independent copy, so transforms set on it leave p untouched
func (p *Pattern) Clone() *Pattern {
	if p == nil {
		return nil
	}
	return &Pattern{
		kind:      p.kind,
		colors:    append([]core.Color(nil), p.colors...),
		transform: p.transform,
		inverse:   p.inverse,
	}
}

// Transform returns the object-to-pattern placement transform
func (p *Pattern) Transform() core.Matrix { return p.transform }

// SetTransform places the pattern relative to the object it is applied to
func (p *Pattern) SetTransform(m core.Matrix) error {
	if m.Size() != 4 {
		return fmt.Errorf("pattern transform must be 4x4, got %dx%d: %w", m.Size(), m.Size(), core.ErrInvalidArgument)
	}
	inv, err := m.Inverse()
	if err != nil {
		return fmt.Errorf("pattern transform: %w", err)
	}
	p.transform = m
	p.inverse = inv
	return nil
}

// ColorAt evaluates the pattern at a point already in pattern space
func (p *Pattern) ColorAt(point core.Tuple) core.Color {
	n := len(p.colors)
	switch p.kind {
	case PatternGradient:
		fraction := point.X - math.Floor(point.X)
		return p.colors[0].Add(p.colors[1].Subtract(p.colors[0]).Multiply(fraction))
	case PatternRing:
		return p.colors[floorMod(math.Sqrt(point.X*point.X+point.Z*point.Z), n)]
	case PatternCheckers:
		sum := math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)
		return p.colors[floorMod(sum, n)]
	default:
		return p.colors[floorMod(point.X, n)]
	}
}

// ColorAtObject evaluates the pattern at a world-space point on a shape whose
// world-to-object transform is objectInverse
func (p *Pattern) ColorAtObject(objectInverse core.Matrix, worldPoint core.Tuple) core.Color {
	objectPoint := objectInverse.MulTuple(worldPoint)
	return p.ColorAt(p.inverse.MulTuple(objectPoint))
}

// floorMod returns floor(v) mod n in [0, n), so patterns tile the same way on both sides of zero
func floorMod(v float64, n int) int {
	i := int(math.Floor(v)) % n
	if i < 0 {
		i += n
	}
	return i
}
