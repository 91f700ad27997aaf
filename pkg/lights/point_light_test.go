package lights

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func TestNewPointLight(t *testing.T) {
	light, err := NewPointLight(core.Point(0, 0, 0), core.White)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !light.Position.Equal(core.Point(0, 0, 0)) || light.Intensity != core.White {
		t.Errorf("Unexpected light %+v", light)
	}
	if light.Type() != LightTypePoint {
		t.Errorf("Expected type %q, got %q", LightTypePoint, light.Type())
	}

	if _, err := NewPointLight(core.Vector(0, 1, 0), core.White); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument for vector position, got %v", err)
	}
}

func TestPointLight_DirectionFrom(t *testing.T) {
	light, _ := NewPointLight(core.Point(0, 10, 0), core.White)

	tests := []struct {
		name         string
		point        core.Tuple
		expectedDir  core.Tuple
		expectedDist float64
	}{
		{"below", core.Point(0, 0, 0), core.Vector(0, 1, 0), 10},
		{"above", core.Point(0, 15, 0), core.Vector(0, -1, 0), 5},
		{"diagonal", core.Point(10, 0, 0), core.Vector(-math.Sqrt2/2, math.Sqrt2/2, 0), 10 * math.Sqrt2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, dist, err := light.DirectionFrom(tt.point)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !dir.Equal(tt.expectedDir) {
				t.Errorf("Expected direction %v, got %v", tt.expectedDir, dir)
			}
			if math.Abs(dist-tt.expectedDist) > 1e-9 {
				t.Errorf("Expected distance %v, got %v", tt.expectedDist, dist)
			}
		})
	}

	if _, _, err := light.DirectionFrom(core.Point(0, 10, 0)); !errors.Is(err, core.ErrDivisionByZero) {
		t.Errorf("Expected ErrDivisionByZero at the light position, got %v", err)
	}
}
