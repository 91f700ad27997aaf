package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-phong-raytracer/pkg/core"
)

func TestComputeState_Outside(t *testing.T) {
	s := NewSphere(NewIDAllocator())
	r := mustRay(t, core.Point(0, 0, -5), core.Vector(0, 0, 1))

	state, err := ComputeState(r, Intersection{T: 4, ShapeID: s.ID()}, s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if state.T != 4 || state.ShapeID != s.ID() {
		t.Errorf("Unexpected hit identity %+v", state)
	}
	if !state.Point.Equal(core.Point(0, 0, -1)) {
		t.Errorf("Expected point (0,0,-1), got %v", state.Point)
	}
	if !state.Eye.Equal(core.Vector(0, 0, -1)) {
		t.Errorf("Expected eye (0,0,-1), got %v", state.Eye)
	}
	if !state.Normal.Equal(core.Vector(0, 0, -1)) {
		t.Errorf("Expected normal (0,0,-1), got %v", state.Normal)
	}
	if state.Inside {
		t.Errorf("Expected outside hit")
	}
}

func TestComputeState_Inside(t *testing.T) {
	s := NewSphere(NewIDAllocator())
	r := mustRay(t, core.Point(0, 0, 0), core.Vector(0, 0, 1))

	state, err := ComputeState(r, Intersection{T: 1, ShapeID: s.ID()}, s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !state.Point.Equal(core.Point(0, 0, 1)) {
		t.Errorf("Expected point (0,0,1), got %v", state.Point)
	}
	if !state.Eye.Equal(core.Vector(0, 0, -1)) {
		t.Errorf("Expected eye (0,0,-1), got %v", state.Eye)
	}
	if !state.Inside {
		t.Errorf("Expected inside hit")
	}
	// Inverted so it faces the eye
	if !state.Normal.Equal(core.Vector(0, 0, -1)) {
		t.Errorf("Expected flipped normal (0,0,-1), got %v", state.Normal)
	}
}

func TestComputeState_OverPoint(t *testing.T) {
	s := NewSphere(NewIDAllocator())
	if err := s.SetTransform(core.Translation(0, 0, 1)); err != nil {
		t.Fatalf("SetTransform: %v", err)
	}
	r := mustRay(t, core.Point(0, 0, -5), core.Vector(0, 0, 1))

	state, err := ComputeState(r, Intersection{T: 5, ShapeID: s.ID()}, s)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if state.OverPoint.Z >= -core.Epsilon/2 {
		t.Errorf("Expected over point above the surface, got z=%v", state.OverPoint.Z)
	}
	if state.Point.Z <= state.OverPoint.Z {
		t.Errorf("Expected point z %v > over point z %v", state.Point.Z, state.OverPoint.Z)
	}
	if math.Abs((state.Point.Z-state.OverPoint.Z)-ShadowBias) > 1e-9 {
		t.Errorf("Expected bias %v, got %v", ShadowBias, state.Point.Z-state.OverPoint.Z)
	}
	if !state.OverPoint.IsPoint() {
		t.Errorf("Expected over point to be a point, got %v", state.OverPoint)
	}
}

func TestComputeState_Reflect(t *testing.T) {
	p := NewPlane(NewIDAllocator())
	s2 := math.Sqrt2 / 2
	r := mustRay(t, core.Point(0, 1, -1), core.Vector(0, -s2, s2))

	state, err := ComputeState(r, Intersection{T: math.Sqrt2, ShapeID: p.ID()}, p)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !state.Reflect.Equal(core.Vector(0, s2, s2)) {
		t.Errorf("Expected reflect (0,%v,%v), got %v", s2, s2, state.Reflect)
	}
}

func TestComputeState_WrongShape(t *testing.T) {
	ids := NewIDAllocator()
	a := NewSphere(ids)
	b := NewSphere(ids)
	r := mustRay(t, core.Point(0, 0, -5), core.Vector(0, 0, 1))

	if _, err := ComputeState(r, Intersection{T: 4, ShapeID: a.ID()}, b); !errors.Is(err, core.ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}
