package core

import (
	"errors"
	"testing"
)

func TestNewRay(t *testing.T) {
	r, err := NewRay(Point(1, 2, 3), Vector(4, 5, 6))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !r.Origin.Equal(Point(1, 2, 3)) || !r.Direction.Equal(Vector(4, 5, 6)) {
		t.Errorf("Unexpected ray %v", r)
	}

	if _, err := NewRay(Vector(1, 2, 3), Vector(4, 5, 6)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Vector origin: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := NewRay(Point(1, 2, 3), Point(4, 5, 6)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Point direction: expected ErrInvalidArgument, got %v", err)
	}
}

func TestRay_Position(t *testing.T) {
	r, _ := NewRay(Point(2, 3, 4), Vector(1, 0, 0))

	tests := []struct {
		t        float64
		expected Tuple
	}{
		{0, Point(2, 3, 4)},
		{1, Point(3, 3, 4)},
		{-1, Point(1, 3, 4)},
		{2.5, Point(4.5, 3, 4)},
	}

	for _, tt := range tests {
		if got := r.Position(tt.t); !got.Equal(tt.expected) {
			t.Errorf("Position(%v): expected %v, got %v", tt.t, tt.expected, got)
		}
	}
}

func TestRay_Transform(t *testing.T) {
	r, _ := NewRay(Point(1, 2, 3), Vector(0, 1, 0))

	moved := r.Transform(Translation(3, 4, 5))
	if !moved.Origin.Equal(Point(4, 6, 8)) || !moved.Direction.Equal(Vector(0, 1, 0)) {
		t.Errorf("Translated ray: got %v", moved)
	}

	scaled := r.Transform(Scaling(2, 3, 4))
	if !scaled.Origin.Equal(Point(2, 6, 12)) || !scaled.Direction.Equal(Vector(0, 3, 0)) {
		t.Errorf("Scaled ray: got %v", scaled)
	}

	if !r.Origin.Equal(Point(1, 2, 3)) {
		t.Errorf("Transform mutated the original ray")
	}
}
