package core

import (
	"errors"
	"math"
	"testing"
)

func TestTuple_Kinds(t *testing.T) {
	p := Point(4.3, -4.2, 3.1)
	if !p.IsPoint() || p.IsVector() || p.W() != 1 {
		t.Errorf("Expected point with w=1, got %v (w=%v)", p, p.W())
	}
	v := Vector(4.3, -4.2, 3.1)
	if !v.IsVector() || v.IsPoint() || v.W() != 0 {
		t.Errorf("Expected vector with w=0, got %v (w=%v)", v, v.W())
	}
	var zero Tuple
	if !zero.IsVector() {
		t.Errorf("Expected zero Tuple to be a vector")
	}
}

func TestTuple_Add(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Tuple
		expected Tuple
		wantErr  bool
	}{
		{"point plus vector", Point(3, -2, 5), Vector(-2, 3, 1), Point(1, 1, 6), false},
		{"vector plus point", Vector(-2, 3, 1), Point(3, -2, 5), Point(1, 1, 6), false},
		{"vector plus vector", Vector(1, 2, 3), Vector(1, 1, 1), Vector(2, 3, 4), false},
		{"point plus point", Point(1, 2, 3), Point(1, 1, 1), Tuple{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Add(tt.b)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOperand) {
					t.Fatalf("Expected ErrInvalidOperand, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTuple_Subtract(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Tuple
		expected Tuple
		wantErr  bool
	}{
		{"point minus point", Point(3, 2, 1), Point(5, 6, 7), Vector(-2, -4, -6), false},
		{"point minus vector", Point(3, 2, 1), Vector(5, 6, 7), Point(-2, -4, -6), false},
		{"vector minus vector", Vector(3, 2, 1), Vector(5, 6, 7), Vector(-2, -4, -6), false},
		{"vector minus point", Vector(3, 2, 1), Point(5, 6, 7), Tuple{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.Subtract(tt.b)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOperand) {
					t.Fatalf("Expected ErrInvalidOperand, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTuple_ScaleAndDivide(t *testing.T) {
	v := Vector(1, -2, 3)
	if got := v.Multiply(3.5); !got.Equal(Vector(3.5, -7, 10.5)) {
		t.Errorf("Expected scaled vector, got %v", got)
	}
	if got := v.Negate(); !got.Equal(Vector(-1, 2, -3)) {
		t.Errorf("Expected negated vector, got %v", got)
	}
	got, err := v.Divide(2)
	if err != nil || !got.Equal(Vector(0.5, -1, 1.5)) {
		t.Errorf("Expected halved vector, got %v (err %v)", got, err)
	}
	if _, err := v.Divide(0); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Expected ErrDivisionByZero, got %v", err)
	}
}

func TestTuple_VectorOnlyOperations(t *testing.T) {
	p := Point(1, 2, 3)
	v := Vector(1, 2, 3)

	if _, err := p.Dot(v); !errors.Is(err, ErrInvalidOperand) {
		t.Errorf("Dot on point: expected ErrInvalidOperand, got %v", err)
	}
	if _, err := v.Cross(p); !errors.Is(err, ErrInvalidOperand) {
		t.Errorf("Cross with point: expected ErrInvalidOperand, got %v", err)
	}
	if _, err := p.Magnitude(); !errors.Is(err, ErrInvalidOperand) {
		t.Errorf("Magnitude of point: expected ErrInvalidOperand, got %v", err)
	}
	if _, err := p.Normalize(); !errors.Is(err, ErrInvalidOperand) {
		t.Errorf("Normalize point: expected ErrInvalidOperand, got %v", err)
	}
	if _, err := v.Reflect(p); !errors.Is(err, ErrInvalidOperand) {
		t.Errorf("Reflect about point: expected ErrInvalidOperand, got %v", err)
	}
}

func TestTuple_MagnitudeAndNormalize(t *testing.T) {
	mag, err := Vector(-1, -2, -3).Magnitude()
	if err != nil || math.Abs(mag-math.Sqrt(14)) > 1e-9 {
		t.Errorf("Expected magnitude sqrt(14), got %v (err %v)", mag, err)
	}

	n, err := Vector(4, 0, 0).Normalize()
	if err != nil || !n.Equal(Vector(1, 0, 0)) {
		t.Errorf("Expected (1,0,0), got %v (err %v)", n, err)
	}

	n, err = Vector(1, 2, 3).Normalize()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !n.Equal(Vector(0.26726, 0.53452, 0.80178)) {
		t.Errorf("Unexpected normalized vector %v", n)
	}
	if mag, _ := n.Magnitude(); !FloatEqual(mag, 1) {
		t.Errorf("Expected unit magnitude, got %v", mag)
	}

	if _, err := Vector(0, 0, 0).Normalize(); !errors.Is(err, ErrDivisionByZero) {
		t.Errorf("Expected ErrDivisionByZero for zero vector, got %v", err)
	}
}

func TestTuple_DotAndCross(t *testing.T) {
	a := Vector(1, 2, 3)
	b := Vector(2, 3, 4)

	d, err := a.Dot(b)
	if err != nil || d != 20 {
		t.Errorf("Expected dot 20, got %v (err %v)", d, err)
	}

	c, err := a.Cross(b)
	if err != nil || !c.Equal(Vector(-1, 2, -1)) {
		t.Errorf("Expected a x b = (-1,2,-1), got %v (err %v)", c, err)
	}
	c, err = b.Cross(a)
	if err != nil || !c.Equal(Vector(1, -2, 1)) {
		t.Errorf("Expected b x a = (1,-2,1), got %v (err %v)", c, err)
	}
}

func TestTuple_Reflect(t *testing.T) {
	s := math.Sqrt2 / 2
	tests := []struct {
		name     string
		in       Tuple
		normal   Tuple
		expected Tuple
	}{
		{"45 degrees", Vector(1, -1, 0), Vector(0, 1, 0), Vector(1, 1, 0)},
		{"slanted surface", Vector(0, -1, 0), Vector(s, s, 0), Vector(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Reflect(tt.normal)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTuple_ReflectionLaw(t *testing.T) {
	normals := []Tuple{Vector(0, 1, 0), Vector(1, 1, 0), Vector(-0.3, 0.2, 0.9)}
	incoming := []Tuple{Vector(1, -1, 0), Vector(0.2, -0.7, 0.4), Vector(-3, 1, 2)}

	for _, rawNormal := range normals {
		n, err := rawNormal.Normalize()
		if err != nil {
			t.Fatalf("Normalize: %v", err)
		}
		for _, v := range incoming {
			r, err := v.Reflect(n)
			if err != nil {
				t.Fatalf("Reflect: %v", err)
			}

			// Angle of incidence equals angle of reflection
			din, _ := v.Dot(n)
			dout, _ := r.Dot(n)
			if !FloatEqual(din, -dout) {
				t.Errorf("Reflecting %v about %v: incidence %v, reflection %v", v, n, din, dout)
			}
			magIn, _ := v.Magnitude()
			magOut, _ := r.Magnitude()
			if !FloatEqual(magIn, magOut) {
				t.Errorf("Reflection changed length: %v -> %v", magIn, magOut)
			}

			// Reflecting again, about n or -n, restores the original vector
			back, _ := r.Reflect(n)
			if !back.Equal(v) {
				t.Errorf("Double reflection about n: expected %v, got %v", v, back)
			}
			back, _ = r.Reflect(n.Negate())
			if !back.Equal(v) {
				t.Errorf("Double reflection about -n: expected %v, got %v", v, back)
			}
		}
	}
}

func TestTuple_Equal(t *testing.T) {
	if !Point(1, 2, 3).Equal(Point(1.00001, 2, 3)) {
		t.Errorf("Expected points within epsilon to be equal")
	}
	if Point(1, 2, 3).Equal(Point(1.001, 2, 3)) {
		t.Errorf("Expected points outside epsilon to differ")
	}
	if Point(1, 2, 3).Equal(Vector(1, 2, 3)) {
		t.Errorf("Expected point and vector to differ")
	}
}
