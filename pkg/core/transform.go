package core

import (
	"fmt"
	"math"
)

func transform4(cells [16]float64) Matrix {
	return Matrix{size: 4, cells: cells[:]}
}

// Translation moves points by (x, y, z); vectors are unaffected
func Translation(x, y, z float64) Matrix {
	return transform4([16]float64{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
		0, 0, 0, 1,
	})
}

// Scaling scales each axis independently
func Scaling(x, y, z float64) Matrix {
	return transform4([16]float64{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	})
}

// RotationX rotates by radians around the x axis (left-handed)
func RotationX(radians float64) Matrix {
	c, s := math.Cos(radians), math.Sin(radians)
	return transform4([16]float64{
		1, 0, 0, 0,
		0, c, -s, 0,
		0, s, c, 0,
		0, 0, 0, 1,
	})
}

// RotationY rotates by radians around the y axis (left-handed)
func RotationY(radians float64) Matrix {
	c, s := math.Cos(radians), math.Sin(radians)
	return transform4([16]float64{
		c, 0, s, 0,
		0, 1, 0, 0,
		-s, 0, c, 0,
		0, 0, 0, 1,
	})
}

// RotationZ rotates by radians around the z axis (left-handed)
func RotationZ(radians float64) Matrix {
	c, s := math.Cos(radians), math.Sin(radians)
	return transform4([16]float64{
		c, -s, 0, 0,
		s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
}

// Shearing moves each component in proportion to the other two
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	return transform4([16]float64{
		1, xy, xz, 0,
		yx, 1, yz, 0,
		zx, zy, 1, 0,
		0, 0, 0, 1,
	})
}

// Translate applies a translation after m
func (m Matrix) Translate(x, y, z float64) Matrix { return Translation(x, y, z).Mul(m) }

// Scale applies a scaling after m
func (m Matrix) Scale(x, y, z float64) Matrix { return Scaling(x, y, z).Mul(m) }

// RotateX applies an x rotation after m
func (m Matrix) RotateX(radians float64) Matrix { return RotationX(radians).Mul(m) }

// RotateY applies a y rotation after m
func (m Matrix) RotateY(radians float64) Matrix { return RotationY(radians).Mul(m) }

// RotateZ applies a z rotation after m
func (m Matrix) RotateZ(radians float64) Matrix { return RotationZ(radians).Mul(m) }

// Shear applies a shearing after m
func (m Matrix) Shear(xy, xz, yx, yz, zx, zy float64) Matrix {
	return Shearing(xy, xz, yx, yz, zx, zy).Mul(m)
}

// ViewTransform orients the world relative to an eye at from looking towards to.
// up only needs to be roughly upwards; it is re-orthogonalized.
func ViewTransform(from, to, up Tuple) (Matrix, error) {
	if !from.IsPoint() || !to.IsPoint() || !up.IsVector() {
		return Matrix{}, fmt.Errorf("view transform wants (point, point, vector), got (%s, %s, %s): %w",
			from.Kind, to.Kind, up.Kind, ErrInvalidArgument)
	}
	back, err := from.Subtract(to)
	if err != nil {
		return Matrix{}, err
	}
	forward, err := back.Normalize()
	if err != nil {
		return Matrix{}, fmt.Errorf("view transform: from and to coincide: %w", err)
	}
	upn, err := up.Normalize()
	if err != nil {
		return Matrix{}, fmt.Errorf("view transform: up: %w", err)
	}
	side, err := upn.Cross(forward)
	if err != nil {
		return Matrix{}, err
	}
	right, err := side.Normalize()
	if err != nil {
		return Matrix{}, fmt.Errorf("view transform: up is parallel to the line of sight: %w", err)
	}
	trueUp, err := forward.Cross(right)
	if err != nil {
		return Matrix{}, err
	}
	orientation := transform4([16]float64{
		right.X, right.Y, right.Z, 0,
		trueUp.X, trueUp.Y, trueUp.Z, 0,
		forward.X, forward.Y, forward.Z, 0,
		0, 0, 0, 1,
	})
	return orientation.Mul(Translation(-from.X, -from.Y, -from.Z)), nil
}
