package core

import "math"

// Epsilon is the absolute tolerance used for every geometric comparison
const Epsilon = 1e-4

// FloatEqual reports whether a and b differ by less than Epsilon
func FloatEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// FloatLess reports whether a is smaller than b and not FloatEqual to it
func FloatLess(a, b float64) bool {
	return a < b && !FloatEqual(a, b)
}
