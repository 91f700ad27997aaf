package core

import "errors"

// Error taxonomy shared by every package. Call sites wrap these with fmt.Errorf("...: %w")
// so callers can match them with errors.Is.
var (
	// ErrInvalidOperand reports arithmetic between tuples whose kinds have no geometric meaning
	ErrInvalidOperand = errors.New("invalid operand")
	// ErrInvalidArgument reports malformed constructor input (ray kinds, ragged matrices, pattern colors)
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSingularMatrix reports an attempt to invert a matrix whose determinant is zero
	ErrSingularMatrix = errors.New("singular matrix")
	// ErrIndexOutOfRange reports a shape or light lookup miss
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrDivisionByZero reports an explicit scalar division by zero
	ErrDivisionByZero = errors.New("division by zero")
)
