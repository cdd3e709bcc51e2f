package trajectory

import "errors"

var (
	// ErrInvalidArgument is returned for negative step counts and unknown direction ids.
	ErrInvalidArgument = errors.New("trajectory: invalid argument")

	// ErrIndexOutOfRange is returned when a cell index is outside [0, Len()).
	ErrIndexOutOfRange = errors.New("trajectory: index out of range")

	// ErrDeadlock is returned when no direction satisfies the walk constraints
	// and the generator is configured to truncate instead of relaxing.
	ErrDeadlock = errors.New("trajectory: generation deadlock")
)
