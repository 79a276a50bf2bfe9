package sparseknn

import (
	"errors"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidEpsilon is returned when the tie tolerance is not positive.
	ErrInvalidEpsilon = errors.New("epsilon must be positive")

	// ErrInvalidWorkers is returned when the worker count is negative.
	ErrInvalidWorkers = errors.New("worker count must not be negative")
)
