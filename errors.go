package xor128

import "github.com/pkg/errors"

var (
	// ErrInvalidSeed is returned for seeds the generator cannot be built from:
	// too many values, or a resolved word below 1.
	ErrInvalidSeed = errors.New("xor128: invalid seed")

	// ErrInvalidArgument is returned when a sampling or collection operation
	// receives a bad argument, such as reversed bounds or an unsupported type.
	ErrInvalidArgument = errors.New("xor128: invalid argument")
)
