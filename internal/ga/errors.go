package ga

import "errors"

var (
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrInvalidRange      = errors.New("invalid start or end index")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNoFitness         = errors.New("chromosome has no fitness function or assigned fitness")
	ErrLengthMismatch    = errors.New("chromosome lengths differ")
	ErrCapacityExceeded  = errors.New("population size limit reached")
	ErrEmptyPopulation   = errors.New("population is empty")
	ErrUnsupportedMethod = errors.New("method not supported")
	ErrNotImplemented    = errors.New("not implemented")
)
