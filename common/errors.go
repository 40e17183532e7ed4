package common

import "errors"

var (
	ErrorInvalidValue = errors.New("invalid value")

	// histogram rebinning
	ErrorInvalidBinCount  = errors.New("hist: bin count out of range")
	ErrorEmptySampleSet   = errors.New("hist: sample set is empty")
	ErrorDegenerateRange  = errors.New("hist: zero-width sample range")
	ErrorBinningInvariant = errors.New("hist: sample not assignable to any bin")

	// kernel expressions
	ErrorUnsupportedExpression   = errors.New("gp: unsupported expression")
	ErrorUnknownKernelIdentifier = errors.New("gp: unknown kernel identifier")
	ErrorUnknownKernelType       = errors.New("gp: unknown kernel type")
	ErrorInvalidExponent         = errors.New("gp: exponent must be a plain number")
	ErrorUnsupportedOperation    = errors.New("gp: unsupported operation")
)
