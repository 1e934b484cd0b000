package kdtree

import "github.com/pkg/errors"

// ErrContractViolation is the base sentinel for mis-specified input: a
// BuildOptions value that fails validation, a negative object count, an
// extentInBox callback reporting no overlap, a zero ray direction, or a
// Traverse call with no visitor. AABBs and stop distances are not checked
// for well-formedness. Wrap with
// errors.Wrapf so errors.Is(err, ErrContractViolation) still matches.
var ErrContractViolation = errors.New("kdtree: contract violation")

// ErrResourceExhausted is the base sentinel for construction running out of
// room: the extent-triple region overflowed, or an allocation failed. The
// original C++ aborted the process on these (MemoryError/MemoryError2);
// BuildTree instead returns this error so library callers stay in control.
var ErrResourceExhausted = errors.New("kdtree: resource exhausted")

func contractErr(format string, args ...interface{}) error {
	return errors.Wrapf(ErrContractViolation, format, args...)
}

func resourceErr(format string, args ...interface{}) error {
	return errors.Wrapf(ErrResourceExhausted, format, args...)
}
