package shapelet

import "errors"

// ErrInvalidArgument indicates mismatched dimensions, an invalid order or
// basis type, or a non-positive-definite ellipse core. Operations validate
// their arguments before mutating anything, so a wrapped ErrInvalidArgument
// always leaves the receiver unchanged.
var ErrInvalidArgument = errors.New("shapelet: invalid argument")

// ErrDegenerate indicates a numeric degeneracy, such as normalizing a
// function or basis whose integral is not positive. It is distinct from
// ErrInvalidArgument: the inputs are well-formed but the requested
// rescaling has no finite solution.
var ErrDegenerate = errors.New("shapelet: numeric degeneracy")
