package fixed

import "errors"

var (
	// ErrConfig reports an infeasible fixed-point layout: a sample width
	// beyond the working format or more guard bits than the layout has
	// headroom for.
	ErrConfig = errors.New("fixed: infeasible fixed-point layout")
	// ErrInvalidParameter reports a non-positive or non-finite filter
	// parameter.
	ErrInvalidParameter = errors.New("fixed: invalid filter parameter")
)
