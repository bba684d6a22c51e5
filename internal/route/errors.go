package route

import "errors"

var (
	// ErrInvalidRouteSpec reports a route declaration that cannot be compiled.
	ErrInvalidRouteSpec = errors.New("invalid route specification")

	// ErrUnknownRoute reports an operation on a route name that was never registered.
	ErrUnknownRoute = errors.New("unknown route")
)
