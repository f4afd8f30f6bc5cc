package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrServerUnreachable wraps transport-level failures: DNS, refused
	// connections, timeouts. The server never produced a response, so the
	// caller may fall back to the offline path.
	ErrServerUnreachable = errors.New("server unreachable")
)
