package gateway

import (
	"errors"
	"fmt"
)

// ErrUnauthorized indicates the session token is missing, expired or invalid.
var ErrUnauthorized = errors.New("gateway: unauthorized (session expired or invalid)")

// RequestError is a decoded non-2xx response from the gateway. Detail is the
// server's {"detail": ...} message when the body parses, otherwise the HTTP
// status text.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("gateway: %d %s", e.Status, e.Detail)
}

// Is lets errors.Is(err, ErrUnauthorized) match 401 responses without
// callers digging into the status code.
func (e *RequestError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == 401
}

// TransportError is a network-level failure: the request never produced a
// response at all.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("gateway: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ValidationError is client-side input rejected before any network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
