package canvas

import "fmt"

// AuthError covers the cases where a call could not be authenticated:
// a bearer-required endpoint invoked without a token, or a failed
// authorization-code exchange. StatusCode and Body are zero/empty when the
// call never reached the wire.
type AuthError struct {
	Reason     string
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("canvas auth: %s (status=%d)", e.Reason, e.StatusCode)
	}
	return "canvas auth: " + e.Reason
}

// APIError is any non-2xx response from Canvas. Body carries the upstream
// response verbatim so callers can inspect or relay it.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("canvas api: status=%d", e.StatusCode)
}

// TransportError wraps a network-level failure from the underlying HTTP
// transport, unchanged.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "canvas transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
