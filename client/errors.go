package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// HTTP status failures.
	ErrNotFound              = errors.New("not found")
	ErrAuthorizationRequired = errors.New("authorization required")
	ErrForbidden             = errors.New("forbidden")
	ErrBadRequest            = errors.New("bad request")
	ErrGatewayFailure        = errors.New("payment gateway failure")
	ErrGatewayConnection     = errors.New("payment gateway connection error")
	ErrUnexpectedResponse    = errors.New("unexpected response")

	// Network failures.
	ErrTimeout    = errors.New("request timed out")
	ErrConnection = errors.New("connection error")

	// Caller / setup mistakes, raised before anything is sent.
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConfiguration   = errors.New("configuration error")
)

// Error is a failed exchange with the API. Kind is one of the sentinel
// errors above; Response and Body are set whenever the server answered.
type Error struct {
	Kind       error
	Message    string
	StatusCode int
	Body       []byte
	Response   *http.Response
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Message != "":
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s (HTTP %d)", e.Kind, e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() error { return e.Kind }

var statusKinds = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrAuthorizationRequired,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusPreconditionFailed:  ErrBadRequest,
	http.StatusUnprocessableEntity: ErrGatewayFailure,
	http.StatusBadGateway:          ErrGatewayConnection,
}

// kindForStatus maps a non-2xx status to its sentinel.
func kindForStatus(status int) error {
	if kind, ok := statusKinds[status]; ok {
		return kind
	}
	return ErrUnexpectedResponse
}

// kindLabel is the metrics label for an outcome.
func kindLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAuthorizationRequired):
		return "auth_required"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrBadRequest):
		return "bad_request"
	case errors.Is(err, ErrGatewayFailure):
		return "gateway_failure"
	case errors.Is(err, ErrGatewayConnection):
		return "gateway_connection"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, ErrConnection):
		return "connection"
	default:
		return "unexpected"
	}
}
