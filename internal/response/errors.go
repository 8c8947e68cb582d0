package response

import "net/http"

// Business error codes.
const (
	// Internal failure (database, filesystem).
	Fail ResponseCode = 0
	// Request body / path parameter could not be parsed.
	ParseError ResponseCode = 1
	// Parsed but semantically invalid input (bad role, disallowed file).
	InvalidInput ResponseCode = 2
	// Missing, malformed or expired credentials.
	Unauthorized ResponseCode = 3
	// Authenticated but not permitted (role or ownership).
	Forbidden ResponseCode = 4
	// Target row does not exist.
	NotFound ResponseCode = 5
	// Unique constraint conflict (duplicate email).
	Conflict ResponseCode = 6
)

// HTTPStatus maps a business code to the HTTP status it is served with.
// Permission failures are always 403 and 404 is reserved for true absence.
func HTTPStatus(code ResponseCode) int {
	switch code {
	case Success:
		return http.StatusOK
	case ParseError, InvalidInput, Conflict:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type BusinessError struct {
	Code ResponseCode
	Msg  string
	Err  error
}

func (e *BusinessError) Error() string {
	return e.Msg
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

type ErrorOption func(*BusinessError)

func WithErrorCode(code ResponseCode) ErrorOption {
	return func(be *BusinessError) {
		be.Code = code
	}
}

func WithErrorMessage(msg string) ErrorOption {
	return func(be *BusinessError) {
		be.Msg = msg
	}
}

func WithError(err error) ErrorOption {
	return func(be *BusinessError) {
		be.Err = err
	}
}

func NewBusinessError(opts ...ErrorOption) *BusinessError {
	err := &BusinessError{
		Code: Fail,
		Msg:  "business error",
		Err:  nil,
	}
	for _, opt := range opts {
		opt(err)
	}
	return err
}
