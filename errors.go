package natalglide

import (
	"errors"
)

var (
	// ErrInvalidDate is returned when a calendar date or clock time does not
	// exist (e.g. 30 February) or is outside the supported range.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidCoordinate is returned when latitude or longitude is missing,
	// non-finite, or out of range.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrAscendantUndefined is returned when the observer's latitude is past
	// the configured polar limit.
	ErrAscendantUndefined = errors.New("ascendant undefined at this latitude")

	// ErrNumericDomain is returned when an intermediate value is NaN or ±Inf.
	// Validated input should never produce it.
	ErrNumericDomain = errors.New("numeric domain error")

	// ErrInvalidRequest is returned when a request document can't be decoded.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNoIngress is returned when a body stays in its sign for the whole
	// search window.
	ErrNoIngress = errors.New("no sign change in window")

	// ErrUnsupportedBody is returned for a body an operation can't handle.
	ErrUnsupportedBody = errors.New("unsupported body")
)

// Stable wire codes for the error taxonomy.
const (
	CodeInvalidDate        = "invalid_date"
	CodeInvalidCoordinate  = "invalid_coordinate"
	CodeAscendantUndefined = "ascendant_undefined"
	CodeNumericDomain      = "numeric_domain_error"
	CodeInvalidRequest     = "invalid_request"
	CodeNoIngress          = "no_ingress"
	CodeUnsupportedBody    = "unsupported_body"
	CodeInternal           = "internal_error"
)

// ErrorCode maps err onto a stable code suitable for a JSON response or a
// CSV column. It returns "" for a nil error.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidDate):
		return CodeInvalidDate
	case errors.Is(err, ErrInvalidCoordinate):
		return CodeInvalidCoordinate
	case errors.Is(err, ErrAscendantUndefined):
		return CodeAscendantUndefined
	case errors.Is(err, ErrNumericDomain):
		return CodeNumericDomain
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrNoIngress):
		return CodeNoIngress
	case errors.Is(err, ErrUnsupportedBody):
		return CodeUnsupportedBody
	default:
		return CodeInternal
	}
}
