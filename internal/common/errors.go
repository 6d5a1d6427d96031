// Package common defines sentinel errors and small helpers shared by the
// server, the REST layer and the CLI client. Callers should use errors.Is to
// match these values; services wrap them with fmt.Errorf("%w: ...") to add a
// human-readable detail.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Identity errors.
	ErrorUnauthenticated   = errors.New("unauthenticated")
	ErrorDuplicateName     = errors.New("duplicate name")
	ErrorInvalidCredential = errors.New("invalid credential")

	// Authorization errors: the target exists but the actor may not touch it.
	ErrorForbidden = errors.New("forbidden")

	// Argument errors (missing fields, bounds).
	ErrorValidation = errors.New("validation error")

	// Service-level errors (storage failures surfaced to callers).
	ErrorInternal = errors.New("internal error")

	// Token errors. The guard collapses both into ErrorUnauthenticated.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Kind returns a short, stable identifier for the sentinel wrapped in err.
// It is used as the "kind" field of error responses.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrorNotFound):
		return "not_found"
	case errors.Is(err, ErrorForbidden):
		return "forbidden"
	case errors.Is(err, ErrorDuplicateName):
		return "duplicate_name"
	case errors.Is(err, ErrorInvalidCredential):
		return "invalid_credential"
	case errors.Is(err, ErrorUnauthenticated),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired):
		return "unauthenticated"
	case errors.Is(err, ErrorValidation):
		return "validation"
	default:
		return "internal"
	}
}
