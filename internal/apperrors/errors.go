// Package apperrors defines the typed failures the service layer returns.
// Every expected failure carries a machine-readable code that reaches the
// client verbatim; the HTTP layer maps the kind to a status code.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies a domain failure.
type Kind int

const (
	// KindInternal is any unexpected fault the policies did not anticipate.
	KindInternal Kind = iota
	// KindAuthentication covers missing, malformed, invalid and expired
	// tokens, and tokens bound to unknown users.
	KindAuthentication
	// KindAuthorization covers role and ownership mismatches.
	KindAuthorization
	// KindValidation covers missing required fields and duplicate unique fields.
	KindValidation
	// KindNotFound covers references to absent records.
	KindNotFound
	// KindNotImplemented covers declared but unimplemented operations.
	KindNotImplemented
)

// Error is a typed domain failure with a stable machine-readable code.
type Error struct {
	Kind Kind
	Code string
	// Err is the underlying cause, if any. It is never shown to clients.
	Err error
}

func (e *Error) Error() string {
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to a transport status code.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindNotImplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// Authentication codes. All token failures collapse to CodeAuthTokenInvalid
// past the header-shape checks so a client cannot probe which check failed.
const (
	CodeAuthMissing      = "AUTH_MISSING"
	CodeAuthWrongType    = "AUTH_WRONG_TYPE"
	CodeAuthTokenMissing = "AUTH_TOKEN_MISSING"
	CodeAuthTokenInvalid = "AUTH_TOKEN_INVALID"
	CodeBadCredentials   = "EMAIL_OR_PASSWORD_INCORRECT"
)

// Authorization codes.
const (
	CodeForbidden    = "FORBIDDEN"
	CodeUnauthorized = "UNAUTHORIZED"
)

// Validation codes.
const (
	CodeNameAlreadyUsed         = "NAME_ALREADY_USED"
	CodeEmailAlreadyUsed        = "EMAIL_ALREADY_USED"
	CodeTitleRequired           = "TITLE_REQUIRED"
	CodeContentRequired         = "CONTENT_REQUIRED"
	CodeTitleAlreadyExists      = "TITLE_ALREADY_EXISTS"
	CodeContentAlreadyExists    = "CONTENT_ALREADY_EXISTS"
	CodeTitleAndContentRequired = "TITLE_AND_CONTENT_REQUIRED"
	CodePostIDRequired          = "POSTID_REQUIRED"
)

// NotFound codes.
const (
	CodePostNotFound     = "POST_NOT_FOUND"
	CodeEndpointNotFound = "ENDPOINT_NOT_FOUND"
)

// NotImplemented codes.
const (
	CodeAdminCreationNotImplemented = "ADMIN_VALIDATION_NOT_IMPLEMENTED_YET"
)

// Internal code for wrapped unexpected faults.
const CodeInternal = "INTERNAL_ERROR"

// Authentication returns an authentication failure with the given code.
func Authentication(code string) *Error {
	return &Error{Kind: KindAuthentication, Code: code}
}

// Authorization returns an authorization failure with the given code.
func Authorization(code string) *Error {
	return &Error{Kind: KindAuthorization, Code: code}
}

// Validation returns a validation failure with the given code.
func Validation(code string) *Error {
	return &Error{Kind: KindValidation, Code: code}
}

// NotFound returns a not-found failure with the given code.
func NotFound(code string) *Error {
	return &Error{Kind: KindNotFound, Code: code}
}

// NotImplemented returns a failure for a declared but unimplemented operation.
func NotImplemented(code string) *Error {
	return &Error{Kind: KindNotImplemented, Code: code}
}

// Internal wraps an unexpected fault so it surfaces as a generic internal
// failure without leaking its cause to the client.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Err: err}
}

// From extracts a typed domain error from err. Anything that is not already
// an *Error is treated as an internal fault.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// IsCode reports whether err is a domain error with the given code.
func IsCode(err error, code string) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}
