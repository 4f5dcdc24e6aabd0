package server

import (
	"errors"
	"net/http"
)

// Error kinds surfaced to clients alongside the human-readable message.
const (
	kindValidation = "validation_error"
	kindPermission = "permission_denied"
	kindNotFound   = "not_found"
	kindConflict   = "conflict"
	kindUpstream   = "upstream_failure"
	kindInternal   = "internal_error"
)

type engineError struct {
	kind    string
	message string
}

func (e *engineError) Error() string { return e.message }

func validationError(message string) error {
	return &engineError{kind: kindValidation, message: message}
}

func permissionError(message string) error {
	return &engineError{kind: kindPermission, message: message}
}

func notFoundError(message string) error {
	return &engineError{kind: kindNotFound, message: message}
}

func conflictError(message string) error {
	return &engineError{kind: kindConflict, message: message}
}

func upstreamError(message string) error {
	return &engineError{kind: kindUpstream, message: message}
}

func internalError(message string) error {
	return &engineError{kind: kindInternal, message: message}
}

var errGameNotFound = notFoundError("game not found")

func errorKind(err error) string {
	var e *engineError
	if errors.As(err, &e) {
		return e.kind
	}
	return kindInternal
}

func errorStatus(err error) int {
	switch errorKind(err) {
	case kindValidation, kindConflict:
		return http.StatusBadRequest
	case kindPermission:
		return http.StatusForbidden
	case kindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
