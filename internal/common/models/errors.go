package models

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthenticated      = errors.New("authentication required")
	ErrMissingTenantID      = errors.New("missing tenant id")
	ErrInvalidTenantID      = errors.New("invalid tenant id")
	ErrNonPositiveTenantID  = errors.New("tenant id must be positive")
	ErrTenantAccessDenied   = errors.New("no access to this tenant")
	ErrPermissionDenied     = errors.New("insufficient permission")
	ErrMalformedPermission  = errors.New("malformed permission string")
	ErrMalformedRolePayload = errors.New("malformed role payload")
	ErrResolutionFault      = errors.New("internal server error")
)

// StatusFor maps an engine error onto the status code and user-facing message
// it is answered with. Anything unrecognised is an opaque 500.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, ErrUnauthenticated.Error()
	case errors.Is(err, ErrMissingTenantID):
		return http.StatusBadRequest, ErrMissingTenantID.Error()
	case errors.Is(err, ErrInvalidTenantID):
		return http.StatusBadRequest, ErrInvalidTenantID.Error()
	case errors.Is(err, ErrNonPositiveTenantID):
		return http.StatusBadRequest, ErrNonPositiveTenantID.Error()
	case errors.Is(err, ErrTenantAccessDenied):
		return http.StatusForbidden, ErrTenantAccessDenied.Error()
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden, ErrPermissionDenied.Error()
	default:
		return http.StatusInternalServerError, ErrResolutionFault.Error()
	}
}
