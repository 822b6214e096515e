package middleware

import (
	"net/http"

	pkgErrors "calendar-assistant/pkg/errors"
)

var (
	errUnauthorized    = pkgErrors.NewHTTPError(http.StatusUnauthorized, pkgErrors.CodeUnauthorized, "Authentication required")
	errCSRFInvalid     = pkgErrors.NewHTTPError(http.StatusForbidden, pkgErrors.CodeCSRFInvalid, "Missing or invalid CSRF token")
	errPayloadTooLarge = pkgErrors.NewHTTPError(http.StatusRequestEntityTooLarge, pkgErrors.CodePayloadTooLarge, "Request body too large")
	errRateLimited     = pkgErrors.NewHTTPError(http.StatusTooManyRequests, pkgErrors.CodeRateLimited, "Too many requests")
	errServerFailure   = pkgErrors.NewHTTPError(http.StatusInternalServerError, pkgErrors.CodeServerFailure, "Something went wrong")
)

// PayloadTooLarge is the error handlers return when a bounded body overflows.
func PayloadTooLarge() *pkgErrors.HTTPError {
	return errPayloadTooLarge
}
