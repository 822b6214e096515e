package response

import pkgErrors "calendar-assistant/pkg/errors"

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"

	CodeServerFailure = pkgErrors.CodeServerFailure
	CodeUnauthorized  = pkgErrors.CodeUnauthorized
	CodeForbidden     = "FORBIDDEN"
)
