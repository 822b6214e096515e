package http

import (
	"errors"
	"net/http"

	"calendar-assistant/internal/calendar"
	"calendar-assistant/internal/calendar/validator"
	pkgErrors "calendar-assistant/pkg/errors"
)

var (
	errUnauthorized   = pkgErrors.NewHTTPError(http.StatusUnauthorized, pkgErrors.CodeUnauthorized, "Authentication required")
	errInvalidInput   = pkgErrors.NewHTTPError(http.StatusBadRequest, pkgErrors.CodeInvalidInput, "Invalid input")
	errModelFailure   = pkgErrors.NewHTTPError(http.StatusBadGateway, pkgErrors.CodeModelFailure, "The assistant is unavailable, please try again")
	errParseFailure   = pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, pkgErrors.CodeParseFailure, "The assistant's reply could not be understood, please rephrase")
	errNotFound       = pkgErrors.NewHTTPError(http.StatusNotFound, pkgErrors.CodeNotFound, "Event not found")
	errStorageFailure = pkgErrors.NewHTTPError(http.StatusInternalServerError, pkgErrors.CodeStorageFailure, "Could not save your calendar, please try again")
	errServerFailure  = pkgErrors.NewHTTPError(http.StatusInternalServerError, pkgErrors.CodeServerFailure, "Something went wrong")
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
// Backend failures carry only the request id. Unknown errors are server failures.
func (h *handler) mapError(err error, requestID string) error {
	if httpErr, ok := pkgErrors.AsHTTPError(err); ok {
		return httpErr
	}

	var verr *validator.Error
	switch {
	case errors.As(err, &verr):
		e := errInvalidInput.WithDetails(map[string]any{"field": verr.Field, "rule": verr.Rule})
		e.Message = verr.Message
		return e
	case errors.Is(err, calendar.ErrInvalidInput):
		return errInvalidInput
	case errors.Is(err, calendar.ErrUnauthorized):
		return errUnauthorized
	case errors.Is(err, calendar.ErrNotFound):
		return errNotFound
	case errors.Is(err, calendar.ErrParseFailure):
		return errParseFailure
	case errors.Is(err, calendar.ErrModelFailure):
		return errModelFailure.WithDetails(map[string]any{"requestId": requestID})
	case errors.Is(err, calendar.ErrStorageFailure):
		return errStorageFailure.WithDetails(map[string]any{"requestId": requestID})
	default:
		return errServerFailure.WithDetails(map[string]any{"requestId": requestID})
	}
}
