package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"confsite/internal/delivery/http/helpers"
	"confsite/internal/domain"
)

// writeServiceError maps a service error to its HTTP status and error code.
// Unrecognized errors are logged and answered with 500.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrUnsupportedVariant):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeUnsupportedVariant, err.Error())
	case errors.Is(err, domain.ErrSpeakerProfileRequired):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeSpeakerProfileRequired, "create a speaker profile first")
	case errors.Is(err, domain.ErrSelfInvite):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeSelfInvite, domain.SelfInviteMessage)
	case errors.Is(err, domain.ErrDuplicateInvite):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeDuplicateInvite, domain.DuplicateInviteMessage)
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}
