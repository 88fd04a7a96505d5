package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"eduweb/internal/domain"
	"eduweb/internal/httputil"
)

// handleError maps domain errors onto RFC 7807 responses. Typed errors carry
// their own status; a BlockedError additionally surfaces the dependent count
// and a ConflictError the existing row's id, so clients can react without
// parsing the detail string.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var blocked *domain.BlockedError
	if errors.As(err, &blocked) {
		httputil.RespondErrorWithExtras(w, blocked.StatusCode(), blocked.Error(), map[string]interface{}{
			"dependent": blocked.Dependent,
			"count":     blocked.Count,
		})
		return
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		httputil.RespondErrorWithExtras(w, conflict.StatusCode(), conflict.Error(), map[string]interface{}{
			"resource_type": conflict.ResourceType,
			"existing_id":   conflict.ExistingID,
		})
		return
	}

	var cascade *domain.CascadeError
	if errors.As(err, &cascade) {
		logger.Error("cascade delete failed",
			"entity", cascade.Entity,
			"id", cascade.ID,
			"step", cascade.Step,
			"error", cascade.Err,
		)
		httputil.RespondErrorWithExtras(w, cascade.StatusCode(),
			"deletion did not complete; retry the same request", map[string]interface{}{
				"entity": cascade.Entity,
				"step":   cascade.Step,
			})
		return
	}

	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	default:
		logger.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
