package rest

import (
	"errors"
	"net/http"

	"timetracking-service/core"
	"timetracking-service/pkg/res"
)

func WriteErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidContext):
		res.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, core.ErrTimesheetNotOwned),
		errors.Is(err, core.ErrTimesheetSelfReview):
		res.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, core.ErrCategoryNotFound),
		errors.Is(err, core.ErrSessionNotFound),
		errors.Is(err, core.ErrEntryNotFound),
		errors.Is(err, core.ErrTimesheetNotFound):
		res.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, core.ErrCategoryNameTaken),
		errors.Is(err, core.ErrTimesheetExists),
		errors.Is(err, core.ErrSessionNotActive),
		errors.Is(err, core.ErrSessionNotRunning),
		errors.Is(err, core.ErrSessionNotPaused),
		errors.Is(err, core.ErrEntryLocked),
		errors.Is(err, core.ErrTimesheetNotDraft),
		errors.Is(err, core.ErrTimesheetNotDeletable),
		errors.Is(err, core.ErrTimesheetNotSubmitted):
		res.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, core.ErrCategoryInvalidArgs),
		errors.Is(err, core.ErrSessionInvalidArgs),
		errors.Is(err, core.ErrEntryInvalidArgs),
		errors.Is(err, core.ErrTimesheetInvalidArgs):
		res.Error(w, err.Error(), http.StatusBadRequest)
	default:
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}
