package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"timetracking-service/adapters/rest"
	"timetracking-service/core"
	"timetracking-service/pkg/res"
)

func NewStartTrackingHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.StartTrackingIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		categoryID, err := uuid.Parse(in.CategoryID)
		if err != nil {
			res.Error(w, "invalid category_id", http.StatusBadRequest)
			return
		}
		projectID, ok := optUUID(in.ProjectID)
		if !ok {
			res.Error(w, "invalid project_id", http.StatusBadRequest)
			return
		}
		taskID, ok := optUUID(in.TaskID)
		if !ok {
			res.Error(w, "invalid task_id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		session, err := svc.StartTracking(ctx, rest.IdentityFrom(r.Context()), core.StartTrackingInput{
			CategoryID:  categoryID,
			ProjectID:   derefNonNil(projectID),
			TaskID:      derefNonNil(taskID),
			Description: in.Description,
		})
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, session, http.StatusCreated)
	}
}

func NewStopTrackingHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var in rest.StopTrackingIn
		if err := decodeOptionalBody(r, &in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		session, entry, err := svc.StopTracking(ctx, rest.IdentityFrom(r.Context()), id, core.StopTrackingInput{
			Description:     in.Description,
			CreateTimeEntry: in.CreateTimeEntry,
		})
		if err != nil {
			rest.WriteErr(w, err)
			return
		}

		out := rest.StopTrackingOut{Session: session}
		if entry != nil {
			out.Entry = entry
		}
		res.Json(w, out, http.StatusOK)
	}
}

func NewPauseTrackingHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		session, err := svc.PauseTracking(ctx, rest.IdentityFrom(r.Context()), id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, session, http.StatusOK)
	}
}

func NewResumeTrackingHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		session, err := svc.ResumeTracking(ctx, rest.IdentityFrom(r.Context()), id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, session, http.StatusOK)
	}
}

func NewUpdateTrackingHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var in rest.UpdateTrackingIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var patch core.SessionPatch
		if in.CategoryID != nil {
			categoryID, err := uuid.Parse(*in.CategoryID)
			if err != nil {
				res.Error(w, "invalid category_id", http.StatusBadRequest)
				return
			}
			patch.CategoryID = &categoryID
		}
		projectID, ok := optUUID(in.ProjectID)
		if !ok {
			res.Error(w, "invalid project_id", http.StatusBadRequest)
			return
		}
		patch.ProjectID = projectID
		taskID, ok := optUUID(in.TaskID)
		if !ok {
			res.Error(w, "invalid task_id", http.StatusBadRequest)
			return
		}
		patch.TaskID = taskID
		patch.Description = in.Description

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		session, err := svc.UpdateTracking(ctx, rest.IdentityFrom(r.Context()), id, patch)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, session, http.StatusOK)
	}
}

func NewActiveTrackingHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		session, err := svc.GetActiveTracking(ctx, rest.IdentityFrom(r.Context()))
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, session, http.StatusOK)
	}
}

func NewGetTrackingHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		session, err := svc.GetTrackingSession(ctx, rest.IdentityFrom(r.Context()), id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, session, http.StatusOK)
	}
}

func NewListTrackingHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := svc.ListTrackingSessions(ctx, rest.IdentityFrom(r.Context()))
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, out, http.StatusOK)
	}
}

// derefNonNil drops the uuid.Nil clear marker: on create there is nothing to
// clear, absent and empty mean the same.
func derefNonNil(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	return id
}
