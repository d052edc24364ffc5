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

func entryInputFromPayload(in rest.EntryIn) (core.EntryInput, string) {
	categoryID, err := uuid.Parse(in.CategoryID)
	if err != nil {
		return core.EntryInput{}, "invalid category_id"
	}
	projectID, ok := optUUID(in.ProjectID)
	if !ok {
		return core.EntryInput{}, "invalid project_id"
	}
	taskID, ok := optUUID(in.TaskID)
	if !ok {
		return core.EntryInput{}, "invalid task_id"
	}
	timesheetID, ok := optUUID(in.TimesheetID)
	if !ok {
		return core.EntryInput{}, "invalid timesheet_id"
	}

	return core.EntryInput{
		ProjectID:       derefNonNil(projectID),
		TaskID:          derefNonNil(taskID),
		CategoryID:      categoryID,
		TimesheetID:     derefNonNil(timesheetID),
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		DurationMinutes: in.DurationMinutes,
		Description:     in.Description,
		EntryType:       core.EntryType(in.EntryType),
		Billable:        core.BillableStatus(in.Billable),
		HourlyRate:      in.HourlyRate,
	}, ""
}

func NewCreateEntryHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.EntryIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		input, msg := entryInputFromPayload(in)
		if msg != "" {
			res.Error(w, msg, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		entry, err := svc.CreateEntry(ctx, rest.IdentityFrom(r.Context()), input)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, entry, http.StatusCreated)
	}
}

func NewGetEntryHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		entry, err := svc.GetEntry(ctx, rest.IdentityFrom(r.Context()), id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, entry, http.StatusOK)
	}
}

func NewUpdateEntryHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var in rest.EntryIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		input, msg := entryInputFromPayload(in)
		if msg != "" {
			res.Error(w, msg, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		entry, err := svc.UpdateEntry(ctx, rest.IdentityFrom(r.Context()), id, input)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, entry, http.StatusOK)
	}
}

func NewDeleteEntryHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteEntry(ctx, rest.IdentityFrom(r.Context()), id); err != nil {
			rest.WriteErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func NewListEntriesHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var f core.ListEntriesFilter

		for _, spec := range []struct {
			key  string
			dest **uuid.UUID
		}{
			{"user_id", &f.UserID},
			{"project_id", &f.ProjectID},
			{"task_id", &f.TaskID},
			{"timesheet_id", &f.TimesheetID},
		} {
			if v := q.Get(spec.key); v != "" {
				id, err := uuid.Parse(v)
				if err != nil {
					res.Error(w, "invalid "+spec.key, http.StatusBadRequest)
					return
				}
				*spec.dest = &id
			}
		}

		if v := q.Get("from"); v != "" {
			t, err := parseDate(v)
			if err != nil {
				res.Error(w, "invalid from", http.StatusBadRequest)
				return
			}
			f.From = &t
		}
		if v := q.Get("to"); v != "" {
			t, err := parseDate(v)
			if err != nil {
				res.Error(w, "invalid to", http.StatusBadRequest)
				return
			}
			f.To = &t
		}

		f.Search = q.Get("search")
		f.Sort = core.EntrySort(q.Get("sort"))

		var ok bool
		if f.Limit, ok = queryInt(r, "limit"); !ok {
			res.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		if f.Offset, ok = queryInt(r, "offset"); !ok {
			res.Error(w, "invalid offset", http.StatusBadRequest)
			return
		}
		if f.Limit == 0 {
			f.Limit = 50
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := svc.ListEntries(ctx, rest.IdentityFrom(r.Context()), f)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, out, http.StatusOK)
	}
}
