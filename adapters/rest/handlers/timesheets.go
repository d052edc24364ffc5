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

func NewCreateTimesheetHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateTimesheetIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		start, err := parseDate(in.StartDate)
		if err != nil {
			res.Error(w, "invalid start_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		end, err := parseDate(in.EndDate)
		if err != nil {
			res.Error(w, "invalid end_date, expected YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		input := core.TimesheetInput{StartDate: start, EndDate: end}
		if in.UserID != nil && *in.UserID != "" {
			userID, err := uuid.Parse(*in.UserID)
			if err != nil {
				res.Error(w, "invalid user_id", http.StatusBadRequest)
				return
			}
			input.UserID = &userID
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		sheet, err := svc.CreateTimesheet(ctx, rest.IdentityFrom(r.Context()), input)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, sheet, http.StatusCreated)
	}
}

func NewGetTimesheetHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		sheet, err := svc.GetTimesheet(ctx, rest.IdentityFrom(r.Context()), id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, sheet, http.StatusOK)
	}
}

func NewUpdateTimesheetHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var in rest.UpdateTimesheetIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var patch core.TimesheetPatch
		if in.StartDate != nil {
			t, err := parseDate(*in.StartDate)
			if err != nil {
				res.Error(w, "invalid start_date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			patch.StartDate = &t
		}
		if in.EndDate != nil {
			t, err := parseDate(*in.EndDate)
			if err != nil {
				res.Error(w, "invalid end_date, expected YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			patch.EndDate = &t
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		sheet, err := svc.UpdateTimesheet(ctx, rest.IdentityFrom(r.Context()), id, patch)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, sheet, http.StatusOK)
	}
}

func NewDeleteTimesheetHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteTimesheet(ctx, rest.IdentityFrom(r.Context()), id); err != nil {
			rest.WriteErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func NewSubmitTimesheetHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		sheet, err := svc.SubmitTimesheet(ctx, rest.IdentityFrom(r.Context()), id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, sheet, http.StatusOK)
	}
}

func newReviewTimesheetHandler(svc *core.Service, timeout time.Duration, approve bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var in rest.ReviewTimesheetIn
		if err := decodeOptionalBody(r, &in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		var (
			sheet core.Timesheet
			err   error
		)
		if approve {
			sheet, err = svc.ApproveTimesheet(ctx, rest.IdentityFrom(r.Context()), id, in.Notes)
		} else {
			sheet, err = svc.RejectTimesheet(ctx, rest.IdentityFrom(r.Context()), id, in.Notes)
		}
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, sheet, http.StatusOK)
	}
}

func NewApproveTimesheetHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return newReviewTimesheetHandler(svc, timeout, true)
}

func NewRejectTimesheetHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return newReviewTimesheetHandler(svc, timeout, false)
}

func NewListTimesheetsHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var f core.ListTimesheetsFilter

		if v := q.Get("user_id"); v != "" {
			id, err := uuid.Parse(v)
			if err != nil {
				res.Error(w, "invalid user_id", http.StatusBadRequest)
				return
			}
			f.UserID = &id
		}
		if v := q.Get("status"); v != "" {
			switch core.TimesheetStatus(v) {
			case core.TimesheetDraft, core.TimesheetSubmitted, core.TimesheetApproved, core.TimesheetRejected:
				status := core.TimesheetStatus(v)
				f.Status = &status
			default:
				res.Error(w, "invalid status", http.StatusBadRequest)
				return
			}
		}

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

		out, err := svc.ListTimesheets(ctx, rest.IdentityFrom(r.Context()), f)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, out, http.StatusOK)
	}
}

func NewPendingTimesheetsHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := svc.PendingTimesheets(ctx, rest.IdentityFrom(r.Context()))
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, out, http.StatusOK)
	}
}
