package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"timetracking-service/adapters/rest"
	"timetracking-service/core"
	"timetracking-service/pkg/res"
)

func reportRange(r *http.Request) (start, end time.Time, msg string) {
	q := r.URL.Query()

	start, err := parseDate(q.Get("start"))
	if err != nil {
		return time.Time{}, time.Time{}, "invalid start, expected YYYY-MM-DD"
	}
	end, err = parseDate(q.Get("end"))
	if err != nil {
		return time.Time{}, time.Time{}, "invalid end, expected YYYY-MM-DD"
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, "end before start"
	}
	return start, end, ""
}

func NewUserReportHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		start, end, msg := reportRange(r)
		if msg != "" {
			res.Error(w, msg, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		report, err := svc.UserTimeReport(ctx, rest.IdentityFrom(r.Context()), userID, start, end)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, report, http.StatusOK)
	}
}

func NewTeamReportHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, msg := reportRange(r)
		if msg != "" {
			res.Error(w, msg, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		report, err := svc.TeamTimeReport(ctx, rest.IdentityFrom(r.Context()), start, end)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, report, http.StatusOK)
	}
}

func NewProjectReportHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}
		start, end, msg := reportRange(r)
		if msg != "" {
			res.Error(w, msg, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		report, err := svc.ProjectTimeReport(ctx, rest.IdentityFrom(r.Context()), projectID, start, end)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, report, http.StatusOK)
	}
}
