package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"timetracking-service/adapters/rest"
	"timetracking-service/core"
)

func Register(mux *http.ServeMux, log *slog.Logger, svc *core.Service, secret string, timeout time.Duration) {
	auth := rest.Auth(secret)

	// ping stays open for probes
	mux.Handle("GET /api/ping", NewPingHandler(log, svc, timeout))

	// categories
	mux.Handle("POST /api/categories", auth(NewCreateCategoryHandler(log, svc, timeout)))
	mux.Handle("GET /api/categories", auth(NewListCategoriesHandler(log, svc, timeout)))
	mux.Handle("GET /api/categories/{id}", auth(NewGetCategoryHandler(log, svc, timeout)))
	mux.Handle("PUT /api/categories/{id}", auth(NewUpdateCategoryHandler(log, svc, timeout)))
	mux.Handle("DELETE /api/categories/{id}", auth(NewDeleteCategoryHandler(log, svc, timeout)))

	// tracking sessions
	mux.Handle("POST /api/tracking/start", auth(NewStartTrackingHandler(log, svc, timeout)))
	mux.Handle("GET /api/tracking/active", auth(NewActiveTrackingHandler(log, svc, timeout)))
	mux.Handle("GET /api/tracking/sessions", auth(NewListTrackingHandler(log, svc, timeout)))
	mux.Handle("GET /api/tracking/sessions/{id}", auth(NewGetTrackingHandler(log, svc, timeout)))
	mux.Handle("PATCH /api/tracking/sessions/{id}", auth(NewUpdateTrackingHandler(log, svc, timeout)))
	mux.Handle("POST /api/tracking/sessions/{id}/stop", auth(NewStopTrackingHandler(log, svc, timeout)))
	mux.Handle("POST /api/tracking/sessions/{id}/pause", auth(NewPauseTrackingHandler(log, svc, timeout)))
	mux.Handle("POST /api/tracking/sessions/{id}/resume", auth(NewResumeTrackingHandler(log, svc, timeout)))

	// time entries
	mux.Handle("POST /api/entries", auth(NewCreateEntryHandler(log, svc, timeout)))
	mux.Handle("GET /api/entries", auth(NewListEntriesHandler(log, svc, timeout)))
	mux.Handle("GET /api/entries/{id}", auth(NewGetEntryHandler(log, svc, timeout)))
	mux.Handle("PUT /api/entries/{id}", auth(NewUpdateEntryHandler(log, svc, timeout)))
	mux.Handle("DELETE /api/entries/{id}", auth(NewDeleteEntryHandler(log, svc, timeout)))

	// timesheets
	mux.Handle("POST /api/timesheets", auth(NewCreateTimesheetHandler(log, svc, timeout)))
	mux.Handle("GET /api/timesheets", auth(NewListTimesheetsHandler(log, svc, timeout)))
	mux.Handle("GET /api/timesheets/pending", auth(NewPendingTimesheetsHandler(log, svc, timeout)))
	mux.Handle("GET /api/timesheets/{id}", auth(NewGetTimesheetHandler(log, svc, timeout)))
	mux.Handle("PUT /api/timesheets/{id}", auth(NewUpdateTimesheetHandler(log, svc, timeout)))
	mux.Handle("DELETE /api/timesheets/{id}", auth(NewDeleteTimesheetHandler(log, svc, timeout)))
	mux.Handle("POST /api/timesheets/{id}/submit", auth(NewSubmitTimesheetHandler(log, svc, timeout)))
	mux.Handle("POST /api/timesheets/{id}/approve", auth(NewApproveTimesheetHandler(log, svc, timeout)))
	mux.Handle("POST /api/timesheets/{id}/reject", auth(NewRejectTimesheetHandler(log, svc, timeout)))

	// reports
	mux.Handle("GET /api/reports/users/{id}", auth(NewUserReportHandler(log, svc, timeout)))
	mux.Handle("GET /api/reports/team", auth(NewTeamReportHandler(log, svc, timeout)))
	mux.Handle("GET /api/reports/projects/{id}", auth(NewProjectReportHandler(log, svc, timeout)))
}

// decodeOptionalBody reads a json payload whose fields are all optional; an
// empty body leaves dst at its zero value.
func decodeOptionalBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	return id, err == nil && id != uuid.Nil
}

// optUUID maps an optional string field to an optional uuid. An empty string
// becomes uuid.Nil, which the core treats as "clear the reference".
func optUUID(s *string) (*uuid.UUID, bool) {
	if s == nil {
		return nil, true
	}
	if *s == "" {
		nilID := uuid.Nil
		return &nilID, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, false
	}
	return &id, true
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

func queryInt(r *http.Request, key string) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
