package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DB is the persistence port for the tracking aggregates. Every method is
// tenant-scoped: lookups must treat a tenant mismatch the same as absence.
type DB interface {
	Ping(ctx context.Context) error

	// categories
	CreateCategory(ctx context.Context, c TimeCategory) (TimeCategory, error)
	GetCategory(ctx context.Context, tenantID, id uuid.UUID) (TimeCategory, error)
	ListCategories(ctx context.Context, tenantID uuid.UUID) ([]TimeCategory, error)
	UpdateCategory(ctx context.Context, c TimeCategory) (TimeCategory, error)
	// CategoryNameExists reports whether an active category other than
	// exclude already uses name within the tenant (case-sensitive).
	CategoryNameExists(ctx context.Context, tenantID uuid.UUID, name string, exclude uuid.UUID) (bool, error)

	// tracking sessions
	// StartSession stops every active session of the owner and inserts the
	// new one in a single transaction.
	StartSession(ctx context.Context, s TrackingSession) (TrackingSession, error)
	GetSession(ctx context.Context, tenantID, id uuid.UUID) (TrackingSession, error)
	GetActiveSession(ctx context.Context, tenantID, userID uuid.UUID) (TrackingSession, error)
	ListSessionsByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]TrackingSession, error)
	UpdateSession(ctx context.Context, s TrackingSession) (TrackingSession, error)
	// StopSession persists the stopped session and, when entry is non-nil,
	// the materialized time entry atomically.
	StopSession(ctx context.Context, s TrackingSession, entry *TimeEntry) error

	// time entries
	CreateEntry(ctx context.Context, e TimeEntry) (TimeEntry, error)
	GetEntry(ctx context.Context, tenantID, id uuid.UUID) (TimeEntry, error)
	UpdateEntry(ctx context.Context, e TimeEntry) (TimeEntry, error)
	ListEntries(ctx context.Context, tenantID uuid.UUID, f ListEntriesFilter) ([]TimeEntry, error)

	// timesheets
	CreateTimesheet(ctx context.Context, t Timesheet) (Timesheet, error)
	GetTimesheet(ctx context.Context, tenantID, id uuid.UUID) (Timesheet, error)
	// FindTimesheet matches the exact (user, start, end) triple.
	FindTimesheet(ctx context.Context, tenantID, userID uuid.UUID, start, end time.Time) (Timesheet, error)
	UpdateTimesheet(ctx context.Context, t Timesheet) (Timesheet, error)
	ListTimesheets(ctx context.Context, tenantID uuid.UUID, f ListTimesheetsFilter) ([]Timesheet, error)
}

// Directory resolves display names owned by external services. Reports are
// the only consumer; a missing id simply falls back to an "Unknown" label.
type Directory interface {
	ListUsers(ctx context.Context, tenantID uuid.UUID) ([]UserRef, error)
	ProjectNames(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error)
}
