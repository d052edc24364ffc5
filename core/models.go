package core

import (
	"time"

	"github.com/google/uuid"
)

type BillableStatus string

const (
	Billable    BillableStatus = "billable"
	NonBillable BillableStatus = "non_billable"
	Internal    BillableStatus = "internal"
)

func (b BillableStatus) Valid() bool {
	switch b {
	case Billable, NonBillable, Internal:
		return true
	}
	return false
}

type SessionStatus string

const (
	SessionRunning SessionStatus = "running"
	SessionPaused  SessionStatus = "paused"
	SessionStopped SessionStatus = "stopped"
)

type EntryType string

const (
	EntryRegular  EntryType = "regular"
	EntryOvertime EntryType = "overtime"
	EntryBreak    EntryType = "break"
	EntryMeeting  EntryType = "meeting"
	EntryOther    EntryType = "other"
)

func (e EntryType) Valid() bool {
	switch e {
	case EntryRegular, EntryOvertime, EntryBreak, EntryMeeting, EntryOther:
		return true
	}
	return false
}

type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetApproved  TimesheetStatus = "approved"
	TimesheetRejected  TimesheetStatus = "rejected"
)

// TimeCategory is tenant-scoped reference data used to classify entries.
// Soft-deleted categories keep their rows with is_active = false.
type TimeCategory struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	TenantID        uuid.UUID      `db:"tenant_id" json:"tenant_id"`
	Name            string         `db:"name" json:"name"`
	Description     string         `db:"description" json:"description"`
	Color           string         `db:"color" json:"color"`
	DefaultBillable BillableStatus `db:"default_billable" json:"default_billable"`
	IsActive        bool           `db:"is_active" json:"is_active"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// TrackingSession is a live timer. At most one session per (tenant, user)
// has IsActive = true; stopped sessions stay as history and are never deleted.
type TrackingSession struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	TenantID       uuid.UUID     `db:"tenant_id" json:"tenant_id"`
	UserID         uuid.UUID     `db:"user_id" json:"user_id"`
	ProjectID      *uuid.UUID    `db:"project_id" json:"project_id,omitempty"`
	TaskID         *uuid.UUID    `db:"task_id" json:"task_id,omitempty"`
	CategoryID     uuid.UUID     `db:"category_id" json:"category_id"`
	Description    string        `db:"description" json:"description"`
	StartTime      time.Time     `db:"start_time" json:"start_time"`
	LastActivityAt time.Time     `db:"last_activity_at" json:"last_activity_at"`
	PausedMinutes  int           `db:"paused_minutes" json:"paused_minutes"`
	Status         SessionStatus `db:"status" json:"status"`
	IsActive       bool          `db:"is_active" json:"is_active"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updated_at"`
}

// TimeEntry is a completed block of time, either entered manually or
// materialized from a stopped tracking session.
type TimeEntry struct {
	ID              uuid.UUID      `db:"id" json:"id"`
	TenantID        uuid.UUID      `db:"tenant_id" json:"tenant_id"`
	UserID          uuid.UUID      `db:"user_id" json:"user_id"`
	ProjectID       *uuid.UUID     `db:"project_id" json:"project_id,omitempty"`
	TaskID          *uuid.UUID     `db:"task_id" json:"task_id,omitempty"`
	CategoryID      uuid.UUID      `db:"category_id" json:"category_id"`
	TimesheetID     *uuid.UUID     `db:"timesheet_id" json:"timesheet_id,omitempty"`
	StartTime       time.Time      `db:"start_time" json:"start_time"`
	EndTime         *time.Time     `db:"end_time" json:"end_time,omitempty"`
	DurationMinutes int            `db:"duration_minutes" json:"duration_minutes"`
	Description     string         `db:"description" json:"description"`
	EntryType       EntryType      `db:"entry_type" json:"entry_type"`
	Billable        BillableStatus `db:"billable" json:"billable"`
	HourlyRate      *float64       `db:"hourly_rate" json:"hourly_rate,omitempty"`
	IsManual        bool           `db:"is_manual" json:"is_manual"`
	IsActive        bool           `db:"is_active" json:"is_active"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// Timesheet aggregates one user's entries over a date range and carries the
// approval workflow state. Totals are derived from the ledger while the sheet
// is a draft and frozen afterwards.
type Timesheet struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	TenantID      uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	UserID        uuid.UUID       `db:"user_id" json:"user_id"`
	StartDate     time.Time       `db:"start_date" json:"start_date"`
	EndDate       time.Time       `db:"end_date" json:"end_date"`
	Status        TimesheetStatus `db:"status" json:"status"`
	TotalHours    float64         `db:"total_hours" json:"total_hours"`
	BillableHours float64         `db:"billable_hours" json:"billable_hours"`
	SubmittedAt   *time.Time      `db:"submitted_at" json:"submitted_at,omitempty"`
	SubmittedBy   *uuid.UUID      `db:"submitted_by" json:"submitted_by,omitempty"`
	ApprovedAt    *time.Time      `db:"approved_at" json:"approved_at,omitempty"`
	ApprovedBy    *uuid.UUID      `db:"approved_by" json:"approved_by,omitempty"`
	RejectedAt    *time.Time      `db:"rejected_at" json:"rejected_at,omitempty"`
	RejectedBy    *uuid.UUID      `db:"rejected_by" json:"rejected_by,omitempty"`
	ApprovalNotes string          `db:"approval_notes" json:"approval_notes"`
	IsActive      bool            `db:"is_active" json:"is_active"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
}

// UserRef and ProjectRef are read-only lookups owned by external services;
// reports use them for display names only.
type UserRef struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

type ProjectRef struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}
