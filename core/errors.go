package core

import "errors"

// Identity errors
var ErrInvalidContext = errors.New("invalid tenant or user context")

// Category errors
var (
	ErrCategoryNotFound    = errors.New("time category not found")
	ErrCategoryNameTaken   = errors.New("time category name already in use")
	ErrCategoryInvalidArgs = errors.New("time category invalid args")
)

// Tracking session errors
var (
	ErrSessionNotFound    = errors.New("tracking session not found")
	ErrSessionNotActive   = errors.New("session is already stopped")
	ErrSessionNotRunning  = errors.New("session is not currently running")
	ErrSessionNotPaused   = errors.New("session is not currently paused")
	ErrSessionInvalidArgs = errors.New("tracking session invalid args")
)

// Time entry errors
var (
	ErrEntryNotFound    = errors.New("time entry not found")
	ErrEntryInvalidArgs = errors.New("time entry invalid args")
	ErrEntryLocked      = errors.New("time entry belongs to a submitted timesheet")
)

// Timesheet errors
var (
	ErrTimesheetNotFound     = errors.New("timesheet not found")
	ErrTimesheetExists       = errors.New("timesheet already exists for this date range")
	ErrTimesheetNotDraft     = errors.New("only draft timesheets can be updated")
	ErrTimesheetNotDeletable = errors.New("only draft timesheets can be deleted")
	ErrTimesheetNotSubmitted = errors.New("only submitted timesheets can be reviewed")
	ErrTimesheetNotOwned     = errors.New("you can only submit your own timesheets")
	ErrTimesheetSelfReview   = errors.New("you cannot approve your own timesheet")
	ErrTimesheetInvalidArgs  = errors.New("timesheet invalid args")
)
