package core

import (
	"time"

	"github.com/google/uuid"
)

// EntrySort keys for ListEntries. Storage decides the concrete ordering,
// always tie-breaking on id so pagination stays stable.
type EntrySort string

const (
	EntrySortStartTime EntrySort = "start_time"
	EntrySortDuration  EntrySort = "duration"
	EntrySortCreatedAt EntrySort = "created_at"
)

type ListEntriesFilter struct {
	UserID      *uuid.UUID
	ProjectID   *uuid.UUID
	TaskID      *uuid.UUID
	TimesheetID *uuid.UUID
	// From/To bound the date portion of start_time, inclusive on both ends.
	From *time.Time
	To   *time.Time
	// Search is a substring match on description or category name.
	Search string
	Sort   EntrySort
	Limit  int
	Offset int
}

type ListTimesheetsFilter struct {
	UserID *uuid.UUID
	Status *TimesheetStatus
	Limit  int
	Offset int
}
