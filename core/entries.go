package core

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EntryInput struct {
	ProjectID       *uuid.UUID
	TaskID          *uuid.UUID
	CategoryID      uuid.UUID
	TimesheetID     *uuid.UUID
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes int
	Description     string
	EntryType       EntryType
	Billable        BillableStatus
	HourlyRate      *float64
}

// CreateEntry records a manual time entry for the caller. Tenant and user
// always come from the identity, never from the input. When the duration is
// absent and an end time is present it is derived from the span.
func (s *Service) CreateEntry(ctx context.Context, ident Identity, in EntryInput) (TimeEntry, error) {
	if !ident.Valid() {
		return TimeEntry{}, ErrInvalidContext
	}
	if in.CategoryID == uuid.Nil || in.StartTime.IsZero() || in.DurationMinutes < 0 {
		return TimeEntry{}, ErrEntryInvalidArgs
	}

	category, err := s.db.GetCategory(ctx, ident.TenantID, in.CategoryID)
	if err != nil {
		return TimeEntry{}, err
	}

	if in.EntryType == "" {
		in.EntryType = EntryRegular
	}
	if in.Billable == "" {
		in.Billable = category.DefaultBillable
	}
	if !in.EntryType.Valid() || !in.Billable.Valid() {
		return TimeEntry{}, ErrEntryInvalidArgs
	}
	if in.TimesheetID != nil {
		if _, err := s.db.GetTimesheet(ctx, ident.TenantID, *in.TimesheetID); err != nil {
			return TimeEntry{}, err
		}
	}

	duration := in.DurationMinutes
	if duration == 0 && in.EndTime != nil {
		duration = minutesBetween(in.StartTime, *in.EndTime)
	}

	now := s.now()
	entry := TimeEntry{
		ID:              uuid.New(),
		TenantID:        ident.TenantID,
		UserID:          ident.UserID,
		ProjectID:       in.ProjectID,
		TaskID:          in.TaskID,
		CategoryID:      in.CategoryID,
		TimesheetID:     in.TimesheetID,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		DurationMinutes: duration,
		Description:     strings.TrimSpace(in.Description),
		EntryType:       in.EntryType,
		Billable:        in.Billable,
		HourlyRate:      in.HourlyRate,
		IsManual:        true,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return s.db.CreateEntry(ctx, entry)
}

func (s *Service) UpdateEntry(ctx context.Context, ident Identity, id uuid.UUID, in EntryInput) (TimeEntry, error) {
	if !ident.Valid() {
		return TimeEntry{}, ErrInvalidContext
	}
	if in.CategoryID == uuid.Nil || in.StartTime.IsZero() || in.DurationMinutes < 0 {
		return TimeEntry{}, ErrEntryInvalidArgs
	}

	cur, err := s.db.GetEntry(ctx, ident.TenantID, id)
	if err != nil {
		return TimeEntry{}, err
	}
	if err := s.checkEntryUnlocked(ctx, cur); err != nil {
		return TimeEntry{}, err
	}
	if _, err := s.db.GetCategory(ctx, ident.TenantID, in.CategoryID); err != nil {
		return TimeEntry{}, err
	}
	if in.EntryType == "" {
		in.EntryType = cur.EntryType
	}
	if in.Billable == "" {
		in.Billable = cur.Billable
	}
	if !in.EntryType.Valid() || !in.Billable.Valid() {
		return TimeEntry{}, ErrEntryInvalidArgs
	}
	if in.TimesheetID != nil {
		if _, err := s.db.GetTimesheet(ctx, ident.TenantID, *in.TimesheetID); err != nil {
			return TimeEntry{}, err
		}
	}

	duration := in.DurationMinutes
	if duration == 0 && in.EndTime != nil {
		duration = minutesBetween(in.StartTime, *in.EndTime)
	}

	cur.ProjectID = in.ProjectID
	cur.TaskID = in.TaskID
	cur.CategoryID = in.CategoryID
	cur.TimesheetID = in.TimesheetID
	cur.StartTime = in.StartTime
	cur.EndTime = in.EndTime
	cur.DurationMinutes = duration
	cur.Description = strings.TrimSpace(in.Description)
	cur.EntryType = in.EntryType
	cur.Billable = in.Billable
	cur.HourlyRate = in.HourlyRate
	cur.UpdatedAt = s.now()
	return s.db.UpdateEntry(ctx, cur)
}

func (s *Service) DeleteEntry(ctx context.Context, ident Identity, id uuid.UUID) error {
	if !ident.Valid() {
		return ErrInvalidContext
	}

	cur, err := s.db.GetEntry(ctx, ident.TenantID, id)
	if err != nil {
		return err
	}
	if cur.UserID != ident.UserID {
		return ErrEntryNotFound
	}
	if err := s.checkEntryUnlocked(ctx, cur); err != nil {
		return err
	}

	cur.IsActive = false
	cur.UpdatedAt = s.now()
	_, err = s.db.UpdateEntry(ctx, cur)
	return err
}

func (s *Service) GetEntry(ctx context.Context, ident Identity, id uuid.UUID) (TimeEntry, error) {
	if !ident.Valid() {
		return TimeEntry{}, ErrInvalidContext
	}
	return s.db.GetEntry(ctx, ident.TenantID, id)
}

func (s *Service) ListEntries(ctx context.Context, ident Identity, f ListEntriesFilter) ([]TimeEntry, error) {
	if !ident.Valid() {
		return nil, ErrInvalidContext
	}
	if f.Limit < 0 || f.Offset < 0 {
		return nil, ErrEntryInvalidArgs
	}
	return s.db.ListEntries(ctx, ident.TenantID, f)
}

// checkEntryUnlocked rejects mutation of entries whose timesheet has left
// the draft state; their hours are already frozen into the sheet totals.
func (s *Service) checkEntryUnlocked(ctx context.Context, e TimeEntry) error {
	if e.TimesheetID == nil {
		return nil
	}
	sheet, err := s.db.GetTimesheet(ctx, e.TenantID, *e.TimesheetID)
	if err != nil {
		// A dangling link must not make the entry permanently immutable.
		if errors.Is(err, ErrTimesheetNotFound) {
			return nil
		}
		return err
	}
	if sheet.Status != TimesheetDraft {
		return ErrEntryLocked
	}
	return nil
}
