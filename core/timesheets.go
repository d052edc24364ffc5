package core

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type TimesheetInput struct {
	// UserID defaults to the caller when nil.
	UserID    *uuid.UUID
	StartDate time.Time
	EndDate   time.Time
}

type TimesheetPatch struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// CreateTimesheet opens a draft for the exact (user, start, end) period.
// Totals are computed from the ledger at creation time.
func (s *Service) CreateTimesheet(ctx context.Context, ident Identity, in TimesheetInput) (Timesheet, error) {
	if !ident.Valid() {
		return Timesheet{}, ErrInvalidContext
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() || in.EndDate.Before(in.StartDate) {
		return Timesheet{}, ErrTimesheetInvalidArgs
	}

	userID := ident.UserID
	if in.UserID != nil && *in.UserID != uuid.Nil {
		userID = *in.UserID
	}

	_, err := s.db.FindTimesheet(ctx, ident.TenantID, userID, in.StartDate, in.EndDate)
	if err == nil {
		return Timesheet{}, ErrTimesheetExists
	}
	if !errors.Is(err, ErrTimesheetNotFound) {
		return Timesheet{}, err
	}

	total, billable, err := s.timesheetTotals(ctx, ident.TenantID, userID, in.StartDate, in.EndDate)
	if err != nil {
		return Timesheet{}, err
	}

	now := s.now()
	sheet := Timesheet{
		ID:            uuid.New(),
		TenantID:      ident.TenantID,
		UserID:        userID,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Status:        TimesheetDraft,
		TotalHours:    total,
		BillableHours: billable,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return s.db.CreateTimesheet(ctx, sheet)
}

// UpdateTimesheet adjusts the period of a draft and recomputes its totals.
func (s *Service) UpdateTimesheet(ctx context.Context, ident Identity, id uuid.UUID, p TimesheetPatch) (Timesheet, error) {
	if !ident.Valid() {
		return Timesheet{}, ErrInvalidContext
	}

	sheet, err := s.db.GetTimesheet(ctx, ident.TenantID, id)
	if err != nil {
		return Timesheet{}, err
	}
	if sheet.Status != TimesheetDraft {
		return Timesheet{}, ErrTimesheetNotDraft
	}

	if p.StartDate != nil {
		sheet.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		sheet.EndDate = *p.EndDate
	}
	if sheet.EndDate.Before(sheet.StartDate) {
		return Timesheet{}, ErrTimesheetInvalidArgs
	}

	total, billable, err := s.timesheetTotals(ctx, sheet.TenantID, sheet.UserID, sheet.StartDate, sheet.EndDate)
	if err != nil {
		return Timesheet{}, err
	}
	sheet.TotalHours = total
	sheet.BillableHours = billable
	sheet.UpdatedAt = s.now()
	return s.db.UpdateTimesheet(ctx, sheet)
}

// SubmitTimesheet moves a draft into the approval queue. Only the owning
// user may submit.
func (s *Service) SubmitTimesheet(ctx context.Context, ident Identity, id uuid.UUID) (Timesheet, error) {
	if !ident.Valid() {
		return Timesheet{}, ErrInvalidContext
	}

	sheet, err := s.db.GetTimesheet(ctx, ident.TenantID, id)
	if err != nil {
		return Timesheet{}, err
	}
	if sheet.Status != TimesheetDraft {
		return Timesheet{}, ErrTimesheetNotDraft
	}
	if sheet.UserID != ident.UserID {
		return Timesheet{}, ErrTimesheetNotOwned
	}

	now := s.now()
	caller := ident.UserID
	sheet.Status = TimesheetSubmitted
	sheet.SubmittedAt = &now
	sheet.SubmittedBy = &caller
	sheet.UpdatedAt = now
	return s.db.UpdateTimesheet(ctx, sheet)
}

func (s *Service) ApproveTimesheet(ctx context.Context, ident Identity, id uuid.UUID, notes string) (Timesheet, error) {
	return s.review(ctx, ident, id, notes, true)
}

func (s *Service) RejectTimesheet(ctx context.Context, ident Identity, id uuid.UUID, notes string) (Timesheet, error) {
	return s.review(ctx, ident, id, notes, false)
}

// review handles both approval outcomes: only submitted sheets, never by
// their own author.
func (s *Service) review(ctx context.Context, ident Identity, id uuid.UUID, notes string, approve bool) (Timesheet, error) {
	if !ident.Valid() {
		return Timesheet{}, ErrInvalidContext
	}

	sheet, err := s.db.GetTimesheet(ctx, ident.TenantID, id)
	if err != nil {
		return Timesheet{}, err
	}
	if sheet.Status != TimesheetSubmitted {
		return Timesheet{}, ErrTimesheetNotSubmitted
	}
	if sheet.UserID == ident.UserID {
		return Timesheet{}, ErrTimesheetSelfReview
	}

	now := s.now()
	caller := ident.UserID
	if approve {
		sheet.Status = TimesheetApproved
		sheet.ApprovedAt = &now
		sheet.ApprovedBy = &caller
	} else {
		sheet.Status = TimesheetRejected
		sheet.RejectedAt = &now
		sheet.RejectedBy = &caller
	}
	sheet.ApprovalNotes = notes
	sheet.UpdatedAt = now
	return s.db.UpdateTimesheet(ctx, sheet)
}

func (s *Service) DeleteTimesheet(ctx context.Context, ident Identity, id uuid.UUID) error {
	if !ident.Valid() {
		return ErrInvalidContext
	}

	sheet, err := s.db.GetTimesheet(ctx, ident.TenantID, id)
	if err != nil {
		return err
	}
	if sheet.Status != TimesheetDraft {
		return ErrTimesheetNotDeletable
	}

	sheet.IsActive = false
	sheet.UpdatedAt = s.now()
	_, err = s.db.UpdateTimesheet(ctx, sheet)
	return err
}

func (s *Service) GetTimesheet(ctx context.Context, ident Identity, id uuid.UUID) (Timesheet, error) {
	if !ident.Valid() {
		return Timesheet{}, ErrInvalidContext
	}
	return s.db.GetTimesheet(ctx, ident.TenantID, id)
}

func (s *Service) GetTimesheetForRange(ctx context.Context, ident Identity, userID uuid.UUID, start, end time.Time) (Timesheet, error) {
	if !ident.Valid() {
		return Timesheet{}, ErrInvalidContext
	}
	if userID == uuid.Nil {
		userID = ident.UserID
	}
	return s.db.FindTimesheet(ctx, ident.TenantID, userID, start, end)
}

func (s *Service) ListTimesheets(ctx context.Context, ident Identity, f ListTimesheetsFilter) ([]Timesheet, error) {
	if !ident.Valid() {
		return nil, ErrInvalidContext
	}
	if f.Limit < 0 || f.Offset < 0 {
		return nil, ErrTimesheetInvalidArgs
	}
	return s.db.ListTimesheets(ctx, ident.TenantID, f)
}

// PendingTimesheets lists every submitted sheet in the tenant awaiting review.
func (s *Service) PendingTimesheets(ctx context.Context, ident Identity) ([]Timesheet, error) {
	if !ident.Valid() {
		return nil, ErrInvalidContext
	}
	status := TimesheetSubmitted
	return s.db.ListTimesheets(ctx, ident.TenantID, ListTimesheetsFilter{Status: &status})
}

func (s *Service) timesheetTotals(ctx context.Context, tenantID, userID uuid.UUID, start, end time.Time) (total, billable float64, err error) {
	entries, err := s.db.ListEntries(ctx, tenantID, ListEntriesFilter{
		UserID: &userID,
		From:   &start,
		To:     &end,
	})
	if err != nil {
		return 0, 0, err
	}

	var totalMin, billableMin int
	for _, e := range entries {
		totalMin += e.DurationMinutes
		if e.Billable == Billable {
			billableMin += e.DurationMinutes
		}
	}
	return float64(totalMin) / 60, float64(billableMin) / 60, nil
}
