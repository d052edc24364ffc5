package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"timetracking-service/core"
)

func weekOf15th() (time.Time, time.Time) {
	return date(2024, time.January, 15), date(2024, time.January, 21)
}

func TestCreateTimesheet_ComputesTotals(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	category := mustCreateCategory(t, svc, ident, "dev")
	mustCreateEntry(t, svc, ident, core.EntryInput{
		CategoryID:      category.ID,
		StartTime:       time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 120,
		Billable:        core.Billable,
	})
	mustCreateEntry(t, svc, ident, core.EntryInput{
		CategoryID:      category.ID,
		StartTime:       time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
	})
	// outside the period, must not count
	mustCreateEntry(t, svc, ident, core.EntryInput{
		CategoryID:      category.ID,
		StartTime:       time.Date(2024, 1, 25, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 480,
	})

	start, end := weekOf15th()
	sheet := mustCreateTimesheet(t, svc, ident, core.TimesheetInput{StartDate: start, EndDate: end})

	if sheet.TotalHours != 3 {
		t.Fatalf("expected 3 total hours, got %v", sheet.TotalHours)
	}
	if sheet.BillableHours != 2 {
		t.Fatalf("expected 2 billable hours, got %v", sheet.BillableHours)
	}
	if sheet.Status != core.TimesheetDraft {
		t.Fatalf("expected draft status, got %s", sheet.Status)
	}
}

func TestCreateTimesheet_DuplicateRangeConflicts(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	start, end := weekOf15th()
	mustCreateTimesheet(t, svc, ident, core.TimesheetInput{StartDate: start, EndDate: end})

	_, err := svc.CreateTimesheet(context.Background(), ident, core.TimesheetInput{StartDate: start, EndDate: end})
	if !errors.Is(err, core.ErrTimesheetExists) {
		t.Fatalf("expected ErrTimesheetExists, got %v", err)
	}

	// a different period for the same user is fine
	_, err = svc.CreateTimesheet(context.Background(), ident, core.TimesheetInput{
		StartDate: date(2024, time.January, 22),
		EndDate:   date(2024, time.January, 28),
	})
	if err != nil {
		t.Fatalf("CreateTimesheet returned error: %v", err)
	}

	// the same period for a different user is fine too
	colleague := uuid.New()
	_, err = svc.CreateTimesheet(context.Background(), ident, core.TimesheetInput{
		UserID:    &colleague,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		t.Fatalf("CreateTimesheet returned error: %v", err)
	}
}

func TestCreateTimesheet_Validation(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	start, end := weekOf15th()

	_, err := svc.CreateTimesheet(context.Background(), ident, core.TimesheetInput{StartDate: end, EndDate: start})
	if !errors.Is(err, core.ErrTimesheetInvalidArgs) {
		t.Fatalf("expected ErrTimesheetInvalidArgs, got %v", err)
	}

	_, err = svc.CreateTimesheet(context.Background(), ident, core.TimesheetInput{EndDate: end})
	if !errors.Is(err, core.ErrTimesheetInvalidArgs) {
		t.Fatalf("expected ErrTimesheetInvalidArgs, got %v", err)
	}
}

func TestUpdateTimesheet_DraftOnlyAndRecomputes(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	category := mustCreateCategory(t, svc, ident, "dev")
	start, end := weekOf15th()
	sheet := mustCreateTimesheet(t, svc, ident, core.TimesheetInput{StartDate: start, EndDate: end})

	if sheet.TotalHours != 0 {
		t.Fatalf("expected empty sheet, got %v hours", sheet.TotalHours)
	}

	mustCreateEntry(t, svc, ident, core.EntryInput{
		CategoryID:      category.ID,
		StartTime:       time.Date(2024, 1, 23, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 90,
	})

	newEnd := date(2024, time.January, 28)
	updated, err := svc.UpdateTimesheet(context.Background(), ident, sheet.ID, core.TimesheetPatch{EndDate: &newEnd})
	if err != nil {
		t.Fatalf("UpdateTimesheet returned error: %v", err)
	}
	if updated.TotalHours != 1.5 {
		t.Fatalf("expected 1.5 hours after widening the period, got %v", updated.TotalHours)
	}

	if _, err := svc.SubmitTimesheet(context.Background(), ident, sheet.ID); err != nil {
		t.Fatalf("SubmitTimesheet returned error: %v", err)
	}

	_, err = svc.UpdateTimesheet(context.Background(), ident, sheet.ID, core.TimesheetPatch{EndDate: &newEnd})
	if !errors.Is(err, core.ErrTimesheetNotDraft) {
		t.Fatalf("expected ErrTimesheetNotDraft, got %v", err)
	}
}

func TestSubmitTimesheet_OwnerOnly(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	colleague := uuid.New()
	start, end := weekOf15th()
	sheet := mustCreateTimesheet(t, svc, ident, core.TimesheetInput{
		UserID:    &colleague,
		StartDate: start,
		EndDate:   end,
	})

	_, err := svc.SubmitTimesheet(context.Background(), ident, sheet.ID)
	if !errors.Is(err, core.ErrTimesheetNotOwned) {
		t.Fatalf("expected ErrTimesheetNotOwned, got %v", err)
	}

	got, err := svc.GetTimesheet(context.Background(), ident, sheet.ID)
	if err != nil {
		t.Fatalf("GetTimesheet returned error: %v", err)
	}
	if got.Status != core.TimesheetDraft {
		t.Fatalf("failed submit must not change status, got %s", got.Status)
	}
}

func TestSubmitTimesheet_SetsAuditFields(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	start, end := weekOf15th()
	sheet := mustCreateTimesheet(t, svc, ident, core.TimesheetInput{StartDate: start, EndDate: end})

	submitted, err := svc.SubmitTimesheet(context.Background(), ident, sheet.ID)
	if err != nil {
		t.Fatalf("SubmitTimesheet returned error: %v", err)
	}
	if submitted.Status != core.TimesheetSubmitted {
		t.Fatalf("expected submitted status, got %s", submitted.Status)
	}
	if submitted.SubmittedAt == nil || submitted.SubmittedBy == nil || *submitted.SubmittedBy != ident.UserID {
		t.Fatalf("expected submission audit fields, got %+v", submitted)
	}

	// re-submitting a submitted sheet is rejected
	if _, err := svc.SubmitTimesheet(context.Background(), ident, sheet.ID); !errors.Is(err, core.ErrTimesheetNotDraft) {
		t.Fatalf("expected ErrTimesheetNotDraft, got %v", err)
	}
}

func TestReviewTimesheet_NoSelfApproval(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	start, end := weekOf15th()
	sheet := mustCreateTimesheet(t, svc, ident, core.TimesheetInput{StartDate: start, EndDate: end})
	if _, err := svc.SubmitTimesheet(context.Background(), ident, sheet.ID); err != nil {
		t.Fatalf("SubmitTimesheet returned error: %v", err)
	}

	_, err := svc.ApproveTimesheet(context.Background(), ident, sheet.ID, "")
	if !errors.Is(err, core.ErrTimesheetSelfReview) {
		t.Fatalf("expected ErrTimesheetSelfReview, got %v", err)
	}

	got, err := svc.GetTimesheet(context.Background(), ident, sheet.ID)
	if err != nil {
		t.Fatalf("GetTimesheet returned error: %v", err)
	}
	if got.Status != core.TimesheetSubmitted {
		t.Fatalf("failed review must not change status, got %s", got.Status)
	}

	manager := core.Identity{TenantID: ident.TenantID, UserID: uuid.New()}
	approved, err := svc.ApproveTimesheet(context.Background(), manager, sheet.ID, "looks complete")
	if err != nil {
		t.Fatalf("ApproveTimesheet returned error: %v", err)
	}
	if approved.Status != core.TimesheetApproved {
		t.Fatalf("expected approved status, got %s", approved.Status)
	}
	if approved.ApprovedBy == nil || *approved.ApprovedBy != manager.UserID {
		t.Fatalf("expected approver recorded, got %+v", approved.ApprovedBy)
	}
	if approved.ApprovalNotes != "looks complete" {
		t.Fatalf("expected notes kept, got %q", approved.ApprovalNotes)
	}
}

func TestRejectTimesheet(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	start, end := weekOf15th()
	sheet := mustCreateTimesheet(t, svc, ident, core.TimesheetInput{StartDate: start, EndDate: end})
	if _, err := svc.SubmitTimesheet(context.Background(), ident, sheet.ID); err != nil {
		t.Fatalf("SubmitTimesheet returned error: %v", err)
	}

	manager := core.Identity{TenantID: ident.TenantID, UserID: uuid.New()}
	rejected, err := svc.RejectTimesheet(context.Background(), manager, sheet.ID, "missing friday")
	if err != nil {
		t.Fatalf("RejectTimesheet returned error: %v", err)
	}
	if rejected.Status != core.TimesheetRejected {
		t.Fatalf("expected rejected status, got %s", rejected.Status)
	}
	if rejected.RejectedAt == nil || rejected.RejectedBy == nil || *rejected.RejectedBy != manager.UserID {
		t.Fatalf("expected rejection audit fields, got %+v", rejected)
	}
}

func TestReviewTimesheet_SubmittedOnly(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	start, end := weekOf15th()
	sheet := mustCreateTimesheet(t, svc, ident, core.TimesheetInput{StartDate: start, EndDate: end})

	manager := core.Identity{TenantID: ident.TenantID, UserID: uuid.New()}
	_, err := svc.ApproveTimesheet(context.Background(), manager, sheet.ID, "")
	if !errors.Is(err, core.ErrTimesheetNotSubmitted) {
		t.Fatalf("expected ErrTimesheetNotSubmitted, got %v", err)
	}
}

func TestDeleteTimesheet_DraftOnly(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	start, end := weekOf15th()
	sheet := mustCreateTimesheet(t, svc, ident, core.TimesheetInput{StartDate: start, EndDate: end})

	if err := svc.DeleteTimesheet(context.Background(), ident, sheet.ID); err != nil {
		t.Fatalf("DeleteTimesheet returned error: %v", err)
	}
	if _, err := svc.GetTimesheet(context.Background(), ident, sheet.ID); !errors.Is(err, core.ErrTimesheetNotFound) {
		t.Fatalf("expected ErrTimesheetNotFound after delete, got %v", err)
	}

	// the freed period can be reused
	again := mustCreateTimesheet(t, svc, ident, core.TimesheetInput{StartDate: start, EndDate: end})
	if _, err := svc.SubmitTimesheet(context.Background(), ident, again.ID); err != nil {
		t.Fatalf("SubmitTimesheet returned error: %v", err)
	}
	if err := svc.DeleteTimesheet(context.Background(), ident, again.ID); !errors.Is(err, core.ErrTimesheetNotDeletable) {
		t.Fatalf("expected ErrTimesheetNotDeletable, got %v", err)
	}
}

func TestPendingTimesheets(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	start, end := weekOf15th()
	draft := mustCreateTimesheet(t, svc, ident, core.TimesheetInput{StartDate: start, EndDate: end})
	_ = draft

	colleague := uuid.New()
	submittedSheet := mustCreateTimesheet(t, svc, ident, core.TimesheetInput{
		UserID:    &colleague,
		StartDate: start,
		EndDate:   end,
	})
	colleagueIdent := core.Identity{TenantID: ident.TenantID, UserID: colleague}
	if _, err := svc.SubmitTimesheet(context.Background(), colleagueIdent, submittedSheet.ID); err != nil {
		t.Fatalf("SubmitTimesheet returned error: %v", err)
	}

	pending, err := svc.PendingTimesheets(context.Background(), ident)
	if err != nil {
		t.Fatalf("PendingTimesheets returned error: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != submittedSheet.ID {
		t.Fatalf("expected only the submitted sheet, got %+v", pending)
	}
}

func TestGetTimesheetForRange(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	start, end := weekOf15th()
	sheet := mustCreateTimesheet(t, svc, ident, core.TimesheetInput{StartDate: start, EndDate: end})

	got, err := svc.GetTimesheetForRange(context.Background(), ident, uuid.Nil, start, end)
	if err != nil {
		t.Fatalf("GetTimesheetForRange returned error: %v", err)
	}
	if got.ID != sheet.ID {
		t.Fatalf("expected sheet %s, got %s", sheet.ID, got.ID)
	}

	_, err = svc.GetTimesheetForRange(context.Background(), ident, uuid.Nil, start, end.AddDate(0, 0, 7))
	if !errors.Is(err, core.ErrTimesheetNotFound) {
		t.Fatalf("expected ErrTimesheetNotFound, got %v", err)
	}
}
