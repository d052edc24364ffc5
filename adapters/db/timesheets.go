package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"timetracking-service/core"
)

const timesheetColumns = `
	id, tenant_id, user_id, start_date, end_date, status, total_hours, billable_hours,
	submitted_at, submitted_by, approved_at, approved_by, rejected_at, rejected_by,
	approval_notes, is_active, created_at, updated_at`

func (db *DB) CreateTimesheet(ctx context.Context, t core.Timesheet) (core.Timesheet, error) {
	const q = `
		INSERT INTO timesheets (` + timesheetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`

	_, err := db.conn.ExecContext(ctx, q,
		t.ID, t.TenantID, t.UserID, t.StartDate, t.EndDate, t.Status, t.TotalHours, t.BillableHours,
		t.SubmittedAt, t.SubmittedBy, t.ApprovedAt, t.ApprovedBy, t.RejectedAt, t.RejectedBy,
		t.ApprovalNotes, t.IsActive, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Timesheet{}, core.ErrTimesheetExists
		}
		if isCheckViolation(err) {
			return core.Timesheet{}, core.ErrTimesheetInvalidArgs
		}
		return core.Timesheet{}, fmt.Errorf("insert timesheet: %w", err)
	}
	return t, nil
}

func (db *DB) GetTimesheet(ctx context.Context, tenantID, id uuid.UUID) (core.Timesheet, error) {
	const q = `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE id = $1 AND tenant_id = $2 AND is_active;
	`

	var t core.Timesheet
	if err := db.conn.GetContext(ctx, &t, q, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Timesheet{}, core.ErrTimesheetNotFound
		}
		return core.Timesheet{}, fmt.Errorf("get timesheet: %w", err)
	}
	return t, nil
}

func (db *DB) FindTimesheet(ctx context.Context, tenantID, userID uuid.UUID, start, end time.Time) (core.Timesheet, error) {
	const q = `
		SELECT ` + timesheetColumns + `
		FROM timesheets
		WHERE tenant_id = $1 AND user_id = $2
		  AND start_date = $3::date AND end_date = $4::date
		  AND is_active
		LIMIT 1;
	`

	var t core.Timesheet
	if err := db.conn.GetContext(ctx, &t, q, tenantID, userID, start, end); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Timesheet{}, core.ErrTimesheetNotFound
		}
		return core.Timesheet{}, fmt.Errorf("find timesheet: %w", err)
	}
	return t, nil
}

func (db *DB) UpdateTimesheet(ctx context.Context, t core.Timesheet) (core.Timesheet, error) {
	const q = `
		UPDATE timesheets
		SET start_date = $3,
		    end_date = $4,
		    status = $5,
		    total_hours = $6,
		    billable_hours = $7,
		    submitted_at = $8,
		    submitted_by = $9,
		    approved_at = $10,
		    approved_by = $11,
		    rejected_at = $12,
		    rejected_by = $13,
		    approval_notes = $14,
		    is_active = $15,
		    updated_at = $16
		WHERE id = $1 AND tenant_id = $2
		RETURNING ` + timesheetColumns + `;
	`

	var out core.Timesheet
	err := db.conn.GetContext(ctx, &out, q,
		t.ID, t.TenantID, t.StartDate, t.EndDate, t.Status, t.TotalHours, t.BillableHours,
		t.SubmittedAt, t.SubmittedBy, t.ApprovedAt, t.ApprovedBy, t.RejectedAt, t.RejectedBy,
		t.ApprovalNotes, t.IsActive, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.Timesheet{}, core.ErrTimesheetExists
		}
		if isCheckViolation(err) {
			return core.Timesheet{}, core.ErrTimesheetInvalidArgs
		}
		if errors.Is(err, sql.ErrNoRows) {
			return core.Timesheet{}, core.ErrTimesheetNotFound
		}
		return core.Timesheet{}, fmt.Errorf("update timesheet: %w", err)
	}
	return out, nil
}

func (db *DB) ListTimesheets(ctx context.Context, tenantID uuid.UUID, f core.ListTimesheetsFilter) ([]core.Timesheet, error) {
	var (
		sb   strings.Builder
		args []any
		n    = 2
	)
	args = append(args, tenantID)

	sb.WriteString(`SELECT ` + timesheetColumns + ` FROM timesheets WHERE tenant_id = $1 AND is_active`)

	if f.UserID != nil {
		args = append(args, *f.UserID)
		sb.WriteString(fmt.Sprintf(" AND user_id = $%d", n))
		n++
	}
	if f.Status != nil {
		args = append(args, *f.Status)
		sb.WriteString(fmt.Sprintf(" AND status = $%d", n))
		n++
	}

	sb.WriteString(" ORDER BY created_at DESC, id ASC")

	if f.Limit > 0 {
		limit, offset := clampPage(f.Limit, f.Offset)
		args = append(args, limit, offset)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", n, n+1))
	}

	var out []core.Timesheet
	if err := db.conn.SelectContext(ctx, &out, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("list timesheets: %w", err)
	}
	return out, nil
}
