package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"timetracking-service/core"
)

const entryColumns = `
	e.id, e.tenant_id, e.user_id, e.project_id, e.task_id, e.category_id, e.timesheet_id,
	e.start_time, e.end_time, e.duration_minutes, e.description, e.entry_type, e.billable,
	e.hourly_rate, e.is_manual, e.is_active, e.created_at, e.updated_at`

func insertEntry(ctx context.Context, ext sqlx.ExtContext, e core.TimeEntry) error {
	const q = `
		INSERT INTO time_entries (id, tenant_id, user_id, project_id, task_id, category_id, timesheet_id,
			start_time, end_time, duration_minutes, description, entry_type, billable,
			hourly_rate, is_manual, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`

	_, err := ext.ExecContext(ctx, q,
		e.ID, e.TenantID, e.UserID, e.ProjectID, e.TaskID, e.CategoryID, e.TimesheetID,
		e.StartTime, e.EndTime, e.DurationMinutes, e.Description, e.EntryType, e.Billable,
		e.HourlyRate, e.IsManual, e.IsActive, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return core.ErrCategoryNotFound
		}
		if isCheckViolation(err) {
			return core.ErrEntryInvalidArgs
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (db *DB) CreateEntry(ctx context.Context, e core.TimeEntry) (core.TimeEntry, error) {
	if err := insertEntry(ctx, db.conn, e); err != nil {
		return core.TimeEntry{}, err
	}
	return e, nil
}

func (db *DB) GetEntry(ctx context.Context, tenantID, id uuid.UUID) (core.TimeEntry, error) {
	const q = `
		SELECT ` + entryColumns + `
		FROM time_entries e
		WHERE e.id = $1 AND e.tenant_id = $2 AND e.is_active;
	`

	var e core.TimeEntry
	if err := db.conn.GetContext(ctx, &e, q, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.TimeEntry{}, core.ErrEntryNotFound
		}
		return core.TimeEntry{}, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

func (db *DB) UpdateEntry(ctx context.Context, e core.TimeEntry) (core.TimeEntry, error) {
	const q = `
		UPDATE time_entries AS e
		SET project_id = $3,
		    task_id = $4,
		    category_id = $5,
		    timesheet_id = $6,
		    start_time = $7,
		    end_time = $8,
		    duration_minutes = $9,
		    description = $10,
		    entry_type = $11,
		    billable = $12,
		    hourly_rate = $13,
		    is_active = $14,
		    updated_at = $15
		WHERE e.id = $1 AND e.tenant_id = $2
		RETURNING ` + entryColumns + `;
	`

	var out core.TimeEntry
	err := db.conn.GetContext(ctx, &out, q,
		e.ID, e.TenantID, e.ProjectID, e.TaskID, e.CategoryID, e.TimesheetID,
		e.StartTime, e.EndTime, e.DurationMinutes, e.Description, e.EntryType, e.Billable,
		e.HourlyRate, e.IsActive, e.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return core.TimeEntry{}, core.ErrCategoryNotFound
		}
		if isCheckViolation(err) {
			return core.TimeEntry{}, core.ErrEntryInvalidArgs
		}
		if errors.Is(err, sql.ErrNoRows) {
			return core.TimeEntry{}, core.ErrEntryNotFound
		}
		return core.TimeEntry{}, fmt.Errorf("update entry: %w", err)
	}
	return out, nil
}

// ListEntries applies LIMIT only when the filter asks for a page; internal
// callers (timesheet totals, reports) pass Limit 0 and read the full range.
func (db *DB) ListEntries(ctx context.Context, tenantID uuid.UUID, f core.ListEntriesFilter) ([]core.TimeEntry, error) {
	var (
		sb   strings.Builder
		args []any
		n    = 2
	)
	args = append(args, tenantID)

	sb.WriteString(`SELECT ` + entryColumns + `
		FROM time_entries e
		LEFT JOIN time_categories c ON c.id = e.category_id AND c.tenant_id = e.tenant_id
		WHERE e.tenant_id = $1 AND e.is_active`)

	if f.UserID != nil {
		args = append(args, *f.UserID)
		sb.WriteString(fmt.Sprintf(" AND e.user_id = $%d", n))
		n++
	}
	if f.ProjectID != nil {
		args = append(args, *f.ProjectID)
		sb.WriteString(fmt.Sprintf(" AND e.project_id = $%d", n))
		n++
	}
	if f.TaskID != nil {
		args = append(args, *f.TaskID)
		sb.WriteString(fmt.Sprintf(" AND e.task_id = $%d", n))
		n++
	}
	if f.TimesheetID != nil {
		args = append(args, *f.TimesheetID)
		sb.WriteString(fmt.Sprintf(" AND e.timesheet_id = $%d", n))
		n++
	}
	if f.From != nil {
		args = append(args, *f.From)
		sb.WriteString(fmt.Sprintf(" AND e.start_time::date >= $%d::date", n))
		n++
	}
	if f.To != nil {
		args = append(args, *f.To)
		sb.WriteString(fmt.Sprintf(" AND e.start_time::date <= $%d::date", n))
		n++
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		sb.WriteString(fmt.Sprintf(" AND (e.description ILIKE $%d OR c.name ILIKE $%d)", n, n))
		n++
	}

	switch f.Sort {
	case core.EntrySortDuration:
		sb.WriteString(" ORDER BY e.duration_minutes DESC, e.id ASC")
	case core.EntrySortCreatedAt:
		sb.WriteString(" ORDER BY e.created_at DESC, e.id ASC")
	default:
		sb.WriteString(" ORDER BY e.start_time DESC, e.id ASC")
	}

	if f.Limit > 0 {
		limit, offset := clampPage(f.Limit, f.Offset)
		args = append(args, limit, offset)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", n, n+1))
	}

	var out []core.TimeEntry
	if err := db.conn.SelectContext(ctx, &out, sb.String(), args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return out, nil
}
