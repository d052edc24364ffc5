package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"timetracking-service/core"
)

const sessionColumns = `
	id, tenant_id, user_id, project_id, task_id, category_id, description,
	start_time, last_activity_at, paused_minutes, status, is_active, created_at, updated_at`

// StartSession force-stops the owner's live sessions and inserts the new one
// in one transaction. The partial unique index on (tenant_id, user_id) backs
// this up against concurrent starts.
func (db *DB) StartSession(ctx context.Context, s core.TrackingSession) (core.TrackingSession, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return core.TrackingSession{}, fmt.Errorf("begin start session: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const stop = `
		UPDATE tracking_sessions
		SET status = 'stopped', is_active = FALSE, updated_at = $3
		WHERE tenant_id = $1 AND user_id = $2 AND is_active;
	`
	if _, err := tx.ExecContext(ctx, stop, s.TenantID, s.UserID, s.UpdatedAt); err != nil {
		return core.TrackingSession{}, fmt.Errorf("stop previous sessions: %w", err)
	}

	const insert = `
		INSERT INTO tracking_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.ExecContext(ctx, insert,
		s.ID, s.TenantID, s.UserID, s.ProjectID, s.TaskID, s.CategoryID, s.Description,
		s.StartTime, s.LastActivityAt, s.PausedMinutes, s.Status, s.IsActive, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return core.TrackingSession{}, core.ErrCategoryNotFound
		}
		return core.TrackingSession{}, fmt.Errorf("insert session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return core.TrackingSession{}, fmt.Errorf("commit start session: %w", err)
	}
	return s, nil
}

func (db *DB) GetSession(ctx context.Context, tenantID, id uuid.UUID) (core.TrackingSession, error) {
	const q = `SELECT ` + sessionColumns + ` FROM tracking_sessions WHERE id = $1 AND tenant_id = $2;`

	var s core.TrackingSession
	if err := db.conn.GetContext(ctx, &s, q, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.TrackingSession{}, core.ErrSessionNotFound
		}
		return core.TrackingSession{}, fmt.Errorf("get session: %w", err)
	}
	return s, nil
}

func (db *DB) GetActiveSession(ctx context.Context, tenantID, userID uuid.UUID) (core.TrackingSession, error) {
	const q = `
		SELECT ` + sessionColumns + `
		FROM tracking_sessions
		WHERE tenant_id = $1 AND user_id = $2 AND is_active
		LIMIT 1;
	`

	var s core.TrackingSession
	if err := db.conn.GetContext(ctx, &s, q, tenantID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.TrackingSession{}, core.ErrSessionNotFound
		}
		return core.TrackingSession{}, fmt.Errorf("get active session: %w", err)
	}
	return s, nil
}

func (db *DB) ListSessionsByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]core.TrackingSession, error) {
	const q = `
		SELECT ` + sessionColumns + `
		FROM tracking_sessions
		WHERE tenant_id = $1 AND user_id = $2
		ORDER BY start_time DESC, id ASC;
	`

	var out []core.TrackingSession
	if err := db.conn.SelectContext(ctx, &out, q, tenantID, userID); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return out, nil
}

func (db *DB) UpdateSession(ctx context.Context, s core.TrackingSession) (core.TrackingSession, error) {
	const q = `
		UPDATE tracking_sessions
		SET project_id = $3,
		    task_id = $4,
		    category_id = $5,
		    description = $6,
		    last_activity_at = $7,
		    paused_minutes = $8,
		    status = $9,
		    is_active = $10,
		    updated_at = $11
		WHERE id = $1 AND tenant_id = $2
		RETURNING ` + sessionColumns + `;
	`

	var out core.TrackingSession
	err := db.conn.GetContext(ctx, &out, q,
		s.ID, s.TenantID, s.ProjectID, s.TaskID, s.CategoryID, s.Description,
		s.LastActivityAt, s.PausedMinutes, s.Status, s.IsActive, s.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return core.TrackingSession{}, core.ErrCategoryNotFound
		}
		if isCheckViolation(err) {
			return core.TrackingSession{}, core.ErrSessionInvalidArgs
		}
		if errors.Is(err, sql.ErrNoRows) {
			return core.TrackingSession{}, core.ErrSessionNotFound
		}
		return core.TrackingSession{}, fmt.Errorf("update session: %w", err)
	}
	return out, nil
}

// StopSession persists the terminal session state and the materialized entry,
// when present, atomically.
func (db *DB) StopSession(ctx context.Context, s core.TrackingSession, entry *core.TimeEntry) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin stop session: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
		UPDATE tracking_sessions
		SET status = $3, is_active = $4, updated_at = $5
		WHERE id = $1 AND tenant_id = $2;
	`
	res, err := tx.ExecContext(ctx, q, s.ID, s.TenantID, s.Status, s.IsActive, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("stop session: %w", err)
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return core.ErrSessionNotFound
	}

	if entry != nil {
		if err := insertEntry(ctx, tx, *entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit stop session: %w", err)
	}
	return nil
}
