package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"timetracking-service/core"
)

func (db *DB) CreateCategory(ctx context.Context, c core.TimeCategory) (core.TimeCategory, error) {
	const q = `
		INSERT INTO time_categories (id, tenant_id, name, description, color, default_billable, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := db.conn.ExecContext(ctx, q,
		c.ID, c.TenantID, c.Name, c.Description, c.Color, c.DefaultBillable, c.IsActive, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.TimeCategory{}, core.ErrCategoryNameTaken
		}
		if isCheckViolation(err) {
			return core.TimeCategory{}, core.ErrCategoryInvalidArgs
		}
		return core.TimeCategory{}, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

func (db *DB) GetCategory(ctx context.Context, tenantID, id uuid.UUID) (core.TimeCategory, error) {
	const q = `
		SELECT id, tenant_id, name, description, color, default_billable, is_active, created_at, updated_at
		FROM time_categories
		WHERE id = $1 AND tenant_id = $2;
	`

	var c core.TimeCategory
	if err := db.conn.GetContext(ctx, &c, q, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.TimeCategory{}, core.ErrCategoryNotFound
		}
		return core.TimeCategory{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (db *DB) ListCategories(ctx context.Context, tenantID uuid.UUID) ([]core.TimeCategory, error) {
	const q = `
		SELECT id, tenant_id, name, description, color, default_billable, is_active, created_at, updated_at
		FROM time_categories
		WHERE tenant_id = $1 AND is_active
		ORDER BY name ASC, id ASC;
	`

	var out []core.TimeCategory
	if err := db.conn.SelectContext(ctx, &out, q, tenantID); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (db *DB) UpdateCategory(ctx context.Context, c core.TimeCategory) (core.TimeCategory, error) {
	const q = `
		UPDATE time_categories
		SET name = $3,
		    description = $4,
		    color = $5,
		    default_billable = $6,
		    is_active = $7,
		    updated_at = $8
		WHERE id = $1 AND tenant_id = $2
		RETURNING id, tenant_id, name, description, color, default_billable, is_active, created_at, updated_at;
	`

	var out core.TimeCategory
	err := db.conn.GetContext(ctx, &out, q,
		c.ID, c.TenantID, c.Name, c.Description, c.Color, c.DefaultBillable, c.IsActive, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return core.TimeCategory{}, core.ErrCategoryNameTaken
		}
		if errors.Is(err, sql.ErrNoRows) {
			return core.TimeCategory{}, core.ErrCategoryNotFound
		}
		return core.TimeCategory{}, fmt.Errorf("update category: %w", err)
	}
	return out, nil
}

func (db *DB) CategoryNameExists(ctx context.Context, tenantID uuid.UUID, name string, exclude uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM time_categories
			WHERE tenant_id = $1 AND name = $2 AND is_active AND id <> $3
		);
	`

	var exists bool
	if err := db.conn.GetContext(ctx, &exists, q, tenantID, name, exclude); err != nil {
		return false, fmt.Errorf("category name exists: %w", err)
	}
	return exists, nil
}
