package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"timetracking-service/core"
)

// Directory lookups read the replicated users/projects tables. Both are
// owned by the organization service; this side only resolves names.

func (db *DB) ListUsers(ctx context.Context, tenantID uuid.UUID) ([]core.UserRef, error) {
	const q = `SELECT id, name FROM users WHERE tenant_id = $1 ORDER BY name ASC, id ASC;`

	var out []core.UserRef
	if err := db.conn.SelectContext(ctx, &out, q, tenantID); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (db *DB) ProjectNames(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]string{}, nil
	}

	query, args, err := sqlx.In(`SELECT id, name FROM projects WHERE tenant_id = ? AND id IN (?);`, tenantID, ids)
	if err != nil {
		return nil, fmt.Errorf("build project names query: %w", err)
	}
	query = db.conn.Rebind(query)

	var refs []core.ProjectRef
	if err := db.conn.SelectContext(ctx, &refs, query, args...); err != nil {
		return nil, fmt.Errorf("project names: %w", err)
	}

	out := make(map[uuid.UUID]string, len(refs))
	for _, r := range refs {
		out[r.ID] = r.Name
	}
	return out, nil
}
