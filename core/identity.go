package core

import "github.com/google/uuid"

// Identity carries the authenticated tenant and user for one request. It is
// threaded explicitly through every service call so tests can fabricate it.
type Identity struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
}

func (id Identity) Valid() bool {
	return id.TenantID != uuid.Nil && id.UserID != uuid.Nil
}
