package core_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"timetracking-service/core"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestService(t *testing.T) (*fakeDB, *core.Service, *fakeClock, core.Identity) {
	t.Helper()

	db := newFakeDB()
	clock := newFakeClock()
	svc := core.NewServiceWithClock(db, db, clock.Now)
	ident := core.Identity{TenantID: uuid.New(), UserID: uuid.New()}
	return db, svc, clock, ident
}

func mustCreateCategory(t *testing.T, svc *core.Service, ident core.Identity, name string) core.TimeCategory {
	t.Helper()

	category, err := svc.CreateCategory(context.Background(), ident, core.CategoryInput{
		Name:            name,
		DefaultBillable: core.NonBillable,
	})
	if err != nil {
		t.Fatalf("failed to prepare category: %v", err)
	}
	return category
}

func mustCreateEntry(t *testing.T, svc *core.Service, ident core.Identity, in core.EntryInput) core.TimeEntry {
	t.Helper()

	entry, err := svc.CreateEntry(context.Background(), ident, in)
	if err != nil {
		t.Fatalf("failed to prepare entry: %v", err)
	}
	return entry
}

func mustCreateTimesheet(t *testing.T, svc *core.Service, ident core.Identity, in core.TimesheetInput) core.Timesheet {
	t.Helper()

	sheet, err := svc.CreateTimesheet(context.Background(), ident, in)
	if err != nil {
		t.Fatalf("failed to prepare timesheet: %v", err)
	}
	return sheet
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
