package core_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"timetracking-service/core"
)

// fakeDB implements core.DB and core.Directory in memory, mirroring the
// semantics of the Postgres adapter closely enough for service tests.
type fakeDB struct {
	mu sync.RWMutex

	categories map[uuid.UUID]core.TimeCategory
	sessions   map[uuid.UUID]core.TrackingSession
	entries    map[uuid.UUID]core.TimeEntry
	timesheets map[uuid.UUID]core.Timesheet

	users    []core.UserRef
	projects map[uuid.UUID]string
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		categories: make(map[uuid.UUID]core.TimeCategory),
		sessions:   make(map[uuid.UUID]core.TrackingSession),
		entries:    make(map[uuid.UUID]core.TimeEntry),
		timesheets: make(map[uuid.UUID]core.Timesheet),
		projects:   make(map[uuid.UUID]string),
	}
}

func (db *fakeDB) Ping(context.Context) error { return nil }

// categories

func (db *fakeDB) CreateCategory(_ context.Context, c core.TimeCategory) (core.TimeCategory, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.categories {
		if existing.TenantID == c.TenantID && existing.IsActive && existing.Name == c.Name {
			return core.TimeCategory{}, core.ErrCategoryNameTaken
		}
	}
	db.categories[c.ID] = c
	return c, nil
}

func (db *fakeDB) GetCategory(_ context.Context, tenantID, id uuid.UUID) (core.TimeCategory, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	c, ok := db.categories[id]
	if !ok || c.TenantID != tenantID {
		return core.TimeCategory{}, core.ErrCategoryNotFound
	}
	return c, nil
}

func (db *fakeDB) ListCategories(_ context.Context, tenantID uuid.UUID) ([]core.TimeCategory, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var out []core.TimeCategory
	for _, c := range db.categories {
		if c.TenantID == tenantID && c.IsActive {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (db *fakeDB) UpdateCategory(_ context.Context, c core.TimeCategory) (core.TimeCategory, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	cur, ok := db.categories[c.ID]
	if !ok || cur.TenantID != c.TenantID {
		return core.TimeCategory{}, core.ErrCategoryNotFound
	}
	db.categories[c.ID] = c
	return c, nil
}

func (db *fakeDB) CategoryNameExists(_ context.Context, tenantID uuid.UUID, name string, exclude uuid.UUID) (bool, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, c := range db.categories {
		if c.TenantID == tenantID && c.IsActive && c.Name == name && c.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

// tracking sessions

func (db *fakeDB) StartSession(_ context.Context, s core.TrackingSession) (core.TrackingSession, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for id, existing := range db.sessions {
		if existing.TenantID == s.TenantID && existing.UserID == s.UserID && existing.IsActive {
			existing.Status = core.SessionStopped
			existing.IsActive = false
			existing.UpdatedAt = s.UpdatedAt
			db.sessions[id] = existing
		}
	}
	db.sessions[s.ID] = s
	return s, nil
}

func (db *fakeDB) GetSession(_ context.Context, tenantID, id uuid.UUID) (core.TrackingSession, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	s, ok := db.sessions[id]
	if !ok || s.TenantID != tenantID {
		return core.TrackingSession{}, core.ErrSessionNotFound
	}
	return s, nil
}

func (db *fakeDB) GetActiveSession(_ context.Context, tenantID, userID uuid.UUID) (core.TrackingSession, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, s := range db.sessions {
		if s.TenantID == tenantID && s.UserID == userID && s.IsActive {
			return s, nil
		}
	}
	return core.TrackingSession{}, core.ErrSessionNotFound
}

func (db *fakeDB) ListSessionsByUser(_ context.Context, tenantID, userID uuid.UUID) ([]core.TrackingSession, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var out []core.TrackingSession
	for _, s := range db.sessions {
		if s.TenantID == tenantID && s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	return out, nil
}

func (db *fakeDB) UpdateSession(_ context.Context, s core.TrackingSession) (core.TrackingSession, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	cur, ok := db.sessions[s.ID]
	if !ok || cur.TenantID != s.TenantID {
		return core.TrackingSession{}, core.ErrSessionNotFound
	}
	db.sessions[s.ID] = s
	return s, nil
}

func (db *fakeDB) StopSession(_ context.Context, s core.TrackingSession, entry *core.TimeEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	cur, ok := db.sessions[s.ID]
	if !ok || cur.TenantID != s.TenantID {
		return core.ErrSessionNotFound
	}
	db.sessions[s.ID] = s
	if entry != nil {
		db.entries[entry.ID] = *entry
	}
	return nil
}

// time entries

func (db *fakeDB) CreateEntry(_ context.Context, e core.TimeEntry) (core.TimeEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.entries[e.ID] = e
	return e, nil
}

func (db *fakeDB) GetEntry(_ context.Context, tenantID, id uuid.UUID) (core.TimeEntry, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	e, ok := db.entries[id]
	if !ok || e.TenantID != tenantID || !e.IsActive {
		return core.TimeEntry{}, core.ErrEntryNotFound
	}
	return e, nil
}

func (db *fakeDB) UpdateEntry(_ context.Context, e core.TimeEntry) (core.TimeEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	cur, ok := db.entries[e.ID]
	if !ok || cur.TenantID != e.TenantID {
		return core.TimeEntry{}, core.ErrEntryNotFound
	}
	db.entries[e.ID] = e
	return e, nil
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func onOrAfterDate(t, bound time.Time) bool {
	return sameDate(t, bound) || t.UTC().After(bound.UTC())
}

func onOrBeforeDate(t, bound time.Time) bool {
	return sameDate(t, bound) || t.UTC().Before(bound.UTC())
}

func (db *fakeDB) ListEntries(_ context.Context, tenantID uuid.UUID, f core.ListEntriesFilter) ([]core.TimeEntry, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var out []core.TimeEntry
	for _, e := range db.entries {
		if e.TenantID != tenantID || !e.IsActive {
			continue
		}
		if f.UserID != nil && e.UserID != *f.UserID {
			continue
		}
		if f.ProjectID != nil && (e.ProjectID == nil || *e.ProjectID != *f.ProjectID) {
			continue
		}
		if f.TaskID != nil && (e.TaskID == nil || *e.TaskID != *f.TaskID) {
			continue
		}
		if f.TimesheetID != nil && (e.TimesheetID == nil || *e.TimesheetID != *f.TimesheetID) {
			continue
		}
		if f.From != nil && !onOrAfterDate(e.StartTime, *f.From) {
			continue
		}
		if f.To != nil && !onOrBeforeDate(e.StartTime, *f.To) {
			continue
		}
		if s := strings.TrimSpace(f.Search); s != "" {
			needle := strings.ToLower(s)
			categoryName := ""
			if c, ok := db.categories[e.CategoryID]; ok {
				categoryName = c.Name
			}
			if !strings.Contains(strings.ToLower(e.Description), needle) &&
				!strings.Contains(strings.ToLower(categoryName), needle) {
				continue
			}
		}
		out = append(out, e)
	}

	switch f.Sort {
	case core.EntrySortDuration:
		sort.Slice(out, func(i, j int) bool { return out[i].DurationMinutes > out[j].DurationMinutes })
	case core.EntrySortCreatedAt:
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	}

	if f.Limit > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
		if f.Limit < len(out) {
			out = out[:f.Limit]
		}
	}
	return out, nil
}

// timesheets

func (db *fakeDB) CreateTimesheet(_ context.Context, t core.Timesheet) (core.Timesheet, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, existing := range db.timesheets {
		if existing.TenantID == t.TenantID && existing.UserID == t.UserID && existing.IsActive &&
			sameDate(existing.StartDate, t.StartDate) && sameDate(existing.EndDate, t.EndDate) {
			return core.Timesheet{}, core.ErrTimesheetExists
		}
	}
	db.timesheets[t.ID] = t
	return t, nil
}

func (db *fakeDB) GetTimesheet(_ context.Context, tenantID, id uuid.UUID) (core.Timesheet, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	t, ok := db.timesheets[id]
	if !ok || t.TenantID != tenantID || !t.IsActive {
		return core.Timesheet{}, core.ErrTimesheetNotFound
	}
	return t, nil
}

func (db *fakeDB) FindTimesheet(_ context.Context, tenantID, userID uuid.UUID, start, end time.Time) (core.Timesheet, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	for _, t := range db.timesheets {
		if t.TenantID == tenantID && t.UserID == userID && t.IsActive &&
			sameDate(t.StartDate, start) && sameDate(t.EndDate, end) {
			return t, nil
		}
	}
	return core.Timesheet{}, core.ErrTimesheetNotFound
}

func (db *fakeDB) UpdateTimesheet(_ context.Context, t core.Timesheet) (core.Timesheet, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	cur, ok := db.timesheets[t.ID]
	if !ok || cur.TenantID != t.TenantID {
		return core.Timesheet{}, core.ErrTimesheetNotFound
	}
	db.timesheets[t.ID] = t
	return t, nil
}

func (db *fakeDB) ListTimesheets(_ context.Context, tenantID uuid.UUID, f core.ListTimesheetsFilter) ([]core.Timesheet, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var out []core.Timesheet
	for _, t := range db.timesheets {
		if t.TenantID != tenantID || !t.IsActive {
			continue
		}
		if f.UserID != nil && t.UserID != *f.UserID {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if f.Limit > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
		if f.Limit < len(out) {
			out = out[:f.Limit]
		}
	}
	return out, nil
}

// directory

func (db *fakeDB) ListUsers(_ context.Context, _ uuid.UUID) ([]core.UserRef, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return append([]core.UserRef(nil), db.users...), nil
}

func (db *fakeDB) ProjectNames(_ context.Context, _ uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make(map[uuid.UUID]string)
	for _, id := range ids {
		if name, ok := db.projects[id]; ok {
			out[id] = name
		}
	}
	return out, nil
}
