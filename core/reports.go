package core

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

type ProjectBreakdown struct {
	ProjectID     *uuid.UUID `json:"project_id,omitempty"`
	ProjectName   string     `json:"project_name"`
	TotalHours    float64    `json:"total_hours"`
	BillableHours float64    `json:"billable_hours"`
	Percentage    float64    `json:"percentage"`
}

type CategoryBreakdown struct {
	CategoryID    uuid.UUID `json:"category_id"`
	CategoryName  string    `json:"category_name"`
	Color         string    `json:"color"`
	TotalHours    float64   `json:"total_hours"`
	BillableHours float64   `json:"billable_hours"`
	Percentage    float64   `json:"percentage"`
}

type DailyBreakdown struct {
	Date          string  `json:"date"`
	TotalHours    float64 `json:"total_hours"`
	BillableHours float64 `json:"billable_hours"`
	EntryCount    int     `json:"entry_count"`
	Percentage    float64 `json:"percentage"`
}

type UserBreakdown struct {
	UserID        uuid.UUID `json:"user_id"`
	UserName      string    `json:"user_name"`
	TotalHours    float64   `json:"total_hours"`
	BillableHours float64   `json:"billable_hours"`
	Percentage    float64   `json:"percentage"`
}

type UserTimeReport struct {
	UserID           uuid.UUID           `json:"user_id"`
	StartDate        time.Time           `json:"start_date"`
	EndDate          time.Time           `json:"end_date"`
	TotalHours       float64             `json:"total_hours"`
	BillableHours    float64             `json:"billable_hours"`
	NonBillableHours float64             `json:"non_billable_hours"`
	UtilizationRate  float64             `json:"utilization_rate"`
	ByProject        []ProjectBreakdown  `json:"by_project"`
	ByCategory       []CategoryBreakdown `json:"by_category"`
	ByDay            []DailyBreakdown    `json:"by_day"`
}

type TeamMemberSummary struct {
	UserID          uuid.UUID `json:"user_id"`
	UserName        string    `json:"user_name"`
	TotalHours      float64   `json:"total_hours"`
	BillableHours   float64   `json:"billable_hours"`
	UtilizationRate float64   `json:"utilization_rate"`
}

type TeamTimeReport struct {
	StartDate          time.Time           `json:"start_date"`
	EndDate            time.Time           `json:"end_date"`
	Members            []TeamMemberSummary `json:"members"`
	ByProject          []ProjectBreakdown  `json:"by_project"`
	AverageUtilization float64             `json:"average_utilization"`
}

type ProjectTimeReport struct {
	ProjectID        uuid.UUID           `json:"project_id"`
	ProjectName      string              `json:"project_name"`
	StartDate        time.Time           `json:"start_date"`
	EndDate          time.Time           `json:"end_date"`
	TotalHours       float64             `json:"total_hours"`
	BillableHours    float64             `json:"billable_hours"`
	NonBillableHours float64             `json:"non_billable_hours"`
	UtilizationRate  float64             `json:"utilization_rate"`
	ByUser           []UserBreakdown     `json:"by_user"`
	ByCategory       []CategoryBreakdown `json:"by_category"`
	ByDay            []DailyBreakdown    `json:"by_day"`
}

// UserTimeReport rolls one user's ledger over [start, end] into totals plus
// project, category and daily breakdowns. A nil userID means the caller.
func (s *Service) UserTimeReport(ctx context.Context, ident Identity, userID uuid.UUID, start, end time.Time) (UserTimeReport, error) {
	if !ident.Valid() {
		return UserTimeReport{}, ErrInvalidContext
	}
	if userID == uuid.Nil {
		userID = ident.UserID
	}

	entries, err := s.db.ListEntries(ctx, ident.TenantID, ListEntriesFilter{
		UserID: &userID,
		From:   &start,
		To:     &end,
	})
	if err != nil {
		return UserTimeReport{}, err
	}

	totalMin, billableMin := sumMinutes(entries)

	byProject, err := s.projectBreakdown(ctx, ident.TenantID, entries, totalMin)
	if err != nil {
		return UserTimeReport{}, err
	}
	byCategory, err := s.categoryBreakdown(ctx, ident.TenantID, entries, totalMin)
	if err != nil {
		return UserTimeReport{}, err
	}

	return UserTimeReport{
		UserID:           userID,
		StartDate:        start,
		EndDate:          end,
		TotalHours:       hours(totalMin),
		BillableHours:    hours(billableMin),
		NonBillableHours: hours(totalMin - billableMin),
		UtilizationRate:  rate(billableMin, totalMin),
		ByProject:        byProject,
		ByCategory:       byCategory,
		ByDay:            dailyBreakdown(entries, totalMin),
	}, nil
}

// TeamTimeReport summarizes every tenant user with at least one entry in the
// range and aggregates a tenant-wide project breakdown.
func (s *Service) TeamTimeReport(ctx context.Context, ident Identity, start, end time.Time) (TeamTimeReport, error) {
	if !ident.Valid() {
		return TeamTimeReport{}, ErrInvalidContext
	}

	entries, err := s.db.ListEntries(ctx, ident.TenantID, ListEntriesFilter{
		From: &start,
		To:   &end,
	})
	if err != nil {
		return TeamTimeReport{}, err
	}

	users, err := s.dir.ListUsers(ctx, ident.TenantID)
	if err != nil {
		return TeamTimeReport{}, err
	}

	type acc struct{ total, billable int }
	perUser := make(map[uuid.UUID]*acc)
	for _, e := range entries {
		a := perUser[e.UserID]
		if a == nil {
			a = &acc{}
			perUser[e.UserID] = a
		}
		a.total += e.DurationMinutes
		if e.Billable == Billable {
			a.billable += e.DurationMinutes
		}
	}

	var members []TeamMemberSummary
	var utilizationSum float64
	for _, u := range users {
		a := perUser[u.ID]
		if a == nil || a.total == 0 {
			continue
		}
		util := rate(a.billable, a.total)
		utilizationSum += util
		members = append(members, TeamMemberSummary{
			UserID:          u.ID,
			UserName:        u.Name,
			TotalHours:      hours(a.total),
			BillableHours:   hours(a.billable),
			UtilizationRate: util,
		})
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].TotalHours != members[j].TotalHours {
			return members[i].TotalHours > members[j].TotalHours
		}
		return members[i].UserName < members[j].UserName
	})

	totalMin, _ := sumMinutes(entries)
	byProject, err := s.projectBreakdown(ctx, ident.TenantID, entries, totalMin)
	if err != nil {
		return TeamTimeReport{}, err
	}

	var avg float64
	if len(members) > 0 {
		avg = round2(utilizationSum / float64(len(members)))
	}

	return TeamTimeReport{
		StartDate:          start,
		EndDate:            end,
		Members:            members,
		ByProject:          byProject,
		AverageUtilization: avg,
	}, nil
}

// ProjectTimeReport rolls the project's entries in range into totals plus
// per-user, category and daily breakdowns.
func (s *Service) ProjectTimeReport(ctx context.Context, ident Identity, projectID uuid.UUID, start, end time.Time) (ProjectTimeReport, error) {
	if !ident.Valid() {
		return ProjectTimeReport{}, ErrInvalidContext
	}
	if projectID == uuid.Nil {
		return ProjectTimeReport{}, ErrEntryInvalidArgs
	}

	entries, err := s.db.ListEntries(ctx, ident.TenantID, ListEntriesFilter{
		ProjectID: &projectID,
		From:      &start,
		To:        &end,
	})
	if err != nil {
		return ProjectTimeReport{}, err
	}

	totalMin, billableMin := sumMinutes(entries)

	byUser, err := s.userBreakdown(ctx, ident.TenantID, entries, totalMin)
	if err != nil {
		return ProjectTimeReport{}, err
	}
	byCategory, err := s.categoryBreakdown(ctx, ident.TenantID, entries, totalMin)
	if err != nil {
		return ProjectTimeReport{}, err
	}

	names, err := s.dir.ProjectNames(ctx, ident.TenantID, []uuid.UUID{projectID})
	if err != nil {
		return ProjectTimeReport{}, err
	}
	name, ok := names[projectID]
	if !ok {
		name = "Unknown Project"
	}

	return ProjectTimeReport{
		ProjectID:        projectID,
		ProjectName:      name,
		StartDate:        start,
		EndDate:          end,
		TotalHours:       hours(totalMin),
		BillableHours:    hours(billableMin),
		NonBillableHours: hours(totalMin - billableMin),
		UtilizationRate:  rate(billableMin, totalMin),
		ByUser:           byUser,
		ByCategory:       byCategory,
		ByDay:            dailyBreakdown(entries, totalMin),
	}, nil
}

func sumMinutes(entries []TimeEntry) (total, billable int) {
	for _, e := range entries {
		total += e.DurationMinutes
		if e.Billable == Billable {
			billable += e.DurationMinutes
		}
	}
	return total, billable
}

func hours(minutes int) float64 {
	return float64(minutes) / 60
}

// rate is billable over total as a percentage, 0 when there is no time.
func rate(billable, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(billable) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Service) projectBreakdown(ctx context.Context, tenantID uuid.UUID, entries []TimeEntry, totalMin int) ([]ProjectBreakdown, error) {
	type acc struct{ total, billable int }
	groups := make(map[uuid.UUID]*acc)
	var noProject acc
	for _, e := range entries {
		if e.ProjectID == nil {
			noProject.total += e.DurationMinutes
			if e.Billable == Billable {
				noProject.billable += e.DurationMinutes
			}
			continue
		}
		a := groups[*e.ProjectID]
		if a == nil {
			a = &acc{}
			groups[*e.ProjectID] = a
		}
		a.total += e.DurationMinutes
		if e.Billable == Billable {
			a.billable += e.DurationMinutes
		}
	}

	ids := make([]uuid.UUID, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	names, err := s.dir.ProjectNames(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}

	var out []ProjectBreakdown
	for id, a := range groups {
		pid := id
		name, ok := names[id]
		if !ok {
			name = "Unknown Project"
		}
		out = append(out, ProjectBreakdown{
			ProjectID:     &pid,
			ProjectName:   name,
			TotalHours:    hours(a.total),
			BillableHours: hours(a.billable),
			Percentage:    rate(a.total, totalMin),
		})
	}
	if noProject.total > 0 {
		out = append(out, ProjectBreakdown{
			ProjectName:   "Unknown Project",
			TotalHours:    hours(noProject.total),
			BillableHours: hours(noProject.billable),
			Percentage:    rate(noProject.total, totalMin),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalHours != out[j].TotalHours {
			return out[i].TotalHours > out[j].TotalHours
		}
		return out[i].ProjectName < out[j].ProjectName
	})
	return out, nil
}

func (s *Service) categoryBreakdown(ctx context.Context, tenantID uuid.UUID, entries []TimeEntry, totalMin int) ([]CategoryBreakdown, error) {
	categories, err := s.db.ListCategories(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]TimeCategory, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	type acc struct{ total, billable int }
	groups := make(map[uuid.UUID]*acc)
	for _, e := range entries {
		a := groups[e.CategoryID]
		if a == nil {
			a = &acc{}
			groups[e.CategoryID] = a
		}
		a.total += e.DurationMinutes
		if e.Billable == Billable {
			a.billable += e.DurationMinutes
		}
	}

	var out []CategoryBreakdown
	for id, a := range groups {
		name, color := "Unknown Category", ""
		if c, ok := byID[id]; ok {
			name, color = c.Name, c.Color
		}
		out = append(out, CategoryBreakdown{
			CategoryID:    id,
			CategoryName:  name,
			Color:         color,
			TotalHours:    hours(a.total),
			BillableHours: hours(a.billable),
			Percentage:    rate(a.total, totalMin),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalHours != out[j].TotalHours {
			return out[i].TotalHours > out[j].TotalHours
		}
		return out[i].CategoryName < out[j].CategoryName
	})
	return out, nil
}

func (s *Service) userBreakdown(ctx context.Context, tenantID uuid.UUID, entries []TimeEntry, totalMin int) ([]UserBreakdown, error) {
	users, err := s.dir.ListUsers(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	type acc struct{ total, billable int }
	groups := make(map[uuid.UUID]*acc)
	for _, e := range entries {
		a := groups[e.UserID]
		if a == nil {
			a = &acc{}
			groups[e.UserID] = a
		}
		a.total += e.DurationMinutes
		if e.Billable == Billable {
			a.billable += e.DurationMinutes
		}
	}

	var out []UserBreakdown
	for id, a := range groups {
		name, ok := names[id]
		if !ok {
			name = "Unknown User"
		}
		out = append(out, UserBreakdown{
			UserID:        id,
			UserName:      name,
			TotalHours:    hours(a.total),
			BillableHours: hours(a.billable),
			Percentage:    rate(a.total, totalMin),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalHours != out[j].TotalHours {
			return out[i].TotalHours > out[j].TotalHours
		}
		return out[i].UserName < out[j].UserName
	})
	return out, nil
}

// dailyBreakdown groups by the UTC date of the entry start, ascending.
func dailyBreakdown(entries []TimeEntry, totalMin int) []DailyBreakdown {
	type acc struct {
		total, billable int
		count           int
	}
	groups := make(map[string]*acc)
	for _, e := range entries {
		day := e.StartTime.UTC().Format("2006-01-02")
		a := groups[day]
		if a == nil {
			a = &acc{}
			groups[day] = a
		}
		a.total += e.DurationMinutes
		if e.Billable == Billable {
			a.billable += e.DurationMinutes
		}
		a.count++
	}

	var out []DailyBreakdown
	for day, a := range groups {
		out = append(out, DailyBreakdown{
			Date:          day,
			TotalHours:    hours(a.total),
			BillableHours: hours(a.billable),
			EntryCount:    a.count,
			Percentage:    rate(a.total, totalMin),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
