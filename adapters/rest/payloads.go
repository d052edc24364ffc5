package rest

import "time"

type CreateCategoryIn struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Color           string `json:"color"`
	DefaultBillable string `json:"default_billable"`
}

type UpdateCategoryIn struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	Color           *string `json:"color,omitempty"`
	DefaultBillable *string `json:"default_billable,omitempty"`
}

type StartTrackingIn struct {
	CategoryID  string  `json:"category_id"`
	ProjectID   *string `json:"project_id,omitempty"`
	TaskID      *string `json:"task_id,omitempty"`
	Description string  `json:"description"`
}

type StopTrackingIn struct {
	Description     string `json:"description"`
	CreateTimeEntry bool   `json:"create_time_entry"`
}

// UpdateTrackingIn: an empty string for project_id or task_id clears the
// reference.
type UpdateTrackingIn struct {
	CategoryID  *string `json:"category_id,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
	TaskID      *string `json:"task_id,omitempty"`
	Description *string `json:"description,omitempty"`
}

type StopTrackingOut struct {
	Session any `json:"session"`
	Entry   any `json:"entry,omitempty"`
}

type EntryIn struct {
	ProjectID       *string    `json:"project_id,omitempty"`
	TaskID          *string    `json:"task_id,omitempty"`
	CategoryID      string     `json:"category_id"`
	TimesheetID     *string    `json:"timesheet_id,omitempty"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	Description     string     `json:"description"`
	EntryType       string     `json:"entry_type"`
	Billable        string     `json:"billable"`
	HourlyRate      *float64   `json:"hourly_rate,omitempty"`
}

type CreateTimesheetIn struct {
	UserID    *string `json:"user_id,omitempty"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

type UpdateTimesheetIn struct {
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

type ReviewTimesheetIn struct {
	Notes string `json:"notes"`
}
