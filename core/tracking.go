package core

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type StartTrackingInput struct {
	CategoryID  uuid.UUID
	ProjectID   *uuid.UUID
	TaskID      *uuid.UUID
	Description string
}

type StopTrackingInput struct {
	Description     string
	CreateTimeEntry bool
}

// SessionPatch merges into an existing session. For ProjectID and TaskID a
// uuid.Nil value clears the reference.
type SessionPatch struct {
	CategoryID  *uuid.UUID
	ProjectID   *uuid.UUID
	TaskID      *uuid.UUID
	Description *string
}

// StartTracking opens a new running session for the caller. Any session still
// active for the same user is force-stopped first (without materializing an
// entry), which keeps the at-most-one-active-session invariant.
func (s *Service) StartTracking(ctx context.Context, ident Identity, in StartTrackingInput) (TrackingSession, error) {
	if !ident.Valid() {
		return TrackingSession{}, ErrInvalidContext
	}
	if in.CategoryID == uuid.Nil {
		return TrackingSession{}, ErrSessionInvalidArgs
	}
	if _, err := s.db.GetCategory(ctx, ident.TenantID, in.CategoryID); err != nil {
		return TrackingSession{}, err
	}

	now := s.now()
	session := TrackingSession{
		ID:             uuid.New(),
		TenantID:       ident.TenantID,
		UserID:         ident.UserID,
		ProjectID:      in.ProjectID,
		TaskID:         in.TaskID,
		CategoryID:     in.CategoryID,
		Description:    strings.TrimSpace(in.Description),
		StartTime:      now,
		LastActivityAt: now,
		Status:         SessionRunning,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return s.db.StartSession(ctx, session)
}

// StopTracking terminates the session and optionally materializes a time
// entry covering the tracked span minus accumulated pauses. The entry is
// created as non-billable "other" time; callers reclassify it afterwards.
func (s *Service) StopTracking(ctx context.Context, ident Identity, id uuid.UUID, in StopTrackingInput) (TrackingSession, *TimeEntry, error) {
	if !ident.Valid() {
		return TrackingSession{}, nil, ErrInvalidContext
	}

	session, err := s.db.GetSession(ctx, ident.TenantID, id)
	if err != nil {
		return TrackingSession{}, nil, err
	}
	if session.UserID != ident.UserID {
		return TrackingSession{}, nil, ErrSessionNotFound
	}
	if !session.IsActive {
		return TrackingSession{}, nil, ErrSessionNotActive
	}

	now := s.now()
	session.Status = SessionStopped
	session.IsActive = false
	session.UpdatedAt = now

	var entry *TimeEntry
	if in.CreateTimeEntry {
		total := minutesBetween(session.StartTime, now) - session.PausedMinutes
		if total < 0 {
			total = 0
		}
		description := strings.TrimSpace(in.Description)
		if description == "" {
			description = session.Description
		}
		end := now
		entry = &TimeEntry{
			ID:              uuid.New(),
			TenantID:        session.TenantID,
			UserID:          session.UserID,
			ProjectID:       session.ProjectID,
			TaskID:          session.TaskID,
			CategoryID:      session.CategoryID,
			StartTime:       session.StartTime,
			EndTime:         &end,
			DurationMinutes: total,
			Description:     description,
			EntryType:       EntryOther,
			Billable:        NonBillable,
			IsManual:        false,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
	}

	if err := s.db.StopSession(ctx, session, entry); err != nil {
		return TrackingSession{}, nil, err
	}
	return session, entry, nil
}

func (s *Service) PauseTracking(ctx context.Context, ident Identity, id uuid.UUID) (TrackingSession, error) {
	if !ident.Valid() {
		return TrackingSession{}, ErrInvalidContext
	}

	session, err := s.db.GetSession(ctx, ident.TenantID, id)
	if err != nil {
		return TrackingSession{}, err
	}
	if session.UserID != ident.UserID {
		return TrackingSession{}, ErrSessionNotFound
	}
	if session.Status != SessionRunning {
		return TrackingSession{}, ErrSessionNotRunning
	}

	now := s.now()
	session.Status = SessionPaused
	session.LastActivityAt = now
	session.UpdatedAt = now
	return s.db.UpdateSession(ctx, session)
}

// ResumeTracking folds the elapsed pause into the paused-minutes accumulator
// before the session goes back to running.
func (s *Service) ResumeTracking(ctx context.Context, ident Identity, id uuid.UUID) (TrackingSession, error) {
	if !ident.Valid() {
		return TrackingSession{}, ErrInvalidContext
	}

	session, err := s.db.GetSession(ctx, ident.TenantID, id)
	if err != nil {
		return TrackingSession{}, err
	}
	if session.UserID != ident.UserID {
		return TrackingSession{}, ErrSessionNotFound
	}
	if session.Status != SessionPaused {
		return TrackingSession{}, ErrSessionNotPaused
	}

	now := s.now()
	session.PausedMinutes += minutesBetween(session.LastActivityAt, now)
	session.Status = SessionRunning
	session.LastActivityAt = now
	session.UpdatedAt = now
	return s.db.UpdateSession(ctx, session)
}

func (s *Service) UpdateTracking(ctx context.Context, ident Identity, id uuid.UUID, p SessionPatch) (TrackingSession, error) {
	if !ident.Valid() {
		return TrackingSession{}, ErrInvalidContext
	}

	session, err := s.db.GetSession(ctx, ident.TenantID, id)
	if err != nil {
		return TrackingSession{}, err
	}
	if session.UserID != ident.UserID {
		return TrackingSession{}, ErrSessionNotFound
	}

	if p.CategoryID != nil {
		if *p.CategoryID == uuid.Nil {
			return TrackingSession{}, ErrSessionInvalidArgs
		}
		if _, err := s.db.GetCategory(ctx, ident.TenantID, *p.CategoryID); err != nil {
			return TrackingSession{}, err
		}
		session.CategoryID = *p.CategoryID
	}
	if p.ProjectID != nil {
		if *p.ProjectID == uuid.Nil {
			session.ProjectID = nil
		} else {
			pid := *p.ProjectID
			session.ProjectID = &pid
		}
	}
	if p.TaskID != nil {
		if *p.TaskID == uuid.Nil {
			session.TaskID = nil
		} else {
			tid := *p.TaskID
			session.TaskID = &tid
		}
	}
	if p.Description != nil {
		session.Description = strings.TrimSpace(*p.Description)
	}

	now := s.now()
	session.LastActivityAt = now
	session.UpdatedAt = now
	return s.db.UpdateSession(ctx, session)
}

// GetActiveTracking returns the caller's live session, if any.
func (s *Service) GetActiveTracking(ctx context.Context, ident Identity) (TrackingSession, error) {
	if !ident.Valid() {
		return TrackingSession{}, ErrInvalidContext
	}
	return s.db.GetActiveSession(ctx, ident.TenantID, ident.UserID)
}

func (s *Service) GetTrackingSession(ctx context.Context, ident Identity, id uuid.UUID) (TrackingSession, error) {
	if !ident.Valid() {
		return TrackingSession{}, ErrInvalidContext
	}
	return s.db.GetSession(ctx, ident.TenantID, id)
}

func (s *Service) ListTrackingSessions(ctx context.Context, ident Identity) ([]TrackingSession, error) {
	if !ident.Valid() {
		return nil, ErrInvalidContext
	}
	return s.db.ListSessionsByUser(ctx, ident.TenantID, ident.UserID)
}
