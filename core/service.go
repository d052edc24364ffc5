package core

import (
	"context"
	"math"
	"time"
)

type Service struct {
	db  DB
	dir Directory
	now func() time.Time
}

func NewService(db DB, dir Directory) *Service {
	return &Service{
		db:  db,
		dir: dir,
		now: time.Now,
	}
}

// NewServiceWithClock is used by tests that need a deterministic clock.
func NewServiceWithClock(db DB, dir Directory, now func() time.Time) *Service {
	s := NewService(db, dir)
	s.now = now
	return s
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// minutesBetween rounds the span to whole minutes. Negative spans clamp to 0.
func minutesBetween(from, to time.Time) int {
	m := int(math.Round(to.Sub(from).Minutes()))
	if m < 0 {
		return 0
	}
	return m
}
