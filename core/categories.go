package core

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type CategoryInput struct {
	Name            string
	Description     string
	Color           string
	DefaultBillable BillableStatus
}

type CategoryPatch struct {
	Name            *string
	Description     *string
	Color           *string
	DefaultBillable *BillableStatus
}

func (s *Service) CreateCategory(ctx context.Context, ident Identity, in CategoryInput) (TimeCategory, error) {
	if !ident.Valid() {
		return TimeCategory{}, ErrInvalidContext
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return TimeCategory{}, ErrCategoryInvalidArgs
	}
	if in.DefaultBillable == "" {
		in.DefaultBillable = NonBillable
	}
	if !in.DefaultBillable.Valid() {
		return TimeCategory{}, ErrCategoryInvalidArgs
	}

	taken, err := s.db.CategoryNameExists(ctx, ident.TenantID, in.Name, uuid.Nil)
	if err != nil {
		return TimeCategory{}, err
	}
	if taken {
		return TimeCategory{}, ErrCategoryNameTaken
	}

	now := s.now()
	c := TimeCategory{
		ID:              uuid.New(),
		TenantID:        ident.TenantID,
		Name:            in.Name,
		Description:     in.Description,
		Color:           in.Color,
		DefaultBillable: in.DefaultBillable,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return s.db.CreateCategory(ctx, c)
}

func (s *Service) GetCategory(ctx context.Context, ident Identity, id uuid.UUID) (TimeCategory, error) {
	if !ident.Valid() {
		return TimeCategory{}, ErrInvalidContext
	}
	return s.db.GetCategory(ctx, ident.TenantID, id)
}

func (s *Service) ListCategories(ctx context.Context, ident Identity) ([]TimeCategory, error) {
	if !ident.Valid() {
		return nil, ErrInvalidContext
	}
	return s.db.ListCategories(ctx, ident.TenantID)
}

func (s *Service) UpdateCategory(ctx context.Context, ident Identity, id uuid.UUID, p CategoryPatch) (TimeCategory, error) {
	if !ident.Valid() {
		return TimeCategory{}, ErrInvalidContext
	}

	cur, err := s.db.GetCategory(ctx, ident.TenantID, id)
	if err != nil {
		return TimeCategory{}, err
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return TimeCategory{}, ErrCategoryInvalidArgs
		}
		if name != cur.Name {
			taken, err := s.db.CategoryNameExists(ctx, ident.TenantID, name, cur.ID)
			if err != nil {
				return TimeCategory{}, err
			}
			if taken {
				return TimeCategory{}, ErrCategoryNameTaken
			}
		}
		cur.Name = name
	}
	if p.Description != nil {
		cur.Description = *p.Description
	}
	if p.Color != nil {
		cur.Color = *p.Color
	}
	if p.DefaultBillable != nil {
		if !p.DefaultBillable.Valid() {
			return TimeCategory{}, ErrCategoryInvalidArgs
		}
		cur.DefaultBillable = *p.DefaultBillable
	}

	cur.UpdatedAt = s.now()
	return s.db.UpdateCategory(ctx, cur)
}

// DeleteCategory flips the active flag; category rows are never removed.
func (s *Service) DeleteCategory(ctx context.Context, ident Identity, id uuid.UUID) error {
	if !ident.Valid() {
		return ErrInvalidContext
	}

	cur, err := s.db.GetCategory(ctx, ident.TenantID, id)
	if err != nil {
		return err
	}
	cur.IsActive = false
	cur.UpdatedAt = s.now()
	_, err = s.db.UpdateCategory(ctx, cur)
	return err
}
