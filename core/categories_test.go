package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"timetracking-service/core"
)

func TestCreateCategory_InvalidContext(t *testing.T) {
	t.Parallel()

	_, svc, _, _ := newTestService(t)

	_, err := svc.CreateCategory(context.Background(), core.Identity{}, core.CategoryInput{Name: "dev"})
	if !errors.Is(err, core.ErrInvalidContext) {
		t.Fatalf("expected ErrInvalidContext, got %v", err)
	}
}

func TestCreateCategory_EmptyName(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	_, err := svc.CreateCategory(context.Background(), ident, core.CategoryInput{Name: "   "})
	if !errors.Is(err, core.ErrCategoryInvalidArgs) {
		t.Fatalf("expected ErrCategoryInvalidArgs, got %v", err)
	}
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	mustCreateCategory(t, svc, ident, "development")

	_, err := svc.CreateCategory(context.Background(), ident, core.CategoryInput{Name: "development"})
	if !errors.Is(err, core.ErrCategoryNameTaken) {
		t.Fatalf("expected ErrCategoryNameTaken, got %v", err)
	}
}

func TestCreateCategory_SameNameOtherTenant(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	mustCreateCategory(t, svc, ident, "development")

	other := core.Identity{TenantID: uuid.New(), UserID: uuid.New()}
	if _, err := svc.CreateCategory(context.Background(), other, core.CategoryInput{Name: "development"}); err != nil {
		t.Fatalf("expected cross-tenant create to succeed, got %v", err)
	}
}

func TestCreateCategory_RoundTrip(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	created, err := svc.CreateCategory(context.Background(), ident, core.CategoryInput{
		Name:            "meetings",
		Description:     "standups and planning",
		Color:           "#ff8800",
		DefaultBillable: core.Internal,
	})
	if err != nil {
		t.Fatalf("CreateCategory returned error: %v", err)
	}

	got, err := svc.GetCategory(context.Background(), ident, created.ID)
	if err != nil {
		t.Fatalf("GetCategory returned error: %v", err)
	}
	if got != created {
		t.Fatalf("round trip mismatch: created %+v, got %+v", created, got)
	}
}

func TestUpdateCategory_RenameCollision(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	mustCreateCategory(t, svc, ident, "development")
	target := mustCreateCategory(t, svc, ident, "review")

	newName := "development"
	_, err := svc.UpdateCategory(context.Background(), ident, target.ID, core.CategoryPatch{Name: &newName})
	if !errors.Is(err, core.ErrCategoryNameTaken) {
		t.Fatalf("expected ErrCategoryNameTaken, got %v", err)
	}
}

func TestUpdateCategory_RenameToOwnNameAllowed(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	category := mustCreateCategory(t, svc, ident, "development")

	sameName := "development"
	updated, err := svc.UpdateCategory(context.Background(), ident, category.ID, core.CategoryPatch{Name: &sameName})
	if err != nil {
		t.Fatalf("UpdateCategory returned error: %v", err)
	}
	if updated.Name != "development" {
		t.Fatalf("expected name to stay, got %q", updated.Name)
	}
}

func TestDeleteCategory_SoftDeleteFreesName(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	category := mustCreateCategory(t, svc, ident, "development")

	if err := svc.DeleteCategory(context.Background(), ident, category.ID); err != nil {
		t.Fatalf("DeleteCategory returned error: %v", err)
	}

	active, err := svc.ListCategories(context.Background(), ident)
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("expected no active categories, got %d", len(active))
	}

	// name is reusable once the old row is inactive
	if _, err := svc.CreateCategory(context.Background(), ident, core.CategoryInput{Name: "development"}); err != nil {
		t.Fatalf("expected recreate after soft delete to succeed, got %v", err)
	}
}

func TestGetCategory_OtherTenantIsNotFound(t *testing.T) {
	t.Parallel()

	_, svc, _, ident := newTestService(t)

	category := mustCreateCategory(t, svc, ident, "development")

	other := core.Identity{TenantID: uuid.New(), UserID: uuid.New()}
	_, err := svc.GetCategory(context.Background(), other, category.ID)
	if !errors.Is(err, core.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
