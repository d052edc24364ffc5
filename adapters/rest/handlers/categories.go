package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"timetracking-service/adapters/rest"
	"timetracking-service/core"
	"timetracking-service/pkg/res"
)

func NewCreateCategoryHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateCategoryIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		c, err := svc.CreateCategory(ctx, rest.IdentityFrom(r.Context()), core.CategoryInput{
			Name:            in.Name,
			Description:     in.Description,
			Color:           in.Color,
			DefaultBillable: core.BillableStatus(in.DefaultBillable),
		})
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, c, http.StatusCreated)
	}
}

func NewGetCategoryHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		c, err := svc.GetCategory(ctx, rest.IdentityFrom(r.Context()), id)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, c, http.StatusOK)
	}
}

func NewListCategoriesHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		out, err := svc.ListCategories(ctx, rest.IdentityFrom(r.Context()))
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, out, http.StatusOK)
	}
}

func NewUpdateCategoryHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		var in rest.UpdateCategoryIn
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			res.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		patch := core.CategoryPatch{
			Name:        in.Name,
			Description: in.Description,
			Color:       in.Color,
		}
		if in.DefaultBillable != nil {
			b := core.BillableStatus(*in.DefaultBillable)
			patch.DefaultBillable = &b
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		c, err := svc.UpdateCategory(ctx, rest.IdentityFrom(r.Context()), id, patch)
		if err != nil {
			rest.WriteErr(w, err)
			return
		}
		res.Json(w, c, http.StatusOK)
	}
}

func NewDeleteCategoryHandler(_ *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteCategory(ctx, rest.IdentityFrom(r.Context()), id); err != nil {
			rest.WriteErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
