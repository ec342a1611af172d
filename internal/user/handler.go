// AngelaMos | 2026
// handler.go

package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/copperline/copperline/internal/core"
	"github.com/copperline/copperline/internal/middleware"
	"github.com/copperline/copperline/internal/tenant"
)

type Handler struct {
	service  *Service
	resolver *tenant.Resolver
	validate *validator.Validate
}

func NewHandler(service *Service, resolver *tenant.Resolver) *Handler {
	return &Handler{
		service:  service,
		resolver: resolver,
		validate: validator.New(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/password", h.ChangePassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(RoleAdministrator))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Post("/{id}/activate", h.Activate)
			r.Post("/{id}/deactivate", h.Deactivate)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// resolveScope turns the request's claims into a tenant scope. An empty
// scope means the identity maps to no tenant at all, which is treated as
// unauthenticated rather than an empty result set.
func (h *Handler) resolveScope(
	w http.ResponseWriter,
	r *http.Request,
) (tenant.Scope, bool) {
	claims := middleware.GetClaims(r.Context())

	scope, err := h.resolver.Resolve(r.Context(), claims)
	if err != nil {
		core.InternalServerError(w, err)
		return tenant.Scope{}, false
	}

	if scope.Empty() {
		core.Unauthorized(w, "")
		return tenant.Scope{}, false
	}

	return scope, true
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	page, pageSize := core.ParsePagination(r)

	users, total, err := h.service.List(r.Context(), scope, ListUsersQuery{
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, users, page, pageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	u, err := h.service.Get(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, u)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Create(r.Context(), scope, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "tenant outside your scope")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "target tenant is required")
		case errors.Is(err, core.ErrDuplicateKey):
			core.JSONError(w, core.DuplicateError("email"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, u)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	u, err := h.service.Update(r.Context(), scope, chi.URLParam(r, "id"), req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, u)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		core.Unauthorized(w, "")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if err := h.service.ChangePassword(r.Context(), claims.UserID, req); err != nil {
		if errors.Is(err, core.ErrUnauthorized) {
			core.Unauthorized(w, "current password is incorrect")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]string{"message": "password changed"})
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *Handler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	err := h.service.SetActive(r.Context(), scope, chi.URLParam(r, "id"), active)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, map[string]bool{"active": active})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	err := h.service.Delete(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
