// AngelaMos | 2026
// handler.go

package client

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
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(
				"administrator",
				"project_manager",
				"staff",
			))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Archive)
		})
	})
}

func (h *Handler) resolveScope(
	w http.ResponseWriter,
	r *http.Request,
) (tenant.Scope, bool) {
	scope, err := h.resolver.Resolve(r.Context(), middleware.GetClaims(r.Context()))
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
	search := r.URL.Query().Get("q")
	includeArchived := r.URL.Query().Get("archived") == "true"

	clients, total, err := h.service.List(
		r.Context(),
		scope,
		search,
		includeArchived,
		page,
		pageSize,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, clients, page, pageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	c, err := h.service.Get(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "client")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, c)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	var req CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Create(
		r.Context(),
		scope,
		middleware.GetUserID(r.Context()),
		req,
	)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "tenant outside your scope")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "target tenant is required")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, c)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	var req UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	c, err := h.service.Update(
		r.Context(),
		scope,
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
		req,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "client")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, c)
}

func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	err := h.service.Archive(
		r.Context(),
		scope,
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "client")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
