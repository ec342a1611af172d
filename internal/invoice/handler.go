// AngelaMos | 2026
// handler.go

package invoice

import (
	"context"
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
	r.Route("/invoices", func(r chi.Router) {
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
			r.Post("/{id}/send", h.Send)
			r.Post("/{id}/pay", h.MarkPaid)
			r.Post("/{id}/void", h.Void)
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
	status := r.URL.Query().Get("status")

	invoices, total, err := h.service.List(r.Context(), scope, status, page, pageSize)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, invoices, page, pageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	inv, err := h.service.Get(r.Context(), scope, chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, inv)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	var req CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	inv, err := h.service.Create(
		r.Context(),
		scope,
		middleware.GetUserID(r.Context()),
		req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, inv)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	var req UpdateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	inv, err := h.service.Update(
		r.Context(),
		scope,
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
		req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, inv)
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, h.service.Send)
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, h.service.MarkPaid)
}

func (h *Handler) Void(w http.ResponseWriter, r *http.Request) {
	h.doTransition(w, r, h.service.Void)
}

type transitionFunc func(
	ctx context.Context,
	scope tenant.Scope,
	actorID string,
	id string,
) (*InvoiceResponse, error)

func (h *Handler) doTransition(
	w http.ResponseWriter,
	r *http.Request,
	fn transitionFunc,
) {
	scope, ok := h.resolveScope(w, r)
	if !ok {
		return
	}

	inv, err := fn(
		r.Context(),
		scope,
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, inv)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "invoice")
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "tenant outside your scope")
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid invoice operation")
	default:
		core.InternalServerError(w, err)
	}
}
