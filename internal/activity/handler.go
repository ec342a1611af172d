// AngelaMos | 2026
// handler.go

package activity

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/copperline/copperline/internal/core"
	"github.com/copperline/copperline/internal/middleware"
	"github.com/copperline/copperline/internal/tenant"
)

type Handler struct {
	service  *Service
	resolver *tenant.Resolver
}

func NewHandler(service *Service, resolver *tenant.Resolver) *Handler {
	return &Handler{service: service, resolver: resolver}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/activities", h.List)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	scope, err := h.resolver.Resolve(r.Context(), middleware.GetClaims(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	if scope.Empty() {
		core.Unauthorized(w, "")
		return
	}

	page, pageSize := core.ParsePagination(r)

	activities, total, err := h.service.List(r.Context(), scope, page, pageSize)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, activities, page, pageSize, total)
}
