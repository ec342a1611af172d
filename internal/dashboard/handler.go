// AngelaMos | 2026
// handler.go

package dashboard

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
	r.Get("/dashboard/summary", h.Summary)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	scope, err := h.resolver.Resolve(r.Context(), middleware.GetClaims(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	if scope.Empty() {
		core.Unauthorized(w, "")
		return
	}

	summary, err := h.service.Summarize(r.Context(), scope)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, summary)
}
