// AngelaMos | 2026
// handler.go

package admin

import (
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/copperline/copperline/internal/core"
	"github.com/copperline/copperline/internal/middleware"
)

// Handler exposes operator-only runtime statistics. It sits behind
// RequireElevated, so ordinary tenants never reach it.
type Handler struct {
	db        *core.Database
	redis     *redis.Client
	startedAt time.Time
}

func NewHandler(db *core.Database, rdb *redis.Client) *Handler {
	return &Handler{
		db:        db,
		redis:     rdb,
		startedAt: time.Now(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router, operatorKey string) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireElevated(operatorKey))
		r.Get("/stats", h.Stats)
	})
}

type statsResponse struct {
	Uptime     string         `json:"uptime"`
	Goroutines int            `json:"goroutines"`
	HeapMB     uint64         `json:"heap_mb"`
	Tenants    int64          `json:"tenants"`
	Users      int64          `json:"users"`
	Database   map[string]any `json:"database"`
	Redis      map[string]any `json:"redis"`
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	var tenants, users int64

	err := h.db.DB.GetContext(r.Context(), &tenants,
		`SELECT COUNT(*) FROM tenants`)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	err = h.db.DB.GetContext(r.Context(), &users,
		`SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	dbStats := h.db.Stats()
	poolStats := h.redis.PoolStats()

	core.OK(w, statsResponse{
		Uptime:     time.Since(h.startedAt).Round(time.Second).String(),
		Goroutines: runtime.NumGoroutine(),
		HeapMB:     mem.HeapAlloc / 1024 / 1024,
		Tenants:    tenants,
		Users:      users,
		Database: map[string]any{
			"open_connections": dbStats.OpenConnections,
			"in_use":           dbStats.InUse,
			"idle":             dbStats.Idle,
			"wait_count":       dbStats.WaitCount,
		},
		Redis: map[string]any{
			"hits":        poolStats.Hits,
			"misses":      poolStats.Misses,
			"total_conns": poolStats.TotalConns,
			"idle_conns":  poolStats.IdleConns,
		},
	})
}
