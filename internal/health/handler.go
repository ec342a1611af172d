// AngelaMos | 2026
// handler.go

package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/copperline/copperline/internal/core"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves liveness and readiness. Liveness never touches
// dependencies; readiness fans out to them in parallel and reports each
// one by name.
type Handler struct {
	db       Pinger
	redis    Pinger
	ready    atomic.Bool
	shutdown atomic.Bool
}

func NewHandler(db, redis Pinger) *Handler {
	h := &Handler{db: db, redis: redis}
	h.ready.Store(true)
	return h
}

func (h *Handler) SetReady(ready bool) {
	h.ready.Store(ready)
}

func (h *Handler) SetShutdown(shutdown bool) {
	h.shutdown.Store(shutdown)
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.Live)
	r.Get("/livez", h.Live)
	r.Get("/readyz", h.Ready)
}

func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	if h.shutdown.Load() {
		core.JSONError(w, core.NewAppError(
			nil,
			"shutting down",
			http.StatusServiceUnavailable,
			"SHUTTING_DOWN",
		))
		return
	}

	core.OK(w, map[string]string{"status": "ok"})
}

type dependencyStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		core.JSONError(w, core.NewAppError(
			nil,
			"not ready",
			http.StatusServiceUnavailable,
			"NOT_READY",
		))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]Pinger{
		"database": h.db,
		"redis":    h.redis,
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]dependencyStatus, len(checks))
		healthy = true
	)

	for name, dep := range checks {
		wg.Add(1)
		go func(name string, dep Pinger) {
			defer wg.Done()

			status := checkDependency(ctx, dep)

			mu.Lock()
			results[name] = status
			if status.Status != "up" {
				healthy = false
			}
			mu.Unlock()
		}(name, dep)
	}
	wg.Wait()

	if !healthy {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		//nolint:errcheck // best-effort response write
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"data":    results,
		})
		return
	}

	core.OK(w, results)
}

func checkDependency(ctx context.Context, dep Pinger) dependencyStatus {
	start := time.Now()

	if err := dep.Ping(ctx); err != nil {
		return dependencyStatus{
			Status: "down",
			Error:  err.Error(),
		}
	}

	return dependencyStatus{
		Status:  "up",
		Latency: time.Since(start).Round(time.Microsecond).String(),
	}
}
