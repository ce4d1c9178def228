package api

import (
	"net/http"
	"sync/atomic"
	"time"
)

// serverStats tracks coarse request counts since process start. Prometheus
// carries the real observability; these feed the admin stats endpoint.
type serverStats struct {
	startedAt   time.Time
	analyses    atomic.Int64
	scores      atomic.Int64
	simulations atomic.Int64
}

func newStats() *serverStats {
	return &serverStats{startedAt: time.Now()}
}

type AdminHandler struct {
	stats *serverStats
}

func NewAdminHandler(stats *serverStats) *AdminHandler {
	return &AdminHandler{stats: stats}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uptime_seconds": int64(time.Since(h.stats.startedAt).Seconds()),
		"analyses":       h.stats.analyses.Load(),
		"scores":         h.stats.scores.Load(),
		"simulations":    h.stats.simulations.Load(),
	})
}
