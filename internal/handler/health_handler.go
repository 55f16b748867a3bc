package handlers

import (
	"log"
	"net/http"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Accounts int    `json:"accounts"`
	Posts    int    `json:"posts"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.Counts(r.Context())
	if err != nil {
		log.Printf("health check failed: %v", err)
		writeError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, HealthResponse{
		Status:   "ok",
		Accounts: stats.Accounts,
		Posts:    stats.Posts,
	}, http.StatusOK)
}
