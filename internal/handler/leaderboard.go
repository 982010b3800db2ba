package handler

import (
	"net/http"

	"github.com/tkonda/placement-prep/internal/service"
)

// LeaderboardHandler serves the student ranking.
type LeaderboardHandler struct {
	leaderboard *service.LeaderboardService
}

func NewLeaderboardHandler(leaderboard *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: leaderboard}
}

// HandleList returns the top students by points.
//
// HTTP: GET /api/leaderboard
func (h *LeaderboardHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.Top(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []service.LeaderboardEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
