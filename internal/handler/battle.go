package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/auth"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/service"
)

// BattleHandler serves the battle lifecycle endpoints. The live relay is
// handled separately by the ws package.
type BattleHandler struct {
	battles *service.BattleService
}

func NewBattleHandler(battles *service.BattleService) *BattleHandler {
	return &BattleHandler{battles: battles}
}

type battleCreateRequest struct {
	ChallengeID string `json:"challengeId"`
}

// HandleCreate opens a waiting battle.
//
// HTTP: POST /api/battles/create
func (h *BattleHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	var req battleCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	battle, err := h.battles.Create(r.Context(), user, req.ChallengeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, battle)
}

// HandleJoin joins a waiting battle.
//
// HTTP: POST /api/battles/{id}/join
func (h *BattleHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	battle, err := h.battles.Join(r.Context(), user, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, battle)
}

// HandleGet returns one battle.
//
// HTTP: GET /api/battles/{id}
func (h *BattleHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	battle, err := h.battles.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, battle)
}

// HandleList returns battles still waiting for a second player.
//
// HTTP: GET /api/battles
func (h *BattleHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	battles, err := h.battles.ListWaiting(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if battles == nil {
		battles = []model.Battle{}
	}
	writeJSON(w, http.StatusOK, battles)
}
