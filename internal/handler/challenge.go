package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/auth"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository"
	"github.com/tkonda/placement-prep/internal/service"
)

// ChallengeHandler serves coding challenge CRUD and submissions.
type ChallengeHandler struct {
	challenges *service.ChallengeService
}

func NewChallengeHandler(challenges *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{challenges: challenges}
}

// HandleCreate stores a new challenge. Admin only.
//
// HTTP: POST /api/challenges
func (h *ChallengeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var challenge model.Challenge
	if err := decodeJSON(r, &challenge); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.challenges.Create(r.Context(), &challenge)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// HandleList returns challenges, optionally filtered by company.
//
// HTTP: GET /api/challenges?company=acme
func (h *ChallengeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := repository.ChallengeFilter{Company: r.URL.Query().Get("company")}
	challenges, err := h.challenges.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if challenges == nil {
		challenges = []model.Challenge{}
	}
	writeJSON(w, http.StatusOK, challenges)
}

// HandleGet returns one challenge.
//
// HTTP: GET /api/challenges/{id}
func (h *ChallengeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.challenges.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, challenge)
}

// HandleDelete removes a challenge. Admin only.
//
// HTTP: DELETE /api/challenges/{id}
func (h *ChallengeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.challenges.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "challenge deleted successfully"})
}

type challengeSubmitRequest struct {
	ChallengeID string `json:"challengeId"`
	Code        string `json:"code"`
	Language    string `json:"language"`
}

// HandleSubmit runs a submission for the authenticated user.
//
// HTTP: POST /api/challenges/submit
func (h *ChallengeHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	var req challengeSubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.challenges.Submit(r.Context(), user.ID, service.SubmissionInput{
		ChallengeID: req.ChallengeID,
		Code:        req.Code,
		Language:    req.Language,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
