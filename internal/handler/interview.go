package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/auth"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/service"
)

// InterviewHandler serves mock interview sessions.
type InterviewHandler struct {
	interviews *service.InterviewService
}

func NewInterviewHandler(interviews *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{interviews: interviews}
}

type interviewStartResponse struct {
	InterviewID string `json:"interview_id"`
	Message     string `json:"message"`
}

// HandleStart opens a new interview session.
//
// HTTP: POST /api/mock-interview/start
func (h *InterviewHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	id, greeting, err := h.interviews.Start(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interviewStartResponse{InterviewID: id, Message: greeting})
}

type interviewMessageRequest struct {
	Message string `json:"message"`
}

type interviewMessageResponse struct {
	Response string `json:"response"`
}

// HandleMessage sends one user turn and returns the interviewer's reply.
//
// HTTP: POST /api/mock-interview/{id}/message
func (h *InterviewHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	var req interviewMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	reply, err := h.interviews.SendMessage(r.Context(), user.ID, chi.URLParam(r, "id"), req.Message)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interviewMessageResponse{Response: reply})
}

// HandleGet returns one interview transcript.
//
// HTTP: GET /api/mock-interview/{id}
func (h *InterviewHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	interview, err := h.interviews.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interview)
}

// HandleList returns the user's interviews.
//
// HTTP: GET /api/mock-interview
func (h *InterviewHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	interviews, err := h.interviews.ListMine(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if interviews == nil {
		interviews = []model.MockInterview{}
	}
	writeJSON(w, http.StatusOK, interviews)
}
