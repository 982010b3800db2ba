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

// QuizHandler serves quiz CRUD and submissions.
type QuizHandler struct {
	quizzes *service.QuizService
}

func NewQuizHandler(quizzes *service.QuizService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes}
}

// HandleCreate stores a new quiz. Admin only (enforced by routing).
//
// HTTP: POST /api/quizzes
func (h *QuizHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var quiz model.Quiz
	if err := decodeJSON(r, &quiz); err != nil {
		writeError(w, err)
		return
	}

	created, err := h.quizzes.Create(r.Context(), &quiz)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

// HandleList returns quizzes, optionally filtered by category and company
// query parameters.
//
// HTTP: GET /api/quizzes?category=dsa&company=acme
func (h *QuizHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	filter := repository.QuizFilter{
		Category: r.URL.Query().Get("category"),
		Company:  r.URL.Query().Get("company"),
	}
	quizzes, err := h.quizzes.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}
	writeJSON(w, http.StatusOK, quizzes)
}

// HandleGet returns one quiz.
//
// HTTP: GET /api/quizzes/{id}
func (h *QuizHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizzes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quiz)
}

// HandleDelete removes a quiz. Admin only.
//
// HTTP: DELETE /api/quizzes/{id}
func (h *QuizHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.quizzes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "quiz deleted successfully"})
}

type quizSubmitRequest struct {
	QuizID    string            `json:"quizId"`
	Answers   map[string]string `json:"answers"`
	TimeTaken int               `json:"timeTaken"`
}

// HandleSubmit grades an attempt for the authenticated user.
//
// HTTP: POST /api/quizzes/submit
func (h *QuizHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	var req quizSubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.quizzes.Submit(r.Context(), user.ID, service.SubmitInput{
		QuizID:    req.QuizID,
		Answers:   req.Answers,
		TimeTaken: req.TimeTaken,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
