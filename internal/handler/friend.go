package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/auth"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/service"
)

// FriendHandler serves the friend graph endpoints.
type FriendHandler struct {
	friends *service.FriendService
}

func NewFriendHandler(friends *service.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

type friendRequestBody struct {
	FriendEmail string `json:"friend_email"`
}

// HandleRequest sends a friend request by email.
//
// HTTP: POST /api/friends/request
func (h *FriendHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	var req friendRequestBody
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.friends.SendRequest(r.Context(), user.ID, req.FriendEmail); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "friend request sent"})
}

// HandleList returns the user's accepted friends.
//
// HTTP: GET /api/friends
func (h *FriendHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	friends, err := h.friends.ListFriends(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if friends == nil {
		friends = []model.User{}
	}
	writeJSON(w, http.StatusOK, friends)
}

// HandleAccept accepts a pending request addressed to the user.
//
// HTTP: POST /api/friends/{id}/accept
func (h *FriendHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	if err := h.friends.Accept(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "friend request accepted"})
}

// HandleRemove deletes the friendship with the given user.
//
// HTTP: DELETE /api/friends/{id}   (id is the other user's id)
func (h *FriendHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated())
		return
	}

	if err := h.friends.Remove(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "friend removed"})
}
