package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository"
)

// FriendService manages the friend graph.
type FriendService struct {
	friends repository.FriendRepository
	users   repository.UserRepository
	logger  *slog.Logger
}

func NewFriendService(
	friends repository.FriendRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *FriendService {
	return &FriendService{friends: friends, users: users, logger: logger}
}

// SendRequest creates a pending edge from the user to the account behind
// friendEmail. Self-requests are rejected, as is any request where an edge
// already exists in either direction regardless of status.
func (s *FriendService) SendRequest(ctx context.Context, userID, friendEmail string) error {
	friend, err := s.users.FindByEmail(ctx, friendEmail)
	if err != nil {
		return err
	}
	if friend.ID == userID {
		return apperror.ValidationFailed("friendEmail", "cannot add yourself as a friend")
	}

	_, err = s.friends.FindBetween(ctx, userID, friend.ID)
	switch {
	case err == nil:
		return apperror.Conflict("friend request already exists")
	case errors.Is(err, apperror.ErrNotFound):
		// no edge yet, proceed
	default:
		return err
	}

	friendship := &model.Friendship{
		ID:        uuid.NewString(),
		UserID:    userID,
		FriendID:  friend.ID,
		Status:    model.FriendPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.friends.Insert(ctx, friendship); err != nil {
		return err
	}

	s.logger.Info("friend request sent",
		slog.String("from", userID),
		slog.String("to", friend.ID),
	)
	return nil
}

// Accept marks a pending request accepted. Only the recipient may accept;
// anyone else gets NotFound so request ids cannot be probed.
func (s *FriendService) Accept(ctx context.Context, userID, friendshipID string) error {
	if _, err := s.friends.FindRequest(ctx, friendshipID, userID); err != nil {
		return err
	}
	return s.friends.Accept(ctx, friendshipID)
}

// ListFriends returns the user records of all accepted friends.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]model.User, error) {
	friendships, err := s.friends.ListAccepted(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends := make([]model.User, 0, len(friendships))
	for _, f := range friendships {
		otherID := f.FriendID
		if otherID == userID {
			otherID = f.UserID
		}
		u, err := s.users.FindByID(ctx, otherID)
		if err != nil {
			// a deleted account leaves a dangling edge; skip it
			if errors.Is(err, apperror.ErrNotFound) {
				continue
			}
			return nil, err
		}
		friends = append(friends, *u)
	}
	return friends, nil
}

// Remove deletes the edge between the user and friendID in either
// direction, whatever its status.
func (s *FriendService) Remove(ctx context.Context, userID, friendID string) error {
	return s.friends.DeleteBetween(ctx, userID, friendID)
}
