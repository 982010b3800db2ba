package service

import (
	"context"

	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository"
)

const leaderboardSize = 100

// LeaderboardEntry is one ranked row. Rank starts at 1; ties keep insertion
// order from the store's sort.
type LeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Points     int    `json:"points"`
	Level      int    `json:"level"`
	ProfilePic string `json:"profilePic,omitempty"`
}

// LeaderboardService ranks students by points.
type LeaderboardService struct {
	users repository.UserRepository
}

func NewLeaderboardService(users repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{users: users}
}

// Top returns up to 100 students ordered by points descending. Admin
// accounts never appear.
func (s *LeaderboardService) Top(ctx context.Context) ([]LeaderboardEntry, error) {
	users, err := s.users.TopByPoints(ctx, model.RoleStudent, leaderboardSize)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = LeaderboardEntry{
			Rank:       i + 1,
			UserID:     u.ID,
			Name:       u.Name,
			Email:      u.Email,
			Points:     u.Points,
			Level:      u.Level,
			ProfilePic: u.ProfilePic,
		}
	}
	return entries, nil
}
