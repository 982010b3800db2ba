package service

import (
	"context"

	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository"
)

// Stats is the platform-wide counters block served to admins.
type Stats struct {
	TotalUsers             int64 `json:"totalUsers"`
	TotalQuizzes           int64 `json:"totalQuizzes"`
	TotalChallenges        int64 `json:"totalChallenges"`
	TotalQuizAttempts      int64 `json:"totalQuizAttempts"`
	TotalChallengeAttempts int64 `json:"totalChallengeAttempts"`
}

// AdminService serves the admin dashboard: the full user list and
// platform counters.
type AdminService struct {
	users            repository.UserRepository
	quizzes          repository.QuizRepository
	quizResults      repository.QuizResultRepository
	challenges       repository.ChallengeRepository
	challengeResults repository.ChallengeResultRepository
}

func NewAdminService(
	users repository.UserRepository,
	quizzes repository.QuizRepository,
	quizResults repository.QuizResultRepository,
	challenges repository.ChallengeRepository,
	challengeResults repository.ChallengeResultRepository,
) *AdminService {
	return &AdminService{
		users:            users,
		quizzes:          quizzes,
		quizResults:      quizResults,
		challenges:       challenges,
		challengeResults: challengeResults,
	}
}

// ListUsers returns every account. Password hashes never leave the model's
// JSON encoding, so no extra sanitizing happens here.
func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// GetStats assembles the counters block. TotalUsers counts students only;
// admin accounts are operational, not part of the population being tracked.
func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	students, err := s.users.CountByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, err
	}
	quizzes, err := s.quizzes.List(ctx, repository.QuizFilter{})
	if err != nil {
		return nil, err
	}
	challenges, err := s.challenges.List(ctx, repository.ChallengeFilter{})
	if err != nil {
		return nil, err
	}
	quizAttempts, err := s.quizResults.Count(ctx)
	if err != nil {
		return nil, err
	}
	challengeAttempts, err := s.challengeResults.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalUsers:             students,
		TotalQuizzes:           int64(len(quizzes)),
		TotalChallenges:        int64(len(challenges)),
		TotalQuizAttempts:      quizAttempts,
		TotalChallengeAttempts: challengeAttempts,
	}, nil
}
