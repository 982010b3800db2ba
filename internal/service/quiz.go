package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository"
)

// QuizService manages quizzes and grades submissions.
type QuizService struct {
	quizzes repository.QuizRepository
	results repository.QuizResultRepository
	users   repository.UserRepository
	logger  *slog.Logger
}

func NewQuizService(
	quizzes repository.QuizRepository,
	results repository.QuizResultRepository,
	users repository.UserRepository,
	logger *slog.Logger,
) *QuizService {
	return &QuizService{quizzes: quizzes, results: results, users: users, logger: logger}
}

// Create stores a new quiz. Question IDs are assigned here when absent so
// admins can post questions without inventing identifiers.
func (s *QuizService) Create(ctx context.Context, quiz *model.Quiz) (*model.Quiz, error) {
	if quiz.Title == "" {
		return nil, apperror.ValidationFailed("title", "must not be empty")
	}
	if len(quiz.Questions) == 0 {
		return nil, apperror.ValidationFailed("questions", "must contain at least one question")
	}
	for i := range quiz.Questions {
		if quiz.Questions[i].ID == "" {
			quiz.Questions[i].ID = uuid.NewString()
		}
	}

	quiz.ID = uuid.NewString()
	quiz.CreatedAt = time.Now().UTC()
	if err := s.quizzes.Insert(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// List returns quizzes matching the filter.
func (s *QuizService) List(ctx context.Context, filter repository.QuizFilter) ([]model.Quiz, error) {
	return s.quizzes.List(ctx, filter)
}

// Get returns one quiz by id.
func (s *QuizService) Get(ctx context.Context, id string) (*model.Quiz, error) {
	return s.quizzes.FindByID(ctx, id)
}

// Delete removes a quiz.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	return s.quizzes.Delete(ctx, id)
}

// SubmitInput carries one quiz attempt: answers maps question id to the
// selected option text.
type SubmitInput struct {
	QuizID    string
	Answers   map[string]string
	TimeTaken int
}

// Submit grades an attempt and credits the user.
//
// Each question is compared against its stored correct answer; unanswered
// questions count as wrong. Points are awarded proportionally to the score
// (score/total of the quiz's points, truncated) and added to the user's
// running total.
func (s *QuizService) Submit(ctx context.Context, userID string, in SubmitInput) (*model.QuizResult, error) {
	quiz, err := s.quizzes.FindByID(ctx, in.QuizID)
	if err != nil {
		return nil, err
	}

	score := 0
	for _, q := range quiz.Questions {
		if in.Answers[q.ID] == q.CorrectAnswer {
			score++
		}
	}

	total := len(quiz.Questions)
	earned := 0
	if total > 0 {
		earned = quiz.Points * score / total
	}

	result := &model.QuizResult{
		ID:             uuid.NewString(),
		UserID:         userID,
		QuizID:         quiz.ID,
		Score:          score,
		TotalQuestions: total,
		TimeTaken:      in.TimeTaken,
		PointsEarned:   earned,
		CompletedAt:    time.Now().UTC(),
	}
	if err := s.results.Insert(ctx, result); err != nil {
		return nil, err
	}

	if earned > 0 {
		if err := s.users.IncrementPoints(ctx, userID, earned); err != nil {
			return nil, err
		}
	}

	s.logger.Info("quiz submitted",
		slog.String("userID", userID),
		slog.String("quizID", quiz.ID),
		slog.Int("score", score),
		slog.Int("pointsEarned", earned),
	)

	return result, nil
}
