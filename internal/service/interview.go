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

// InterviewGreeting opens every mock interview.
const InterviewGreeting = "Hello! I'm your AI interviewer. Let's begin with a brief introduction about yourself."

// Interviewer produces the next interviewer turn given the conversation so
// far. It is an interface so a hosted model can replace the scripted one
// without touching the service.
type Interviewer interface {
	Reply(ctx context.Context, history []model.InterviewMessage, userMessage string) (string, error)
}

// ScriptedInterviewer walks a fixed question bank, one question per user
// turn, and closes the interview once the bank is exhausted.
type ScriptedInterviewer struct {
	questions []string
}

// NewScriptedInterviewer returns an interviewer with the default question
// bank covering data structures, algorithms, system design, and behavior.
func NewScriptedInterviewer() *ScriptedInterviewer {
	return &ScriptedInterviewer{questions: []string{
		"Thanks for the introduction. Let's start with data structures: how does a hash map handle collisions, and what does that mean for worst-case lookup time?",
		"Good. Now algorithms: given a sorted array, how would you find the first element greater than a target, and what is the time complexity?",
		"Let's move to system design. How would you design a URL shortener that must survive a single machine failure?",
		"A behavioral one: tell me about a time you disagreed with a teammate on a technical decision. How was it resolved?",
		"Last question: what is a project you are proud of, and what would you do differently if you rebuilt it today?",
	}}
}

func (i *ScriptedInterviewer) Reply(_ context.Context, history []model.InterviewMessage, _ string) (string, error) {
	// The user turn being answered is not yet in history, so the count of
	// prior user turns indexes the next question.
	asked := 0
	for _, m := range history {
		if m.Role == "user" {
			asked++
		}
	}
	if asked < len(i.questions) {
		return i.questions[asked], nil
	}
	return "That concludes our interview. You communicated clearly; keep practicing complexity analysis and concrete examples. Good luck with your placements!", nil
}

// InterviewService manages mock interview sessions.
type InterviewService struct {
	interviews  repository.InterviewRepository
	interviewer Interviewer
	logger      *slog.Logger
}

func NewInterviewService(
	interviews repository.InterviewRepository,
	interviewer Interviewer,
	logger *slog.Logger,
) *InterviewService {
	return &InterviewService{interviews: interviews, interviewer: interviewer, logger: logger}
}

// Start opens a new interview for the user and returns its id together
// with the opening greeting.
func (s *InterviewService) Start(ctx context.Context, userID string) (interviewID, greeting string, err error) {
	interview := &model.MockInterview{
		ID:        uuid.NewString(),
		UserID:    userID,
		Messages:  []model.InterviewMessage{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.interviews.Insert(ctx, interview); err != nil {
		return "", "", err
	}
	return interview.ID, InterviewGreeting, nil
}

// SendMessage appends the user's message, obtains the interviewer's reply,
// stores both, and returns the reply. Interviews belong to their creator;
// any other user gets NotFound.
func (s *InterviewService) SendMessage(ctx context.Context, userID, interviewID, message string) (string, error) {
	if message == "" {
		return "", apperror.ValidationFailed("message", "must not be empty")
	}
	interview, err := s.interviews.FindByID(ctx, interviewID, userID)
	if err != nil {
		return "", err
	}

	reply, err := s.interviewer.Reply(ctx, interview.Messages, message)
	if err != nil {
		return "", apperror.Upstream(err)
	}

	messages := append(interview.Messages,
		model.InterviewMessage{Role: "user", Content: message},
		model.InterviewMessage{Role: "assistant", Content: reply},
	)
	if err := s.interviews.SetMessages(ctx, interviewID, messages); err != nil {
		return "", err
	}

	return reply, nil
}

// Get returns one interview, scoped to its owner.
func (s *InterviewService) Get(ctx context.Context, userID, interviewID string) (*model.MockInterview, error) {
	return s.interviews.FindByID(ctx, interviewID, userID)
}

// ListMine returns all interviews belonging to the user.
func (s *InterviewService) ListMine(ctx context.Context, userID string) ([]model.MockInterview, error) {
	return s.interviews.ListByUser(ctx, userID)
}
