// Package repository defines the storage contracts consumed by the service
// layer. Two implementations exist: mongo (production) and memory (tests
// and local development without a database).
//
// Error conventions: lookups return apperror.ErrNotFound when the record is
// absent, UserRepository.Insert returns apperror.ErrConflict on a duplicate
// email, and infrastructure failures are wrapped in apperror.ErrUpstream.
package repository

import (
	"context"

	"github.com/tkonda/placement-prep/internal/model"
)

// UserRepository persists accounts. Uniqueness of email and id is enforced
// by the store itself (unique indexes), not by the application.
type UserRepository interface {
	Insert(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	// IncrementPoints atomically adds delta to the user's points.
	IncrementPoints(ctx context.Context, id string, delta int) error
	List(ctx context.Context) ([]model.User, error)
	// TopByPoints returns up to limit users with the given role, ordered by
	// points descending.
	TopByPoints(ctx context.Context, role model.Role, limit int) ([]model.User, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
}

// QuizFilter narrows quiz listings. Zero values match everything.
type QuizFilter struct {
	Category string
	Company  string
}

type QuizRepository interface {
	Insert(ctx context.Context, quiz *model.Quiz) error
	FindByID(ctx context.Context, id string) (*model.Quiz, error)
	List(ctx context.Context, filter QuizFilter) ([]model.Quiz, error)
	Delete(ctx context.Context, id string) error
}

type QuizResultRepository interface {
	Insert(ctx context.Context, result *model.QuizResult) error
	Count(ctx context.Context) (int64, error)
}

// ChallengeFilter narrows challenge listings. Zero values match everything.
type ChallengeFilter struct {
	Company string
}

type ChallengeRepository interface {
	Insert(ctx context.Context, challenge *model.Challenge) error
	FindByID(ctx context.Context, id string) (*model.Challenge, error)
	List(ctx context.Context, filter ChallengeFilter) ([]model.Challenge, error)
	Delete(ctx context.Context, id string) error
}

type ChallengeResultRepository interface {
	Insert(ctx context.Context, result *model.ChallengeResult) error
	Count(ctx context.Context) (int64, error)
}

// InterviewRepository persists mock interview transcripts. Lookups are
// scoped to the owning user so one user can never read another's session.
type InterviewRepository interface {
	Insert(ctx context.Context, interview *model.MockInterview) error
	FindByID(ctx context.Context, id, userID string) (*model.MockInterview, error)
	ListByUser(ctx context.Context, userID string) ([]model.MockInterview, error)
	SetMessages(ctx context.Context, id string, messages []model.InterviewMessage) error
}

// FriendRepository persists the friend graph.
type FriendRepository interface {
	Insert(ctx context.Context, friendship *model.Friendship) error
	// FindBetween returns the edge between two users in either direction.
	FindBetween(ctx context.Context, userA, userB string) (*model.Friendship, error)
	// FindRequest returns the pending or accepted edge with the given id,
	// only if recipientID is its recipient.
	FindRequest(ctx context.Context, id, recipientID string) (*model.Friendship, error)
	// ListAccepted returns all accepted edges touching userID.
	ListAccepted(ctx context.Context, userID string) ([]model.Friendship, error)
	Accept(ctx context.Context, id string) error
	// DeleteBetween removes the edge between two users in either direction.
	DeleteBetween(ctx context.Context, userA, userB string) error
}

type BattleRepository interface {
	Insert(ctx context.Context, battle *model.Battle) error
	FindByID(ctx context.Context, id string) (*model.Battle, error)
	ListWaiting(ctx context.Context) ([]model.Battle, error)
	// Update replaces the players and status of an existing battle.
	Update(ctx context.Context, battle *model.Battle) error
}

// SessionRepository persists issued-token mirrors for revocation-on-logout.
type SessionRepository interface {
	Insert(ctx context.Context, session *model.Session) error
	DeleteByUser(ctx context.Context, userID string) error
}
