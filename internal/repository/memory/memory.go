// Package memory implements the repository interfaces with in-process maps.
//
// It mirrors the mongo implementation's error semantics (NotFound,
// Conflict on duplicate email) so the service layer behaves identically
// against either backend. Used by tests and for running the server without
// a database.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository"
)

// Store is the shared backing state for all in-memory repositories.
// A single mutex guards everything; contention is irrelevant at test scale.
type Store struct {
	mu sync.RWMutex

	users            map[string]*model.User // by id
	usersByEmail     map[string]*model.User
	sessions         map[string]*model.Session
	quizzes          map[string]*model.Quiz
	quizResults      map[string]*model.QuizResult
	challenges       map[string]*model.Challenge
	challengeResults map[string]*model.ChallengeResult
	interviews       map[string]*model.MockInterview
	friends          map[string]*model.Friendship
	battles          map[string]*model.Battle
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:            make(map[string]*model.User),
		usersByEmail:     make(map[string]*model.User),
		sessions:         make(map[string]*model.Session),
		quizzes:          make(map[string]*model.Quiz),
		quizResults:      make(map[string]*model.QuizResult),
		challenges:       make(map[string]*model.Challenge),
		challengeResults: make(map[string]*model.ChallengeResult),
		interviews:       make(map[string]*model.MockInterview),
		friends:          make(map[string]*model.Friendship),
		battles:          make(map[string]*model.Battle),
	}
}

// ---- users ----

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct{ s *Store }

func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Insert(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.usersByEmail[user.Email]; exists {
		return apperror.Conflict("email already registered")
	}
	copied := *user
	r.s.users[user.ID] = &copied
	r.s.usersByEmail[user.Email] = &copied
	return nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.usersByEmail[email]
	if !ok {
		return nil, apperror.NotFound("user", email)
	}
	copied := *u
	return &copied, nil
}

func (r *UserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	copied := *u
	return &copied, nil
}

func (r *UserRepo) IncrementPoints(_ context.Context, id string, delta int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.Points += delta
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, *u)
	}
	return users, nil
}

func (r *UserRepo) TopByPoints(_ context.Context, role model.Role, limit int) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var users []model.User
	for _, u := range r.s.users {
		if u.Role == role {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Points > users[j].Points })
	if len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (r *UserRepo) CountByRole(_ context.Context, role model.Role) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var n int64
	for _, u := range r.s.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// DeleteUser removes an account outright. Not part of the repository
// contract; tests use it to simulate a token whose subject has vanished.
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		delete(s.usersByEmail, u.Email)
		delete(s.users, id)
	}
}

// ---- sessions ----

var _ repository.SessionRepository = (*SessionRepo)(nil)

type SessionRepo struct{ s *Store }

func (s *Store) Sessions() *SessionRepo { return &SessionRepo{s: s} }

func (r *SessionRepo) Insert(_ context.Context, session *model.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *session
	r.s.sessions[session.ID] = &copied
	return nil
}

func (r *SessionRepo) DeleteByUser(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, sess := range r.s.sessions {
		if sess.UserID == userID {
			delete(r.s.sessions, id)
		}
	}
	return nil
}

// SessionCount reports how many sessions a user has. Test helper.
func (s *Store) SessionCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			n++
		}
	}
	return n
}

// ---- quizzes ----

var (
	_ repository.QuizRepository       = (*QuizRepo)(nil)
	_ repository.QuizResultRepository = (*QuizResultRepo)(nil)
)

type QuizRepo struct{ s *Store }

func (s *Store) Quizzes() *QuizRepo { return &QuizRepo{s: s} }

func (r *QuizRepo) Insert(_ context.Context, quiz *model.Quiz) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *quiz
	r.s.quizzes[quiz.ID] = &copied
	return nil
}

func (r *QuizRepo) FindByID(_ context.Context, id string) (*model.Quiz, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q, ok := r.s.quizzes[id]
	if !ok {
		return nil, apperror.NotFound("quiz", id)
	}
	copied := *q
	return &copied, nil
}

func (r *QuizRepo) List(_ context.Context, filter repository.QuizFilter) ([]model.Quiz, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var quizzes []model.Quiz
	for _, q := range r.s.quizzes {
		if filter.Category != "" && q.Category != filter.Category {
			continue
		}
		if filter.Company != "" && q.Company != filter.Company {
			continue
		}
		quizzes = append(quizzes, *q)
	}
	return quizzes, nil
}

func (r *QuizRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.quizzes[id]; !ok {
		return apperror.NotFound("quiz", id)
	}
	delete(r.s.quizzes, id)
	return nil
}

type QuizResultRepo struct{ s *Store }

func (s *Store) QuizResults() *QuizResultRepo { return &QuizResultRepo{s: s} }

func (r *QuizResultRepo) Insert(_ context.Context, result *model.QuizResult) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *result
	r.s.quizResults[result.ID] = &copied
	return nil
}

func (r *QuizResultRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.quizResults)), nil
}

// ---- challenges ----

var (
	_ repository.ChallengeRepository       = (*ChallengeRepo)(nil)
	_ repository.ChallengeResultRepository = (*ChallengeResultRepo)(nil)
)

type ChallengeRepo struct{ s *Store }

func (s *Store) Challenges() *ChallengeRepo { return &ChallengeRepo{s: s} }

func (r *ChallengeRepo) Insert(_ context.Context, challenge *model.Challenge) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *challenge
	r.s.challenges[challenge.ID] = &copied
	return nil
}

func (r *ChallengeRepo) FindByID(_ context.Context, id string) (*model.Challenge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.challenges[id]
	if !ok {
		return nil, apperror.NotFound("challenge", id)
	}
	copied := *c
	return &copied, nil
}

func (r *ChallengeRepo) List(_ context.Context, filter repository.ChallengeFilter) ([]model.Challenge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var challenges []model.Challenge
	for _, c := range r.s.challenges {
		if filter.Company != "" && c.Company != filter.Company {
			continue
		}
		challenges = append(challenges, *c)
	}
	return challenges, nil
}

func (r *ChallengeRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.challenges[id]; !ok {
		return apperror.NotFound("challenge", id)
	}
	delete(r.s.challenges, id)
	return nil
}

type ChallengeResultRepo struct{ s *Store }

func (s *Store) ChallengeResults() *ChallengeResultRepo { return &ChallengeResultRepo{s: s} }

func (r *ChallengeResultRepo) Insert(_ context.Context, result *model.ChallengeResult) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *result
	r.s.challengeResults[result.ID] = &copied
	return nil
}

func (r *ChallengeResultRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.challengeResults)), nil
}

// ---- interviews ----

var _ repository.InterviewRepository = (*InterviewRepo)(nil)

type InterviewRepo struct{ s *Store }

func (s *Store) Interviews() *InterviewRepo { return &InterviewRepo{s: s} }

func (r *InterviewRepo) Insert(_ context.Context, interview *model.MockInterview) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *interview
	copied.Messages = append([]model.InterviewMessage(nil), interview.Messages...)
	r.s.interviews[interview.ID] = &copied
	return nil
}

func (r *InterviewRepo) FindByID(_ context.Context, id, userID string) (*model.MockInterview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	iv, ok := r.s.interviews[id]
	if !ok || iv.UserID != userID {
		return nil, apperror.NotFound("interview", id)
	}
	copied := *iv
	copied.Messages = append([]model.InterviewMessage(nil), iv.Messages...)
	return &copied, nil
}

func (r *InterviewRepo) ListByUser(_ context.Context, userID string) ([]model.MockInterview, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var interviews []model.MockInterview
	for _, iv := range r.s.interviews {
		if iv.UserID == userID {
			copied := *iv
			copied.Messages = append([]model.InterviewMessage(nil), iv.Messages...)
			interviews = append(interviews, copied)
		}
	}
	return interviews, nil
}

func (r *InterviewRepo) SetMessages(_ context.Context, id string, messages []model.InterviewMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	iv, ok := r.s.interviews[id]
	if !ok {
		return apperror.NotFound("interview", id)
	}
	iv.Messages = append([]model.InterviewMessage(nil), messages...)
	return nil
}

// ---- friends ----

var _ repository.FriendRepository = (*FriendRepo)(nil)

type FriendRepo struct{ s *Store }

func (s *Store) Friends() *FriendRepo { return &FriendRepo{s: s} }

func (r *FriendRepo) Insert(_ context.Context, friendship *model.Friendship) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *friendship
	r.s.friends[friendship.ID] = &copied
	return nil
}

func (r *FriendRepo) FindBetween(_ context.Context, userA, userB string) (*model.Friendship, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, f := range r.s.friends {
		if (f.UserID == userA && f.FriendID == userB) || (f.UserID == userB && f.FriendID == userA) {
			copied := *f
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("friendship", userB)
}

func (r *FriendRepo) FindRequest(_ context.Context, id, recipientID string) (*model.Friendship, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	f, ok := r.s.friends[id]
	if !ok || f.FriendID != recipientID {
		return nil, apperror.NotFound("friend request", id)
	}
	copied := *f
	return &copied, nil
}

func (r *FriendRepo) ListAccepted(_ context.Context, userID string) ([]model.Friendship, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var friendships []model.Friendship
	for _, f := range r.s.friends {
		if f.Status != model.FriendAccepted {
			continue
		}
		if f.UserID == userID || f.FriendID == userID {
			friendships = append(friendships, *f)
		}
	}
	return friendships, nil
}

func (r *FriendRepo) Accept(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	f, ok := r.s.friends[id]
	if !ok {
		return apperror.NotFound("friend request", id)
	}
	f.Status = model.FriendAccepted
	return nil
}

func (r *FriendRepo) DeleteBetween(_ context.Context, userA, userB string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, f := range r.s.friends {
		if (f.UserID == userA && f.FriendID == userB) || (f.UserID == userB && f.FriendID == userA) {
			delete(r.s.friends, id)
			return nil
		}
	}
	return apperror.NotFound("friendship", userB)
}

// ---- battles ----

var _ repository.BattleRepository = (*BattleRepo)(nil)

type BattleRepo struct{ s *Store }

func (s *Store) Battles() *BattleRepo { return &BattleRepo{s: s} }

func (r *BattleRepo) Insert(_ context.Context, battle *model.Battle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	copied := *battle
	copied.Players = append([]model.BattlePlayer(nil), battle.Players...)
	r.s.battles[battle.ID] = &copied
	return nil
}

func (r *BattleRepo) FindByID(_ context.Context, id string) (*model.Battle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.battles[id]
	if !ok {
		return nil, apperror.NotFound("battle", id)
	}
	copied := *b
	copied.Players = append([]model.BattlePlayer(nil), b.Players...)
	return &copied, nil
}

func (r *BattleRepo) ListWaiting(_ context.Context) ([]model.Battle, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var battles []model.Battle
	for _, b := range r.s.battles {
		if b.Status == model.BattleWaiting {
			copied := *b
			copied.Players = append([]model.BattlePlayer(nil), b.Players...)
			battles = append(battles, copied)
		}
	}
	return battles, nil
}

func (r *BattleRepo) Update(_ context.Context, battle *model.Battle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.battles[battle.ID]; !ok {
		return apperror.NotFound("battle", battle.ID)
	}
	copied := *battle
	copied.Players = append([]model.BattlePlayer(nil), battle.Players...)
	r.s.battles[battle.ID] = &copied
	return nil
}
