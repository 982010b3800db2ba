// Package service holds the business logic layer. Each service sits between
// the HTTP handlers and the repositories:
//
//	handler (HTTP) → service (business rules) → repository (store)
//
// Services never touch HTTP concerns (cookies, status codes, routing) and
// repositories never make business decisions; the split keeps both sides
// testable with simple fakes.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"time"

	"github.com/google/uuid"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/auth"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository"
)

const minPasswordLength = 6

// AuthService handles registration, login, Google sign-in, and logout.
type AuthService struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user record and the issued token so the handler
// can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     model.Role
}

// Register creates a password-based account and signs it in immediately.
//
// The role defaults to student when blank; an unknown role is rejected
// rather than silently coerced. Email uniqueness is delegated to the
// store's unique index, so a duplicate surfaces as apperror.ErrConflict
// from Insert.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, apperror.ValidationFailed("email", "must be a valid email address")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperror.ValidationFailed("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}
	if in.Name == "" {
		return nil, apperror.ValidationFailed("name", "must not be empty")
	}
	if in.Role == "" {
		in.Role = model.RoleStudent
	}
	if !in.Role.Valid() {
		return nil, apperror.ValidationFailed("role", "must be student or admin")
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		PasswordHash: hash,
		Level:        1,
		Points:       0,
		Badges:       []string{},
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		slog.String("userID", user.ID),
		slog.String("role", string(user.Role)),
	)

	return s.startSession(ctx, user)
}

// Login authenticates a password-based account.
//
// A wrong email and a wrong password produce the same error so callers
// cannot probe which emails are registered. Google-only accounts have no
// hash and fail the same way.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Unauthenticated()
	}
	if user.PasswordHash == "" {
		return nil, apperror.Unauthenticated()
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthenticated()
	}

	return s.startSession(ctx, user)
}

// LoginOrRegisterGoogle completes the Google OAuth callback: the first
// sign-in with an unknown email creates a student account, subsequent
// sign-ins reuse the existing one.
func (s *AuthService) LoginOrRegisterGoogle(ctx context.Context, gu *auth.GoogleUser) (*AuthResult, error) {
	if gu == nil || gu.Email == "" {
		return nil, apperror.Upstream(fmt.Errorf("google profile missing email"))
	}

	user, err := s.users.FindByEmail(ctx, gu.Email)
	switch {
	case err == nil:
		// existing account, password-based or Google
	case errors.Is(err, apperror.ErrNotFound):
		user = &model.User{
			ID:         uuid.NewString(),
			Email:      gu.Email,
			Name:       gu.Name,
			Role:       model.RoleStudent,
			GoogleID:   gu.ID,
			ProfilePic: gu.Picture,
			Level:      1,
			Points:     0,
			Badges:     []string{},
			CreatedAt:  time.Now().UTC(),
		}
		if err := s.users.Insert(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("user registered via google", slog.String("userID", user.ID))
	default:
		return nil, err
	}

	return s.startSession(ctx, user)
}

// Logout revokes every stored session for the user.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.sessions.DeleteByUser(ctx, userID)
}

func (s *AuthService) startSession(ctx context.Context, user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issuing token for user %s: %w", user.ID, err)
	}

	session := &model.Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(s.tokens.TTL()),
	}
	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}
