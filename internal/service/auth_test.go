package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/tkonda/placement-prep/internal/apperror"
	"github.com/tkonda/placement-prep/internal/auth"
	"github.com/tkonda/placement-prep/internal/model"
	"github.com/tkonda/placement-prep/internal/repository/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	ts, err := auth.NewTokenService("test-secret-at-least-16-chars!!", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

// newTestAuthService wires an AuthService against the in-memory store.
// bcrypt cost 4 keeps the password tests fast.
func newTestAuthService(t *testing.T, store *memory.Store) *AuthService {
	t.Helper()
	return NewAuthService(
		store.Users(),
		store.Sessions(),
		newTestTokenService(t),
		auth.NewPasswordServiceForTest(4),
		testLogger(),
	)
}

func TestRegister_CreatesStudentAndSignsIn(t *testing.T) {
	store := memory.New()
	svc := newTestAuthService(t, store)

	result, err := svc.Register(context.Background(), RegisterInput{
		Email:    "ananya@example.com",
		Password: "hunter22",
		Name:     "Ananya",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if result.Token == "" {
		t.Fatal("Register() returned empty token")
	}
	if result.User.Role != model.RoleStudent {
		t.Errorf("Role = %q, want %q", result.User.Role, model.RoleStudent)
	}
	if result.User.Level != 1 || result.User.Points != 0 {
		t.Errorf("new user level/points = %d/%d, want 1/0", result.User.Level, result.User.Points)
	}
	if result.User.PasswordHash == "hunter22" {
		t.Error("password stored in plaintext")
	}
	if store.SessionCount(result.User.ID) != 1 {
		t.Errorf("sessions = %d, want 1", store.SessionCount(result.User.ID))
	}
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	store := memory.New()
	svc := newTestAuthService(t, store)

	in := RegisterInput{Email: "dup@example.com", Password: "hunter22", Name: "First"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	in.Name = "Second"
	_, err := svc.Register(context.Background(), in)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("second Register() error = %v, want ErrConflict", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	store := memory.New()
	svc := newTestAuthService(t, store)

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"bad email", RegisterInput{Email: "not-an-email", Password: "hunter22", Name: "X"}},
		{"short password", RegisterInput{Email: "a@b.com", Password: "abc", Name: "X"}},
		{"empty name", RegisterInput{Email: "a@b.com", Password: "hunter22"}},
		{"unknown role", RegisterInput{Email: "a@b.com", Password: "hunter22", Name: "X", Role: "wizard"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("Register() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestLogin_Succeeds(t *testing.T) {
	store := memory.New()
	svc := newTestAuthService(t, store)

	reg, err := svc.Register(context.Background(), RegisterInput{
		Email: "login@example.com", Password: "hunter22", Name: "L",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	result, err := svc.Login(context.Background(), "login@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != reg.User.ID {
		t.Errorf("Login() user = %q, want %q", result.User.ID, reg.User.ID)
	}
	if result.Token == "" {
		t.Error("Login() returned empty token")
	}
}

func TestLogin_FailuresAreUniform(t *testing.T) {
	store := memory.New()
	svc := newTestAuthService(t, store)

	if _, err := svc.Register(context.Background(), RegisterInput{
		Email: "exists@example.com", Password: "hunter22", Name: "E",
	}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Unknown email and wrong password must be indistinguishable.
	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "hunter22")
	_, errWrong := svc.Login(context.Background(), "exists@example.com", "wrongpass")

	if !errors.Is(errUnknown, apperror.ErrUnauthenticated) {
		t.Errorf("unknown email error = %v, want ErrUnauthenticated", errUnknown)
	}
	if !errors.Is(errWrong, apperror.ErrUnauthenticated) {
		t.Errorf("wrong password error = %v, want ErrUnauthenticated", errWrong)
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("error messages differ: %q vs %q", errUnknown, errWrong)
	}
}

func TestLogin_GoogleOnlyAccountHasNoPassword(t *testing.T) {
	store := memory.New()
	svc := newTestAuthService(t, store)

	if _, err := svc.LoginOrRegisterGoogle(context.Background(), &auth.GoogleUser{
		ID: "g-123", Email: "gonly@example.com", Name: "G Only",
	}); err != nil {
		t.Fatalf("LoginOrRegisterGoogle() error = %v", err)
	}

	_, err := svc.Login(context.Background(), "gonly@example.com", "anything")
	if !errors.Is(err, apperror.ErrUnauthenticated) {
		t.Errorf("Login() error = %v, want ErrUnauthenticated", err)
	}
}

func TestLoginOrRegisterGoogle_NewAndReturning(t *testing.T) {
	store := memory.New()
	svc := newTestAuthService(t, store)

	first, err := svc.LoginOrRegisterGoogle(context.Background(), &auth.GoogleUser{
		ID: "g-42", Email: "octocat@example.com", Name: "Octo", Picture: "https://pics/42",
	})
	if err != nil {
		t.Fatalf("first sign-in error = %v", err)
	}
	if first.User.Role != model.RoleStudent {
		t.Errorf("Role = %q, want student", first.User.Role)
	}
	if first.User.GoogleID != "g-42" {
		t.Errorf("GoogleID = %q, want g-42", first.User.GoogleID)
	}

	second, err := svc.LoginOrRegisterGoogle(context.Background(), &auth.GoogleUser{
		ID: "g-42", Email: "octocat@example.com", Name: "Octo",
	})
	if err != nil {
		t.Fatalf("second sign-in error = %v", err)
	}
	if second.User.ID != first.User.ID {
		t.Errorf("returning sign-in created a new account: %q vs %q", second.User.ID, first.User.ID)
	}
}

func TestLoginOrRegisterGoogle_MissingEmail(t *testing.T) {
	store := memory.New()
	svc := newTestAuthService(t, store)

	_, err := svc.LoginOrRegisterGoogle(context.Background(), &auth.GoogleUser{ID: "g-1"})
	if !errors.Is(err, apperror.ErrUpstream) {
		t.Errorf("LoginOrRegisterGoogle() error = %v, want ErrUpstream", err)
	}
}

func TestLogout_RevokesAllSessions(t *testing.T) {
	store := memory.New()
	svc := newTestAuthService(t, store)

	reg, err := svc.Register(context.Background(), RegisterInput{
		Email: "bye@example.com", Password: "hunter22", Name: "B",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if _, err := svc.Login(context.Background(), "bye@example.com", "hunter22"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if got := store.SessionCount(reg.User.ID); got != 2 {
		t.Fatalf("sessions before logout = %d, want 2", got)
	}

	if err := svc.Logout(context.Background(), reg.User.ID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if got := store.SessionCount(reg.User.ID); got != 0 {
		t.Errorf("sessions after logout = %d, want 0", got)
	}
}
